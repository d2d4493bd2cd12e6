package repository

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"

	"todoboard/internal/adapter/database/sqlite"
	"todoboard/internal/core/domain"
	"todoboard/internal/core/port"
	tel "todoboard/internal/core/telemetry"
)

type NoteRepository struct {
	db        *sqlite.DB
	scanner   *sqlite.Scanner
	telemetry port.Telemetry
}

func NewNoteRepository(db *sqlite.DB, telemetry port.Telemetry) port.NoteRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &NoteRepository{
		db:        db,
		scanner:   sqlite.NewScanner(),
		telemetry: telemetry,
	}
}

func (nr *NoteRepository) Create(ctx context.Context, note domain.Note) (domain.Note, error) {
	ctx, span := nr.telemetry.StartRepositorySpan(ctx, "Create", "note", map[string]interface{}{
		"db.system":    "sqlite",
		"db.table":     "notes",
		"db.operation": "INSERT",
		"todo.id":      note.TodoId,
	})
	defer span.End()

	startTime := time.Now()

	query, args, err := nr.db.QueryBuilder.Insert("notes").
		Columns("content", "todo_id", "created_at").
		Values(note.Content, note.TodoId, note.CreatedAt).
		ToSql()

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return domain.Note{}, err
	}

	nr.telemetry.RecordRepositoryQuery(ctx, "Create", "note", query, args)

	result, err := nr.db.ExecContext(ctx, query, args...)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		nr.telemetry.RecordRepositoryOperation(ctx, "Create", "note", time.Since(startTime), err)
		slog.Error("Error creating note", "error", err, "todo_id", note.TodoId)

		translated := sqlite.TranslateError(err)

		if fkErr, ok := translated.(domain.ForeignKeyError); ok {
			fkErr.Table = "todos"
			fkErr.Value = strconv.Itoa(note.TodoId)
			return domain.Note{}, fkErr
		}

		return domain.Note{}, translated
	}

	id, err := result.LastInsertId()

	if err != nil {
		return domain.Note{}, err
	}

	note.ID = int(id)

	span.SetStatus("ok", "")
	nr.telemetry.RecordRepositoryOperation(ctx, "Create", "note", time.Since(startTime), nil)

	return note, nil
}

func (nr *NoteRepository) ListByTodo(ctx context.Context, todoId int) ([]domain.Note, error) {
	ctx, span := nr.telemetry.StartRepositorySpan(ctx, "ListByTodo", "note", map[string]interface{}{
		"db.system": "sqlite",
		"db.table":  "notes",
		"todo.id":   todoId,
	})
	defer span.End()

	query := nr.db.QueryBuilder.Select("*").
		From("notes").
		Where(sq.Eq{"todo_id": todoId}).
		OrderBy("created_at DESC", "id DESC")

	sql, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := nr.db.QueryContext(ctx, sql, args...)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		slog.Error("Error listing notes", "error", err, "todo_id", todoId)
		return nil, sqlite.TranslateError(err)
	}

	defer rows.Close()

	notes := []domain.Note{}

	if err := nr.scanner.ScanRowsToSlice(rows, &notes); err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(map[string]interface{}{"db.rows_returned": len(notes)})

	return notes, nil
}
