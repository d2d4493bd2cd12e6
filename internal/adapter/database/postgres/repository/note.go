package repository

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"

	"todoboard/internal/adapter/database/postgres"
	"todoboard/internal/core/domain"
	"todoboard/internal/core/port"
	tel "todoboard/internal/core/telemetry"
)

type NoteRepository struct {
	db        *postgres.DB
	telemetry port.Telemetry
}

func NewNoteRepository(db *postgres.DB, telemetry port.Telemetry) port.NoteRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &NoteRepository{db: db, telemetry: telemetry}
}

func (nr *NoteRepository) Create(ctx context.Context, note domain.Note) (domain.Note, error) {
	ctx, span := nr.telemetry.StartRepositorySpan(ctx, "Create", "note", map[string]interface{}{
		"db.system":    "postgresql",
		"db.table":     "notes",
		"db.operation": "INSERT",
		"todo.id":      note.TodoId,
	})
	defer span.End()

	startTime := time.Now()

	query := nr.db.QueryBuilder.Insert("notes").
		Columns("content", "todo_id", "created_at").
		Values(note.Content, note.TodoId, note.CreatedAt).
		Suffix("RETURNING id, content, todo_id, created_at")

	sql, args, err := query.ToSql()

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return domain.Note{}, err
	}

	nr.telemetry.RecordRepositoryQuery(ctx, "Create", "note", sql, args)

	var saved domain.Note

	err = nr.db.QueryRow(ctx, sql, args...).Scan(&saved.ID, &saved.Content, &saved.TodoId, &saved.CreatedAt)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		nr.telemetry.RecordRepositoryOperation(ctx, "Create", "note", time.Since(startTime), err)
		slog.Error("Error creating note", "error", err, "todo_id", note.TodoId)

		translated := postgres.TranslateError(err)

		// The FK detail names the todo row, not a user; carry the id the
		// caller sent so the message stays precise.
		if fkErr, ok := translated.(domain.ForeignKeyError); ok {
			if fkErr.Value == "" {
				fkErr.Value = strconv.Itoa(note.TodoId)
			}
			return domain.Note{}, fkErr
		}

		return domain.Note{}, translated
	}

	span.SetStatus("ok", "")
	nr.telemetry.RecordRepositoryOperation(ctx, "Create", "note", time.Since(startTime), nil)

	return saved, nil
}

func (nr *NoteRepository) ListByTodo(ctx context.Context, todoId int) ([]domain.Note, error) {
	ctx, span := nr.telemetry.StartRepositorySpan(ctx, "ListByTodo", "note", map[string]interface{}{
		"db.system": "postgresql",
		"db.table":  "notes",
		"todo.id":   todoId,
	})
	defer span.End()

	query := nr.db.QueryBuilder.Select("id", "content", "todo_id", "created_at").
		From("notes").
		Where(sq.Eq{"todo_id": todoId}).
		OrderBy("created_at DESC", "id DESC")

	sql, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := nr.db.Query(ctx, sql, args...)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		slog.Error("Error listing notes", "error", err, "todo_id", todoId)
		return nil, postgres.TranslateError(err)
	}

	defer rows.Close()

	notes := []domain.Note{}

	for rows.Next() {
		var note domain.Note

		if err := rows.Scan(&note.ID, &note.Content, &note.TodoId, &note.CreatedAt); err != nil {
			return nil, err
		}

		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.TranslateError(err)
	}

	span.SetAttributes(map[string]interface{}{"db.rows_returned": len(notes)})

	return notes, nil
}
