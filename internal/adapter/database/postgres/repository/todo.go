package repository

import (
	"context"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"

	"todoboard/internal/adapter/database/postgres"
	"todoboard/internal/core/domain"
	"todoboard/internal/core/port"
	tel "todoboard/internal/core/telemetry"
)

const todoColumns = "id, title, description, priority, completed, user_id, created_at, updated_at"

type TodoRepository struct {
	db        *postgres.DB
	telemetry port.Telemetry
}

func NewTodoRepository(db *postgres.DB, telemetry port.Telemetry) port.TodoRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &TodoRepository{db: db, telemetry: telemetry}
}

// orderClause ranks priorities explicitly; rows outside the known set sort
// last. Priority ties fall back to newest first.
func orderClause(filter domain.TodoFilter) []string {
	if filter.SortBy == domain.SortByPriority {
		if filter.Ascending {
			return []string{
				"CASE priority WHEN 'low' THEN 1 WHEN 'medium' THEN 2 WHEN 'high' THEN 3 ELSE 4 END ASC",
				"created_at DESC",
			}
		}

		return []string{
			"CASE priority WHEN 'high' THEN 1 WHEN 'medium' THEN 2 WHEN 'low' THEN 3 ELSE 4 END ASC",
			"created_at DESC",
		}
	}

	if filter.Ascending {
		return []string{"created_at ASC"}
	}

	return []string{"created_at DESC"}
}

func (tr *TodoRepository) ListByUser(ctx context.Context, userId int, filter domain.TodoFilter) ([]domain.Todo, error) {
	ctx, span := tr.telemetry.StartRepositorySpan(ctx, "ListByUser", "todo", map[string]interface{}{
		"db.system":       "postgresql",
		"db.table":        "todos",
		"user.id":         userId,
		"filter.priority": string(filter.Priority),
	})
	defer span.End()

	startTime := time.Now()

	query := tr.db.QueryBuilder.Select(todoColumns).
		From("todos").
		Where(sq.Eq{"user_id": userId}).
		OrderBy(orderClause(filter)...)

	if filter.Priority.Valid() {
		query = query.Where(sq.Eq{"priority": filter.Priority})
	}

	sql, args, err := query.ToSql()

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return nil, err
	}

	tr.telemetry.RecordRepositoryQuery(ctx, "ListByUser", "todo", sql, args)

	rows, err := tr.db.Query(ctx, sql, args...)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		tr.telemetry.RecordRepositoryOperation(ctx, "ListByUser", "todo", time.Since(startTime), err)
		slog.Error("Error listing todos", "error", err, "user_id", userId)
		return nil, postgres.TranslateError(err)
	}

	defer rows.Close()

	todos := []domain.Todo{}

	for rows.Next() {
		var todo domain.Todo

		err = rows.Scan(&todo.ID, &todo.Title, &todo.Description, &todo.Priority, &todo.Completed, &todo.UserId, &todo.CreatedAt, &todo.UpdatedAt)

		if err != nil {
			span.SetStatus("error", err.Error())
			span.RecordError(err)
			return nil, err
		}

		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.TranslateError(err)
	}

	span.SetAttributes(map[string]interface{}{"db.rows_returned": len(todos)})
	span.SetStatus("ok", "")
	tr.telemetry.RecordRepositoryOperation(ctx, "ListByUser", "todo", time.Since(startTime), nil)

	return todos, nil
}

func (tr *TodoRepository) GetByID(ctx context.Context, id int) (domain.Todo, error) {
	query := tr.db.QueryBuilder.Select(todoColumns).
		From("todos").
		Where(sq.Eq{"id": id}).
		Limit(1)

	sql, args, err := query.ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	var todo domain.Todo

	err = tr.db.QueryRow(ctx, sql, args...).Scan(
		&todo.ID,
		&todo.Title,
		&todo.Description,
		&todo.Priority,
		&todo.Completed,
		&todo.UserId,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)

	if err != nil {
		return domain.Todo{}, postgres.TranslateError(err)
	}

	return todo, nil
}

func (tr *TodoRepository) Create(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	ctx, span := tr.telemetry.StartRepositorySpan(ctx, "Create", "todo", map[string]interface{}{
		"db.system":    "postgresql",
		"db.table":     "todos",
		"db.operation": "INSERT",
		"user.id":      todo.UserId,
	})
	defer span.End()

	startTime := time.Now()

	query := tr.db.QueryBuilder.Insert("todos").
		Columns("title", "description", "priority", "completed", "user_id", "created_at", "updated_at").
		Values(todo.Title, todo.Description, todo.Priority, todo.Completed, todo.UserId, todo.CreatedAt, todo.UpdatedAt).
		Suffix("RETURNING " + todoColumns)

	sql, args, err := query.ToSql()

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return domain.Todo{}, err
	}

	tr.telemetry.RecordRepositoryQuery(ctx, "Create", "todo", sql, args)

	var saved domain.Todo

	err = tr.db.QueryRow(ctx, sql, args...).Scan(
		&saved.ID,
		&saved.Title,
		&saved.Description,
		&saved.Priority,
		&saved.Completed,
		&saved.UserId,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		tr.telemetry.RecordRepositoryOperation(ctx, "Create", "todo", time.Since(startTime), err)
		slog.Error("Error creating todo", "error", err)
		return domain.Todo{}, postgres.TranslateError(err)
	}

	span.SetStatus("ok", "")
	tr.telemetry.RecordRepositoryOperation(ctx, "Create", "todo", time.Since(startTime), nil)

	return saved, nil
}

func (tr *TodoRepository) Update(ctx context.Context, id int, update domain.TodoUpdate) (domain.Todo, error) {
	ctx, span := tr.telemetry.StartRepositorySpan(ctx, "Update", "todo", map[string]interface{}{
		"db.system":    "postgresql",
		"db.table":     "todos",
		"db.operation": "UPDATE",
		"todo.id":      id,
	})
	defer span.End()

	startTime := time.Now()

	changes := map[string]interface{}{
		"updated_at": time.Now(),
	}

	if update.Title != nil {
		changes["title"] = *update.Title
	}

	if update.DescriptionSet {
		changes["description"] = update.Description
	}

	if update.Priority != nil {
		changes["priority"] = *update.Priority
	}

	if update.Completed != nil {
		changes["completed"] = *update.Completed
	}

	span.SetAttributes(map[string]interface{}{"update.fields_count": len(changes) - 1})

	query := tr.db.QueryBuilder.Update("todos").
		SetMap(changes).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + todoColumns)

	sql, args, err := query.ToSql()

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return domain.Todo{}, err
	}

	tr.telemetry.RecordRepositoryQuery(ctx, "Update", "todo", sql, args)

	var updated domain.Todo

	err = tr.db.QueryRow(ctx, sql, args...).Scan(
		&updated.ID,
		&updated.Title,
		&updated.Description,
		&updated.Priority,
		&updated.Completed,
		&updated.UserId,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		tr.telemetry.RecordRepositoryOperation(ctx, "Update", "todo", time.Since(startTime), err)
		slog.Error("Error updating todo", "error", err, "todo_id", id)
		return domain.Todo{}, postgres.TranslateError(err)
	}

	span.SetStatus("ok", "")
	tr.telemetry.RecordRepositoryOperation(ctx, "Update", "todo", time.Since(startTime), nil)

	return updated, nil
}

func (tr *TodoRepository) Delete(ctx context.Context, id int) error {
	ctx, span := tr.telemetry.StartRepositorySpan(ctx, "Delete", "todo", map[string]interface{}{
		"db.system":    "postgresql",
		"db.table":     "todos",
		"db.operation": "DELETE",
		"todo.id":      id,
	})
	defer span.End()

	startTime := time.Now()

	query := tr.db.QueryBuilder.Delete("todos").
		Where(sq.Eq{"id": id})

	sql, args, err := query.ToSql()

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return err
	}

	tr.telemetry.RecordRepositoryQuery(ctx, "Delete", "todo", sql, args)

	tag, err := tr.db.Exec(ctx, sql, args...)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		tr.telemetry.RecordRepositoryOperation(ctx, "Delete", "todo", time.Since(startTime), err)
		return postgres.TranslateError(err)
	}

	if tag.RowsAffected() == 0 {
		span.SetStatus("error", "not found")
		tr.telemetry.RecordRepositoryOperation(ctx, "Delete", "todo", time.Since(startTime), domain.ErrNotFound)
		return domain.ErrNotFound
	}

	span.SetStatus("ok", "")
	tr.telemetry.RecordRepositoryOperation(ctx, "Delete", "todo", time.Since(startTime), nil)

	return nil
}
