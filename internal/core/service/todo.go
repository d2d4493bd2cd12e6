package service

import (
	"context"
	"strconv"
	"time"

	"todoboard/internal/core/domain"
	"todoboard/internal/core/port"
	tel "todoboard/internal/core/telemetry"
)

type TodoService struct {
	repo      port.TodoRepository
	notes     port.NoteRepository
	telemetry port.Telemetry
}

func NewTodoService(repo port.TodoRepository, notes port.NoteRepository, telemetry port.Telemetry) *TodoService {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &TodoService{repo: repo, notes: notes, telemetry: telemetry}
}

func (ts *TodoService) ListForUser(ctx context.Context, userId int, filter domain.TodoFilter) ([]domain.Todo, error) {
	ctx, span := ts.telemetry.StartServiceSpan(ctx, "todo", "ListForUser", map[string]interface{}{
		"user.id":          userId,
		"filter.priority":  string(filter.Priority),
		"filter.sort_by":   string(filter.SortBy),
		"filter.ascending": filter.Ascending,
	})
	defer span.End()

	todos, err := ts.repo.ListByUser(ctx, userId, filter)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(map[string]interface{}{"todos.count": len(todos)})

	return todos, nil
}

func (ts *TodoService) Create(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	ctx, span := ts.telemetry.StartServiceSpan(ctx, "todo", "Create", map[string]interface{}{
		"user.id": todo.UserId,
	})
	defer span.End()

	now := time.Now()

	if todo.Priority == "" {
		todo.Priority = domain.PriorityMedium
	}

	todo.Completed = false
	todo.CreatedAt = now
	todo.UpdatedAt = now

	saved, err := ts.repo.Create(ctx, todo)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return domain.Todo{}, err
	}

	ts.telemetry.RecordBusinessEvent(ctx, "created", "todo", strconv.Itoa(saved.ID), map[string]interface{}{
		"title":    saved.Title,
		"priority": string(saved.Priority),
	})

	return saved, nil
}

// GetWithNotes issues two independent reads; the todo and its notes are not
// fetched atomically.
func (ts *TodoService) GetWithNotes(ctx context.Context, id int) (domain.Todo, []domain.Note, error) {
	ctx, span := ts.telemetry.StartServiceSpan(ctx, "todo", "GetWithNotes", map[string]interface{}{
		"todo.id": id,
	})
	defer span.End()

	todo, err := ts.repo.GetByID(ctx, id)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return domain.Todo{}, nil, err
	}

	notes, err := ts.notes.ListByTodo(ctx, id)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return domain.Todo{}, nil, err
	}

	span.SetAttributes(map[string]interface{}{"notes.count": len(notes)})

	return todo, notes, nil
}

func (ts *TodoService) Update(ctx context.Context, id int, update domain.TodoUpdate) (domain.Todo, error) {
	ctx, span := ts.telemetry.StartServiceSpan(ctx, "todo", "Update", map[string]interface{}{
		"todo.id": id,
	})
	defer span.End()

	todo, err := ts.repo.Update(ctx, id, update)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return domain.Todo{}, err
	}

	ts.telemetry.RecordBusinessEvent(ctx, "updated", "todo", strconv.Itoa(todo.ID), map[string]interface{}{
		"completed": todo.Completed,
	})

	return todo, nil
}

func (ts *TodoService) Delete(ctx context.Context, id int) error {
	ctx, span := ts.telemetry.StartServiceSpan(ctx, "todo", "Delete", map[string]interface{}{
		"todo.id": id,
	})
	defer span.End()

	if err := ts.repo.Delete(ctx, id); err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return err
	}

	ts.telemetry.RecordBusinessEvent(ctx, "deleted", "todo", strconv.Itoa(id), nil)

	return nil
}
