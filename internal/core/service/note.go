package service

import (
	"context"
	"strconv"
	"time"

	"todoboard/internal/core/domain"
	"todoboard/internal/core/port"
	tel "todoboard/internal/core/telemetry"
)

type NoteService struct {
	repo      port.NoteRepository
	telemetry port.Telemetry
}

func NewNoteService(repo port.NoteRepository, telemetry port.Telemetry) *NoteService {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &NoteService{repo: repo, telemetry: telemetry}
}

// AddToTodo does not verify the todo exists; a dangling todoId is rejected by
// the store's foreign key constraint.
func (ns *NoteService) AddToTodo(ctx context.Context, todoId int, content string) (domain.Note, error) {
	ctx, span := ns.telemetry.StartServiceSpan(ctx, "note", "AddToTodo", map[string]interface{}{
		"todo.id": todoId,
	})
	defer span.End()

	note := domain.Note{
		Content:   content,
		TodoId:    todoId,
		CreatedAt: time.Now(),
	}

	saved, err := ns.repo.Create(ctx, note)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return domain.Note{}, err
	}

	ns.telemetry.RecordBusinessEvent(ctx, "created", "note", strconv.Itoa(saved.ID), map[string]interface{}{
		"todo_id": saved.TodoId,
	})

	return saved, nil
}
