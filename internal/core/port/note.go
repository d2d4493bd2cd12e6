package port

import (
	"context"

	"todoboard/internal/core/domain"
)

type NoteRepository interface {
	Create(ctx context.Context, note domain.Note) (domain.Note, error)
	ListByTodo(ctx context.Context, todoId int) ([]domain.Note, error)
}

type NoteService interface {
	AddToTodo(ctx context.Context, todoId int, content string) (domain.Note, error)
}
