package port

import (
	"context"

	"todoboard/internal/core/domain"
)

type TodoRepository interface {
	ListByUser(ctx context.Context, userId int, filter domain.TodoFilter) ([]domain.Todo, error)
	GetByID(ctx context.Context, id int) (domain.Todo, error)
	Create(ctx context.Context, todo domain.Todo) (domain.Todo, error)
	Update(ctx context.Context, id int, update domain.TodoUpdate) (domain.Todo, error)
	Delete(ctx context.Context, id int) error
}

type TodoService interface {
	ListForUser(ctx context.Context, userId int, filter domain.TodoFilter) ([]domain.Todo, error)
	Create(ctx context.Context, todo domain.Todo) (domain.Todo, error)
	GetWithNotes(ctx context.Context, id int) (domain.Todo, []domain.Note, error)
	Update(ctx context.Context, id int, update domain.TodoUpdate) (domain.Todo, error)
	Delete(ctx context.Context, id int) error
}
