package port

import (
	"context"

	"todoboard/internal/core/domain"
)

type UserRepository interface {
	GetAll(ctx context.Context) ([]domain.User, error)
	// Create exists for seeding and tests; there is no creation endpoint.
	Create(ctx context.Context, user domain.User) (domain.User, error)
}

type UserService interface {
	GetAll(ctx context.Context) ([]domain.User, error)
}
