package service

import (
	"context"

	"todoboard/internal/core/domain"
	"todoboard/internal/core/port"
	tel "todoboard/internal/core/telemetry"
)

type UserService struct {
	repo      port.UserRepository
	telemetry port.Telemetry
}

func NewUserService(repo port.UserRepository, telemetry port.Telemetry) *UserService {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &UserService{repo: repo, telemetry: telemetry}
}

func (us *UserService) GetAll(ctx context.Context) ([]domain.User, error) {
	ctx, span := us.telemetry.StartServiceSpan(ctx, "user", "GetAll", nil)
	defer span.End()

	users, err := us.repo.GetAll(ctx)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(map[string]interface{}{"users.count": len(users)})

	return users, nil
}
