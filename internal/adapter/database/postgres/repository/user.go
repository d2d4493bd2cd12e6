package repository

import (
	"context"
	"log/slog"

	"todoboard/internal/adapter/database/postgres"
	"todoboard/internal/core/domain"
	"todoboard/internal/core/port"
	tel "todoboard/internal/core/telemetry"
)

type UserRepository struct {
	db        *postgres.DB
	telemetry port.Telemetry
}

func NewUserRepository(db *postgres.DB, telemetry port.Telemetry) port.UserRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &UserRepository{db: db, telemetry: telemetry}
}

func (ur *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	ctx, span := ur.telemetry.StartRepositorySpan(ctx, "GetAll", "user", map[string]interface{}{
		"db.system": "postgresql",
		"db.table":  "users",
	})
	defer span.End()

	query := ur.db.QueryBuilder.Select("id", "username").
		From("users").
		OrderBy("username ASC")

	sql, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := ur.db.Query(ctx, sql, args...)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		slog.Error("Error fetching users", "error", err)
		return nil, postgres.TranslateError(err)
	}

	defer rows.Close()

	users := []domain.User{}

	for rows.Next() {
		var user domain.User

		if err := rows.Scan(&user.ID, &user.Username); err != nil {
			return nil, err
		}

		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.TranslateError(err)
	}

	span.SetAttributes(map[string]interface{}{"db.rows_returned": len(users)})

	return users, nil
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	query := ur.db.QueryBuilder.Insert("users").
		Columns("username").
		Values(user.Username).
		Suffix("RETURNING id, username")

	sql, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	var saved domain.User

	err = ur.db.QueryRow(ctx, sql, args...).Scan(&saved.ID, &saved.Username)

	if err != nil {
		slog.Error("Error creating user", "error", err)
		return domain.User{}, postgres.TranslateError(err)
	}

	return saved, nil
}
