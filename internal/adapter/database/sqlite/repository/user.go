package repository

import (
	"context"
	"log/slog"

	"todoboard/internal/adapter/database/sqlite"
	"todoboard/internal/core/domain"
	"todoboard/internal/core/port"
	tel "todoboard/internal/core/telemetry"
)

type UserRepository struct {
	db        *sqlite.DB
	scanner   *sqlite.Scanner
	telemetry port.Telemetry
}

func NewUserRepository(db *sqlite.DB, telemetry port.Telemetry) port.UserRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &UserRepository{
		db:        db,
		scanner:   sqlite.NewScanner(),
		telemetry: telemetry,
	}
}

func (ur *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	ctx, span := ur.telemetry.StartRepositorySpan(ctx, "GetAll", "user", map[string]interface{}{
		"db.system": "sqlite",
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

	rows, err := ur.db.QueryContext(ctx, sql, args...)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		slog.Error("Error fetching users", "error", err)
		return nil, sqlite.TranslateError(err)
	}

	defer rows.Close()

	users := []domain.User{}

	if err := ur.scanner.ScanRowsToSlice(rows, &users); err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(map[string]interface{}{"db.rows_returned": len(users)})

	return users, nil
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	query, args, err := ur.db.QueryBuilder.Insert("users").
		Columns("username").
		Values(user.Username).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	result, err := ur.db.ExecContext(ctx, query, args...)

	if err != nil {
		slog.Error("Error creating user", "error", err)
		return domain.User{}, sqlite.TranslateError(err)
	}

	id, err := result.LastInsertId()

	if err != nil {
		return domain.User{}, err
	}

	user.ID = int(id)

	return user, nil
}
