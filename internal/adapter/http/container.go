package http

import (
	"log/slog"

	"todoboard/internal/adapter/database/postgres"
	pgrepository "todoboard/internal/adapter/database/postgres/repository"
	"todoboard/internal/adapter/database/sqlite"
	sqliterepository "todoboard/internal/adapter/database/sqlite/repository"
	"todoboard/internal/adapter/http/handler"
	"todoboard/internal/core/port"
	"todoboard/internal/core/service"
	"todoboard/internal/core/telemetry"
	"todoboard/internal/shared"
)

type Container struct {
	UserRepo port.UserRepository
	TodoRepo port.TodoRepository
	NoteRepo port.NoteRepository

	UserUseCase port.UserService
	TodoUseCase port.TodoService
	NoteUseCase port.NoteService

	UserHandler *handler.UserHandler
	TodoHandler *handler.TodoHandler
	NoteHandler *handler.NoteHandler

	Cache *shared.ResponseCache
}

// NewContainer wires the postgres-backed stack.
func NewContainer(db *postgres.DB, logger *shared.AppLogger, metrics *shared.AppMetrics, cache *shared.ResponseCache) *Container {
	probe := telemetry.NewOTELProbe(slog.Default())

	userRepo := pgrepository.NewUserRepository(db, probe)
	todoRepo := pgrepository.NewTodoRepository(db, probe)
	noteRepo := pgrepository.NewNoteRepository(db, probe)

	return newContainer(userRepo, todoRepo, noteRepo, probe, logger, metrics, cache)
}

// NewSQLiteContainer wires the sqlite-backed stack, used for local
// development and tests.
func NewSQLiteContainer(db *sqlite.DB, logger *shared.AppLogger, metrics *shared.AppMetrics, cache *shared.ResponseCache) *Container {
	probe := telemetry.NewOTELProbe(slog.Default())

	userRepo := sqliterepository.NewUserRepository(db, probe)
	todoRepo := sqliterepository.NewTodoRepository(db, probe)
	noteRepo := sqliterepository.NewNoteRepository(db, probe)

	return newContainer(userRepo, todoRepo, noteRepo, probe, logger, metrics, cache)
}

func newContainer(
	userRepo port.UserRepository,
	todoRepo port.TodoRepository,
	noteRepo port.NoteRepository,
	probe port.Telemetry,
	logger *shared.AppLogger,
	metrics *shared.AppMetrics,
	cache *shared.ResponseCache,
) *Container {
	userSvc := service.NewUserService(userRepo, probe)
	todoSvc := service.NewTodoService(todoRepo, noteRepo, probe)
	noteSvc := service.NewNoteService(noteRepo, probe)

	return &Container{
		UserRepo: userRepo,
		TodoRepo: todoRepo,
		NoteRepo: noteRepo,

		UserUseCase: userSvc,
		TodoUseCase: todoSvc,
		NoteUseCase: noteSvc,

		UserHandler: handler.NewUserHandler(userSvc, logger, metrics),
		TodoHandler: handler.NewTodoHandler(todoSvc, logger, metrics, cache),
		NoteHandler: handler.NewNoteHandler(noteSvc, logger, metrics),

		Cache: cache,
	}
}
