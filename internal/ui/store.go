package ui

import (
	"context"
	"sync"

	"todoboard/internal/core/model/request"
	"todoboard/pkg/client"
)

// Store owns a ViewState and runs the commands Reduce emits against the
// API client, feeding the results back in as events until the state
// settles.
type Store struct {
	mu     sync.Mutex
	state  ViewState
	client *client.Client
}

func NewStore(apiClient *client.Client) *Store {
	return &Store{
		state:  NewViewState(),
		client: apiClient,
	}
}

func (s *Store) State() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Dispatch reduces the event and executes resulting commands
// synchronously, dispatching their outcome events in turn.
func (s *Store) Dispatch(ctx context.Context, event Event) {
	s.mu.Lock()
	state, commands := Reduce(s.state, event)
	s.state = state
	s.mu.Unlock()

	for _, command := range commands {
		s.Dispatch(ctx, s.execute(ctx, command))
	}
}

func (s *Store) execute(ctx context.Context, command Command) Event {
	switch cmd := command.(type) {
	case FetchUsers:
		users, err := s.client.ListUsers(ctx)

		if err != nil {
			return UsersFailed{Err: err}
		}

		return UsersLoaded{Users: users}

	case FetchTodos:
		todos, err := s.client.ListTodos(ctx, client.ListTodosOptions{
			UserID:         cmd.UserID,
			FilterPriority: cmd.FilterPriority,
			SortBy:         cmd.SortBy,
			SortOrder:      cmd.SortOrder,
		})

		if err != nil {
			return TodosFailed{Err: err}
		}

		return TodosLoaded{Todos: todos}

	case CreateTodo:
		userID := cmd.UserID
		req := request.CreateTodoRequest{
			Title:    cmd.Title,
			Priority: cmd.Priority,
			UserId:   &userID,
		}

		if cmd.Description != "" {
			description := cmd.Description
			req.Description = &description
		}

		todo, err := s.client.CreateTodo(ctx, req)

		if err != nil {
			return TodoSaveFailed{Err: err}
		}

		return TodoSaved{Todo: todo}

	case SaveTodo:
		title := cmd.Title
		priority := cmd.Priority

		req := client.UpdateTodoRequest{
			Title:          &title,
			Priority:       &priority,
			DescriptionSet: true,
		}

		if cmd.Description != "" {
			description := cmd.Description
			req.Description = &description
		}

		todo, err := s.client.UpdateTodo(ctx, cmd.ID, req)

		if err != nil {
			return TodoSaveFailed{Err: err}
		}

		return TodoSaved{Todo: todo}

	case PatchCompletion:
		completed := cmd.Completed

		todo, err := s.client.UpdateTodo(ctx, cmd.ID, client.UpdateTodoRequest{Completed: &completed})

		if err != nil {
			return TodoPatchFailed{Err: err}
		}

		return TodoPatched{Todo: todo}

	case DeleteTodo:
		if err := s.client.DeleteTodo(ctx, cmd.ID); err != nil {
			return TodoDeleteFailed{Err: err}
		}

		return TodoDeleted{TodoID: cmd.ID}

	case AddNote:
		note, err := s.client.AddNote(ctx, cmd.TodoID, cmd.Content)

		if err != nil {
			return NoteAddFailed{Err: err}
		}

		return NoteAdded{Note: note}

	case FetchDetail:
		detail, err := s.client.GetTodo(ctx, cmd.ID)

		if err != nil {
			return DetailFailed{Err: err}
		}

		return DetailLoaded{Detail: detail}
	}

	return nil
}
