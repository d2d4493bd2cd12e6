// Package ui holds the board page: an explicit view state, an event
// reducer as the single mutation path, and an html/template renderer.
package ui

import (
	"todoboard/internal/core/model/response"
)

// ViewState is everything the board page renders from. It is only ever
// changed by Reduce.
type ViewState struct {
	Users          []response.UserResponse
	UsersLoading   bool
	SelectedUserID int

	Todos        []response.TodoResponse
	TodosLoading bool

	FilterPriority string
	SortBy         string
	SortOrder      string

	FormOpen        bool
	EditingID       int
	FormTitle       string
	FormDescription string
	FormPriority    string

	NoteOpen   bool
	NoteTodoID int
	NoteDraft  string

	DetailOpen    bool
	DetailTodoID  int
	DetailLoading bool
	Detail        *response.TodoDetailResponse

	// BannerError is a list-level failure shown inline; AlertError is an
	// action-level failure shown as a dismissable alert.
	BannerError string
	AlertError  string
}

func NewViewState() ViewState {
	return ViewState{
		SortBy:       "createdAt",
		SortOrder:    "desc",
		FormPriority: "medium",
	}
}

func (s ViewState) Editing() bool {
	return s.FormOpen && s.EditingID != 0
}

// Event is a user action or a command result.
type Event interface{ isEvent() }

type (
	AppStarted struct{}

	UsersLoaded struct{ Users []response.UserResponse }
	UsersFailed struct{ Err error }

	UserSelected     struct{ UserID int }
	FilterChanged    struct{ Priority string }
	SortByChanged    struct{ SortBy string }
	SortOrderToggled struct{}

	TodosLoaded struct{ Todos []response.TodoResponse }
	TodosFailed struct{ Err error }

	CreateOpened  struct{}
	EditOpened    struct{ Todo response.TodoResponse }
	FormEdited    struct{ Title, Description, Priority string }
	FormClosed    struct{}
	FormSubmitted struct{}

	TodoSaved      struct{ Todo response.TodoResponse }
	TodoSaveFailed struct{ Err error }

	CompletionToggled struct{ TodoID int }
	TodoPatched       struct{ Todo response.TodoResponse }
	TodoPatchFailed   struct{ Err error }

	DeleteRequested  struct{ TodoID int }
	TodoDeleted      struct{ TodoID int }
	TodoDeleteFailed struct{ Err error }

	NoteOpened    struct{ TodoID int }
	NoteEdited    struct{ Content string }
	NoteClosed    struct{}
	NoteSubmitted struct{}
	NoteAdded     struct{ Note response.NoteResponse }
	NoteAddFailed struct{ Err error }

	DetailOpened struct{ TodoID int }
	DetailLoaded struct{ Detail response.TodoDetailResponse }
	DetailFailed struct{ Err error }
	DetailClosed struct{}

	AlertDismissed struct{}
)

func (AppStarted) isEvent()        {}
func (UsersLoaded) isEvent()       {}
func (UsersFailed) isEvent()       {}
func (UserSelected) isEvent()      {}
func (FilterChanged) isEvent()     {}
func (SortByChanged) isEvent()     {}
func (SortOrderToggled) isEvent()  {}
func (TodosLoaded) isEvent()       {}
func (TodosFailed) isEvent()       {}
func (CreateOpened) isEvent()      {}
func (EditOpened) isEvent()        {}
func (FormEdited) isEvent()        {}
func (FormClosed) isEvent()        {}
func (FormSubmitted) isEvent()     {}
func (TodoSaved) isEvent()         {}
func (TodoSaveFailed) isEvent()    {}
func (CompletionToggled) isEvent() {}
func (TodoPatched) isEvent()       {}
func (TodoPatchFailed) isEvent()   {}
func (DeleteRequested) isEvent()   {}
func (TodoDeleted) isEvent()       {}
func (TodoDeleteFailed) isEvent()  {}
func (NoteOpened) isEvent()        {}
func (NoteEdited) isEvent()        {}
func (NoteClosed) isEvent()        {}
func (NoteSubmitted) isEvent()     {}
func (NoteAdded) isEvent()         {}
func (NoteAddFailed) isEvent()     {}
func (DetailOpened) isEvent()      {}
func (DetailLoaded) isEvent()      {}
func (DetailFailed) isEvent()      {}
func (DetailClosed) isEvent()      {}
func (AlertDismissed) isEvent()    {}

// Command is a side effect Reduce asks the store to run.
type Command interface{ isCommand() }

type (
	FetchUsers struct{}

	FetchTodos struct {
		UserID         int
		FilterPriority string
		SortBy         string
		SortOrder      string
	}

	CreateTodo struct {
		UserID      int
		Title       string
		Description string
		Priority    string
	}

	SaveTodo struct {
		ID          int
		Title       string
		Description string
		Priority    string
	}

	PatchCompletion struct {
		ID        int
		Completed bool
	}

	DeleteTodo struct{ ID int }

	AddNote struct {
		TodoID  int
		Content string
	}

	FetchDetail struct{ ID int }
)

func (FetchUsers) isCommand()      {}
func (FetchTodos) isCommand()      {}
func (CreateTodo) isCommand()      {}
func (SaveTodo) isCommand()        {}
func (PatchCompletion) isCommand() {}
func (DeleteTodo) isCommand()      {}
func (AddNote) isCommand()         {}
func (FetchDetail) isCommand()     {}

// Reduce applies one event and returns the next state plus the commands
// it triggers. It never performs I/O itself.
func Reduce(state ViewState, event Event) (ViewState, []Command) {
	switch e := event.(type) {
	case AppStarted:
		state.UsersLoading = true
		return state, []Command{FetchUsers{}}

	case UsersLoaded:
		state.UsersLoading = false
		state.Users = e.Users
		state.BannerError = ""

		if len(e.Users) > 0 {
			state.SelectedUserID = e.Users[0].ID
			state.TodosLoading = true
			return state, []Command{fetchTodos(state)}
		}

		return state, nil

	case UsersFailed:
		state.UsersLoading = false
		state.BannerError = "Failed to load users"
		return state, nil

	case UserSelected:
		state.SelectedUserID = e.UserID
		state.TodosLoading = true
		return state, []Command{fetchTodos(state)}

	case FilterChanged:
		state.FilterPriority = e.Priority
		state.TodosLoading = true
		return state, []Command{fetchTodos(state)}

	case SortByChanged:
		state.SortBy = e.SortBy
		state.TodosLoading = true
		return state, []Command{fetchTodos(state)}

	case SortOrderToggled:
		if state.SortOrder == "asc" {
			state.SortOrder = "desc"
		} else {
			state.SortOrder = "asc"
		}

		state.TodosLoading = true
		return state, []Command{fetchTodos(state)}

	case TodosLoaded:
		state.TodosLoading = false
		state.Todos = e.Todos
		state.BannerError = ""
		return state, nil

	case TodosFailed:
		state.TodosLoading = false
		state.BannerError = "Failed to load todos"
		return state, nil

	case CreateOpened:
		state.FormOpen = true
		state.EditingID = 0
		state.FormTitle = ""
		state.FormDescription = ""
		state.FormPriority = "medium"
		return state, nil

	case EditOpened:
		state.FormOpen = true
		state.EditingID = e.Todo.ID
		state.FormTitle = e.Todo.Title
		state.FormPriority = e.Todo.Priority

		if e.Todo.Description != nil {
			state.FormDescription = *e.Todo.Description
		} else {
			state.FormDescription = ""
		}

		return state, nil

	case FormEdited:
		state.FormTitle = e.Title
		state.FormDescription = e.Description
		state.FormPriority = e.Priority
		return state, nil

	case FormClosed:
		return clearForm(state), nil

	case FormSubmitted:
		if state.EditingID != 0 {
			return state, []Command{SaveTodo{
				ID:          state.EditingID,
				Title:       state.FormTitle,
				Description: state.FormDescription,
				Priority:    state.FormPriority,
			}}
		}

		return state, []Command{CreateTodo{
			UserID:      state.SelectedUserID,
			Title:       state.FormTitle,
			Description: state.FormDescription,
			Priority:    state.FormPriority,
		}}

	case TodoSaved:
		state = clearForm(state)
		state.AlertError = ""
		state.TodosLoading = true
		return state, []Command{fetchTodos(state)}

	case TodoSaveFailed:
		state.AlertError = errorMessage(e.Err, "Failed to save todo")
		return state, nil

	case CompletionToggled:
		for _, todo := range state.Todos {
			if todo.ID == e.TodoID {
				return state, []Command{PatchCompletion{ID: todo.ID, Completed: !todo.Completed}}
			}
		}

		return state, nil

	case TodoPatched:
		for i, todo := range state.Todos {
			if todo.ID == e.Todo.ID {
				state.Todos[i] = e.Todo
				break
			}
		}

		state.AlertError = ""
		return state, nil

	case TodoPatchFailed:
		state.AlertError = errorMessage(e.Err, "Failed to update todo")
		return state, nil

	case DeleteRequested:
		return state, []Command{DeleteTodo{ID: e.TodoID}}

	case TodoDeleted:
		todos := make([]response.TodoResponse, 0, len(state.Todos))

		for _, todo := range state.Todos {
			if todo.ID != e.TodoID {
				todos = append(todos, todo)
			}
		}

		state.Todos = todos
		state.AlertError = ""
		return state, nil

	case TodoDeleteFailed:
		state.AlertError = errorMessage(e.Err, "Failed to delete todo")
		return state, nil

	case NoteOpened:
		state.NoteOpen = true
		state.NoteTodoID = e.TodoID
		state.NoteDraft = ""
		return state, nil

	case NoteEdited:
		state.NoteDraft = e.Content
		return state, nil

	case NoteClosed:
		return clearNote(state), nil

	case NoteSubmitted:
		return state, []Command{AddNote{TodoID: state.NoteTodoID, Content: state.NoteDraft}}

	case NoteAdded:
		state = clearNote(state)
		state.AlertError = ""
		return state, nil

	case NoteAddFailed:
		state.AlertError = errorMessage(e.Err, "Failed to add note")
		return state, nil

	case DetailOpened:
		state.DetailOpen = true
		state.DetailTodoID = e.TodoID
		state.DetailLoading = true
		state.Detail = nil
		return state, []Command{FetchDetail{ID: e.TodoID}}

	case DetailLoaded:
		state.DetailLoading = false
		detail := e.Detail
		state.Detail = &detail
		return state, nil

	case DetailFailed:
		state.DetailOpen = false
		state.DetailLoading = false
		state.Detail = nil
		state.AlertError = errorMessage(e.Err, "Failed to fetch todo details")
		return state, nil

	case DetailClosed:
		state.DetailOpen = false
		state.DetailTodoID = 0
		state.DetailLoading = false
		state.Detail = nil
		return state, nil

	case AlertDismissed:
		state.AlertError = ""
		return state, nil
	}

	return state, nil
}

func fetchTodos(state ViewState) FetchTodos {
	return FetchTodos{
		UserID:         state.SelectedUserID,
		FilterPriority: state.FilterPriority,
		SortBy:         state.SortBy,
		SortOrder:      state.SortOrder,
	}
}

func clearForm(state ViewState) ViewState {
	state.FormOpen = false
	state.EditingID = 0
	state.FormTitle = ""
	state.FormDescription = ""
	state.FormPriority = "medium"
	return state
}

func clearNote(state ViewState) ViewState {
	state.NoteOpen = false
	state.NoteTodoID = 0
	state.NoteDraft = ""
	return state
}

func errorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}

	return err.Error()
}
