package response

import (
	"time"

	"todoboard/internal/core/domain"
)

type UserResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

type TodoResponse struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Priority    string    `json:"priority"`
	Completed   bool      `json:"completed"`
	UserId      int       `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type NoteResponse struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	TodoId    int       `json:"todo_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TodoDetailResponse augments a todo with its notes plus the reserved
// tags/assigned_users placeholders, always present and empty.
type TodoDetailResponse struct {
	TodoResponse
	Notes         []NoteResponse `json:"notes"`
	Tags          []string       `json:"tags"`
	AssignedUsers []UserResponse `json:"assigned_users"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ResponseError struct {
	Code    string            `json:"code"`
	Errors  []ValidationError `json:"errors"`
	Details any               `json:"details,omitempty"`
}

type SuccessResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error ResponseError `json:"error"`
}

func NewUserResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
	}
}

func NewTodoResponse(todo domain.Todo) TodoResponse {
	return TodoResponse{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		Priority:    string(todo.Priority),
		Completed:   todo.Completed,
		UserId:      todo.UserId,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
}

func NewNoteResponse(note domain.Note) NoteResponse {
	return NoteResponse{
		ID:        note.ID,
		Content:   note.Content,
		TodoId:    note.TodoId,
		CreatedAt: note.CreatedAt,
	}
}

func NewTodoDetailResponse(todo domain.Todo, notes []domain.Note) TodoDetailResponse {
	noteResponses := make([]NoteResponse, 0, len(notes))

	for _, note := range notes {
		noteResponses = append(noteResponses, NewNoteResponse(note))
	}

	return TodoDetailResponse{
		TodoResponse:  NewTodoResponse(todo),
		Notes:         noteResponses,
		Tags:          []string{},
		AssignedUsers: []UserResponse{},
	}
}
