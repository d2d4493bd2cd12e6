package request

type CreateTodoRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Priority    string  `json:"priority"`
	UserId      *int    `json:"user_id"`
}

type CreateNoteRequest struct {
	Content string `json:"content"`
}
