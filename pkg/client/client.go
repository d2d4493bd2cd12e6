// Package client is a typed HTTP client for the todoboard API. The
// server-rendered board page uses it, and it doubles as the Go SDK for
// external consumers.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"todoboard/internal/core/model/request"
	"todoboard/internal/core/model/response"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: 10 * time.Second})
}

func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	StatusCode int
	Code       string
	Errors     []response.ValidationError
	Details    any
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Errors[0].Message)
	}

	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Code)
}

// Message returns the first validation message, or the code when the
// server sent none.
func (e *APIError) Message() string {
	if len(e.Errors) > 0 {
		return e.Errors[0].Message
	}

	return e.Code
}

type ListTodosOptions struct {
	UserID         int
	FilterPriority string
	SortBy         string
	SortOrder      string
}

// UpdateTodoRequest carries only the fields the caller wants changed.
// DescriptionSet distinguishes clearing the description from leaving it.
type UpdateTodoRequest struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Priority       *string
	Completed      *bool
}

func (r UpdateTodoRequest) MarshalJSON() ([]byte, error) {
	fields := map[string]any{}

	if r.Title != nil {
		fields["title"] = *r.Title
	}

	if r.DescriptionSet {
		fields["description"] = r.Description
	}

	if r.Priority != nil {
		fields["priority"] = *r.Priority
	}

	if r.Completed != nil {
		fields["completed"] = *r.Completed
	}

	return json.Marshal(fields)
}

func (c *Client) ListUsers(ctx context.Context) ([]response.UserResponse, error) {
	var users []response.UserResponse

	if err := c.do(ctx, http.MethodGet, "/api/users", nil, nil, &users); err != nil {
		return nil, err
	}

	return users, nil
}

func (c *Client) ListTodos(ctx context.Context, opts ListTodosOptions) ([]response.TodoResponse, error) {
	query := url.Values{}
	query.Set("userId", strconv.Itoa(opts.UserID))

	if opts.FilterPriority != "" {
		query.Set("filterPriority", opts.FilterPriority)
	}

	if opts.SortBy != "" {
		query.Set("sortBy", opts.SortBy)
	}

	if opts.SortOrder != "" {
		query.Set("sortOrder", opts.SortOrder)
	}

	var todos []response.TodoResponse

	if err := c.do(ctx, http.MethodGet, "/api/todos", query, nil, &todos); err != nil {
		return nil, err
	}

	return todos, nil
}

func (c *Client) CreateTodo(ctx context.Context, req request.CreateTodoRequest) (response.TodoResponse, error) {
	var envelope struct {
		Data response.TodoResponse `json:"data"`
	}

	if err := c.do(ctx, http.MethodPost, "/api/todos", nil, req, &envelope); err != nil {
		return response.TodoResponse{}, err
	}

	return envelope.Data, nil
}

func (c *Client) GetTodo(ctx context.Context, id int) (response.TodoDetailResponse, error) {
	var todo response.TodoDetailResponse

	if err := c.do(ctx, http.MethodGet, "/api/todos/"+strconv.Itoa(id), nil, nil, &todo); err != nil {
		return response.TodoDetailResponse{}, err
	}

	return todo, nil
}

func (c *Client) UpdateTodo(ctx context.Context, id int, req UpdateTodoRequest) (response.TodoResponse, error) {
	var envelope struct {
		Data response.TodoResponse `json:"data"`
	}

	if err := c.do(ctx, http.MethodPut, "/api/todos/"+strconv.Itoa(id), nil, req, &envelope); err != nil {
		return response.TodoResponse{}, err
	}

	return envelope.Data, nil
}

func (c *Client) DeleteTodo(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/todos/"+strconv.Itoa(id), nil, nil, nil)
}

func (c *Client) AddNote(ctx context.Context, todoID int, content string) (response.NoteResponse, error) {
	var envelope struct {
		Data response.NoteResponse `json:"data"`
	}

	req := request.CreateNoteRequest{Content: content}
	path := "/api/todos/" + strconv.Itoa(todoID) + "/notes"

	if err := c.do(ctx, http.MethodPost, path, nil, req, &envelope); err != nil {
		return response.NoteResponse{}, err
	}

	return envelope.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	target := c.baseURL + path

	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)

		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)

	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)

	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var envelope response.ErrorResponse

	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		apiErr.Code = resp.Status
		return apiErr
	}

	apiErr.Code = envelope.Error.Code
	apiErr.Errors = envelope.Error.Errors
	apiErr.Details = envelope.Error.Details

	return apiErr
}
