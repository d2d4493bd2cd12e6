package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"todoboard/internal/adapter/http/helper"
	"todoboard/internal/adapter/http/validation"
	"todoboard/internal/core/domain"
	"todoboard/internal/core/model/request"
	"todoboard/internal/core/model/response"
	"todoboard/internal/core/port"
	"todoboard/internal/core/util"
	"todoboard/internal/shared"
	"todoboard/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type TodoHandler struct {
	svc     port.TodoService
	logger  *shared.AppLogger
	metrics *shared.AppMetrics
	cache   *shared.ResponseCache
}

func NewTodoHandler(svc port.TodoService, logger *shared.AppLogger, metrics *shared.AppMetrics, cache *shared.ResponseCache) *TodoHandler {
	return &TodoHandler{
		svc:     svc,
		logger:  logger,
		metrics: metrics,
		cache:   cache,
	}
}

// GetTodos lists a user's todos, optionally filtered by priority and sorted
// by creation date or priority rank.
func (t *TodoHandler) GetTodos(c *gin.Context) {
	ctx, span := tracing.CreateChildSpan(c.Request.Context(), "handler.todo.GetTodos", []attribute.KeyValue{
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	userId, err := strconv.Atoi(c.Query("userId"))

	if err != nil {
		helper.SendBadRequestError(c, "userId", "Valid userId query parameter is required")
		return
	}

	filter := domain.TodoFilter{
		Priority:  domain.Priority(c.Query("filterPriority")),
		SortBy:    domain.SortField(c.Query("sortBy")),
		Ascending: strings.ToUpper(c.Query("sortOrder")) == "ASC",
	}

	span.SetAttributes(
		attribute.Int("user.id", userId),
		attribute.String("filter.priority", string(filter.Priority)),
		attribute.String("filter.sort_by", string(filter.SortBy)),
	)

	todos, err := t.svc.ListForUser(ctx, userId, filter)

	if err != nil {
		tracing.AddSpanError(span, err)
		t.logError(c, err, "Failed to get todos", zap.Int("user_id", userId))
		helper.SendInternalError(c, "Failed to fetch todos", err.Error())
		return
	}

	t.recordOperation(c, "list")

	data := make([]response.TodoResponse, 0, len(todos))

	for _, todo := range todos {
		data = append(data, response.NewTodoResponse(todo))
	}

	c.JSON(http.StatusOK, data)
}

func (t *TodoHandler) CreateTodo(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.CreateTodoRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if params.UserId == nil {
		helper.SendBadRequestError(c, "user_id", "Valid user_id is required")
		return
	}

	priority := domain.Priority(params.Priority)

	if params.Priority == "" {
		priority = domain.PriorityMedium
	}

	todo := domain.Todo{
		Title:       strings.TrimSpace(params.Title),
		Description: params.Description,
		Priority:    priority,
		UserId:      *params.UserId,
	}

	if err := validation.Validator.Struct(todo); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	todo, err = t.svc.Create(ctx, todo)

	if err != nil {
		var fkErr domain.ForeignKeyError

		if errors.As(err, &fkErr) {
			value := fkErr.Value

			if value == "" {
				value = strconv.Itoa(*params.UserId)
			}

			helper.SendBadRequestError(c, "user_id", "Invalid user ID",
				fmt.Sprintf("User with ID %s does not exist", value))
			return
		}

		t.logError(c, err, "Failed to create todo", zap.Int("user_id", *params.UserId))
		helper.SendInternalError(c, "Failed to add todo", err.Error())
		return
	}

	t.recordOperation(c, "create")
	t.invalidateListCache()

	helper.SendSuccess(c, http.StatusCreated, response.NewTodoResponse(todo))
}

func (t *TodoHandler) GetTodoByID(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.Atoi(c.Param("id"))

	if err != nil {
		helper.SendBadRequestError(c, "id", "Valid Todo ID is required")
		return
	}

	todo, notes, err := t.svc.GetWithNotes(ctx, id)

	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helper.SendNotFoundError(c, "Todo not found")
			return
		}

		t.logError(c, err, "Failed to get todo details", zap.Int("todo_id", id))
		helper.SendInternalError(c, "Failed to fetch todo details", err.Error())
		return
	}

	t.recordOperation(c, "get")

	c.JSON(http.StatusOK, response.NewTodoDetailResponse(todo, notes))
}

func (t *TodoHandler) UpdateTodo(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.Atoi(c.Param("id"))

	if err != nil {
		helper.SendBadRequestError(c, "id", "Valid Todo ID is required")
		return
	}

	// Fields absent from the body are left untouched; a bare bind into a
	// struct cannot tell "absent" from "zero value".
	var raw map[string]json.RawMessage

	if err := c.ShouldBindJSON(&raw); err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	update, ok := t.buildUpdate(c, raw)

	if !ok {
		return
	}

	if update.Empty() {
		helper.SendBadRequestError(c, "request", "No valid fields provided to update")
		return
	}

	todo, err := t.svc.Update(ctx, id, update)

	if err != nil {
		var checkErr domain.CheckConstraintError

		switch {
		case errors.Is(err, domain.ErrNotFound):
			helper.SendNotFoundError(c, "Todo not found")
		case errors.As(err, &checkErr):
			helper.SendBadRequestError(c, "priority", "Invalid value provided for a field", checkErr.Error())
		default:
			t.logError(c, err, "Failed to update todo", zap.Int("todo_id", id))
			helper.SendInternalError(c, "Failed to update todo", err.Error())
		}

		return
	}

	t.recordOperation(c, "update")
	t.invalidateListCache()

	helper.SendSuccess(c, http.StatusOK, response.NewTodoResponse(todo))
}

func (t *TodoHandler) DeleteTodo(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.Atoi(c.Param("id"))

	if err != nil {
		helper.SendBadRequestError(c, "id", "Valid Todo ID is required")
		return
	}

	if err := t.svc.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helper.SendNotFoundError(c, "Todo not found")
			return
		}

		t.logError(c, err, "Failed to delete todo", zap.Int("todo_id", id))
		helper.SendInternalError(c, "Failed to delete todo", err.Error())
		return
	}

	t.recordOperation(c, "delete")
	t.invalidateListCache()

	c.JSON(http.StatusOK, gin.H{
		"message": "Todo deleted successfully",
	})
}

// buildUpdate assembles the partial update, rejecting malformed fields. The
// second return is false when a response has already been written.
func (t *TodoHandler) buildUpdate(c *gin.Context, raw map[string]json.RawMessage) (domain.TodoUpdate, bool) {
	var update domain.TodoUpdate

	if rawTitle, ok := raw["title"]; ok {
		var title *string

		if err := json.Unmarshal(rawTitle, &title); err != nil {
			helper.SendBadRequestError(c, "title", "Invalid title value")
			return update, false
		}

		update.Title = title
	}

	if rawDescription, ok := raw["description"]; ok {
		var description *string

		if err := json.Unmarshal(rawDescription, &description); err != nil {
			helper.SendBadRequestError(c, "description", "Invalid description value")
			return update, false
		}

		// Empty string clears the description, same as null.
		if description != nil && *description == "" {
			description = nil
		}

		update.Description = description
		update.DescriptionSet = true
	}

	if rawPriority, ok := raw["priority"]; ok {
		var value string

		if err := json.Unmarshal(rawPriority, &value); err != nil {
			helper.SendBadRequestError(c, "priority", "Invalid priority value")
			return update, false
		}

		priority, err := domain.ParsePriority(value)

		if err != nil {
			helper.SendBadRequestError(c, "priority", "Invalid priority value")
			return update, false
		}

		update.Priority = &priority
	}

	if rawCompleted, ok := raw["completed"]; ok {
		var completed bool

		if err := json.Unmarshal(rawCompleted, &completed); err != nil {
			helper.SendBadRequestError(c, "completed", "Invalid completed value (must be true or false)")
			return update, false
		}

		update.Completed = &completed
	}

	return update, true
}

func (t *TodoHandler) recordOperation(c *gin.Context, operation string) {
	if t.metrics != nil {
		t.metrics.RecordTodoOperation(c.Request.Context(), operation)
	}
}

func (t *TodoHandler) invalidateListCache() {
	if t.cache != nil {
		t.cache.InvalidatePath("/api/todos")
	}
}

func (t *TodoHandler) logError(c *gin.Context, err error, msg string, fields ...zap.Field) {
	if t.logger != nil {
		shared.LogError(c.Request.Context(), t.logger, err, msg, fields...)
	}
}
