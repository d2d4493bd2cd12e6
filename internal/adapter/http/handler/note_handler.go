package handler

import (
	"net/http"
	"strconv"

	"todoboard/internal/adapter/http/helper"
	"todoboard/internal/adapter/http/validation"
	"todoboard/internal/core/domain"
	"todoboard/internal/core/model/request"
	"todoboard/internal/core/model/response"
	"todoboard/internal/core/port"
	"todoboard/internal/core/util"
	"todoboard/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NoteHandler struct {
	svc     port.NoteService
	logger  *shared.AppLogger
	metrics *shared.AppMetrics
}

func NewNoteHandler(svc port.NoteService, logger *shared.AppLogger, metrics *shared.AppMetrics) *NoteHandler {
	return &NoteHandler{
		svc:     svc,
		logger:  logger,
		metrics: metrics,
	}
}

func (n *NoteHandler) CreateNote(c *gin.Context) {
	ctx := c.Request.Context()

	todoId, err := strconv.Atoi(c.Param("id"))

	if err != nil {
		helper.SendBadRequestError(c, "id", "Valid Todo ID is required")
		return
	}

	params, err := util.ParamsToMap[request.CreateNoteRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	note := domain.Note{Content: params.Content, TodoId: todoId}

	if err := validation.Validator.Struct(note); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	saved, err := n.svc.AddToTodo(ctx, todoId, params.Content)

	if err != nil {
		if n.logger != nil {
			shared.LogError(ctx, n.logger, err, "Failed to add note", zap.Int("todo_id", todoId))
		}

		helper.SendInternalError(c, "Failed to add note", err.Error())
		return
	}

	if n.metrics != nil {
		n.metrics.RecordNoteOperation(ctx, "create")
	}

	helper.SendSuccess(c, http.StatusCreated, response.NewNoteResponse(saved))
}
