package handler

import (
	"net/http"

	"todoboard/internal/adapter/http/helper"
	"todoboard/internal/core/model/response"
	"todoboard/internal/core/port"
	"todoboard/internal/shared"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc     port.UserService
	logger  *shared.AppLogger
	metrics *shared.AppMetrics
}

func NewUserHandler(svc port.UserService, logger *shared.AppLogger, metrics *shared.AppMetrics) *UserHandler {
	return &UserHandler{
		svc:     svc,
		logger:  logger,
		metrics: metrics,
	}
}

func (u *UserHandler) GetUsers(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := u.svc.GetAll(ctx)

	if err != nil {
		if u.logger != nil {
			shared.LogError(ctx, u.logger, err, "Failed to get users")
		}

		helper.SendInternalError(c, "Failed to fetch users", err.Error())
		return
	}

	if u.metrics != nil {
		u.metrics.RecordUserOperation(ctx, "list")
	}

	data := make([]response.UserResponse, 0, len(users))

	for _, user := range users {
		data = append(data, response.NewUserResponse(user))
	}

	c.JSON(http.StatusOK, data)
}
