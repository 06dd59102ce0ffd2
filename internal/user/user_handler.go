package user

import (
	"net/http"

	"go-comdir/internal/shared/apperror"
	"go-comdir/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("user.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("user request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Message)
}

func (h *Handler) writeBindingError(c *gin.Context, err error) {
	h.logger.Warn("user request validation failed", zap.Error(err))
	httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
	response.Error(c, httpErr.Status, httpErr.Message)
}

func (h *Handler) List(c *gin.Context) {
	var req ListUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindingError(c, err)
		return
	}

	result, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListUsersResponse{
		Success:                 true,
		Message:                 "Users fetched successfully",
		AllUsersCount:           result.AllUsersCount,
		AllActiveUsersCount:     result.AllActiveUsersCount,
		AllUnassignedUsersCount: result.AllUnassignedUsersCount,
		Data:                    result.Users,
		Pagination:              response.NewPagination(result.Total, result.Page, result.Limit),
	})
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User fetched successfully", resp)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindingError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "User created successfully", resp)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindingError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User updated successfully", resp)
}

func (h *Handler) Migrate(c *gin.Context) {
	var req MigrateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindingError(c, err)
		return
	}

	resp, err := h.service.Migrate(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	// Unknown ids still answer success with no data; clients treat the
	// absence of a row as a no-op.
	if resp == nil {
		response.Success(c, http.StatusOK, "User migrated successfully", nil)
		return
	}

	response.Success(c, http.StatusOK, "User migrated successfully", resp)
}

func (h *Handler) Deactivate(c *gin.Context) {
	resp, err := h.service.Deactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User deactivated successfully", resp)
}

func (h *Handler) Delete(c *gin.Context) {
	_, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User deleted successfully", nil)
}
