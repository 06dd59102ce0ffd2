package location

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
	l := zap.L().Named("location.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("location.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("location request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Message)
}

func (h *Handler) GetCountries(c *gin.Context) {
	resp, err := h.service.GetCountries(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Countries fetched successfully", resp)
}

func (h *Handler) GetStates(c *gin.Context) {
	resp, err := h.service.GetStatesByCountry(c.Request.Context(), c.Param("countryId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "States fetched successfully", resp)
}

func (h *Handler) GetCities(c *gin.Context) {
	resp, err := h.service.GetCitiesByState(c.Request.Context(), c.Param("stateId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Cities fetched successfully", resp)
}
