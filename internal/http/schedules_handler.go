package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bbs-service/internal/domain/dto"
	"github.com/guttosm/bbs-service/internal/i18n"
	"github.com/guttosm/bbs-service/internal/service"
)

const defaultListLimit = 50

// SchedulesHandler serves saved schedules.
type SchedulesHandler struct {
	schedules service.SchedulesService
}

// NewSchedulesHandler creates a new SchedulesHandler instance.
func NewSchedulesHandler(schedules service.SchedulesService) *SchedulesHandler {
	return &SchedulesHandler{schedules: schedules}
}

// ListSchedules handles GET /api/schedules requests.
//
// @Summary      List saved schedules
// @Description  Returns saved schedules newest first, optionally filtered by project name.
// @Tags         Schedules
// @Produce      json
// @Param        project query string false "Project name"
// @Param        limit   query int    false "Page size" minimum(1) maximum(500) default(50)
// @Param        skip    query int    false "Number of schedules to skip" minimum(0)
// @Success      200 {object} dto.SuccessResponse{data=dto.ListResponse} "Saved schedules"
// @Failure      400 {object} dto.ErrorResponse "Invalid query"
// @Failure      503 {object} dto.ErrorResponse "Schedule store unavailable"
// @Security     ApiKeyAuth
// @Router       /api/schedules [get]
func (h *SchedulesHandler) ListSchedules(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var q dto.ScheduleListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}
	if q.Limit == 0 {
		q.Limit = defaultListLimit
	}

	saved, err := h.schedules.List(c.Request.Context(), q.Project, q.Limit, q.Skip)
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(dto.ListResponse{Items: saved, Limit: q.Limit, Skip: q.Skip})
}

// GetSchedule handles GET /api/schedules/:reference requests.
//
// @Summary      Get a saved schedule
// @Description  Returns the stored input and result of a saved schedule.
// @Tags         Schedules
// @Produce      json
// @Param        reference path string true "Schedule reference"
// @Success      200 {object} dto.SuccessResponse{data=repository.SavedSchedule} "Saved schedule"
// @Failure      404 {object} dto.ErrorResponse "Unknown reference"
// @Failure      503 {object} dto.ErrorResponse "Schedule store unavailable"
// @Security     ApiKeyAuth
// @Router       /api/schedules/{reference} [get]
func (h *SchedulesHandler) GetSchedule(c *gin.Context) {
	builder := NewResponseBuilder(c)

	saved, err := h.schedules.Get(c.Request.Context(), c.Param("reference"))
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(saved)
}
