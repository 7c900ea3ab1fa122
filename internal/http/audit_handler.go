package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bbs-service/internal/domain/dto"
	"github.com/guttosm/bbs-service/internal/i18n"
	"github.com/guttosm/bbs-service/internal/service"
)

// AuditHandler serves stored audit entries.
type AuditHandler struct {
	logging service.LoggingService
}

// NewAuditHandler creates a new AuditHandler instance.
func NewAuditHandler(logging service.LoggingService) *AuditHandler {
	return &AuditHandler{logging: logging}
}

// ListAuditLogs handles GET /api/audit-logs requests.
//
// @Summary      List audit entries
// @Description  Returns audit entries newest first, filtered by action and actor. Requires an admin bearer token.
// @Tags         Audit
// @Produce      json
// @Param        Authorization header string true  "Bearer token with the admin role"
// @Param        action        query  string false "calculate, import, export, save_schedule or update_rate_card"
// @Param        actor         query  string false "Actor email or subject"
// @Param        limit         query  int    false "Page size" minimum(1) maximum(500) default(50)
// @Param        skip          query  int    false "Number of entries to skip" minimum(0)
// @Success      200 {object} dto.SuccessResponse{data=dto.ListResponse} "Audit entries with the total match count"
// @Failure      400 {object} dto.ErrorResponse "Invalid query"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure      403 {object} dto.ErrorResponse "Not an admin"
// @Failure      503 {object} dto.ErrorResponse "Log store unavailable"
// @Security     BearerAuth
// @Router       /api/audit-logs [get]
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var q dto.AuditLogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}
	if q.Limit == 0 {
		q.Limit = defaultListLimit
	}

	ctx := c.Request.Context()
	opts := q.ToModel()

	entries, err := h.logging.QueryLogs(ctx, opts)
	if err != nil {
		builder.Fail(err)
		return
	}
	total, err := h.logging.CountLogs(ctx, opts)
	if err != nil {
		builder.Fail(err)
		return
	}

	builder.SuccessOK(dto.ListResponse{Items: entries, Total: &total, Limit: q.Limit, Skip: q.Skip})
}
