package http

import (
	"github.com/gin-gonic/gin"
)

// BBSRoutes registers the schedule calculation routes under /bbs.
type BBSRoutes struct {
	handler *Handler
}

// NewBBSRoutes creates a new BBSRoutes instance.
func NewBBSRoutes(handler *Handler) *BBSRoutes {
	return &BBSRoutes{handler: handler}
}

// RegisterRoutes implements RouteGroup.
func (r *BBSRoutes) RegisterRoutes(api, _ *gin.RouterGroup) {
	bbs := api.Group("/bbs")
	{
		bbs.POST("/calculate", r.handler.CalculateSchedule)
		bbs.POST("/import", r.handler.ImportSchedule)
		bbs.POST("/export", r.handler.ExportSchedule)
		bbs.GET("/template", r.handler.ImportTemplate)
		bbs.GET("/codes", r.handler.ListCodes)
	}
}

// RateCardRoutes registers the rate card routes. Only reads are open to non-admin callers.
type RateCardRoutes struct {
	handler *RateCardsHandler
}

// NewRateCardRoutes creates a new RateCardRoutes instance.
func NewRateCardRoutes(handler *RateCardsHandler) *RateCardRoutes {
	return &RateCardRoutes{handler: handler}
}

// RegisterRoutes implements RouteGroup.
func (r *RateCardRoutes) RegisterRoutes(api, admin *gin.RouterGroup) {
	api.GET("/rate-cards", r.handler.GetActiveRateCard)
	api.GET("/rate-cards/history", r.handler.ListRateCards)
	admin.PUT("/rate-cards", r.handler.UpdateRateCard)
}

// ScheduleRoutes registers the saved schedule routes.
type ScheduleRoutes struct {
	handler *SchedulesHandler
}

// NewScheduleRoutes creates a new ScheduleRoutes instance.
func NewScheduleRoutes(handler *SchedulesHandler) *ScheduleRoutes {
	return &ScheduleRoutes{handler: handler}
}

// RegisterRoutes implements RouteGroup.
func (r *ScheduleRoutes) RegisterRoutes(api, _ *gin.RouterGroup) {
	api.GET("/schedules", r.handler.ListSchedules)
	api.GET("/schedules/:reference", r.handler.GetSchedule)
}

// AuditRoutes registers the audit log routes, all of them admin only.
type AuditRoutes struct {
	handler *AuditHandler
}

// NewAuditRoutes creates a new AuditRoutes instance.
func NewAuditRoutes(handler *AuditHandler) *AuditRoutes {
	return &AuditRoutes{handler: handler}
}

// RegisterRoutes implements RouteGroup.
func (r *AuditRoutes) RegisterRoutes(_, admin *gin.RouterGroup) {
	admin.GET("/audit-logs", r.handler.ListAuditLogs)
}
