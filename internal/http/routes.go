package http

import (
	"github.com/gin-gonic/gin"
)

// RouteGroup defines a group of routes that can be registered.
type RouteGroup interface {
	// RegisterRoutes registers routes on the API group. Routes on admin
	// additionally require an admin bearer token.
	RegisterRoutes(api, admin *gin.RouterGroup)
}

var (
	_ RouteGroup = (*BBSRoutes)(nil)
	_ RouteGroup = (*RateCardRoutes)(nil)
	_ RouteGroup = (*ScheduleRoutes)(nil)
	_ RouteGroup = (*AuditRoutes)(nil)
)
