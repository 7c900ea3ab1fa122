package http

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bbs-service/internal/circuitbreaker"
)

// HealthChecker probes one dependency of the service.
type HealthChecker interface {
	Check() error
}

// HealthCheckerFunc adapts a function to HealthChecker.
type HealthCheckerFunc func() error

// Check calls f.
func (f HealthCheckerFunc) Check() error { return f() }

// HealthHandler serves the liveness and readiness probes. Registration happens during
// startup, before the router serves requests.
type HealthHandler struct {
	checkers        map[string]HealthChecker
	circuitBreakers map[string]*circuitbreaker.CircuitBreaker
}

// BreakerStatus is the readiness view of one store's circuit breaker.
type BreakerStatus struct {
	State    string `json:"state"`
	Failures int    `json:"failures"`
}

// ReadinessResponse is the body of /readyz.
type ReadinessResponse struct {
	Status   string                   `json:"status" example:"ok"`
	Checks   map[string]string        `json:"checks"`
	Breakers map[string]BreakerStatus `json:"circuit_breakers,omitempty"`
}

// NewHealthHandler creates a handler with nothing registered.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers:        make(map[string]HealthChecker),
		circuitBreakers: make(map[string]*circuitbreaker.CircuitBreaker),
	}
}

// RegisterCircuitBreaker makes readiness fail while cb is not closed.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	if cb != nil {
		h.circuitBreakers[name] = cb
	}
}

// RegisterChecker registers a dependency probed by the readiness endpoint.
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	h.checkers[name] = checker
}

// Names lists the registered checkers and breakers, sorted.
func (h *HealthHandler) Names() []string {
	names := make([]string, 0, len(h.checkers)+len(h.circuitBreakers))
	for name := range h.checkers {
		names = append(names, name)
	}
	for name := range h.circuitBreakers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds /healthz and /readyz to router.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness handles the liveness probe endpoint.
// @Summary     Liveness probe
// @Description Returns OK while the process serves requests. Calculations need no dependency, so liveness never probes MongoDB.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles the readiness probe endpoint.
// @Summary     Readiness probe
// @Description Probes the registered stores. Any failing probe or open circuit breaker reports the service as degraded.
// @Tags        Health
// @Produce     json
// @Success     200 {object} ReadinessResponse "Service is ready"
// @Failure     503 {object} ReadinessResponse "A store is unavailable"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	resp := ReadinessResponse{Status: "ok", Checks: make(map[string]string, len(h.checkers))}

	for name, checker := range h.checkers {
		if err := checker.Check(); err != nil {
			resp.Checks[name] = err.Error()
			resp.Status = "degraded"
			continue
		}
		resp.Checks[name] = "ok"
	}

	if len(h.circuitBreakers) > 0 {
		resp.Breakers = make(map[string]BreakerStatus, len(h.circuitBreakers))
	}
	for name, cb := range h.circuitBreakers {
		stats := cb.GetStats()
		resp.Breakers[name] = BreakerStatus{State: stats.State, Failures: stats.FailureCount}
		if !stats.IsHealthy {
			resp.Status = "degraded"
		}
	}

	if len(resp.Checks) == 0 && len(resp.Breakers) == 0 {
		resp.Checks["service"] = "ok"
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
