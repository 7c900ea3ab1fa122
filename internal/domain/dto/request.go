// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs decouple the HTTP layer from the domain model. Engine-level validation of bar groups
// happens in the bbs package; DTOs only guard transport limits.
package dto

import (
	"strconv"

	"github.com/guttosm/bbs-service/internal/domain/model"
)

// MaxItemsPerRequest bounds the number of bar groups accepted in one request.
const MaxItemsPerRequest = 5000

// CalculateScheduleRequest is the JSON body of the calculate and export endpoints.
//
// @Description Bar groups and schedule-wide options to compute a bar bending schedule
type CalculateScheduleRequest struct {
	// Items are the bar groups of the schedule, in output order.
	Items []model.BarGroupInput `json:"items"`
	// Options are schedule-wide defaults. Unset values come from the server configuration
	// and the active rate card.
	Options model.Options `json:"options"`
	// Save stores the computed schedule and returns its reference.
	Save bool `json:"save,omitempty" example:"false"`
} // @name CalculateScheduleRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ErrTooManyItems is returned when a request carries more than MaxItemsPerRequest bar groups.
var ErrTooManyItems = &ValidationError{
	Field:   "items",
	Message: "must not contain more than " + strconv.Itoa(MaxItemsPerRequest) + " bar groups",
}

// Validate checks transport limits. An empty item list is left to the engine, which reports it
// as a validation error with the same envelope as other input errors.
func (r *CalculateScheduleRequest) Validate() error {
	if len(r.Items) > MaxItemsPerRequest {
		return ErrTooManyItems
	}
	return nil
}

// UpdateRateCardRequest is the JSON body of PUT /api/rate-cards.
//
// @Description New steel rate card. At least one rate is required.
type UpdateRateCardRequest struct {
	DefaultRatePerKg *float64       `json:"default_rate_per_kg,omitempty" example:"70"`
	RatesByDiameter  map[int]float64 `json:"rates_by_diameter,omitempty"`
	Currency         string          `json:"currency,omitempty" binding:"max=8" example:"INR"`
} // @name UpdateRateCardRequest

// ToModel converts the request into a service update.
func (r UpdateRateCardRequest) ToModel() model.RateCardUpdate {
	return model.RateCardUpdate{
		DefaultRatePerKg: r.DefaultRatePerKg,
		RatesByDiameter:  r.RatesByDiameter,
		Currency:         r.Currency,
	}
}

// ListQuery holds the common pagination query parameters.
type ListQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
	Skip  int `form:"skip" binding:"omitempty,min=0"`
}

// ScheduleListQuery filters GET /api/schedules.
type ScheduleListQuery struct {
	ListQuery
	Project string `form:"project" binding:"max=200"`
}

// AuditLogQuery filters GET /api/audit-logs.
type AuditLogQuery struct {
	ListQuery
	Action string `form:"action" binding:"omitempty,oneof=calculate import export save_schedule update_rate_card"`
	Actor  string `form:"actor"`
}

// ToModel converts the query into log query options.
func (q AuditLogQuery) ToModel() model.LogQueryOptions {
	return model.LogQueryOptions{
		ActionType: model.ActionType(q.Action),
		AuditOnly:  true,
		Actor:      q.Actor,
		Limit:      q.Limit,
		Skip:       q.Skip,
	}
}
