package dto

import (
	"net/http"
	"time"

	"github.com/guttosm/bbs-service/internal/bbs"
	"github.com/guttosm/bbs-service/internal/domain/model"
)

const (
	// ErrCodeInvalidRequest indicates an invalid request.
	ErrCodeInvalidRequest = "invalid_request"
	// ErrCodeUnprocessable indicates well-formed input that describes impossible geometry.
	ErrCodeUnprocessable = "unprocessable_entity"
	// ErrCodeUnsupportedMedia indicates an upload in an unsupported format.
	ErrCodeUnsupportedMedia = "unsupported_media_type"
	// ErrCodePayloadTooLarge indicates an upload above the size limit.
	ErrCodePayloadTooLarge = "payload_too_large"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"
	// ErrCodeUnauthorized indicates missing or invalid authentication.
	ErrCodeUnauthorized = "unauthorized"
	// ErrCodeForbidden indicates insufficient permissions.
	ErrCodeForbidden = "forbidden"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound = "not_found"
	// ErrCodeRateLimit indicates rate limit exceeded.
	ErrCodeRateLimit = "rate_limit_exceeded"
	// ErrCodeConflict indicates a conflict with current state.
	ErrCodeConflict = "conflict"
	// ErrCodeTimeout indicates a request timeout.
	ErrCodeTimeout = "timeout"
	// ErrCodeUnavailable indicates a backing store is unavailable.
	ErrCodeUnavailable = "service_unavailable"
)

// SuccessResponse wraps successful API responses with metadata.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data contains the endpoint payload.
	Data      interface{} `json:"data" swaggertype:"object"`
	RequestID string      `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time   `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse represents a standardized error response for the API.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message,omitempty" example:"Invalid bar group: item 2 (B3): validation error: bar_diameter_mm is required"`
	// Details locates the failing input, e.g. {"item_index": 2, "member_id": "B3", "field": "bar_diameter_mm"}.
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time              `json:"timestamp" example:"2025-01-28T10:00:00Z"`
	TraceID   string                 `json:"trace_id,omitempty" example:"trace-123"`
} // @name ErrorResponse

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// ErrCodeFromStatus returns the appropriate error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnprocessableEntity:
		return ErrCodeUnprocessable
	case http.StatusUnsupportedMediaType:
		return ErrCodeUnsupportedMedia
	case http.StatusRequestEntityTooLarge:
		return ErrCodePayloadTooLarge
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	case http.StatusServiceUnavailable:
		return ErrCodeUnavailable
	default:
		return ErrCodeInternal
	}
}

// ScheduleResponse is a computed schedule, with its reference when it was saved.
// @Description Computed bar bending schedule
type ScheduleResponse struct {
	*model.Schedule
	Reference string `json:"reference,omitempty" example:"5f0c6a1e-8f9b-4f7a-9d43-2b1f2c3d4e5f"`
} // @name ScheduleResponse

// ImportResponse is a schedule computed from an uploaded sheet.
// @Description Schedule computed from an imported CSV or XLSX sheet
type ImportResponse struct {
	ScheduleResponse
	// Rows maps each bar mark, in result order, to its sheet row.
	Rows []int `json:"rows"`
} // @name ImportResponse

// CodesResponse lists the supported design codes and input vocabularies.
// @Description Supported design codes, their default tables and accepted enum values
type CodesResponse struct {
	Codes        []bbs.CodeTable     `json:"codes"`
	Diameters    []int               `json:"diameters_mm" example:"6,8,10,12,16,20,25,32"`
	ElementTypes []model.ElementType `json:"element_types"`
	BarTypes     []model.BarType     `json:"bar_types"`
	ShapeCodes   []model.ShapeCode   `json:"shape_codes"`
	HookTypes    []string            `json:"hook_types" example:"90,135,180,custom"`
	Units        []model.UnitSystem  `json:"units"`
} // @name CodesResponse

// ListResponse wraps a page of results with the total match count when it is known.
type ListResponse struct {
	Items interface{} `json:"items" swaggertype:"array,object"`
	Total *int64      `json:"total,omitempty"`
	Limit int         `json:"limit"`
	Skip  int         `json:"skip"`
} // @name ListResponse
