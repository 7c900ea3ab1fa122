package http

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bbs-service/internal/domain/dto"
	"github.com/guttosm/bbs-service/internal/i18n"
	"github.com/guttosm/bbs-service/internal/middleware"
)

// Envelopes are pooled; gin serializes them before JSON returns.
var (
	successPool = sync.Pool{New: func() any { return new(dto.SuccessResponse) }}
	errorPool   = sync.Pool{New: func() any { return new(dto.ErrorResponse) }}
)

// Validator is implemented by requests that check themselves after binding.
type Validator interface {
	Validate() error
}

// BuildRequestAndValidate binds the JSON body into a new T, enforcing its
// binding tags, then runs Validate when T implements Validator.
func BuildRequestAndValidate[T any](c *gin.Context) (*T, error) {
	req := new(T)
	if err := c.ShouldBindJSON(req); err != nil {
		return nil, err
	}
	if v, ok := any(req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// UnmarshalFromBytes decodes a JSON form field or file part into a new T.
func UnmarshalFromBytes[T any](data []byte) (*T, error) {
	v := new(T)
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}
	return v, nil
}

// ResponseBuilder writes the success and error envelopes for one request.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a new response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success sends data wrapped in a SuccessResponse.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	resp := successPool.Get().(*dto.SuccessResponse)
	*resp = dto.SuccessResponse{
		Data:      data,
		RequestID: middleware.GetRequestID(b.c),
		Timestamp: time.Now(),
	}
	b.c.JSON(statusCode, resp)

	*resp = dto.SuccessResponse{}
	successPool.Put(resp)
}

// SuccessOK sends 200.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// SuccessCreated sends 201.
func (b *ResponseBuilder) SuccessCreated(data interface{}) {
	b.Success(http.StatusCreated, data)
}

// Error sends an error response whose message is the translation of messageKey.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	b.ErrorWithDetails(statusCode, messageKey, err, nil)
}

// ErrorWithDetails is Error with a details object locating the failing input.
// Client errors append the error text to the translated summary; server errors
// keep it out of the body and leave it on the context for ErrorHandler to log.
func (b *ResponseBuilder) ErrorWithDetails(statusCode int, messageKey string, err error, details map[string]interface{}) {
	message := i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(b.c))
	serverSide := statusCode >= http.StatusInternalServerError
	if err != nil {
		if serverSide {
			_ = b.c.Error(err)
		} else {
			message += ": " + err.Error()
		}
	}

	resp := errorPool.Get().(*dto.ErrorResponse)
	*resp = dto.ErrorResponse{
		Error:     dto.ErrCodeFromStatus(statusCode),
		Message:   message,
		Details:   details,
		RequestID: middleware.GetRequestID(b.c),
		Timestamp: time.Now(),
	}
	b.c.AbortWithStatusJSON(statusCode, resp)

	*resp = dto.ErrorResponse{}
	errorPool.Put(resp)
}

// Fail maps err to its status, message and details. See errorSpecFor.
func (b *ResponseBuilder) Fail(err error) {
	spec := errorSpecFor(err)
	b.ErrorWithDetails(spec.status, spec.key, err, spec.details)
}
