package dto

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	err := NewError(ErrCodeUnprocessable, "cutting length is not positive").WithRequestID("req-9")

	assert.Equal(t, ErrCodeUnprocessable, err.Error)
	assert.Equal(t, "cutting length is not positive", err.Message)
	assert.Equal(t, "req-9", err.RequestID)
	assert.WithinDuration(t, time.Now(), err.Timestamp, time.Second)
}

func TestErrCodeFromStatus(t *testing.T) {
	tests := []struct {
		status       int
		expectedCode string
	}{
		{http.StatusBadRequest, ErrCodeInvalidRequest},
		{http.StatusUnauthorized, ErrCodeUnauthorized},
		{http.StatusForbidden, ErrCodeForbidden},
		{http.StatusNotFound, ErrCodeNotFound},
		{http.StatusConflict, ErrCodeConflict},
		{http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge},
		{http.StatusUnsupportedMediaType, ErrCodeUnsupportedMedia},
		{http.StatusUnprocessableEntity, ErrCodeUnprocessable},
		{http.StatusTooManyRequests, ErrCodeRateLimit},
		{http.StatusRequestTimeout, ErrCodeTimeout},
		{http.StatusGatewayTimeout, ErrCodeTimeout},
		{http.StatusServiceUnavailable, ErrCodeUnavailable},
		{http.StatusInternalServerError, ErrCodeInternal},
		{http.StatusBadGateway, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expectedCode, ErrCodeFromStatus(tt.status))
		})
	}
}

func TestScheduleResponse_JSON(t *testing.T) {
	resp := ScheduleResponse{
		Schedule:  &model.Schedule{CodeUsed: model.CodeNBC, Currency: "NPR"},
		Reference: "BBS-1",
	}

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "NBC", got["code_used"], "schedule fields are inlined")
	assert.Equal(t, "NPR", got["currency"])
	assert.Equal(t, "BBS-1", got["reference"])
}

func TestErrorResponse_DetailsJSON(t *testing.T) {
	resp := NewError(ErrCodeInvalidRequest, "bad item")
	resp.Details = map[string]interface{}{"item_index": 2, "member_id": "B3", "field": "num_bars"}

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"details":{"field":"num_bars","item_index":2,"member_id":"B3"}`)
}
