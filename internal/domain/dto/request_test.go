package dto

import (
	"encoding/json"
	"testing"

	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateScheduleRequest_Validate(t *testing.T) {
	tests := []struct {
		name          string
		items         int
		expectedError error
	}{
		{name: "empty items are left to the engine", items: 0},
		{name: "single item", items: 1},
		{name: "at the limit", items: MaxItemsPerRequest},
		{name: "over the limit", items: MaxItemsPerRequest + 1, expectedError: ErrTooManyItems},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := CalculateScheduleRequest{Items: make([]model.BarGroupInput, tt.items)}
			err := req.Validate()
			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCalculateScheduleRequest_Decode(t *testing.T) {
	body := `{
		"items": [{"element_type": "beam", "member_id": "B1", "bar_type": "Main", "bar_diameter_mm": 16,
		           "num_bars": 4, "clear_length_m": 5, "hook_type": 90, "bend_angles": [90, 90]}],
		"options": {"code": "ACI", "rates_by_diameter": {"16": 72.5}, "project": {"name": "Tower A"}},
		"save": true
	}`

	var req CalculateScheduleRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	require.Len(t, req.Items, 1)
	assert.Equal(t, model.Hook90, req.Items[0].HookType, "numeric hook types decode")
	assert.Equal(t, model.CodeACI, req.Options.Code)
	assert.Equal(t, map[int]float64{16: 72.5}, req.Options.RatesByDiameter)
	assert.Equal(t, "Tower A", req.Options.Project.Name)
	assert.True(t, req.Save)
}

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "items: must not contain more than 5000 bar groups", ErrTooManyItems.Error())
}

func TestUpdateRateCardRequest_ToModel(t *testing.T) {
	req := UpdateRateCardRequest{
		DefaultRatePerKg: model.Float(70),
		RatesByDiameter:  map[int]float64{8: 75},
		Currency:         "INR",
	}
	assert.Equal(t, model.RateCardUpdate{
		DefaultRatePerKg: req.DefaultRatePerKg,
		RatesByDiameter:  map[int]float64{8: 75},
		Currency:         "INR",
	}, req.ToModel())
}

func TestAuditLogQuery_ToModel(t *testing.T) {
	q := AuditLogQuery{ListQuery: ListQuery{Limit: 20, Skip: 40}, Action: "update_rate_card", Actor: "admin"}
	assert.Equal(t, model.LogQueryOptions{
		ActionType: model.ActionUpdateRateCard,
		AuditOnly:  true,
		Actor:      "admin",
		Limit:      20,
		Skip:       40,
	}, q.ToModel())
}
