package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/guttosm/bbs-service/internal/bbs"
	"github.com/guttosm/bbs-service/internal/circuitbreaker"
	"github.com/guttosm/bbs-service/internal/domain/dto"
	"github.com/guttosm/bbs-service/internal/export"
	"github.com/guttosm/bbs-service/internal/i18n"
	"github.com/guttosm/bbs-service/internal/importer"
	"github.com/guttosm/bbs-service/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestErrorSpecFor(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantKey     string
		wantDetails map[string]interface{}
	}{
		{
			name:        "validation error on an item",
			err:         &bbs.ValidationError{ItemError: bbs.ItemError{ItemIndex: 2, MemberID: "B3", Field: "num_bars", Reason: "must be at least 1"}},
			wantStatus:  http.StatusBadRequest,
			wantKey:     i18n.ErrKeyValidation,
			wantDetails: map[string]interface{}{"item_index": 2, "member_id": "B3", "field": "num_bars"},
		},
		{
			name:        "item without member id",
			err:         &bbs.InvalidUnitError{ItemError: bbs.ItemError{ItemIndex: 0, Field: "clear_length_m"}, Value: -1},
			wantStatus:  http.StatusBadRequest,
			wantKey:     i18n.ErrKeyInvalidUnit,
			wantDetails: map[string]interface{}{"item_index": 0, "field": "clear_length_m"},
		},
		{
			name:        "options error carries only the field",
			err:         &bbs.InvalidUnitError{ItemError: bbs.ItemError{ItemIndex: bbs.OptionsIndex, Field: "stock_length_m"}},
			wantStatus:  http.StatusBadRequest,
			wantKey:     i18n.ErrKeyInvalidUnit,
			wantDetails: map[string]interface{}{"field": "stock_length_m"},
		},
		{
			name:        "geometry is unprocessable",
			err:         &bbs.InvalidGeometryError{ItemError: bbs.ItemError{ItemIndex: 1, MemberID: "S1", Field: "bend_angles"}},
			wantStatus:  http.StatusUnprocessableEntity,
			wantKey:     i18n.ErrKeyInvalidGeometry,
			wantDetails: map[string]interface{}{"item_index": 1, "member_id": "S1", "field": "bend_angles"},
		},
		{
			name:       "unknown code",
			err:        &bbs.UnknownCodeError{Code: "EC2"},
			wantStatus: http.StatusBadRequest,
			wantKey:    i18n.ErrKeyUnknownCode,
		},
		{
			name:        "sheet row",
			err:         &importer.RowError{Row: 7, Column: "num_bars", Err: errors.New("not a number")},
			wantStatus:  http.StatusBadRequest,
			wantKey:     i18n.ErrKeyImportRow,
			wantDetails: map[string]interface{}{"row": 7, "column": "num_bars"},
		},
		{
			name:        "too many items",
			err:         dto.ErrTooManyItems,
			wantStatus:  http.StatusBadRequest,
			wantKey:     i18n.ErrKeyTooManyItems,
			wantDetails: map[string]interface{}{"field": "items"},
		},
		{
			name:       "unsupported upload",
			err:        fmt.Errorf("%w: %q", importer.ErrUnsupportedFormat, ".ods"),
			wantStatus: http.StatusUnsupportedMediaType,
			wantKey:    i18n.ErrKeyUnsupportedFormat,
		},
		{
			name:       "empty sheet",
			err:        importer.ErrEmptySheet,
			wantStatus: http.StatusBadRequest,
			wantKey:    i18n.ErrKeyImportRow,
		},
		{
			name:       "unsupported export",
			err:        export.ErrUnsupportedFormat,
			wantStatus: http.StatusBadRequest,
			wantKey:    i18n.ErrKeyUnsupportedFormat,
		},
		{
			name:       "invalid rate card",
			err:        fmt.Errorf("%w: negative rate", service.ErrInvalidRateCard),
			wantStatus: http.StatusBadRequest,
			wantKey:    i18n.ErrKeyInvalidRateCard,
		},
		{
			name:       "schedule not found",
			err:        service.ErrScheduleNotFound,
			wantStatus: http.StatusNotFound,
			wantKey:    i18n.ErrKeyScheduleNotFound,
		},
		{
			name:       "reference taken",
			err:        fmt.Errorf("%w: TOWER-A", service.ErrDuplicateReference),
			wantStatus: http.StatusConflict,
			wantKey:    i18n.ErrKeyConflict,
		},
		{
			name:       "no repository",
			err:        service.ErrRepositoryNotConfigured,
			wantStatus: http.StatusServiceUnavailable,
			wantKey:    i18n.ErrKeyUnavailable,
		},
		{
			name:       "open circuit",
			err:        fmt.Errorf("save schedule: %w", circuitbreaker.ErrCircuitOpen),
			wantStatus: http.StatusServiceUnavailable,
			wantKey:    i18n.ErrKeyUnavailable,
		},
		{
			name:       "deadline",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantKey:    i18n.ErrKeyTimeout,
		},
		{
			name:       "anything else",
			err:        assert.AnError,
			wantStatus: http.StatusInternalServerError,
			wantKey:    i18n.ErrKeyInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := errorSpecFor(tt.err)
			assert.Equal(t, tt.wantStatus, spec.status)
			assert.Equal(t, tt.wantKey, spec.key)
			assert.Equal(t, tt.wantDetails, spec.details)
		})
	}
}
