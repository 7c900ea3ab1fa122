package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/guttosm/bbs-service/internal/bbs"
	"github.com/guttosm/bbs-service/internal/circuitbreaker"
	"github.com/guttosm/bbs-service/internal/domain/dto"
	"github.com/guttosm/bbs-service/internal/export"
	"github.com/guttosm/bbs-service/internal/i18n"
	"github.com/guttosm/bbs-service/internal/importer"
	"github.com/guttosm/bbs-service/internal/service"
)

type errorSpec struct {
	status  int
	key     string
	details map[string]interface{}
}

// errorSpecFor classifies errors from the engine, the services and the file adapters.
// Geometry that cannot be built is 422; every other input error is 400.
func errorSpecFor(err error) errorSpec {
	var (
		rowErr *importer.RowError
		dtoErr *dto.ValidationError
		spec   errorSpec
	)
	located := true

	switch {
	case errors.As(err, &rowErr):
		spec = errorSpec{status: http.StatusBadRequest, key: i18n.ErrKeyImportRow}
		spec.details = map[string]interface{}{"row": rowErr.Row}
		if rowErr.Column != "" {
			spec.details["column"] = rowErr.Column
		}
		return spec
	case errors.As(err, &dtoErr):
		key := i18n.ErrKeyInvalidRequestBody
		if errors.Is(err, dto.ErrTooManyItems) {
			key = i18n.ErrKeyTooManyItems
		}
		return errorSpec{status: http.StatusBadRequest, key: key, details: map[string]interface{}{"field": dtoErr.Field}}
	case errors.Is(err, bbs.ErrInvalidGeometry):
		spec = errorSpec{status: http.StatusUnprocessableEntity, key: i18n.ErrKeyInvalidGeometry}
	case errors.Is(err, bbs.ErrInvalidUnit):
		spec = errorSpec{status: http.StatusBadRequest, key: i18n.ErrKeyInvalidUnit}
	case errors.Is(err, bbs.ErrUnknownCode):
		spec = errorSpec{status: http.StatusBadRequest, key: i18n.ErrKeyUnknownCode}
	case errors.Is(err, bbs.ErrValidation):
		spec = errorSpec{status: http.StatusBadRequest, key: i18n.ErrKeyValidation}
	default:
		located = false
	}
	if located {
		if loc, ok := bbs.Locate(err); ok {
			spec.details = itemDetails(loc)
		}
		return spec
	}

	switch {
	case errors.Is(err, importer.ErrUnsupportedFormat):
		return errorSpec{status: http.StatusUnsupportedMediaType, key: i18n.ErrKeyUnsupportedFormat}
	case errors.Is(err, importer.ErrEmptySheet):
		return errorSpec{status: http.StatusBadRequest, key: i18n.ErrKeyImportRow}
	case errors.Is(err, export.ErrUnsupportedFormat):
		return errorSpec{status: http.StatusBadRequest, key: i18n.ErrKeyUnsupportedFormat}
	case errors.Is(err, service.ErrInvalidRateCard):
		return errorSpec{status: http.StatusBadRequest, key: i18n.ErrKeyInvalidRateCard}
	case errors.Is(err, service.ErrScheduleNotFound):
		return errorSpec{status: http.StatusNotFound, key: i18n.ErrKeyScheduleNotFound}
	case errors.Is(err, service.ErrDuplicateReference):
		return errorSpec{status: http.StatusConflict, key: i18n.ErrKeyConflict}
	case errors.Is(err, service.ErrRepositoryNotConfigured), errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return errorSpec{status: http.StatusServiceUnavailable, key: i18n.ErrKeyUnavailable}
	case errors.Is(err, context.DeadlineExceeded):
		return errorSpec{status: http.StatusGatewayTimeout, key: i18n.ErrKeyTimeout}
	}
	return errorSpec{status: http.StatusInternalServerError, key: i18n.ErrKeyInternalError}
}

func itemDetails(loc bbs.ItemError) map[string]interface{} {
	d := map[string]interface{}{"field": loc.Field}
	if loc.ItemIndex != bbs.OptionsIndex {
		d["item_index"] = loc.ItemIndex
		if loc.MemberID != "" {
			d["member_id"] = loc.MemberID
		}
	}
	return d
}
