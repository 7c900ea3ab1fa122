package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bbs-service/internal/bbs"
	"github.com/guttosm/bbs-service/internal/domain/dto"
	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/guttosm/bbs-service/internal/export"
	"github.com/guttosm/bbs-service/internal/i18n"
	"github.com/guttosm/bbs-service/internal/importer"
	"github.com/guttosm/bbs-service/internal/metrics"
	"github.com/guttosm/bbs-service/internal/middleware"
	"github.com/guttosm/bbs-service/internal/service"
)

// DefaultMaxUploadBytes bounds imported sheets.
const DefaultMaxUploadBytes int64 = 10 << 20

// Handler provides HTTP handlers for the bar bending schedule routes.
type Handler struct {
	calculator     service.ScheduleCalculator
	schedules      service.SchedulesService
	logging        service.LoggingService
	maxUploadBytes int64
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithSchedulesService enables saving computed schedules.
func WithSchedulesService(s service.SchedulesService) HandlerOption {
	return func(h *Handler) {
		h.schedules = s
	}
}

// WithLoggingService enables audit entries.
func WithLoggingService(ls service.LoggingService) HandlerOption {
	return func(h *Handler) {
		h.logging = ls
	}
}

// WithMaxUploadBytes sets the upload size limit of the import endpoint.
func WithMaxUploadBytes(n int64) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.maxUploadBytes = n
		}
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(calculator service.ScheduleCalculator, opts ...HandlerOption) *Handler {
	h := &Handler{
		calculator:     calculator,
		maxUploadBytes: DefaultMaxUploadBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// compute runs the calculator, saves the result when asked and writes the audit entries.
func (h *Handler) compute(c *gin.Context, items []model.BarGroupInput, opts model.Options, save bool, action model.ActionType) (*dto.ScheduleResponse, error) {
	ctx := c.Request.Context()

	schedule, err := h.calculator.Calculate(ctx, items, opts)
	if err != nil {
		middleware.AuditLogError(h.logging, c, action, "Schedule calculation rejected", err, map[string]interface{}{
			"bar_groups": len(items),
		})
		return nil, err
	}

	resp := &dto.ScheduleResponse{Schedule: schedule}
	if save {
		reference, err := h.save(ctx, c, items, schedule)
		if err != nil {
			middleware.AuditLogError(h.logging, c, model.ActionSaveSchedule, "Schedule could not be saved", err, nil)
			return nil, err
		}
		resp.Reference = reference
	}

	middleware.AuditLog(h.logging, c, action, resp.Reference, "Schedule calculated", map[string]interface{}{
		"bar_groups":            len(items),
		"code":                  string(schedule.CodeUsed),
		"total_steel_weight_kg": schedule.Summary.TotalSteelWeightKg,
	})
	return resp, nil
}

func (h *Handler) save(ctx context.Context, c *gin.Context, items []model.BarGroupInput, schedule *model.Schedule) (string, error) {
	if h.schedules == nil {
		return "", service.ErrRepositoryNotConfigured
	}
	saved, err := h.schedules.Save(ctx, items, schedule, middleware.GetActor(c))
	if err != nil {
		return "", err
	}
	middleware.AuditLog(h.logging, c, model.ActionSaveSchedule, saved.Reference, "Schedule saved", map[string]interface{}{
		"project": saved.Project,
	})
	return saved.Reference, nil
}

func respondSchedule(builder *ResponseBuilder, resp interface{}, saved bool) {
	if saved {
		builder.SuccessCreated(resp)
		return
	}
	builder.SuccessOK(resp)
}

// bindCalculateRequest decodes and checks the JSON body shared by calculate and export.
func bindCalculateRequest(c *gin.Context) (*dto.CalculateScheduleRequest, bool) {
	req, err := BuildRequestAndValidate[dto.CalculateScheduleRequest](c)
	if err != nil {
		builder := NewResponseBuilder(c)
		var verr *dto.ValidationError
		if errors.As(err, &verr) {
			builder.Fail(err)
		} else {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		}
		return nil, false
	}
	return req, true
}

// CalculateSchedule handles POST /api/bbs/calculate requests.
//
// @Summary      Calculate a bar bending schedule
// @Description  Computes cutting lengths, weights, lap splices and costs for every bar group, with per-diameter totals. With "save": true the schedule is stored and its reference returned. Supports idempotency via the Idempotency-Key header.
// @Tags         BBS
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.CalculateScheduleRequest true "Bar groups and options"
// @Success      200 {object} dto.SuccessResponse{data=dto.ScheduleResponse} "Computed schedule"
// @Success      201 {object} dto.SuccessResponse{data=dto.ScheduleResponse} "Computed and saved schedule"
// @Failure      400 {object} dto.ErrorResponse "Invalid bar group, unit or design code"
// @Failure      422 {object} dto.ErrorResponse "Geometry yields a non-positive cutting length"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      503 {object} dto.ErrorResponse "Schedule store unavailable"
// @Security     ApiKeyAuth
// @Router       /api/bbs/calculate [post]
func (h *Handler) CalculateSchedule(c *gin.Context) {
	req, ok := bindCalculateRequest(c)
	if !ok {
		return
	}

	builder := NewResponseBuilder(c)
	resp, err := h.compute(c, req.Items, req.Options, req.Save, model.ActionCalculate)
	if err != nil {
		builder.Fail(err)
		return
	}
	respondSchedule(builder, resp, resp.Reference != "")
}

// ImportSchedule handles POST /api/bbs/import requests.
//
// @Summary      Import bar groups from CSV or XLSX
// @Description  Parses an uploaded sheet (one bar group per row, header row first) and computes its schedule. Errors locate the failing sheet row. Download a blank sheet from /api/bbs/template.
// @Tags         BBS
// @Accept       multipart/form-data
// @Produce      json
// @Param        file    formData file   true  "CSV or XLSX sheet"
// @Param        options formData string false "Options as JSON"
// @Param        save    formData bool   false "Save the computed schedule"
// @Success      200 {object} dto.SuccessResponse{data=dto.ImportResponse} "Computed schedule"
// @Success      201 {object} dto.SuccessResponse{data=dto.ImportResponse} "Computed and saved schedule"
// @Failure      400 {object} dto.ErrorResponse "Malformed sheet row or invalid bar group"
// @Failure      413 {object} dto.ErrorResponse "Upload too large"
// @Failure      415 {object} dto.ErrorResponse "Unsupported file format"
// @Failure      422 {object} dto.ErrorResponse "Geometry yields a non-positive cutting length"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     ApiKeyAuth
// @Router       /api/bbs/import [post]
func (h *Handler) ImportSchedule(c *gin.Context) {
	builder := NewResponseBuilder(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			builder.Error(http.StatusRequestEntityTooLarge, i18n.ErrKeyFileTooLarge, err)
			return
		}
		builder.Error(http.StatusBadRequest, i18n.ErrKeyFileRequired, err)
		return
	}

	format, err := importer.FormatOf(fh.Filename)
	if err != nil {
		builder.Fail(err)
		return
	}

	var opts model.Options
	if raw := c.PostForm("options"); raw != "" {
		parsed, err := UnmarshalFromBytes[model.Options]([]byte(raw))
		if err != nil {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
			return
		}
		opts = *parsed
	}

	save := false
	if raw := c.PostForm("save"); raw != "" {
		if save, err = strconv.ParseBool(raw); err != nil {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
			return
		}
	}

	f, err := fh.Open()
	if err != nil {
		builder.Fail(err)
		return
	}
	defer f.Close()

	batch, err := importer.Read(f, format)
	if err != nil {
		metrics.RecordImportRows(string(format), "error", 0)
		middleware.AuditLogError(h.logging, c, model.ActionImport, "Sheet rejected", err, map[string]interface{}{
			"filename": fh.Filename,
		})
		builder.Fail(err)
		return
	}
	if len(batch.Items) > dto.MaxItemsPerRequest {
		metrics.RecordImportRows(string(format), "error", len(batch.Items))
		builder.Fail(dto.ErrTooManyItems)
		return
	}

	resp, err := h.compute(c, batch.Items, opts, save, model.ActionImport)
	if err != nil {
		metrics.RecordImportRows(string(format), "error", len(batch.Items))
		spec := errorSpecFor(err)
		if loc, ok := bbs.Locate(err); ok && loc.ItemIndex != bbs.OptionsIndex {
			if spec.details == nil {
				spec.details = itemDetails(loc)
			}
			spec.details["row"] = batch.RowOf(loc.ItemIndex)
		}
		builder.ErrorWithDetails(spec.status, spec.key, err, spec.details)
		return
	}

	metrics.RecordImportRows(string(format), "success", len(batch.Items))
	respondSchedule(builder, &dto.ImportResponse{ScheduleResponse: *resp, Rows: batch.Rows}, resp.Reference != "")
}

// ExportSchedule handles POST /api/bbs/export requests.
//
// @Summary      Export a bar bending schedule
// @Description  Computes the schedule like /api/bbs/calculate and returns it as a CSV, XLSX or PDF download, or as a plain-text table. Lengths are rounded to 3 decimals and weights to 2.
// @Tags         BBS
// @Accept       json
// @Produce      text/csv
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/pdf
// @Produce      text/plain
// @Param        format  query string false "csv, xlsx, pdf or table" default(csv)
// @Param        request body  dto.CalculateScheduleRequest true "Bar groups and options"
// @Success      200 {file} file "Schedule document"
// @Failure      400 {object} dto.ErrorResponse "Invalid input or export format"
// @Failure      422 {object} dto.ErrorResponse "Geometry yields a non-positive cutting length"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     ApiKeyAuth
// @Router       /api/bbs/export [post]
func (h *Handler) ExportSchedule(c *gin.Context) {
	builder := NewResponseBuilder(c)

	format, err := export.ParseFormat(c.DefaultQuery("format", string(export.FormatCSV)))
	if err != nil {
		builder.Fail(err)
		return
	}

	req, ok := bindCalculateRequest(c)
	if !ok {
		return
	}

	resp, err := h.compute(c, req.Items, req.Options, req.Save, model.ActionCalculate)
	if err != nil {
		builder.Fail(err)
		return
	}

	// Rendered into memory so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := export.Write(&buf, resp.Schedule, format); err != nil {
		builder.Fail(err)
		return
	}

	metrics.RecordExport(string(format))
	middleware.AuditLog(h.logging, c, model.ActionExport, resp.Reference, "Schedule exported", map[string]interface{}{
		"format":     string(format),
		"bar_groups": len(req.Items),
	})

	if resp.Reference != "" {
		c.Header("X-Schedule-Reference", resp.Reference)
	}
	c.Header("Content-Disposition", `attachment; filename="`+format.Filename(resp.Schedule)+`"`)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// ImportTemplate handles GET /api/bbs/template requests.
//
// @Summary      Download an import template
// @Description  Returns a blank CSV or XLSX sheet holding only the import header row.
// @Tags         BBS
// @Produce      text/csv
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format query string false "csv or xlsx" default(csv)
// @Success      200 {file} file "Template sheet"
// @Failure      415 {object} dto.ErrorResponse "Unsupported file format"
// @Router       /api/bbs/template [get]
func (h *Handler) ImportTemplate(c *gin.Context) {
	builder := NewResponseBuilder(c)

	format, err := importer.ParseFormat(c.DefaultQuery("format", string(importer.FormatCSV)))
	if err != nil {
		builder.Fail(err)
		return
	}

	var buf bytes.Buffer
	if format == importer.FormatXLSX {
		err = importer.WriteXLSXTemplate(&buf)
	} else {
		err = importer.WriteCSVTemplate(&buf)
	}
	if err != nil {
		builder.Fail(err)
		return
	}

	contentType := export.FormatCSV.ContentType()
	if format == importer.FormatXLSX {
		contentType = export.FormatXLSX.ContentType()
	}
	c.Header("Content-Disposition", `attachment; filename="bbs-template.`+string(format)+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// ListCodes handles GET /api/bbs/codes requests.
//
// @Summary      List design codes and vocabularies
// @Description  Returns the default tables of every supported design code, the standard diameter catalog and the accepted element, bar, shape, hook and unit values.
// @Tags         BBS
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.CodesResponse} "Codes and vocabularies"
// @Router       /api/bbs/codes [get]
func (h *Handler) ListCodes(c *gin.Context) {
	hooks := []string{string(model.Hook90), string(model.Hook135), string(model.Hook180), string(model.HookCustom)}

	NewResponseBuilder(c).SuccessOK(dto.CodesResponse{
		Codes:        bbs.CodeTables(),
		Diameters:    bbs.DiameterCatalog,
		ElementTypes: model.ElementTypes,
		BarTypes:     model.BarTypes,
		ShapeCodes:   model.ShapeCodes,
		HookTypes:    hooks,
		Units:        []model.UnitSystem{model.UnitsMetric, model.UnitsImperial},
	})
}
