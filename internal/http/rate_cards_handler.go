package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bbs-service/internal/domain/dto"
	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/guttosm/bbs-service/internal/i18n"
	"github.com/guttosm/bbs-service/internal/middleware"
	"github.com/guttosm/bbs-service/internal/service"
)

// RateCardsHandler provides HTTP handlers for the steel rate card routes.
type RateCardsHandler struct {
	rateCards  service.RateCardsService
	calculator service.ScheduleCalculator
	logging    service.LoggingService
}

// NewRateCardsHandler creates a new RateCardsHandler instance.
func NewRateCardsHandler(rateCards service.RateCardsService, calculator service.ScheduleCalculator, logging service.LoggingService) *RateCardsHandler {
	return &RateCardsHandler{
		rateCards:  rateCards,
		calculator: calculator,
		logging:    logging,
	}
}

// GetActiveRateCard handles GET /api/rate-cards requests.
//
// @Summary      Get the active rate card
// @Description  Returns the steel rates applied to requests that carry none of their own.
// @Tags         Rate Cards
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=repository.RateCard} "Active rate card"
// @Failure      404 {object} dto.ErrorResponse "No rate card configured"
// @Failure      503 {object} dto.ErrorResponse "Rate card store unavailable"
// @Security     ApiKeyAuth
// @Router       /api/rate-cards [get]
func (h *RateCardsHandler) GetActiveRateCard(c *gin.Context) {
	builder := NewResponseBuilder(c)

	card, err := h.rateCards.GetActive(c.Request.Context())
	if err != nil {
		builder.Fail(err)
		return
	}
	if card == nil {
		builder.Error(http.StatusNotFound, i18n.ErrKeyNotFound, nil)
		return
	}
	builder.SuccessOK(card)
}

// UpdateRateCard handles PUT /api/rate-cards requests.
//
// @Summary      Replace the active rate card
// @Description  Stores a new rate card version and activates it. Cached schedules are invalidated. Requires an admin bearer token.
// @Tags         Rate Cards
// @Accept       json
// @Produce      json
// @Param        Authorization header string true "Bearer token with the admin role"
// @Param        request body dto.UpdateRateCardRequest true "New rates"
// @Success      200 {object} dto.SuccessResponse{data=repository.RateCard} "Activated rate card"
// @Failure      400 {object} dto.ErrorResponse "No rates or a negative rate"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure      403 {object} dto.ErrorResponse "Not an admin"
// @Failure      503 {object} dto.ErrorResponse "Rate card store unavailable"
// @Security     BearerAuth
// @Router       /api/rate-cards [put]
func (h *RateCardsHandler) UpdateRateCard(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.UpdateRateCardRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	card, err := h.rateCards.Update(c.Request.Context(), req.ToModel(), middleware.GetActor(c))
	if err != nil {
		middleware.AuditLogError(h.logging, c, model.ActionUpdateRateCard, "Rate card update rejected", err, nil)
		builder.Fail(err)
		return
	}

	if h.calculator != nil {
		h.calculator.InvalidateCache()
	}

	middleware.AuditLog(h.logging, c, model.ActionUpdateRateCard, "v"+strconv.Itoa(card.Version), "Rate card updated", map[string]interface{}{
		"default_rate_per_kg": card.DefaultRatePerKg,
		"diameters":           len(card.Rates),
		"currency":            card.Currency,
	})

	builder.SuccessOK(card)
}

// ListRateCards handles GET /api/rate-cards/history requests.
//
// @Summary      List rate card history
// @Description  Returns rate card versions, newest first.
// @Tags         Rate Cards
// @Produce      json
// @Param        limit query int false "Maximum number of versions" minimum(1) maximum(500)
// @Success      200 {object} dto.SuccessResponse{data=[]repository.RateCard} "Rate card versions"
// @Failure      400 {object} dto.ErrorResponse "Invalid query"
// @Failure      503 {object} dto.ErrorResponse "Rate card store unavailable"
// @Security     ApiKeyAuth
// @Router       /api/rate-cards/history [get]
func (h *RateCardsHandler) ListRateCards(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}

	cards, err := h.rateCards.List(c.Request.Context(), q.Limit)
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(cards)
}
