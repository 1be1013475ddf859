package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"alc-pricing/internal/api/models"
	"alc-pricing/internal/model"

	"github.com/gin-gonic/gin"
)

// MarketHandler handles exchange-rate requests
type MarketHandler struct {
	market *model.Market
}

// NewMarketHandler creates a new market handler
func NewMarketHandler(market *model.Market) *MarketHandler {
	return &MarketHandler{market: market}
}

// GetMarket handles GET /api/v1/market
func (h *MarketHandler) GetMarket(c *gin.Context) {
	c.JSON(http.StatusOK, h.market.CurrentValue())
}

// Adjust handles POST /api/v1/market/adjust
func (h *MarketHandler) Adjust(c *gin.Context) {
	var req models.AdjustMarketRequest
	if !bindJSON(c, &req) {
		return
	}
	adj, err := h.market.AdjustMarketValue(*req.SupplyDemandRatio)
	if err != nil {
		if errors.Is(err, model.ErrInvalidRatio) {
			respondError(c, http.StatusBadRequest, models.CodeInvalidRatio, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, models.CodeInvalidRequest, err.Error())
		return
	}
	slog.Info("MarketHandler: adjusted market value", "old", adj.Old, "new", adj.New, "condition", adj.Condition)
	c.JSON(http.StatusOK, adj)
}

// Stabilize handles POST /api/v1/market/stabilize
func (h *MarketHandler) Stabilize(c *gin.Context) {
	c.JSON(http.StatusOK, h.market.StabilizeMarket())
}

// Earn handles GET /api/v1/market/earn/:activity
func (h *MarketHandler) Earn(c *gin.Context) {
	e, err := h.market.CalculateEarnings(c.Param("activity"))
	if err != nil {
		respondError(c, http.StatusNotFound, models.CodeUnknownActivity, err.Error())
		return
	}
	c.JSON(http.StatusOK, e)
}

// Cost handles GET /api/v1/market/cost/:item
func (h *MarketHandler) Cost(c *gin.Context) {
	cost, err := h.market.CalculateCost(c.Param("item"))
	if err != nil {
		respondError(c, http.StatusNotFound, models.CodeUnknownItem, err.Error())
		return
	}
	c.JSON(http.StatusOK, cost)
}

// Rates handles GET /api/v1/market/rates
func (h *MarketHandler) Rates(c *gin.Context) {
	c.JSON(http.StatusOK, models.RateTablesResponse{
		EarnRates:  h.market.ListEarnRates(),
		SpendCosts: h.market.ListSpendCosts(),
	})
}
