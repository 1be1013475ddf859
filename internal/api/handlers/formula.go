package handlers

import (
	"net/http"

	"alc-pricing/internal/api/models"
	"alc-pricing/internal/model"

	"github.com/gin-gonic/gin"
)

// FormulaHandler exposes the price formulas
type FormulaHandler struct {
	formula *model.FormulaEngine
}

func NewFormulaHandler(formula *model.FormulaEngine) *FormulaHandler {
	return &FormulaHandler{formula: formula}
}

// Art handles POST /api/v1/formula/art
func (h *FormulaHandler) Art(c *gin.Context) {
	var req models.ArtPriceRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, models.AmountResponse{
		Price: h.formula.CalculateArtPrice(req.Complexity, req.TimeSpentHours, req.Demand),
	})
}

// Token handles POST /api/v1/formula/token
func (h *FormulaHandler) Token(c *gin.Context) {
	var req models.TokenValueRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, models.AmountResponse{
		Price: h.formula.CalculateTokenValue(req.TokenType, req.Utility, req.Scarcity),
	})
}

// Feature handles POST /api/v1/formula/feature
func (h *FormulaHandler) Feature(c *gin.Context) {
	var req models.FeatureCostRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.formula.CalculateFeatureCost(req.Tier, req.Features, req.Support))
}

// Fee handles POST /api/v1/formula/fee
func (h *FormulaHandler) Fee(c *gin.Context) {
	var req models.TransactionFeeRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.formula.CalculateTransactionFee(req.Amount))
}

// RealTime handles POST /api/v1/formula/realtime
func (h *FormulaHandler) RealTime(c *gin.Context) {
	var req models.RealTimeRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.formula.AdjustRealTime(req.Supply, req.Demand, req.RecentActivity))
}

// Fair handles POST /api/v1/formula/fair
func (h *FormulaHandler) Fair(c *gin.Context) {
	var req models.FairPriceRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.formula.ValidateFairPricing(req.Price, req.MarketAverage))
}
