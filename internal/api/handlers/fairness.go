package handlers

import (
	"net/http"

	"alc-pricing/internal/analysis"
	"alc-pricing/internal/api/models"
	"alc-pricing/internal/model"

	"github.com/gin-gonic/gin"
)

// FairnessHandler handles price validation requests
type FairnessHandler struct {
	guard *model.FairnessGuard
}

func NewFairnessHandler(guard *model.FairnessGuard) *FairnessHandler {
	return &FairnessHandler{guard: guard}
}

// Validate handles POST /api/v1/fairness/validate
func (h *FairnessHandler) Validate(c *gin.Context) {
	var req models.ValidatePriceRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.guard.ValidatePrice(*req.Price))
}

// Ensure handles POST /api/v1/fairness/ensure
func (h *FairnessHandler) Ensure(c *gin.Context) {
	var req models.MarketPriceRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.guard.EnsureFairMarket(*req.Price, req.Market))
}

// Detect handles POST /api/v1/fairness/detect
func (h *FairnessHandler) Detect(c *gin.Context) {
	var req models.DetectManipulationRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.guard.DetectManipulation(req.Prices))
}

// Apply handles POST /api/v1/fairness/apply
func (h *FairnessHandler) Apply(c *gin.Context) {
	var req models.MarketPriceRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.guard.ApplyFairPricing(*req.Price, req.Market))
}

// History handles GET /api/v1/fairness/history
func (h *FairnessHandler) History(c *gin.Context) {
	history := h.guard.History()
	c.JSON(http.StatusOK, models.HistoryResponse{
		History:       history,
		Summary:       analysis.Summarize(history),
		FairnessScore: h.guard.FairnessScore(),
	})
}
