package handlers

import (
	"net/http"

	"alc-pricing/internal/api/models"
	"alc-pricing/internal/model"

	"github.com/gin-gonic/gin"
)

// CapacitorHandler handles charge and multiplier requests
type CapacitorHandler struct {
	capacitor *model.Capacitor
}

func NewCapacitorHandler(capacitor *model.Capacitor) *CapacitorHandler {
	return &CapacitorHandler{capacitor: capacitor}
}

// Status handles GET /api/v1/capacitor
func (h *CapacitorHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.capacitor.Status())
}

// Accumulate handles POST /api/v1/capacitor/accumulate
func (h *CapacitorHandler) Accumulate(c *gin.Context) {
	var req models.AccumulateRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.capacitor.AccumulateCharge(req.Activity))
}

// Discharge handles POST /api/v1/capacitor/discharge
func (h *CapacitorHandler) Discharge(c *gin.Context) {
	var req models.DischargeRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.capacitor.DischargeOnPurchase(req.PurchaseSize))
}

// Balance handles POST /api/v1/capacitor/balance
func (h *CapacitorHandler) Balance(c *gin.Context) {
	c.JSON(http.StatusOK, h.capacitor.AutoBalance())
}

// Apply handles POST /api/v1/capacitor/apply
func (h *CapacitorHandler) Apply(c *gin.Context) {
	var req models.CapacitorPriceRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, models.CapacitorPriceResponse{
		BasePrice:     req.BasePrice,
		AdjustedPrice: h.capacitor.ApplyCapacitorPricing(req.BasePrice),
		Status:        h.capacitor.Status(),
	})
}
