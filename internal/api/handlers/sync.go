package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"alc-pricing/internal/api/models"
	"alc-pricing/internal/hydrogen"

	"github.com/gin-gonic/gin"
)

// SyncHandler handles price propagation between sites
type SyncHandler struct {
	broadcaster *hydrogen.PriceBroadcaster
	sync        *hydrogen.HydrogenSync
	receiver    *hydrogen.PriceReceiver
}

func NewSyncHandler(b *hydrogen.PriceBroadcaster, hs *hydrogen.HydrogenSync, r *hydrogen.PriceReceiver) *SyncHandler {
	return &SyncHandler{broadcaster: b, sync: hs, receiver: r}
}

// Broadcast handles POST /api/v1/sync/broadcast
func (h *SyncHandler) Broadcast(c *gin.Context) {
	var req models.BroadcastRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.broadcaster.Broadcast(c.Request.Context(), req.Site, req.Price)
	if err != nil {
		if errors.Is(err, hydrogen.ErrInvalidPrice) {
			respondError(c, http.StatusBadRequest, models.CodeInvalidRequest, err.Error())
			return
		}
		slog.Error("SyncHandler: broadcast failed", "site", req.Site, "error", err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    models.CodeSyncError,
				Message: err.Error(),
				Details: map[string]interface{}{
					"delivered": out.Report.Delivered,
					"pending":   out.Report.Pending,
				},
			},
		})
		return
	}
	c.JSON(http.StatusOK, out)
}

// Flush handles POST /api/v1/sync/flush
func (h *SyncHandler) Flush(c *gin.Context) {
	rep, err := h.sync.Flush(c.Request.Context())
	if err != nil {
		slog.Error("SyncHandler: flush failed", "pending", rep.Pending, "error", err)
		respondError(c, http.StatusBadGateway, models.CodeSyncError, err.Error())
		return
	}
	c.JSON(http.StatusOK, rep)
}

// Site handles GET /api/v1/sync/sites/:site
func (h *SyncHandler) Site(c *gin.Context) {
	site := c.Param("site")
	price, ok := h.receiver.Lookup(site)
	if !ok {
		respondError(c, http.StatusNotFound, models.CodeNotFound, "no price received for site "+site)
		return
	}
	c.JSON(http.StatusOK, models.SiteResponse{Site: site, Price: price})
}

// Sites handles GET /api/v1/sync/sites
func (h *SyncHandler) Sites(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sites":   h.receiver.Sites(),
		"targets": h.broadcaster.Targets(),
		"pending": h.sync.Pending(),
	})
}
