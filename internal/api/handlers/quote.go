package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"alc-pricing/internal/analysis"
	"alc-pricing/internal/api/models"
	"alc-pricing/internal/config"
	"alc-pricing/internal/model"
	"alc-pricing/internal/pricing"

	"github.com/gin-gonic/gin"
)

// QuoteHandler runs the composed pricing pipelines
type QuoteHandler struct {
	session *pricing.Session
	cfg     *config.Config
}

// NewQuoteHandler creates a quote handler. Quotes use the live session;
// replays run on a fresh session built from cfg.
func NewQuoteHandler(session *pricing.Session, cfg *config.Config) *QuoteHandler {
	return &QuoteHandler{session: session, cfg: cfg}
}

// Quote handles POST /api/v1/quote
func (h *QuoteHandler) Quote(c *gin.Context) {
	var req pricing.QuoteRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.session.Quote(req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, pricing.ErrUnknownQuoteKind) {
			status = http.StatusBadRequest
		}
		respondError(c, status, models.CodeQuoteError, err.Error())
		return
	}
	c.JSON(http.StatusOK, res)
}

// Replay handles POST /api/v1/replay
func (h *QuoteHandler) Replay(c *gin.Context) {
	var req models.ReplayRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := pricing.NewSession(h.cfg)
	if err != nil {
		slog.Error("QuoteHandler: failed to build replay session", "error", err)
		respondError(c, http.StatusInternalServerError, models.CodeQuoteError, err.Error())
		return
	}
	res, err := session.Replay(req.Ticks)
	if err != nil {
		code := models.CodeInvalidRequest
		if errors.Is(err, model.ErrInvalidRatio) {
			code = models.CodeInvalidRatio
		}
		respondError(c, http.StatusBadRequest, code, err.Error())
		return
	}

	slog.Info("QuoteHandler: replay complete", "ticks", len(res.Ledger), "mean_fairness", res.MeanFairness)

	resp := models.ReplayResponse{
		Summary: models.ReplaySummary{
			Ticks:            len(res.Ledger),
			FinalMarketValue: res.FinalMarketValue,
			FinalCharge:      res.FinalCharge,
			MeanFairness:     res.MeanFairness,
			Prices:           analysis.Summarize(res.Prices()),
		},
	}
	if req.IncludeLedger {
		resp.Ledger = res.Ledger
	}
	c.JSON(http.StatusOK, resp)
}
