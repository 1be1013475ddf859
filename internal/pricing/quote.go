package pricing

import (
	"errors"
	"fmt"
	"time"

	"alc-pricing/internal/model"
)

var ErrUnknownQuoteKind = errors.New("unknown quote kind")

type Kind string

const (
	KindArt     Kind = "art"
	KindToken   Kind = "token"
	KindFeature Kind = "feature"
	KindFee     Kind = "fee"
)

// QuoteRequest carries the inputs for one Kind; fields for other kinds are ignored.
type QuoteRequest struct {
	Kind Kind `json:"kind"`

	// art
	Complexity string  `json:"complexity,omitempty"`
	Hours      float64 `json:"hours,omitempty"`
	Demand     string  `json:"demand,omitempty"`

	// token
	TokenType string `json:"token_type,omitempty"`
	Utility   string `json:"utility,omitempty"`
	Scarcity  int    `json:"scarcity,omitempty"`

	// feature
	Tier     string   `json:"tier,omitempty"`
	Features []string `json:"features,omitempty"`
	Support  string   `json:"support,omitempty"`

	// fee
	Amount float64 `json:"amount,omitempty"`

	Market model.MarketContext `json:"market"`
}

type QuoteResult struct {
	Kind Kind `json:"kind"`

	BasePrice           float64 `json:"base_price"`
	CapacitorMultiplier float64 `json:"capacitor_multiplier"`
	CapacitorPrice      float64 `json:"capacitor_price"`

	Report  *model.FairPricingReport `json:"report,omitempty"`
	Feature *model.FeatureCost       `json:"feature,omitempty"`
	Fee     *model.TransactionFee    `json:"fee,omitempty"`

	FinalPrice float64   `json:"final_price"`
	QuotedAt   time.Time `json:"quoted_at"`
}

// Quote prices one request: formula, then capacitor multiplier, then the
// fairness guard. Fees and zero-cost items skip the last two stages.
func (s *Session) Quote(req QuoteRequest) (*QuoteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := &QuoteResult{Kind: req.Kind, CapacitorMultiplier: 1, QuotedAt: s.now().UTC()}

	switch req.Kind {
	case KindArt:
		res.BasePrice = s.formula.CalculateArtPrice(req.Complexity, req.Hours, req.Demand)
	case KindToken:
		res.BasePrice = s.formula.CalculateTokenValue(req.TokenType, req.Utility, req.Scarcity)
	case KindFeature:
		fc := s.formula.CalculateFeatureCost(req.Tier, req.Features, req.Support)
		res.Feature = &fc
		res.BasePrice = fc.Total
	case KindFee:
		fee := s.formula.CalculateTransactionFee(req.Amount)
		res.Fee = &fee
		res.BasePrice = fee.ActualFee
		res.CapacitorPrice = fee.ActualFee
		res.FinalPrice = fee.ActualFee
		return res, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuoteKind, req.Kind)
	}

	if res.BasePrice <= 0 {
		return res, nil
	}

	res.CapacitorMultiplier = s.capacitor.Multiplier()
	res.CapacitorPrice = res.BasePrice * res.CapacitorMultiplier
	report := s.guard.ApplyFairPricing(res.CapacitorPrice, req.Market)
	res.Report = &report
	res.FinalPrice = report.FinalPrice
	return res, nil
}
