package model

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

// Issue codes recorded by ValidatePrice.
const (
	IssuePriceTooLow  = "price_too_low"
	IssuePriceTooHigh = "price_too_high"
	IssueRapidChange  = "price_change_too_rapid"
	PatternRapidRise  = "rapid_increase"
	PatternVolatility = "volatility_spike"
	InsufficientData  = "insufficient_data"
)

const (
	DefaultHistorySize = 100

	issuePenalty        = 0.2
	marketDeviationBand = 0.30
	minManipulationData = 5
	risingRunLength     = 5
	volatilitySpike     = 0.5
	manipulationWindow  = 10
)

// FairnessParams bounds accepted prices. MaxChangeRate is the largest fractional
// step allowed from the previous accepted price. HistorySize defaults to 100.
type FairnessParams struct {
	PriceFloor    float64
	PriceCeiling  float64
	MaxChangeRate float64
	HistorySize   int
}

func (p FairnessParams) Validate() error {
	if !(p.PriceFloor > 0) {
		return errors.New("PriceFloor must be > 0")
	}
	if p.PriceCeiling < p.PriceFloor {
		return errors.New("PriceCeiling must be >= PriceFloor")
	}
	if !(p.MaxChangeRate > 0) {
		return errors.New("MaxChangeRate must be > 0")
	}
	if p.HistorySize < 0 {
		return errors.New("HistorySize must be >= 0")
	}
	return nil
}

// Validation is the outcome of one ValidatePrice call.
type Validation struct {
	ValidatedPrice float64  `json:"validated_price"`
	IsFair         bool     `json:"is_fair"`
	Issues         []string `json:"issues"`
	Suggestions    []string `json:"suggestions"`
	FairnessScore  float64  `json:"fairness_score"`
}

// MarketContext carries the reference prices a proposal is compared against.
type MarketContext struct {
	AveragePrice     float64   `json:"average_price"`
	MedianPrice      float64   `json:"median_price"`
	CompetitorPrices []float64 `json:"competitor_prices"`
}

type MarketCheck struct {
	Price            float64 `json:"price"`
	ReferencePrice   float64 `json:"reference_price"`
	DeviationPercent float64 `json:"deviation_percent"`
	Adjusted         bool    `json:"adjusted"`
}

type ManipulationReport struct {
	Detected         bool       `json:"detected"`
	InsufficientData bool       `json:"insufficient_data"`
	Reason           string     `json:"reason,omitempty"`
	PatternCount     int        `json:"pattern_count"`
	Patterns         []string   `json:"patterns"`
	Confidence       Confidence `json:"confidence"`
}

type FairPricingReport struct {
	Validation   Validation         `json:"validation"`
	Market       MarketCheck        `json:"market"`
	Manipulation ManipulationReport `json:"manipulation"`
	FinalPrice   float64            `json:"final_price"`
}

// FairnessGuard clamps prices into bounds, rate-limits steps between accepted
// prices, and keeps a bounded history for manipulation scans.
type FairnessGuard struct {
	mu      sync.Mutex
	params  FairnessParams
	history *priceRing
	score   float64
}

func NewFairnessGuard(p FairnessParams) (*FairnessGuard, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("fairness params invalid: %w", err)
	}
	if p.HistorySize == 0 {
		p.HistorySize = DefaultHistorySize
	}
	return &FairnessGuard{
		params:  p,
		history: newPriceRing(p.HistorySize),
		score:   1.0,
	}, nil
}

func (g *FairnessGuard) Params() FairnessParams { return g.params }

// ValidatePrice runs the bound and step checks and records the accepted price.
func (g *FairnessGuard) ValidatePrice(price float64) Validation {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.validateLocked(price)
}

func (g *FairnessGuard) validateLocked(price float64) Validation {
	p := g.params
	issues := []string{}
	suggestions := []string{}

	accepted := price
	if math.IsNaN(accepted) || accepted < p.PriceFloor {
		accepted = p.PriceFloor
		issues = append(issues, IssuePriceTooLow)
		suggestions = append(suggestions, fmt.Sprintf("raise price to at least %.2f", p.PriceFloor))
	} else if accepted > p.PriceCeiling {
		accepted = p.PriceCeiling
		issues = append(issues, IssuePriceTooHigh)
		suggestions = append(suggestions, fmt.Sprintf("lower price to at most %.2f", p.PriceCeiling))
	}

	if last, ok := g.history.last(); ok && last > 0 {
		change := (accepted - last) / last
		if math.Abs(change) > p.MaxChangeRate {
			if change > 0 {
				accepted = last * (1 + p.MaxChangeRate)
			} else {
				accepted = last * (1 - p.MaxChangeRate)
			}
			// A full step may cross a bound; the bound wins without a second issue.
			accepted = clamp(accepted, p.PriceFloor, p.PriceCeiling)
			issues = append(issues, IssueRapidChange)
			suggestions = append(suggestions, fmt.Sprintf("change price gradually, at most %.0f%% per update", p.MaxChangeRate*100))
		}
	}

	g.history.push(accepted)
	g.score = math.Max(1-issuePenalty*float64(len(issues)), 0)

	return Validation{
		ValidatedPrice: accepted,
		IsFair:         len(issues) == 0,
		Issues:         issues,
		Suggestions:    suggestions,
		FairnessScore:  g.score,
	}
}

// EnsureFairMarket replaces a proposal with the reference mean when it strays more
// than 30% from it. The mean covers every positive reference price; with none, the
// proposal passes unchanged.
func (g *FairnessGuard) EnsureFairMarket(proposed float64, mc MarketContext) MarketCheck {
	refs := make([]float64, 0, 2+len(mc.CompetitorPrices))
	refs = append(refs, mc.AveragePrice, mc.MedianPrice)
	refs = append(refs, mc.CompetitorPrices...)

	sum, n := 0.0, 0
	for _, v := range refs {
		if v > 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return MarketCheck{Price: proposed}
	}
	mean := sum / float64(n)
	dev := math.Abs(proposed-mean) / mean

	out := MarketCheck{Price: proposed, ReferencePrice: mean, DeviationPercent: dev * 100}
	if dev > marketDeviationBand {
		out.Price = mean
		out.Adjusted = true
	}
	return out
}

// DetectManipulation scans a price sequence for a sustained rise or a wide range.
func (g *FairnessGuard) DetectManipulation(seq []float64) ManipulationReport {
	if len(seq) < minManipulationData {
		return ManipulationReport{
			InsufficientData: true,
			Reason:           InsufficientData,
			Patterns:         []string{},
			Confidence:       ConfidenceLow,
		}
	}

	patterns := []string{}
	if longestRise(seq) >= risingRunLength {
		patterns = append(patterns, PatternRapidRise)
	}

	lo, hi := seq[0], seq[0]
	for _, v := range seq[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > 0 && (hi-lo)/lo > volatilitySpike {
		patterns = append(patterns, PatternVolatility)
	}

	conf := ConfidenceLow
	switch {
	case len(patterns) > 1:
		conf = ConfidenceHigh
	case len(patterns) == 1:
		conf = ConfidenceMedium
	}
	return ManipulationReport{
		Detected:     len(patterns) > 0,
		PatternCount: len(patterns),
		Patterns:     patterns,
		Confidence:   conf,
	}
}

// longestRise counts the longest run of consecutive strict increases.
func longestRise(seq []float64) int {
	best, run := 0, 0
	for i := 1; i < len(seq); i++ {
		if seq[i] > seq[i-1] {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return best
}

// ApplyFairPricing validates a price, checks it against the market, and scans the
// most recent history. This is the entry point callers should use.
func (g *FairnessGuard) ApplyFairPricing(price float64, mc MarketContext) FairPricingReport {
	g.mu.Lock()
	v := g.validateLocked(price)
	recent := g.history.tail(manipulationWindow)
	g.mu.Unlock()

	m := g.EnsureFairMarket(v.ValidatedPrice, mc)
	return FairPricingReport{
		Validation:   v,
		Market:       m,
		Manipulation: g.DetectManipulation(recent),
		FinalPrice:   m.Price,
	}
}

// History returns the accepted prices, oldest first.
func (g *FairnessGuard) History() []float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.history.values()
}

func (g *FairnessGuard) FairnessScore() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.score
}
