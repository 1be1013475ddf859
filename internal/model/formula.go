package model

import (
	"math"
	"sync"

	"github.com/shopspring/decimal"
)

// rateTable is a categorical lookup. Unknown keys resolve to the fallback entry,
// so callers never fail on an unrecognised category.
type rateTable struct {
	rates    map[string]float64
	fallback string
}

func (t rateTable) get(key string) float64 {
	if v, ok := t.rates[key]; ok {
		return v
	}
	return t.rates[t.fallback]
}

var (
	artComplexityRate = rateTable{
		rates:    map[string]float64{"low": 5, "medium": 10, "high": 20},
		fallback: "medium",
	}
	artDemandFactor = rateTable{
		rates:    map[string]float64{"low": 0.8, "normal": 1.0, "high": 1.5},
		fallback: "normal",
	}
	tokenUtilityRate = rateTable{
		rates:    map[string]float64{"low": 10, "medium": 25, "high": 50},
		fallback: "medium",
	}
	tokenTypeMultiplier = rateTable{
		rates:    map[string]float64{"standard": 1.0, "premium": 1.5, "limited": 2.0},
		fallback: "standard",
	}
	featureTierPrice = rateTable{
		rates:    map[string]float64{"free": 0, "basic": 10, "premium": 25, "enterprise": 100},
		fallback: "free",
	}
	supportCost = rateTable{
		rates:    map[string]float64{"community": 0, "priority": 15, "dedicated": 50},
		fallback: "community",
	}
)

const (
	featureBonusPerFeature = 5.0
	fairBand               = 0.25
	highDemandRatio        = 1.2
	lowDemandRatio         = 0.8
	activityScale          = 1000.0
)

var (
	feeRate    = decimal.RequireFromString("0.01")
	feeMinimum = decimal.RequireFromString("0.1")
)

type FeatureCost struct {
	BaseCost            float64 `json:"base_cost"`
	SupportCost         float64 `json:"support_cost"`
	FeatureBonus        float64 `json:"feature_bonus"`
	Total               float64 `json:"total"`
	MonthlySubscription bool    `json:"monthly_subscription"`
}

type TransactionFee struct {
	Amount        float64 `json:"amount"`
	CalculatedFee float64 `json:"calculated_fee"`
	ActualFee     float64 `json:"actual_fee"`
}

type RealTimeAdjustment struct {
	Ratio      float64   `json:"ratio"`
	Multiplier float64   `json:"demand_multiplier"`
	State      Condition `json:"market_state"`
}

// FairPriceCheck reports a price against a ±25% band around the market average.
type FairPriceCheck struct {
	Original  float64 `json:"original_price"`
	Price     float64 `json:"price"`
	Deviation float64 `json:"deviation"`
	Adjusted  bool    `json:"adjusted"`
}

// FormulaEngine holds the stateless pricing formulas plus the last demand multiplier.
type FormulaEngine struct {
	mu               sync.Mutex
	demandMultiplier float64
}

func NewFormulaEngine() *FormulaEngine {
	return &FormulaEngine{demandMultiplier: 1.0}
}

// CalculateArtPrice = rate[complexity] * hours * factor[demand], rounded to whole ALC.
// Negative hours count as zero.
func (e *FormulaEngine) CalculateArtPrice(complexity string, hours float64, demand string) float64 {
	if hours < 0 {
		hours = 0
	}
	return math.Round(artComplexityRate.get(complexity) * hours * artDemandFactor.get(demand))
}

// CalculateTokenValue = utility rate * type multiplier * scarcity bonus, rounded.
func (e *FormulaEngine) CalculateTokenValue(tokenType, utility string, scarcity int) float64 {
	return math.Round(tokenUtilityRate.get(utility) * tokenTypeMultiplier.get(tokenType) * scarcityBonus(scarcity))
}

func scarcityBonus(supply int) float64 {
	switch {
	case supply < 100:
		return 2.0
	case supply < 500:
		return 1.5
	default:
		return 1.0
	}
}

// CalculateFeatureCost prices a subscription tier. Features are a set; repeats count once.
func (e *FormulaEngine) CalculateFeatureCost(tier string, features []string, support string) FeatureCost {
	seen := make(map[string]struct{}, len(features))
	for _, f := range features {
		seen[f] = struct{}{}
	}
	base := featureTierPrice.get(tier)
	sup := supportCost.get(support)
	bonus := featureBonusPerFeature * float64(len(seen))
	return FeatureCost{
		BaseCost:     base,
		SupportCost:  sup,
		FeatureBonus: bonus,
		Total:        base + sup + bonus,

		MonthlySubscription: tier != "free",
	}
}

// CalculateTransactionFee charges 1% of the amount with a 0.1 ALC minimum.
func (e *FormulaEngine) CalculateTransactionFee(amount float64) TransactionFee {
	if amount < 0 {
		amount = 0
	}
	calc := decimal.NewFromFloat(amount).Mul(feeRate)
	actual := decimal.Max(calc, feeMinimum)
	return TransactionFee{
		Amount:        amount,
		CalculatedFee: calc.InexactFloat64(),
		ActualFee:     actual.InexactFloat64(),
	}
}

// AdjustRealTime recomputes the demand multiplier from the current order flow.
// With no supply the ratio is held at 1, the balanced book.
func (e *FormulaEngine) AdjustRealTime(supply, demand, recentActivity float64) RealTimeAdjustment {
	if !(demand > 0) {
		demand = 0
	}
	if !(recentActivity > 0) {
		recentActivity = 0
	}
	ratio := 1.0
	if supply > 0 {
		ratio = demand / supply
	}
	mult := ratio * (1 + recentActivity/activityScale)

	e.mu.Lock()
	e.demandMultiplier = mult
	e.mu.Unlock()

	state := ConditionBalanced
	switch {
	case ratio > highDemandRatio:
		state = ConditionHighDemand
	case ratio < lowDemandRatio:
		state = ConditionLowDemand
	}
	return RealTimeAdjustment{Ratio: ratio, Multiplier: mult, State: state}
}

func (e *FormulaEngine) DemandMultiplier() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.demandMultiplier
}

// ValidateFairPricing pulls a price back to within 25% of the market average.
// A non-positive average has no meaningful band; the price passes with zero deviation.
func (e *FormulaEngine) ValidateFairPricing(price, marketAverage float64) FairPriceCheck {
	out := FairPriceCheck{Original: price, Price: price}
	if marketAverage <= 0 {
		return out
	}
	out.Deviation = math.Abs(price-marketAverage) / marketAverage
	if out.Deviation > fairBand {
		out.Adjusted = true
		if price > marketAverage {
			out.Price = marketAverage * (1 + fairBand)
		} else {
			out.Price = marketAverage * (1 - fairBand)
		}
	}
	return out
}
