package model

import "math"

// Condition labels the market state after an adjustment.
// Keep these values stable; they are part of API and CSV output.
type Condition string

const (
	ConditionHighDemand     Condition = "high_demand"
	ConditionAbundantSupply Condition = "abundant_supply"
	ConditionLowDemand      Condition = "low_demand"
	ConditionBalanced       Condition = "balanced"
	ConditionStable         Condition = "stable"
)

// ConditionFromRatio classifies a supply/demand ratio around 1.
func ConditionFromRatio(ratio float64) Condition {
	switch {
	case ratio > 1:
		return ConditionHighDemand
	case ratio < 1:
		return ConditionAbundantSupply
	default:
		return ConditionStable
	}
}

// ChargeLevel is the capacitor band.
type ChargeLevel string

const (
	ChargeHigh     ChargeLevel = "high_charge"
	ChargeLow      ChargeLevel = "low_charge"
	ChargeBalanced ChargeLevel = "balanced"
)

// Confidence grades a manipulation scan.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// clamp01 maps NaN to 0.
func clamp01(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return clamp(x, 0, 1)
}
