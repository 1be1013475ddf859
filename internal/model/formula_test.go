package model

import (
	"math"
	"testing"
)

func TestCalculateArtPrice(t *testing.T) {
	e := NewFormulaEngine()
	tests := []struct {
		name       string
		complexity string
		hours      float64
		demand     string
		want       float64
	}{
		{name: "high high", complexity: "high", hours: 3, demand: "high", want: 90},
		{name: "low low", complexity: "low", hours: 2.5, demand: "low", want: 10},
		{name: "rounds half up", complexity: "medium", hours: 1.25, demand: "normal", want: 13},
		{name: "unknown complexity uses medium", complexity: "epic", hours: 2, demand: "normal", want: 20},
		{name: "unknown demand uses 1.0", complexity: "high", hours: 1, demand: "frantic", want: 20},
		{name: "negative hours", complexity: "high", hours: -4, demand: "high", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.CalculateArtPrice(tt.complexity, tt.hours, tt.demand); got != tt.want {
				t.Errorf("CalculateArtPrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculateTokenValue(t *testing.T) {
	e := NewFormulaEngine()
	tests := []struct {
		tokenType string
		utility   string
		scarcity  int
		want      float64
	}{
		{"standard", "medium", 1000, 25},
		{"premium", "high", 50, 150},
		{"limited", "low", 99, 40},
		{"limited", "low", 100, 30},
		{"premium", "medium", 499, 56},
		{"standard", "high", 500, 50},
		{"mystery", "unknown", 1000, 25},
	}
	for _, tt := range tests {
		if got := e.CalculateTokenValue(tt.tokenType, tt.utility, tt.scarcity); got != tt.want {
			t.Errorf("CalculateTokenValue(%s, %s, %d) = %v, want %v", tt.tokenType, tt.utility, tt.scarcity, got, tt.want)
		}
	}
}

func TestCalculateFeatureCost(t *testing.T) {
	e := NewFormulaEngine()

	got := e.CalculateFeatureCost("premium", []string{"api", "themes", "api"}, "priority")
	want := FeatureCost{BaseCost: 25, SupportCost: 15, FeatureBonus: 10, Total: 50, MonthlySubscription: true}
	if got != want {
		t.Fatalf("CalculateFeatureCost(premium) = %+v, want %+v", got, want)
	}

	free := e.CalculateFeatureCost("free", nil, "community")
	if free.Total != 0 || free.MonthlySubscription {
		t.Fatalf("CalculateFeatureCost(free) = %+v", free)
	}

	fallback := e.CalculateFeatureCost("platinum", []string{"a"}, "concierge")
	if fallback.BaseCost != 0 || fallback.SupportCost != 0 || fallback.Total != 5 {
		t.Fatalf("CalculateFeatureCost(platinum) = %+v", fallback)
	}
}

func TestCalculateTransactionFee(t *testing.T) {
	e := NewFormulaEngine()
	tests := []struct {
		amount     float64
		calculated float64
		actual     float64
	}{
		{amount: 5, calculated: 0.05, actual: 0.1},
		{amount: 10, calculated: 0.1, actual: 0.1},
		{amount: 250, calculated: 2.5, actual: 2.5},
		{amount: 0, calculated: 0, actual: 0.1},
		{amount: -3, calculated: 0, actual: 0.1},
	}
	for _, tt := range tests {
		got := e.CalculateTransactionFee(tt.amount)
		if got.CalculatedFee != tt.calculated || got.ActualFee != tt.actual {
			t.Errorf("CalculateTransactionFee(%v) = %+v, want calculated %v actual %v", tt.amount, got, tt.calculated, tt.actual)
		}
	}
}

func TestAdjustRealTime(t *testing.T) {
	e := NewFormulaEngine()
	if e.DemandMultiplier() != 1 {
		t.Fatalf("initial multiplier = %v, want 1", e.DemandMultiplier())
	}

	tests := []struct {
		supply, demand, activity float64
		mult                     float64
		state                    Condition
	}{
		{supply: 100, demand: 150, activity: 500, mult: 2.25, state: ConditionHighDemand},
		{supply: 100, demand: 50, activity: 0, mult: 0.5, state: ConditionLowDemand},
		{supply: 100, demand: 100, activity: 100, mult: 1.1, state: ConditionBalanced},
		{supply: 0.5, demand: 1, activity: 0, mult: 2, state: ConditionHighDemand},
		{supply: 0, demand: 3, activity: 0, mult: 1, state: ConditionBalanced},
		{supply: -4, demand: 3, activity: 200, mult: 1.2, state: ConditionBalanced},
	}
	for _, tt := range tests {
		got := e.AdjustRealTime(tt.supply, tt.demand, tt.activity)
		if math.Abs(got.Multiplier-tt.mult) > 1e-9 || got.State != tt.state {
			t.Errorf("AdjustRealTime(%v, %v, %v) = %+v, want mult %v state %s", tt.supply, tt.demand, tt.activity, got, tt.mult, tt.state)
		}
		if e.DemandMultiplier() != got.Multiplier {
			t.Errorf("stored multiplier %v != returned %v", e.DemandMultiplier(), got.Multiplier)
		}
	}
}

func TestValidateFairPricing(t *testing.T) {
	e := NewFormulaEngine()
	tests := []struct {
		name     string
		price    float64
		avg      float64
		want     float64
		adjusted bool
	}{
		{name: "within band", price: 110, avg: 100, want: 110},
		{name: "edge of band", price: 125, avg: 100, want: 125},
		{name: "too high", price: 200, avg: 100, want: 125, adjusted: true},
		{name: "too low", price: 10, avg: 100, want: 75, adjusted: true},
		{name: "zero average passes", price: 10, avg: 0, want: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ValidateFairPricing(tt.price, tt.avg)
			if got.Price != tt.want || got.Adjusted != tt.adjusted || got.Original != tt.price {
				t.Errorf("ValidateFairPricing(%v, %v) = %+v", tt.price, tt.avg, got)
			}
		})
	}
}
