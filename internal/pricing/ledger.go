package pricing

import (
	"time"

	"alc-pricing/internal/model"
)

// Tick is one step of a replay scenario.
type Tick struct {
	At time.Time `json:"at,omitempty"`

	SupplyDemandRatio float64 `json:"supply_demand_ratio"`
	Activity          float64 `json:"activity"`
	PurchaseSize      float64 `json:"purchase_size"`
	BasePrice         float64 `json:"base_price"`
}

// LedgerRow is one row of per-tick output.
type LedgerRow struct {
	Index int       `json:"index"`
	At    time.Time `json:"at,omitempty"`

	SupplyDemandRatio float64         `json:"supply_demand_ratio"`
	Condition         model.Condition `json:"condition"`
	MarketValue       float64         `json:"market_value"`

	Activity     float64           `json:"activity"`
	PurchaseSize float64           `json:"purchase_size"`
	Charge       float64           `json:"charge"`
	ChargeLevel  model.ChargeLevel `json:"charge_level"`
	Multiplier   float64           `json:"multiplier"`

	BasePrice      float64  `json:"base_price"`
	CapacitorPrice float64  `json:"capacitor_price"`
	ValidatedPrice float64  `json:"validated_price"`
	Issues         []string `json:"issues"`

	FairnessScore float64 `json:"fairness_score"`
	MeanFairness  float64 `json:"mean_fairness"`
}

type Result struct {
	Ledger           []LedgerRow `json:"ledger"`
	FinalMarketValue float64     `json:"final_market_value"`
	FinalCharge      float64     `json:"final_charge"`
	MeanFairness     float64     `json:"mean_fairness"`
}

// Prices returns the validated price column.
func (r *Result) Prices() []float64 {
	out := make([]float64, 0, len(r.Ledger))
	for _, row := range r.Ledger {
		out = append(out, row.ValidatedPrice)
	}
	return out
}
