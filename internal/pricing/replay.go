package pricing

import (
	"fmt"
)

// Replay drives every calculator through a tick series. Per tick the market
// is adjusted, the capacitor accumulates, discharges and auto-balances, and
// the capacitor-adjusted base price is validated by the fairness guard.
func (s *Session) Replay(ticks []Tick) (*Result, error) {
	if len(ticks) == 0 {
		return nil, fmt.Errorf("no ticks")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger := make([]LedgerRow, 0, len(ticks))
	sumScore := 0.0

	for idx, tk := range ticks {
		adj, err := s.market.AdjustMarketValue(tk.SupplyDemandRatio)
		if err != nil {
			return nil, fmt.Errorf("tick %d adjust market: %w", idx, err)
		}

		s.capacitor.AccumulateCharge(tk.Activity)
		s.capacitor.DischargeOnPurchase(tk.PurchaseSize)
		st := s.capacitor.AutoBalance()

		capPrice := tk.BasePrice * st.Multiplier
		v := s.guard.ValidatePrice(capPrice)
		sumScore += v.FairnessScore

		ledger = append(ledger, LedgerRow{
			Index: idx,
			At:    tk.At,

			SupplyDemandRatio: tk.SupplyDemandRatio,
			Condition:         adj.Condition,
			MarketValue:       adj.New,

			Activity:     tk.Activity,
			PurchaseSize: tk.PurchaseSize,
			Charge:       st.Charge,
			ChargeLevel:  st.Level,
			Multiplier:   st.Multiplier,

			BasePrice:      tk.BasePrice,
			CapacitorPrice: capPrice,
			ValidatedPrice: v.ValidatedPrice,
			Issues:         v.Issues,

			FairnessScore: v.FairnessScore,
			MeanFairness:  sumScore / float64(idx+1),
		})
	}

	return &Result{
		Ledger:           ledger,
		FinalMarketValue: s.market.CurrentValue().Value,
		FinalCharge:      s.capacitor.Charge(),
		MeanFairness:     sumScore / float64(len(ticks)),
	}, nil
}
