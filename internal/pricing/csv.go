package pricing

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"
	"time"
)

func WriteLedgerCSV(path string, ledger []LedgerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"index",
		"at_utc",
		"supply_demand_ratio",
		"condition",
		"market_value",
		"activity",
		"purchase_size",
		"charge",
		"charge_level",
		"multiplier",
		"base_price",
		"capacitor_price",
		"validated_price",
		"issues",
		"fairness_score",
		"mean_fairness",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Index),
			fmtTime(r.At),
			fmtFloat(r.SupplyDemandRatio),
			string(r.Condition),
			fmtFloat(r.MarketValue),
			fmtFloat(r.Activity),
			fmtFloat(r.PurchaseSize),
			fmtFloat(r.Charge),
			string(r.ChargeLevel),
			fmtFloat(r.Multiplier),
			fmtFloat(r.BasePrice),
			fmtFloat(r.CapacitorPrice),
			fmtFloat(r.ValidatedPrice),
			strings.Join(r.Issues, ";"),
			fmtFloat(r.FairnessScore),
			fmtFloat(r.MeanFairness),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
