package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"time"

	"alc-pricing/internal/config"
	"alc-pricing/internal/hydrogen"
	"alc-pricing/internal/pricing"
)

// Demo:
// - Build a pricing session from the default economy (or --config)
// - Replay a short market scenario through market, capacitor and fairness guard
// - Broadcast every accepted price over an in-memory signal bus to two sites
func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	dataPath := flag.String("data", "", "Path to scenario JSON (optional, synthetic ticks otherwise)")
	n := flag.Int("n", 12, "Number of ticks to simulate")
	outCSV := flag.String("out", "", "Optional path to write ledger CSV (e.g. results/ledger.csv)")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*cfgPath)
	if err != nil {
		panic(err)
	}

	ticks := syntheticTicks(*n)
	if *dataPath != "" {
		sc, err := pricing.LoadScenarioJSON(*dataPath)
		if err != nil {
			panic(err)
		}
		ticks = sc.Ticks
		if *n < len(ticks) {
			ticks = ticks[:*n]
		}
	}

	session, err := pricing.NewSession(cfg)
	if err != nil {
		panic(err)
	}
	result, err := session.Replay(ticks)
	if err != nil {
		panic(err)
	}

	bus := hydrogen.NewMemoryBus()
	receiver, err := hydrogen.NewPriceReceiver(16)
	if err != nil {
		panic(err)
	}
	bus.Subscribe(hydrogen.AllSites, receiver.Handle)
	broadcaster := hydrogen.NewPriceBroadcaster(hydrogen.NewHydrogenSync(bus, cfg.Sync.MaxQueue), cfg.Sync.CascadeThreshold)
	broadcaster.Register("gallery", "marketplace")

	fmt.Printf("Loaded %d ticks\n", len(ticks))
	fmt.Printf("Starting value=$%.4f charge=%.3f\n\n", cfg.Market.CurrentValue, *cfg.Capacitor.InitialCharge)

	ctx := context.Background()
	cascades := 0
	for i := 0; i < min(12, len(result.Ledger)); i++ {
		r := result.Ledger[i]
		b, err := broadcaster.Broadcast(ctx, "studio", r.ValidatedPrice)
		if err != nil {
			panic(err)
		}
		mark := ""
		if b.Cascade {
			cascades++
			mark = "  cascade"
		}
		fmt.Printf(
			"#%02d ratio=%5.2f  %-8s  alc=$%.4f  charge=%.3f  x%.3f  base=%8.2f  price=%8.2f  fair=%.2f%s\n",
			r.Index,
			r.SupplyDemandRatio,
			string(r.Condition),
			r.MarketValue,
			r.Charge,
			r.Multiplier,
			r.BasePrice,
			r.ValidatedPrice,
			r.FairnessScore,
			mark,
		)
	}

	if *outCSV != "" {
		if err := pricing.WriteLedgerCSV(*outCSV, result.Ledger); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

	fmt.Printf("\nSites synced: %v (cascades=%d)\n", receiver.Sites(), cascades)
	fmt.Printf("Done. Final value=$%.4f  charge=%.3f  mean fairness=%.3f\n", result.FinalMarketValue, result.FinalCharge, result.MeanFairness)
}

// syntheticTicks swings supply/demand around balance with a growing base price.
func syntheticTicks(n int) []pricing.Tick {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	out := make([]pricing.Tick, 0, n)
	for i := 0; i < n; i++ {
		phase := float64(i) / 3
		out = append(out, pricing.Tick{
			At:                start.Add(time.Duration(i) * time.Hour),
			SupplyDemandRatio: 1 + 0.6*math.Sin(phase),
			Activity:          0.5 + 0.5*math.Cos(phase),
			PurchaseSize:      0.3 + 0.2*math.Sin(phase*2),
			BasePrice:         100 + 15*float64(i%4),
		})
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
