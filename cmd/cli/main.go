package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"alc-pricing/internal/analysis"
	"alc-pricing/internal/config"
	"alc-pricing/internal/pricing"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "quote":
		cmdQuote(os.Args[2:])
	case "replay":
		cmdReplay(os.Args[2:])
	case "rates":
		cmdRates(os.Args[2:])
	case "detect":
		cmdDetect(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli quote --kind art --complexity high --hours 4 --demand high")
	fmt.Println("  cli quote --kind feature --tier premium --features analytics,api_access --support priority")
	fmt.Println("  cli replay --data examples/ticks.json --config examples/config.yaml --out results/ledger.csv")
	fmt.Println("  cli rates --config examples/config.yaml")
	fmt.Println("  cli detect --prices 100,101,102,103,104,105")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - quote prints the full pipeline result as JSON")
	fmt.Println("  - replay writes one CSV row per tick and prints a price summary")
}

func loadConfig(path string) *config.Config {
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func cmdQuote(args []string) {
	fs := flag.NewFlagSet("quote", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	kind := fs.String("kind", "art", "Quote kind: art, token, feature or fee")
	complexity := fs.String("complexity", "medium", "Art complexity: low, medium or high")
	hours := fs.Float64("hours", 1, "Art hours spent")
	demand := fs.String("demand", "normal", "Art demand: low, normal or high")
	tokenType := fs.String("token-type", "standard", "Token type: standard, premium or limited")
	utility := fs.String("utility", "medium", "Token utility: low, medium or high")
	scarcity := fs.Int("scarcity", 1000, "Token circulating supply")
	tier := fs.String("tier", "basic", "Feature tier: free, basic, premium or enterprise")
	features := fs.String("features", "", "Comma-separated feature names")
	support := fs.String("support", "community", "Support: community, priority or dedicated")
	amount := fs.Float64("amount", 0, "Transaction amount for fee quotes")
	avg := fs.Float64("market-average", 0, "Optional market average price")
	median := fs.Float64("market-median", 0, "Optional market median price")
	_ = fs.Parse(args)

	session, err := pricing.NewSession(loadConfig(*cfgPath))
	if err != nil {
		panic(err)
	}

	req := pricing.QuoteRequest{
		Kind:       pricing.Kind(*kind),
		Complexity: *complexity,
		Hours:      *hours,
		Demand:     *demand,
		TokenType:  *tokenType,
		Utility:    *utility,
		Scarcity:   *scarcity,
		Tier:       *tier,
		Features:   splitList(*features),
		Support:    *support,
		Amount:     *amount,
	}
	req.Market.AveragePrice = *avg
	req.Market.MedianPrice = *median

	res, err := session.Quote(req)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	printJSON(res)
}

func cmdReplay(args []string) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	dataPath := fs.String("data", "examples/ticks.json", "Path to scenario JSON")
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	outPath := fs.String("out", "results/ledger.csv", "Output CSV path")
	n := fs.Int("n", 0, "Optional: limit to first N ticks (0=all)")
	_ = fs.Parse(args)

	sc, err := pricing.LoadScenarioJSON(*dataPath)
	if err != nil {
		panic(err)
	}
	ticks := sc.Ticks
	if *n > 0 && *n < len(ticks) {
		ticks = ticks[:*n]
	}

	session, err := pricing.NewSession(loadConfig(*cfgPath))
	if err != nil {
		panic(err)
	}
	res, err := session.Replay(ticks)
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := pricing.WriteLedgerCSV(*outPath, res.Ledger); err != nil {
		panic(err)
	}

	s := analysis.Summarize(res.Prices())
	fmt.Printf("Wrote %d rows to %s\n", len(res.Ledger), *outPath)
	fmt.Printf("Final market value=%.4f Final charge=%.3f Mean fairness=%.3f\n", res.FinalMarketValue, res.FinalCharge, res.MeanFairness)
	fmt.Printf("Prices min=%.2f max=%.2f mean=%.2f p05=%.2f p95=%.2f spread=%.2f\n", s.Min, s.Max, s.Mean, s.P05, s.P95, s.Spread)
}

func cmdRates(args []string) {
	fs := flag.NewFlagSet("rates", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	_ = fs.Parse(args)

	session, err := pricing.NewSession(loadConfig(*cfgPath))
	if err != nil {
		panic(err)
	}
	m := session.Market()
	snap := m.CurrentValue()
	fmt.Printf("ALC value=$%.4f volume=%.0f trend=%.2f%%\n\n", snap.Value, snap.Volume, snap.TrendPercent)

	fmt.Printf("%-20s %-10s\n", "earn", "alc")
	for _, r := range m.ListEarnRates() {
		fmt.Printf("%-20s %-10.2f\n", r.Name, r.Value)
	}
	fmt.Printf("\n%-20s %-10s\n", "spend", "alc")
	for _, r := range m.ListSpendCosts() {
		fmt.Printf("%-20s %-10.2f\n", r.Name, r.Value)
	}
}

func cmdDetect(args []string) {
	fs := flag.NewFlagSet("detect", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	raw := fs.String("prices", "", "Comma-separated price sequence")
	_ = fs.Parse(args)

	prices, err := parseFloats(*raw)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	session, err := pricing.NewSession(loadConfig(*cfgPath))
	if err != nil {
		panic(err)
	}
	printJSON(session.Guard().DetectManipulation(prices))
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		panic(err)
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseFloats(s string) ([]float64, error) {
	parts := splitList(s)
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("bad price %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
