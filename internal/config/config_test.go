package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if c.Market.CurrentValue != 0.5 || c.Capacitor.BalanceThreshold != 0.7 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if *c.Capacitor.InitialCharge != 0.5 || c.Sync.Channel != DefaultChannel {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.Market.EarnRates["daily_login"] != 10 {
		t.Fatalf("earn rates = %v", c.Market.EarnRates)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "alc.yaml", `
market:
  current_value: 2
  earn_rates:
    posting: 3
capacitor:
  initial_charge: 0
`)
	c, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Market.CurrentValue != 2 || c.Market.Volatility != 0.1 {
		t.Fatalf("market = %+v", c.Market)
	}
	if len(c.Market.EarnRates) != 1 || c.Market.EarnRates["posting"] != 3 {
		t.Fatalf("earn rates = %v", c.Market.EarnRates)
	}
	if c.Capacitor.InitialCharge == nil || *c.Capacitor.InitialCharge != 0 {
		t.Fatalf("explicit zero initial_charge was overwritten")
	}
	if c.Fairness.PriceCeiling != 10000 || c.Sync.Backend != BackendMemory {
		t.Fatalf("defaults not applied: %+v %+v", c.Fairness, c.Sync)
	}
}

func TestLoadRatesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "rates.yaml", `
earn_rates:
  daily_login: 10
  referral: 100
spend_costs:
  custom_theme: 50
`)
	p := writeFile(t, dir, "alc.yaml", `
market:
  rates_file: rates.yaml
  earn_rates:
    referral: 250
`)
	c, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Market.EarnRates["daily_login"] != 10 || c.Market.EarnRates["referral"] != 250 {
		t.Fatalf("earn rates = %v", c.Market.EarnRates)
	}
	if c.Market.SpendCosts["custom_theme"] != 50 {
		t.Fatalf("spend costs = %v", c.Market.SpendCosts)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "volatility", body: "market:\n  volatility: 3\n", want: "market config invalid"},
		{name: "ceiling below floor", body: "fairness:\n  price_floor: 10\n  price_ceiling: 5\n", want: "fairness config invalid"},
		{name: "threshold", body: "capacitor:\n  balance_threshold: 0.4\n", want: "capacitor config invalid"},
		{name: "backend", body: "sync:\n  backend: kafka\n", want: "sync config invalid"},
		{name: "bad yaml", body: "market: [", want: "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, t.TempDir(), "alc.yaml", tt.body)
			_, err := Load(p)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestMergeRates(t *testing.T) {
	base := map[string]float64{"a": 1, "b": 2}
	out := MergeRates(base, map[string]float64{"b": 0, "c": 3})
	if out["a"] != 1 || out["b"] != 0 || out["c"] != 3 || len(out) != 3 {
		t.Fatalf("MergeRates() = %v", out)
	}
	if base["b"] != 2 {
		t.Fatalf("MergeRates mutated base")
	}
}

func TestLoadExampleConfig(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "examples", "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Market.EarnRates["referral"] != 120 || c.Market.EarnRates["daily_login"] != 10 {
		t.Fatalf("earn rates = %v", c.Market.EarnRates)
	}
	if len(c.Sync.Targets) != 3 || c.Sync.Backend != BackendMemory {
		t.Fatalf("sync = %+v", c.Sync)
	}
}
