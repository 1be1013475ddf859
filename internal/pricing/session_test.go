package pricing

import (
	"encoding/csv"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"alc-pricing/internal/config"
	"alc-pricing/internal/model"
)

func testSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(config.Default())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	if _, err := NewSession(nil); err == nil {
		t.Fatal("NewSession(nil) expected error")
	}
	cfg := config.Default()
	cfg.Market.Volatility = 5
	if _, err := NewSession(cfg); err == nil {
		t.Fatal("expected error for volatility 5")
	}
}

func TestQuotePipeline(t *testing.T) {
	s := testSession(t)

	art, err := s.Quote(QuoteRequest{Kind: KindArt, Complexity: "high", Hours: 3, Demand: "high"})
	if err != nil {
		t.Fatalf("Quote(art): %v", err)
	}
	if art.BasePrice != 90 || art.CapacitorMultiplier != 1 || art.FinalPrice != 90 {
		t.Fatalf("Quote(art) = %+v", art)
	}
	if art.Report == nil || !art.Report.Validation.IsFair {
		t.Fatalf("Quote(art) report = %+v", art.Report)
	}
	if !art.QuotedAt.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("QuotedAt = %v", art.QuotedAt)
	}

	// 150 is a 67% step from 90, so the guard limits it to 90*1.25.
	tok, err := s.Quote(QuoteRequest{
		Kind:      KindToken,
		TokenType: "premium",
		Utility:   "high",
		Scarcity:  50,
		Market:    model.MarketContext{AveragePrice: 150},
	})
	if err != nil {
		t.Fatalf("Quote(token): %v", err)
	}
	if tok.BasePrice != 150 || math.Abs(tok.FinalPrice-112.5) > 1e-9 {
		t.Fatalf("Quote(token) = %+v", tok)
	}
	if tok.Report.Market.Adjusted {
		t.Fatalf("25%% deviation should be inside the market band")
	}
}

func TestQuoteCapacitorMultiplier(t *testing.T) {
	s := testSession(t)
	for i := 0; i < 6; i++ {
		s.Capacitor().AccumulateCharge(1)
	}
	res, err := s.Quote(QuoteRequest{Kind: KindArt, Complexity: "high", Hours: 3, Demand: "high"})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.CapacitorMultiplier-1.02) > 1e-9 || math.Abs(res.FinalPrice-91.8) > 1e-9 {
		t.Fatalf("Quote() = %+v", res)
	}
}

func TestQuoteFeeBypassesGuard(t *testing.T) {
	s := testSession(t)
	res, err := s.Quote(QuoteRequest{Kind: KindFee, Amount: 5})
	if err != nil {
		t.Fatal(err)
	}
	if res.Fee == nil || res.FinalPrice != 0.1 || res.Report != nil {
		t.Fatalf("Quote(fee) = %+v", res)
	}
	if len(s.Guard().History()) != 0 {
		t.Fatalf("fee quote touched the guard history")
	}
}

func TestQuoteFreeFeature(t *testing.T) {
	s := testSession(t)
	res, err := s.Quote(QuoteRequest{Kind: KindFeature, Tier: "free", Support: "community"})
	if err != nil {
		t.Fatal(err)
	}
	if res.FinalPrice != 0 || res.Feature == nil || res.Feature.MonthlySubscription {
		t.Fatalf("Quote(free feature) = %+v", res)
	}
}

func TestQuoteUnknownKind(t *testing.T) {
	s := testSession(t)
	if _, err := s.Quote(QuoteRequest{Kind: "nft"}); !errors.Is(err, ErrUnknownQuoteKind) {
		t.Fatalf("Quote(nft) error = %v, want ErrUnknownQuoteKind", err)
	}
}

func testTicks() []Tick {
	return []Tick{
		{SupplyDemandRatio: 2, Activity: 1, BasePrice: 100},
		{SupplyDemandRatio: 2, Activity: 1, BasePrice: 100},
		{SupplyDemandRatio: 2, Activity: 1, BasePrice: 100},
	}
}

func TestReplay(t *testing.T) {
	s := testSession(t)
	res, err := s.Replay(testTicks())
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if len(res.Ledger) != 3 {
		t.Fatalf("ledger rows = %d", len(res.Ledger))
	}
	if math.Abs(res.FinalMarketValue-0.6655) > 1e-9 {
		t.Fatalf("FinalMarketValue = %v, want 0.6655", res.FinalMarketValue)
	}
	// each tick: +0.05 accumulate, -0.02 auto-balance
	if math.Abs(res.FinalCharge-0.59) > 1e-9 {
		t.Fatalf("FinalCharge = %v, want 0.59", res.FinalCharge)
	}
	if res.MeanFairness != 1 {
		t.Fatalf("MeanFairness = %v", res.MeanFairness)
	}
	for i, row := range res.Ledger {
		if row.Condition != model.ConditionHighDemand || row.ChargeLevel != model.ChargeBalanced {
			t.Errorf("row %d = %+v", i, row)
		}
		if row.ValidatedPrice != 100 {
			t.Errorf("row %d validated = %v", i, row.ValidatedPrice)
		}
	}
	if got := res.Prices(); len(got) != 3 || got[2] != 100 {
		t.Fatalf("Prices() = %v", got)
	}
}

func TestReplayErrors(t *testing.T) {
	s := testSession(t)
	if _, err := s.Replay(nil); err == nil {
		t.Fatal("Replay(nil) expected error")
	}
	_, err := s.Replay([]Tick{{SupplyDemandRatio: 1, BasePrice: 10}, {SupplyDemandRatio: 0, BasePrice: 10}})
	if !errors.Is(err, model.ErrInvalidRatio) {
		t.Fatalf("Replay() error = %v, want ErrInvalidRatio", err)
	}
}

func TestReplayMeanFairnessTracksIssues(t *testing.T) {
	s := testSession(t)
	res, err := s.Replay([]Tick{
		{SupplyDemandRatio: 1, BasePrice: 100},
		{SupplyDemandRatio: 1, BasePrice: 1000},
	})
	if err != nil {
		t.Fatal(err)
	}
	second := res.Ledger[1]
	if second.ValidatedPrice != 125 || len(second.Issues) != 1 {
		t.Fatalf("row 1 = %+v", second)
	}
	if math.Abs(second.MeanFairness-0.9) > 1e-12 || math.Abs(res.MeanFairness-0.9) > 1e-12 {
		t.Fatalf("mean fairness = %v / %v, want 0.9", second.MeanFairness, res.MeanFairness)
	}
}

func TestWriteLedgerCSV(t *testing.T) {
	s := testSession(t)
	ticks := testTicks()
	ticks[0].At = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	res, err := s.Replay(ticks)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "ledger.csv")
	if err := WriteLedgerCSV(path, res.Ledger); err != nil {
		t.Fatalf("WriteLedgerCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 4 || len(rows[0]) != 16 {
		t.Fatalf("csv shape = %d rows, %d cols", len(rows), len(rows[0]))
	}
	if rows[1][1] != "2024-05-01T00:00:00Z" || rows[2][1] != "" {
		t.Fatalf("at column = %q, %q", rows[1][1], rows[2][1])
	}
	if rows[1][3] != "high_demand" || rows[1][12] != "100.000000" {
		t.Fatalf("row 1 = %v", rows[1])
	}
}

func TestLoadScenarioJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ticks.json")
	body := `{"name":"surge","ticks":[{"supply_demand_ratio":1.5,"activity":0.8,"purchase_size":0.1,"base_price":40}]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	sc, err := LoadScenarioJSON(path)
	if err != nil {
		t.Fatalf("LoadScenarioJSON: %v", err)
	}
	if sc.Name != "surge" || len(sc.Ticks) != 1 || sc.Ticks[0].BasePrice != 40 {
		t.Fatalf("scenario = %+v", sc)
	}
}
