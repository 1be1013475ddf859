package model

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownActivity = errors.New("unknown activity")
	ErrUnknownItem     = errors.New("unknown item")
	ErrInvalidRatio    = errors.New("supply/demand ratio must be > 0")
)

// stabilizeRate is the fraction of the gap to the baseline closed per StabilizeMarket call.
const stabilizeRate = 0.1

// MarketParams is the configuration snapshot a Market is built from.
// InitialValue is USD per ALC and doubles as the stabilization target.
// Volatility in (0, 1] scales how far one supply/demand reading moves the rate.
// EarnRates and SpendCosts are ALC amounts keyed by activity and item name.
type MarketParams struct {
	InitialValue float64
	DailyVolume  float64
	TrendPercent float64
	Volatility   float64
	EarnRates    map[string]float64
	SpendCosts   map[string]float64
}

// MarketSnapshot is a point-in-time read of the exchange rate.
type MarketSnapshot struct {
	Value        float64 `json:"value"`
	Volume       float64 `json:"volume"`
	TrendPercent float64 `json:"trend"`
}

type Earnings struct {
	Activity string  `json:"activity"`
	Rate     float64 `json:"rate"`
	USDValue float64 `json:"usd_value"`
}

type Cost struct {
	Item     string  `json:"item"`
	Cost     float64 `json:"cost"`
	USDValue float64 `json:"usd_value"`
}

// Adjustment is the outcome of one AdjustMarketValue call.
type Adjustment struct {
	Old           float64   `json:"old_value"`
	New           float64   `json:"new_value"`
	ChangePercent float64   `json:"change_percent"`
	Condition     Condition `json:"market_condition"`
}

type Stabilization struct {
	StabilizedValue float64 `json:"stabilized_value"`
	TargetValue     float64 `json:"target_value"`
}

// Rate is one row of an earn or spend table.
type Rate struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Market tracks the floating ALC exchange rate.
type Market struct {
	mu sync.Mutex

	target     float64
	value      float64
	volume     float64
	trend      float64
	volatility float64
	earnRates  map[string]float64
	spendCosts map[string]float64
}

func NewMarket(p MarketParams) (*Market, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	m := &Market{
		target:     p.InitialValue,
		value:      p.InitialValue,
		volume:     p.DailyVolume,
		trend:      p.TrendPercent,
		volatility: p.Volatility,
		earnRates:  copyRates(p.EarnRates),
		spendCosts: copyRates(p.SpendCosts),
	}
	return m, nil
}

func (p MarketParams) Validate() error {
	if !(p.InitialValue > 0) || math.IsInf(p.InitialValue, 0) {
		return errors.New("InitialValue must be > 0")
	}
	if p.DailyVolume < 0 {
		return errors.New("DailyVolume must be >= 0")
	}
	if !(p.Volatility > 0) || p.Volatility > 1 {
		return errors.New("Volatility must be in (0, 1]")
	}
	return nil
}

func (m *Market) CurrentValue() MarketSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MarketSnapshot{Value: m.value, Volume: m.volume, TrendPercent: m.trend}
}

// CalculateEarnings returns the ALC paid for an activity and its USD worth.
// A missing activity, or one configured with a non-positive rate, yields ErrUnknownActivity.
func (m *Market) CalculateEarnings(activity string) (Earnings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rate, ok := m.earnRates[activity]
	if !ok || rate <= 0 {
		return Earnings{}, fmt.Errorf("%w: %q", ErrUnknownActivity, activity)
	}
	return Earnings{Activity: activity, Rate: rate, USDValue: usd(rate, m.value)}, nil
}

// CalculateCost returns the ALC price of an item and its USD worth.
func (m *Market) CalculateCost(item string) (Cost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cost, ok := m.spendCosts[item]
	if !ok || cost <= 0 {
		return Cost{}, fmt.Errorf("%w: %q", ErrUnknownItem, item)
	}
	return Cost{Item: item, Cost: cost, USDValue: usd(cost, m.value)}, nil
}

// AdjustMarketValue moves the rate by (ratio-1)*volatility of itself.
// The result is not bounded: repeated ratios above 1 compound.
func (m *Market) AdjustMarketValue(ratio float64) (Adjustment, error) {
	if !(ratio > 0) || math.IsInf(ratio, 0) {
		return Adjustment{}, fmt.Errorf("%w, got %v", ErrInvalidRatio, ratio)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	old := m.value
	m.value += m.value * (ratio - 1) * m.volatility
	m.trend = (m.value - old) / old * 100

	return Adjustment{
		Old:           old,
		New:           m.value,
		ChangePercent: m.trend,
		Condition:     ConditionFromRatio(ratio),
	}, nil
}

// StabilizeMarket closes 10% of the gap between the rate and its configured baseline.
func (m *Market) StabilizeMarket() Stabilization {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value += (m.target - m.value) * stabilizeRate
	return Stabilization{StabilizedValue: m.value, TargetValue: m.target}
}

func (m *Market) ListEarnRates() []Rate {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedRates(m.earnRates)
}

func (m *Market) ListSpendCosts() []Rate {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedRates(m.spendCosts)
}

func usd(alc, rate float64) float64 {
	return decimal.NewFromFloat(alc).Mul(decimal.NewFromFloat(rate)).Round(4).InexactFloat64()
}

func copyRates(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func sortedRates(in map[string]float64) []Rate {
	out := make([]Rate, 0, len(in))
	for k, v := range in {
		out = append(out, Rate{Name: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
