package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"alc-pricing/internal/model"

	"gopkg.in/yaml.v3"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"

	DefaultChannel = "alc:price_signals"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Market    MarketConfig    `yaml:"market"`
	Fairness  FairnessConfig  `yaml:"fairness"`
	Capacitor CapacitorConfig `yaml:"capacitor"`
	Sync      SyncConfig      `yaml:"sync"`
}

type MarketConfig struct {
	// Optional: load earn/spend tables from a separate YAML.
	// Inline earn_rates and spend_costs override entries from the file.
	RatesFile    string             `yaml:"rates_file"`
	CurrentValue float64            `yaml:"current_value"`
	DailyVolume  float64            `yaml:"daily_volume"`
	TrendPercent float64            `yaml:"trend_percent"`
	Volatility   float64            `yaml:"volatility"`
	EarnRates    map[string]float64 `yaml:"earn_rates"`
	SpendCosts   map[string]float64 `yaml:"spend_costs"`
}

type FairnessConfig struct {
	PriceFloor    float64 `yaml:"price_floor"`
	PriceCeiling  float64 `yaml:"price_ceiling"`
	MaxChangeRate float64 `yaml:"max_change_rate"`
	HistorySize   int     `yaml:"history_size"`
}

type CapacitorConfig struct {
	InitialCharge    *float64 `yaml:"initial_charge"`
	BalanceThreshold float64  `yaml:"balance_threshold"`
}

type SyncConfig struct {
	// CascadeThreshold is the fractional price change that fans a broadcast
	// out to every registered target.
	CascadeThreshold float64  `yaml:"cascade_threshold"`
	Backend          string   `yaml:"backend"`
	RedisURL         string   `yaml:"redis_url"`
	Channel          string   `yaml:"channel"`
	MaxQueue         int      `yaml:"max_queue"`
	ReceiverSize     int      `yaml:"receiver_size"`
	Targets          []string `yaml:"targets"`
}

// Default returns the built-in economy used when no config file is given.
func Default() *Config {
	c := &Config{}
	applyDefaults(c)
	return c
}

func defaultEarnRates() map[string]float64 {
	return map[string]float64{
		"daily_login":      10,
		"content_creation": 50,
		"community_help":   25,
		"referral":         100,
		"bug_report":       75,
	}
}

func defaultSpendCosts() map[string]float64 {
	return map[string]float64{
		"custom_theme":     50,
		"priority_support": 200,
		"premium_feature":  500,
		"art_commission":   1000,
	}
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	applyDefaults(c)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.Market.RatesFile != "" {
		ratesPath := c.Market.RatesFile
		if !filepath.IsAbs(ratesPath) {
			// Relative to the config file first, then cwd.
			cand := filepath.Join(filepath.Dir(path), ratesPath)
			if _, err := os.Stat(cand); err == nil {
				ratesPath = cand
			}
		}
		loaded, err := loadRatesFile(ratesPath)
		if err != nil {
			return nil, err
		}
		c.Market.EarnRates = MergeRates(loaded.EarnRates, c.Market.EarnRates)
		c.Market.SpendCosts = MergeRates(loaded.SpendCosts, c.Market.SpendCosts)
	}
	return &c, nil
}

func applyDefaults(c *Config) {
	m := &c.Market
	if m.CurrentValue == 0 {
		m.CurrentValue = 0.5
	}
	if m.DailyVolume == 0 {
		m.DailyVolume = 10000
	}
	if m.Volatility == 0 {
		m.Volatility = 0.1
	}
	if m.EarnRates == nil {
		m.EarnRates = defaultEarnRates()
	}
	if m.SpendCosts == nil {
		m.SpendCosts = defaultSpendCosts()
	}

	f := &c.Fairness
	if f.PriceFloor == 0 {
		f.PriceFloor = 0.01
	}
	if f.PriceCeiling == 0 {
		f.PriceCeiling = 10000
	}
	if f.MaxChangeRate == 0 {
		f.MaxChangeRate = 0.25
	}
	if f.HistorySize == 0 {
		f.HistorySize = model.DefaultHistorySize
	}

	// initial_charge may legitimately be 0, so only a missing key defaults.
	if c.Capacitor.InitialCharge == nil {
		half := 0.5
		c.Capacitor.InitialCharge = &half
	}
	if c.Capacitor.BalanceThreshold == 0 {
		c.Capacitor.BalanceThreshold = 0.7
	}

	s := &c.Sync
	if s.CascadeThreshold == 0 {
		s.CascadeThreshold = 0.1
	}
	if s.Backend == "" {
		s.Backend = BackendMemory
	}
	if s.RedisURL == "" {
		s.RedisURL = "redis://localhost:6379/0"
	}
	if s.Channel == "" {
		s.Channel = DefaultChannel
	}
	if s.MaxQueue == 0 {
		s.MaxQueue = 1000
	}
	if s.ReceiverSize == 0 {
		s.ReceiverSize = 256
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := c.Market.ToModelParams().Validate(); err != nil {
		return fmt.Errorf("market config invalid: %w", err)
	}
	if err := c.Fairness.ToModelParams().Validate(); err != nil {
		return fmt.Errorf("fairness config invalid: %w", err)
	}
	if err := c.Capacitor.ToModelParams().Validate(); err != nil {
		return fmt.Errorf("capacitor config invalid: %w", err)
	}
	if err := c.Sync.Validate(); err != nil {
		return fmt.Errorf("sync config invalid: %w", err)
	}
	return nil
}

func (m MarketConfig) ToModelParams() model.MarketParams {
	return model.MarketParams{
		InitialValue: m.CurrentValue,
		DailyVolume:  m.DailyVolume,
		TrendPercent: m.TrendPercent,
		Volatility:   m.Volatility,
		EarnRates:    m.EarnRates,
		SpendCosts:   m.SpendCosts,
	}
}

func (f FairnessConfig) ToModelParams() model.FairnessParams {
	return model.FairnessParams{
		PriceFloor:    f.PriceFloor,
		PriceCeiling:  f.PriceCeiling,
		MaxChangeRate: f.MaxChangeRate,
		HistorySize:   f.HistorySize,
	}
}

func (cc CapacitorConfig) ToModelParams() model.CapacitorParams {
	p := model.CapacitorParams{BalanceThreshold: cc.BalanceThreshold}
	if cc.InitialCharge != nil {
		p.InitialCharge = *cc.InitialCharge
	}
	return p
}

func (s SyncConfig) Validate() error {
	if !(s.CascadeThreshold > 0) {
		return errors.New("cascade_threshold must be > 0")
	}
	switch s.Backend {
	case BackendMemory:
	case BackendRedis:
		if s.RedisURL == "" {
			return errors.New("redis_url is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown backend %q", s.Backend)
	}
	if s.MaxQueue < 1 {
		return errors.New("max_queue must be >= 1")
	}
	if s.ReceiverSize < 1 {
		return errors.New("receiver_size must be >= 1")
	}
	return nil
}

type ratesFile struct {
	EarnRates  map[string]float64 `yaml:"earn_rates"`
	SpendCosts map[string]float64 `yaml:"spend_costs"`
}

func loadRatesFile(path string) (ratesFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ratesFile{}, err
	}
	var r ratesFile
	if err := yaml.Unmarshal(raw, &r); err != nil {
		return ratesFile{}, fmt.Errorf("parse rates file %s: %w", path, err)
	}
	return r, nil
}

// MergeRates overlays entries from override onto a copy of base.
// A zero entry in override disables the key rather than removing it.
func MergeRates(base, override map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}
