package model

import (
	"errors"
	"math"
	"sync"
)

const (
	MaxCharge = 1.0

	chargeMidpoint     = 0.5
	accumulateRate     = 0.05
	dischargeRate      = 0.1
	balanceStep        = 0.02
	multiplierSlope    = 0.2
	balancedMultiplier = 1.0
)

// CapacitorParams configures the charge model.
// InitialCharge is the starting charge in [0, 1]. BalanceThreshold is the upper
// edge of the balanced band [1-BalanceThreshold, BalanceThreshold] and must be
// in (0.5, 1).
type CapacitorParams struct {
	InitialCharge    float64
	BalanceThreshold float64
}

func (p CapacitorParams) Validate() error {
	if p.InitialCharge < 0 || p.InitialCharge > MaxCharge {
		return errors.New("InitialCharge must be in [0, 1]")
	}
	if !(p.BalanceThreshold > chargeMidpoint) || p.BalanceThreshold >= MaxCharge {
		return errors.New("BalanceThreshold must be in (0.5, 1)")
	}
	return nil
}

// CapacitorStatus is a point-in-time read of the capacitor.
type CapacitorStatus struct {
	Charge     float64     `json:"charge"`
	Level      ChargeLevel `json:"level"`
	Multiplier float64     `json:"multiplier"`
}

// Capacitor stores accumulated activity as a charge in [0, MaxCharge] and
// turns it into a price multiplier.
type Capacitor struct {
	mu        sync.Mutex
	charge    float64
	threshold float64
}

func NewCapacitor(p CapacitorParams) (*Capacitor, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Capacitor{charge: p.InitialCharge, threshold: p.BalanceThreshold}, nil
}

func (c *Capacitor) Charge() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.charge
}

func (c *Capacitor) Level() ChargeLevel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.levelLocked()
}

func (c *Capacitor) levelLocked() ChargeLevel {
	switch {
	case c.charge > c.threshold:
		return ChargeHigh
	case c.charge < 1-c.threshold:
		return ChargeLow
	default:
		return ChargeBalanced
	}
}

// Multiplier is continuous inside each band and jumps at the band edges.
func (c *Capacitor) Multiplier() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.multiplierLocked()
}

func (c *Capacitor) multiplierLocked() float64 {
	switch c.levelLocked() {
	case ChargeHigh:
		return 1 + (c.charge-c.threshold)*multiplierSlope
	case ChargeLow:
		return 1 - ((1-c.threshold)-c.charge)*multiplierSlope
	default:
		return balancedMultiplier
	}
}

// AccumulateCharge adds activity*0.05; activity is clamped to [0, 1].
func (c *Capacitor) AccumulateCharge(activity float64) CapacitorStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.charge = math.Min(c.charge+clamp01(activity)*accumulateRate, MaxCharge)
	return c.statusLocked()
}

// DischargeOnPurchase removes size*0.1; size is clamped to [0, 1].
func (c *Capacitor) DischargeOnPurchase(size float64) CapacitorStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.charge = math.Max(c.charge-clamp01(size)*dischargeRate, 0)
	return c.statusLocked()
}

// AutoBalance relaxes the charge toward 0.5 by at most 0.02.
func (c *Capacitor) AutoBalance() CapacitorStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	gap := chargeMidpoint - c.charge
	c.charge += clamp(gap, -balanceStep, balanceStep)
	return c.statusLocked()
}

func (c *Capacitor) ApplyCapacitorPricing(basePrice float64) float64 {
	return basePrice * c.Multiplier()
}

func (c *Capacitor) Status() CapacitorStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked()
}

func (c *Capacitor) statusLocked() CapacitorStatus {
	return CapacitorStatus{
		Charge:     c.charge,
		Level:      c.levelLocked(),
		Multiplier: c.multiplierLocked(),
	}
}
