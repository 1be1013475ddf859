package models

import (
	"alc-pricing/internal/model"
	"alc-pricing/internal/pricing"
)

// AdjustMarketRequest represents the body of POST /api/v1/market/adjust
type AdjustMarketRequest struct {
	SupplyDemandRatio *float64 `json:"supply_demand_ratio" binding:"required"`
}

// ArtPriceRequest represents the body of POST /api/v1/formula/art.
// Complexity is low, medium or high; demand is low, normal or high.
type ArtPriceRequest struct {
	Complexity     string  `json:"complexity"`
	TimeSpentHours float64 `json:"time_spent_hours"`
	Demand         string  `json:"demand"`
}

// TokenValueRequest represents the body of POST /api/v1/formula/token
type TokenValueRequest struct {
	TokenType string `json:"token_type"` // standard, premium, limited
	Utility   string `json:"utility"`    // low, medium, high
	Scarcity  int    `json:"scarcity"`
}

// FeatureCostRequest represents the body of POST /api/v1/formula/feature
type FeatureCostRequest struct {
	Tier     string   `json:"tier"`
	Features []string `json:"features"`
	Support  string   `json:"support"`
}

type TransactionFeeRequest struct {
	Amount float64 `json:"amount"`
}

type RealTimeRequest struct {
	Supply         float64 `json:"supply"`
	Demand         float64 `json:"demand"`
	RecentActivity float64 `json:"recent_activity"`
}

type FairPriceRequest struct {
	Price         float64 `json:"price"`
	MarketAverage float64 `json:"market_average"`
}

type ValidatePriceRequest struct {
	Price *float64 `json:"price" binding:"required"`
}

// MarketPriceRequest is shared by /fairness/ensure and /fairness/apply
type MarketPriceRequest struct {
	Price  *float64            `json:"price" binding:"required"`
	Market model.MarketContext `json:"market"`
}

type DetectManipulationRequest struct {
	Prices []float64 `json:"prices" binding:"required"`
}

type AccumulateRequest struct {
	Activity float64 `json:"activity_level"`
}

type DischargeRequest struct {
	PurchaseSize float64 `json:"purchase_size"`
}

type CapacitorPriceRequest struct {
	BasePrice float64 `json:"base_price"`
}

// ReplayRequest represents the body of POST /api/v1/replay
type ReplayRequest struct {
	Ticks         []pricing.Tick `json:"ticks" binding:"required"`
	IncludeLedger bool           `json:"include_ledger,omitempty"` // default: false
}

// BroadcastRequest represents the body of POST /api/v1/sync/broadcast
type BroadcastRequest struct {
	Site  string  `json:"site" binding:"required"`
	Price float64 `json:"price"`
}
