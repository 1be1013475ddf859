package models

import (
	"alc-pricing/internal/analysis"
	"alc-pricing/internal/model"
	"alc-pricing/internal/pricing"
)

// Error codes returned in ErrorDetail.Code
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeUnknownActivity = "UNKNOWN_ACTIVITY"
	CodeUnknownItem     = "UNKNOWN_ITEM"
	CodeInvalidRatio    = "INVALID_RATIO"
	CodeQuoteError      = "QUOTE_ERROR"
	CodeSyncError       = "SYNC_ERROR"
	CodeNotFound        = "NOT_FOUND"
)

// RateTablesResponse lists the configured earn and spend tables
type RateTablesResponse struct {
	EarnRates  []model.Rate `json:"earn_rates"`
	SpendCosts []model.Rate `json:"spend_costs"`
}

// AmountResponse wraps a single computed ALC amount
type AmountResponse struct {
	Price float64 `json:"price"`
}

// HistoryResponse represents the response from GET /api/v1/fairness/history
type HistoryResponse struct {
	History       []float64             `json:"history"`
	Summary       analysis.PriceSummary `json:"summary"`
	FairnessScore float64               `json:"fairness_score"`
}

type CapacitorPriceResponse struct {
	BasePrice     float64               `json:"base_price"`
	AdjustedPrice float64               `json:"adjusted_price"`
	Status        model.CapacitorStatus `json:"status"`
}

// ReplayResponse represents the response from a replay run
type ReplayResponse struct {
	Summary ReplaySummary       `json:"summary"`
	Ledger  []pricing.LedgerRow `json:"ledger,omitempty"`
}

// ReplaySummary contains aggregated replay results
type ReplaySummary struct {
	Ticks            int                   `json:"ticks"`
	FinalMarketValue float64               `json:"final_market_value"`
	FinalCharge      float64               `json:"final_charge"`
	MeanFairness     float64               `json:"mean_fairness"`
	Prices           analysis.PriceSummary `json:"prices"`
}

// SiteResponse represents the last price a site received
type SiteResponse struct {
	Site  string  `json:"site"`
	Price float64 `json:"price"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
