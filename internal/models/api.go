package models

import (
	"strings"
	"time"
)

// AnalyzeRequest is the body of POST /analyze. The asset identifier is
// accepted under any of "query", "asset" or "symbol" since the clients in the
// wild never agreed on one field name.
type AnalyzeRequest struct {
	Query          string  `json:"query,omitempty"`
	Asset          string  `json:"asset,omitempty"`
	Symbol         string  `json:"symbol,omitempty"`
	Amount         float64 `json:"amount"`
	AmountCurrency string  `json:"amount_currency,omitempty"`
}

// AssetQuery returns the first non-empty asset identifier field, trimmed.
func (r *AnalyzeRequest) AssetQuery() string {
	for _, v := range []string{r.Query, r.Asset, r.Symbol} {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// AnalyzeResponse is the body of a successful POST /analyze.
type AnalyzeResponse struct {
	Asset          string     `json:"asset"`
	Symbol         string     `json:"symbol"`
	Type           AssetClass `json:"type"`
	Exchange       string     `json:"exchange,omitempty"`
	Currency       string     `json:"currency"`
	CurrentPrice   float64    `json:"current_price"`
	Volatility     float64    `json:"volatility"`
	ExpectedReturn float64    `json:"expected_return"`
	Risk           RiskLabel  `json:"risk"`
	HoldingPeriod  string     `json:"holding_period"`
	EstimatedValue float64    `json:"estimated_value"`
	GainLoss       float64    `json:"gain_loss"`
	Recommendation string     `json:"recommendation"`
	Summary        string     `json:"summary"`
	Disclaimer     string     `json:"disclaimer"`
	AsOf           time.Time  `json:"as_of"`

	// Present only when amount_currency was supplied and differs from the
	// asset currency.
	AmountInAssetCurrency float64 `json:"amount_in_asset_currency,omitempty"`
	ConversionRate        float64 `json:"conversion_rate,omitempty"`
	ConversionError       string  `json:"conversion_error,omitempty"`
}

// Disclaimer is the fixed informational text served by GET /disclaimer and
// attached to every analysis response.
const Disclaimer = "This tool provides informational analysis only. It is not financial advice."
