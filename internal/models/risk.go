package models

// RiskLabel is the three-bucket classification derived by thresholding volatility.
type RiskLabel string

const (
	RiskLow    RiskLabel = "Low"
	RiskMedium RiskLabel = "Medium"
	RiskHigh   RiskLabel = "High"
)

// RiskAssessment is the derived risk/return estimate for one analyzed query.
// Purely computed from a PriceSnapshot (or per-class constants); never persisted.
type RiskAssessment struct {
	Volatility     float64   `json:"volatility"`
	ExpectedReturn float64   `json:"expected_return"`
	Label          RiskLabel `json:"risk"`
	HoldingPeriod  string    `json:"holding_period"`
	EstimatedValue float64   `json:"estimated_value"`
	GainLoss       float64   `json:"gain_loss"`
	Recommendation string    `json:"recommendation"`
}
