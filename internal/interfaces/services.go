package interfaces

import (
	"context"

	"github.com/nexavest/nexavest/internal/models"
)

// ClassifierService maps a free-text query to an asset class and a
// provider-specific identifier.
type ClassifierService interface {
	// Classify applies the ordered rule set: forex pattern, crypto keyword,
	// then stock (direct ticker or symbol search). Returns a
	// models.ErrAssetNotFound-wrapped error when no rule matches.
	Classify(ctx context.Context, query string) (*models.ClassifiedAsset, error)
}

// PricingService fetches a live price snapshot for a classified asset.
type PricingService interface {
	// Fetch retrieves the current price for the asset, following the
	// per-class provider fallback chain. It may enrich the asset in place
	// with the resolved symbol/name (crypto search, region-suffix retry).
	Fetch(ctx context.Context, asset *models.ClassifiedAsset) (*models.PriceSnapshot, error)

	// ConvertAmount converts an investment amount between currencies,
	// returning the converted amount and the rate used.
	ConvertAmount(ctx context.Context, amount float64, from, to string) (float64, float64, error)
}

// AdvisorService derives a risk assessment from a price snapshot.
type AdvisorService interface {
	// Assess computes volatility, expected return, the risk bucket, the
	// projected value of the investment and a recommendation string. It is
	// a pure function of its inputs and the configured threshold table.
	Assess(asset *models.ClassifiedAsset, snapshot *models.PriceSnapshot, amount float64) *models.RiskAssessment
}
