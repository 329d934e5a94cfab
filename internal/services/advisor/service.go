// Package advisor derives risk assessments from price snapshots
package advisor

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nexavest/nexavest/internal/common"
	"github.com/nexavest/nexavest/internal/interfaces"
	"github.com/nexavest/nexavest/internal/models"
)

// recommendationPhrases holds two candidate phrases per risk bucket. The pick
// is keyed on the symbol so repeated analyses of the same asset read the same.
var recommendationPhrases = map[models.RiskLabel][2]string{
	models.RiskLow: {
		"Price action has been steady; suited to a conservative allocation.",
		"Low recent volatility; a patient, long-horizon position fits best.",
	},
	models.RiskMedium: {
		"Moderate swings observed; size the position with some margin for drawdowns.",
		"Balanced risk profile; a medium-term holding with periodic review is reasonable.",
	},
	models.RiskHigh: {
		"Sharp intraday moves; only allocate what you can afford to see fluctuate.",
		"Elevated volatility; consider staggered entries and a short review cycle.",
	},
}

// holdingPeriods maps each risk bucket to its suggested horizon.
var holdingPeriods = map[models.RiskLabel]string{
	models.RiskHigh:   "Short-term (days to months)",
	models.RiskMedium: "6-12 months",
	models.RiskLow:    "12+ months",
}

// Service implements AdvisorService. Assessment is a pure computation over
// the snapshot and the configured threshold table; no network calls.
type Service struct {
	config common.RiskConfig
	logger *common.Logger
}

// NewService creates a new advisor service.
func NewService(config common.RiskConfig, logger *common.Logger) *Service {
	return &Service{
		config: config,
		logger: logger,
	}
}

// Assess computes the risk assessment for an asset at the given snapshot.
// amount is the investment in the snapshot's currency; zero is allowed and
// yields a zero estimated value.
func (s *Service) Assess(asset *models.ClassifiedAsset, snapshot *models.PriceSnapshot, amount float64) *models.RiskAssessment {
	volatility, expectedReturn := s.estimate(asset, snapshot)

	label := s.bucket(volatility)

	// The projection uses the unrounded return; only the displayed figures
	// are rounded.
	estimated := round2(amount * (1 + expectedReturn))
	gain := round2(estimated - amount)

	assessment := &models.RiskAssessment{
		Volatility:     round4(volatility),
		ExpectedReturn: round4(expectedReturn),
		Label:          label,
		HoldingPeriod:  holdingPeriods[label],
		EstimatedValue: estimated,
		GainLoss:       gain,
		Recommendation: recommend(asset.Symbol, label),
	}

	s.logger.Debug().
		Str("symbol", asset.Symbol).
		Float64("volatility", assessment.Volatility).
		Str("risk", string(label)).
		Msg("Risk assessment computed")

	return assessment
}

// estimate derives volatility and expected return from the snapshot when it
// carries an intraday range and a previous close, falling back to the fixed
// per-class constants otherwise.
func (s *Service) estimate(asset *models.ClassifiedAsset, snapshot *models.PriceSnapshot) (float64, float64) {
	if asset.Class == models.AssetStock && snapshot.HasRange() && snapshot.HasPreviousClose() {
		volatility := (snapshot.High - snapshot.Low) / snapshot.Current
		if volatility < 0 {
			volatility = -volatility
		}
		expectedReturn := (snapshot.Current - snapshot.PreviousClose) / snapshot.PreviousClose
		return volatility, expectedReturn
	}

	defaults := s.classDefaults(asset.Class)
	return defaults.Volatility, defaults.ExpectedReturn
}

func (s *Service) classDefaults(class models.AssetClass) common.ClassDefaults {
	switch class {
	case models.AssetCrypto:
		return s.config.Crypto
	case models.AssetForex:
		return s.config.Forex
	default:
		return s.config.Stock
	}
}

// bucket maps volatility onto the three-level threshold table.
func (s *Service) bucket(volatility float64) models.RiskLabel {
	switch {
	case volatility < s.config.LowMax:
		return models.RiskLow
	case volatility < s.config.MediumMax:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}

// recommend picks one of the bucket's two phrases, keyed on the symbol so the
// same asset always gets the same advice.
func recommend(symbol string, label models.RiskLabel) string {
	phrases := recommendationPhrases[label]

	h := fnv.New32a()
	fmt.Fprint(h, strings.ToUpper(symbol))

	return phrases[h.Sum32()%2]
}

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func round4(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(4).Float64()
	return f
}

// Ensure Service implements AdvisorService
var _ interfaces.AdvisorService = (*Service)(nil)
