package advisor

import (
	"math"
	"testing"

	"github.com/nexavest/nexavest/internal/common"
	"github.com/nexavest/nexavest/internal/models"
)

func newTestService() *Service {
	return NewService(common.NewDefaultConfig().Risk, common.NewSilentLogger())
}

func stockSnapshot(current, high, low, prevClose float64) *models.PriceSnapshot {
	return &models.PriceSnapshot{
		Current:       current,
		Currency:      "USD",
		High:          high,
		Low:           low,
		PreviousClose: prevClose,
		Source:        "finnhub",
	}
}

func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: expected %v, got %v", name, want, got)
	}
}

func TestAssess_StockWithRange(t *testing.T) {
	svc := newTestService()
	asset := &models.ClassifiedAsset{Class: models.AssetStock, Symbol: "AAPL"}
	// vol = (152-148)/150 = 0.0267, ret = (150-149)/149 = 0.0067
	snapshot := stockSnapshot(150.0, 152.0, 148.0, 149.0)

	assessment := svc.Assess(asset, snapshot, 1000)

	approx(t, "volatility", assessment.Volatility, 0.0267, 1e-4)
	approx(t, "expected_return", assessment.ExpectedReturn, 0.0067, 1e-4)
	if assessment.Label != models.RiskMedium {
		t.Errorf("Expected Medium at vol 0.0267, got %s", assessment.Label)
	}
	if assessment.HoldingPeriod != "6-12 months" {
		t.Errorf("Expected 6-12 months, got %s", assessment.HoldingPeriod)
	}
	// Projection uses the unrounded return: 1000 * (1 + 1/149) = 1006.71
	approx(t, "estimated_value", assessment.EstimatedValue, 1006.71, 0.001)
	approx(t, "gain_loss", assessment.GainLoss, 6.71, 0.001)
}

func TestAssess_LowRiskBucket(t *testing.T) {
	svc := newTestService()
	asset := &models.ClassifiedAsset{Class: models.AssetStock, Symbol: "KO"}
	// vol = (100.5-99.5)/100 = 0.01
	snapshot := stockSnapshot(100.0, 100.5, 99.5, 99.0)

	assessment := svc.Assess(asset, snapshot, 500)

	if assessment.Label != models.RiskLow {
		t.Errorf("Expected Low at vol 0.01, got %s", assessment.Label)
	}
	if assessment.HoldingPeriod != "12+ months" {
		t.Errorf("Expected 12+ months, got %s", assessment.HoldingPeriod)
	}
}

func TestAssess_HighRiskBucket(t *testing.T) {
	svc := newTestService()
	asset := &models.ClassifiedAsset{Class: models.AssetStock, Symbol: "MEME"}
	// vol = (110-98)/100 = 0.12
	snapshot := stockSnapshot(100.0, 110.0, 98.0, 95.0)

	assessment := svc.Assess(asset, snapshot, 500)

	if assessment.Label != models.RiskHigh {
		t.Errorf("Expected High at vol 0.12, got %s", assessment.Label)
	}
	if assessment.HoldingPeriod != "Short-term (days to months)" {
		t.Errorf("Expected short-term horizon, got %s", assessment.HoldingPeriod)
	}
}

func TestAssess_CryptoUsesClassDefaults(t *testing.T) {
	svc := newTestService()
	asset := &models.ClassifiedAsset{Class: models.AssetCrypto, Symbol: "BTC"}
	// No range data from the spot-price provider.
	snapshot := &models.PriceSnapshot{Current: 64250.12, Currency: "USD", Source: "coingecko"}

	assessment := svc.Assess(asset, snapshot, 500)

	approx(t, "volatility", assessment.Volatility, 0.08, 1e-9)
	approx(t, "expected_return", assessment.ExpectedReturn, 0.08, 1e-9)
	if assessment.Label != models.RiskHigh {
		t.Errorf("Crypto defaults must land in High, got %s", assessment.Label)
	}
	approx(t, "estimated_value", assessment.EstimatedValue, 540.0, 0.001)
	approx(t, "gain_loss", assessment.GainLoss, 40.0, 0.001)
}

func TestAssess_ForexUsesClassDefaults(t *testing.T) {
	svc := newTestService()
	asset := &models.ClassifiedAsset{Class: models.AssetForex, Symbol: "USD/INR", Base: "USD", Quote: "INR"}
	snapshot := &models.PriceSnapshot{Current: 83.25, Currency: "INR", Source: "exchangerate"}

	assessment := svc.Assess(asset, snapshot, 100)

	approx(t, "volatility", assessment.Volatility, 0.03, 1e-9)
	if assessment.Label != models.RiskMedium {
		t.Errorf("Forex defaults must land in Medium, got %s", assessment.Label)
	}
	approx(t, "estimated_value", assessment.EstimatedValue, 102.0, 0.001)
}

func TestAssess_StockWithoutRangeFallsBackToDefaults(t *testing.T) {
	svc := newTestService()
	asset := &models.ClassifiedAsset{Class: models.AssetStock, Symbol: "AAPL"}
	snapshot := &models.PriceSnapshot{Current: 150.0, Currency: "USD", Source: "yahoo"}

	assessment := svc.Assess(asset, snapshot, 1000)

	approx(t, "volatility", assessment.Volatility, 0.03, 1e-9)
	approx(t, "expected_return", assessment.ExpectedReturn, 0.05, 1e-9)
}

func TestAssess_ZeroAmount(t *testing.T) {
	svc := newTestService()
	asset := &models.ClassifiedAsset{Class: models.AssetCrypto, Symbol: "BTC"}
	snapshot := &models.PriceSnapshot{Current: 64250.12, Currency: "USD"}

	assessment := svc.Assess(asset, snapshot, 0)

	if assessment.EstimatedValue != 0 || assessment.GainLoss != 0 {
		t.Errorf("Zero amount must project zero, got %f / %f", assessment.EstimatedValue, assessment.GainLoss)
	}
}

func TestAssess_RecommendationDeterministic(t *testing.T) {
	svc := newTestService()
	asset := &models.ClassifiedAsset{Class: models.AssetCrypto, Symbol: "BTC"}
	snapshot := &models.PriceSnapshot{Current: 64250.12, Currency: "USD"}

	first := svc.Assess(asset, snapshot, 100).Recommendation
	for i := 0; i < 5; i++ {
		if got := svc.Assess(asset, snapshot, 100).Recommendation; got != first {
			t.Fatalf("Recommendation must be stable for a symbol, got %q then %q", first, got)
		}
	}

	phrases := recommendationPhrases[models.RiskHigh]
	if first != phrases[0] && first != phrases[1] {
		t.Errorf("Recommendation %q is not one of the High-bucket phrases", first)
	}
}

func TestAssess_RecommendationCaseInsensitive(t *testing.T) {
	svc := newTestService()
	snapshot := &models.PriceSnapshot{Current: 64250.12, Currency: "USD"}

	lower := svc.Assess(&models.ClassifiedAsset{Class: models.AssetCrypto, Symbol: "btc"}, snapshot, 100)
	upper := svc.Assess(&models.ClassifiedAsset{Class: models.AssetCrypto, Symbol: "BTC"}, snapshot, 100)

	if lower.Recommendation != upper.Recommendation {
		t.Errorf("Symbol casing must not change the recommendation")
	}
}

func TestBucket_Monotonic(t *testing.T) {
	svc := newTestService()

	order := map[models.RiskLabel]int{models.RiskLow: 0, models.RiskMedium: 1, models.RiskHigh: 2}
	prev := -1
	for _, vol := range []float64{0.0, 0.01, 0.019, 0.02, 0.03, 0.049, 0.05, 0.2} {
		label := svc.bucket(vol)
		if order[label] < prev {
			t.Fatalf("Risk label regressed at vol %v: %s", vol, label)
		}
		prev = order[label]
	}

	// Boundary checks: thresholds are exclusive upper bounds.
	if svc.bucket(0.02) != models.RiskMedium {
		t.Errorf("vol 0.02 must be Medium")
	}
	if svc.bucket(0.05) != models.RiskHigh {
		t.Errorf("vol 0.05 must be High")
	}
}
