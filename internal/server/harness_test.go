package server

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/nexavest/nexavest/internal/app"
	"github.com/nexavest/nexavest/internal/common"
	"github.com/nexavest/nexavest/internal/models"
)

// --- Stub services ---

type stubClassifier struct {
	asset   *models.ClassifiedAsset
	err     error
	queries []string
}

func (s *stubClassifier) Classify(_ context.Context, query string) (*models.ClassifiedAsset, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	// Copy so handlers mutating the asset don't leak between tests.
	asset := *s.asset
	return &asset, nil
}

type stubPricing struct {
	snapshot   *models.PriceSnapshot
	err        error
	converted  float64
	convRate   float64
	convErr    error
	fetchCalls int
	convCalls  int
}

func (s *stubPricing) Fetch(_ context.Context, _ *models.ClassifiedAsset) (*models.PriceSnapshot, error) {
	s.fetchCalls++
	return s.snapshot, s.err
}

func (s *stubPricing) ConvertAmount(_ context.Context, amount float64, from, to string) (float64, float64, error) {
	s.convCalls++
	if s.convErr != nil {
		return 0, 0, s.convErr
	}
	return s.converted, s.convRate, nil
}

type stubAdvisor struct {
	assessment *models.RiskAssessment
	amounts    []float64
}

func (s *stubAdvisor) Assess(_ *models.ClassifiedAsset, _ *models.PriceSnapshot, amount float64) *models.RiskAssessment {
	s.amounts = append(s.amounts, amount)
	return s.assessment
}

// newTestServer builds a Server around stub services. Any stub may be nil
// when the test never reaches it.
func newTestServer(classifier *stubClassifier, pricing *stubPricing, advisor *stubAdvisor) *Server {
	a := &app.App{
		Config:      common.NewDefaultConfig(),
		Logger:      common.NewSilentLogger(),
		StartupTime: time.Now(),
	}
	if classifier != nil {
		a.ClassifierService = classifier
	}
	if pricing != nil {
		a.PricingService = pricing
	}
	if advisor != nil {
		a.AdvisorService = advisor
	}
	return NewServer(a)
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	return bytes.NewReader(data)
}

func aaplAsset() *models.ClassifiedAsset {
	return &models.ClassifiedAsset{
		Class:    models.AssetStock,
		Symbol:   "AAPL",
		Name:     "Apple Inc.",
		Exchange: "NMS",
	}
}

func aaplSnapshot() *models.PriceSnapshot {
	return &models.PriceSnapshot{
		Current:       150.0,
		Currency:      "USD",
		High:          152.0,
		Low:           149.0,
		PreviousClose: 149.0,
		Source:        "finnhub",
		AsOf:          time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
	}
}

func mediumAssessment() *models.RiskAssessment {
	return &models.RiskAssessment{
		Volatility:     0.02,
		ExpectedReturn: 0.0067,
		Label:          models.RiskMedium,
		HoldingPeriod:  "6-12 months",
		EstimatedValue: 1006.71,
		GainLoss:       6.71,
		Recommendation: "Balanced risk profile; a medium-term holding with periodic review is reasonable.",
	}
}
