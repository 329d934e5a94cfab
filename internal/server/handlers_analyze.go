package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/nexavest/nexavest/internal/models"
)

// handleAnalyze handles POST /analyze: classify the query, fetch a live
// price, derive a risk assessment and project the investment amount.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.AnalyzeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	// All input validation happens before any provider is contacted.
	query := req.AssetQuery()
	if query == "" {
		WriteError(w, http.StatusBadRequest, "An asset identifier is required (query, asset or symbol)")
		return
	}
	if req.Amount <= 0 {
		WriteError(w, http.StatusBadRequest, "Amount must be a positive number")
		return
	}

	ctx := r.Context()

	asset, err := s.app.ClassifierService.Classify(ctx, query)
	if err != nil {
		s.writeAnalyzeError(w, query, err)
		return
	}

	snapshot, err := s.app.PricingService.Fetch(ctx, asset)
	if err != nil {
		s.writeAnalyzeError(w, query, err)
		return
	}

	// Convert the investment amount into the asset currency when the caller
	// priced it in something else. Conversion failure is non-fatal.
	amount := req.Amount
	var conversionRate float64
	var conversionError string
	converted := false
	if req.AmountCurrency != "" && !strings.EqualFold(req.AmountCurrency, snapshot.Currency) {
		convertedAmount, rate, convErr := s.app.PricingService.ConvertAmount(ctx, req.Amount, req.AmountCurrency, snapshot.Currency)
		if convErr != nil {
			conversionError = fmt.Sprintf("could not convert %s to %s, amount treated as %s",
				strings.ToUpper(req.AmountCurrency), snapshot.Currency, snapshot.Currency)
			s.logger.Warn().Err(convErr).
				Str("from", req.AmountCurrency).
				Str("to", snapshot.Currency).
				Msg("Amount conversion failed")
		} else {
			amount = convertedAmount
			conversionRate = rate
			converted = true
		}
	}

	assessment := s.app.AdvisorService.Assess(asset, snapshot, amount)

	resp := &models.AnalyzeResponse{
		Asset:          asset.DisplayName(),
		Symbol:         asset.Symbol,
		Type:           asset.Class,
		Exchange:       asset.Exchange,
		Currency:       snapshot.Currency,
		CurrentPrice:   snapshot.Current,
		Volatility:     assessment.Volatility,
		ExpectedReturn: assessment.ExpectedReturn,
		Risk:           assessment.Label,
		HoldingPeriod:  assessment.HoldingPeriod,
		EstimatedValue: assessment.EstimatedValue,
		GainLoss:       assessment.GainLoss,
		Recommendation: assessment.Recommendation,
		Summary:        buildSummary(asset, snapshot, assessment),
		Disclaimer:     models.Disclaimer,
		AsOf:           snapshot.AsOf,
	}
	if converted {
		resp.AmountInAssetCurrency = amount
		resp.ConversionRate = conversionRate
	}
	resp.ConversionError = conversionError

	WriteJSON(w, http.StatusOK, resp)
}

// writeAnalyzeError maps pipeline errors onto HTTP statuses: unknown assets
// and missing data read as 404, provider failures as 502.
func (s *Server) writeAnalyzeError(w http.ResponseWriter, query string, err error) {
	switch {
	case errors.Is(err, models.ErrAssetNotFound):
		WriteError(w, http.StatusNotFound, fmt.Sprintf("No asset found matching %q", query))
	case errors.Is(err, models.ErrNoData):
		WriteError(w, http.StatusNotFound, fmt.Sprintf("No price data available for %q", query))
	case errors.Is(err, models.ErrUpstream):
		s.logger.Error().Err(err).Str("query", query).Msg("Upstream provider failure")
		WriteError(w, http.StatusBadGateway, "Upstream data provider is unavailable")
	default:
		s.logger.Error().Err(err).Str("query", query).Msg("Analysis failed")
		WriteError(w, http.StatusBadGateway, "Upstream data provider is unavailable")
	}
}

// buildSummary renders the one-line human summary attached to each analysis.
func buildSummary(asset *models.ClassifiedAsset, snapshot *models.PriceSnapshot, assessment *models.RiskAssessment) string {
	return fmt.Sprintf("%s is trading at %.2f %s. Risk is %s with an expected short-term return of %.2f%%. Suggested holding period: %s.",
		asset.DisplayName(),
		snapshot.Current,
		snapshot.Currency,
		assessment.Label,
		assessment.ExpectedReturn*100,
		assessment.HoldingPeriod,
	)
}
