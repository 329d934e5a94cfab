// Package pricing fetches live price snapshots with per-class provider fallback
package pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nexavest/nexavest/internal/common"
	"github.com/nexavest/nexavest/internal/interfaces"
	"github.com/nexavest/nexavest/internal/models"
)

// Service implements PricingService.
//
// Stock chain: Finnhub quote first, Yahoo daily history second, then one
// optional retry of the whole chain with the configured region suffix.
// Crypto and forex have a single provider each; their failures surface
// directly instead of cascading.
type Service struct {
	finnhub      interfaces.FinnhubClient // may be nil when no API key is configured
	yahoo        interfaces.YahooClient
	coingecko    interfaces.CoinGeckoClient
	forex        interfaces.ForexClient
	regionSuffix string
	logger       *common.Logger
	now          func() time.Time // injectable clock for testing
}

// NewService creates a new pricing service. finnhub may be nil, in which case
// the stock chain starts at the Yahoo history fallback.
func NewService(finnhub interfaces.FinnhubClient, yahoo interfaces.YahooClient, coingecko interfaces.CoinGeckoClient, forex interfaces.ForexClient, regionSuffix string, logger *common.Logger) *Service {
	return &Service{
		finnhub:      finnhub,
		yahoo:        yahoo,
		coingecko:    coingecko,
		forex:        forex,
		regionSuffix: regionSuffix,
		logger:       logger,
		now:          time.Now,
	}
}

// Fetch retrieves the current price for a classified asset, enriching the
// asset in place when a provider resolves a better identifier.
func (s *Service) Fetch(ctx context.Context, asset *models.ClassifiedAsset) (*models.PriceSnapshot, error) {
	switch asset.Class {
	case models.AssetStock:
		return s.fetchStock(ctx, asset)
	case models.AssetCrypto:
		return s.fetchCrypto(ctx, asset)
	case models.AssetForex:
		return s.fetchForex(ctx, asset)
	default:
		return nil, fmt.Errorf("unclassified asset %q: %w", asset.Symbol, models.ErrAssetNotFound)
	}
}

// fetchStock runs the primary/fallback chain, then retries once with the
// region suffix appended when the bare symbol yields nothing anywhere.
func (s *Service) fetchStock(ctx context.Context, asset *models.ClassifiedAsset) (*models.PriceSnapshot, error) {
	snapshot, err := s.fetchStockChain(ctx, asset.Symbol)
	if err == nil {
		return snapshot, nil
	}

	if s.regionSuffix != "" && !strings.Contains(asset.Symbol, ".") {
		suffixed := asset.Symbol + s.regionSuffix
		s.logger.Info().
			Str("symbol", asset.Symbol).
			Str("retry", suffixed).
			Msg("Bare symbol exhausted all providers, retrying with region suffix")

		snapshot, retryErr := s.fetchStockChain(ctx, suffixed)
		if retryErr == nil {
			asset.Symbol = suffixed
			return snapshot, nil
		}
	}

	return nil, err
}

// fetchStockChain tries the Finnhub quote, then the Yahoo daily history at
// most once. Primary failures are swallowed; only chain exhaustion surfaces,
// as ErrNoData.
func (s *Service) fetchStockChain(ctx context.Context, symbol string) (*models.PriceSnapshot, error) {
	if s.finnhub != nil {
		quote, err := s.finnhub.GetQuote(ctx, symbol)
		if err == nil && quote.Current > 0 {
			return &models.PriceSnapshot{
				Current:       quote.Current,
				Currency:      firstNonEmpty(quote.Currency, "USD"),
				High:          quote.High,
				Low:           quote.Low,
				PreviousClose: quote.PreviousClose,
				Source:        "finnhub",
				AsOf:          s.now().UTC(),
			}, nil
		}
		if err != nil {
			s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Primary quote provider failed, trying history fallback")
		} else {
			s.logger.Warn().Str("symbol", symbol).Msg("Primary quote provider returned zero price, trying history fallback")
		}
	}

	bars, err := s.yahoo.GetDailyHistory(ctx, symbol, "5d")
	if err != nil || len(bars) == 0 {
		if err != nil {
			s.logger.Warn().Err(err).Str("symbol", symbol).Msg("History fallback failed")
		}
		return nil, fmt.Errorf("no data for symbol %q: %w", symbol, models.ErrNoData)
	}

	latest := bars[len(bars)-1]
	snapshot := &models.PriceSnapshot{
		Current:  latest.Close,
		Currency: "USD",
		High:     latest.High,
		Low:      latest.Low,
		Source:   "yahoo",
		AsOf:     s.now().UTC(),
	}
	if len(bars) >= 2 {
		snapshot.PreviousClose = bars[len(bars)-2].Close
	}

	return snapshot, nil
}

func (s *Service) fetchCrypto(ctx context.Context, asset *models.ClassifiedAsset) (*models.PriceSnapshot, error) {
	coin, err := s.coingecko.SearchCoin(ctx, asset.Symbol)
	if err != nil {
		return nil, upstreamUnlessNotFound(err)
	}

	price, err := s.coingecko.GetSimplePrice(ctx, coin.ID, "usd")
	if err != nil {
		return nil, upstreamUnlessNotFound(err)
	}

	// The search result carries the canonical identity.
	asset.Symbol = coin.Symbol
	asset.Name = coin.Name

	return &models.PriceSnapshot{
		Current:  price,
		Currency: "USD",
		Source:   "coingecko",
		AsOf:     s.now().UTC(),
	}, nil
}

func (s *Service) fetchForex(ctx context.Context, asset *models.ClassifiedAsset) (*models.PriceSnapshot, error) {
	rate, err := s.forex.GetLatestRate(ctx, asset.Base, asset.Quote)
	if err != nil {
		return nil, upstreamUnlessNotFound(err)
	}

	return &models.PriceSnapshot{
		Current:  rate,
		Currency: asset.Quote,
		Source:   "exchangerate",
		AsOf:     s.now().UTC(),
	}, nil
}

// ConvertAmount converts an investment amount between currencies.
func (s *Service) ConvertAmount(ctx context.Context, amount float64, from, to string) (float64, float64, error) {
	if strings.EqualFold(from, to) {
		return amount, 1.0, nil
	}
	converted, rate, err := s.forex.Convert(ctx, from, to, amount)
	if err != nil {
		return 0, 0, upstreamUnlessNotFound(err)
	}
	return converted, rate, nil
}

// upstreamUnlessNotFound keeps not-found/no-data sentinels intact and wraps
// everything else (network, non-200, malformed payload) as an upstream failure.
func upstreamUnlessNotFound(err error) error {
	if errors.Is(err, models.ErrAssetNotFound) || errors.Is(err, models.ErrNoData) {
		return err
	}
	return fmt.Errorf("%w: %v", models.ErrUpstream, err)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Ensure Service implements PricingService
var _ interfaces.PricingService = (*Service)(nil)
