// Package interfaces defines client and service contracts for NexaVest
package interfaces

import (
	"context"

	"github.com/nexavest/nexavest/internal/models"
)

// YahooClient provides symbol search and daily price history.
type YahooClient interface {
	// SearchSymbols searches for listings matching a free-text query.
	// An empty slice means no match; it is not an error.
	SearchSymbols(ctx context.Context, query string) ([]models.SymbolMatch, error)

	// GetDailyHistory retrieves recent daily OHLC bars for a symbol,
	// oldest first. rng is a Yahoo range token such as "5d" or "3mo".
	GetDailyHistory(ctx context.Context, symbol string, rng string) ([]models.DailyBar, error)
}

// FinnhubClient provides live equity quotes.
type FinnhubClient interface {
	// GetQuote retrieves the live quote for a symbol. A quote with a zero
	// current price means the provider does not know the symbol.
	GetQuote(ctx context.Context, symbol string) (*models.StockQuote, error)
}

// CoinGeckoClient provides crypto metadata search and spot prices.
type CoinGeckoClient interface {
	// SearchCoin returns the best coin match for a free-text query, or a
	// models.ErrAssetNotFound-wrapped error when nothing matches.
	SearchCoin(ctx context.Context, query string) (*models.CoinMatch, error)

	// GetSimplePrice retrieves the spot price of a coin (by provider id)
	// in the given quote currency (e.g. "usd").
	GetSimplePrice(ctx context.Context, coinID string, vsCurrency string) (float64, error)
}

// ForexClient provides foreign-exchange rates and conversion.
type ForexClient interface {
	// GetLatestRate retrieves the latest base→quote exchange rate.
	GetLatestRate(ctx context.Context, base, quote string) (float64, error)

	// Convert converts amount from one currency to another, returning the
	// converted amount and the rate used.
	Convert(ctx context.Context, from, to string, amount float64) (converted float64, rate float64, err error)
}
