// Package classifier maps free-text queries to asset classes and provider symbols
package classifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/nexavest/nexavest/internal/common"
	"github.com/nexavest/nexavest/internal/interfaces"
	"github.com/nexavest/nexavest/internal/models"
)

// cryptoKeywords is the fixed set of identifiers that route a query to the
// crypto provider. The substring check runs before the stock search, so a
// company name containing one of these tokens (e.g. "Ethan Allen" contains
// "eth") is misclassified as crypto. Known heuristic weakness, kept as-is.
// Note the forex rule runs first, so a bare 6-letter name ("solana") parses
// as a currency pair and never reaches this list; "sol" still matches.
var cryptoKeywords = []string{
	"btc", "bitcoin",
	"eth", "ethereum",
	"bnb",
	"doge", "dogecoin",
	"sol", "solana",
	"ada",
	"matic",
	"ltc",
	"avax",
}

// Service implements ClassifierService. Only the stock name-search rule
// touches the network; forex, crypto and ticker-shaped inputs classify locally.
type Service struct {
	yahoo  interfaces.YahooClient
	logger *common.Logger
}

// NewService creates a new classifier service.
func NewService(yahoo interfaces.YahooClient, logger *common.Logger) *Service {
	return &Service{
		yahoo:  yahoo,
		logger: logger,
	}
}

// Classify applies the ordered rule set: forex pattern, crypto keyword,
// then stock (direct ticker or symbol search).
func (s *Service) Classify(ctx context.Context, query string) (*models.ClassifiedAsset, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty query: %w", models.ErrAssetNotFound)
	}

	// Rule 1: forex, either explicit "XXX/YYY" or a bare 6-letter pair.
	if asset, ok, err := classifyForex(query); ok {
		return asset, err
	}

	// Rule 2: crypto keyword.
	if isCryptoQuery(query) {
		return &models.ClassifiedAsset{
			Class:  models.AssetCrypto,
			Symbol: query,
		}, nil
	}

	// Rule 3: stock. Ticker-shaped inputs pass through unchanged; anything
	// else goes to the symbol search.
	if looksLikeTicker(query) {
		return &models.ClassifiedAsset{
			Class:  models.AssetStock,
			Symbol: strings.ToUpper(query),
		}, nil
	}

	return s.searchStock(ctx, query)
}

// classifyForex returns (asset, true, nil) for a valid pair, (nil, true, err)
// for a slash-separated input with invalid codes, and (nil, false, nil) when
// the input is not forex-shaped at all.
func classifyForex(query string) (*models.ClassifiedAsset, bool, error) {
	compact := strings.ReplaceAll(query, " ", "")

	var base, quote string
	switch {
	case strings.Contains(compact, "/"):
		parts := strings.SplitN(compact, "/", 2)
		base, quote = parts[0], parts[1]
	case len(compact) == 6 && isAlpha(compact):
		base, quote = compact[:3], compact[3:]
	default:
		return nil, false, nil
	}

	base = strings.ToUpper(base)
	quote = strings.ToUpper(quote)
	if len(base) != 3 || len(quote) != 3 || !isAlpha(base) || !isAlpha(quote) {
		return nil, true, fmt.Errorf("invalid currency pair %q: %w", query, models.ErrAssetNotFound)
	}

	return &models.ClassifiedAsset{
		Class:  models.AssetForex,
		Symbol: base + "/" + quote,
		Base:   base,
		Quote:  quote,
	}, true, nil
}

func isCryptoQuery(query string) bool {
	lower := strings.ToLower(query)
	for _, tok := range cryptoKeywords {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

// looksLikeTicker reports whether the input can be used directly as a stock
// symbol: a short alphanumeric code (AAPL, BHP) or anything carrying an
// exchange suffix (RELIANCE.NS, BHP.AX).
func looksLikeTicker(query string) bool {
	if strings.Contains(query, ".") {
		return !strings.ContainsAny(query, " /")
	}
	if len(query) > 6 {
		return false
	}
	for _, r := range query {
		if !isAlnum(r) {
			return false
		}
	}
	return true
}

// searchStock resolves a company name to a ticker via the symbol search,
// preferring equity/ETF-typed listings over whatever else matches.
func (s *Service) searchStock(ctx context.Context, query string) (*models.ClassifiedAsset, error) {
	matches, err := s.yahoo.SearchSymbols(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("symbol search for %q: %w", query, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no listing matching %q: %w", query, models.ErrAssetNotFound)
	}

	best := matches[0]
	for _, m := range matches {
		qt := strings.ToUpper(m.QuoteType)
		if qt == "EQUITY" || qt == "ETF" {
			best = m
			break
		}
	}

	s.logger.Debug().
		Str("query", query).
		Str("symbol", best.Symbol).
		Str("exchange", best.Exchange).
		Msg("Resolved company name to ticker")

	return &models.ClassifiedAsset{
		Class:    models.AssetStock,
		Symbol:   best.Symbol,
		Name:     best.Name,
		Exchange: best.Exchange,
	}, nil
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return len(s) > 0
}

func isAlnum(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

// Ensure Service implements ClassifierService
var _ interfaces.ClassifierService = (*Service)(nil)
