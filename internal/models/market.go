package models

import "time"

// PriceSnapshot holds the live price data fetched for an asset. Snapshots are
// fetched fresh on every request; there is no caching or staleness policy.
type PriceSnapshot struct {
	Current       float64   `json:"current"`
	Currency      string    `json:"currency"`
	High          float64   `json:"high,omitempty"`
	Low           float64   `json:"low,omitempty"`
	PreviousClose float64   `json:"previous_close,omitempty"`
	Source        string    `json:"source"`
	AsOf          time.Time `json:"as_of"`
}

// HasRange reports whether the snapshot carries enough intraday data to
// compute a volatility estimate.
func (s *PriceSnapshot) HasRange() bool {
	return s.Current > 0 && s.High > 0 && s.Low > 0
}

// HasPreviousClose reports whether an expected return can be computed.
func (s *PriceSnapshot) HasPreviousClose() bool {
	return s.PreviousClose > 0
}

// StockQuote is a live equity quote from a quote provider.
type StockQuote struct {
	Current       float64   `json:"current"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	PreviousClose float64   `json:"previous_close"`
	Currency      string    `json:"currency,omitempty"`
	Timestamp     time.Time `json:"timestamp,omitempty"`
}

// DailyBar is one day of OHLC history from a historical-data provider.
type DailyBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// SymbolMatch is a single result from a symbol-search provider.
type SymbolMatch struct {
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	Exchange  string `json:"exchange"`
	QuoteType string `json:"quote_type"` // EQUITY, ETF, CRYPTOCURRENCY, ...
}

// CoinMatch is a single result from a crypto metadata search.
type CoinMatch struct {
	ID     string `json:"id"` // provider's internal coin identifier
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}
