// Package models defines the core data types for NexaVest
package models

// AssetClass identifies which provider and risk formula apply to a query.
type AssetClass string

const (
	AssetStock   AssetClass = "stock"
	AssetCrypto  AssetClass = "crypto"
	AssetForex   AssetClass = "forex"
	AssetUnknown AssetClass = "unknown"
)

// ClassifiedAsset is the result of asset-class detection for a single query.
// It is derived once per request and never persisted.
type ClassifiedAsset struct {
	Class    AssetClass `json:"class"`
	Symbol   string     `json:"symbol"`             // provider-specific identifier
	Name     string     `json:"name,omitempty"`     // display name when known
	Exchange string     `json:"exchange,omitempty"` // stock listings only
	Base     string     `json:"base,omitempty"`     // forex only
	Quote    string     `json:"quote,omitempty"`    // forex only
}

// DisplayName returns the best human-readable identifier for the asset.
func (a *ClassifiedAsset) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	if a.Class == AssetForex {
		return a.Pair()
	}
	return a.Symbol
}

// Pair returns the canonical "BASE/QUOTE" form for forex assets.
func (a *ClassifiedAsset) Pair() string {
	if a.Class != AssetForex {
		return ""
	}
	return a.Base + "/" + a.Quote
}
