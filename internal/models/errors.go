package models

import "errors"

// Sentinel errors shared across the classify/fetch/assess pipeline. Handlers
// map these onto HTTP status codes with errors.Is.
var (
	// ErrAssetNotFound means no provider could identify the queried asset.
	ErrAssetNotFound = errors.New("asset not identified")

	// ErrNoData means the asset was identified but every price source in the
	// fallback chain came back empty.
	ErrNoData = errors.New("no price data available")

	// ErrUpstream means a provider failed in a way that is not the caller's
	// fault: network error, timeout, non-200 status or malformed payload.
	ErrUpstream = errors.New("upstream provider failure")
)
