// Package exchangerate provides a client for the exchangerate.host API
package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/nexavest/nexavest/internal/common"
	"github.com/nexavest/nexavest/internal/interfaces"
	"github.com/nexavest/nexavest/internal/models"
)

const (
	DefaultBaseURL   = "https://api.exchangerate.host"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Client implements the ForexClient interface
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new exchangerate.host client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("exchangerate API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("url", c.baseURL+path).Msg("exchangerate API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// latestResponse represents the /latest payload
type latestResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// GetLatestRate retrieves the latest base→quote exchange rate.
func (c *Client) GetLatestRate(ctx context.Context, base, quote string) (float64, error) {
	base = strings.ToUpper(base)
	quote = strings.ToUpper(quote)

	params := url.Values{}
	params.Set("base", base)
	params.Set("symbols", quote)

	var resp latestResponse
	if err := c.get(ctx, "/latest", params, &resp); err != nil {
		return 0, err
	}

	rate, ok := resp.Rates[quote]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("no rate for pair %s/%s: %w", base, quote, models.ErrAssetNotFound)
	}

	return rate, nil
}

// convertResponse represents the /convert payload
type convertResponse struct {
	Result float64 `json:"result"`
	Info   struct {
		Rate float64 `json:"rate"`
	} `json:"info"`
}

// Convert converts amount between currencies, returning the converted amount
// and the rate used.
func (c *Client) Convert(ctx context.Context, from, to string, amount float64) (float64, float64, error) {
	params := url.Values{}
	params.Set("from", strings.ToUpper(from))
	params.Set("to", strings.ToUpper(to))
	params.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))

	var resp convertResponse
	if err := c.get(ctx, "/convert", params, &resp); err != nil {
		return 0, 0, err
	}

	if resp.Result <= 0 {
		return 0, 0, fmt.Errorf("conversion %s→%s returned no result: %w", from, to, models.ErrNoData)
	}

	rate := resp.Info.Rate
	if rate <= 0 && amount > 0 {
		rate = resp.Result / amount
	}

	return resp.Result, rate, nil
}

// Ensure Client implements ForexClient
var _ interfaces.ForexClient = (*Client)(nil)
