// Package common provides shared test infrastructure
package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nexavest/nexavest/internal/app"
	"github.com/nexavest/nexavest/internal/clients/coingecko"
	"github.com/nexavest/nexavest/internal/clients/exchangerate"
	"github.com/nexavest/nexavest/internal/clients/finnhub"
	"github.com/nexavest/nexavest/internal/clients/yahoo"
	"github.com/nexavest/nexavest/internal/common"
	"github.com/nexavest/nexavest/internal/server"
	"github.com/nexavest/nexavest/internal/services/advisor"
	"github.com/nexavest/nexavest/internal/services/classifier"
	"github.com/nexavest/nexavest/internal/services/pricing"
)

// Providers holds the fake upstream handlers. Tests assign the handlers they
// need; unassigned providers answer 404.
type Providers struct {
	Yahoo        http.HandlerFunc
	Finnhub      http.HandlerFunc
	CoinGecko    http.HandlerFunc
	ExchangeRate http.HandlerFunc
}

// Env is an in-process end-to-end environment: the full server (real clients,
// real services, full middleware stack) wired against fake provider servers.
type Env struct {
	t   *testing.T
	api *httptest.Server

	yahooSrv        *httptest.Server
	finnhubSrv      *httptest.Server
	coingeckoSrv    *httptest.Server
	exchangerateSrv *httptest.Server
}

func fakeServer(handler http.HandlerFunc) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler == nil {
			http.NotFound(w, r)
			return
		}
		handler(w, r)
	}))
}

// NewEnv builds the environment. withFinnhub controls whether the stock chain
// has a primary quote provider.
func NewEnv(t *testing.T, providers Providers, withFinnhub bool) *Env {
	t.Helper()

	env := &Env{
		t:               t,
		yahooSrv:        fakeServer(providers.Yahoo),
		finnhubSrv:      fakeServer(providers.Finnhub),
		coingeckoSrv:    fakeServer(providers.CoinGecko),
		exchangerateSrv: fakeServer(providers.ExchangeRate),
	}

	config := common.NewDefaultConfig()
	config.Clients.Yahoo.BaseURL = env.yahooSrv.URL
	config.Clients.Finnhub.BaseURL = env.finnhubSrv.URL
	config.Clients.CoinGecko.BaseURL = env.coingeckoSrv.URL
	config.Clients.ExchangeRate.BaseURL = env.exchangerateSrv.URL

	logger := common.NewSilentLogger()

	a := &app.App{
		Config:      config,
		Logger:      logger,
		StartupTime: time.Now(),
	}

	a.YahooClient = yahoo.NewClient(yahoo.WithBaseURL(env.yahooSrv.URL), yahoo.WithLogger(logger))
	if withFinnhub {
		a.FinnhubClient = finnhub.NewClient("test-key", finnhub.WithBaseURL(env.finnhubSrv.URL), finnhub.WithLogger(logger))
	}
	a.CoinGeckoClient = coingecko.NewClient(coingecko.WithBaseURL(env.coingeckoSrv.URL), coingecko.WithLogger(logger))
	a.ExchangeRateClient = exchangerate.NewClient(exchangerate.WithBaseURL(env.exchangerateSrv.URL), exchangerate.WithLogger(logger))

	a.ClassifierService = classifier.NewService(a.YahooClient, logger)
	a.PricingService = pricing.NewService(a.FinnhubClient, a.YahooClient, a.CoinGeckoClient, a.ExchangeRateClient, config.Pricing.RegionSuffix, logger)
	a.AdvisorService = advisor.NewService(config.Risk, logger)

	env.api = httptest.NewServer(server.NewServer(a).Handler())
	return env
}

// Cleanup shuts down the API server and all fake providers.
func (e *Env) Cleanup() {
	e.api.Close()
	e.yahooSrv.Close()
	e.finnhubSrv.Close()
	e.coingeckoSrv.Close()
	e.exchangerateSrv.Close()
}

// HTTPGet performs a GET against the API server.
func (e *Env) HTTPGet(path string) (*http.Response, error) {
	return http.Get(e.api.URL + path)
}

// PostJSON performs a POST with a JSON body against the API server.
func (e *Env) PostJSON(path string, body interface{}) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal body: %w", err)
	}
	return http.Post(e.api.URL+path, "application/json", bytes.NewReader(data))
}
