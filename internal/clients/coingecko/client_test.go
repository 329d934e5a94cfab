package coingecko

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nexavest/nexavest/internal/models"
)

func TestSearchCoin_ParsesResponse(t *testing.T) {
	mockResp := `{
		"coins": [
			{"id": "bitcoin", "symbol": "btc", "name": "Bitcoin"},
			{"id": "bitcoin-cash", "symbol": "bch", "name": "Bitcoin Cash"}
		]
	}`

	var capturedQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		capturedQuery = r.URL.Query().Get("query")
		w.Write([]byte(mockResp))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	coin, err := client.SearchCoin(context.Background(), "bitcoin")
	if err != nil {
		t.Fatalf("SearchCoin failed: %v", err)
	}

	if capturedQuery != "bitcoin" {
		t.Errorf("expected query bitcoin, got %s", capturedQuery)
	}
	if coin.ID != "bitcoin" {
		t.Errorf("expected first coin taken as best match, got %s", coin.ID)
	}
	if coin.Symbol != "BTC" {
		t.Errorf("expected symbol uppercased, got %s", coin.Symbol)
	}
	if coin.Name != "Bitcoin" {
		t.Errorf("expected name Bitcoin, got %s", coin.Name)
	}
}

func TestSearchCoin_NoMatchReturnsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"coins": []}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.SearchCoin(context.Background(), "notacoin")
	if !errors.Is(err, models.ErrAssetNotFound) {
		t.Errorf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestGetSimplePrice_ParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/simple/price" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("ids") != "bitcoin" {
			t.Errorf("expected ids=bitcoin, got %s", r.URL.Query().Get("ids"))
		}
		if r.URL.Query().Get("vs_currencies") != "usd" {
			t.Errorf("expected vs_currencies=usd, got %s", r.URL.Query().Get("vs_currencies"))
		}
		w.Write([]byte(`{"bitcoin": {"usd": 64250.12}}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	price, err := client.GetSimplePrice(context.Background(), "bitcoin", "usd")
	if err != nil {
		t.Fatalf("GetSimplePrice failed: %v", err)
	}
	if price != 64250.12 {
		t.Errorf("expected 64250.12, got %f", price)
	}
}

func TestGetSimplePrice_MissingCoinReturnsNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.GetSimplePrice(context.Background(), "ghost-coin", "usd")
	if !errors.Is(err, models.ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestGet_Non200ReturnsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.SearchCoin(context.Background(), "bitcoin")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", apiErr.StatusCode)
	}
}
