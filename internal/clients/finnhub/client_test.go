package finnhub

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetQuote_ParsesResponse(t *testing.T) {
	mockResp := `{"c": 150.0, "h": 152.0, "l": 149.0, "o": 149.5, "pc": 149.0, "t": 1756029600}`

	var capturedSymbol, capturedToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/quote" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		capturedSymbol = r.URL.Query().Get("symbol")
		capturedToken = r.URL.Query().Get("token")
		w.Write([]byte(mockResp))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	quote, err := client.GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("GetQuote failed: %v", err)
	}

	if capturedSymbol != "AAPL" {
		t.Errorf("expected symbol AAPL, got %s", capturedSymbol)
	}
	if capturedToken != "test-key" {
		t.Errorf("expected API key in token param, got %s", capturedToken)
	}
	if quote.Current != 150.0 {
		t.Errorf("expected current 150.0, got %.2f", quote.Current)
	}
	if quote.High != 152.0 || quote.Low != 149.0 {
		t.Errorf("unexpected range: high %.2f low %.2f", quote.High, quote.Low)
	}
	if quote.PreviousClose != 149.0 {
		t.Errorf("expected previous close 149.0, got %.2f", quote.PreviousClose)
	}
	if quote.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

func TestGetQuote_UnknownSymbolReturnsZeroQuote(t *testing.T) {
	// Finnhub answers 200 with an all-zero body for symbols it does not know.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"c": 0, "h": 0, "l": 0, "o": 0, "pc": 0, "t": 0}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	quote, err := client.GetQuote(context.Background(), "ZZZZ")
	if err != nil {
		t.Fatalf("GetQuote failed: %v", err)
	}
	if quote.Current != 0 {
		t.Errorf("expected zero current, got %.2f", quote.Current)
	}
	if !quote.Timestamp.IsZero() {
		t.Error("expected zero timestamp to stay unset")
	}
}

func TestGetQuote_Non200ReturnsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "Invalid API key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient("bad-key", WithBaseURL(srv.URL))
	_, err := client.GetQuote(context.Background(), "AAPL")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", apiErr.StatusCode)
	}
}
