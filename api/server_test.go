package api

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/pranavdhawann/stock-sentiment-analysis/internal/analysis/sentiment"
	"github.com/pranavdhawann/stock-sentiment-analysis/internal/catalog"
	"github.com/pranavdhawann/stock-sentiment-analysis/internal/config"
	"github.com/pranavdhawann/stock-sentiment-analysis/internal/engine"
	"github.com/pranavdhawann/stock-sentiment-analysis/pkg/models"
)

type fixedPrices struct{}

func (fixedPrices) Fetch(context.Context, string) (*models.PriceSummary, error) {
	return &models.PriceSummary{
		Points:       []models.PricePoint{{Timestamp: 1000, Price: 100}, {Timestamp: 2000, Price: 101}},
		CurrentPrice: 101,
		Currency:     "USD",
		Source:       "test",
	}, nil
}

type fixedNews struct{}

func (fixedNews) Fetch(context.Context, string, string) ([]models.NewsItem, error) {
	return []models.NewsItem{
		{Title: "Apple reports strong revenue growth and record profit"},
		{Title: "Apple stock gains after upbeat guidance"},
		{Title: "Apple faces lawsuit over patent dispute"},
	}, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Defaults()
	cat, err := catalog.Load("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	series := sentiment.NewSeriesGenerator(cat, rand.New(rand.NewSource(1)))
	eng := engine.New(cat, fixedPrices{}, fixedNews{}, series, zap.NewNop())
	return NewServer(cfg, cat, eng, zap.NewNop())
}

func doRequest(t *testing.T, srv *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode response: %v\n%s", err, rec.Body.String())
	}
	return m
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	m := decodeMap(t, rec)
	if m["status"] != "healthy" {
		t.Errorf("status = %v", m["status"])
	}
	if m["timestamp"] == nil || m["port"] == nil || m["message"] == nil {
		t.Errorf("missing fields: %v", m)
	}
}

func TestPing(t *testing.T) {
	srv := newTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/ping", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	m := decodeMap(t, rec)
	if m["pong"] != true {
		t.Errorf("pong = %v", m["pong"])
	}
}

func TestSearchStocks(t *testing.T) {
	srv := newTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/api/search_stocks?q=apple", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var results []catalog.SearchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(results) != 1 || results[0].Symbol != "AAPL" {
		t.Fatalf("unexpected results: %+v", results)
	}
	if results[0].Display != "AAPL - Apple Inc." {
		t.Errorf("display = %q", results[0].Display)
	}
}

func TestSearchStocksEmptyQuery(t *testing.T) {
	srv := newTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/api/search_stocks", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("expected empty array, got %s", got)
	}
}

func TestAnalyzeSentiment(t *testing.T) {
	srv := newTestServer(t)
	body := []byte(`{"symbol":"AAPL"}`)
	rec := doRequest(t, srv, http.MethodPost, "/api/analyze_sentiment", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Symbol != "AAPL" || result.CompanyName != "Apple Inc." {
		t.Errorf("symbol/company = %q/%q", result.Symbol, result.CompanyName)
	}
	if result.NewsCount != 3 {
		t.Errorf("news count = %d", result.NewsCount)
	}
	if !result.OverallSentiment.Valid() {
		t.Errorf("overall sentiment = %q", result.OverallSentiment)
	}
	if len(result.SentimentSeries) != 2 {
		t.Errorf("series length = %d", len(result.SentimentSeries))
	}
}

func TestAnalyzeSentimentMissingSymbol(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body object", `{}`},
		{"blank symbol", `{"symbol":"  "}`},
		{"malformed JSON", `{"symbol"`},
	}
	srv := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodPost, "/api/analyze_sentiment", []byte(tt.body))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", rec.Code)
			}
			m := decodeMap(t, rec)
			if m["error"] == "" || m["error"] == nil {
				t.Errorf("expected error message, got %v", m)
			}
		})
	}
}

func TestDefaultMarkets(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/get_default_markets?location=IN", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var market catalog.Market
	if err := json.Unmarshal(rec.Body.Bytes(), &market); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if market.Location != "IN" || len(market.Tickers) == 0 {
		t.Errorf("unexpected market: %+v", market)
	}

	// Unknown locations fall back to the US market.
	rec = doRequest(t, srv, http.MethodGet, "/api/get_default_markets?location=XX", nil)
	json.Unmarshal(rec.Body.Bytes(), &market)
	if market.Location != "US" {
		t.Errorf("expected US fallback, got %q", market.Location)
	}
}

func TestStaticPages(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("index status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Stock Sentiment Dashboard") {
		t.Error("index page missing title")
	}

	rec = doRequest(t, srv, http.MethodGet, "/about", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("about status = %d", rec.Code)
	}
}

func TestServeUIDisabled(t *testing.T) {
	srv := newTestServer(t)
	srv.SetServeUI(false)

	rec := doRequest(t, srv, http.MethodGet, "/", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 with UI disabled, got %d", rec.Code)
	}
	rec = doRequest(t, srv, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatal("API should still serve with UI disabled")
	}
}
