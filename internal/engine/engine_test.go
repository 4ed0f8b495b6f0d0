package engine

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"go.uber.org/zap"

	"github.com/pranavdhawann/stock-sentiment-analysis/internal/analysis/sentiment"
	"github.com/pranavdhawann/stock-sentiment-analysis/internal/catalog"
	"github.com/pranavdhawann/stock-sentiment-analysis/pkg/models"
)

type stubPrices struct {
	summary *models.PriceSummary
	err     error
}

func (s *stubPrices) Fetch(context.Context, string) (*models.PriceSummary, error) {
	return s.summary, s.err
}

type stubNews struct {
	items []models.NewsItem
	err   error
}

func (s *stubNews) Fetch(context.Context, string, string) ([]models.NewsItem, error) {
	return s.items, s.err
}

func newTestEngine(t *testing.T, prices PriceFetcher, news NewsFetcher) *Engine {
	t.Helper()
	cat, err := catalog.Load("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	series := sentiment.NewSeriesGenerator(cat, rand.New(rand.NewSource(1)))
	return New(cat, prices, news, series, zap.NewNop())
}

func TestAnalyzeEmptySymbol(t *testing.T) {
	e := newTestEngine(t, &stubPrices{}, &stubNews{})
	if _, err := e.Analyze(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty symbol")
	}
}

func TestAnalyzeAssemblesResult(t *testing.T) {
	summary := &models.PriceSummary{
		Points: []models.PricePoint{
			{Timestamp: 1000, Price: 100, Volume: 10},
			{Timestamp: 2000, Price: 110, Volume: 20},
		},
		CurrentPrice:  110,
		Change:        10,
		ChangePercent: 10,
		Currency:      "USD",
		Source:        "yahoo",
	}
	news := []models.NewsItem{
		{Title: "Apple reports record revenue and strong profit growth"},
		{Title: "Apple faces regulatory lawsuit over app store decline"},
	}

	e := newTestEngine(t, &stubPrices{summary: summary}, &stubNews{items: news})
	result, err := e.Analyze(context.Background(), "aapl")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if result.Symbol != "AAPL" {
		t.Errorf("symbol = %q", result.Symbol)
	}
	if result.CompanyName != "Apple Inc." {
		t.Errorf("company = %q", result.CompanyName)
	}
	if result.NewsCount != 2 || len(result.NewsItems) != 2 {
		t.Errorf("news count = %d", result.NewsCount)
	}
	for i, item := range result.NewsItems {
		if !item.Sentiment.Valid() {
			t.Errorf("item %d left unscored: %+v", i, item)
		}
		if item.Confidence < 0 || item.Confidence > 1 {
			t.Errorf("item %d confidence out of range: %f", i, item.Confidence)
		}
	}
	if !result.OverallSentiment.Valid() {
		t.Errorf("overall sentiment %q invalid", result.OverallSentiment)
	}
	if len(result.SentimentSeries) != len(summary.Points) {
		t.Errorf("series length %d != %d price points", len(result.SentimentSeries), len(summary.Points))
	}
	if result.CurrentPrice != 110 || result.Currency != "USD" {
		t.Errorf("price fields = %f %q", result.CurrentPrice, result.Currency)
	}
	if len(result.Keywords) == 0 {
		t.Error("expected keywords")
	}
	if result.Insights.MarketOutlook == "" {
		t.Error("expected a market outlook")
	}
	if result.GeneratedAt.IsZero() {
		t.Error("generated_at not set")
	}
}

func TestAnalyzeUnknownSymbolFallbackName(t *testing.T) {
	e := newTestEngine(t, &stubPrices{summary: &models.PriceSummary{}}, &stubNews{})
	result, err := e.Analyze(context.Background(), "ZZZZ")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.CompanyName != "ZZZZ Corporation" {
		t.Errorf("company = %q", result.CompanyName)
	}
}

func TestAnalyzeDegradesOnFetchFailure(t *testing.T) {
	e := newTestEngine(t,
		&stubPrices{err: errors.New("price upstream down")},
		&stubNews{err: errors.New("news upstream down")},
	)

	result, err := e.Analyze(context.Background(), "MSFT")
	if err != nil {
		t.Fatalf("Analyze should degrade, got %v", err)
	}
	if result.OverallSentiment != models.SentimentNeutral {
		t.Errorf("expected neutral default, got %q", result.OverallSentiment)
	}
	if result.Confidence != 0.5 {
		t.Errorf("expected 0.5 default confidence, got %f", result.Confidence)
	}
	if result.NewsCount != 0 {
		t.Errorf("news count = %d", result.NewsCount)
	}
	if len(result.SentimentSeries) != 0 {
		t.Errorf("expected empty series, got %d", len(result.SentimentSeries))
	}
	// Keyword cloud still renders from the generic fallback.
	if len(result.Keywords) != 5 {
		t.Errorf("expected fallback keywords, got %d", len(result.Keywords))
	}
}
