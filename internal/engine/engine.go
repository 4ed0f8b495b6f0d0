// Package engine runs the per-request analysis pipeline: fetch, score,
// aggregate, and assemble the dashboard payload.
package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pranavdhawann/stock-sentiment-analysis/internal/analysis/insight"
	"github.com/pranavdhawann/stock-sentiment-analysis/internal/analysis/keyword"
	"github.com/pranavdhawann/stock-sentiment-analysis/internal/analysis/sentiment"
	"github.com/pranavdhawann/stock-sentiment-analysis/internal/catalog"
	"github.com/pranavdhawann/stock-sentiment-analysis/pkg/models"
	"github.com/pranavdhawann/stock-sentiment-analysis/pkg/utils"
)

// PriceFetcher supplies price history, normally a datasource.PriceChain.
type PriceFetcher interface {
	Fetch(ctx context.Context, symbol string) (*models.PriceSummary, error)
}

// NewsFetcher supplies news items, normally a datasource.NewsChain.
type NewsFetcher interface {
	Fetch(ctx context.Context, symbol, companyName string) ([]models.NewsItem, error)
}

// Engine assembles a full AnalysisResult for one symbol per call. It
// holds no per-request state; the same instance serves all requests.
type Engine struct {
	catalog *catalog.Catalog
	prices  PriceFetcher
	news    NewsFetcher
	scorer  *sentiment.Scorer
	series  *sentiment.SeriesGenerator
	log     *zap.Logger
}

// New creates an analysis engine.
func New(cat *catalog.Catalog, prices PriceFetcher, news NewsFetcher, series *sentiment.SeriesGenerator, log *zap.Logger) *Engine {
	return &Engine{
		catalog: cat,
		prices:  prices,
		news:    news,
		scorer:  sentiment.NewScorer(),
		series:  series,
		log:     log,
	}
}

// Analyze runs the full pipeline for a symbol. Upstream fetch failures
// degrade to empty inputs; the downstream stages all tolerate those, so
// the only error is an empty symbol.
func (e *Engine) Analyze(ctx context.Context, symbol string) (*models.AnalysisResult, error) {
	symbol = utils.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("empty symbol")
	}
	companyName := e.catalog.CompanyName(symbol)

	var (
		summary *models.PriceSummary
		items   []models.NewsItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := e.prices.Fetch(gctx, symbol)
		if err != nil {
			e.log.Warn("price fetch failed", zap.String("symbol", symbol), zap.Error(err))
			return nil // non-fatal
		}
		summary = s
		return nil
	})
	g.Go(func() error {
		n, err := e.news.Fetch(gctx, symbol, companyName)
		if err != nil {
			e.log.Warn("news fetch failed", zap.String("symbol", symbol), zap.Error(err))
			return nil // non-fatal
		}
		items = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if summary == nil {
		summary = &models.PriceSummary{Currency: "USD", Source: "none"}
	}

	items = e.scorer.ScoreItems(items)
	overall := sentiment.Aggregate(items)

	result := &models.AnalysisResult{
		Symbol:           symbol,
		CompanyName:      companyName,
		NewsCount:        len(items),
		OverallSentiment: overall.Label,
		Confidence:       overall.Confidence,
		NewsItems:        items,
		PricePoints:      summary.Points,
		SentimentSeries:  e.series.Generate(symbol, summary.Points),
		Keywords:         keyword.Extract(items),
		CurrentPrice:     summary.CurrentPrice,
		Change:           summary.Change,
		ChangePercent:    summary.ChangePercent,
		Currency:         summary.Currency,
		Insights:         insight.Synthesize(items, symbol, companyName),
		GeneratedAt:      time.Now().UTC(),
	}

	e.log.Info("analysis completed",
		zap.String("symbol", symbol),
		zap.Int("news", result.NewsCount),
		zap.String("sentiment", string(result.OverallSentiment)),
		zap.String("price_source", summary.Source))
	return result, nil
}
