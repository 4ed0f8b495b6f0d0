package datasource

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pranavdhawann/stock-sentiment-analysis/pkg/models"
)

// PriceChain tries price providers in order and returns the first
// acceptable result. Provider failures are logged, not surfaced; the
// chain fails only when every tier does.
type PriceChain struct {
	providers []PriceProvider
	timeout   time.Duration
	log       *zap.Logger
}

// NewPriceChain builds a chain over the given providers, tried in order.
func NewPriceChain(log *zap.Logger, timeout time.Duration, providers ...PriceProvider) *PriceChain {
	return &PriceChain{providers: providers, timeout: timeout, log: log}
}

// Fetch returns the first non-empty price summary down the chain.
func (c *PriceChain) Fetch(ctx context.Context, symbol string) (*models.PriceSummary, error) {
	for _, p := range c.providers {
		summary, err := c.tryProvider(ctx, p, symbol)
		if err != nil {
			c.log.Warn("price provider failed",
				zap.String("provider", p.Name()),
				zap.String("symbol", symbol),
				zap.Error(err))
			continue
		}
		if summary == nil || len(summary.Points) == 0 {
			c.log.Debug("price provider returned empty series",
				zap.String("provider", p.Name()),
				zap.String("symbol", symbol))
			continue
		}
		return summary, nil
	}
	return nil, fmt.Errorf("all price providers failed for %s: %w", symbol, ErrNoData)
}

func (c *PriceChain) tryProvider(ctx context.Context, p PriceProvider, symbol string) (*models.PriceSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return p.FetchPrices(ctx, symbol)
}

// NewsChain tries news providers in order. A tier is accepted when it
// yields at least minRelevant relevant items; otherwise its items are
// discarded and the next tier runs.
type NewsChain struct {
	providers   []NewsProvider
	minRelevant int
	timeout     time.Duration
	log         *zap.Logger
}

// NewNewsChain builds a chain over the given providers, tried in order.
func NewNewsChain(log *zap.Logger, minRelevant int, timeout time.Duration, providers ...NewsProvider) *NewsChain {
	return &NewsChain{providers: providers, minRelevant: minRelevant, timeout: timeout, log: log}
}

// Fetch returns the first batch of items meeting the relevance minimum.
// When no tier meets it, the largest batch seen is returned rather than
// nothing.
func (c *NewsChain) Fetch(ctx context.Context, symbol, companyName string) ([]models.NewsItem, error) {
	var best []models.NewsItem
	for _, p := range c.providers {
		items, err := c.tryProvider(ctx, p, symbol, companyName)
		if err != nil {
			c.log.Warn("news provider failed",
				zap.String("provider", p.Name()),
				zap.String("symbol", symbol),
				zap.Error(err))
			continue
		}
		if len(items) >= c.minRelevant {
			return items, nil
		}
		c.log.Debug("news provider below relevance minimum",
			zap.String("provider", p.Name()),
			zap.String("symbol", symbol),
			zap.Int("items", len(items)),
			zap.Int("min", c.minRelevant))
		if len(items) > len(best) {
			best = items
		}
	}
	if len(best) == 0 {
		return nil, fmt.Errorf("all news providers failed for %s: %w", symbol, ErrNoData)
	}
	return best, nil
}

func (c *NewsChain) tryProvider(ctx context.Context, p NewsProvider, symbol, companyName string) ([]models.NewsItem, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return p.FetchNews(ctx, symbol, companyName)
}
