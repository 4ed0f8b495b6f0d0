package datasource

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/pranavdhawann/stock-sentiment-analysis/pkg/models"
	"github.com/pranavdhawann/stock-sentiment-analysis/pkg/utils"
)

const syntheticPoints = 30

// SyntheticPrices generates a plausible price history when every live
// price source has failed. The walk is seeded from the symbol so repeated
// requests for the same symbol stay consistent within a process run.
type SyntheticPrices struct {
	newRand func(symbol string) *rand.Rand
}

// NewSyntheticPrices creates the fallback price provider.
func NewSyntheticPrices() *SyntheticPrices {
	return &SyntheticPrices{
		newRand: func(symbol string) *rand.Rand {
			return rand.New(rand.NewSource(symbolSeed(symbol)))
		},
	}
}

// NewSyntheticPricesWithRand creates a provider with an injected rand
// constructor, used in tests.
func NewSyntheticPricesWithRand(newRand func(symbol string) *rand.Rand) *SyntheticPrices {
	return &SyntheticPrices{newRand: newRand}
}

// Name returns the provider name.
func (s *SyntheticPrices) Name() string { return "Synthetic" }

// FetchPrices generates a 30-point daily random walk with uniform steps
// of at most ±5% per day. It never fails.
func (s *SyntheticPrices) FetchPrices(_ context.Context, symbol string) (*models.PriceSummary, error) {
	symbol = utils.NormalizeSymbol(symbol)
	rng := s.newRand(symbol)

	// Base price in [50, 500), drawn from the same source as the walk so
	// an injected rand fully determines the series.
	price := 50.0 + rng.Float64()*450.0

	timestamps := utils.DailyTimestamps(syntheticPoints, time.Now().UTC())
	points := make([]models.PricePoint, 0, syntheticPoints)
	for _, ts := range timestamps {
		step := (rng.Float64()*2 - 1) * 0.05
		price *= 1 + step
		points = append(points, models.PricePoint{
			Timestamp: ts,
			Price:     price,
			Volume:    int64(1_000_000 + rng.Intn(9_000_000)),
		})
	}

	summary := &models.PriceSummary{
		Points:       points,
		CurrentPrice: points[len(points)-1].Price,
		Currency:     "USD",
		Source:       "synthetic",
	}
	prev := points[len(points)-2].Price
	summary.Change = summary.CurrentPrice - prev
	summary.ChangePercent = summary.Change / prev * 100
	return summary, nil
}

func symbolSeed(symbol string) int64 {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	return int64(h.Sum64() & 0x7fffffffffffffff)
}

// TemplateNews produces generic headlines built from the company name.
// Terminal news tier: it never fails and needs no network.
type TemplateNews struct {
	now func() time.Time
}

// NewTemplateNews creates the fallback news provider.
func NewTemplateNews() *TemplateNews {
	return &TemplateNews{now: time.Now}
}

// Name returns the provider name.
func (t *TemplateNews) Name() string { return "Template" }

// FetchNews returns three templated items mentioning the company.
func (t *TemplateNews) FetchNews(_ context.Context, symbol, companyName string) ([]models.NewsItem, error) {
	if companyName == "" {
		companyName = utils.NormalizeSymbol(symbol) + " Corporation"
	}
	now := t.now().Unix()

	return []models.NewsItem{
		{
			Title:     fmt.Sprintf("%s shares see steady trading as investors weigh market conditions", companyName),
			Summary:   fmt.Sprintf("Shares of %s traded in a narrow range as investors monitored broader market trends and awaited fresh catalysts.", companyName),
			Publisher: "Market Wire",
			Published: now,
		},
		{
			Title:     fmt.Sprintf("Analysts maintain outlook on %s ahead of next earnings report", companyName),
			Summary:   fmt.Sprintf("Analyst coverage of %s remains largely unchanged, with attention turning to the company's upcoming quarterly results and guidance.", companyName),
			Publisher: "Market Wire",
			Published: now - 3600,
		},
		{
			Title:     fmt.Sprintf("%s in focus as sector activity picks up", companyName),
			Summary:   fmt.Sprintf("%s drew attention amid increased activity across its sector, with trading volume tracking recent averages.", companyName),
			Publisher: "Market Wire",
			Published: now - 7200,
		},
	}, nil
}
