package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pranavdhawann/stock-sentiment-analysis/pkg/models"
	"github.com/pranavdhawann/stock-sentiment-analysis/pkg/utils"
)

// yahooBaseURL is the Yahoo Finance chart API root. Overridable in tests.
const yahooBaseURL = "https://query1.finance.yahoo.com"

// YahooPrices fetches daily price history from the Yahoo Finance chart API.
type YahooPrices struct {
	baseURL   string
	chartSpan string
	interval  string
	cache     *Cache
	limiter   *RateLimiter
}

// NewYahooPrices creates the Yahoo price provider. chartSpan and interval
// follow the chart API values, e.g. "1mo" and "1d".
func NewYahooPrices(chartSpan, interval string) *YahooPrices {
	return &YahooPrices{
		baseURL:   yahooBaseURL,
		chartSpan: chartSpan,
		interval:  interval,
		cache:     NewCache(5 * time.Minute),
		limiter:   NewRateLimiter(5, time.Second), // 5 req/s
	}
}

// Name returns the provider name.
func (y *YahooPrices) Name() string { return "Yahoo Finance" }

// --- Yahoo Finance v8 chart API types ---

type yahooChartResponse struct {
	Chart struct {
		Result []yahooChartResult `json:"result"`
		Error  *yahooError        `json:"error"`
	} `json:"chart"`
}

type yahooChartResult struct {
	Meta       yahooChartMeta  `json:"meta"`
	Timestamp  []int64         `json:"timestamp"`
	Indicators yahooIndicators `json:"indicators"`
}

type yahooChartMeta struct {
	Symbol             string  `json:"symbol"`
	Currency           string  `json:"currency"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
	ChartPreviousClose float64 `json:"chartPreviousClose"`
}

type yahooIndicators struct {
	Quote []yahooQuoteBlock `json:"quote"`
}

type yahooQuoteBlock struct {
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// FetchPrices returns recent daily prices for the symbol.
func (y *YahooPrices) FetchPrices(ctx context.Context, symbol string) (*models.PriceSummary, error) {
	yahooSym := utils.YahooSymbol(symbol)

	cacheKey := fmt.Sprintf("prices:%s:%s:%s", yahooSym, y.chartSpan, y.interval)
	if cached, ok := y.cache.Get(cacheKey); ok {
		return cached.(*models.PriceSummary), nil
	}

	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s",
		y.baseURL, yahooSym, y.chartSpan, y.interval)
	body, _, err := doGet(ctx, url, map[string]string{
		"Accept": "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", yahooSym, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var resp yahooChartResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse yahoo chart: %w", err)
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart error: %s", resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}

	summary := buildPriceSummary(resp.Chart.Result[0])
	if len(summary.Points) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	y.cache.Set(cacheKey, summary)
	return summary, nil
}

// buildPriceSummary converts a chart result into the shared price model.
// Entries with a nil close are skipped (market holidays, partial candles).
func buildPriceSummary(result yahooChartResult) *models.PriceSummary {
	summary := &models.PriceSummary{
		Currency: result.Meta.Currency,
		Source:   "yahoo",
	}

	if len(result.Indicators.Quote) > 0 {
		q := result.Indicators.Quote[0]
		for i, ts := range result.Timestamp {
			if i >= len(q.Close) || q.Close[i] == nil {
				continue
			}
			p := models.PricePoint{
				Timestamp: ts * 1000,
				Price:     *q.Close[i],
			}
			if i < len(q.Volume) && q.Volume[i] != nil {
				p.Volume = *q.Volume[i]
			}
			summary.Points = append(summary.Points, p)
		}
	}

	summary.CurrentPrice = result.Meta.RegularMarketPrice
	if summary.CurrentPrice == 0 && len(summary.Points) > 0 {
		summary.CurrentPrice = summary.Points[len(summary.Points)-1].Price
	}

	prev := result.Meta.ChartPreviousClose
	if prev == 0 && len(summary.Points) > 1 {
		prev = summary.Points[len(summary.Points)-2].Price
	}
	if prev != 0 {
		summary.Change = summary.CurrentPrice - prev
		summary.ChangePercent = summary.Change / prev * 100
	}

	if summary.Currency == "" {
		summary.Currency = "USD"
	}
	return summary
}
