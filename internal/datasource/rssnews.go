package datasource

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/pranavdhawann/stock-sentiment-analysis/pkg/models"
	"github.com/pranavdhawann/stock-sentiment-analysis/pkg/utils"
)

// FeedSource represents an RSS feed configuration. A TickerURL with a %s
// placeholder yields a per-symbol feed; a plain URL is a general market feed.
type FeedSource struct {
	Name      string
	TickerURL string
	URL       string
}

// DefaultFeedSources lists the configured financial news feeds.
var DefaultFeedSources = []FeedSource{
	{
		Name:      "Yahoo Finance",
		TickerURL: "https://feeds.finance.yahoo.com/rss/2.0/headline?s=%s&region=US&lang=en-US",
	},
	{
		Name: "CNBC Markets",
		URL:  "https://search.cnbc.com/rs/search/combinedcms/view.xml?partnerId=wrss01&id=10000664",
	},
	{
		Name: "MarketWatch",
		URL:  "https://feeds.content.dowjones.io/public/rss/mw_topstories",
	},
}

// RSSNews fetches symbol-related headlines from RSS feeds.
type RSSNews struct {
	sources []FeedSource
	limit   int
	cache   *Cache
	limiter *RateLimiter
	parser  *gofeed.Parser
}

// NewRSSNews creates the RSS news provider with the default feeds.
// limit caps the number of items returned per fetch.
func NewRSSNews(limit int) *RSSNews {
	return NewRSSNewsWithSources(DefaultFeedSources, limit)
}

// NewRSSNewsWithSources creates an RSS news provider with custom feeds.
func NewRSSNewsWithSources(sources []FeedSource, limit int) *RSSNews {
	return &RSSNews{
		sources: sources,
		limit:   limit,
		cache:   NewCache(10 * time.Minute),
		limiter: NewRateLimiter(2, time.Second), // conservative: 2 req/s
		parser:  gofeed.NewParser(),
	}
}

// Name returns the provider name.
func (r *RSSNews) Name() string { return "RSS" }

// FetchNews returns headlines relevant to the symbol, newest first.
func (r *RSSNews) FetchNews(ctx context.Context, symbol, companyName string) ([]models.NewsItem, error) {
	symbol = utils.NormalizeSymbol(symbol)

	// Cached items are post-filter, so the key carries every filter input.
	cacheKey := fmt.Sprintf("rss:%s:%s:%d", symbol, strings.ToLower(companyName), r.limit)
	if cached, ok := r.cache.Get(cacheKey); ok {
		return cached.([]models.NewsItem), nil
	}

	var all []models.NewsItem
	for _, src := range r.sources {
		items, err := r.fetchFeed(ctx, src, symbol)
		if err != nil {
			// Non-critical: skip failed feeds.
			continue
		}
		all = append(all, items...)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	filtered := FilterRelevant(all, symbol, companyName)
	sortItemsByDate(filtered)
	if r.limit > 0 && len(filtered) > r.limit {
		filtered = filtered[:r.limit]
	}

	r.cache.Set(cacheKey, filtered)
	return filtered, nil
}

// fetchFeed parses one RSS feed and returns its items.
func (r *RSSNews) fetchFeed(ctx context.Context, src FeedSource, symbol string) ([]models.NewsItem, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	feedURL := src.URL
	if src.TickerURL != "" {
		feedURL = fmt.Sprintf(src.TickerURL, url.QueryEscape(symbol))
	}

	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse RSS %s: %w", src.Name, err)
	}

	items := make([]models.NewsItem, 0, len(feed.Items))
	for _, entry := range feed.Items {
		item := models.NewsItem{
			Title:     strings.TrimSpace(entry.Title),
			Summary:   cleanHTML(entry.Description),
			Link:      entry.Link,
			Publisher: src.Name,
		}
		if entry.PublishedParsed != nil {
			item.Published = entry.PublishedParsed.Unix()
		}
		if item.Title == "" {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// cleanHTML strips HTML tags from a string using goquery.
func cleanHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}

// FilterRelevant keeps items that mention the symbol or the leading word
// of the company name (case-insensitive, title plus summary).
func FilterRelevant(items []models.NewsItem, symbol, companyName string) []models.NewsItem {
	symLower := strings.ToLower(utils.NormalizeSymbol(symbol))
	lead := utils.CompanyLeadWord(companyName)

	var filtered []models.NewsItem
	for _, item := range items {
		text := strings.ToLower(item.Title + " " + item.Summary)
		if symLower != "" && strings.Contains(text, symLower) {
			filtered = append(filtered, item)
			continue
		}
		if lead != "" && strings.Contains(text, lead) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// sortItemsByDate orders items newest first.
// Simple insertion sort — fine for small slices.
func sortItemsByDate(items []models.NewsItem) {
	for i := 1; i < len(items); i++ {
		key := items[i]
		j := i - 1
		for j >= 0 && items[j].Published < key.Published {
			items[j+1] = items[j]
			j--
		}
		items[j+1] = key
	}
}
