package datasource

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/pranavdhawann/stock-sentiment-analysis/pkg/models"
	"github.com/pranavdhawann/stock-sentiment-analysis/pkg/utils"
)

// ScrapeSource configures one news site to scrape. SearchPath contains a
// {query} placeholder replaced with the search term.
type ScrapeSource struct {
	Name       string
	BaseURL    string
	SearchPath string
	Selectors  ScrapeSelectors
}

// ScrapeSelectors holds the CSS selectors for pulling article data out of
// a listing page.
type ScrapeSelectors struct {
	Container string
	Title     string
	Link      string
	Summary   string
}

// DefaultScrapeSources lists the finance news pages scraped as the
// second news tier.
var DefaultScrapeSources = []ScrapeSource{
	{
		Name:       "Yahoo Finance Search",
		BaseURL:    "https://finance.yahoo.com",
		SearchPath: "/quote/{query}/news",
		Selectors: ScrapeSelectors{
			Container: "li.stream-item",
			Title:     "h3",
			Link:      "a",
			Summary:   "p",
		},
	},
	{
		Name:       "MarketWatch Search",
		BaseURL:    "https://www.marketwatch.com",
		SearchPath: "/search?q={query}",
		Selectors: ScrapeSelectors{
			Container: "div.element--article",
			Title:     "h3 a",
			Link:      "h3 a",
			Summary:   "p.article__summary",
		},
	},
}

// ScrapeNews scrapes finance news listing pages for symbol headlines.
type ScrapeNews struct {
	sources []ScrapeSource
	limit   int
	timeout time.Duration
	cache   *Cache
}

// NewScrapeNews creates the scraping news provider with default sources.
func NewScrapeNews(limit int, timeout time.Duration) *ScrapeNews {
	return NewScrapeNewsWithSources(DefaultScrapeSources, limit, timeout)
}

// NewScrapeNewsWithSources creates a scraping provider with custom sources.
func NewScrapeNewsWithSources(sources []ScrapeSource, limit int, timeout time.Duration) *ScrapeNews {
	return &ScrapeNews{
		sources: sources,
		limit:   limit,
		timeout: timeout,
		cache:   NewCache(10 * time.Minute),
	}
}

// Name returns the provider name.
func (s *ScrapeNews) Name() string { return "Scraper" }

// FetchNews scrapes each configured source until enough relevant items
// are collected.
func (s *ScrapeNews) FetchNews(ctx context.Context, symbol, companyName string) ([]models.NewsItem, error) {
	symbol = utils.NormalizeSymbol(symbol)

	// Cached items are post-filter, so the key carries every filter input.
	cacheKey := fmt.Sprintf("scrape:%s:%s:%d", symbol, strings.ToLower(companyName), s.limit)
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.([]models.NewsItem), nil
	}

	var all []models.NewsItem
	for _, src := range s.sources {
		items, err := s.scrapeSource(ctx, src, symbol)
		if err != nil {
			continue
		}
		all = append(all, items...)
		if s.limit > 0 && len(all) >= s.limit {
			break
		}
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	filtered := FilterRelevant(all, symbol, companyName)
	if s.limit > 0 && len(filtered) > s.limit {
		filtered = filtered[:s.limit]
	}

	s.cache.Set(cacheKey, filtered)
	return filtered, nil
}

// scrapeSource collects articles from a single listing page.
func (s *ScrapeNews) scrapeSource(ctx context.Context, src ScrapeSource, symbol string) ([]models.NewsItem, error) {
	var items []models.NewsItem

	c := colly.NewCollector(
		colly.AllowedDomains(hostOf(src.BaseURL)),
		colly.MaxDepth(1),
		colly.Async(false),
		colly.StdlibContext(ctx),
	)
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", DefaultUserAgent)
	})

	fetchedAt := time.Now().Unix()
	c.OnHTML(src.Selectors.Container, func(e *colly.HTMLElement) {
		if s.limit > 0 && len(items) >= s.limit {
			return
		}

		title := strings.TrimSpace(e.ChildText(src.Selectors.Title))
		if title == "" {
			return
		}

		link := e.ChildAttr(src.Selectors.Link, "href")
		if link != "" && !strings.HasPrefix(link, "http") {
			link = src.BaseURL + link
		}

		items = append(items, models.NewsItem{
			Title:     title,
			Summary:   strings.TrimSpace(e.ChildText(src.Selectors.Summary)),
			Link:      link,
			Publisher: src.Name,
			Published: fetchedAt,
		})
	})

	searchURL := src.BaseURL + strings.ReplaceAll(src.SearchPath, "{query}", url.PathEscape(symbol))
	if err := c.Visit(searchURL); err != nil {
		return nil, fmt.Errorf("visit %s: %w", searchURL, err)
	}
	c.Wait()

	return items, nil
}

func hostOf(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}
	// colly matches allowed domains against the hostname without port.
	return u.Hostname()
}
