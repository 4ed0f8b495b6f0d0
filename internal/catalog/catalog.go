// Package catalog holds the ticker reference tables: company names,
// per-ticker sentiment profiles, and regional default markets.
//
// The tables are data, not code: they load from a YAML file so they can
// be extended without rebuilding, with an embedded default so the binary
// works standalone.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed tickers.yaml
var defaultData []byte

// Profile drives the synthetic sentiment series for a ticker.
type Profile struct {
	Base       float64 `yaml:"base"`       // baseline sentiment in [-1,1]
	Volatility float64 `yaml:"volatility"` // random spread in [0,1]
}

// Entry describes one listed company.
type Entry struct {
	Symbol  string  `yaml:"symbol"`
	Name    string  `yaml:"name"`
	Profile Profile `yaml:"profile"`
}

// Market describes a regional default market for the dashboard.
type Market struct {
	Location string   `yaml:"location" json:"location"`
	Name     string   `yaml:"name"     json:"name"`
	Currency string   `yaml:"currency" json:"currency"`
	Tickers  []string `yaml:"tickers"  json:"tickers"`
}

type catalogFile struct {
	Stocks  []Entry  `yaml:"stocks"`
	Markets []Market `yaml:"markets"`
}

// defaultProfile is used for tickers without a configured profile.
var defaultProfile = Profile{Base: 0.0, Volatility: 0.4}

// Catalog is a read-only lookup table, safe for concurrent use after Load.
type Catalog struct {
	entries  map[string]Entry
	order    []string // insertion order for stable search results
	markets  map[string]Market
	fallback Market
}

// Load reads the catalog from path, or from the embedded default when
// path is empty.
func Load(path string) (*Catalog, error) {
	data := defaultData
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		data = b
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(f.Stocks) == 0 {
		return nil, fmt.Errorf("catalog has no stocks")
	}

	c := &Catalog{
		entries: make(map[string]Entry, len(f.Stocks)),
		markets: make(map[string]Market, len(f.Markets)),
	}
	for _, e := range f.Stocks {
		sym := strings.ToUpper(strings.TrimSpace(e.Symbol))
		if sym == "" {
			continue
		}
		e.Symbol = sym
		if _, dup := c.entries[sym]; !dup {
			c.order = append(c.order, sym)
		}
		c.entries[sym] = e
	}
	for _, m := range f.Markets {
		loc := strings.ToUpper(strings.TrimSpace(m.Location))
		m.Location = loc
		c.markets[loc] = m
		if loc == "US" {
			c.fallback = m
		}
	}
	if c.fallback.Location == "" && len(f.Markets) > 0 {
		c.fallback = f.Markets[0]
	}
	return c, nil
}

// CompanyName resolves a ticker to its company name, falling back to
// "<SYM> Corporation" for unknown tickers.
func (c *Catalog) CompanyName(symbol string) string {
	symbol = strings.ToUpper(symbol)
	if e, ok := c.entries[symbol]; ok {
		return e.Name
	}
	return symbol + " Corporation"
}

// SentimentProfile returns the sentiment profile for a ticker, or the
// neutral default for unknown tickers.
func (c *Catalog) SentimentProfile(symbol string) Profile {
	symbol = strings.ToUpper(symbol)
	if e, ok := c.entries[symbol]; ok && (e.Profile != Profile{}) {
		return e.Profile
	}
	return defaultProfile
}

// SearchResult is one autocomplete match.
type SearchResult struct {
	Symbol  string `json:"symbol"`
	Name    string `json:"name"`
	Display string `json:"display"`
}

// Search returns up to limit entries whose symbol or name contains the
// query, case-insensitive, in catalog order. Empty query matches nothing.
func (c *Catalog) Search(query string, limit int) []SearchResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []SearchResult{}
	}

	results := []SearchResult{}
	for _, sym := range c.order {
		e := c.entries[sym]
		if strings.Contains(strings.ToLower(e.Symbol), query) ||
			strings.Contains(strings.ToLower(e.Name), query) {
			results = append(results, SearchResult{
				Symbol:  e.Symbol,
				Name:    e.Name,
				Display: e.Symbol + " - " + e.Name,
			})
			if limit > 0 && len(results) >= limit {
				break
			}
		}
	}
	return results
}

// DefaultMarket returns the market configured for a location code,
// falling back to the US market for unknown locations.
func (c *Catalog) DefaultMarket(location string) Market {
	location = strings.ToUpper(strings.TrimSpace(location))
	if m, ok := c.markets[location]; ok {
		return m
	}
	return c.fallback
}

// Locations returns the configured market locations, sorted.
func (c *Catalog) Locations() []string {
	locs := make([]string, 0, len(c.markets))
	for loc := range c.markets {
		locs = append(locs, loc)
	}
	sort.Strings(locs)
	return locs
}
