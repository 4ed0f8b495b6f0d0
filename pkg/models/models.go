// Package models defines the core data structures shared across the
// stock sentiment analysis service.
package models

import "time"

// SentimentLabel classifies the tone of a news item or an overall result.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNegative SentimentLabel = "Negative"
	SentimentNeutral  SentimentLabel = "Neutral"
	SentimentVolatile SentimentLabel = "Volatile"
)

// Valid reports whether the label is one of the known sentiment labels.
func (l SentimentLabel) Valid() bool {
	switch l {
	case SentimentPositive, SentimentNegative, SentimentNeutral, SentimentVolatile:
		return true
	}
	return false
}

// NewsItem is a single news article about a ticker. Once scored it is
// treated as immutable; items never outlive the request that built them.
type NewsItem struct {
	Title      string         `json:"title"`
	Summary    string         `json:"summary"`
	Link       string         `json:"link"`
	Publisher  string         `json:"publisher"`
	Published  int64          `json:"published"` // unix seconds
	Sentiment  SentimentLabel `json:"sentiment"`
	Confidence float64        `json:"confidence"` // always in [0,1]
}

// Text returns the title and summary joined for scoring and extraction.
func (n NewsItem) Text() string {
	if n.Summary == "" {
		return n.Title
	}
	return n.Title + " " + n.Summary
}

// PricePoint is one entry of a chronological closing-price series.
type PricePoint struct {
	Timestamp int64   `json:"timestamp"` // unix milliseconds
	Price     float64 `json:"price"`
	Volume    int64   `json:"volume"`
}

// PriceSummary bundles a price series with derived quote fields.
type PriceSummary struct {
	Points        []PricePoint `json:"points"`
	CurrentPrice  float64      `json:"current_price"`
	Change        float64      `json:"change"`
	ChangePercent float64      `json:"change_percent"`
	Currency      string       `json:"currency"`
	Source        string       `json:"source"`
}

// SentimentSeriesPoint is one entry of the per-day sentiment series,
// index-aligned with the price series it was generated from.
//
// The series is synthetic and illustrative: it is derived from the ticker
// profile and price movement, not from measured news sentiment.
type SentimentSeriesPoint struct {
	Timestamp int64   `json:"timestamp"` // unix milliseconds
	Sentiment float64 `json:"sentiment"` // always in [-1,1]
}

// Keyword is a keyword-cloud entry.
type Keyword struct {
	Text      string `json:"text"`
	Weight    int    `json:"weight"` // display size
	Sentiment string `json:"sentiment"`
}

// Insights summarizes the scored news list for the dashboard.
type Insights struct {
	KeyPoints        []string       `json:"key_points"`
	SentimentSummary map[string]int `json:"sentiment_summary"`
	MarketOutlook    string         `json:"market_outlook"`
	RiskFactors      []string       `json:"risk_factors"`
	Opportunities    []string       `json:"opportunities"`
}

// Scored is the output of the sentiment scorer for a single text.
type Scored struct {
	Label      SentimentLabel `json:"label"`
	Confidence float64        `json:"confidence"`
}

// AnalysisResult is the complete dashboard payload for one ticker.
// It is built fresh per request; nothing in it is shared across requests.
type AnalysisResult struct {
	Symbol           string                 `json:"symbol"`
	CompanyName      string                 `json:"company_name"`
	NewsCount        int                    `json:"news_count"`
	OverallSentiment SentimentLabel         `json:"overall_sentiment"`
	Confidence       float64                `json:"confidence"`
	NewsItems        []NewsItem             `json:"news_items"`
	PricePoints      []PricePoint           `json:"price_data"`
	SentimentSeries  []SentimentSeriesPoint `json:"sentiment_data"`
	Keywords         []Keyword              `json:"keywords"`
	CurrentPrice     float64                `json:"current_price"`
	Change           float64                `json:"price_change"`
	ChangePercent    float64                `json:"price_change_percent"`
	Currency         string                 `json:"currency"`
	Insights         Insights               `json:"insights"`
	GeneratedAt      time.Time              `json:"generated_at"`
}

// Clamp01 clamps a confidence value to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ClampSigned clamps a sentiment value to [-1,1].
func ClampSigned(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
