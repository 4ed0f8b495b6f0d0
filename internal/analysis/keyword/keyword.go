// Package keyword builds the keyword-cloud data from news text.
package keyword

import (
	"sort"
	"strings"

	"github.com/pranavdhawann/stock-sentiment-analysis/internal/analysis/lexicon"
	"github.com/pranavdhawann/stock-sentiment-analysis/pkg/models"
)

const (
	maxKeywords = 15
	minTokenLen = 3
	maxWeight   = 20
)

// fallbackKeywords is returned when extraction yields nothing.
var fallbackKeywords = []models.Keyword{
	{Text: "market", Weight: 10, Sentiment: "neutral"},
	{Text: "stock", Weight: 8, Sentiment: "neutral"},
	{Text: "trading", Weight: 6, Sentiment: "neutral"},
	{Text: "investors", Weight: 6, Sentiment: "neutral"},
	{Text: "analysis", Weight: 4, Sentiment: "neutral"},
}

// Extract returns the most frequent keywords across all item text,
// most salient first, capped at 15. Ties keep first-seen order.
// Empty input or failed extraction falls back to a fixed generic list.
func Extract(items []models.NewsItem) (keywords []models.Keyword) {
	defer func() {
		if r := recover(); r != nil {
			keywords = fallback()
		}
	}()

	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(item.Text())
		sb.WriteByte(' ')
	}

	counts := map[string]int{}
	var order []string
	for _, token := range tokenize(sb.String()) {
		if lexicon.StopWords[token] {
			continue
		}
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}

	if len(order) == 0 {
		return fallback()
	}

	// Descending frequency; SliceStable keeps first-seen order on ties.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}

	keywords = make([]models.Keyword, 0, len(order))
	for _, token := range order {
		weight := counts[token] * 2
		if weight > maxWeight {
			weight = maxWeight
		}
		keywords = append(keywords, models.Keyword{
			Text:      token,
			Weight:    weight,
			Sentiment: tag(token),
		})
	}
	return keywords
}

// tokenize splits text into lowercase alphabetic runs of length ≥3.
func tokenize(text string) []string {
	var tokens []string
	var current strings.Builder
	flush := func() {
		if current.Len() >= minTokenLen {
			tokens = append(tokens, current.String())
		}
		current.Reset()
	}
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// tag looks a token up in the three sentiment vocabularies. Tokens
// outside every list read as neutral in the cloud.
func tag(token string) string {
	switch {
	case lexicon.Positive[token]:
		return "positive"
	case lexicon.Negative[token]:
		return "negative"
	case lexicon.Neutral[token]:
		return "neutral"
	default:
		return "neutral"
	}
}

func fallback() []models.Keyword {
	return append([]models.Keyword{}, fallbackKeywords...)
}
