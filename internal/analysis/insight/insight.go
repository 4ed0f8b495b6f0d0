// Package insight derives a small dashboard summary from scored news:
// extractive key points, a sentiment tally, a market outlook line, and
// keyword-driven risk factors and opportunities.
package insight

import (
	"sort"
	"strings"

	"github.com/pranavdhawann/stock-sentiment-analysis/internal/analysis/lexicon"
	"github.com/pranavdhawann/stock-sentiment-analysis/pkg/models"
)

const (
	maxKeyPoints  = 3
	maxFactors    = 3
	minSegmentLen = 20
)

// riskKeywords maps scanned keywords to their display phrases, in scan order.
var riskKeywords = []struct{ keyword, phrase string }{
	{"regulatory", "Regulatory concerns"},
	{"competition", "Competitive pressure"},
	{"challenge", "Operational challenges"},
}

var opportunityKeywords = []struct{ keyword, phrase string }{
	{"growth", "Growth potential"},
	{"partnership", "Strategic partnerships"},
	{"expansion", "Market expansion"},
}

var defaultRisks = []string{"Market volatility", "Economic uncertainty"}
var defaultOpportunities = []string{"Market recovery potential", "Innovation opportunities"}

// Synthesize builds Insights from scored news items. It never fails:
// any internal panic degrades to the fixed neutral Insights object.
func Synthesize(items []models.NewsItem, symbol, companyName string) (ins models.Insights) {
	defer func() {
		if r := recover(); r != nil {
			ins = neutralInsights()
		}
	}()

	if len(items) == 0 {
		return neutralInsights()
	}

	summary := tally(items)
	total := float64(len(items))
	posRatio := float64(summary[string(models.SentimentPositive)]) / total
	negRatio := float64(summary[string(models.SentimentNegative)]) / total

	return models.Insights{
		KeyPoints:        keyPoints(items, symbol, companyName),
		SentimentSummary: summary,
		MarketOutlook:    outlook(posRatio, negRatio),
		RiskFactors:      factors(items, negRatio, riskKeywords, defaultRisks, "High negative sentiment in recent news"),
		Opportunities:    factors(items, posRatio, opportunityKeywords, defaultOpportunities, "Strong positive sentiment in recent news"),
	}
}

// keyPoints runs extractive summarization: split the concatenated news
// text into sentence-like segments, score each against the important-term
// and sentiment vocabularies, and keep the top three.
func keyPoints(items []models.NewsItem, symbol, companyName string) []string {
	// Titles rarely end with punctuation, so join title and summary with
	// an explicit sentence boundary to keep them in separate segments.
	var sb strings.Builder
	for _, item := range items {
		if item.Title != "" {
			sb.WriteString(item.Title)
			sb.WriteString(". ")
		}
		if item.Summary != "" {
			sb.WriteString(item.Summary)
			sb.WriteString(". ")
		}
	}

	type scoredSegment struct {
		text  string
		score int
		index int
	}

	symbolLower := strings.ToLower(symbol)
	companyLower := strings.ToLower(companyName)

	var segments []scoredSegment
	for i, seg := range strings.Split(sb.String(), ". ") {
		seg = strings.TrimSpace(seg)
		if len(seg) < minSegmentLen {
			continue
		}

		lower := strings.ToLower(seg)
		score := 0
		for _, term := range lexicon.Important {
			score += 2 * strings.Count(lower, term)
		}
		if (symbolLower != "" && strings.Contains(lower, symbolLower)) ||
			(companyLower != "" && strings.Contains(lower, companyLower)) {
			score++
		}
		for _, word := range strings.Fields(lower) {
			word = strings.Trim(word, ".,!?\"'()[]{}:;")
			if lexicon.Positive[word] {
				score++
			}
			if lexicon.Negative[word] {
				score++
			}
		}

		if score > 0 {
			segments = append(segments, scoredSegment{text: seg, score: score, index: i})
		}
	}

	// Stable on ties: original order preserved.
	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].score > segments[j].score
	})

	points := []string{}
	for _, s := range segments {
		points = append(points, s.text)
		if len(points) == maxKeyPoints {
			break
		}
	}
	return points
}

// tally counts items per label, zero-filled for absent labels.
func tally(items []models.NewsItem) map[string]int {
	summary := map[string]int{
		string(models.SentimentPositive): 0,
		string(models.SentimentNegative): 0,
		string(models.SentimentNeutral):  0,
		string(models.SentimentVolatile): 0,
	}
	for _, item := range items {
		summary[string(item.Sentiment)]++
	}
	delete(summary, "") // unscored items do not get their own bucket
	return summary
}

func outlook(posRatio, negRatio float64) string {
	switch {
	case posRatio > 0.6:
		return "Bullish - strong positive sentiment across recent coverage"
	case negRatio > 0.6:
		return "Bearish - negative sentiment dominates recent coverage"
	case posRatio > negRatio:
		return "Cautiously optimistic - positive coverage has the edge"
	case negRatio > posRatio:
		return "Cautious - negative coverage has the edge"
	default:
		return "Neutral outlook - sentiment is evenly balanced"
	}
}

// factors assembles risk factors or opportunities: seed on a sentiment
// ratio above 0.3, then scan items for keywords, appending each matched
// phrase at most once in keyword order, capped at three, with a fixed
// default when nothing matched.
func factors(items []models.NewsItem, ratio float64, keywords []struct{ keyword, phrase string }, defaults []string, seed string) []string {
	out := []string{}
	if ratio > 0.3 {
		out = append(out, seed)
	}

	for _, kw := range keywords {
		if len(out) == maxFactors {
			break
		}
		for _, item := range items {
			if strings.Contains(strings.ToLower(item.Text()), kw.keyword) {
				out = append(out, kw.phrase)
				break
			}
		}
	}

	if len(out) == 0 {
		return append([]string{}, defaults...)
	}
	if len(out) > maxFactors {
		out = out[:maxFactors]
	}
	return out
}

func neutralInsights() models.Insights {
	return models.Insights{
		KeyPoints: []string{},
		SentimentSummary: map[string]int{
			string(models.SentimentPositive): 0,
			string(models.SentimentNegative): 0,
			string(models.SentimentNeutral):  0,
			string(models.SentimentVolatile): 0,
		},
		MarketOutlook: "Neutral outlook - insufficient news coverage",
		RiskFactors:   append([]string{}, defaultRisks...),
		Opportunities: append([]string{}, defaultOpportunities...),
	}
}
