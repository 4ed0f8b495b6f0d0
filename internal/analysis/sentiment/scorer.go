// Package sentiment classifies news text and folds per-item sentiments
// into an overall label for a ticker.
//
// Scoring blends a general-purpose VADER polarity analysis with a
// domain keyword bias from the fixed finance lexicon. The analyzer is
// a process-wide read-only instance built once at init; it holds no
// per-request state and is safe for concurrent use.
package sentiment

import (
	"math"
	"strings"
	"unicode"

	"github.com/jonreiter/govader"

	"github.com/pranavdhawann/stock-sentiment-analysis/internal/analysis/lexicon"
	"github.com/pranavdhawann/stock-sentiment-analysis/pkg/models"
)

var analyzer = govader.NewSentimentIntensityAnalyzer()

// Scorer classifies a single text into a sentiment label + confidence.
type Scorer struct{}

// NewScorer returns a scorer backed by the shared analyzer.
func NewScorer() *Scorer { return &Scorer{} }

// Score classifies text. It never fails: any internal panic degrades to
// {Neutral, 0.5}.
func (s *Scorer) Score(text string) (scored models.Scored) {
	scored = models.Scored{Label: models.SentimentNeutral, Confidence: 0.5}
	defer func() {
		if r := recover(); r != nil {
			scored = models.Scored{Label: models.SentimentNeutral, Confidence: 0.5}
		}
	}()

	normalized := normalize(text)
	if normalized == "" {
		return scored
	}

	compound := analyzer.PolarityScores(normalized).Compound
	combined := compound + lexicalBias(normalized)

	switch {
	case combined >= 0.2:
		scored = models.Scored{
			Label:      models.SentimentPositive,
			Confidence: math.Min(0.95, 0.6+math.Abs(combined)*0.4),
		}
	case combined <= -0.2:
		scored = models.Scored{
			Label:      models.SentimentNegative,
			Confidence: math.Min(0.95, 0.6+math.Abs(combined)*0.4),
		}
	default:
		scored = models.Scored{
			Label:      models.SentimentNeutral,
			Confidence: 0.5 + (0.2-math.Abs(combined))*0.5,
		}
	}

	scored.Confidence = models.Clamp01(round2(scored.Confidence))
	return scored
}

// ScoreItems annotates each unscored news item in place and returns the
// slice. Items already labeled by a provider are left untouched.
func (s *Scorer) ScoreItems(items []models.NewsItem) []models.NewsItem {
	for i := range items {
		if items[i].Sentiment.Valid() {
			continue
		}
		sc := s.Score(items[i].Text())
		items[i].Sentiment = sc.Label
		items[i].Confidence = sc.Confidence
	}
	return items
}

// normalize strips punctuation, lowercases, and collapses whitespace.
func normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
		// Punctuation and symbols are dropped.
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// lexicalBias shifts the polarity score by 0.1 per net finance-lexicon hit.
func lexicalBias(normalized string) float64 {
	pos, neg := 0, 0
	for _, word := range strings.Fields(normalized) {
		if lexicon.Positive[word] {
			pos++
		}
		if lexicon.Negative[word] {
			neg++
		}
	}
	return float64(pos-neg) * 0.1
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
