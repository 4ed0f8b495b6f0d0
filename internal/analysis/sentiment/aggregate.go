package sentiment

import (
	"math"

	"github.com/pranavdhawann/stock-sentiment-analysis/pkg/models"
)

// Aggregate folds per-item sentiments into one overall label with a
// confidence, using a confidence-weighted mean: each item's +1/-1/0
// score contributes in proportion to its own confidence. The reduction
// is order-independent.
//
// An earlier revision of this service classified on raw category counts
// instead; the weighted-mean policy is the one kept here so that
// low-confidence items influence the outcome proportionally.
func Aggregate(items []models.NewsItem) models.Scored {
	if len(items) == 0 {
		return models.Scored{Label: models.SentimentNeutral, Confidence: 0.5}
	}

	var weightedSum, confSum float64
	for _, item := range items {
		conf := models.Clamp01(item.Confidence)
		weightedSum += labelScore(item.Sentiment) * conf
		confSum += conf
	}

	var weighted float64
	if confSum > 0 {
		weighted = weightedSum / confSum
	}
	avgConf := confSum / float64(len(items))

	switch {
	case weighted >= 0.3:
		return models.Scored{
			Label:      models.SentimentPositive,
			Confidence: models.Clamp01(math.Min(0.95, avgConf+0.1)),
		}
	case weighted <= -0.3:
		return models.Scored{
			Label:      models.SentimentNegative,
			Confidence: models.Clamp01(math.Min(0.95, avgConf+0.1)),
		}
	default:
		return models.Scored{
			Label:      models.SentimentNeutral,
			Confidence: models.Clamp01(avgConf),
		}
	}
}

// labelScore maps a sentiment label to its numeric contribution.
// Volatile counts as neutral for aggregation.
func labelScore(label models.SentimentLabel) float64 {
	switch label {
	case models.SentimentPositive:
		return 1
	case models.SentimentNegative:
		return -1
	default:
		return 0
	}
}
