package sentiment

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pranavdhawann/stock-sentiment-analysis/pkg/models"
)

func item(label models.SentimentLabel, conf float64) models.NewsItem {
	return models.NewsItem{Title: "t", Sentiment: label, Confidence: conf}
}

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(nil)
	if got.Label != models.SentimentNeutral || got.Confidence != 0.5 {
		t.Errorf("Aggregate(nil) = %+v, want {Neutral 0.5}", got)
	}
	got = Aggregate([]models.NewsItem{})
	if got.Label != models.SentimentNeutral || got.Confidence != 0.5 {
		t.Errorf("Aggregate([]) = %+v, want {Neutral 0.5}", got)
	}
}

func TestAggregateWeightedScenario(t *testing.T) {
	// 6 Positive at 0.8, 1 Negative at 0.6, 1 Neutral at 0.5:
	// weighted = (6*0.8 - 0.6) / (6*0.8 + 0.6 + 0.5) ≈ 0.745 → Positive
	// avgConf = 5.9/8 = 0.7375 → confidence = min(0.95, 0.8375)
	items := []models.NewsItem{
		item(models.SentimentPositive, 0.8), item(models.SentimentPositive, 0.8),
		item(models.SentimentPositive, 0.8), item(models.SentimentPositive, 0.8),
		item(models.SentimentPositive, 0.8), item(models.SentimentPositive, 0.8),
		item(models.SentimentNegative, 0.6),
		item(models.SentimentNeutral, 0.5),
	}

	got := Aggregate(items)
	if got.Label != models.SentimentPositive {
		t.Fatalf("expected Positive, got %+v", got)
	}
	if math.Abs(got.Confidence-0.8375) > 1e-9 {
		t.Errorf("expected confidence 0.8375, got %v", got.Confidence)
	}
}

func TestAggregateNegative(t *testing.T) {
	items := []models.NewsItem{
		item(models.SentimentNegative, 0.9),
		item(models.SentimentNegative, 0.7),
		item(models.SentimentPositive, 0.3),
	}
	got := Aggregate(items)
	if got.Label != models.SentimentNegative {
		t.Errorf("expected Negative, got %+v", got)
	}
}

func TestAggregateNeutralBand(t *testing.T) {
	items := []models.NewsItem{
		item(models.SentimentPositive, 0.6),
		item(models.SentimentNegative, 0.6),
	}
	got := Aggregate(items)
	if got.Label != models.SentimentNeutral {
		t.Errorf("expected Neutral for balanced input, got %+v", got)
	}
	if got.Confidence != 0.6 {
		t.Errorf("expected avg confidence 0.6, got %v", got.Confidence)
	}
}

func TestAggregateVolatileCountsAsNeutral(t *testing.T) {
	items := []models.NewsItem{
		item(models.SentimentVolatile, 0.9),
		item(models.SentimentVolatile, 0.9),
	}
	got := Aggregate(items)
	if got.Label != models.SentimentNeutral {
		t.Errorf("expected Neutral for all-volatile input, got %+v", got)
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	items := []models.NewsItem{
		item(models.SentimentPositive, 0.8), item(models.SentimentNegative, 0.6),
		item(models.SentimentNeutral, 0.5), item(models.SentimentPositive, 0.33),
		item(models.SentimentVolatile, 0.77), item(models.SentimentNegative, 0.21),
	}
	want := Aggregate(items)

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		shuffled := make([]models.NewsItem, len(items))
		copy(shuffled, items)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		got := Aggregate(shuffled)
		if got.Label != want.Label || math.Abs(got.Confidence-want.Confidence) > 1e-12 {
			t.Fatalf("aggregation not order-independent: %+v vs %+v", got, want)
		}
	}
}

func TestAggregateConfidenceCapped(t *testing.T) {
	var items []models.NewsItem
	for i := 0; i < 10; i++ {
		items = append(items, item(models.SentimentPositive, 1.0))
	}
	got := Aggregate(items)
	if got.Confidence != 0.95 {
		t.Errorf("expected confidence capped at 0.95, got %v", got.Confidence)
	}
}
