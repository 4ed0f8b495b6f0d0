package sentiment

import (
	"math/rand"
	"sync"

	"github.com/pranavdhawann/stock-sentiment-analysis/internal/catalog"
	"github.com/pranavdhawann/stock-sentiment-analysis/pkg/models"
)

// SeriesGenerator produces the per-day sentiment series shown alongside
// the price chart.
//
// The series is synthetic: it mixes the ticker's catalog profile, a
// random factor, and day-over-day price movement. It is illustrative
// charting data, not measured news sentiment, and consumers must not
// treat it as such.
type SeriesGenerator struct {
	cat *catalog.Catalog

	mu  sync.Mutex // rand.Rand is not safe for concurrent use
	rng *rand.Rand
}

// NewSeriesGenerator builds a generator. The rand source is injected so
// tests can pin a seed.
func NewSeriesGenerator(cat *catalog.Catalog, rng *rand.Rand) *SeriesGenerator {
	return &SeriesGenerator{cat: cat, rng: rng}
}

// Generate returns one sentiment point per price point, index-aligned
// and in the same order. Values are clamped to [-1,1] and rounded to
// two decimals.
func (g *SeriesGenerator) Generate(symbol string, points []models.PricePoint) []models.SentimentSeriesPoint {
	profile := g.cat.SentimentProfile(symbol)

	g.mu.Lock()
	defer g.mu.Unlock()

	series := make([]models.SentimentSeriesPoint, 0, len(points))
	for i, p := range points {
		randomFactor := (g.rng.Float64()*2 - 1) * profile.Volatility

		var priceCorrelation float64
		if i > 0 && points[i-1].Price != 0 {
			priceCorrelation = (p.Price - points[i-1].Price) / points[i-1].Price * 0.5
		}

		value := models.ClampSigned(profile.Base + randomFactor + priceCorrelation)
		series = append(series, models.SentimentSeriesPoint{
			Timestamp: p.Timestamp,
			Sentiment: round2(value),
		})
	}
	return series
}
