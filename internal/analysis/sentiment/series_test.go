package sentiment

import (
	"math/rand"
	"testing"

	"github.com/pranavdhawann/stock-sentiment-analysis/internal/catalog"
	"github.com/pranavdhawann/stock-sentiment-analysis/pkg/models"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return c
}

func pricePoints(prices ...float64) []models.PricePoint {
	pts := make([]models.PricePoint, len(prices))
	for i, p := range prices {
		pts[i] = models.PricePoint{Timestamp: int64(i) * 86_400_000, Price: p, Volume: 1000}
	}
	return pts
}

func TestGenerateAlignment(t *testing.T) {
	g := NewSeriesGenerator(testCatalog(t), rand.New(rand.NewSource(1)))
	points := pricePoints(100, 102, 99, 103, 103.5)

	series := g.Generate("AAPL", points)
	if len(series) != len(points) {
		t.Fatalf("expected %d points, got %d", len(points), len(series))
	}
	for i, sp := range series {
		if sp.Timestamp != points[i].Timestamp {
			t.Errorf("point %d timestamp %d not aligned with price %d", i, sp.Timestamp, points[i].Timestamp)
		}
	}
}

func TestGenerateBounds(t *testing.T) {
	g := NewSeriesGenerator(testCatalog(t), rand.New(rand.NewSource(2)))

	// High-volatility ticker and a violent price swing still stay in range.
	points := pricePoints(100, 300, 10, 500, 1, 1000)
	for _, symbol := range []string{"TSLA", "UNKNOWN"} {
		for trial := 0; trial < 50; trial++ {
			for _, sp := range g.Generate(symbol, points) {
				if sp.Sentiment < -1 || sp.Sentiment > 1 {
					t.Fatalf("%s sentiment %v out of [-1,1]", symbol, sp.Sentiment)
				}
			}
		}
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	cat := testCatalog(t)
	points := pricePoints(50, 51, 52)

	a := NewSeriesGenerator(cat, rand.New(rand.NewSource(42))).Generate("MSFT", points)
	b := NewSeriesGenerator(cat, rand.New(rand.NewSource(42))).Generate("MSFT", points)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different series at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGenerateEmptySeries(t *testing.T) {
	g := NewSeriesGenerator(testCatalog(t), rand.New(rand.NewSource(3)))
	if got := g.Generate("AAPL", nil); len(got) != 0 {
		t.Errorf("expected empty series, got %d points", len(got))
	}
}
