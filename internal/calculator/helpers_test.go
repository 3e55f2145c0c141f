package calculator

import (
	"math"
	"testing"
	"time"

	"SignalScope/internal/model"
)

const tolerance = 1e-6

var baseDate = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

// barsFromCloses builds daily bars with high/low one unit around each close.
func barsFromCloses(closes []float64) []model.Bar {
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{
			Date:   baseDate.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1_000_000,
		}
	}
	return bars
}

func constantBars(n int, price float64) []model.Bar {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = price
	}
	return barsFromCloses(closes)
}

func rampBars(n int) []model.Bar {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	return barsFromCloses(closes)
}

// wavyBars produces a deterministic noisy series with varying volume.
func wavyBars(n int) []model.Bar {
	bars := make([]model.Bar, n)
	for i := range bars {
		x := float64(i)
		c := 100 + 8*math.Sin(x/5) + 3*math.Cos(x*1.7)
		bars[i] = model.Bar{
			Date:   baseDate.AddDate(0, 0, i),
			Open:   c - 0.5*math.Sin(x),
			High:   c + 1.5 + math.Abs(math.Sin(x*0.9)),
			Low:    c - 1.5 - math.Abs(math.Cos(x*1.1)),
			Close:  c,
			Volume: int64(500_000 + 10_000*(i%17)),
		}
	}
	return bars
}

func assertClose(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > tolerance*math.Max(1, math.Abs(want)) {
		t.Errorf("%s: got %.8f, want %.8f", name, got, want)
	}
}
