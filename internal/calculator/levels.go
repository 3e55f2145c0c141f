package calculator

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"SignalScope/internal/model"
)

var fibRatios = []struct {
	label string
	ratio float64
}{
	{"0%", 0},
	{"23.6%", 0.236},
	{"38.2%", 0.382},
	{"50%", 0.5},
	{"61.8%", 0.618},
	{"78.6%", 0.786},
	{"100%", 1},
}

// MinSupportResistanceBars is the shortest series SupportResistance scans.
const MinSupportResistanceBars = 20

const levelsPerSide = 3

// FibonacciLevels returns the seven retracement levels between the lowest and
// highest close, ordered from 0% to 100%.
func FibonacciLevels(bars []model.Bar) []model.FibLevel {
	if len(bars) == 0 {
		return nil
	}
	high, low := closeRange(bars)
	diff := high - low
	out := make([]model.FibLevel, len(fibRatios))
	for i, r := range fibRatios {
		out[i] = model.FibLevel{Label: r.label, Ratio: r.ratio, Value: low + diff*r.ratio}
	}
	out[len(out)-1].Value = high
	return out
}

// PivotPoints returns classic floor-trader pivots from the last bar.
func PivotPoints(bars []model.Bar) *model.PivotPoints {
	if len(bars) == 0 {
		return nil
	}
	b := bars[len(bars)-1]
	p := b.TypicalPrice()
	return &model.PivotPoints{
		Pivot: p,
		R1:    2*p - b.Low,
		R2:    p + (b.High - b.Low),
		R3:    b.High + 2*(p-b.Low),
		S1:    2*p - b.High,
		S2:    p - (b.High - b.Low),
		S3:    b.Low - 2*(b.High-p),
	}
}

// SupportResistance collects 3-point local highs as resistances and local lows
// as supports, rounds them to cents, and keeps the three of each closest to the
// last close. Resistances are returned descending, supports ascending.
func SupportResistance(bars []model.Bar) *model.SupportResistance {
	if len(bars) < MinSupportResistanceBars {
		return nil
	}
	var highs, lows []decimal.Decimal
	for i := 1; i < len(bars)-1; i++ {
		prev, cur, next := bars[i-1], bars[i], bars[i+1]
		if cur.High > prev.High && cur.High > next.High {
			highs = append(highs, decimal.NewFromFloat(cur.High).Round(2))
		}
		if cur.Low < prev.Low && cur.Low < next.Low {
			lows = append(lows, decimal.NewFromFloat(cur.Low).Round(2))
		}
	}

	price := bars[len(bars)-1].Close
	resistances := nearestLevels(highs, price)
	supports := nearestLevels(lows, price)
	sort.Sort(sort.Reverse(sort.Float64Slice(resistances)))
	sort.Float64s(supports)

	return &model.SupportResistance{
		Supports:     supports,
		Resistances:  resistances,
		CurrentPrice: price,
	}
}

// nearestLevels dedupes levels and returns up to levelsPerSide of them
// closest to price.
func nearestLevels(levels []decimal.Decimal, price float64) []float64 {
	seen := make(map[string]bool, len(levels))
	uniq := make([]float64, 0, len(levels))
	for _, l := range levels {
		key := l.StringFixed(2)
		if seen[key] {
			continue
		}
		seen[key] = true
		uniq = append(uniq, l.InexactFloat64())
	}
	sort.SliceStable(uniq, func(i, j int) bool {
		return math.Abs(uniq[i]-price) < math.Abs(uniq[j]-price)
	})
	if len(uniq) > levelsPerSide {
		uniq = uniq[:levelsPerSide]
	}
	return uniq
}
