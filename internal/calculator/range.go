package calculator

import (
	"math"

	"SignalScope/internal/model"
)

// windowRange scans bars[start..end] inclusive and returns the highest high and lowest low.
func windowRange(bars []model.Bar, start, end int) (high, low float64) {
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i <= end; i++ {
		if bars[i].High > high {
			high = bars[i].High
		}
		if bars[i].Low < low {
			low = bars[i].Low
		}
	}
	return high, low
}

// closeRange returns the maximum and minimum close over the whole series.
func closeRange(bars []model.Bar) (high, low float64) {
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars {
		high = math.Max(high, b.Close)
		low = math.Min(low, b.Close)
	}
	return high, low
}

// rangePosition returns where value sits within [low, high] as 0..100.
// A flat range places the value at the midpoint.
func rangePosition(value, high, low float64) float64 {
	if high == low {
		return 50
	}
	pos := (value - low) / (high - low) * 100
	if pos < 0 {
		pos = 0
	}
	if pos > 100 {
		pos = 100
	}
	return pos
}
