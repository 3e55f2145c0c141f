package calculator

import "SignalScope/internal/model"

const (
	macdFast   = 12
	macdSlow   = 26
	macdSignal = 9
	// macdWarmup is the first bar index that gets a signal line.
	macdWarmup = 34
)

// MACD computes the 12/26 MACD line and a 9-period signal line. The signal at
// bar i is the 9-EMA of the last nine MACD values seeded at the oldest of them,
// so points start at index 34 and need at least 35 bars.
func MACD(bars []model.Bar) []model.MACDPoint {
	if len(bars) <= macdWarmup {
		return nil
	}
	closes := model.Closes(bars)
	fast := emaSeries(closes, macdFast)
	slow := emaSeries(closes, macdSlow)
	line := make([]float64, len(bars))
	for i := range line {
		line[i] = fast[i] - slow[i]
	}

	out := make([]model.MACDPoint, 0, len(bars)-macdWarmup)
	for i := macdWarmup; i < len(bars); i++ {
		window := emaSeries(line[i-macdSignal+1:i+1], macdSignal)
		signal := window[len(window)-1]
		out = append(out, model.MACDPoint{
			Date:      bars[i].Date,
			MACD:      line[i],
			Signal:    signal,
			Histogram: line[i] - signal,
		})
	}
	return out
}
