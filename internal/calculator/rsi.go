package calculator

import "SignalScope/internal/model"

// RSIConvention selects how windows without losses are scored.
type RSIConvention int

const (
	// RSIBounded maps a window with gains and no losses to 100 and a window
	// with neither gains nor losses to 50.
	RSIBounded RSIConvention = iota
	// RSIDashboard substitutes RS=100 whenever the average loss is zero, which
	// yields 100-100/101 for any lossless window.
	RSIDashboard
)

const dashboardRS = 100.0

// RSI computes the relative strength index with the bounded convention.
func RSI(bars []model.Bar, period int) []model.Point {
	return RSIWithConvention(bars, period, RSIBounded)
}

// RSIWithConvention computes RSI from simple (non-Wilder) averages of the
// gains and losses among the period deltas ending at each bar. The first point
// is at index period.
func RSIWithConvention(bars []model.Bar, period int, conv RSIConvention) []model.Point {
	if period <= 0 || len(bars) < period+1 {
		return nil
	}
	changes := make([]float64, len(bars))
	for i := 1; i < len(bars); i++ {
		changes[i] = bars[i].Close - bars[i-1].Close
	}

	out := make([]model.Point, 0, len(bars)-period)
	for i := period; i < len(bars); i++ {
		var avgGain, avgLoss float64
		for j := i - period + 1; j <= i; j++ {
			if changes[j] > 0 {
				avgGain += changes[j]
			} else {
				avgLoss -= changes[j]
			}
		}
		avgGain /= float64(period)
		avgLoss /= float64(period)
		out = append(out, model.Point{Date: bars[i].Date, Value: rsiValue(avgGain, avgLoss, conv)})
	}
	return out
}

func rsiValue(avgGain, avgLoss float64, conv RSIConvention) float64 {
	if avgLoss == 0 {
		if conv == RSIDashboard {
			return 100 - 100/(1+dashboardRS)
		}
		if avgGain == 0 {
			return 50
		}
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
