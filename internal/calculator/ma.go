// Package calculator computes technical indicators over daily bar series.
//
// Every function is a pure transform of a bar slice. When there are fewer bars
// than an indicator's lookback window, the result is an empty (nil) series rather
// than an error. Outputs are aligned to a suffix of the input.
package calculator

import "SignalScope/internal/model"

// SMA computes the simple moving average of closes. The first point is at
// index period-1, giving len(bars)-period+1 points.
func SMA(bars []model.Bar, period int) []model.Point {
	if period <= 0 || len(bars) < period {
		return nil
	}
	out := make([]model.Point, 0, len(bars)-period+1)
	for i := period - 1; i < len(bars); i++ {
		sum := 0.0
		for j := i - period + 1; j <= i; j++ {
			sum += bars[j].Close
		}
		out = append(out, model.Point{Date: bars[i].Date, Value: sum / float64(period)})
	}
	return out
}

// EMA computes the exponential moving average of closes seeded with the first
// close. It yields one point per bar; early values lean toward the seed.
func EMA(bars []model.Bar, period int) []model.Point {
	if period <= 0 || len(bars) < period {
		return nil
	}
	values := emaSeries(model.Closes(bars), period)
	out := make([]model.Point, len(bars))
	for i, v := range values {
		out[i] = model.Point{Date: bars[i].Date, Value: v}
	}
	return out
}

// emaSeries runs the EMA recurrence over values without a length guard.
func emaSeries(values []float64, period int) []float64 {
	if len(values) == 0 {
		return nil
	}
	k := 2.0 / float64(period+1)
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = values[i]*k + out[i-1]*(1-k)
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
