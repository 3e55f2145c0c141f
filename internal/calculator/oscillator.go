package calculator

import (
	"math"

	"SignalScope/internal/model"
)

const cciConstant = 0.015

// Stochastic computes %K over the trailing period of highs and lows.
// %D is reported equal to %K; no separate smoothing is applied.
func Stochastic(bars []model.Bar, period int) []model.StochasticPoint {
	if period <= 0 || len(bars) < period {
		return nil
	}
	out := make([]model.StochasticPoint, 0, len(bars)-period+1)
	for i := period - 1; i < len(bars); i++ {
		high, low := windowRange(bars, i-period+1, i)
		k := rangePosition(bars[i].Close, high, low)
		out = append(out, model.StochasticPoint{Date: bars[i].Date, K: k, D: k})
	}
	return out
}

// CCI computes the commodity channel index of typical prices. A window with
// zero mean absolute deviation reports 0.
func CCI(bars []model.Bar, period int) []model.Point {
	if period <= 0 || len(bars) < period {
		return nil
	}
	typical := make([]float64, len(bars))
	for i, b := range bars {
		typical[i] = b.TypicalPrice()
	}

	out := make([]model.Point, 0, len(bars)-period+1)
	for i := period - 1; i < len(bars); i++ {
		window := typical[i-period+1 : i+1]
		avg := mean(window)
		dev := 0.0
		for _, tp := range window {
			dev += math.Abs(tp - avg)
		}
		dev /= float64(period)

		cci := 0.0
		if dev != 0 {
			cci = (typical[i] - avg) / (cciConstant * dev)
		}
		out = append(out, model.Point{Date: bars[i].Date, Value: cci})
	}
	return out
}

// ADX computes the windowed directional index. Each point averages +DM, -DM
// and true range over the period bars ending at that bar and reports the
// resulting DX without Wilder smoothing. The first point is at index 2*period.
func ADX(bars []model.Bar, period int) []model.ADXPoint {
	if period <= 0 || len(bars) < 2*period+1 {
		return nil
	}
	n := len(bars)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	tr := make([]float64, n)
	for j := 1; j < n; j++ {
		cur, prev := bars[j], bars[j-1]
		up := cur.High - prev.High
		down := prev.Low - cur.Low
		if up > down && up > 0 {
			plusDM[j] = up
		}
		if down > up && down > 0 {
			minusDM[j] = down
		}
		tr[j] = math.Max(cur.High-cur.Low,
			math.Max(math.Abs(cur.High-prev.Close), math.Abs(cur.Low-prev.Close)))
	}

	out := make([]model.ADXPoint, 0, n-2*period)
	for i := 2 * period; i < n; i++ {
		lo := i - period + 1
		avgTR := mean(tr[lo : i+1])
		avgPlus := mean(plusDM[lo : i+1])
		avgMinus := mean(minusDM[lo : i+1])

		var plusDI, minusDI float64
		if avgTR != 0 {
			plusDI = avgPlus / avgTR * 100
			minusDI = avgMinus / avgTR * 100
		}
		dx := 0.0
		if sum := plusDI + minusDI; sum != 0 {
			dx = math.Abs(plusDI-minusDI) / sum * 100
		}
		out = append(out, model.ADXPoint{Date: bars[i].Date, ADX: dx, PlusDI: plusDI, MinusDI: minusDI})
	}
	return out
}
