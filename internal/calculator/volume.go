package calculator

import "SignalScope/internal/model"

// OBV computes on-balance volume seeded at zero on the first bar.
func OBV(bars []model.Bar) []model.Point {
	if len(bars) == 0 {
		return nil
	}
	out := make([]model.Point, len(bars))
	var obv int64
	for i, b := range bars {
		if i > 0 {
			switch prev := bars[i-1].Close; {
			case b.Close > prev:
				obv += b.Volume
			case b.Close < prev:
				obv -= b.Volume
			}
		}
		out[i] = model.Point{Date: b.Date, Value: float64(obv)}
	}
	return out
}

// VWAP computes the cumulative volume-weighted typical price from the first
// bar. Until any volume has traded the typical price itself is reported.
func VWAP(bars []model.Bar) []model.Point {
	if len(bars) == 0 {
		return nil
	}
	out := make([]model.Point, len(bars))
	var tpv, vol float64
	for i, b := range bars {
		tp := b.TypicalPrice()
		tpv += tp * float64(b.Volume)
		vol += float64(b.Volume)
		v := tp
		if vol > 0 {
			v = tpv / vol
		}
		out[i] = model.Point{Date: b.Date, Value: v}
	}
	return out
}
