package calculator

import (
	"math"

	"SignalScope/internal/model"
)

// BollingerBands computes SMA-centred bands at multiplier population standard
// deviations. Price carries the bar's close so callers can classify breakouts.
func BollingerBands(bars []model.Bar, period int, multiplier float64) []model.BandPoint {
	if period <= 0 || len(bars) < period {
		return nil
	}
	closes := model.Closes(bars)
	out := make([]model.BandPoint, 0, len(bars)-period+1)
	for i := period - 1; i < len(bars); i++ {
		window := closes[i-period+1 : i+1]
		middle := mean(window)
		variance := 0.0
		for _, c := range window {
			variance += (c - middle) * (c - middle)
		}
		sd := math.Sqrt(variance / float64(period))

		p := model.BandPoint{
			Date:   bars[i].Date,
			Upper:  middle + multiplier*sd,
			Middle: middle,
			Lower:  middle - multiplier*sd,
			Price:  bars[i].Close,
		}
		p.Bandwidth = (p.Upper - p.Lower) / middle
		out = append(out, p)
	}
	return out
}
