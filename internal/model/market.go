package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformedSeries is returned when a bar series violates the OHLCV invariants.
var ErrMalformedSeries = errors.New("malformed bar series")

// Bar represents a single daily OHLCV sample.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// TypicalPrice returns (high+low+close)/3.
func (b Bar) TypicalPrice() float64 {
	return (b.High + b.Low + b.Close) / 3
}

// Series holds bars ordered oldest first.
type Series struct {
	Symbol    string
	Timeframe string
	Source    string
	Bars      []Bar
	FetchedAt time.Time
}

// Closes extracts the close prices of bars.
func Closes(bars []Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

// ValidateBars checks dates are strictly increasing, prices are positive and
// consistent with the bar range, and volume is non-negative.
func ValidateBars(bars []Bar) error {
	for i, b := range bars {
		switch {
		case b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0:
			return fmt.Errorf("%w: bar %d: non-positive price", ErrMalformedSeries, i)
		case b.Low > b.High:
			return fmt.Errorf("%w: bar %d: low %.4f above high %.4f", ErrMalformedSeries, i, b.Low, b.High)
		case b.Open < b.Low || b.Open > b.High:
			return fmt.Errorf("%w: bar %d: open %.4f outside [%.4f, %.4f]", ErrMalformedSeries, i, b.Open, b.Low, b.High)
		case b.Close < b.Low || b.Close > b.High:
			return fmt.Errorf("%w: bar %d: close %.4f outside [%.4f, %.4f]", ErrMalformedSeries, i, b.Close, b.Low, b.High)
		case b.Volume < 0:
			return fmt.Errorf("%w: bar %d: negative volume", ErrMalformedSeries, i)
		}
		if i > 0 && !b.Date.After(bars[i-1].Date) {
			return fmt.Errorf("%w: bar %d: date %s not after %s", ErrMalformedSeries, i,
				b.Date.Format("2006-01-02"), bars[i-1].Date.Format("2006-01-02"))
		}
	}
	return nil
}
