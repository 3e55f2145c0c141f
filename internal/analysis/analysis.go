// Package analysis runs the indicator engine over one bar series and
// assembles the signals and rating into a report.
package analysis

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"SignalScope/internal/calculator"
	"SignalScope/internal/model"
	"SignalScope/internal/strategy"
)

// Analyze validates bars and p, computes every enabled indicator concurrently,
// then synthesizes signals and the rating. Indicators without enough history
// are left empty and never cause an error.
func Analyze(bars []model.Bar, p Params) (*model.Report, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := model.ValidateBars(bars); err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	r := &model.Report{Bars: len(bars)}
	if len(bars) > 0 {
		r.LastClose = bars[len(bars)-1].Close
	}
	on := p.Toggles

	// each task writes only its own report fields
	var g errgroup.Group
	run := func(enabled bool, fn func()) {
		if enabled {
			g.Go(func() error {
				fn()
				return nil
			})
		}
	}

	run(on.MovingAverage, func() {
		r.SMA = make(map[int][]model.Point, len(p.SMAPeriods))
		for _, period := range p.SMAPeriods {
			r.SMA[period] = calculator.SMA(bars, period)
		}
		r.EMA = make(map[int][]model.Point, len(p.EMAPeriods))
		for _, period := range p.EMAPeriods {
			r.EMA[period] = calculator.EMA(bars, period)
		}
	})
	run(on.RSI, func() { r.RSI = calculator.RSIWithConvention(bars, p.RSIPeriod, p.RSIConvention) })
	run(on.MACD, func() { r.MACD = calculator.MACD(bars) })
	run(on.Bollinger, func() { r.Bollinger = calculator.BollingerBands(bars, p.BollingerPeriod, p.BollingerMultiplier) })
	run(on.Stochastic, func() { r.Stochastic = calculator.Stochastic(bars, p.StochasticPeriod) })
	run(on.CCI, func() { r.CCI = calculator.CCI(bars, p.CCIPeriod) })
	run(on.ADX, func() { r.ADX = calculator.ADX(bars, p.ADXPeriod) })
	run(on.OBV, func() { r.OBV = calculator.OBV(bars) })
	run(on.VWAP, func() { r.VWAP = calculator.VWAP(bars) })
	run(on.Fibonacci, func() { r.Fibonacci = calculator.FibonacciLevels(bars) })
	run(on.Pivot, func() { r.Pivot = calculator.PivotPoints(bars) })
	run(on.SupportResistance, func() { r.SupportResistance = calculator.SupportResistance(bars) })

	if err := g.Wait(); err != nil {
		return nil, err
	}

	strategy.Evaluate(r)
	return r, nil
}
