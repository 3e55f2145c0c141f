package strategy

import (
	"math"

	"SignalScope/internal/model"
)

// Oscillator thresholds.
const (
	rsiOverbought   = 70
	rsiOversold     = 30
	stochOverbought = 80
	stochOversold   = 20
	cciOverbought   = 100
	cciOversold     = -100
	adxStrong       = 25
	adxModerate     = 20
)

// scoreRSI classifies the latest RSI value.
// Strength: distance from 50 scaled to 0..100.
func scoreRSI(rsi float64) model.Signal {
	return model.Signal{
		Kind:     model.KindRSI,
		Value:    rsi,
		Reading:  band(rsi, rsiOverbought, rsiOversold),
		Strength: clamp(math.Abs(50-rsi) / 50 * 100),
	}.WithAction()
}

// scoreMACD classifies the latest histogram. Zero is bearish.
func scoreMACD(p model.MACDPoint) model.Signal {
	reading := model.ReadingBearish
	if p.Histogram > 0 {
		reading = model.ReadingBullish
	}
	return model.Signal{
		Kind:     model.KindMACD,
		Value:    p.Histogram,
		Reading:  reading,
		Strength: clamp(math.Abs(p.Histogram) / 2 * 100),
	}.WithAction()
}

// scoreBollinger classifies the latest close against its bands and reports
// the bandwidth as the signal value.
func scoreBollinger(p model.BandPoint) model.Signal {
	reading := model.ReadingNeutral
	switch {
	case p.Price > p.Upper:
		reading = model.ReadingOverbought
	case p.Price < p.Lower:
		reading = model.ReadingOversold
	}
	return model.Signal{
		Kind:     model.KindBollinger,
		Value:    p.Bandwidth,
		Reading:  reading,
		Strength: clamp(p.Bandwidth * 100),
	}.WithAction()
}

func scoreStochastic(p model.StochasticPoint) model.Signal {
	return model.Signal{
		Kind:     model.KindStochastic,
		Value:    p.K,
		Reading:  band(p.K, stochOverbought, stochOversold),
		Strength: clamp(math.Abs(50-p.K) / 50 * 100),
	}.WithAction()
}

func scoreCCI(cci float64) model.Signal {
	return model.Signal{
		Kind:     model.KindCCI,
		Value:    cci,
		Reading:  band(cci, cciOverbought, cciOversold),
		Strength: clamp(math.Abs(cci) / 200 * 100),
	}.WithAction()
}

// scoreADX labels trend strength. It never votes BUY or SELL.
func scoreADX(p model.ADXPoint) model.Signal {
	reading := model.ReadingWeak
	switch {
	case p.ADX > adxStrong:
		reading = model.ReadingStrong
	case p.ADX > adxModerate:
		reading = model.ReadingModerate
	}
	return model.Signal{
		Kind:     model.KindADX,
		Value:    p.ADX,
		Reading:  reading,
		Strength: clamp(p.ADX),
	}.WithAction()
}

// band maps a value to overbought above upper, oversold below lower.
func band(v, upper, lower float64) model.Reading {
	switch {
	case v > upper:
		return model.ReadingOverbought
	case v < lower:
		return model.ReadingOversold
	default:
		return model.ReadingNeutral
	}
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}
