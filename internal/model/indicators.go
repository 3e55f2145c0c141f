package model

import "time"

// Point is one value of a scalar indicator (SMA, EMA, RSI, CCI, OBV, VWAP).
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// MACDPoint holds the MACD line, its signal line and the histogram.
type MACDPoint struct {
	Date      time.Time `json:"date"`
	MACD      float64   `json:"macd"`
	Signal    float64   `json:"signal"`
	Histogram float64   `json:"histogram"`
}

// BandPoint holds one Bollinger Bands sample.
type BandPoint struct {
	Date      time.Time `json:"date"`
	Upper     float64   `json:"upper"`
	Middle    float64   `json:"middle"`
	Lower     float64   `json:"lower"`
	Price     float64   `json:"price"`
	Bandwidth float64   `json:"bandwidth"`
}

// StochasticPoint holds %K and %D. %D equals %K (no separate smoothing).
type StochasticPoint struct {
	Date time.Time `json:"date"`
	K    float64   `json:"k"`
	D    float64   `json:"d"`
}

// ADXPoint holds the windowed directional index and both directional indicators.
type ADXPoint struct {
	Date    time.Time `json:"date"`
	ADX     float64   `json:"adx"`
	PlusDI  float64   `json:"plus_di"`
	MinusDI float64   `json:"minus_di"`
}

// FibLevel is one Fibonacci retracement level.
type FibLevel struct {
	Label string  `json:"label"`
	Ratio float64 `json:"ratio"`
	Value float64 `json:"value"`
}

// PivotPoints are the classic floor-trader levels of the last bar.
type PivotPoints struct {
	Pivot float64 `json:"pivot"`
	R1    float64 `json:"r1"`
	R2    float64 `json:"r2"`
	R3    float64 `json:"r3"`
	S1    float64 `json:"s1"`
	S2    float64 `json:"s2"`
	S3    float64 `json:"s3"`
}

// SupportResistance holds empirical levels taken from local extrema.
type SupportResistance struct {
	Supports     []float64 `json:"supports"`
	Resistances  []float64 `json:"resistances"`
	CurrentPrice float64   `json:"current_price"`
}
