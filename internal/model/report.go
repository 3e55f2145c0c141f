package model

import "time"

// Report is the full output of one analysis run.
// Envelope fields (Symbol..Source) are filled by the service layer.
type Report struct {
	Symbol      string    `json:"symbol,omitempty"`
	Timeframe   string    `json:"timeframe,omitempty"`
	Source      string    `json:"source,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
	// Cached is set when the report was served from the result cache.
	Cached      bool      `json:"cached,omitempty"`
	Bars        int       `json:"bars"`
	LastClose   float64   `json:"last_close"`

	SMA        map[int][]Point   `json:"sma,omitempty"`
	EMA        map[int][]Point   `json:"ema,omitempty"`
	RSI        []Point           `json:"rsi,omitempty"`
	MACD       []MACDPoint       `json:"macd,omitempty"`
	Bollinger  []BandPoint       `json:"bollinger,omitempty"`
	Stochastic []StochasticPoint `json:"stochastic,omitempty"`
	CCI        []Point           `json:"cci,omitempty"`
	ADX        []ADXPoint        `json:"adx,omitempty"`
	OBV        []Point           `json:"obv,omitempty"`
	VWAP       []Point           `json:"vwap,omitempty"`

	Fibonacci         []FibLevel         `json:"fibonacci,omitempty"`
	Pivot             *PivotPoints       `json:"pivot,omitempty"`
	SupportResistance *SupportResistance `json:"support_resistance,omitempty"`

	Signals []Signal `json:"signals"`
	Rating  Rating   `json:"rating"`
}
