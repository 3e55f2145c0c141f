package model

// Kind identifies the indicator a signal was derived from.
type Kind string

const (
	KindRSI        Kind = "RSI"
	KindMACD       Kind = "MACD"
	KindBollinger  Kind = "Bollinger Bands"
	KindStochastic Kind = "Stochastic"
	KindCCI        Kind = "CCI"
	KindADX        Kind = "ADX"
)

// Reading is the qualitative state of an indicator's latest value.
type Reading string

const (
	ReadingOverbought Reading = "overbought"
	ReadingOversold   Reading = "oversold"
	ReadingNeutral    Reading = "neutral"
	ReadingBullish    Reading = "bullish"
	ReadingBearish    Reading = "bearish"
	ReadingStrong     Reading = "strong"
	ReadingModerate   Reading = "moderate"
	ReadingWeak       Reading = "weak"
)

// Action is the directional recommendation attached to a signal.
type Action string

const (
	ActionBuy   Action = "BUY"
	ActionSell  Action = "SELL"
	ActionHold  Action = "HOLD"
	ActionTrend Action = "TREND"
	ActionRange Action = "RANGE"
)

// Action maps a reading to its directional vote.
func (r Reading) Action() Action {
	switch r {
	case ReadingOversold, ReadingBullish:
		return ActionBuy
	case ReadingOverbought, ReadingBearish:
		return ActionSell
	case ReadingStrong:
		return ActionTrend
	case ReadingModerate, ReadingWeak:
		return ActionRange
	default:
		return ActionHold
	}
}

// Signal is the classification of one indicator's latest point.
type Signal struct {
	Kind     Kind    `json:"indicator"`
	Value    float64 `json:"value"`
	Reading  Reading `json:"signal"`
	Action   Action  `json:"action"`
	Strength float64 `json:"strength"` // 0..100
}

// WithAction returns s with Action derived from its Reading.
func (s Signal) WithAction() Signal {
	s.Action = s.Reading.Action()
	return s
}

// RatingLabel is the consensus label of the technical rating.
type RatingLabel string

const (
	RatingStrongBuy  RatingLabel = "Strong Buy"
	RatingBuy        RatingLabel = "Buy"
	RatingNeutral    RatingLabel = "Neutral"
	RatingSell       RatingLabel = "Sell"
	RatingStrongSell RatingLabel = "Strong Sell"
)

// Rating aggregates all signals into one score.
type Rating struct {
	Label RatingLabel `json:"rating"`
	Score float64     `json:"score"` // 0..100
	Color string      `json:"color"`
	Buy   int         `json:"buy"`
	Sell  int         `json:"sell"`
	Hold  int         `json:"hold"`
	Total int         `json:"total"`
}
