package analysis

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"SignalScope/internal/calculator"
)

var (
	// ErrInvalidParams is returned when a Params value fails validation.
	ErrInvalidParams = errors.New("invalid analysis params")
	// ErrUnknownIndicator is returned for a toggle name outside IndicatorNames.
	ErrUnknownIndicator = errors.New("unknown indicator")
)

var validate = validator.New()

// Indicator names accepted by NewToggles.
const (
	IndicatorRSI               = "rsi"
	IndicatorMACD              = "macd"
	IndicatorBollinger         = "bollinger"
	IndicatorMovingAverage     = "movingAverage"
	IndicatorStochastic        = "stochastic"
	IndicatorCCI               = "cci"
	IndicatorADX               = "adx"
	IndicatorOBV               = "obv"
	IndicatorVWAP              = "vwap"
	IndicatorFibonacci         = "fibonacci"
	IndicatorPivot             = "pivot"
	IndicatorSupportResistance = "supportResistance"
)

// IndicatorNames lists every toggleable indicator.
var IndicatorNames = []string{
	IndicatorRSI, IndicatorMACD, IndicatorBollinger, IndicatorMovingAverage,
	IndicatorStochastic, IndicatorCCI, IndicatorADX, IndicatorOBV,
	IndicatorVWAP, IndicatorFibonacci, IndicatorPivot, IndicatorSupportResistance,
}

// Toggles records which indicators an analysis computes.
type Toggles struct {
	RSI               bool `json:"rsi"`
	MACD              bool `json:"macd"`
	Bollinger         bool `json:"bollinger"`
	MovingAverage     bool `json:"movingAverage"`
	Stochastic        bool `json:"stochastic"`
	CCI               bool `json:"cci"`
	ADX               bool `json:"adx"`
	OBV               bool `json:"obv"`
	VWAP              bool `json:"vwap"`
	Fibonacci         bool `json:"fibonacci"`
	Pivot             bool `json:"pivot"`
	SupportResistance bool `json:"supportResistance"`
}

// AllEnabled returns toggles with every indicator on.
func AllEnabled() Toggles {
	t, _ := NewToggles(nil)
	return t
}

// NewToggles builds toggles from a name->enabled map. Names missing from the
// map stay enabled; names outside IndicatorNames are rejected.
func NewToggles(flags map[string]bool) (Toggles, error) {
	var t Toggles
	for _, name := range IndicatorNames {
		*t.field(name) = true
	}
	var unknown []string
	for name, on := range flags {
		f := t.field(name)
		if f == nil {
			unknown = append(unknown, name)
			continue
		}
		*f = on
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Toggles{}, fmt.Errorf("%w: %s", ErrUnknownIndicator, strings.Join(unknown, ", "))
	}
	return t, nil
}

// Enabled reports whether the named indicator is on. Unknown names are off.
func (t Toggles) Enabled(name string) bool {
	f := t.field(name)
	return f != nil && *f
}

// Map returns the toggles keyed by indicator name.
func (t Toggles) Map() map[string]bool {
	m := make(map[string]bool, len(IndicatorNames))
	for _, name := range IndicatorNames {
		m[name] = t.Enabled(name)
	}
	return m
}

func (t *Toggles) field(name string) *bool {
	switch name {
	case IndicatorRSI:
		return &t.RSI
	case IndicatorMACD:
		return &t.MACD
	case IndicatorBollinger:
		return &t.Bollinger
	case IndicatorMovingAverage:
		return &t.MovingAverage
	case IndicatorStochastic:
		return &t.Stochastic
	case IndicatorCCI:
		return &t.CCI
	case IndicatorADX:
		return &t.ADX
	case IndicatorOBV:
		return &t.OBV
	case IndicatorVWAP:
		return &t.VWAP
	case IndicatorFibonacci:
		return &t.Fibonacci
	case IndicatorPivot:
		return &t.Pivot
	case IndicatorSupportResistance:
		return &t.SupportResistance
	}
	return nil
}

// Params holds every tunable of an analysis run.
type Params struct {
	RSIPeriod           int                      `json:"rsi_period" validate:"min=1,max=500"`
	StochasticPeriod    int                      `json:"stochastic_period" validate:"min=1,max=500"`
	ADXPeriod           int                      `json:"adx_period" validate:"min=1,max=500"`
	BollingerPeriod     int                      `json:"bollinger_period" validate:"min=1,max=500"`
	BollingerMultiplier float64                  `json:"bollinger_multiplier" validate:"gt=0,lte=10"`
	CCIPeriod           int                      `json:"cci_period" validate:"min=1,max=500"`
	SMAPeriods          []int                    `json:"sma_periods" validate:"max=8,dive,min=1,max=500"`
	EMAPeriods          []int                    `json:"ema_periods" validate:"max=8,dive,min=1,max=500"`
	RSIConvention       calculator.RSIConvention `json:"rsi_convention" validate:"oneof=0 1"`
	Toggles             Toggles                  `json:"toggles"`
}

// DefaultParams returns the standard periods with every indicator enabled.
func DefaultParams() Params {
	return Params{
		RSIPeriod:           14,
		StochasticPeriod:    14,
		ADXPeriod:           14,
		BollingerPeriod:     20,
		BollingerMultiplier: 2,
		CCIPeriod:           20,
		SMAPeriods:          []int{20, 50},
		EMAPeriods:          []int{12, 26},
		RSIConvention:       calculator.RSIBounded,
		Toggles:             AllEnabled(),
	}
}

// Validate checks the struct tags of p.
func (p Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

// ParseRSIConvention maps "bounded" or "dashboard" to a convention. An empty
// name selects the bounded convention.
func ParseRSIConvention(name string) (calculator.RSIConvention, error) {
	switch strings.ToLower(name) {
	case "", "bounded":
		return calculator.RSIBounded, nil
	case "dashboard":
		return calculator.RSIDashboard, nil
	}
	return 0, fmt.Errorf("%w: rsi convention %q", ErrInvalidParams, name)
}
