// Package strategy turns indicator output into signals and a consensus rating.
package strategy

import "SignalScope/internal/model"

// Tiers maps a BUY-share score to a rating label, highest first.
var Tiers = []struct {
	MinScore float64
	Label    model.RatingLabel
	Color    string
}{
	{70, model.RatingStrongBuy, "#4caf50"},
	{55, model.RatingBuy, "#8bc34a"},
	{45, model.RatingNeutral, "#ff9800"},
	{30, model.RatingSell, "#ff6b6b"},
}

// DefaultTier applies to scores below every entry in Tiers.
var DefaultTier = struct {
	Label model.RatingLabel
	Color string
}{model.RatingStrongSell, "#f44336"}

// neutralScore is reported when there is nothing to rate.
const neutralScore = 50

func mapTier(score float64) (model.RatingLabel, string) {
	for _, t := range Tiers {
		if score >= t.MinScore {
			return t.Label, t.Color
		}
	}
	return DefaultTier.Label, DefaultTier.Color
}

// Synthesize classifies the latest point of each computed indicator in the
// order RSI, MACD, Bollinger, Stochastic, CCI, ADX. Indicators with no points
// are left out.
func Synthesize(r *model.Report) []model.Signal {
	signals := make([]model.Signal, 0, 6)
	if n := len(r.RSI); n > 0 {
		signals = append(signals, scoreRSI(r.RSI[n-1].Value))
	}
	if n := len(r.MACD); n > 0 {
		signals = append(signals, scoreMACD(r.MACD[n-1]))
	}
	if n := len(r.Bollinger); n > 0 {
		signals = append(signals, scoreBollinger(r.Bollinger[n-1]))
	}
	if n := len(r.Stochastic); n > 0 {
		signals = append(signals, scoreStochastic(r.Stochastic[n-1]))
	}
	if n := len(r.CCI); n > 0 {
		signals = append(signals, scoreCCI(r.CCI[n-1].Value))
	}
	if n := len(r.ADX); n > 0 {
		signals = append(signals, scoreADX(r.ADX[n-1]))
	}
	return signals
}

// Rate folds signals into a rating. The score is the share of BUY actions
// among all signals, so HOLD, TREND and RANGE dilute it. An empty set is
// Neutral at 50.
func Rate(signals []model.Signal) model.Rating {
	rating := model.Rating{Total: len(signals)}
	for _, s := range signals {
		switch s.Action {
		case model.ActionBuy:
			rating.Buy++
		case model.ActionSell:
			rating.Sell++
		default:
			rating.Hold++
		}
	}
	if rating.Total == 0 {
		return withTier(rating, neutralScore)
	}
	return withTier(rating, float64(rating.Buy)/float64(rating.Total)*100)
}

func withTier(rating model.Rating, score float64) model.Rating {
	rating.Score = score
	rating.Label, rating.Color = mapTier(score)
	return rating
}

// Evaluate fills the signal set and rating of a computed report.
func Evaluate(r *model.Report) {
	r.Signals = Synthesize(r)
	r.Rating = Rate(r.Signals)
}
