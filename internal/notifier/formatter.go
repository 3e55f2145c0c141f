package notifier

import (
	"fmt"
	"html"
	"strings"

	"SignalScope/internal/model"
	"SignalScope/internal/recorder"
	"SignalScope/internal/watch"
)

// actionIcon marks each signal by its directional vote.
func actionIcon(a model.Action) string {
	switch a {
	case model.ActionBuy:
		return "🟢"
	case model.ActionSell:
		return "🔴"
	case model.ActionTrend:
		return "📈"
	case model.ActionRange:
		return "↔️"
	default:
		return "⚪"
	}
}

func ratingIcon(l model.RatingLabel) string {
	switch l {
	case model.RatingStrongBuy, model.RatingBuy:
		return "🟢"
	case model.RatingSell, model.RatingStrongSell:
		return "🔴"
	default:
		return "🟠"
	}
}

// FormatReport formats an analysis report into a Telegram message.
func FormatReport(r *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 <b>%s</b> | %s | %s\n\n", html.EscapeString(r.Symbol), r.Timeframe, r.GeneratedAt.Format("2006-01-02"))
	fmt.Fprintf(&b, "Last close: %.2f (%d bars, %s)\n\n", r.LastClose, r.Bars, html.EscapeString(r.Source))

	b.WriteString("📈 <b>Signals:</b>\n")
	if len(r.Signals) == 0 {
		b.WriteString("  none\n")
	}
	for _, s := range r.Signals {
		fmt.Fprintf(&b, "  %s %s: %.2f %s (%.0f%%)\n", actionIcon(s.Action), s.Kind, s.Value, s.Reading, s.Strength)
	}

	rt := r.Rating
	b.WriteString("  ─────────────────\n")
	fmt.Fprintf(&b, "%s <b>Rating:</b> %s %.0f/100\n", ratingIcon(rt.Label), rt.Label, rt.Score)
	fmt.Fprintf(&b, "   buy %d | sell %d | hold %d\n", rt.Buy, rt.Sell, rt.Hold)

	if sr := r.SupportResistance; sr != nil && (len(sr.Supports) > 0 || len(sr.Resistances) > 0) {
		b.WriteString("\n🧱 <b>Levels:</b>\n")
		if len(sr.Resistances) > 0 {
			fmt.Fprintf(&b, "  R: %s\n", joinLevels(sr.Resistances))
		}
		if len(sr.Supports) > 0 {
			fmt.Fprintf(&b, "  S: %s\n", joinLevels(sr.Supports))
		}
	}
	if p := r.Pivot; p != nil {
		fmt.Fprintf(&b, "  Pivot %.2f (R1 %.2f / S1 %.2f)\n", p.Pivot, p.R1, p.S1)
	}
	return b.String()
}

func joinLevels(levels []float64) string {
	parts := make([]string, len(levels))
	for i, v := range levels {
		parts[i] = fmt.Sprintf("%.2f", v)
	}
	return strings.Join(parts, " / ")
}

// FormatChange formats a rating label transition.
func FormatChange(c watch.Change) string {
	return fmt.Sprintf("🔔 <b>%s rating changed</b>\n\n%s %s (%.0f) → %s %s (%.0f)\nLast close: %.2f\n",
		html.EscapeString(c.Symbol),
		ratingIcon(c.From), c.From, c.FromScore,
		ratingIcon(c.To), c.To, c.ToScore,
		c.LastClose)
}

// FormatHistory formats stored runs, newest first.
func FormatHistory(symbol string, runs []recorder.Run) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🗂 <b>%s history</b>\n\n", html.EscapeString(strings.ToUpper(symbol)))
	if len(runs) == 0 {
		b.WriteString("No stored analyses.\n")
		return b.String()
	}
	for _, run := range runs {
		fmt.Fprintf(&b, "%s %s %s %.0f @ %.2f\n",
			run.GeneratedAt.Format("2006-01-02 15:04"), ratingIcon(run.Rating.Label),
			run.Rating.Label, run.Rating.Score, run.LastClose)
	}
	return b.String()
}

// FormatWatchlist formats the last known rating of every watched symbol.
func FormatWatchlist(symbols []string, state model.WatchState) string {
	var b strings.Builder
	b.WriteString("👀 <b>Watchlist</b>\n\n")
	if len(symbols) == 0 {
		b.WriteString("Watchlist is empty.\n")
		return b.String()
	}
	for _, sym := range symbols {
		e, ok := state.Entries[sym]
		if !ok {
			fmt.Fprintf(&b, "⚪ %s: not scanned yet\n", html.EscapeString(sym))
			continue
		}
		fmt.Fprintf(&b, "%s %s: %s %.0f @ %.2f\n", ratingIcon(e.Label), html.EscapeString(sym), e.Label, e.Score, e.LastClose)
	}
	if !state.LastScan.IsZero() {
		fmt.Fprintf(&b, "\nLast scan: %s (#%d)\n", state.LastScan.Format("2006-01-02 15:04"), state.ScanCount)
	}
	return b.String()
}

// FormatError formats a failed command or task.
func FormatError(what string, err error) string {
	return fmt.Sprintf("❌ %s failed: %s", what, html.EscapeString(err.Error()))
}

// HelpText lists the supported bot commands.
const HelpText = `Available commands:
• /analyze SYMBOL [TIMEFRAME]
• /watchlist
• /history SYMBOL
• /help`
