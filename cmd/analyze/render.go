package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"SignalScope/internal/model"
)

var (
	primaryColor = lipgloss.Color("#0077cc")
	mutedColor   = lipgloss.Color("#999999")

	appStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor)
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(primaryColor).
			Padding(0, 1)
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			MarginTop(1)
	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)
)

// actionColors match the rating palette.
var actionColors = map[model.Action]lipgloss.Color{
	model.ActionBuy:   "#4caf50",
	model.ActionSell:  "#f44336",
	model.ActionHold:  "#ff9800",
	model.ActionTrend: "#0077cc",
	model.ActionRange: "#999999",
}

func renderText(r *model.Report) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s · %s", r.Symbol, r.Timeframe)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d bars from %s, last close %.2f", r.Bars, r.Source, r.LastClose)))
	b.WriteString("\n")

	b.WriteString(headerStyle.Render("Signals"))
	b.WriteString("\n")
	if len(r.Signals) == 0 {
		b.WriteString(mutedStyle.Render("no signals"))
		b.WriteString("\n")
	}
	for _, s := range r.Signals {
		action := lipgloss.NewStyle().Foreground(actionColors[s.Action]).Bold(true).Width(6).Render(string(s.Action))
		fmt.Fprintf(&b, "%s %-16s %10.2f  %-10s %3.0f%%\n", action, s.Kind, s.Value, s.Reading, s.Strength)
	}

	rt := r.Rating
	ratingStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(rt.Color))
	b.WriteString(headerStyle.Render("Rating"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %.0f/100  ", ratingStyle.Render(string(rt.Label)), rt.Score)
	b.WriteString(mutedStyle.Render(fmt.Sprintf("buy %d · sell %d · hold %d", rt.Buy, rt.Sell, rt.Hold)))
	b.WriteString("\n")

	if sr := r.SupportResistance; sr != nil {
		b.WriteString(headerStyle.Render("Support / Resistance"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "R  %s\nS  %s\n", levels(sr.Resistances), levels(sr.Supports))
	}
	if p := r.Pivot; p != nil {
		b.WriteString(headerStyle.Render("Pivot points"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "R3 %.2f  R2 %.2f  R1 %.2f\nP  %.2f\nS1 %.2f  S2 %.2f  S3 %.2f\n",
			p.R3, p.R2, p.R1, p.Pivot, p.S1, p.S2, p.S3)
	}
	if len(r.Fibonacci) > 0 {
		b.WriteString(headerStyle.Render("Fibonacci"))
		b.WriteString("\n")
		for _, f := range r.Fibonacci {
			fmt.Fprintf(&b, "%-6s %.2f\n", f.Label, f.Value)
		}
	}

	return appStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func levels(vs []float64) string {
	if len(vs) == 0 {
		return "-"
	}
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprintf("%.2f", v)
	}
	return strings.Join(parts, "  ")
}

// exportView is the analysis export: conclusions without the full series.
type exportView struct {
	Symbol            string                   `json:"symbol"`
	Timeframe         string                   `json:"timeframe"`
	GeneratedAt       string                   `json:"generated_at"`
	LastClose         float64                  `json:"last_close"`
	Signals           []model.Signal           `json:"signals"`
	Rating            model.Rating             `json:"rating"`
	SupportResistance *model.SupportResistance `json:"support_resistance,omitempty"`
	Pivot             *model.PivotPoints       `json:"pivot,omitempty"`
	Fibonacci         []model.FibLevel         `json:"fibonacci,omitempty"`
}

func writeJSON(w io.Writer, r *model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportView{
		Symbol:            r.Symbol,
		Timeframe:         r.Timeframe,
		GeneratedAt:       r.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"),
		LastClose:         r.LastClose,
		Signals:           r.Signals,
		Rating:            r.Rating,
		SupportResistance: r.SupportResistance,
		Pivot:             r.Pivot,
		Fibonacci:         r.Fibonacci,
	})
}

// writeCSV flattens the export into section,name,value,detail rows.
func writeCSV(w io.Writer, r *model.Report) error {
	cw := csv.NewWriter(w)
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }

	rows := [][]string{{"section", "name", "value", "detail"}}
	for _, s := range r.Signals {
		rows = append(rows, []string{"signal", string(s.Kind), num(s.Value), fmt.Sprintf("%s/%s/%.0f", s.Reading, s.Action, s.Strength)})
	}
	rows = append(rows, []string{"rating", string(r.Rating.Label), num(r.Rating.Score),
		fmt.Sprintf("buy=%d sell=%d hold=%d", r.Rating.Buy, r.Rating.Sell, r.Rating.Hold)})
	if sr := r.SupportResistance; sr != nil {
		for i, v := range sr.Resistances {
			rows = append(rows, []string{"resistance", fmt.Sprintf("R%d", i+1), num(v), ""})
		}
		for i, v := range sr.Supports {
			rows = append(rows, []string{"support", fmt.Sprintf("S%d", i+1), num(v), ""})
		}
	}
	if p := r.Pivot; p != nil {
		for _, kv := range []struct {
			name string
			v    float64
		}{{"R3", p.R3}, {"R2", p.R2}, {"R1", p.R1}, {"P", p.Pivot}, {"S1", p.S1}, {"S2", p.S2}, {"S3", p.S3}} {
			rows = append(rows, []string{"pivot", kv.name, num(kv.v), ""})
		}
	}
	for _, f := range r.Fibonacci {
		rows = append(rows, []string{"fibonacci", f.Label, num(f.Value), num(f.Ratio)})
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
