// Package recorder keeps a history of analysis runs.
package recorder

import (
	"context"
	"time"

	"SignalScope/internal/model"
)

// Run is one stored analysis with its signals.
type Run struct {
	ID          string         `json:"id"`
	Symbol      string         `json:"symbol"`
	Timeframe   string         `json:"timeframe"`
	Source      string         `json:"source"`
	GeneratedAt time.Time      `json:"generated_at"`
	Bars        int            `json:"bars"`
	LastClose   float64        `json:"last_close"`
	Rating      model.Rating   `json:"rating"`
	Signals     []model.Signal `json:"signals"`
}

// Recorder persists analysis runs.
type Recorder interface {
	// Record stores the report and returns the run id.
	Record(ctx context.Context, r *model.Report) (string, error)
	// History returns the latest runs for symbol, newest first.
	History(ctx context.Context, symbol string, limit int) ([]Run, error)
	Close() error
}
