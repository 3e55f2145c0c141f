package recorder

import (
	"context"

	"SignalScope/internal/model"
)

// NoopRecorder is used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) Record(context.Context, *model.Report) (string, error) { return "", nil }
func (n *NoopRecorder) History(context.Context, string, int) ([]Run, error) { return nil, nil }
func (n *NoopRecorder) Close() error { return nil }
