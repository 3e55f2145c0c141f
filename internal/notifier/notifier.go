// Package notifier delivers HTML-formatted messages over Telegram and email.
package notifier

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"SignalScope/internal/logger"
)

// Notifier delivers a message to one channel.
type Notifier interface {
	Send(ctx context.Context, text string) error
	Name() string
}

// Multi fans a message out to every notifier. Delivery continues past
// failures; the returned error joins all of them.
type Multi []Notifier

func (m Multi) Name() string { return "multi" }

func (m Multi) Send(ctx context.Context, text string) error {
	var errs []error
	for _, n := range m {
		if err := n.Send(ctx, text); err != nil {
			logger.Warn("notification failed", zap.String("channel", n.Name()), zap.Error(err))
			errs = append(errs, &SendError{Channel: n.Name(), Err: err})
		}
	}
	return errors.Join(errs...)
}

// SendError records which channel failed.
type SendError struct {
	Channel string
	Err     error
}

func (e *SendError) Error() string { return fmt.Sprintf("%s: %v", e.Channel, e.Err) }
func (e *SendError) Unwrap() error { return e.Err }
