// Package relay drains session event logs to durable storage and to
// the message bus, preserving per-session sequence order.
package relay

import (
	"context"
	"log/slog"

	"github.com/gridironhq/draftroom/go/internal/models"
)

// Publisher delivers one draft event to the bus.
type Publisher interface {
	Publish(ctx context.Context, event models.DraftEvent) error
}

// LogPublisher is a simple stdout publisher for development/testing.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event models.DraftEvent) error {
	p.logger.Info("publishing event",
		slog.String("session_id", event.SessionID.String()),
		slog.Uint64("seq", event.Seq),
		slog.String("kind", string(event.Kind)))
	return nil
}
