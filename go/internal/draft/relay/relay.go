package relay

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/gridironhq/draftroom/go/internal/draft/session"
	"github.com/gridironhq/draftroom/go/internal/models"
)

type Config struct {
	PollInterval time.Duration
	MaxRetries   int
	RetryDelay   time.Duration
}

func DefaultConfig() Config {
	return Config{
		PollInterval: time.Second,
		MaxRetries:   3,
		RetryDelay:   time.Second,
	}
}

// SessionSource yields the live sessions whose logs the relay drains.
type SessionSource interface {
	List() []*session.Session
}

// Store persists events durably before they go to the bus. Optional.
type Store interface {
	Append(ctx context.Context, event models.DraftEvent) error
}

// Relay polls session event logs past a per-session watermark and
// forwards new events, store first, then publisher, in sequence order.
// A failed event stops that session's drain for the tick so order is
// never broken; the next tick retries from the watermark.
type Relay struct {
	source    SessionSource
	store     Store // may be nil
	publisher Publisher
	config    Config
	clock     clockwork.Clock
	logger    *slog.Logger

	mu         sync.Mutex
	running    bool
	watermarks map[uuid.UUID]uint64
	stopChan   chan struct{}
	wg         sync.WaitGroup
}

func New(source SessionSource, store Store, publisher Publisher, cfg Config, clock clockwork.Clock, logger *slog.Logger) *Relay {
	return &Relay{
		source:     source,
		store:      store,
		publisher:  publisher,
		config:     cfg,
		clock:      clock,
		logger:     logger,
		watermarks: make(map[uuid.UUID]uint64),
		stopChan:   make(chan struct{}),
	}
}

func (r *Relay) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return fmt.Errorf("relay already running")
	}
	r.running = true
	r.mu.Unlock()

	r.wg.Add(1)
	go r.run(ctx)

	r.logger.Info("event relay started",
		slog.Duration("poll_interval", r.config.PollInterval))
	return nil
}

func (r *Relay) Stop() error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return fmt.Errorf("relay not running")
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopChan)
	r.wg.Wait()

	r.logger.Info("event relay stopped")
	return nil
}

func (r *Relay) run(ctx context.Context) {
	defer r.wg.Done()

	ticker := r.clock.NewTicker(r.config.PollInterval)
	defer ticker.Stop()

	// Drain immediately on start
	r.Drain(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopChan:
			return
		case <-ticker.Chan():
			r.Drain(ctx)
		}
	}
}

// Drain forwards every undelivered event across all sessions once.
// Exported so tests and shutdown paths can flush synchronously.
func (r *Relay) Drain(ctx context.Context) {
	for _, s := range r.source.List() {
		r.drainSession(ctx, s)
	}
}

func (r *Relay) drainSession(ctx context.Context, s *session.Session) {
	id := s.ID()

	r.mu.Lock()
	mark := r.watermarks[id]
	r.mu.Unlock()

	for _, ev := range s.Events(mark) {
		if err := r.deliver(ctx, ev); err != nil {
			r.logger.Error("event delivery failed; will retry next tick",
				slog.String("session_id", id.String()),
				slog.Uint64("seq", ev.Seq),
				slog.String("error", err.Error()))
			return
		}
		mark = ev.Seq

		r.mu.Lock()
		r.watermarks[id] = mark
		r.mu.Unlock()
	}
}

func (r *Relay) deliver(ctx context.Context, ev models.DraftEvent) error {
	var err error
	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-r.clock.After(r.config.RetryDelay):
			}
		}
		if err = r.deliverOnce(ctx, ev); err == nil {
			return nil
		}
	}
	return err
}

func (r *Relay) deliverOnce(ctx context.Context, ev models.DraftEvent) error {
	if r.store != nil {
		if err := r.store.Append(ctx, ev); err != nil {
			return fmt.Errorf("append to store: %w", err)
		}
	}
	if err := r.publisher.Publish(ctx, ev); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}
