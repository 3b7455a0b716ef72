// Package eventstore persists draft events to Postgres as an
// append-only table. The relay writes here before publishing, so the
// audit trail survives process restarts.
package eventstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sqlc-dev/pqtype"

	"github.com/gridironhq/draftroom/go/internal/models"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const schema = `
CREATE TABLE IF NOT EXISTS draft_events (
    session_id UUID        NOT NULL,
    seq        BIGINT      NOT NULL,
    kind       TEXT        NOT NULL,
    payload    JSONB,
    at         TIMESTAMPTZ NOT NULL,
    PRIMARY KEY (session_id, seq)
)`

// Migrate creates the draft_events table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate draft_events: %w", err)
	}
	return nil
}

// Append inserts one event. Replays of an already-stored (session, seq)
// are ignored, so the relay may safely retry after a crash.
func (s *Store) Append(ctx context.Context, ev models.DraftEvent) error {
	payload := pqtype.NullRawMessage{RawMessage: ev.Payload, Valid: len(ev.Payload) > 0}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO draft_events (session_id, seq, kind, payload, at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (session_id, seq) DO NOTHING`,
		ev.SessionID, int64(ev.Seq), string(ev.Kind), payload, ev.At,
	)
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

// List returns events for a session with seq > sinceSeq, in order.
func (s *Store) List(ctx context.Context, sessionID uuid.UUID, sinceSeq uint64) ([]models.DraftEvent, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT session_id, seq, kind, payload, at
		 FROM draft_events
		 WHERE session_id = $1 AND seq > $2
		 ORDER BY seq`,
		sessionID, int64(sinceSeq),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var out []models.DraftEvent
	for rows.Next() {
		var (
			ev      models.DraftEvent
			seq     int64
			kind    string
			payload pqtype.NullRawMessage
			at      time.Time
		)
		if err := rows.Scan(&ev.SessionID, &seq, &kind, &payload, &at); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		ev.Seq = uint64(seq)
		ev.Kind = models.EventKind(kind)
		ev.At = at
		if payload.Valid {
			ev.Payload = payload.RawMessage
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	return out, nil
}
