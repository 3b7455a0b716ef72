package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventKind defines the kind of a draft event.
type EventKind string

const (
	EventSessionStarted   EventKind = "SessionStarted"
	EventPickMade         EventKind = "PickMade"
	EventTradeApplied     EventKind = "TradeApplied"
	EventSessionCancelled EventKind = "SessionCancelled"
	EventSessionCompleted EventKind = "SessionCompleted"
)

// DraftEvent is one entry in a session's append-only audit log.
// Seq is strictly increasing per session, starting at 1, never reused.
type DraftEvent struct {
	SessionID uuid.UUID       `json:"session_id"`
	Seq       uint64          `json:"seq"`
	Kind      EventKind       `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	At        time.Time       `json:"at"`
}
