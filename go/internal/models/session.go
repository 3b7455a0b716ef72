package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus defines the status of a draft session.
type SessionStatus string

const (
	SessionStatusNotStarted SessionStatus = "NOT_STARTED"
	SessionStatusInProgress SessionStatus = "IN_PROGRESS"
	SessionStatusCompleted  SessionStatus = "COMPLETED"
	SessionStatusCancelled  SessionStatus = "CANCELLED"
)

// Terminal reports whether the status admits no further transitions.
func (s SessionStatus) Terminal() bool {
	return s == SessionStatusCompleted || s == SessionStatusCancelled
}

// DraftSession represents one mock draft run.
//
// Cursor is the index of the next slot to resolve; it always equals the
// count of resolved slots and never decreases.
type DraftSession struct {
	ID          uuid.UUID     `json:"id"`
	Year        int           `json:"year"`
	Rounds      int           `json:"rounds"`
	Status      SessionStatus `json:"status"`
	Slots       []PickSlot    `json:"slots"`
	Cursor      int           `json:"cursor"`
	CreatedAt   time.Time     `json:"created_at"`
	StartedAt   *time.Time    `json:"started_at,omitempty"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}
