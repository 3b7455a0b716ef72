package events

import (
	"time"

	"github.com/gridironhq/draftroom/go/internal/models"
)

// Event payload types shared between the session engine, the relay, and
// the gateway.

// SessionStartedPayload is the payload for a SessionStarted event.
type SessionStartedPayload struct {
	SessionID  string    `json:"session_id"`
	Year       int       `json:"year"`
	Rounds     int       `json:"rounds"`
	TotalSlots int       `json:"total_slots"`
	StartedAt  time.Time `json:"started_at"`
}

// PickMadePayload is the payload for a PickMade event.
type PickMadePayload struct {
	SessionID   string                  `json:"session_id"`
	TeamID      string                  `json:"team_id"`
	PlayerID    string                  `json:"player_id"`
	Round       int                     `json:"round"`
	Pick        int                     `json:"pick"`
	OverallPick int                     `json:"overall_pick"`
	Method      models.ResolutionMethod `json:"method"`
	MadeAt      time.Time               `json:"made_at"`
}

// TradeAppliedPayload is the payload for a TradeApplied event.
type TradeAppliedPayload struct {
	SessionID  string    `json:"session_id"`
	TradeID    string    `json:"trade_id"`
	FromTeamID string    `json:"from_team_id"`
	ToTeamID   string    `json:"to_team_id"`
	Overalls   []int     `json:"overalls"` // every exchanged overall number
	AppliedAt  time.Time `json:"applied_at"`
}

// SessionCancelledPayload is the payload for a SessionCancelled event.
type SessionCancelledPayload struct {
	SessionID   string    `json:"session_id"`
	Reason      string    `json:"reason"`
	CancelledAt time.Time `json:"cancelled_at"`
}

// SessionCompletedPayload is the payload for a SessionCompleted event.
type SessionCompletedPayload struct {
	SessionID   string    `json:"session_id"`
	TotalPicks  int       `json:"total_picks"`
	CompletedAt time.Time `json:"completed_at"`
	Duration    string    `json:"duration"`
}
