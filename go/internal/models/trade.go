package models

import (
	"time"

	"github.com/google/uuid"
)

// TradeStatus defines the status of a trade proposal.
type TradeStatus string

const (
	TradeStatusProposed TradeStatus = "PROPOSED"
	TradeStatusAccepted TradeStatus = "ACCEPTED"
	TradeStatusRejected TradeStatus = "REJECTED"
)

// TradeProposal is an offer to exchange unresolved pick slots between
// two teams. Slots are referenced by overall pick number.
type TradeProposal struct {
	ID         uuid.UUID   `json:"id"`
	FromTeamID uuid.UUID   `json:"from_team_id"`
	ToTeamID   uuid.UUID   `json:"to_team_id"`
	FromSlots  []int       `json:"from_slots"` // offered by FromTeam
	ToSlots    []int       `json:"to_slots"`   // offered by ToTeam
	Status     TradeStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
}
