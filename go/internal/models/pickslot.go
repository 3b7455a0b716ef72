package models

import (
	"time"

	"github.com/google/uuid"
)

// ResolutionMethod records how a slot's player was chosen. Empty until
// the slot resolves. Code that branches on method must switch over all
// three values.
type ResolutionMethod string

const (
	ResolutionNone   ResolutionMethod = ""
	ResolutionManual ResolutionMethod = "MANUAL"
	ResolutionAuto   ResolutionMethod = "AUTO"
)

// PickSlot represents a single pick position in a draft session.
type PickSlot struct {
	Round       int              `json:"round"`
	Pick        int              `json:"pick"`         // pick number in the round
	OverallPick int              `json:"overall_pick"` // pick number overall
	TeamID      uuid.UUID        `json:"team_id"`
	PlayerID    *uuid.UUID       `json:"player_id,omitempty"` // nil until picked
	Method      ResolutionMethod `json:"method,omitempty"`
	PickedAt    *time.Time       `json:"picked_at,omitempty"`
}

// Resolved reports whether a player has been assigned to the slot.
// Ownership is frozen once a slot resolves.
func (p PickSlot) Resolved() bool {
	return p.PlayerID != nil
}
