package models

import (
	"time"

	"github.com/google/uuid"
)

// Conference is an NFL conference.
type Conference string

const (
	ConferenceAFC Conference = "AFC"
	ConferenceNFC Conference = "NFC"
)

// Division is a conference division.
type Division string

const (
	DivisionEast  Division = "EAST"
	DivisionNorth Division = "NORTH"
	DivisionSouth Division = "SOUTH"
	DivisionWest  Division = "WEST"
)

// Team represents one of the 32 NFL franchises.
type Team struct {
	ID         uuid.UUID  `json:"id"`
	Abbr       string     `json:"abbr"` // 'KC', 'PHI', ...
	Name       string     `json:"name"`
	City       string     `json:"city"`
	Conference Conference `json:"conference"`
	Division   Division   `json:"division"`
	CreatedAt  time.Time  `json:"created_at"`
}

// TeamNeed is a team's declared positional priority used to bias
// auto-pick scoring. Priority runs 1 (mild) to 10 (desperate).
type TeamNeed struct {
	TeamID   uuid.UUID `json:"team_id"`
	Position string    `json:"position"`
	Priority int       `json:"priority"`
	Notes    string    `json:"notes,omitempty"`
}
