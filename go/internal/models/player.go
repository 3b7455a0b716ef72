package models

import (
	"time"

	"github.com/google/uuid"
)

// RankingBadge is one external source's rank for a player, e.g.
// {Source: "Pro Football Focus", Abbr: "PFF", Rank: 4}. Lower is better.
type RankingBadge struct {
	Source string `json:"source"`
	Abbr   string `json:"abbr"`
	Rank   int    `json:"rank"`
}

// Player represents a draft-eligible prospect.
type Player struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Position  string    `json:"position"` // 'QB', 'RB', 'WR', etc.
	College   *string   `json:"college,omitempty"`
	HeightCm  *int      `json:"height_cm,omitempty"`
	WeightKg  *int      `json:"weight_kg,omitempty"`
	DraftYear int       `json:"draft_year"`

	// Grade is a scouting grade on a 0-100 scale, nil when the player
	// has not been scouted.
	Grade  *float64       `json:"grade,omitempty"`
	Badges []RankingBadge `json:"badges,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
