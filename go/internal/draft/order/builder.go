// Package order generates the pick slot sequence for a draft session.
package order

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gridironhq/draftroom/go/internal/models"
)

// LeagueSize is the number of NFL franchises; every round has exactly
// this many picks.
const LeagueSize = 32

// MaxRounds caps a draft at the standard seven rounds.
const MaxRounds = 7

// ErrInvalidOrder is returned when the base order is not exactly 32
// distinct teams or the round count falls outside 1..7.
var ErrInvalidOrder = errors.New("invalid draft order")

// Build computes the full slot sequence for a draft: rounds*32 slots
// with contiguous overall numbers starting at 1. Each round repeats
// baseOrder verbatim; mock drafts do not snake.
//
// Build is pure: identical inputs always yield identical output.
func Build(baseOrder []uuid.UUID, rounds int) ([]models.PickSlot, error) {
	if rounds < 1 || rounds > MaxRounds {
		return nil, fmt.Errorf("%w: rounds must be 1..%d, got %d", ErrInvalidOrder, MaxRounds, rounds)
	}
	if len(baseOrder) != LeagueSize {
		return nil, fmt.Errorf("%w: expected %d teams, got %d", ErrInvalidOrder, LeagueSize, len(baseOrder))
	}
	seen := make(map[uuid.UUID]struct{}, LeagueSize)
	for _, teamID := range baseOrder {
		if _, dup := seen[teamID]; dup {
			return nil, fmt.Errorf("%w: duplicate team %s", ErrInvalidOrder, teamID)
		}
		seen[teamID] = struct{}{}
	}

	slots := make([]models.PickSlot, 0, rounds*LeagueSize)
	for round := 1; round <= rounds; round++ {
		for pick, teamID := range baseOrder {
			slots = append(slots, models.PickSlot{
				Round:       round,
				Pick:        pick + 1,
				OverallPick: (round-1)*LeagueSize + pick + 1,
				TeamID:      teamID,
			})
		}
	}
	return slots, nil
}
