// Package autopick chooses a player for a team when the engine makes a
// pick on the team's behalf.
package autopick

import (
	"errors"

	"github.com/gridironhq/draftroom/go/internal/models"
)

// ErrEmptyPool is returned when no players remain to pick from. The
// session engine treats this as fatal for the current pick and reports
// it to the caller rather than skipping the slot.
var ErrEmptyPool = errors.New("player pool is empty")

// Strategy picks one player from the remaining pool for a team.
//
// Implementations must be deterministic and must not mutate pool: slot
// resolution removes the chosen player from the pool as a separate step
// owned by the session engine.
type Strategy interface {
	Select(team models.Team, pool []models.Player, needs []models.TeamNeed) (models.Player, error)
}
