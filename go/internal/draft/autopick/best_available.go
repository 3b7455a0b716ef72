package autopick

import "github.com/gridironhq/draftroom/go/internal/models"

// BestAvailable ignores team needs entirely and drafts off the
// consensus board: ranking aggregate plus grade. Useful for simulating
// teams without a scouted need profile.
type BestAvailable struct {
	neutralGrade float64
}

// NewBestAvailable constructs a BestAvailable strategy.
func NewBestAvailable() *BestAvailable {
	return &BestAvailable{neutralGrade: DefaultNeutralGrade}
}

var _ Strategy = (*BestAvailable)(nil)

// Select implements Strategy.
func (b *BestAvailable) Select(team models.Team, pool []models.Player, _ []models.TeamNeed) (models.Player, error) {
	selector := Selector{
		weights:      Weights{NeedMatch: 0, Grade: 0.25, Ranking: 0.5},
		neutralGrade: b.neutralGrade,
	}
	return selector.Select(team, pool, nil)
}
