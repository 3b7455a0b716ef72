package autopick

import (
	"math"
	"strings"

	"github.com/gridironhq/draftroom/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Weights control the composite auto-pick score. They are tunables, not
// fixed behavior: see config loading in cmd.
type Weights struct {
	NeedMatch float64 `yaml:"need_match"`
	Grade     float64 `yaml:"grade"`
	Ranking   float64 `yaml:"ranking"`
}

// DefaultWeights favor need match first, then ranking consensus, then
// scouting grade.
func DefaultWeights() Weights {
	return Weights{
		NeedMatch: 1.0,
		Grade:     0.25,
		Ranking:   0.5,
	}
}

// DefaultNeutralGrade substitutes for a missing scouting grade on the
// normalized 0..1 scale.
const DefaultNeutralGrade = 0.5

// Selector scores every candidate against the team's needs, scouting
// grade, and ranking consensus, and returns the single best player.
type Selector struct {
	weights      Weights
	neutralGrade float64
}

// NewSelector constructs a Selector. A zero neutralGrade falls back to
// DefaultNeutralGrade.
func NewSelector(weights Weights, neutralGrade float64) *Selector {
	if neutralGrade == 0 {
		neutralGrade = DefaultNeutralGrade
	}
	return &Selector{weights: weights, neutralGrade: neutralGrade}
}

var _ Strategy = (*Selector)(nil)

// Select implements Strategy. Ties break by best (lowest) badge rank,
// then by player ID, so repeated calls with identical inputs always
// return the same player.
func (s *Selector) Select(team models.Team, pool []models.Player, needs []models.TeamNeed) (models.Player, error) {
	if len(pool) == 0 {
		return models.Player{}, ErrEmptyPool
	}

	best := pool[0]
	bestScore := s.score(best, needs)
	for _, candidate := range pool[1:] {
		score := s.score(candidate, needs)
		if score > bestScore || (score == bestScore && beats(candidate, best)) {
			best = candidate
			bestScore = score
		}
	}

	log.Debug().
		Str("team_id", team.ID.String()).
		Str("player_id", best.ID.String()).
		Str("position", best.Position).
		Float64("score", bestScore).
		Msg("auto-pick selected player")

	return best, nil
}

// score computes w1*needMatch + w2*normalizedGrade + w3*aggregateRank.
func (s *Selector) score(p models.Player, needs []models.TeamNeed) float64 {
	return s.weights.NeedMatch*needMatch(p, needs) +
		s.weights.Grade*s.normalizedGrade(p) +
		s.weights.Ranking*aggregateRank(p)
}

// needMatch returns the highest priority among the team's needs at the
// player's position, 0 when no need matches.
func needMatch(p models.Player, needs []models.TeamNeed) float64 {
	highest := 0
	for _, need := range needs {
		if strings.EqualFold(need.Position, p.Position) && need.Priority > highest {
			highest = need.Priority
		}
	}
	return float64(highest)
}

func (s *Selector) normalizedGrade(p models.Player) float64 {
	if p.Grade == nil {
		return s.neutralGrade
	}
	return *p.Grade / 100
}

// aggregateRank is an inverse-rank aggregate over all ranking badges:
// a #1 rank contributes 1.0, a #10 rank 0.1. Zero with no badges.
func aggregateRank(p models.Player) float64 {
	sum := 0.0
	for _, badge := range p.Badges {
		if badge.Rank > 0 {
			sum += 1 / float64(badge.Rank)
		}
	}
	return sum
}

// beats is the tie-break ordering: lower best badge rank wins, then the
// lexically smaller player ID.
func beats(a, b models.Player) bool {
	ra, rb := bestRank(a), bestRank(b)
	if ra != rb {
		return ra < rb
	}
	return a.ID.String() < b.ID.String()
}

func bestRank(p models.Player) int {
	best := math.MaxInt
	for _, badge := range p.Badges {
		if badge.Rank > 0 && badge.Rank < best {
			best = badge.Rank
		}
	}
	return best
}
