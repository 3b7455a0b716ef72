package teams

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/gridironhq/draftroom/go/internal/models"
)

// MemoryRepository implements team data access with in-memory storage,
// for development and tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	teams map[uuid.UUID]models.Team
	needs map[uuid.UUID][]models.TeamNeed
	order []uuid.UUID // insertion order, doubles as default base order
}

// NewMemoryRepository creates an in-memory teams repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		teams: make(map[uuid.UUID]models.Team),
		needs: make(map[uuid.UUID][]models.TeamNeed),
	}
}

// PutTeam inserts or replaces a team.
func (m *MemoryRepository) PutTeam(team models.Team) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.teams[team.ID]; !ok {
		m.order = append(m.order, team.ID)
	}
	m.teams[team.ID] = team
}

// PutNeeds replaces a team's need list.
func (m *MemoryRepository) PutNeeds(teamID uuid.UUID, needs []models.TeamNeed) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.needs[teamID] = append([]models.TeamNeed(nil), needs...)
}

// GetTeam retrieves a team by ID.
func (m *MemoryRepository) GetTeam(_ context.Context, id uuid.UUID) (*models.Team, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	team, ok := m.teams[id]
	if !ok {
		return nil, ErrTeamNotFound
	}
	return &team, nil
}

// ListTeams returns all teams in insertion order.
func (m *MemoryRepository) ListTeams(_ context.Context) ([]models.Team, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Team, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.teams[id])
	}
	return out, nil
}

// ListTeamNeeds returns a copy of the team's needs.
func (m *MemoryRepository) ListTeamNeeds(_ context.Context, teamID uuid.UUID) ([]models.TeamNeed, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.TeamNeed(nil), m.needs[teamID]...), nil
}
