package player

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/gridironhq/draftroom/go/internal/models"
)

// MemoryRepository implements player data access with in-memory
// storage, for development and tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	players map[uuid.UUID]models.Player
}

// NewMemoryRepository creates an in-memory player repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{players: make(map[uuid.UUID]models.Player)}
}

// PutPlayer inserts or replaces a player.
func (m *MemoryRepository) PutPlayer(p models.Player) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[p.ID] = p
}

// GetPlayer retrieves a player by ID.
func (m *MemoryRepository) GetPlayer(_ context.Context, id uuid.UUID) (*models.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return &p, nil
}

// ListAvailablePlayers returns every prospect for a draft year, grade
// descending, matching the Postgres repository's default board order.
func (m *MemoryRepository) ListAvailablePlayers(_ context.Context, draftYear int) ([]models.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.Player
	for _, p := range m.players {
		if p.DraftYear == draftYear {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		gi, gj := -1.0, -1.0
		if out[i].Grade != nil {
			gi = *out[i].Grade
		}
		if out[j].Grade != nil {
			gj = *out[j].Grade
		}
		if gi != gj {
			return gi > gj
		}
		return out[i].FullName < out[j].FullName
	})
	return out, nil
}
