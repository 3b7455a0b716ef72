package player

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironhq/draftroom/go/internal/models"
)

func gradePtr(g float64) *float64 { return &g }

func TestMemoryRepositoryGetPlayer(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	p := models.Player{ID: uuid.New(), FullName: "Sam Fields", Position: "QB", DraftYear: 2026}
	repo.PutPlayer(p)

	got, err := repo.GetPlayer(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sam Fields", got.FullName)

	_, err = repo.GetPlayer(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestMemoryRepositoryBoardOrder(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	repo.PutPlayer(models.Player{ID: uuid.New(), FullName: "Ungraded Edge", Position: "EDGE", DraftYear: 2026})
	repo.PutPlayer(models.Player{ID: uuid.New(), FullName: "Mid Corner", Position: "CB", DraftYear: 2026, Grade: gradePtr(81.5)})
	repo.PutPlayer(models.Player{ID: uuid.New(), FullName: "Top Tackle", Position: "OT", DraftYear: 2026, Grade: gradePtr(94.0)})
	repo.PutPlayer(models.Player{ID: uuid.New(), FullName: "Old Guard", Position: "G", DraftYear: 2025, Grade: gradePtr(99.0)})

	board, err := repo.ListAvailablePlayers(ctx, 2026)
	require.NoError(t, err)
	require.Len(t, board, 3)

	// Grade descending, ungraded last.
	assert.Equal(t, "Top Tackle", board[0].FullName)
	assert.Equal(t, "Mid Corner", board[1].FullName)
	assert.Equal(t, "Ungraded Edge", board[2].FullName)
}
