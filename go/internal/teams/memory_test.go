package teams

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironhq/draftroom/go/internal/models"
)

func TestMemoryRepositoryRoundTrip(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	chiefs := models.Team{ID: uuid.New(), Abbr: "KC", Name: "Chiefs", City: "Kansas City"}
	eagles := models.Team{ID: uuid.New(), Abbr: "PHI", Name: "Eagles", City: "Philadelphia"}
	repo.PutTeam(chiefs)
	repo.PutTeam(eagles)

	got, err := repo.GetTeam(ctx, chiefs.ID)
	require.NoError(t, err)
	assert.Equal(t, "KC", got.Abbr)

	_, err = repo.GetTeam(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrTeamNotFound)

	// Insertion order is the default base order.
	teams, err := repo.ListTeams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, chiefs.ID, teams[0].ID)
	assert.Equal(t, eagles.ID, teams[1].ID)
}

func TestMemoryRepositoryNeeds(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	team := models.Team{ID: uuid.New(), Abbr: "CHI", Name: "Bears", City: "Chicago"}
	repo.PutTeam(team)
	repo.PutNeeds(team.ID, []models.TeamNeed{
		{TeamID: team.ID, Position: "QB", Priority: 9},
		{TeamID: team.ID, Position: "OT", Priority: 6},
	})

	needs, err := repo.ListTeamNeeds(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, needs, 2)
	assert.Equal(t, "QB", needs[0].Position)

	empty, err := repo.ListTeamNeeds(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}
