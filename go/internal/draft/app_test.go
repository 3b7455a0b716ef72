package draft

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironhq/draftroom/go/internal/draft/autopick"
	"github.com/gridironhq/draftroom/go/internal/draft/order"
	"github.com/gridironhq/draftroom/go/internal/draft/session"
	"github.com/gridironhq/draftroom/go/internal/models"
	"github.com/gridironhq/draftroom/go/internal/player"
	"github.com/gridironhq/draftroom/go/internal/teams"
)

const testYear = 2026

func seedTeams(t *testing.T, repo *teams.MemoryRepository) []models.Team {
	t.Helper()
	out := make([]models.Team, order.LeagueSize)
	for i := range out {
		team := models.Team{
			ID:   uuid.New(),
			Abbr: fmt.Sprintf("T%02d", i+1),
			Name: fmt.Sprintf("Franchise %d", i+1),
		}
		repo.PutTeam(team)
		repo.PutNeeds(team.ID, []models.TeamNeed{
			{TeamID: team.ID, Position: "QB", Priority: 5},
		})
		out[i] = team
	}
	return out
}

func seedPlayers(t *testing.T, repo *player.MemoryRepository, n int) []models.Player {
	t.Helper()
	out := make([]models.Player, n)
	for i := range out {
		grade := 99.0 - float64(i)
		p := models.Player{
			ID:        uuid.New(),
			FullName:  fmt.Sprintf("Prospect %03d", i+1),
			Position:  "QB",
			DraftYear: testYear,
			Grade:     &grade,
		}
		repo.PutPlayer(p)
		out[i] = p
	}
	return out
}

func newTestApp(t *testing.T) (*App, *teams.MemoryRepository, *player.MemoryRepository) {
	t.Helper()
	teamRepo := teams.NewMemoryRepository()
	playerRepo := player.NewMemoryRepository()
	app := NewApp(
		session.NewRegistry(),
		teamRepo,
		playerRepo,
		autopick.NewSelector(autopick.DefaultWeights(), 0),
		clockwork.NewFakeClock(),
	)
	return app, teamRepo, playerRepo
}

func TestAppCreateAndStartSession(t *testing.T) {
	app, teamRepo, playerRepo := newTestApp(t)
	seedTeams(t, teamRepo)
	seedPlayers(t, playerRepo, 40)
	ctx := context.Background()

	snap, err := app.CreateSession(ctx, CreateSessionRequest{Year: testYear})
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusNotStarted, snap.Status)
	assert.NotEqual(t, uuid.Nil, snap.SessionID)

	// Empty base order falls back to the stored team list.
	snap, err = app.StartSession(ctx, snap.SessionID, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusInProgress, snap.Status)
	assert.Equal(t, order.LeagueSize, snap.TotalSlots)
	assert.Equal(t, 0, snap.Cursor)
}

func TestAppStartUnknownSession(t *testing.T) {
	app, _, _ := newTestApp(t)

	_, err := app.StartSession(context.Background(), uuid.New(), nil, 1)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestAppManualAndAutoPicks(t *testing.T) {
	app, teamRepo, playerRepo := newTestApp(t)
	seedTeams(t, teamRepo)
	pool := seedPlayers(t, playerRepo, 40)
	ctx := context.Background()

	snap, err := app.CreateSession(ctx, CreateSessionRequest{Year: testYear})
	require.NoError(t, err)
	_, err = app.StartSession(ctx, snap.SessionID, nil, 1)
	require.NoError(t, err)

	slot, err := app.MakePick(ctx, snap.SessionID, pool[5].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, slot.OverallPick)
	assert.Equal(t, models.ResolutionManual, slot.Method)
	require.NotNil(t, slot.PlayerID)
	assert.Equal(t, pool[5].ID, *slot.PlayerID)

	// Drafted players cannot be picked again.
	_, err = app.MakePick(ctx, snap.SessionID, pool[5].ID)
	assert.ErrorIs(t, err, session.ErrPlayerUnavailable)

	slot, err = app.AutoPick(ctx, snap.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 2, slot.OverallPick)
	assert.Equal(t, models.ResolutionAuto, slot.Method)
}

func TestAppFinalPickCompletesSession(t *testing.T) {
	app, teamRepo, playerRepo := newTestApp(t)
	seedTeams(t, teamRepo)
	seedPlayers(t, playerRepo, 40)
	ctx := context.Background()

	snap, err := app.CreateSession(ctx, CreateSessionRequest{Year: testYear})
	require.NoError(t, err)
	_, err = app.StartSession(ctx, snap.SessionID, nil, 1)
	require.NoError(t, err)

	for i := 0; i < order.LeagueSize; i++ {
		_, err := app.AutoPick(ctx, snap.SessionID)
		require.NoError(t, err)
	}

	got, err := app.GetStatus(ctx, snap.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusCompleted, got.Status)
	assert.Equal(t, order.LeagueSize, got.Cursor)

	events, err := app.GetEvents(ctx, snap.SessionID, 0)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, models.EventSessionCompleted, events[len(events)-1].Kind)
}

func TestAppTradeLifecycle(t *testing.T) {
	app, teamRepo, playerRepo := newTestApp(t)
	roster := seedTeams(t, teamRepo)
	seedPlayers(t, playerRepo, 80)
	ctx := context.Background()

	snap, err := app.CreateSession(ctx, CreateSessionRequest{Year: testYear})
	require.NoError(t, err)
	_, err = app.StartSession(ctx, snap.SessionID, nil, 2)
	require.NoError(t, err)

	// Round 2 slots stay unresolved for the whole test.
	proposal, err := app.ProposeTrade(ctx, snap.SessionID, models.TradeProposal{
		FromTeamID: roster[0].ID,
		ToTeamID:   roster[1].ID,
		FromSlots:  []int{33},
		ToSlots:    []int{34},
	})
	require.NoError(t, err)
	assert.Equal(t, models.TradeStatusProposed, proposal.Status)

	require.NoError(t, app.AcceptTrade(ctx, snap.SessionID, proposal.ID))

	slots, err := app.GetSlots(ctx, snap.SessionID)
	require.NoError(t, err)
	assert.Equal(t, roster[1].ID, slots[32].TeamID)
	assert.Equal(t, roster[0].ID, slots[33].TeamID)

	// A resolved proposal cannot be accepted twice.
	err = app.AcceptTrade(ctx, snap.SessionID, proposal.ID)
	assert.ErrorIs(t, err, session.ErrUnknownTrade)
}

func TestAppCancelSession(t *testing.T) {
	app, teamRepo, playerRepo := newTestApp(t)
	seedTeams(t, teamRepo)
	seedPlayers(t, playerRepo, 40)
	ctx := context.Background()

	snap, err := app.CreateSession(ctx, CreateSessionRequest{Year: testYear})
	require.NoError(t, err)
	_, err = app.StartSession(ctx, snap.SessionID, nil, 1)
	require.NoError(t, err)

	require.NoError(t, app.CancelSession(ctx, snap.SessionID, "league rollback"))

	got, err := app.GetStatus(ctx, snap.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusCancelled, got.Status)

	_, err = app.AutoPick(ctx, snap.SessionID)
	assert.ErrorIs(t, err, session.ErrNotInProgress)
}

func TestAppGetEventsSince(t *testing.T) {
	app, teamRepo, playerRepo := newTestApp(t)
	seedTeams(t, teamRepo)
	seedPlayers(t, playerRepo, 40)
	ctx := context.Background()

	snap, err := app.CreateSession(ctx, CreateSessionRequest{Year: testYear})
	require.NoError(t, err)
	_, err = app.StartSession(ctx, snap.SessionID, nil, 1)
	require.NoError(t, err)
	_, err = app.AutoPick(ctx, snap.SessionID)
	require.NoError(t, err)
	_, err = app.AutoPick(ctx, snap.SessionID)
	require.NoError(t, err)

	all, err := app.GetEvents(ctx, snap.SessionID, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)

	tail, err := app.GetEvents(ctx, snap.SessionID, all[0].Seq)
	require.NoError(t, err)
	require.Len(t, tail, 2)
	assert.Equal(t, models.EventPickMade, tail[0].Kind)
}
