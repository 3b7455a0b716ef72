package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/gridironhq/draftroom/go/internal/draft/autopick"
	"github.com/gridironhq/draftroom/go/internal/draft/order"
	"github.com/gridironhq/draftroom/go/internal/models"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureRoster(teams, players int) Roster {
	r := Roster{}
	positions := []string{"QB", "RB", "WR", "OT", "EDGE", "CB"}
	for i := 0; i < teams; i++ {
		r.Teams = append(r.Teams, models.Team{ID: uuid.New()})
	}
	for i := 0; i < players; i++ {
		g := float64(50 + i%50)
		r.Players = append(r.Players, models.Player{
			ID:       uuid.New(),
			Position: positions[i%len(positions)],
			Grade:    &g,
		})
	}
	return r
}

func baseOrderOf(r Roster) []uuid.UUID {
	ids := make([]uuid.UUID, len(r.Teams))
	for i, t := range r.Teams {
		ids[i] = t.ID
	}
	return ids
}

func newTestSession(t *testing.T, players int) (*Session, Roster) {
	t.Helper()
	roster := fixtureRoster(32, players)
	s := New(uuid.New(), 2026, roster, autopick.NewSelector(autopick.DefaultWeights(), 0), clockwork.NewFakeClock())
	return s, roster
}

func TestStartOneRound(t *testing.T) {
	s, roster := newTestSession(t, 40)

	require.NoError(t, s.Start(baseOrderOf(roster), 1))

	snap := s.Status()
	assert.Equal(t, models.SessionStatusInProgress, snap.Status)
	assert.Equal(t, 32, snap.TotalSlots)
	assert.Equal(t, 0, snap.Cursor)

	evs := s.Events(0)
	require.Len(t, evs, 1)
	assert.Equal(t, models.EventSessionStarted, evs[0].Kind)
	assert.Equal(t, uint64(1), evs[0].Seq)
}

func TestStartRejectsInvalidOrder(t *testing.T) {
	roster := fixtureRoster(31, 10)
	s := New(uuid.New(), 2026, roster, autopick.NewBestAvailable(), clockwork.NewFakeClock())

	err := s.Start(baseOrderOf(roster), 1)
	require.ErrorIs(t, err, order.ErrInvalidOrder)

	assert.Equal(t, models.SessionStatusNotStarted, s.Status().Status)
	assert.Empty(t, s.Events(0), "failed start must append no event")
}

func TestStartTwice(t *testing.T) {
	s, roster := newTestSession(t, 40)
	require.NoError(t, s.Start(baseOrderOf(roster), 1))
	require.ErrorIs(t, s.Start(baseOrderOf(roster), 1), ErrAlreadyStarted)
}

func TestResolveNextAdvancesCursorAndLogsPicks(t *testing.T) {
	s, roster := newTestSession(t, 40)
	require.NoError(t, s.Start(baseOrderOf(roster), 1))

	const picks = 5
	for i := 0; i < picks; i++ {
		slot, err := s.ResolveNext(nil)
		require.NoError(t, err)
		assert.Equal(t, i+1, slot.OverallPick)
		assert.Equal(t, models.ResolutionAuto, slot.Method)
		require.NotNil(t, slot.PlayerID)
	}

	snap := s.Status()
	assert.Equal(t, picks, snap.Cursor)
	assert.Equal(t, 40-picks, s.PoolSize())

	made := 0
	for _, ev := range s.Events(0) {
		if ev.Kind == models.EventPickMade {
			made++
		}
	}
	assert.Equal(t, picks, made, "exactly one PickMade per resolution")
}

func TestResolveNextManual(t *testing.T) {
	s, roster := newTestSession(t, 40)
	require.NoError(t, s.Start(baseOrderOf(roster), 1))

	want := roster.Players[7]
	slot, err := s.ResolveNext(&want)
	require.NoError(t, err)
	assert.Equal(t, models.ResolutionManual, slot.Method)
	assert.Equal(t, want.ID, *slot.PlayerID)

	// the same player cannot be drafted twice
	_, err = s.ResolveNext(&want)
	require.ErrorIs(t, err, ErrPlayerUnavailable)
	assert.Equal(t, 1, s.Status().Cursor)
}

func TestResolveNextBeforeStart(t *testing.T) {
	s, _ := newTestSession(t, 40)
	_, err := s.ResolveNext(nil)
	require.ErrorIs(t, err, ErrNotInProgress)
}

func TestResolveNextExhausted(t *testing.T) {
	s, roster := newTestSession(t, 40)
	require.NoError(t, s.Start(baseOrderOf(roster), 1))
	for i := 0; i < 32; i++ {
		_, err := s.ResolveNext(nil)
		require.NoError(t, err)
	}

	before := len(s.Events(0))
	_, err := s.ResolveNext(nil)
	require.ErrorIs(t, err, ErrNoSlotsRemaining)
	assert.Equal(t, 32, s.Status().Cursor, "session unchanged")
	assert.Len(t, s.Events(0), before, "no event appended")
}

func TestEmptyPoolIsFatalButRecoverable(t *testing.T) {
	s, roster := newTestSession(t, 2)
	require.NoError(t, s.Start(baseOrderOf(roster), 1))

	for i := 0; i < 2; i++ {
		_, err := s.ResolveNext(nil)
		require.NoError(t, err)
	}

	_, err := s.ResolveNext(nil)
	require.ErrorIs(t, err, autopick.ErrEmptyPool)
	assert.Equal(t, models.SessionStatusInProgress, s.Status().Status,
		"session stays in progress so the caller may retry or cancel")

	// enlarging the pool makes the next call succeed
	s.AddPlayers([]models.Player{{ID: uuid.New(), Position: "K"}})
	_, err = s.ResolveNext(nil)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Status().Cursor)
}

func TestAddPlayersSkipsDrafted(t *testing.T) {
	s, roster := newTestSession(t, 3)
	require.NoError(t, s.Start(baseOrderOf(roster), 1))

	slot, err := s.ResolveNext(nil)
	require.NoError(t, err)

	var drafted models.Player
	for _, p := range roster.Players {
		if p.ID == *slot.PlayerID {
			drafted = p
		}
	}
	s.AddPlayers([]models.Player{drafted})
	assert.Equal(t, 2, s.PoolSize(), "drafted player must not re-enter the pool")
}

func TestTradeLifecycle(t *testing.T) {
	s, roster := newTestSession(t, 40)
	base := baseOrderOf(roster)
	require.NoError(t, s.Start(base, 2))

	teamA, teamB := base[0], base[1]
	p, err := s.ProposeTrade(models.TradeProposal{
		FromTeamID: teamA,
		ToTeamID:   teamB,
		FromSlots:  []int{33}, // teamA's round-2 pick
		ToSlots:    []int{34}, // teamB's round-2 pick
	})
	require.NoError(t, err)
	assert.Equal(t, models.TradeStatusProposed, p.Status)
	assert.Empty(t, eventsOfKind(s, models.EventTradeApplied), "propose appends no event")

	require.NoError(t, s.AcceptTrade(p.ID))

	slots := s.Slots()
	assert.Equal(t, teamB, slots[32].TeamID)
	assert.Equal(t, teamA, slots[33].TeamID)
	require.Len(t, eventsOfKind(s, models.EventTradeApplied), 1)

	// a consumed proposal cannot be accepted again
	require.ErrorIs(t, s.AcceptTrade(p.ID), ErrUnknownTrade)
}

func TestAcceptTradeRevalidates(t *testing.T) {
	s, roster := newTestSession(t, 40)
	base := baseOrderOf(roster)
	require.NoError(t, s.Start(base, 1))

	// propose a swap of picks 1 and 2, then resolve pick 1
	p, err := s.ProposeTrade(models.TradeProposal{
		FromTeamID: base[0], ToTeamID: base[1],
		FromSlots: []int{1}, ToSlots: []int{2},
	})
	require.NoError(t, err)

	_, err = s.ResolveNext(nil)
	require.NoError(t, err)

	before := len(s.Events(0))
	err = s.AcceptTrade(p.ID)
	require.Error(t, err)
	assert.Len(t, s.Events(0), before, "failed trade appends no event")
	assert.Equal(t, base[0], s.Slots()[0].TeamID, "ownership unchanged")
}

func TestRejectTrade(t *testing.T) {
	s, roster := newTestSession(t, 40)
	base := baseOrderOf(roster)
	require.NoError(t, s.Start(base, 1))

	p, err := s.ProposeTrade(models.TradeProposal{
		FromTeamID: base[0], ToTeamID: base[1],
		FromSlots: []int{1}, ToSlots: []int{2},
	})
	require.NoError(t, err)
	require.NoError(t, s.RejectTrade(p.ID))
	require.ErrorIs(t, s.AcceptTrade(p.ID), ErrUnknownTrade)
}

func TestCompleteIfDone(t *testing.T) {
	s, roster := newTestSession(t, 40)
	require.NoError(t, s.Start(baseOrderOf(roster), 1))

	done, err := s.CompleteIfDone()
	require.NoError(t, err)
	assert.False(t, done, "no-op while picks remain")

	for i := 0; i < 32; i++ {
		_, err := s.ResolveNext(nil)
		require.NoError(t, err)
	}

	done, err = s.CompleteIfDone()
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, models.SessionStatusCompleted, s.Status().Status)
	require.Len(t, eventsOfKind(s, models.EventSessionCompleted), 1)
}

func TestCancel(t *testing.T) {
	s, roster := newTestSession(t, 40)
	require.NoError(t, s.Start(baseOrderOf(roster), 1))
	require.NoError(t, s.Cancel("commissioner pulled the plug"))
	assert.Equal(t, models.SessionStatusCancelled, s.Status().Status)
	require.Len(t, eventsOfKind(s, models.EventSessionCancelled), 1)

	// terminal states admit no further transitions
	require.ErrorIs(t, s.Cancel("again"), ErrAlreadyTerminal)
	_, err := s.ResolveNext(nil)
	require.ErrorIs(t, err, ErrNotInProgress)
}

func TestCancelCompletedSession(t *testing.T) {
	s, roster := newTestSession(t, 40)
	require.NoError(t, s.Start(baseOrderOf(roster), 1))
	for i := 0; i < 32; i++ {
		_, err := s.ResolveNext(nil)
		require.NoError(t, err)
	}
	_, err := s.CompleteIfDone()
	require.NoError(t, err)

	before := len(s.Events(0))
	require.ErrorIs(t, s.Cancel("too late"), ErrAlreadyTerminal)
	assert.Len(t, s.Events(0), before, "state and event log unchanged")
}

func TestEventSequenceIsStrictlyIncreasing(t *testing.T) {
	s, roster := newTestSession(t, 40)
	require.NoError(t, s.Start(baseOrderOf(roster), 1))
	for i := 0; i < 10; i++ {
		_, err := s.ResolveNext(nil)
		require.NoError(t, err)
	}

	evs := s.Events(0)
	for i, ev := range evs {
		require.Equal(t, uint64(i+1), ev.Seq)
	}

	// incremental reads pick up exactly the tail
	tail := s.Events(5)
	require.Len(t, tail, len(evs)-5)
	assert.Equal(t, uint64(6), tail[0].Seq)
	assert.Empty(t, s.Events(uint64(len(evs))))
}

func TestAutoPickIsReproducible(t *testing.T) {
	roster := fixtureRoster(32, 64)
	base := baseOrderOf(roster)

	run := func() []uuid.UUID {
		s := New(uuid.New(), 2026, roster, autopick.NewSelector(autopick.DefaultWeights(), 0), clockwork.NewFakeClock())
		if err := s.Start(base, 1); err != nil {
			t.Fatal(err)
		}
		picked := make([]uuid.UUID, 0, 32)
		for i := 0; i < 32; i++ {
			slot, err := s.ResolveNext(nil)
			if err != nil {
				t.Fatal(err)
			}
			picked = append(picked, *slot.PlayerID)
		}
		return picked
	}

	first, second := run(), run()
	for i := range first {
		require.Equal(t, first[i], second[i], "pick %d differed between identical runs", i+1)
	}
}

func eventsOfKind(s *Session, kind models.EventKind) []models.DraftEvent {
	var out []models.DraftEvent
	for _, ev := range s.Events(0) {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}
