package relay

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/gridironhq/draftroom/go/internal/draft/autopick"
	"github.com/gridironhq/draftroom/go/internal/draft/session"
	"github.com/gridironhq/draftroom/go/internal/models"
)

type capturePublisher struct {
	events   []models.DraftEvent
	failNext int
}

func (c *capturePublisher) Publish(_ context.Context, ev models.DraftEvent) error {
	if c.failNext > 0 {
		c.failNext--
		return errors.New("bus unavailable")
	}
	c.events = append(c.events, ev)
	return nil
}

type captureStore struct {
	events []models.DraftEvent
}

func (c *captureStore) Append(_ context.Context, ev models.DraftEvent) error {
	c.events = append(c.events, ev)
	return nil
}

func activeSession(t *testing.T, picks int) *session.Session {
	t.Helper()
	roster := session.Roster{}
	base := make([]uuid.UUID, 32)
	for i := range base {
		base[i] = uuid.New()
		roster.Teams = append(roster.Teams, models.Team{ID: base[i]})
	}
	for i := 0; i < 40; i++ {
		roster.Players = append(roster.Players, models.Player{ID: uuid.New(), Position: "WR"})
	}
	s := session.New(uuid.New(), 2026, roster, autopick.NewBestAvailable(), clockwork.NewFakeClock())
	require.NoError(t, s.Start(base, 1))
	for i := 0; i < picks; i++ {
		_, err := s.ResolveNext(nil)
		require.NoError(t, err)
	}
	return s
}

func testRelay(src SessionSource, store Store, pub Publisher) *Relay {
	cfg := DefaultConfig()
	cfg.MaxRetries = 0
	return New(src, store, pub, cfg, clockwork.NewFakeClock(), slog.Default())
}

func TestDrainForwardsInOrder(t *testing.T) {
	s := activeSession(t, 3)
	reg := session.NewRegistry()
	require.NoError(t, reg.Put(s))

	pub := &capturePublisher{}
	store := &captureStore{}
	r := testRelay(reg, store, pub)

	r.Drain(context.Background())

	require.Len(t, pub.events, 4) // SessionStarted + 3 PickMade
	for i, ev := range pub.events {
		require.Equal(t, uint64(i+1), ev.Seq)
	}
	require.Equal(t, pub.events, store.events, "store sees the same ordered stream")

	// a second drain with no new events forwards nothing
	r.Drain(context.Background())
	require.Len(t, pub.events, 4)
}

func TestDrainPicksUpNewEventsPastWatermark(t *testing.T) {
	s := activeSession(t, 1)
	reg := session.NewRegistry()
	require.NoError(t, reg.Put(s))

	pub := &capturePublisher{}
	r := testRelay(reg, nil, pub)

	r.Drain(context.Background())
	require.Len(t, pub.events, 2)

	_, err := s.ResolveNext(nil)
	require.NoError(t, err)

	r.Drain(context.Background())
	require.Len(t, pub.events, 3)
	require.Equal(t, uint64(3), pub.events[2].Seq)
}

func TestFailedPublishStopsDrainWithoutSkipping(t *testing.T) {
	s := activeSession(t, 2)
	reg := session.NewRegistry()
	require.NoError(t, reg.Put(s))

	pub := &capturePublisher{failNext: 1}
	r := testRelay(reg, nil, pub)

	r.Drain(context.Background())
	require.Empty(t, pub.events, "first event failed; nothing may be skipped past it")

	r.Drain(context.Background())
	require.Len(t, pub.events, 3)
	for i, ev := range pub.events {
		require.Equal(t, uint64(i+1), ev.Seq, "retry resumes from the watermark in order")
	}
}
