package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/gridironhq/draftroom/go/internal/draft/autopick"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()
	s := New(uuid.New(), 2026, Roster{}, autopick.NewBestAvailable(), clockwork.NewFakeClock())

	_, err := r.Get(s.ID())
	require.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, r.Put(s))
	require.ErrorIs(t, r.Put(s), ErrSessionExists)

	got, err := r.Get(s.ID())
	require.NoError(t, err)
	require.Same(t, s, got)
	require.Len(t, r.List(), 1)

	require.NoError(t, r.Delete(s.ID()))
	require.ErrorIs(t, r.Delete(s.ID()), ErrSessionNotFound)
}
