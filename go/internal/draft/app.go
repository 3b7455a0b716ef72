// Package draft exposes the draft session engine to the outside world:
// the App wires the session registry to the entity store, and the
// Service maps it onto HTTP.
package draft

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/gridironhq/draftroom/go/internal/draft/autopick"
	"github.com/gridironhq/draftroom/go/internal/draft/session"
	"github.com/gridironhq/draftroom/go/internal/models"
)

// TeamsRepository defines what the app layer needs from the teams store.
type TeamsRepository interface {
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	ListTeamNeeds(ctx context.Context, teamID uuid.UUID) ([]models.TeamNeed, error)
}

// PlayerRepository defines what the app layer needs from the player store.
type PlayerRepository interface {
	ListAvailablePlayers(ctx context.Context, draftYear int) ([]models.Player, error)
}

// App handles draft session business logic. Each session is an
// independently locked unit; the App never holds one session's lock
// while touching another.
type App struct {
	registry *session.Registry
	teams    TeamsRepository
	players  PlayerRepository
	strat    autopick.Strategy
	clock    clockwork.Clock
}

// NewApp creates a new draft App.
func NewApp(registry *session.Registry, teams TeamsRepository, players PlayerRepository, strat autopick.Strategy, clock clockwork.Clock) *App {
	return &App{
		registry: registry,
		teams:    teams,
		players:  players,
		strat:    strat,
		clock:    clock,
	}
}

// CreateSessionRequest carries parameters for a new session.
type CreateSessionRequest struct {
	ID   uuid.UUID `json:"id"`
	Year int       `json:"year"`
}

// CreateSession loads the roster snapshot for the draft year, builds a
// NOT_STARTED session, and registers it.
func (a *App) CreateSession(ctx context.Context, req CreateSessionRequest) (session.StatusSnapshot, error) {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}

	teams, err := a.teams.ListTeams(ctx)
	if err != nil {
		return session.StatusSnapshot{}, fmt.Errorf("failed to load teams: %w", err)
	}

	roster := session.Roster{Teams: teams}
	for _, team := range teams {
		needs, err := a.teams.ListTeamNeeds(ctx, team.ID)
		if err != nil {
			return session.StatusSnapshot{}, fmt.Errorf("failed to load needs for %s: %w", team.Abbr, err)
		}
		roster.Needs = append(roster.Needs, needs...)
	}

	roster.Players, err = a.players.ListAvailablePlayers(ctx, req.Year)
	if err != nil {
		return session.StatusSnapshot{}, fmt.Errorf("failed to load player pool: %w", err)
	}

	s := session.New(req.ID, req.Year, roster, a.strat, a.clock)
	if err := a.registry.Put(s); err != nil {
		return session.StatusSnapshot{}, err
	}

	log.Info().
		Str("session_id", req.ID.String()).
		Int("year", req.Year).
		Int("pool_size", len(roster.Players)).
		Msg("created draft session")
	return s.Status(), nil
}

// StartSession starts a session. An empty baseOrder falls back to the
// stored team list order.
func (a *App) StartSession(ctx context.Context, id uuid.UUID, baseOrder []uuid.UUID, rounds int) (session.StatusSnapshot, error) {
	s, err := a.registry.Get(id)
	if err != nil {
		return session.StatusSnapshot{}, err
	}

	if len(baseOrder) == 0 {
		teams, err := a.teams.ListTeams(ctx)
		if err != nil {
			return session.StatusSnapshot{}, fmt.Errorf("failed to load default order: %w", err)
		}
		baseOrder = make([]uuid.UUID, len(teams))
		for i, team := range teams {
			baseOrder[i] = team.ID
		}
	}

	if err := s.Start(baseOrder, rounds); err != nil {
		return session.StatusSnapshot{}, err
	}
	return s.Status(), nil
}

// MakePick resolves the next slot with a manually chosen player, then
// completes the session if that was the final pick.
func (a *App) MakePick(ctx context.Context, sessionID, playerID uuid.UUID) (models.PickSlot, error) {
	s, err := a.registry.Get(sessionID)
	if err != nil {
		return models.PickSlot{}, err
	}

	slot, err := s.ResolveNext(&models.Player{ID: playerID})
	if err != nil {
		return models.PickSlot{}, err
	}
	a.finalizeIfComplete(s)
	return slot, nil
}

// AutoPick resolves the next slot via the auto-pick strategy, then
// completes the session if that was the final pick.
func (a *App) AutoPick(ctx context.Context, sessionID uuid.UUID) (models.PickSlot, error) {
	s, err := a.registry.Get(sessionID)
	if err != nil {
		return models.PickSlot{}, err
	}

	slot, err := s.ResolveNext(nil)
	if err != nil {
		return models.PickSlot{}, err
	}
	a.finalizeIfComplete(s)
	return slot, nil
}

func (a *App) finalizeIfComplete(s *session.Session) {
	done, err := s.CompleteIfDone()
	if err != nil {
		log.Error().Err(err).Str("session_id", s.ID().String()).Msg("completion check failed")
		return
	}
	if done {
		log.Info().Str("session_id", s.ID().String()).Msg("final pick made; session completed")
	}
}

// ProposeTrade records a validated trade proposal on the session.
func (a *App) ProposeTrade(ctx context.Context, sessionID uuid.UUID, p models.TradeProposal) (models.TradeProposal, error) {
	s, err := a.registry.Get(sessionID)
	if err != nil {
		return models.TradeProposal{}, err
	}
	return s.ProposeTrade(p)
}

// AcceptTrade applies a previously proposed trade.
func (a *App) AcceptTrade(ctx context.Context, sessionID, tradeID uuid.UUID) error {
	s, err := a.registry.Get(sessionID)
	if err != nil {
		return err
	}
	return s.AcceptTrade(tradeID)
}

// RejectTrade declines a previously proposed trade.
func (a *App) RejectTrade(ctx context.Context, sessionID, tradeID uuid.UUID) error {
	s, err := a.registry.Get(sessionID)
	if err != nil {
		return err
	}
	return s.RejectTrade(tradeID)
}

// CancelSession cancels a session with a reason.
func (a *App) CancelSession(ctx context.Context, sessionID uuid.UUID, reason string) error {
	s, err := a.registry.Get(sessionID)
	if err != nil {
		return err
	}
	return s.Cancel(reason)
}

// GetStatus returns a status snapshot for a session.
func (a *App) GetStatus(ctx context.Context, sessionID uuid.UUID) (session.StatusSnapshot, error) {
	s, err := a.registry.Get(sessionID)
	if err != nil {
		return session.StatusSnapshot{}, err
	}
	return s.Status(), nil
}

// GetSlots returns the ordered slot sequence for a session.
func (a *App) GetSlots(ctx context.Context, sessionID uuid.UUID) ([]models.PickSlot, error) {
	s, err := a.registry.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return s.Slots(), nil
}

// GetEvents returns session events with seq > sinceSeq.
func (a *App) GetEvents(ctx context.Context, sessionID uuid.UUID, sinceSeq uint64) ([]models.DraftEvent, error) {
	s, err := a.registry.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return s.Events(sinceSeq), nil
}
