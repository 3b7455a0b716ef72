// Package session owns the draft session state machine: it sequences
// picks, delegates auto-picks to a strategy, applies trades, and emits
// the append-only event log that is the audit trail for everything
// that happened in a draft.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/gridironhq/draftroom/go/internal/draft/autopick"
	"github.com/gridironhq/draftroom/go/internal/draft/events"
	"github.com/gridironhq/draftroom/go/internal/draft/order"
	"github.com/gridironhq/draftroom/go/internal/draft/trade"
	"github.com/gridironhq/draftroom/go/internal/models"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

var (
	// ErrAlreadyStarted is returned by Start on a session past NOT_STARTED.
	ErrAlreadyStarted = errors.New("session already started")
	// ErrNotInProgress is returned by mutating calls outside IN_PROGRESS.
	ErrNotInProgress = errors.New("session is not in progress")
	// ErrNoSlotsRemaining is returned by ResolveNext once every slot is resolved.
	ErrNoSlotsRemaining = errors.New("no slots remaining")
	// ErrPlayerUnavailable is returned for a manual pick of a player not in the pool.
	ErrPlayerUnavailable = errors.New("player is not in the remaining pool")
	// ErrAlreadyTerminal is returned by Cancel on a completed or cancelled session.
	ErrAlreadyTerminal = errors.New("session is already terminal")
	// ErrUnknownTrade is returned when accepting or rejecting an unknown proposal.
	ErrUnknownTrade = errors.New("unknown trade proposal")
)

// Session is one independently owned draft run. All mutating operations
// take the write lock; snapshot reads take the read lock and return
// copies, so readers observe either the pre- or post-operation state,
// never a partial one.
//
// Every mutating operation is one atomic step: state, pool, and event
// log update together or not at all. Failure paths return before the
// first mutation.
type Session struct {
	mu    sync.RWMutex
	clock clockwork.Clock
	strat autopick.Strategy

	state     models.DraftSession
	teams     map[uuid.UUID]models.Team
	needs     map[uuid.UUID][]models.TeamNeed
	pool      map[uuid.UUID]models.Player
	proposals map[uuid.UUID]models.TradeProposal

	seq      uint64
	eventLog []models.DraftEvent
}

// Roster is the already-resolved data a session operates on. The engine
// performs no I/O of its own; collaborators load this up front.
type Roster struct {
	Teams   []models.Team
	Needs   []models.TeamNeed
	Players []models.Player
}

// New constructs a session in NOT_STARTED with the given player pool.
func New(id uuid.UUID, year int, roster Roster, strat autopick.Strategy, clock clockwork.Clock) *Session {
	s := &Session{
		clock: clock,
		strat: strat,
		state: models.DraftSession{
			ID:        id,
			Year:      year,
			Status:    models.SessionStatusNotStarted,
			CreatedAt: clock.Now(),
		},
		teams:     make(map[uuid.UUID]models.Team, len(roster.Teams)),
		needs:     make(map[uuid.UUID][]models.TeamNeed),
		pool:      make(map[uuid.UUID]models.Player, len(roster.Players)),
		proposals: make(map[uuid.UUID]models.TradeProposal),
	}
	for _, team := range roster.Teams {
		s.teams[team.ID] = team
	}
	for _, need := range roster.Needs {
		s.needs[need.TeamID] = append(s.needs[need.TeamID], need)
	}
	for _, player := range roster.Players {
		s.pool[player.ID] = player
	}
	return s
}

// Start builds the pick order and moves the session to IN_PROGRESS.
func (s *Session) Start(baseOrder []uuid.UUID, rounds int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Status != models.SessionStatusNotStarted {
		return ErrAlreadyStarted
	}

	slots, err := order.Build(baseOrder, rounds)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	payload := events.SessionStartedPayload{
		SessionID:  s.state.ID.String(),
		Year:       s.state.Year,
		Rounds:     rounds,
		TotalSlots: len(slots),
		StartedAt:  now,
	}
	ev, err := s.stageEvent(models.EventSessionStarted, payload)
	if err != nil {
		return err
	}

	s.state.Rounds = rounds
	s.state.Slots = slots
	s.state.Status = models.SessionStatusInProgress
	s.state.StartedAt = &now
	s.commitEvent(ev)

	log.Info().
		Str("session_id", s.state.ID.String()).
		Int("rounds", rounds).
		Int("total_slots", len(slots)).
		Msg("session started")
	return nil
}

// ResolveNext resolves the slot at the cursor. With a manual player the
// slot resolves MANUAL; with nil it delegates to the auto-pick strategy
// and resolves AUTO. The chosen player leaves the pool, the cursor
// advances, and exactly one PickMade event is appended.
//
// An empty pool surfaces as autopick.ErrEmptyPool and is fatal for this
// call only: the session stays IN_PROGRESS so the caller may enlarge
// the pool and retry, or cancel.
func (s *Session) ResolveNext(manual *models.Player) (models.PickSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Status != models.SessionStatusInProgress {
		return models.PickSlot{}, ErrNotInProgress
	}
	if s.state.Cursor >= len(s.state.Slots) {
		return models.PickSlot{}, ErrNoSlotsRemaining
	}

	slot := &s.state.Slots[s.state.Cursor]

	var chosen models.Player
	var method models.ResolutionMethod
	if manual != nil {
		picked, ok := s.pool[manual.ID]
		if !ok {
			return models.PickSlot{}, fmt.Errorf("%w: %s", ErrPlayerUnavailable, manual.ID)
		}
		chosen = picked
		method = models.ResolutionManual
	} else {
		picked, err := s.strat.Select(s.teams[slot.TeamID], s.poolSlice(), s.needs[slot.TeamID])
		if err != nil {
			return models.PickSlot{}, err
		}
		chosen = picked
		method = models.ResolutionAuto
	}

	now := s.clock.Now()
	payload := events.PickMadePayload{
		SessionID:   s.state.ID.String(),
		TeamID:      slot.TeamID.String(),
		PlayerID:    chosen.ID.String(),
		Round:       slot.Round,
		Pick:        slot.Pick,
		OverallPick: slot.OverallPick,
		Method:      method,
		MadeAt:      now,
	}
	ev, err := s.stageEvent(models.EventPickMade, payload)
	if err != nil {
		return models.PickSlot{}, err
	}

	playerID := chosen.ID
	slot.PlayerID = &playerID
	slot.Method = method
	slot.PickedAt = &now
	delete(s.pool, chosen.ID)
	s.state.Cursor++
	s.commitEvent(ev)

	log.Info().
		Str("session_id", s.state.ID.String()).
		Str("team_id", slot.TeamID.String()).
		Str("player_id", chosen.ID.String()).
		Int("overall_pick", slot.OverallPick).
		Str("method", string(method)).
		Msg("pick made")

	return *slot, nil
}

// ProposeTrade validates a proposal and records it as PROPOSED. No
// event is appended until the proposal is accepted.
func (s *Session) ProposeTrade(p models.TradeProposal) (models.TradeProposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Status != models.SessionStatusInProgress {
		return models.TradeProposal{}, ErrNotInProgress
	}
	if err := trade.Validate(p, &s.state); err != nil {
		return models.TradeProposal{}, err
	}

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.Status = models.TradeStatusProposed
	p.CreatedAt = s.clock.Now()
	s.proposals[p.ID] = p
	return p, nil
}

// AcceptTrade re-validates a recorded proposal against current
// ownership, applies the swap, and appends exactly one TradeApplied
// event. Ownership moves atomically: all slots swap or none do.
func (s *Session) AcceptTrade(proposalID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Status != models.SessionStatusInProgress {
		return ErrNotInProgress
	}
	p, ok := s.proposals[proposalID]
	if !ok || p.Status != models.TradeStatusProposed {
		return ErrUnknownTrade
	}
	// Slots may have resolved or changed hands since the proposal.
	if err := trade.Validate(p, &s.state); err != nil {
		return err
	}

	now := s.clock.Now()
	overalls := make([]int, 0, len(p.FromSlots)+len(p.ToSlots))
	overalls = append(overalls, p.FromSlots...)
	overalls = append(overalls, p.ToSlots...)
	payload := events.TradeAppliedPayload{
		SessionID:  s.state.ID.String(),
		TradeID:    p.ID.String(),
		FromTeamID: p.FromTeamID.String(),
		ToTeamID:   p.ToTeamID.String(),
		Overalls:   overalls,
		AppliedAt:  now,
	}
	ev, err := s.stageEvent(models.EventTradeApplied, payload)
	if err != nil {
		return err
	}

	trade.Apply(p, &s.state)
	p.Status = models.TradeStatusAccepted
	s.proposals[p.ID] = p
	s.commitEvent(ev)

	log.Info().
		Str("session_id", s.state.ID.String()).
		Str("trade_id", p.ID.String()).
		Ints("overalls", overalls).
		Msg("trade applied")
	return nil
}

// RejectTrade marks a recorded proposal REJECTED. No event is appended;
// only applied trades reach the audit trail.
func (s *Session) RejectTrade(proposalID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.proposals[proposalID]
	if !ok || p.Status != models.TradeStatusProposed {
		return ErrUnknownTrade
	}
	p.Status = models.TradeStatusRejected
	s.proposals[p.ID] = p
	return nil
}

// CompleteIfDone transitions to COMPLETED once every slot is resolved.
// It is a no-op while picks remain.
func (s *Session) CompleteIfDone() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Status != models.SessionStatusInProgress {
		return false, ErrNotInProgress
	}
	if s.state.Cursor < len(s.state.Slots) {
		return false, nil
	}

	now := s.clock.Now()
	var duration string
	if s.state.StartedAt != nil {
		duration = now.Sub(*s.state.StartedAt).String()
	}
	payload := events.SessionCompletedPayload{
		SessionID:   s.state.ID.String(),
		TotalPicks:  len(s.state.Slots),
		CompletedAt: now,
		Duration:    duration,
	}
	ev, err := s.stageEvent(models.EventSessionCompleted, payload)
	if err != nil {
		return false, err
	}

	s.state.Status = models.SessionStatusCompleted
	s.state.CompletedAt = &now
	s.commitEvent(ev)

	log.Info().
		Str("session_id", s.state.ID.String()).
		Int("total_picks", len(s.state.Slots)).
		Msg("session completed")
	return true, nil
}

// Cancel moves a NOT_STARTED or IN_PROGRESS session to CANCELLED.
func (s *Session) Cancel(reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Status.Terminal() {
		return ErrAlreadyTerminal
	}

	now := s.clock.Now()
	payload := events.SessionCancelledPayload{
		SessionID:   s.state.ID.String(),
		Reason:      reason,
		CancelledAt: now,
	}
	ev, err := s.stageEvent(models.EventSessionCancelled, payload)
	if err != nil {
		return err
	}

	s.state.Status = models.SessionStatusCancelled
	s.commitEvent(ev)

	log.Info().
		Str("session_id", s.state.ID.String()).
		Str("reason", reason).
		Msg("session cancelled")
	return nil
}

// AddPlayers enlarges the remaining pool, e.g. after ErrEmptyPool.
// Players already drafted in this session are not re-added.
func (s *Session) AddPlayers(players []models.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drafted := make(map[uuid.UUID]struct{})
	for _, slot := range s.state.Slots {
		if slot.PlayerID != nil {
			drafted[*slot.PlayerID] = struct{}{}
		}
	}
	for _, p := range players {
		if _, taken := drafted[p.ID]; !taken {
			s.pool[p.ID] = p
		}
	}
}

// StatusSnapshot is the result of a Status read.
type StatusSnapshot struct {
	SessionID  uuid.UUID            `json:"session_id"`
	Status     models.SessionStatus `json:"status"`
	Cursor     int                  `json:"cursor"`
	TotalSlots int                  `json:"total_slots"`
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.state.ID
}

// Status returns a consistent point-in-time status snapshot.
func (s *Session) Status() StatusSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StatusSnapshot{
		SessionID:  s.state.ID,
		Status:     s.state.Status,
		Cursor:     s.state.Cursor,
		TotalSlots: len(s.state.Slots),
	}
}

// Slots returns a copy of the ordered slot sequence.
func (s *Session) Slots() []models.PickSlot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.PickSlot, len(s.state.Slots))
	copy(out, s.state.Slots)
	return out
}

// Events returns a copy of every event with Seq > sinceSeq, in order.
// Callers page incrementally with their last seen sequence number.
func (s *Session) Events(sinceSeq uint64) []models.DraftEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Seq is contiguous from 1, so the log index is seq-1.
	if sinceSeq >= uint64(len(s.eventLog)) {
		return nil
	}
	out := make([]models.DraftEvent, len(s.eventLog)-int(sinceSeq))
	copy(out, s.eventLog[sinceSeq:])
	return out
}

// PoolSize returns the count of players remaining in the pool.
func (s *Session) PoolSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pool)
}

// stageEvent builds the next event without appending it. Callers commit
// it with commitEvent after the state mutation succeeds, so a failed
// operation never leaves a dangling event and a resolved slot never
// lacks one.
func (s *Session) stageEvent(kind models.EventKind, payload any) (models.DraftEvent, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return models.DraftEvent{}, fmt.Errorf("marshal %s payload: %w", kind, err)
	}
	return models.DraftEvent{
		SessionID: s.state.ID,
		Seq:       s.seq + 1,
		Kind:      kind,
		Payload:   raw,
		At:        s.clock.Now(),
	}, nil
}

func (s *Session) commitEvent(ev models.DraftEvent) {
	s.seq = ev.Seq
	s.eventLog = append(s.eventLog, ev)
}

// poolSlice materializes the remaining pool ordered by player ID. The
// ordering keeps strategy input stable for "why this pick" replays.
func (s *Session) poolSlice() []models.Player {
	players := make([]models.Player, 0, len(s.pool))
	for _, p := range s.pool {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].ID.String() < players[j].ID.String()
	})
	return players
}
