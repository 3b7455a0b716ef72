package draft

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gridironhq/draftroom/go/internal/draft/autopick"
	"github.com/gridironhq/draftroom/go/internal/draft/order"
	"github.com/gridironhq/draftroom/go/internal/draft/session"
	"github.com/gridironhq/draftroom/go/internal/draft/trade"
	"github.com/gridironhq/draftroom/go/internal/models"
)

// Service maps the draft App onto a JSON-over-HTTP surface.
type Service struct {
	app *App
}

// NewService creates a new draft HTTP service.
func NewService(app *App) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts every session route on the mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	mux.HandleFunc("POST /api/sessions/{id}/start", s.handleStartSession)
	mux.HandleFunc("POST /api/sessions/{id}/picks", s.handleMakePick)
	mux.HandleFunc("POST /api/sessions/{id}/trades", s.handleProposeTrade)
	mux.HandleFunc("POST /api/sessions/{id}/trades/{tradeID}/accept", s.handleAcceptTrade)
	mux.HandleFunc("POST /api/sessions/{id}/trades/{tradeID}/reject", s.handleRejectTrade)
	mux.HandleFunc("POST /api/sessions/{id}/cancel", s.handleCancelSession)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleGetStatus)
	mux.HandleFunc("GET /api/sessions/{id}/slots", s.handleGetSlots)
	mux.HandleFunc("GET /api/sessions/{id}/events", s.handleGetEvents)
}

type createSessionRequest struct {
	Year int `json:"year"`
}

func (s *Service) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	snap, err := s.app.CreateSession(r.Context(), CreateSessionRequest{Year: req.Year})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

type startSessionRequest struct {
	BaseOrder []uuid.UUID `json:"base_order,omitempty"`
	Rounds    int         `json:"rounds"`
}

func (s *Service) handleStartSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	snap, err := s.app.StartSession(r.Context(), id, req.BaseOrder, req.Rounds)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

type makePickRequest struct {
	// PlayerID selects a manual pick; omit it for an auto-pick.
	PlayerID *uuid.UUID `json:"player_id,omitempty"`
}

func (s *Service) handleMakePick(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req makePickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var slot models.PickSlot
	var err error
	if req.PlayerID != nil {
		slot, err = s.app.MakePick(r.Context(), id, *req.PlayerID)
	} else {
		slot, err = s.app.AutoPick(r.Context(), id)
	}
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, slot)
}

func (s *Service) handleProposeTrade(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var proposal models.TradeProposal
	if err := json.NewDecoder(r.Body).Decode(&proposal); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	accepted, err := s.app.ProposeTrade(r.Context(), id, proposal)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, accepted)
}

func (s *Service) handleAcceptTrade(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	tradeID, ok := pathID(w, r, "tradeID")
	if !ok {
		return
	}
	if err := s.app.AcceptTrade(r.Context(), id, tradeID); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleRejectTrade(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	tradeID, ok := pathID(w, r, "tradeID")
	if !ok {
		return
	}
	if err := s.app.RejectTrade(r.Context(), id, tradeID); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type cancelSessionRequest struct {
	Reason string `json:"reason"`
}

func (s *Service) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req cancelSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.app.CancelSession(r.Context(), id, req.Reason); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	snap, err := s.app.GetStatus(r.Context(), id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Service) handleGetSlots(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	slots, err := s.app.GetSlots(r.Context(), id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, slots)
}

func (s *Service) handleGetEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var since uint64
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		since = parsed
	}

	events, err := s.app.GetEvents(r.Context(), id, since)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeEngineError translates engine sentinels to HTTP status codes.
// Every engine error is a recoverable condition for the caller, so
// nothing here maps to a 5xx.
func writeEngineError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, session.ErrUnknownTrade):
		status = http.StatusNotFound
	case errors.Is(err, order.ErrInvalidOrder),
		errors.Is(err, trade.ErrSelfTrade),
		errors.Is(err, trade.ErrEmptyOffer),
		errors.Is(err, trade.ErrUnknownSlot),
		errors.Is(err, trade.ErrNotSlotOwner):
		status = http.StatusBadRequest
	case errors.Is(err, session.ErrAlreadyStarted),
		errors.Is(err, session.ErrNotInProgress),
		errors.Is(err, session.ErrNoSlotsRemaining),
		errors.Is(err, session.ErrAlreadyTerminal),
		errors.Is(err, session.ErrSessionExists),
		errors.Is(err, trade.ErrAlreadyResolved):
		status = http.StatusConflict
	case errors.Is(err, session.ErrPlayerUnavailable),
		errors.Is(err, autopick.ErrEmptyPool):
		status = http.StatusUnprocessableEntity
	}
	writeError(w, status, err)
}
