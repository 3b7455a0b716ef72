// Package trade validates and applies pick-ownership exchanges between
// two teams in a draft session.
package trade

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gridironhq/draftroom/go/internal/models"
)

var (
	// ErrSelfTrade is returned when both sides of a proposal are the same team.
	ErrSelfTrade = errors.New("teams cannot trade with themselves")
	// ErrEmptyOffer is returned when either side offers zero slots.
	ErrEmptyOffer = errors.New("both sides must offer at least one slot")
	// ErrUnknownSlot is returned when a referenced slot does not exist in the session.
	ErrUnknownSlot = errors.New("slot does not belong to session")
	// ErrAlreadyResolved is returned when a referenced slot already has a player.
	ErrAlreadyResolved = errors.New("slot is already resolved")
	// ErrNotSlotOwner is returned when a side offers a slot it does not own.
	ErrNotSlotOwner = errors.New("team does not own offered slot")
)

// Validate checks a proposal against the session. Trades may only move
// unresolved slots, and each side may only offer slots it currently owns.
func Validate(p models.TradeProposal, s *models.DraftSession) error {
	if p.FromTeamID == p.ToTeamID {
		return ErrSelfTrade
	}
	if len(p.FromSlots) == 0 || len(p.ToSlots) == 0 {
		return ErrEmptyOffer
	}
	if err := validateSide(p.FromTeamID, p.FromSlots, s); err != nil {
		return err
	}
	return validateSide(p.ToTeamID, p.ToSlots, s)
}

func validateSide(teamID uuid.UUID, overalls []int, s *models.DraftSession) error {
	for _, overall := range overalls {
		slot := findSlot(s, overall)
		if slot == nil {
			return fmt.Errorf("%w: overall %d", ErrUnknownSlot, overall)
		}
		if slot.Resolved() {
			return fmt.Errorf("%w: overall %d", ErrAlreadyResolved, overall)
		}
		if slot.TeamID != teamID {
			return fmt.Errorf("%w: overall %d", ErrNotSlotOwner, overall)
		}
	}
	return nil
}

// Apply swaps owning-team references for every slot in the proposal.
// It must only be called after Validate succeeds; it mutates the
// session in place and swaps all slots or none. Resolution state,
// player assignment, and numbering are never touched.
//
// The returned slice lists every exchanged overall number in proposal
// order, for the TradeApplied event payload.
func Apply(p models.TradeProposal, s *models.DraftSession) []int {
	exchanged := make([]int, 0, len(p.FromSlots)+len(p.ToSlots))
	for _, overall := range p.FromSlots {
		findSlot(s, overall).TeamID = p.ToTeamID
		exchanged = append(exchanged, overall)
	}
	for _, overall := range p.ToSlots {
		findSlot(s, overall).TeamID = p.FromTeamID
		exchanged = append(exchanged, overall)
	}
	return exchanged
}

// findSlot locates a slot by overall number. Overall numbers are
// contiguous from 1, so this is an index lookup with a bounds check.
func findSlot(s *models.DraftSession, overall int) *models.PickSlot {
	if overall < 1 || overall > len(s.Slots) {
		return nil
	}
	slot := &s.Slots[overall-1]
	if slot.OverallPick != overall {
		return nil
	}
	return slot
}
