package game

import (
	"cases_backend/internal/apperr"
	"cases_backend/internal/model"
	"fmt"
)

type event string

const (
	eventQuotaMet       event = "quota_met"
	eventOfferRequested event = "offer_requested"
	eventDeal           event = "deal"
	eventNoDeal         event = "no_deal"
	eventOpenOwnCase    event = "open_own_case"
)

// transition is the only place a round's phase changes:
//
//	opening -> offer -> decision -> opening (loop) | completed
//
// An event arriving outside its legal phase is rejected without
// touching the round.
func transition(round *model.Round, ev event) error {
	switch ev {
	case eventQuotaMet:
		if round.Phase != model.PhaseOpening {
			return phaseConflict(round, ev)
		}
		round.Phase = model.PhaseOffer

	case eventOfferRequested:
		if round.Phase != model.PhaseOffer {
			return phaseConflict(round, ev)
		}
		round.Phase = model.PhaseDecision

	case eventDeal, eventOpenOwnCase:
		if round.Phase != model.PhaseDecision {
			return phaseConflict(round, ev)
		}
		round.Phase = model.PhaseCompleted

	case eventNoDeal:
		// once only two live cases remain the round enters the final
		// stage: the last offer stands and only deal/open_own_case
		// are legal
		if round.Phase != model.PhaseDecision || round.FinalStage {
			return phaseConflict(round, ev)
		}
		if round.LiveCases() <= 2 {
			round.FinalStage = true
		} else {
			round.Phase = model.PhaseOpening
		}

	default:
		return fmt.Errorf("unknown event %q: %w", ev, apperr.ErrInternal)
	}

	return nil
}

func phaseConflict(round *model.Round, ev event) error {
	return fmt.Errorf("event %q in phase %q: %w", ev, round.Phase, apperr.ErrPhaseConflict)
}
