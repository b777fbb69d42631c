package game

import (
	"cases_backend/internal/apperr"
	"cases_backend/internal/model"
	"errors"
	"testing"
)

func transitionRound(phase model.Phase) *model.Round {
	return &model.Round{
		ID:         "tr-round",
		CaseValues: append([]int64(nil), standardTier.Ladder...),
		PlayerCase: 1,
		Phase:      phase,
	}
}

func TestTransitionHappyLoop(t *testing.T) {
	round := transitionRound(model.PhaseOpening)

	if err := transition(round, eventQuotaMet); err != nil {
		t.Fatal(err)
	}
	if round.Phase != model.PhaseOffer {
		t.Fatalf("phase = %s, want offer", round.Phase)
	}

	if err := transition(round, eventOfferRequested); err != nil {
		t.Fatal(err)
	}
	if round.Phase != model.PhaseDecision {
		t.Fatalf("phase = %s, want decision", round.Phase)
	}

	if err := transition(round, eventNoDeal); err != nil {
		t.Fatal(err)
	}
	if round.Phase != model.PhaseOpening {
		t.Fatalf("phase = %s, want opening after no_deal", round.Phase)
	}
}

func TestTransitionTerminalEvents(t *testing.T) {
	for _, ev := range []event{eventDeal, eventOpenOwnCase} {
		round := transitionRound(model.PhaseDecision)
		if err := transition(round, ev); err != nil {
			t.Fatalf("%s: %v", ev, err)
		}
		if round.Phase != model.PhaseCompleted {
			t.Fatalf("%s: phase = %s, want completed", ev, round.Phase)
		}
	}
}

func TestTransitionRejectsOutOfPhaseEvents(t *testing.T) {
	cases := []struct {
		phase model.Phase
		ev    event
	}{
		{model.PhaseOpening, eventOfferRequested},
		{model.PhaseOpening, eventDeal},
		{model.PhaseOpening, eventNoDeal},
		{model.PhaseOpening, eventOpenOwnCase},
		{model.PhaseOffer, eventQuotaMet},
		{model.PhaseOffer, eventDeal},
		{model.PhaseOffer, eventNoDeal},
		{model.PhaseDecision, eventQuotaMet},
		{model.PhaseDecision, eventOfferRequested},
		{model.PhaseCompleted, eventQuotaMet},
		{model.PhaseCompleted, eventDeal},
		{model.PhaseCompleted, eventNoDeal},
	}

	for _, tc := range cases {
		round := transitionRound(tc.phase)
		before := *round

		err := transition(round, tc.ev)
		if !errors.Is(err, apperr.ErrPhaseConflict) {
			t.Errorf("%s in %s: err = %v, want phase conflict", tc.ev, tc.phase, err)
		}
		if round.Phase != before.Phase || round.FinalStage != before.FinalStage {
			t.Errorf("%s in %s: round mutated on rejected event", tc.ev, tc.phase)
		}
	}
}

func TestTransitionNoDealEntersFinalStage(t *testing.T) {
	round := transitionRound(model.PhaseDecision)

	// leave two live cases: the player's and one other
	for c := 2; c <= round.CaseCount()-1; c++ {
		round.OpenedCases = append(round.OpenedCases, c)
	}

	if err := transition(round, eventNoDeal); err != nil {
		t.Fatal(err)
	}
	if !round.FinalStage {
		t.Fatal("FinalStage not set with two live cases")
	}
	if round.Phase != model.PhaseDecision {
		t.Fatalf("phase = %s, want decision in final stage", round.Phase)
	}

	// the final stage forces a terminal decision
	if err := transition(round, eventNoDeal); !errors.Is(err, apperr.ErrPhaseConflict) {
		t.Fatalf("second no_deal in final stage: err = %v, want phase conflict", err)
	}

	if err := transition(round, eventDeal); err != nil {
		t.Fatalf("deal in final stage: %v", err)
	}
	if round.Phase != model.PhaseCompleted {
		t.Fatalf("phase = %s, want completed", round.Phase)
	}
}

func TestTransitionUnknownEvent(t *testing.T) {
	round := transitionRound(model.PhaseOpening)
	if err := transition(round, event("bogus")); !errors.Is(err, apperr.ErrInternal) {
		t.Fatalf("err = %v, want internal", err)
	}
}
