package game

import (
	"cases_backend/internal/apperr"
	"cases_backend/internal/model"
	"context"
	"fmt"
	"log/slog"
)

// OpenCase reveals one non-player case. When the round's quota is met
// the phase advances to offer.
func (s *serv) OpenCase(ctx context.Context, roundID string, caseNumber int) (*model.OpenResult, error) {
	s.locks.Lock(roundID)
	defer s.locks.Unlock(roundID)

	round, err := s.ownedRound(ctx, roundID)
	if err != nil {
		return nil, err
	}

	if round.Phase != model.PhaseOpening {
		return nil, fmt.Errorf("open case in phase %q: %w", round.Phase, apperr.ErrPhaseConflict)
	}
	if caseNumber < 1 || caseNumber > round.CaseCount() {
		return nil, apperr.Validationf("case %d out of range 1..%d", caseNumber, round.CaseCount())
	}
	if caseNumber == round.PlayerCase {
		return nil, apperr.Validationf("case %d is the player's own", caseNumber)
	}
	if round.IsOpened(caseNumber) {
		return nil, apperr.Validationf("case %d already opened", caseNumber)
	}

	tier, err := s.tierOf(round)
	if err != nil {
		return nil, err
	}

	round.OpenedCases = append(round.OpenedCases, caseNumber)

	if len(round.OpenedCases) >= quotaTarget(tier, round.RoundIndex) {
		if err := transition(round, eventQuotaMet); err != nil {
			return nil, err
		}
	}

	if err := s.rounds.Update(ctx, round); err != nil {
		slog.Error("open case update failed", "round_id", roundID, "owner_id", round.OwnerID, "error", err)
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	return &model.OpenResult{
		Round:         round,
		RevealedCase:  caseNumber,
		RevealedValue: scaleValue(round.CaseValues[caseNumber-1], round.BuyIn),
	}, nil
}
