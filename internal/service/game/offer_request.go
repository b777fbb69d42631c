package game

import (
	"cases_backend/internal/apperr"
	"cases_backend/internal/model"
	"context"
	"fmt"
	"log/slog"
)

// RequestOffer recomputes EV over the shrunken case set and stores the
// banker's offer; the round moves to the decision phase.
func (s *serv) RequestOffer(ctx context.Context, roundID string) (*model.Round, error) {
	s.locks.Lock(roundID)
	defer s.locks.Unlock(roundID)

	round, err := s.ownedRound(ctx, roundID)
	if err != nil {
		return nil, err
	}

	curve, ok := s.cfg.Curve(round.Personality)
	if !ok {
		return nil, fmt.Errorf("personality %q no longer configured: %w", round.Personality, apperr.ErrInternal)
	}

	if err := transition(round, eventOfferRequested); err != nil {
		return nil, err
	}

	offer := bankerOffer(expectedValue(round), curve, round.RoundIndex, round.TotalRounds)
	round.BankerOffer = &offer

	if err := s.rounds.Update(ctx, round); err != nil {
		slog.Error("offer update failed", "round_id", roundID, "owner_id", round.OwnerID, "error", err)
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	slog.Info("banker offer computed",
		"round_id", roundID, "owner_id", round.OwnerID,
		"round_index", round.RoundIndex, "offer", offer)

	return round, nil
}
