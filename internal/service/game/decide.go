package game

import (
	"cases_backend/internal/apperr"
	"cases_backend/internal/model"
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Decide resolves a banker offer. `deal` and `open_case` are terminal:
// they credit exactly once (keyed by round id and kind), complete the
// round and append a signed outcome record in one transaction.
// `no_deal` either starts the next opening round or, with two live
// cases left, enters the final stage where the last offer stands.
func (s *serv) Decide(ctx context.Context, roundID string, decision model.Decision) (*model.DecideResult, error) {
	s.locks.Lock(roundID)
	defer s.locks.Unlock(roundID)

	round, err := s.ownedRound(ctx, roundID)
	if err != nil {
		return nil, err
	}

	var payout int64

	switch decision {
	case model.DecisionNoDeal:
		return s.decideNoDeal(ctx, round)

	case model.DecisionDeal:
		if round.BankerOffer == nil {
			return nil, fmt.Errorf("no offer on the table: %w", apperr.ErrPhaseConflict)
		}
		if err := transition(round, eventDeal); err != nil {
			return nil, err
		}
		offer := *round.BankerOffer
		round.AcceptedOffer = &offer
		payout = offer

	case model.DecisionOpenCase:
		if err := transition(round, eventOpenOwnCase); err != nil {
			return nil, err
		}
		payout = scaleValue(round.CaseValues[round.PlayerCase-1], round.BuyIn)

	default:
		return nil, apperr.Validationf("unknown decision %q", decision)
	}

	return s.complete(ctx, round, decision, payout)
}

func (s *serv) decideNoDeal(ctx context.Context, round *model.Round) (*model.DecideResult, error) {
	if err := transition(round, eventNoDeal); err != nil {
		return nil, err
	}

	if round.FinalStage {
		// terminal sub-flow: keep the offer, wait for deal/open_case
		if err := s.rounds.Update(ctx, round); err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
		}
		return &model.DecideResult{Round: round}, nil
	}

	tier, err := s.tierOf(round)
	if err != nil {
		return nil, err
	}

	round.RoundIndex++
	round.CasesToOpen = casesToOpen(tier, round.RoundIndex)
	round.BankerOffer = nil

	if err := s.rounds.Update(ctx, round); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	return &model.DecideResult{Round: round}, nil
}

// complete credits the payout, persists the completed round and
// appends the outcome atomically. Transient failures retry against
// the same idempotency key; the round never leaves the terminal state.
func (s *serv) complete(ctx context.Context, round *model.Round, decision model.Decision, payout int64) (*model.DecideResult, error) {
	finalValue := scaleValue(round.CaseValues[round.PlayerCase-1], round.BuyIn)
	round.FinalValue = &finalValue

	now := time.Now().UTC()
	round.CompletedAt = &now

	rec := s.buildOutcome(round, decision, payout)

	// the offer is an offer/decision-phase field; the accepted figure
	// lives in AcceptedOffer and the outcome payload
	round.BankerOffer = nil

	baseVersion := round.Version

	var balance int64
	err := withLedgerRetry(ctx, func() error {
		round.Version = baseVersion

		return s.txManager.Do(ctx, func(txCtx context.Context) error {
			b, err := s.ledger.Credit(txCtx, round.OwnerID, payout, reasonPayout, creditKey(round.ID))
			if err != nil {
				return err
			}
			balance = b

			if err := s.rounds.Update(txCtx, round); err != nil {
				return err
			}
			return s.outcomes.Append(txCtx, rec)
		})
	})
	if err != nil {
		slog.Error("complete round failed",
			"round_id", round.ID, "owner_id", round.OwnerID, "decision", decision, "error", err)
		return nil, err
	}

	slog.Info("round completed",
		"round_id", round.ID, "owner_id", round.OwnerID,
		"decision", decision, "payout", payout)

	return &model.DecideResult{
		Round:   round,
		Payout:  payout,
		Balance: balance,
		Outcome: rec,
	}, nil
}

func (s *serv) buildOutcome(round *model.Round, decision model.Decision, payout int64) *model.OutcomeRecord {
	revealed := make(map[int]int64, len(round.OpenedCases)+1)
	for _, c := range round.OpenedCases {
		revealed[c] = scaleValue(round.CaseValues[c-1], round.BuyIn)
	}
	revealed[round.PlayerCase] = scaleValue(round.CaseValues[round.PlayerCase-1], round.BuyIn)

	rec := &model.OutcomeRecord{
		RoundID: round.ID,
		OwnerID: round.OwnerID,
		Bet:     round.BuyIn,
		Payout:  payout,
		Payload: model.OutcomePayload{
			Decision:        decision,
			PlayerCase:      round.PlayerCase,
			PlayerCaseValue: revealed[round.PlayerCase],
			BankerOffer:     round.BankerOffer,
			RoundIndex:      round.RoundIndex,
			RevealedValues:  revealed,
		},
		CreatedAt: *round.CompletedAt,
	}
	rec.Signature = s.sig.Sign(rec.SignableString())

	return rec
}
