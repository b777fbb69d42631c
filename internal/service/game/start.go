package game

import (
	"cases_backend/internal/apperr"
	"cases_backend/internal/model"
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Start debits the buy-in and creates the round atomically. A failed
// debit leaves no round behind; a second active round for the owner
// fails with ACTIVE_GAME_EXISTS.
func (s *serv) Start(ctx context.Context, req model.StartGame) (*model.Round, error) {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tier, ok := s.cfg.Tier(req.Tier)
	if !ok {
		return nil, apperr.Validationf("unknown tier %q", req.Tier)
	}
	if _, ok := s.cfg.Curve(req.Personality); !ok {
		return nil, apperr.Validationf("unknown personality %q", req.Personality)
	}
	if req.BuyIn < tier.MinBuyIn || req.BuyIn > tier.MaxBuyIn {
		return nil, apperr.Validationf("buy-in %d outside tier range [%d, %d]", req.BuyIn, tier.MinBuyIn, tier.MaxBuyIn)
	}

	// fast path; the store's unique active index is the real guard
	_, err = s.rounds.FindActiveForOwner(ctx, ownerID)
	if err == nil {
		return nil, apperr.ErrActiveGameExists
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	values, playerCase := generateCases(tier)

	round := &model.Round{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		BuyIn:       req.BuyIn,
		Tier:        tier.Name,
		Personality: req.Personality,
		CaseValues:  values,
		PlayerCase:  playerCase,
		RoundIndex:  0,
		CasesToOpen: casesToOpen(tier, 0),
		TotalRounds: TotalRounds(tier),
		Phase:       model.PhaseOpening,
		CreatedAt:   time.Now().UTC(),
	}

	err = withLedgerRetry(ctx, func() error {
		return s.txManager.Do(ctx, func(txCtx context.Context) error {
			newBalance, err := s.ledger.Debit(txCtx, ownerID, req.BuyIn, reasonBuyIn, debitKey(round.ID))
			if err != nil {
				return err
			}
			round.BalanceBefore = newBalance + req.BuyIn

			return s.rounds.Create(txCtx, round)
		})
	})
	if err != nil {
		slog.Error("start round failed", "owner_id", ownerID, "round_id", round.ID, "error", err)
		return nil, err
	}

	slog.Info("round started",
		"round_id", round.ID, "owner_id", ownerID,
		"tier", round.Tier, "personality", round.Personality, "buy_in", round.BuyIn)

	return round, nil
}
