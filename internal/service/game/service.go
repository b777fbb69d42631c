package game

import (
	"cases_backend/internal/apperr"
	"cases_backend/internal/config"
	"cases_backend/internal/middleware"
	"cases_backend/internal/model"
	"cases_backend/internal/repository"
	"cases_backend/internal/service"
	"cases_backend/pkg/keymutex"
	"cases_backend/pkg/signer"
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	reasonBuyIn  = "case game buy-in"
	reasonPayout = "case game payout"

	ledgerAttempts = 3
	ledgerBackoff  = 50 * time.Millisecond
)

// ledger_transactions keys on the bare idempotency string, so the
// buy-in and the payout of one round need distinct keys.
func debitKey(roundID string) string  { return roundID + ":debit" }
func creditKey(roundID string) string { return roundID + ":credit" }

type serv struct {
	rounds    repository.RoundRepository
	outcomes  repository.OutcomeRepository
	ledger    service.LedgerService
	txManager txManager
	cfg       config.GameConfig
	sig       *signer.Signer
	locks     *keymutex.KeyMutex
}

// txManager matches trm.Manager's Do; narrowed so tests can inject a
// pass-through.
type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewGameService(
	rounds repository.RoundRepository,
	outcomes repository.OutcomeRepository,
	ledger service.LedgerService,
	txManager txManager,
	cfg config.GameConfig,
	sig *signer.Signer,
) service.GameService {
	return &serv{
		rounds:    rounds,
		outcomes:  outcomes,
		ledger:    ledger,
		txManager: txManager,
		cfg:       cfg,
		sig:       sig,
		locks:     keymutex.New(),
	}
}

func ownerFromContext(ctx context.Context) (int64, error) {
	ownerID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return 0, fmt.Errorf("owner id not found in context: %w", apperr.ErrAuth)
	}
	return ownerID, nil
}

// ownedRound loads the round and enforces ownership.
func (s *serv) ownedRound(ctx context.Context, roundID string) (*model.Round, error) {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	round, err := s.rounds.Get(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if round.OwnerID != ownerID {
		return nil, apperr.ErrOwnership
	}
	return round, nil
}

func (s *serv) tierOf(round *model.Round) (model.DifficultyTier, error) {
	tier, ok := s.cfg.Tier(round.Tier)
	if !ok {
		return model.DifficultyTier{}, fmt.Errorf("tier %q no longer configured: %w", round.Tier, apperr.ErrInternal)
	}
	return tier, nil
}

// withLedgerRetry retries fn on transient failure with doubling
// backoff. Taxonomy errors are business outcomes and pass through
// immediately; exhausted retries surface as a ledger error.
func withLedgerRetry(ctx context.Context, fn func() error) error {
	backoff := ledgerBackoff

	var err error
	for attempt := 0; attempt < ledgerAttempts; attempt++ {
		err = fn()
		if err == nil || isBusinessErr(err) {
			return err
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", apperr.ErrLedger, ctx.Err())
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return fmt.Errorf("%w: %v", apperr.ErrLedger, err)
}

func isBusinessErr(err error) bool {
	return errors.Is(err, apperr.ErrValidation) ||
		errors.Is(err, apperr.ErrInsufficientFunds) ||
		errors.Is(err, apperr.ErrActiveGameExists) ||
		errors.Is(err, apperr.ErrNotFound) ||
		errors.Is(err, apperr.ErrOwnership) ||
		errors.Is(err, apperr.ErrPhaseConflict)
}
