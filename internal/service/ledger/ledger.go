package ledger

import (
	"cases_backend/internal/apperr"
	"cases_backend/internal/repository"
	"context"
	"errors"
	"fmt"
)

const (
	kindDebit  = "debit"
	kindCredit = "credit"
)

func (s *serv) GetBalance(ctx context.Context, ownerID int64) (int64, error) {
	return s.userRepo.GetBalance(ctx, ownerID)
}

// Debit withdraws amount from the owner's balance. A replayed
// idempotency key is a no-op success. Insufficient funds roll the
// whole transaction back, ledger row included.
func (s *serv) Debit(ctx context.Context, ownerID int64, amount int64, reason, idempotencyKey string) (int64, error) {
	if amount <= 0 {
		return 0, apperr.Validationf("debit amount %d must be positive", amount)
	}

	var newBalance int64
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		err := s.txRepo.Insert(txCtx, idempotencyKey, ownerID, -amount, kindDebit, reason)
		if errors.Is(err, repository.ErrDuplicateTransaction) {
			// money already moved under this key
			newBalance, err = s.userRepo.GetBalance(txCtx, ownerID)
			return err
		}
		if err != nil {
			return err
		}

		balance, err := s.userRepo.GetBalance(txCtx, ownerID)
		if err != nil {
			return err
		}
		if balance < amount {
			return fmt.Errorf("balance %d below debit %d: %w", balance, amount, apperr.ErrInsufficientFunds)
		}

		newBalance = balance - amount
		return s.userRepo.UpdateBalance(txCtx, ownerID, newBalance)
	})
	if err != nil {
		return 0, err
	}

	return newBalance, nil
}

// Credit deposits amount to the owner's balance. Zero is legal (a
// worthless final case still records a ledger row).
func (s *serv) Credit(ctx context.Context, ownerID int64, amount int64, reason, idempotencyKey string) (int64, error) {
	if amount < 0 {
		return 0, apperr.Validationf("credit amount %d must not be negative", amount)
	}

	var newBalance int64
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		err := s.txRepo.Insert(txCtx, idempotencyKey, ownerID, amount, kindCredit, reason)
		if errors.Is(err, repository.ErrDuplicateTransaction) {
			newBalance, err = s.userRepo.GetBalance(txCtx, ownerID)
			return err
		}
		if err != nil {
			return err
		}

		balance, err := s.userRepo.GetBalance(txCtx, ownerID)
		if err != nil {
			return err
		}

		newBalance = balance + amount
		return s.userRepo.UpdateBalance(txCtx, ownerID, newBalance)
	})
	if err != nil {
		return 0, err
	}

	return newBalance, nil
}
