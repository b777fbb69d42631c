package repository

import (
	"cases_backend/internal/model"
	"context"
	"errors"
)

var (
	// ErrVersionConflict is returned when an optimistic update lost the
	// race against a concurrent writer.
	ErrVersionConflict = errors.New("round version conflict")

	// ErrDuplicateTransaction is returned when an idempotency key was
	// already used. Callers treat it as a successful replay.
	ErrDuplicateTransaction = errors.New("duplicate ledger transaction")
)

type RoundRepository interface {
	Get(ctx context.Context, id string) (*model.Round, error)
	Create(ctx context.Context, round *model.Round) error
	Update(ctx context.Context, round *model.Round) error
	FindActiveForOwner(ctx context.Context, ownerID int64) (*model.Round, error)
	Cleanup(ctx context.Context, maxCompleted int) (int, error)
}

type UserRepository interface {
	GetBalance(ctx context.Context, id int64) (int64, error)
	UpdateBalance(ctx context.Context, id int64, amount int64) error
}

type LedgerTxRepository interface {
	Insert(ctx context.Context, key string, ownerID int64, amount int64, kind, reason string) error
}

type OutcomeRepository interface {
	Append(ctx context.Context, rec *model.OutcomeRecord) error
	Get(ctx context.Context, roundID string) (*model.OutcomeRecord, error)
}
