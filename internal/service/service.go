package service

import (
	"cases_backend/internal/model"
	"context"
)

// GameService orchestrates the case-elimination rounds. The owner id
// comes from the request context (set by the auth middleware).
type GameService interface {
	Start(ctx context.Context, req model.StartGame) (*model.Round, error)
	OpenCase(ctx context.Context, roundID string, caseNumber int) (*model.OpenResult, error)
	RequestOffer(ctx context.Context, roundID string) (*model.Round, error)
	Decide(ctx context.Context, roundID string, decision model.Decision) (*model.DecideResult, error)
	GetState(ctx context.Context, roundID string) (*model.Round, error)
	ActiveRound(ctx context.Context) (*model.Round, error)
}

// LedgerService moves money exactly once per idempotency key.
// Debit and Credit return the balance after the operation.
type LedgerService interface {
	GetBalance(ctx context.Context, ownerID int64) (int64, error)
	Debit(ctx context.Context, ownerID int64, amount int64, reason, idempotencyKey string) (int64, error)
	Credit(ctx context.Context, ownerID int64, amount int64, reason, idempotencyKey string) (int64, error)
}
