package game

import (
	"cases_backend/internal/model"
	"context"
)

// GetState returns the owner's view of a round. Read-only; no lock.
func (s *serv) GetState(ctx context.Context, roundID string) (*model.Round, error) {
	return s.ownedRound(ctx, roundID)
}

// ActiveRound returns the owner's single non-completed round, if any.
func (s *serv) ActiveRound(ctx context.Context) (*model.Round, error) {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.rounds.FindActiveForOwner(ctx, ownerID)
}
