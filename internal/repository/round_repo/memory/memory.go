// Package memory is an in-process round store with the same CAS and
// one-active-round-per-owner semantics as the Postgres store. It backs
// tests and single-node deployments without a database.
package memory

import (
	"cases_backend/internal/apperr"
	"cases_backend/internal/model"
	"cases_backend/internal/repository"
	"context"
	"sort"
	"sync"
)

type store struct {
	mu     sync.Mutex
	rounds map[string]*model.Round
	active map[int64]string // ownerID -> active round id
}

func NewRoundRepository() repository.RoundRepository {
	return &store{
		rounds: make(map[string]*model.Round),
		active: make(map[int64]string),
	}
}

func (s *store) Get(_ context.Context, id string) (*model.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	round, ok := s.rounds[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return clone(round), nil
}

func (s *store) Create(_ context.Context, round *model.Round) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.active[round.OwnerID]; busy {
		return apperr.ErrActiveGameExists
	}

	round.Version = 1
	s.rounds[round.ID] = clone(round)
	if round.Phase != model.PhaseCompleted {
		s.active[round.OwnerID] = round.ID
	}
	return nil
}

func (s *store) Update(_ context.Context, round *model.Round) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.rounds[round.ID]
	if !ok {
		return apperr.ErrNotFound
	}
	if stored.Version != round.Version {
		return repository.ErrVersionConflict
	}

	round.Version++
	s.rounds[round.ID] = clone(round)

	// keep the owner index consistent with the phase
	if round.Phase == model.PhaseCompleted {
		if s.active[round.OwnerID] == round.ID {
			delete(s.active, round.OwnerID)
		}
	}
	return nil
}

func (s *store) FindActiveForOwner(_ context.Context, ownerID int64) (*model.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.active[ownerID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return clone(s.rounds[id]), nil
}

func (s *store) Cleanup(_ context.Context, maxCompleted int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var completed []*model.Round
	for _, r := range s.rounds {
		if r.Phase == model.PhaseCompleted {
			completed = append(completed, r)
		}
	}
	if len(completed) <= maxCompleted {
		return 0, nil
	}

	sort.Slice(completed, func(i, j int) bool {
		return completed[i].CreatedAt.Before(completed[j].CreatedAt)
	})

	evict := completed[:len(completed)-maxCompleted]
	for _, r := range evict {
		delete(s.rounds, r.ID)
	}
	return len(evict), nil
}

func clone(r *model.Round) *model.Round {
	cp := *r
	cp.CaseValues = append([]int64(nil), r.CaseValues...)
	cp.OpenedCases = append([]int(nil), r.OpenedCases...)
	if r.BankerOffer != nil {
		v := *r.BankerOffer
		cp.BankerOffer = &v
	}
	if r.AcceptedOffer != nil {
		v := *r.AcceptedOffer
		cp.AcceptedOffer = &v
	}
	if r.FinalValue != nil {
		v := *r.FinalValue
		cp.FinalValue = &v
	}
	if r.CompletedAt != nil {
		t := *r.CompletedAt
		cp.CompletedAt = &t
	}
	return &cp
}
