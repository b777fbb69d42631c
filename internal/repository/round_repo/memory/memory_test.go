package memory

import (
	"cases_backend/internal/apperr"
	"cases_backend/internal/model"
	"cases_backend/internal/repository"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func newRound(id string, owner int64, createdAt time.Time) *model.Round {
	return &model.Round{
		ID:         id,
		OwnerID:    owner,
		BuyIn:      100000,
		Tier:       "standard",
		CaseValues: []int64{1, 100, 500},
		PlayerCase: 1,
		Phase:      model.PhaseOpening,
		CreatedAt:  createdAt,
	}
}

func TestCreateRejectsSecondActiveRound(t *testing.T) {
	ctx := context.Background()
	store := NewRoundRepository()

	if err := store.Create(ctx, newRound("r1", 7, time.Now())); err != nil {
		t.Fatal(err)
	}

	err := store.Create(ctx, newRound("r2", 7, time.Now()))
	if !errors.Is(err, apperr.ErrActiveGameExists) {
		t.Fatalf("second active round: got %v, want ErrActiveGameExists", err)
	}

	// a different owner is unaffected
	if err := store.Create(ctx, newRound("r3", 8, time.Now())); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateVersionCAS(t *testing.T) {
	ctx := context.Background()
	store := NewRoundRepository()

	if err := store.Create(ctx, newRound("r1", 7, time.Now())); err != nil {
		t.Fatal(err)
	}

	a, _ := store.Get(ctx, "r1")
	b, _ := store.Get(ctx, "r1")

	a.OpenedCases = []int{2}
	if err := store.Update(ctx, a); err != nil {
		t.Fatal(err)
	}

	b.OpenedCases = []int{3}
	err := store.Update(ctx, b)
	if !errors.Is(err, repository.ErrVersionConflict) {
		t.Fatalf("stale update: got %v, want ErrVersionConflict", err)
	}

	got, _ := store.Get(ctx, "r1")
	if len(got.OpenedCases) != 1 || got.OpenedCases[0] != 2 {
		t.Fatalf("stored opened cases = %v, want [2]", got.OpenedCases)
	}
}

func TestCompletionFreesOwnerIndex(t *testing.T) {
	ctx := context.Background()
	store := NewRoundRepository()

	if err := store.Create(ctx, newRound("r1", 7, time.Now())); err != nil {
		t.Fatal(err)
	}

	r, _ := store.Get(ctx, "r1")
	r.Phase = model.PhaseCompleted
	if err := store.Update(ctx, r); err != nil {
		t.Fatal(err)
	}

	if _, err := store.FindActiveForOwner(ctx, 7); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("active lookup after completion: got %v, want ErrNotFound", err)
	}
	if err := store.Create(ctx, newRound("r2", 7, time.Now())); err != nil {
		t.Fatalf("new round after completion: %v", err)
	}
}

func TestGetReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewRoundRepository()

	if err := store.Create(ctx, newRound("r1", 7, time.Now())); err != nil {
		t.Fatal(err)
	}

	r, _ := store.Get(ctx, "r1")
	r.OpenedCases = append(r.OpenedCases, 2)
	r.CaseValues[0] = 999

	fresh, _ := store.Get(ctx, "r1")
	if len(fresh.OpenedCases) != 0 || fresh.CaseValues[0] != 1 {
		t.Fatalf("mutation through a returned round leaked into the store")
	}
}

func TestCleanupEvictsOldestCompleted(t *testing.T) {
	ctx := context.Background()
	store := NewRoundRepository()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		r := newRound(fmt.Sprintf("r%d", i), int64(i), base.Add(time.Duration(i)*time.Minute))
		if err := store.Create(ctx, r); err != nil {
			t.Fatal(err)
		}
		got, _ := store.Get(ctx, r.ID)
		got.Phase = model.PhaseCompleted
		if err := store.Update(ctx, got); err != nil {
			t.Fatal(err)
		}
	}

	evicted, err := store.Cleanup(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if evicted != 3 {
		t.Fatalf("evicted = %d, want 3", evicted)
	}

	// the three oldest are gone, the two newest remain
	for _, id := range []string{"r0", "r1", "r2"} {
		if _, err := store.Get(ctx, id); !errors.Is(err, apperr.ErrNotFound) {
			t.Fatalf("round %s should have been evicted", id)
		}
	}
	for _, id := range []string{"r3", "r4"} {
		if _, err := store.Get(ctx, id); err != nil {
			t.Fatalf("round %s should have been retained: %v", id, err)
		}
	}
}
