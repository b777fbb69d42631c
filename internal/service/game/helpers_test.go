package game

import (
	"cases_backend/internal/apperr"
	"cases_backend/internal/model"
	"cases_backend/internal/repository"
	"cases_backend/internal/repository/round_repo/memory"
	"cases_backend/internal/service"
	"cases_backend/pkg/signer"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

// standard 18-case tier: ladder in minor units on the canonical
// 1000.00 buy-in scale, 6 rounds of openings.
var standardTier = model.DifficultyTier{
	Name: "standard",
	Ladder: []int64{
		1, 100, 500, 1000, 2500, 5000, 7500, 10000, 20000,
		30000, 40000, 50000, 75000, 100000, 250000, 500000, 750000, 1000000,
	},
	Schedule: []int{6, 5, 2, 1, 1, 1},
	MinBuyIn: 10000,
	MaxBuyIn: 5000000,
}

var testCurves = map[model.Personality]model.PersonalityCurve{
	model.PersonalityConservative: {Start: 0.75, End: 1.00},
	model.PersonalityFair:         {Start: 0.85, End: 1.05},
	model.PersonalityAggressive:   {Start: 0.95, End: 1.20},
}

type testCfg struct {
	tiers map[string]model.DifficultyTier
}

func (c *testCfg) Tier(name string) (model.DifficultyTier, bool) {
	t, ok := c.tiers[name]
	return t, ok
}

func (c *testCfg) TierNames() []string {
	names := make([]string, 0, len(c.tiers))
	for n := range c.tiers {
		names = append(names, n)
	}
	return names
}

func (c *testCfg) Curve(p model.Personality) (model.PersonalityCurve, bool) {
	cv, ok := testCurves[p]
	return cv, ok
}

func (c *testCfg) MaxCompletedRounds() int { return 100 }

// passTx runs the closure directly; the fakes below have no
// transactional state to roll back.
type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeLedger replays on the bare idempotency key, mirroring the
// single-column primary key of ledger_transactions.
type fakeLedger struct {
	mu       sync.Mutex
	balances map[int64]int64
	applied  map[string]bool

	failDebits  int // next N debits fail transiently
	failCredits int // next N credits fail transiently
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		balances: make(map[int64]int64),
		applied:  make(map[string]bool),
	}
}

func (l *fakeLedger) GetBalance(_ context.Context, ownerID int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[ownerID], nil
}

func (l *fakeLedger) Debit(_ context.Context, ownerID int64, amount int64, _, key string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.failDebits > 0 {
		l.failDebits--
		return 0, errors.New("ledger unavailable")
	}
	if l.applied[key] {
		return l.balances[ownerID], nil
	}
	if l.balances[ownerID] < amount {
		return 0, fmt.Errorf("balance too low: %w", apperr.ErrInsufficientFunds)
	}
	l.applied[key] = true
	l.balances[ownerID] -= amount
	return l.balances[ownerID], nil
}

func (l *fakeLedger) Credit(_ context.Context, ownerID int64, amount int64, _, key string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.failCredits > 0 {
		l.failCredits--
		return 0, errors.New("ledger unavailable")
	}
	if l.applied[key] {
		return l.balances[ownerID], nil
	}
	l.applied[key] = true
	l.balances[ownerID] += amount
	return l.balances[ownerID], nil
}

type fakeOutcomes struct {
	mu   sync.Mutex
	recs map[string]*model.OutcomeRecord
}

func newFakeOutcomes() *fakeOutcomes {
	return &fakeOutcomes{recs: make(map[string]*model.OutcomeRecord)}
}

func (o *fakeOutcomes) Append(_ context.Context, rec *model.OutcomeRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.recs[rec.RoundID]; ok {
		return errors.New("outcome already appended")
	}
	o.recs[rec.RoundID] = rec
	return nil
}

func (o *fakeOutcomes) Get(_ context.Context, roundID string) (*model.OutcomeRecord, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	rec, ok := o.recs[roundID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return rec, nil
}

type testEnv struct {
	serv     service.GameService
	rounds   repository.RoundRepository
	ledger   *fakeLedger
	outcomes *fakeOutcomes
	sig      *signer.Signer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	sig, err := signer.New([]byte("test-signing-key"))
	if err != nil {
		t.Fatal(err)
	}

	rounds := memory.NewRoundRepository()
	ledg := newFakeLedger()
	outcomes := newFakeOutcomes()
	cfg := &testCfg{tiers: map[string]model.DifficultyTier{"standard": standardTier}}

	return &testEnv{
		serv:     NewGameService(rounds, outcomes, ledg, passTx{}, cfg, sig),
		rounds:   rounds,
		ledger:   ledg,
		outcomes: outcomes,
		sig:      sig,
	}
}

// openQuota opens the scheduled number of non-player cases for the
// current round and returns the updated round.
func openQuota(t *testing.T, env *testEnv, ctx context.Context, round *model.Round) *model.Round {
	t.Helper()

	for round.Phase == model.PhaseOpening {
		next := 0
		for c := 1; c <= round.CaseCount(); c++ {
			if c != round.PlayerCase && !round.IsOpened(c) {
				next = c
				break
			}
		}
		if next == 0 {
			t.Fatalf("no case left to open in phase %s", round.Phase)
		}

		res, err := env.serv.OpenCase(ctx, round.ID, next)
		if err != nil {
			t.Fatalf("open case %d: %v", next, err)
		}
		round = res.Round
	}
	return round
}

func mustStart(t *testing.T, env *testEnv, ctx context.Context, buyIn int64) *model.Round {
	t.Helper()

	round, err := env.serv.Start(ctx, model.StartGame{
		BuyIn:       buyIn,
		Tier:        "standard",
		Personality: model.PersonalityFair,
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	return round
}

func withinCents(a, b float64) bool {
	d := a - b
	return d < 1 && d > -1
}
