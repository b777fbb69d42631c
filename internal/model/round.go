package model

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// CanonicalBuyIn is the buy-in every case ladder is normalized to,
// in minor units (1000.00). Consumers scale ladder values by
// buyIn/CanonicalBuyIn before display or payout.
const CanonicalBuyIn int64 = 100_000

type Phase string

const (
	PhaseOpening   Phase = "opening"
	PhaseOffer     Phase = "offer"
	PhaseDecision  Phase = "decision"
	PhaseCompleted Phase = "completed"
)

type Personality string

const (
	PersonalityConservative Personality = "conservative"
	PersonalityFair         Personality = "fair"
	PersonalityAggressive   Personality = "aggressive"
)

type Decision string

const (
	DecisionDeal     Decision = "deal"
	DecisionNoDeal   Decision = "no_deal"
	DecisionOpenCase Decision = "open_case"
)

// Round is one playthrough of the case-elimination game.
// All money fields are in minor units. CaseValues[i] is the canonical
// (buy-in 1000.00) prize behind case i+1.
type Round struct {
	ID          string
	OwnerID     int64
	BuyIn       int64
	Tier        string
	Personality Personality

	CaseValues  []int64
	PlayerCase  int
	OpenedCases []int

	RoundIndex  int
	CasesToOpen int
	TotalRounds int

	Phase      Phase
	FinalStage bool

	BankerOffer   *int64
	AcceptedOffer *int64
	FinalValue    *int64

	BalanceBefore int64
	Version       int64
	CreatedAt     time.Time
	CompletedAt   *time.Time
}

// CaseCount is the number of cases in the round.
func (r *Round) CaseCount() int {
	return len(r.CaseValues)
}

// LiveCases is the number of still-unopened cases, the player's included.
func (r *Round) LiveCases() int {
	return len(r.CaseValues) - len(r.OpenedCases)
}

// IsOpened reports whether the given case number has been opened.
func (r *Round) IsOpened(caseNumber int) bool {
	for _, c := range r.OpenedCases {
		if c == caseNumber {
			return true
		}
	}
	return false
}

// DifficultyTier is a preset bundle of case count, prize ladder and
// round schedule. Ladder values are canonical minor units.
type DifficultyTier struct {
	Name     string
	Ladder   []int64
	Schedule []int
	MinBuyIn int64
	MaxBuyIn int64
}

func (t DifficultyTier) CaseCount() int {
	return len(t.Ladder)
}

// PersonalityCurve maps round progress in [0,1] to a fraction of EV
// offered by the banker. Linear between Start and End.
type PersonalityCurve struct {
	Start float64
	End   float64
}

// Multiplier returns the percentage-of-EV multiplier at the given progress.
func (c PersonalityCurve) Multiplier(progress float64) float64 {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	return c.Start + (c.End-c.Start)*progress
}

// OutcomeRecord is the immutable audit entry appended once per round
// completion.
type OutcomeRecord struct {
	RoundID   string
	OwnerID   int64
	Bet       int64
	Payout    int64
	Payload   OutcomePayload
	Signature string
	CreatedAt time.Time
}

// OutcomePayload is the structured result stored with an outcome.
// RevealedValues holds the scaled prize of every opened case plus the
// player's own, keyed by case number.
type OutcomePayload struct {
	Decision        Decision      `json:"decision"`
	PlayerCase      int           `json:"player_case"`
	PlayerCaseValue int64         `json:"player_case_value"`
	BankerOffer     *int64        `json:"banker_offer,omitempty"`
	RoundIndex      int           `json:"round_index"`
	RevealedValues  map[int]int64 `json:"revealed_values"`
}

// SignableString is the canonical serialization the fairness signature
// is computed over. Field order and formatting are fixed; revealed
// values are emitted in ascending case order.
func (o *OutcomeRecord) SignableString() string {
	cases := make([]int, 0, len(o.Payload.RevealedValues))
	for c := range o.Payload.RevealedValues {
		cases = append(cases, c)
	}
	sort.Ints(cases)

	var b strings.Builder
	b.WriteString("v1|")
	b.WriteString(o.RoundID)
	b.WriteString("|")
	b.WriteString(string(o.Payload.Decision))
	b.WriteString("|")
	b.WriteString(strconv.FormatInt(o.Payout, 10))
	for _, c := range cases {
		b.WriteString("|")
		b.WriteString(strconv.Itoa(c))
		b.WriteString(":")
		b.WriteString(strconv.FormatInt(o.Payload.RevealedValues[c], 10))
	}
	return b.String()
}

// StartGame carries the validated parameters of a new round.
type StartGame struct {
	BuyIn       int64
	Tier        string
	Personality Personality
}

// OpenResult is the outcome of opening a single case.
type OpenResult struct {
	Round         *Round
	RevealedCase  int
	RevealedValue int64
}

// DecideResult is the outcome of a decision. Payout, Outcome and
// Balance are set only when the decision was terminal.
type DecideResult struct {
	Round   *Round
	Payout  int64
	Balance int64
	Outcome *OutcomeRecord
}
