package game

import (
	"cases_backend/internal/model"
	"testing"
)

func evRound(opened []int) *model.Round {
	values := append([]int64(nil), standardTier.Ladder...)
	return &model.Round{
		ID:          "ev-round",
		BuyIn:       model.CanonicalBuyIn,
		CaseValues:  values,
		PlayerCase:  1,
		OpenedCases: opened,
	}
}

func TestExpectedValueFullSet(t *testing.T) {
	round := evRound(nil)

	var sum float64
	for _, v := range round.CaseValues {
		sum += float64(v)
	}
	want := sum / float64(len(round.CaseValues))

	if got := expectedValue(round); !withinCents(got, want) {
		t.Fatalf("EV = %f, want %f", got, want)
	}
}

func TestExpectedValueStaysWithinLiveBounds(t *testing.T) {
	round := evRound(nil)

	// open cases one by one (skipping the player's) and check EV stays
	// inside [min, max] of the live values
	for c := 2; c <= round.CaseCount()-1; c++ {
		round.OpenedCases = append(round.OpenedCases, c)

		min, max := liveBounds(round)
		ev := expectedValue(round)
		if ev < float64(min) || ev > float64(max) {
			t.Fatalf("after opening %d cases: EV %f outside [%d, %d]", len(round.OpenedCases), ev, min, max)
		}
	}
}

func TestExpectedValueCountsPlayerCase(t *testing.T) {
	// open every case except the player's (1, worth 1 cent) and case 18
	// (worth 1000000): EV must average both survivors, not just case 18
	opened := make([]int, 0, 16)
	for c := 2; c <= 17; c++ {
		opened = append(opened, c)
	}
	round := evRound(opened)

	want := (float64(round.CaseValues[0]) + float64(round.CaseValues[17])) / 2
	if got := expectedValue(round); !withinCents(got, want) {
		t.Fatalf("EV = %f, want %f (player case must stay in the population)", got, want)
	}
}

func TestExpectedValueScalesWithBuyIn(t *testing.T) {
	round := evRound(nil)
	base := expectedValue(round)

	round.BuyIn = 2 * model.CanonicalBuyIn
	if got := expectedValue(round); !withinCents(got, 2*base) {
		t.Fatalf("doubled buy-in: EV = %f, want %f", got, 2*base)
	}
}

func liveBounds(round *model.Round) (min, max int64) {
	opened := make(map[int]bool)
	for _, c := range round.OpenedCases {
		opened[c] = true
	}
	first := true
	for i, v := range round.CaseValues {
		if opened[i+1] {
			continue
		}
		s := scaleValue(v, round.BuyIn)
		if first || s < min {
			min = s
		}
		if first || s > max {
			max = s
		}
		first = false
	}
	return min, max
}
