package game

import (
	"sort"
	"testing"
)

func TestGenerateCasesIsAPermutation(t *testing.T) {
	want := append([]int64(nil), standardTier.Ladder...)
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })

	for run := 0; run < 200; run++ {
		values, playerCase := generateCases(standardTier)

		if len(values) != standardTier.CaseCount() {
			t.Fatalf("got %d values, want %d", len(values), standardTier.CaseCount())
		}
		if playerCase < 1 || playerCase > standardTier.CaseCount() {
			t.Fatalf("player case %d out of range", playerCase)
		}

		got := append([]int64(nil), values...)
		sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("run %d: value multiset differs from ladder at %d: got %d want %d", run, i, got[i], want[i])
			}
		}
	}
}

func TestGenerateCasesDoesNotMutateLadder(t *testing.T) {
	before := append([]int64(nil), standardTier.Ladder...)
	generateCases(standardTier)
	for i, v := range standardTier.Ladder {
		if v != before[i] {
			t.Fatalf("ladder mutated at index %d", i)
		}
	}
}

func TestScaleValue(t *testing.T) {
	tests := []struct {
		value, buyIn, want int64
	}{
		{100000, 100000, 100000}, // canonical buy-in: unchanged
		{100000, 200000, 200000}, // double stake doubles prizes
		{100000, 50000, 50000},
		{1, 100000, 1},
		{1, 50000, 0}, // the penny rounds away at half stake
	}
	for _, tc := range tests {
		if got := scaleValue(tc.value, tc.buyIn); got != tc.want {
			t.Errorf("scaleValue(%d, %d) = %d, want %d", tc.value, tc.buyIn, got, tc.want)
		}
	}
}
