package game

import "cases_backend/internal/model"

// expectedValue is the arithmetic mean of the scaled values of every
// case not yet opened. The player's own case counts: it is still an
// unrevealed candidate.
func expectedValue(round *model.Round) float64 {
	opened := make(map[int]bool, len(round.OpenedCases))
	for _, c := range round.OpenedCases {
		opened[c] = true
	}

	var sum float64
	n := 0
	for i, v := range round.CaseValues {
		if opened[i+1] {
			continue
		}
		sum += float64(scaleValue(v, round.BuyIn))
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
