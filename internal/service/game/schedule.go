package game

import "cases_backend/internal/model"

// The schedule never opens past N-2 cases: the endgame always leaves
// the player's case plus one other on the table.

// casesToOpen returns how many cases the given round opens. Indexes
// past the schedule reuse the last entry; the count is capped by the
// cases still allowed to open.
func casesToOpen(tier model.DifficultyTier, roundIndex int) int {
	n := scheduleEntry(tier, roundIndex)

	remaining := maxOpenable(tier) - quotaTarget(tier, roundIndex-1)
	if n > remaining {
		n = remaining
	}
	return n
}

// quotaTarget returns how many cases must be open in total once the
// given round's quota is met.
func quotaTarget(tier model.DifficultyTier, roundIndex int) int {
	total := 0
	for i := 0; i <= roundIndex; i++ {
		total += scheduleEntry(tier, i)
		if total >= maxOpenable(tier) {
			return maxOpenable(tier)
		}
	}
	return total
}

// TotalRounds derives the tier's round count: the number of schedule
// steps (with clamping) until only two live cases remain.
func TotalRounds(tier model.DifficultyTier) int {
	total := 0
	rounds := 0
	for total < maxOpenable(tier) {
		total += scheduleEntry(tier, rounds)
		rounds++
	}
	return rounds
}

func scheduleEntry(tier model.DifficultyTier, roundIndex int) int {
	if roundIndex < 0 {
		return 0
	}
	if roundIndex >= len(tier.Schedule) {
		return tier.Schedule[len(tier.Schedule)-1]
	}
	return tier.Schedule[roundIndex]
}

func maxOpenable(tier model.DifficultyTier) int {
	return tier.CaseCount() - 2
}
