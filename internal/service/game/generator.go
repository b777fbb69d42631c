package game

import (
	"cases_backend/internal/model"
	"math/rand"
)

// generateCases deals the tier's prize ladder onto case numbers 1..N
// with a uniform shuffle and draws the player's case independently.
// Values stay on the canonical 1000.00 buy-in scale.
func generateCases(tier model.DifficultyTier) (values []int64, playerCase int) {
	values = make([]int64, len(tier.Ladder))
	copy(values, tier.Ladder)

	rand.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})

	playerCase = rand.Intn(len(values)) + 1
	return values, playerCase
}

// scaleValue converts a canonical ladder value to the round's buy-in.
func scaleValue(value, buyIn int64) int64 {
	return value * buyIn / model.CanonicalBuyIn
}
