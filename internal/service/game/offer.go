package game

import (
	"cases_backend/internal/model"
	"math"
)

// bankerOffer prices the buyout: EV times the personality multiplier
// at the current round progress. Deterministic — the same inputs
// always produce the same offer, and the result is the authoritative
// payout figure for a deal.
func bankerOffer(ev float64, curve model.PersonalityCurve, roundIndex, totalRounds int) int64 {
	progress := 0.0
	if totalRounds > 0 {
		progress = float64(roundIndex) / float64(totalRounds)
	}
	return int64(math.Round(ev * curve.Multiplier(progress)))
}
