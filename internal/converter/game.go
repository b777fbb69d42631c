package converter

import (
	dto "cases_backend/internal/api/dto/game"
	"cases_backend/internal/model"
)

func ToStartGame(req dto.StartRequest) model.StartGame {
	return model.StartGame{
		BuyIn:       req.BuyIn,
		Tier:        req.Tier,
		Personality: model.Personality(req.Personality),
	}
}

// ToRoundResponse builds the client view. Only opened case values are
// revealed; the player's own value surfaces through FinalValue once
// the round completes.
func ToRoundResponse(round *model.Round) dto.RoundResponse {
	opened := make([]dto.OpenedCase, 0, len(round.OpenedCases))
	for _, c := range round.OpenedCases {
		opened = append(opened, dto.OpenedCase{
			Case:  c,
			Value: round.CaseValues[c-1] * round.BuyIn / model.CanonicalBuyIn,
		})
	}

	return dto.RoundResponse{
		ID:            round.ID,
		Tier:          round.Tier,
		Personality:   string(round.Personality),
		BuyIn:         round.BuyIn,
		Phase:         string(round.Phase),
		FinalStage:    round.FinalStage,
		RoundIndex:    round.RoundIndex,
		TotalRounds:   round.TotalRounds,
		CasesToOpen:   round.CasesToOpen,
		CaseCount:     round.CaseCount(),
		PlayerCase:    round.PlayerCase,
		OpenedCases:   opened,
		BankerOffer:   round.BankerOffer,
		AcceptedOffer: round.AcceptedOffer,
		FinalValue:    round.FinalValue,
		CreatedAt:     round.CreatedAt,
		CompletedAt:   round.CompletedAt,
	}
}

func ToOpenCaseResponse(res *model.OpenResult) dto.OpenCaseResponse {
	return dto.OpenCaseResponse{
		Round:         ToRoundResponse(res.Round),
		RevealedCase:  res.RevealedCase,
		RevealedValue: res.RevealedValue,
	}
}

func ToDecideResponse(res *model.DecideResult) dto.DecideResponse {
	out := dto.DecideResponse{
		Round: ToRoundResponse(res.Round),
	}
	if res.Outcome != nil {
		payout := res.Payout
		balance := res.Balance
		out.Payout = &payout
		out.Balance = &balance
		out.Signature = res.Outcome.Signature
	}
	return out
}
