package game

import "time"

type StartRequest struct {
	BuyIn       int64  `json:"buy_in"`      // minor units, within the tier's range
	Tier        string `json:"tier"`        // easy | standard | hard
	Personality string `json:"personality"` // conservative | fair | aggressive
}

type OpenCaseRequest struct {
	CaseNumber int `json:"case_number"` // 1..N, not the player's own
}

type DecideRequest struct {
	Decision string `json:"decision"` // deal | no_deal | open_case
}

type OpenedCase struct {
	Case  int   `json:"case"`
	Value int64 `json:"value"` // scaled to the round's buy-in
}

// RoundResponse is the owner's view of a round. Unopened values and
// the player's own value are never serialized before completion.
type RoundResponse struct {
	ID            string       `json:"id"`
	Tier          string       `json:"tier"`
	Personality   string       `json:"personality"`
	BuyIn         int64        `json:"buy_in"`
	Phase         string       `json:"phase"`
	FinalStage    bool         `json:"final_stage"`
	RoundIndex    int          `json:"round_index"`
	TotalRounds   int          `json:"total_rounds"`
	CasesToOpen   int          `json:"cases_to_open"`
	CaseCount     int          `json:"case_count"`
	PlayerCase    int          `json:"player_case"`
	OpenedCases   []OpenedCase `json:"opened_cases"`
	BankerOffer   *int64       `json:"banker_offer,omitempty"`
	AcceptedOffer *int64       `json:"accepted_offer,omitempty"`
	FinalValue    *int64       `json:"final_value,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	CompletedAt   *time.Time   `json:"completed_at,omitempty"`
}

type OpenCaseResponse struct {
	Round         RoundResponse `json:"round"`
	RevealedCase  int           `json:"revealed_case"`
	RevealedValue int64         `json:"revealed_value"`
}

// DecideResponse carries payout, balance and the fairness signature
// only when the decision was terminal.
type DecideResponse struct {
	Round     RoundResponse `json:"round"`
	Payout    *int64        `json:"payout,omitempty"`
	Balance   *int64        `json:"balance,omitempty"`
	Signature string        `json:"signature,omitempty"`
}
