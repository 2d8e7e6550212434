package models

import "time"

// Bet represents a third-party wager on a debate outcome, keyed uniquely
// by (debate, bettor)
type Bet struct {
	ID        int64      `db:"id" json:"id"`
	DebateID  int64      `db:"debate_id" json:"debate_id"`
	BettorID  int64      `db:"bettor_id" json:"bettor_id"`
	Side      DebateSide `db:"side" json:"side"`
	Amount    int64      `db:"amount" json:"amount"`
	Settled   bool       `db:"settled" json:"settled"`
	Payout    int64      `db:"payout" json:"payout"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// ClaimResult represents the outcome of a bet claim (returned to the bettor)
type ClaimResult struct {
	Bet    *Bet  `json:"bet"`
	Won    bool  `json:"won"`
	Payout int64 `json:"payout"`
}
