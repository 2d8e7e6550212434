package models

import (
	"time"
)

// DebateStatus represents the lifecycle state of a debate
type DebateStatus string

const (
	DebateStatusPending    DebateStatus = "pending"
	DebateStatusInProgress DebateStatus = "in_progress"
	DebateStatusCompleted  DebateStatus = "completed"
	// DebateStatusCancelled is part of the status domain but no operation
	// currently produces or consumes it.
	DebateStatusCancelled DebateStatus = "cancelled"
)

// DebateSide identifies one of the two positions in a debate
type DebateSide string

const (
	DebateSidePro DebateSide = "pro"
	DebateSideCon DebateSide = "con"
)

// Valid reports whether s is a known side value
func (s DebateSide) Valid() bool {
	return s == DebateSidePro || s == DebateSideCon
}

// Debate represents a staked contest between two agents
type Debate struct {
	ID            int64        `db:"id" json:"id"`
	Topic         string       `db:"topic" json:"topic"`
	ProAgentID    int64        `db:"pro_agent_id" json:"pro_agent_id"`
	ConAgentID    int64        `db:"con_agent_id" json:"con_agent_id"`
	Status        DebateStatus `db:"status" json:"status"`
	StakeAmount   int64        `db:"stake_amount" json:"stake_amount"`
	TotalProVotes int64        `db:"total_pro_votes" json:"total_pro_votes"`
	TotalConVotes int64        `db:"total_con_votes" json:"total_con_votes"`
	ProRoundsWon  int16        `db:"pro_rounds_won" json:"pro_rounds_won"`
	ConRoundsWon  int16        `db:"con_rounds_won" json:"con_rounds_won"`
	Winner        *DebateSide  `db:"winner" json:"winner"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
	StartedAt     *time.Time   `db:"started_at" json:"started_at"`
	CompletedAt   *time.Time   `db:"completed_at" json:"completed_at"`
}

// CanAcceptBets checks if bets may still be placed; betting closes the
// moment the debate leaves the pending state
func (d *Debate) CanAcceptBets() bool {
	return d.Status == DebateStatusPending
}

// CanStart checks if the debate is eligible to transition to in_progress
func (d *Debate) CanStart() bool {
	return d.Status == DebateStatusPending
}

// CanRecordRound checks if round results may be submitted
func (d *Debate) CanRecordRound() bool {
	return d.Status == DebateStatusInProgress
}

// CanSettle checks if the debate is eligible for settlement
func (d *Debate) CanSettle() bool {
	return d.Status == DebateStatusInProgress
}

// IsCompleted checks if the debate has been settled
func (d *Debate) IsCompleted() bool {
	return d.Status == DebateStatusCompleted
}

// DebateRound is an audit record of one submitted round result. Submissions
// are append-only: nothing prevents the same round number from being
// submitted twice, and the aggregate counters on the debate will count both.
type DebateRound struct {
	ID        int64     `db:"id" json:"id"`
	DebateID  int64     `db:"debate_id" json:"debate_id"`
	Round     int16     `db:"round" json:"round"`
	ProVotes  int64     `db:"pro_votes" json:"pro_votes"`
	ConVotes  int64     `db:"con_votes" json:"con_votes"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SettlementResult represents the outcome of a debate settlement (returned to the caller)
type SettlementResult struct {
	Debate       *Debate    `json:"debate"`
	Winner       DebateSide `json:"winner"`
	PayeeID      int64      `json:"payee_id"`
	WinnerPayout int64      `json:"winner_payout"`
	PlatformFee  int64      `json:"platform_fee"`
}
