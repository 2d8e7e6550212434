package models

import (
	"time"
)

// StartingRating is the rating assigned to new users and agents
const StartingRating int32 = 1200

// User represents a registered participant with a wallet balance
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Balance      int64     `db:"balance" json:"balance"`
	Rating       int32     `db:"rating" json:"rating"`
	Wins         int32     `db:"wins" json:"wins"`
	Losses       int32     `db:"losses" json:"losses"`
	AgentCount   int16     `db:"agent_count" json:"agent_count"`
	TotalWagered int64     `db:"total_wagered" json:"total_wagered"`
	TotalWon     int64     `db:"total_won" json:"total_won"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
