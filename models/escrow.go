package models

import "time"

// EscrowAccount holds the locked value for one debate: both competitor
// stakes plus every bet deposit, until settlement and claims drain it.
// One account per debate, same lifetime. The balance must never go
// negative; every debit is conditionally checked against it.
type EscrowAccount struct {
	DebateID  int64     `db:"debate_id" json:"debate_id"`
	Balance   int64     `db:"balance" json:"balance"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
