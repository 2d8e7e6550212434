package models

import (
	"time"
)

// TransactionType represents the type of wallet balance change
type TransactionType string

const (
	TransactionTypeInitial          TransactionType = "initial"
	TransactionTypeStakeDeposit     TransactionType = "stake_deposit"
	TransactionTypeBetDeposit       TransactionType = "bet_deposit"
	TransactionTypeSettlementPayout TransactionType = "settlement_payout"
	TransactionTypePlatformFee      TransactionType = "platform_fee"
	TransactionTypeBetPayout        TransactionType = "bet_payout"
)

// RelatedType represents what type of entity the related_id refers to
type RelatedType string

const (
	RelatedTypeDebate RelatedType = "debate"
	RelatedTypeBet    RelatedType = "bet"
)

// LedgerEntry is the audit record of one wallet balance change. Every value
// movement into or out of escrow writes exactly one entry for the wallet on
// the other end of the transfer.
type LedgerEntry struct {
	ID              int64           `db:"id" json:"id"`
	UserID          int64           `db:"user_id" json:"user_id"`
	BalanceBefore   int64           `db:"balance_before" json:"balance_before"`
	BalanceAfter    int64           `db:"balance_after" json:"balance_after"`
	ChangeAmount    int64           `db:"change_amount" json:"change_amount"`
	TransactionType TransactionType `db:"transaction_type" json:"transaction_type"`
	Metadata        map[string]any  `db:"metadata" json:"metadata"`
	RelatedID       *int64          `db:"related_id" json:"related_id"`
	RelatedType     *RelatedType    `db:"related_type" json:"related_type"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}
