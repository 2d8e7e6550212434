package service

import (
	"context"
	"fmt"

	"debatearena/events"
	"debatearena/models"
)

// RecordLedgerEntry records a wallet audit entry and emits the balance
// change event. This is the single entry point for all wallet changes in
// the system.
func RecordLedgerEntry(ctx context.Context, uow UnitOfWork, entry *models.LedgerEntry) error {
	if err := uow.LedgerRepository().Record(ctx, entry); err != nil {
		return fmt.Errorf("failed to record ledger entry: %w", err)
	}

	// Emitted after the surrounding transaction commits
	uow.EventBus().Publish(events.BalanceChangeEvent{
		UserID:          entry.UserID,
		OldBalance:      entry.BalanceBefore,
		NewBalance:      entry.BalanceAfter,
		TransactionType: entry.TransactionType,
		ChangeAmount:    entry.ChangeAmount,
	})

	return nil
}

// depositToEscrow pulls amount from a user's wallet into a debate's escrow
// account and writes the wallet-side ledger entry. The wallet debit is an
// atomic conditional decrement; insufficient funds abort the whole
// operation with no transfer.
func depositToEscrow(ctx context.Context, uow UnitOfWork, userID, debateID, amount int64, txType models.TransactionType, relatedID int64, relatedType models.RelatedType, metadata map[string]any) error {
	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get payer: %w", err)
	}
	if user == nil {
		return fmt.Errorf("payer %d not found: %w", userID, ErrNotFound)
	}

	if err := uow.UserRepository().DeductBalance(ctx, userID, amount); err != nil {
		return fmt.Errorf("failed to deduct payer balance: %w", err)
	}

	if err := uow.EscrowRepository().Credit(ctx, debateID, amount); err != nil {
		return fmt.Errorf("failed to credit escrow: %w", err)
	}

	entry := &models.LedgerEntry{
		UserID:          userID,
		BalanceBefore:   user.Balance,
		BalanceAfter:    user.Balance - amount,
		ChangeAmount:    -amount,
		TransactionType: txType,
		Metadata:        metadata,
		RelatedID:       &relatedID,
		RelatedType:     &relatedType,
	}

	return RecordLedgerEntry(ctx, uow, entry)
}

// payoutFromEscrow pushes amount from a debate's escrow account to a user's
// wallet and writes the wallet-side ledger entry. The escrow debit is an
// atomic compare-and-decrement; a debit that would overdraw the escrow
// aborts the whole operation with ErrInsufficientEscrow.
func payoutFromEscrow(ctx context.Context, uow UnitOfWork, userID, debateID, amount int64, txType models.TransactionType, relatedID int64, relatedType models.RelatedType, metadata map[string]any) error {
	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get payee: %w", err)
	}
	if user == nil {
		return fmt.Errorf("payee %d not found: %w", userID, ErrNotFound)
	}

	if err := uow.EscrowRepository().Debit(ctx, debateID, amount); err != nil {
		return fmt.Errorf("failed to debit escrow: %w", err)
	}

	if err := uow.UserRepository().AddBalance(ctx, userID, amount); err != nil {
		return fmt.Errorf("failed to credit payee balance: %w", err)
	}

	entry := &models.LedgerEntry{
		UserID:          userID,
		BalanceBefore:   user.Balance,
		BalanceAfter:    user.Balance + amount,
		ChangeAmount:    amount,
		TransactionType: txType,
		Metadata:        metadata,
		RelatedID:       &relatedID,
		RelatedType:     &relatedType,
	}

	return RecordLedgerEntry(ctx, uow, entry)
}
