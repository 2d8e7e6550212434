package repository

import (
	"context"
	"fmt"

	"debatearena/database"
	"debatearena/models"
	"debatearena/service"
	"github.com/jackc/pgx/v5"
)

// EscrowRepository implements the EscrowRepository interface
type EscrowRepository struct {
	q queryable
}

// NewEscrowRepository creates a new escrow repository
func NewEscrowRepository(db *database.DB) *EscrowRepository {
	return &EscrowRepository{q: db.Pool}
}

// newEscrowRepositoryWithTx creates a new escrow repository with a transaction
func newEscrowRepositoryWithTx(tx queryable) *EscrowRepository {
	return &EscrowRepository{q: tx}
}

// Create opens the escrow account for a debate with a zero balance
func (r *EscrowRepository) Create(ctx context.Context, debateID int64) error {
	query := `
		INSERT INTO escrow_accounts (debate_id, balance)
		VALUES ($1, 0)
	`

	_, err := r.q.Exec(ctx, query, debateID)
	if err != nil {
		return fmt.Errorf("failed to create escrow account for debate %d: %w", debateID, err)
	}

	return nil
}

// Get retrieves the escrow account for a debate
func (r *EscrowRepository) Get(ctx context.Context, debateID int64) (*models.EscrowAccount, error) {
	query := `
		SELECT debate_id, balance, created_at, updated_at
		FROM escrow_accounts
		WHERE debate_id = $1
	`

	var account models.EscrowAccount
	err := r.q.QueryRow(ctx, query, debateID).Scan(
		&account.DebateID,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get escrow account for debate %d: %w", debateID, err)
	}

	return &account, nil
}

// Credit adds to the escrow balance atomically
func (r *EscrowRepository) Credit(ctx context.Context, debateID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE escrow_accounts
		SET balance = balance + $1, updated_at = NOW()
		WHERE debate_id = $2
	`

	result, err := r.q.Exec(ctx, query, amount, debateID)
	if err != nil {
		return fmt.Errorf("failed to credit escrow for debate %d: %w", debateID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("escrow account for debate %d not found", debateID)
	}

	return nil
}

// Debit deducts from the escrow balance atomically. The balance check and
// the decrement are a single conditional update, so two concurrent debits
// cannot both pass the check before either applies; an overdraw fails with
// ErrInsufficientEscrow and the balance never goes negative.
func (r *EscrowRepository) Debit(ctx context.Context, debateID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE escrow_accounts
		SET balance = balance - $1, updated_at = NOW()
		WHERE debate_id = $2 AND balance >= $1
	`

	result, err := r.q.Exec(ctx, query, amount, debateID)
	if err != nil {
		return fmt.Errorf("failed to debit escrow for debate %d: %w", debateID, err)
	}

	if result.RowsAffected() == 0 {
		account, err := r.Get(ctx, debateID)
		if err != nil {
			return fmt.Errorf("failed to check escrow account: %w", err)
		}
		if account == nil {
			return fmt.Errorf("escrow account for debate %d not found", debateID)
		}
		return fmt.Errorf("escrow for debate %d holds %d, needs %d: %w",
			debateID, account.Balance, amount, service.ErrInsufficientEscrow)
	}

	return nil
}
