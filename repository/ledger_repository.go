package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"debatearena/database"
	"debatearena/models"
)

// LedgerRepository implements the LedgerRepository interface
type LedgerRepository struct {
	q queryable
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *database.DB) *LedgerRepository {
	return &LedgerRepository{q: db.Pool}
}

// newLedgerRepositoryWithTx creates a new ledger repository with a transaction
func newLedgerRepositoryWithTx(tx queryable) *LedgerRepository {
	return &LedgerRepository{q: tx}
}

// Record creates a new ledger entry
func (r *LedgerRepository) Record(ctx context.Context, entry *models.LedgerEntry) error {
	var metadata []byte
	if entry.Metadata != nil {
		var err error
		metadata, err = json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal ledger metadata: %w", err)
		}
	}

	query := `
		INSERT INTO ledger_entries
			(user_id, balance_before, balance_after, change_amount, transaction_type, metadata, related_id, related_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		entry.UserID,
		entry.BalanceBefore,
		entry.BalanceAfter,
		entry.ChangeAmount,
		entry.TransactionType,
		metadata,
		entry.RelatedID,
		entry.RelatedType,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record ledger entry: %w", err)
	}

	return nil
}

// GetByUser returns ledger entries for a specific user, newest first
func (r *LedgerRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.LedgerEntry, error) {
	query := `
		SELECT id, user_id, balance_before, balance_after, change_amount, transaction_type, metadata, related_id, related_type, created_at
		FROM ledger_entries
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entries for user %d: %w", userID, err)
	}
	defer rows.Close()

	var entries []*models.LedgerEntry
	for rows.Next() {
		var entry models.LedgerEntry
		var metadata []byte
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.BalanceBefore,
			&entry.BalanceAfter,
			&entry.ChangeAmount,
			&entry.TransactionType,
			&metadata,
			&entry.RelatedID,
			&entry.RelatedType,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}

		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &entry.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal ledger metadata: %w", err)
			}
		}

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ledger entries: %w", err)
	}

	return entries, nil
}
