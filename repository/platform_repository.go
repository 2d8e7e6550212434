package repository

import (
	"context"
	"fmt"

	"debatearena/database"
	"debatearena/models"
	"github.com/jackc/pgx/v5"
)

// PlatformRepository implements the PlatformRepository interface
type PlatformRepository struct {
	q queryable
}

// NewPlatformRepository creates a new platform repository
func NewPlatformRepository(db *database.DB) *PlatformRepository {
	return &PlatformRepository{q: db.Pool}
}

// newPlatformRepositoryWithTx creates a new platform repository with a transaction
func newPlatformRepositoryWithTx(tx queryable) *PlatformRepository {
	return &PlatformRepository{q: tx}
}

// Get retrieves the platform record, nil if not initialized
func (r *PlatformRepository) Get(ctx context.Context) (*models.Platform, error) {
	query := `
		SELECT id, authority_id, treasury_id, fee_bps, total_debates, total_users, total_volume, created_at, updated_at
		FROM platform
		WHERE id = 1
	`

	var platform models.Platform
	err := r.q.QueryRow(ctx, query).Scan(
		&platform.ID,
		&platform.AuthorityID,
		&platform.TreasuryID,
		&platform.FeeBps,
		&platform.TotalDebates,
		&platform.TotalUsers,
		&platform.TotalVolume,
		&platform.CreatedAt,
		&platform.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get platform record: %w", err)
	}

	return &platform, nil
}

// Create creates the platform record
func (r *PlatformRepository) Create(ctx context.Context, platform *models.Platform) error {
	query := `
		INSERT INTO platform (id, authority_id, treasury_id, fee_bps)
		VALUES (1, $1, $2, $3)
		RETURNING id, total_debates, total_users, total_volume, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query, platform.AuthorityID, platform.TreasuryID, platform.FeeBps).Scan(
		&platform.ID,
		&platform.TotalDebates,
		&platform.TotalUsers,
		&platform.TotalVolume,
		&platform.CreatedAt,
		&platform.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create platform record: %w", err)
	}

	return nil
}

// IncrementDebates bumps the total_debates counter
func (r *PlatformRepository) IncrementDebates(ctx context.Context) error {
	return r.increment(ctx, "total_debates", 1)
}

// IncrementUsers bumps the total_users counter
func (r *PlatformRepository) IncrementUsers(ctx context.Context) error {
	return r.increment(ctx, "total_users", 1)
}

// AddVolume adds to the total_volume counter
func (r *PlatformRepository) AddVolume(ctx context.Context, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("volume amount cannot be negative")
	}
	return r.increment(ctx, "total_volume", amount)
}

func (r *PlatformRepository) increment(ctx context.Context, column string, amount int64) error {
	// column is always one of the fixed counter names above
	query := fmt.Sprintf(`
		UPDATE platform
		SET %s = %s + $1, updated_at = NOW()
		WHERE id = 1
	`, column, column)

	result, err := r.q.Exec(ctx, query, amount)
	if err != nil {
		return fmt.Errorf("failed to update platform %s: %w", column, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("platform record not found")
	}

	return nil
}
