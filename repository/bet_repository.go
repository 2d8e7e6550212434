package repository

import (
	"context"
	"fmt"

	"debatearena/database"
	"debatearena/models"
	"github.com/jackc/pgx/v5"
)

// BetRepository implements the BetRepository interface
type BetRepository struct {
	q queryable
}

// NewBetRepository creates a new bet repository
func NewBetRepository(db *database.DB) *BetRepository {
	return &BetRepository{q: db.Pool}
}

// newBetRepositoryWithTx creates a new bet repository with a transaction
func newBetRepositoryWithTx(tx queryable) *BetRepository {
	return &BetRepository{q: tx}
}

// Create creates a new bet record; the (debate_id, bettor_id) unique
// constraint backstops the service-level duplicate check
func (r *BetRepository) Create(ctx context.Context, bet *models.Bet) error {
	query := `
		INSERT INTO bets (debate_id, bettor_id, side, amount, settled, payout)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		bet.DebateID,
		bet.BettorID,
		bet.Side,
		bet.Amount,
		bet.Settled,
		bet.Payout,
	).Scan(&bet.ID, &bet.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create bet: %w", err)
	}

	return nil
}

// GetByDebateAndBettor retrieves a bet by its (debate, bettor) key, nil if none
func (r *BetRepository) GetByDebateAndBettor(ctx context.Context, debateID, bettorID int64) (*models.Bet, error) {
	query := `
		SELECT id, debate_id, bettor_id, side, amount, settled, payout, created_at
		FROM bets
		WHERE debate_id = $1 AND bettor_id = $2
	`

	var bet models.Bet
	err := r.q.QueryRow(ctx, query, debateID, bettorID).Scan(
		&bet.ID,
		&bet.DebateID,
		&bet.BettorID,
		&bet.Side,
		&bet.Amount,
		&bet.Settled,
		&bet.Payout,
		&bet.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bet on debate %d by bettor %d: %w", debateID, bettorID, err)
	}

	return &bet, nil
}

// Update updates a bet's settled flag and payout
func (r *BetRepository) Update(ctx context.Context, bet *models.Bet) error {
	query := `
		UPDATE bets
		SET settled = $1, payout = $2
		WHERE id = $3
	`

	result, err := r.q.Exec(ctx, query, bet.Settled, bet.Payout, bet.ID)
	if err != nil {
		return fmt.Errorf("failed to update bet %d: %w", bet.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("bet %d not found", bet.ID)
	}

	return nil
}

// GetByDebate returns all bets on a debate
func (r *BetRepository) GetByDebate(ctx context.Context, debateID int64) ([]*models.Bet, error) {
	query := `
		SELECT id, debate_id, bettor_id, side, amount, settled, payout, created_at
		FROM bets
		WHERE debate_id = $1
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, debateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bets for debate %d: %w", debateID, err)
	}
	defer rows.Close()

	var bets []*models.Bet
	for rows.Next() {
		var bet models.Bet
		err := rows.Scan(
			&bet.ID,
			&bet.DebateID,
			&bet.BettorID,
			&bet.Side,
			&bet.Amount,
			&bet.Settled,
			&bet.Payout,
			&bet.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bets = append(bets, &bet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bets: %w", err)
	}

	return bets, nil
}
