package repository

import (
	"context"
	"fmt"

	"debatearena/database"
	"debatearena/models"
	"debatearena/service"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, username, balance, rating, wins, losses, agent_count, total_wagered, total_won, created_at, updated_at`

// UserRepository implements the UserRepository interface
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository with a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Balance,
		&user.Rating,
		&user.Wins,
		&user.Losses,
		&user.AgentCount,
		&user.TotalWagered,
		&user.TotalWon,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}

	return user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, username))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %q: %w", username, err)
	}

	return user, nil
}

// Create creates a new user with the initial balance
func (r *UserRepository) Create(ctx context.Context, username string, initialBalance int64) (*models.User, error) {
	query := `
		INSERT INTO users (username, balance, rating)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	user, err := scanUser(r.q.QueryRow(ctx, query, username, initialBalance, models.StartingRating))
	if err != nil {
		return nil, fmt.Errorf("failed to create user %q: %w", username, err)
	}

	return user, nil
}

// AddBalance adds to a user's balance atomically
func (r *UserRepository) AddBalance(ctx context.Context, id int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE users
		SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, amount, id)
	if err != nil {
		return fmt.Errorf("failed to add balance for user %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", id)
	}

	return nil
}

// DeductBalance deducts from a user's balance atomically, failing if
// insufficient funds. The balance check and the decrement are a single
// conditional update.
func (r *UserRepository) DeductBalance(ctx context.Context, id int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE users
		SET balance = balance - $1, updated_at = NOW()
		WHERE id = $2 AND balance >= $1
	`

	result, err := r.q.Exec(ctx, query, amount, id)
	if err != nil {
		return fmt.Errorf("failed to deduct balance for user %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		user, err := r.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to check user: %w", err)
		}
		if user == nil {
			return fmt.Errorf("user %d not found", id)
		}
		return fmt.Errorf("user %d has %d, needs %d: %w", id, user.Balance, amount, service.ErrInsufficientFunds)
	}

	return nil
}

// AddWagered adds to a user's lifetime wagered total
func (r *UserRepository) AddWagered(ctx context.Context, id int64, amount int64) error {
	return r.addStat(ctx, id, "total_wagered", amount)
}

// AddWon adds to a user's lifetime winnings total
func (r *UserRepository) AddWon(ctx context.Context, id int64, amount int64) error {
	return r.addStat(ctx, id, "total_won", amount)
}

func (r *UserRepository) addStat(ctx context.Context, id int64, column string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("amount cannot be negative")
	}

	query := fmt.Sprintf(`
		UPDATE users
		SET %s = %s + $1, updated_at = NOW()
		WHERE id = $2
	`, column, column)

	result, err := r.q.Exec(ctx, query, amount, id)
	if err != nil {
		return fmt.Errorf("failed to update %s for user %d: %w", column, id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", id)
	}

	return nil
}

// IncrementAgentCount bumps a user's registered agent count
func (r *UserRepository) IncrementAgentCount(ctx context.Context, id int64) error {
	query := `
		UPDATE users
		SET agent_count = agent_count + 1, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to increment agent count for user %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", id)
	}

	return nil
}

// RecordResult increments a user's win or loss counter
func (r *UserRepository) RecordResult(ctx context.Context, id int64, won bool) error {
	column := "losses"
	if won {
		column = "wins"
	}

	query := fmt.Sprintf(`
		UPDATE users
		SET %s = %s + 1, updated_at = NOW()
		WHERE id = $1
	`, column, column)

	result, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to record result for user %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", id)
	}

	return nil
}
