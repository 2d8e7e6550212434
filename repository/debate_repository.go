package repository

import (
	"context"
	"fmt"

	"debatearena/database"
	"debatearena/models"
	"github.com/jackc/pgx/v5"
)

const debateColumns = `id, topic, pro_agent_id, con_agent_id, status, stake_amount,
		total_pro_votes, total_con_votes, pro_rounds_won, con_rounds_won,
		winner, created_at, started_at, completed_at`

// DebateRepository implements the DebateRepository interface
type DebateRepository struct {
	q queryable
}

// NewDebateRepository creates a new debate repository
func NewDebateRepository(db *database.DB) *DebateRepository {
	return &DebateRepository{q: db.Pool}
}

// newDebateRepositoryWithTx creates a new debate repository with a transaction
func newDebateRepositoryWithTx(tx queryable) *DebateRepository {
	return &DebateRepository{q: tx}
}

func scanDebate(row pgx.Row) (*models.Debate, error) {
	var debate models.Debate
	err := row.Scan(
		&debate.ID,
		&debate.Topic,
		&debate.ProAgentID,
		&debate.ConAgentID,
		&debate.Status,
		&debate.StakeAmount,
		&debate.TotalProVotes,
		&debate.TotalConVotes,
		&debate.ProRoundsWon,
		&debate.ConRoundsWon,
		&debate.Winner,
		&debate.CreatedAt,
		&debate.StartedAt,
		&debate.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &debate, nil
}

// Create creates a new debate
func (r *DebateRepository) Create(ctx context.Context, debate *models.Debate) error {
	query := `
		INSERT INTO debates (topic, pro_agent_id, con_agent_id, status, stake_amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, total_pro_votes, total_con_votes, pro_rounds_won, con_rounds_won, created_at
	`

	err := r.q.QueryRow(ctx, query,
		debate.Topic,
		debate.ProAgentID,
		debate.ConAgentID,
		debate.Status,
		debate.StakeAmount,
	).Scan(
		&debate.ID,
		&debate.TotalProVotes,
		&debate.TotalConVotes,
		&debate.ProRoundsWon,
		&debate.ConRoundsWon,
		&debate.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create debate: %w", err)
	}

	return nil
}

// GetByID retrieves a debate by ID
func (r *DebateRepository) GetByID(ctx context.Context, id int64) (*models.Debate, error) {
	query := `SELECT ` + debateColumns + ` FROM debates WHERE id = $1`

	debate, err := scanDebate(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get debate %d: %w", id, err)
	}

	return debate, nil
}

// Update updates a debate's status, counters, winner and timestamps
func (r *DebateRepository) Update(ctx context.Context, debate *models.Debate) error {
	query := `
		UPDATE debates
		SET status = $1,
		    total_pro_votes = $2,
		    total_con_votes = $3,
		    pro_rounds_won = $4,
		    con_rounds_won = $5,
		    winner = $6,
		    started_at = $7,
		    completed_at = $8
		WHERE id = $9
	`

	result, err := r.q.Exec(ctx, query,
		debate.Status,
		debate.TotalProVotes,
		debate.TotalConVotes,
		debate.ProRoundsWon,
		debate.ConRoundsWon,
		debate.Winner,
		debate.StartedAt,
		debate.CompletedAt,
		debate.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update debate %d: %w", debate.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("debate %d not found", debate.ID)
	}

	return nil
}

// AddRound appends a round result audit record
func (r *DebateRepository) AddRound(ctx context.Context, round *models.DebateRound) error {
	query := `
		INSERT INTO debate_rounds (debate_id, round, pro_votes, con_votes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		round.DebateID,
		round.Round,
		round.ProVotes,
		round.ConVotes,
	).Scan(&round.ID, &round.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add round result for debate %d: %w", round.DebateID, err)
	}

	return nil
}

// GetRounds returns all submitted round results for a debate in submission order
func (r *DebateRepository) GetRounds(ctx context.Context, debateID int64) ([]*models.DebateRound, error) {
	query := `
		SELECT id, debate_id, round, pro_votes, con_votes, created_at
		FROM debate_rounds
		WHERE debate_id = $1
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, debateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rounds for debate %d: %w", debateID, err)
	}
	defer rows.Close()

	var rounds []*models.DebateRound
	for rows.Next() {
		var round models.DebateRound
		err := rows.Scan(
			&round.ID,
			&round.DebateID,
			&round.Round,
			&round.ProVotes,
			&round.ConVotes,
			&round.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan round: %w", err)
		}
		rounds = append(rounds, &round)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rounds: %w", err)
	}

	return rounds, nil
}
