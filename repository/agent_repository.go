package repository

import (
	"context"
	"fmt"

	"debatearena/database"
	"debatearena/models"
	"github.com/jackc/pgx/v5"
)

// AgentRepository implements the AgentRepository interface
type AgentRepository struct {
	q queryable
}

// NewAgentRepository creates a new agent repository
func NewAgentRepository(db *database.DB) *AgentRepository {
	return &AgentRepository{q: db.Pool}
}

// newAgentRepositoryWithTx creates a new agent repository with a transaction
func newAgentRepositoryWithTx(tx queryable) *AgentRepository {
	return &AgentRepository{q: tx}
}

// Create creates a new agent
func (r *AgentRepository) Create(ctx context.Context, agent *models.Agent) error {
	query := `
		INSERT INTO agents (owner_id, name, endpoint_hash, rating, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, wins, losses, created_at
	`

	err := r.q.QueryRow(ctx, query,
		agent.OwnerID,
		agent.Name,
		agent.EndpointHash,
		agent.Rating,
		agent.IsActive,
	).Scan(&agent.ID, &agent.Wins, &agent.Losses, &agent.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create agent %q: %w", agent.Name, err)
	}

	return nil
}

// GetByID retrieves an agent by ID
func (r *AgentRepository) GetByID(ctx context.Context, id int64) (*models.Agent, error) {
	query := `
		SELECT id, owner_id, name, endpoint_hash, rating, wins, losses, is_active, created_at
		FROM agents
		WHERE id = $1
	`

	var agent models.Agent
	err := r.q.QueryRow(ctx, query, id).Scan(
		&agent.ID,
		&agent.OwnerID,
		&agent.Name,
		&agent.EndpointHash,
		&agent.Rating,
		&agent.Wins,
		&agent.Losses,
		&agent.IsActive,
		&agent.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get agent %d: %w", id, err)
	}

	return &agent, nil
}

// UpdateRating sets an agent's rating and increments its win or loss counter
func (r *AgentRepository) UpdateRating(ctx context.Context, id int64, rating int32, won bool) error {
	column := "losses"
	if won {
		column = "wins"
	}

	query := fmt.Sprintf(`
		UPDATE agents
		SET rating = $1, %s = %s + 1
		WHERE id = $2
	`, column, column)

	result, err := r.q.Exec(ctx, query, rating, id)
	if err != nil {
		return fmt.Errorf("failed to update rating for agent %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("agent %d not found", id)
	}

	return nil
}
