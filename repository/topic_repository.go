package repository

import (
	"context"
	"fmt"

	"debatearena/database"
	"debatearena/models"
	"github.com/jackc/pgx/v5"
)

// TopicRepository implements the TopicRepository interface
type TopicRepository struct {
	q queryable
}

// NewTopicRepository creates a new topic repository
func NewTopicRepository(db *database.DB) *TopicRepository {
	return &TopicRepository{q: db.Pool}
}

// newTopicRepositoryWithTx creates a new topic repository with a transaction
func newTopicRepositoryWithTx(tx queryable) *TopicRepository {
	return &TopicRepository{q: tx}
}

// Create creates a new topic
func (r *TopicRepository) Create(ctx context.Context, topic *models.Topic) error {
	query := `
		INSERT INTO topics (proposer_id, text, category)
		VALUES ($1, $2, $3)
		RETURNING id, upvotes, downvotes, times_used, created_at
	`

	err := r.q.QueryRow(ctx, query, topic.ProposerID, topic.Text, topic.Category).Scan(
		&topic.ID,
		&topic.Upvotes,
		&topic.Downvotes,
		&topic.TimesUsed,
		&topic.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create topic: %w", err)
	}

	return nil
}

// GetByID retrieves a topic by ID
func (r *TopicRepository) GetByID(ctx context.Context, id int64) (*models.Topic, error) {
	query := `
		SELECT id, proposer_id, text, category, upvotes, downvotes, times_used, created_at
		FROM topics
		WHERE id = $1
	`

	var topic models.Topic
	err := r.q.QueryRow(ctx, query, id).Scan(
		&topic.ID,
		&topic.ProposerID,
		&topic.Text,
		&topic.Category,
		&topic.Upvotes,
		&topic.Downvotes,
		&topic.TimesUsed,
		&topic.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get topic %d: %w", id, err)
	}

	return &topic, nil
}

// GetVote retrieves a voter's vote on a topic, nil if none
func (r *TopicRepository) GetVote(ctx context.Context, topicID, voterID int64) (*models.TopicVote, error) {
	query := `
		SELECT id, topic_id, voter_id, upvote, created_at
		FROM topic_votes
		WHERE topic_id = $1 AND voter_id = $2
	`

	var vote models.TopicVote
	err := r.q.QueryRow(ctx, query, topicID, voterID).Scan(
		&vote.ID,
		&vote.TopicID,
		&vote.VoterID,
		&vote.Upvote,
		&vote.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vote on topic %d by voter %d: %w", topicID, voterID, err)
	}

	return &vote, nil
}

// CreateVote records a vote; the (topic_id, voter_id) unique constraint
// backstops the service-level duplicate check
func (r *TopicRepository) CreateVote(ctx context.Context, vote *models.TopicVote) error {
	query := `
		INSERT INTO topic_votes (topic_id, voter_id, upvote)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query, vote.TopicID, vote.VoterID, vote.Upvote).Scan(&vote.ID, &vote.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create topic vote: %w", err)
	}

	return nil
}

// CountVote increments the topic's upvote or downvote tally
func (r *TopicRepository) CountVote(ctx context.Context, topicID int64, upvote bool) error {
	column := "downvotes"
	if upvote {
		column = "upvotes"
	}

	query := fmt.Sprintf(`
		UPDATE topics
		SET %s = %s + 1
		WHERE id = $1
	`, column, column)

	result, err := r.q.Exec(ctx, query, topicID)
	if err != nil {
		return fmt.Errorf("failed to count vote on topic %d: %w", topicID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("topic %d not found", topicID)
	}

	return nil
}
