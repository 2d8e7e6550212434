package service

import (
	"context"
	"fmt"

	"debatearena/models"
)

const (
	minTopicLength    = 10
	maxTopicLength    = 500
	maxCategoryLength = 32
)

type topicService struct {
	uowFactory UnitOfWorkFactory
}

// NewTopicService creates a new topic service
func NewTopicService(uowFactory UnitOfWorkFactory) TopicService {
	return &topicService{
		uowFactory: uowFactory,
	}
}

// ProposeTopic creates a new debate topic
func (s *topicService) ProposeTopic(ctx context.Context, proposerID int64, text, category string) (*models.Topic, error) {
	if len(text) < minTopicLength || len(text) > maxTopicLength {
		return nil, fmt.Errorf("topic is %d characters: %w", len(text), ErrInvalidTopicLength)
	}
	if len(category) > maxCategoryLength {
		return nil, fmt.Errorf("category %q: %w", category, ErrCategoryTooLong)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	proposer, err := uow.UserRepository().GetByID(ctx, proposerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get proposer: %w", err)
	}
	if proposer == nil {
		return nil, fmt.Errorf("proposer %d not found: %w", proposerID, ErrNotFound)
	}

	topic := &models.Topic{
		ProposerID: proposerID,
		Text:       text,
		Category:   category,
	}

	if err := uow.TopicRepository().Create(ctx, topic); err != nil {
		return nil, fmt.Errorf("failed to create topic: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return topic, nil
}

// VoteTopic records a one-time up/down vote on a topic
func (s *topicService) VoteTopic(ctx context.Context, voterID, topicID int64, upvote bool) (*models.Topic, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	topic, err := uow.TopicRepository().GetByID(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to get topic: %w", err)
	}
	if topic == nil {
		return nil, fmt.Errorf("topic %d not found: %w", topicID, ErrNotFound)
	}

	voter, err := uow.UserRepository().GetByID(ctx, voterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get voter: %w", err)
	}
	if voter == nil {
		return nil, fmt.Errorf("voter %d not found: %w", voterID, ErrNotFound)
	}

	existing, err := uow.TopicRepository().GetVote(ctx, topicID, voterID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing vote: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("voter %d on topic %d: %w", voterID, topicID, ErrAlreadyVoted)
	}

	vote := &models.TopicVote{
		TopicID: topicID,
		VoterID: voterID,
		Upvote:  upvote,
	}

	if err := uow.TopicRepository().CreateVote(ctx, vote); err != nil {
		return nil, fmt.Errorf("failed to create vote: %w", err)
	}

	if err := uow.TopicRepository().CountVote(ctx, topicID, upvote); err != nil {
		return nil, fmt.Errorf("failed to count vote: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if upvote {
		topic.Upvotes++
	} else {
		topic.Downvotes++
	}

	return topic, nil
}
