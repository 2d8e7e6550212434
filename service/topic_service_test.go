package service

import (
	"context"
	"strings"
	"testing"

	"debatearena/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTopicService_ProposeTopic(t *testing.T) {
	ctx := context.Background()
	m := createTestMocks()
	m.setupTransaction(ctx)

	service := NewTopicService(m.factory)

	m.users.On("GetByID", ctx, int64(100)).Return(createTestUser(100, 500), nil)
	m.topics.On("Create", ctx, mock.MatchedBy(func(tp *models.Topic) bool {
		return tp.ProposerID == 100 && tp.Category == "technology"
	})).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Topic).ID = 5
	})

	topic, err := service.ProposeTopic(ctx, 100, testTopic, "technology")
	require.NoError(t, err)
	assert.Equal(t, int64(5), topic.ID)

	m.topics.AssertExpectations(t)
}

func TestTopicService_ProposeTopic_Validation(t *testing.T) {
	ctx := context.Background()
	m := createTestMocks()
	service := NewTopicService(m.factory)

	_, err := service.ProposeTopic(ctx, 100, "short", "tech")
	assert.ErrorIs(t, err, ErrInvalidTopicLength)

	_, err = service.ProposeTopic(ctx, 100, strings.Repeat("x", 501), "tech")
	assert.ErrorIs(t, err, ErrInvalidTopicLength)

	_, err = service.ProposeTopic(ctx, 100, testTopic, strings.Repeat("c", 33))
	assert.ErrorIs(t, err, ErrCategoryTooLong)

	m.factory.AssertNotCalled(t, "Create")
}

func TestTopicService_VoteTopic(t *testing.T) {
	ctx := context.Background()
	m := createTestMocks()
	m.setupTransaction(ctx)

	service := NewTopicService(m.factory)

	topic := &models.Topic{ID: 5, ProposerID: 100, Text: testTopic, Upvotes: 3, Downvotes: 1}

	m.topics.On("GetByID", ctx, int64(5)).Return(topic, nil)
	m.users.On("GetByID", ctx, int64(200)).Return(createTestUser(200, 500), nil)
	m.topics.On("GetVote", ctx, int64(5), int64(200)).Return(nil, nil)
	m.topics.On("CreateVote", ctx, mock.MatchedBy(func(v *models.TopicVote) bool {
		return v.TopicID == 5 && v.VoterID == 200 && v.Upvote
	})).Return(nil)
	m.topics.On("CountVote", ctx, int64(5), true).Return(nil)

	voted, err := service.VoteTopic(ctx, 200, 5, true)
	require.NoError(t, err)
	assert.Equal(t, int32(4), voted.Upvotes)
	assert.Equal(t, int32(1), voted.Downvotes)

	m.topics.AssertExpectations(t)
}

func TestTopicService_VoteTopic_AlreadyVoted(t *testing.T) {
	ctx := context.Background()
	m := createTestMocks()

	m.factory.On("Create").Return(m.uow)
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback").Return(nil)

	service := NewTopicService(m.factory)

	topic := &models.Topic{ID: 5, ProposerID: 100, Text: testTopic}
	existingVote := &models.TopicVote{ID: 1, TopicID: 5, VoterID: 200, Upvote: false}

	m.topics.On("GetByID", ctx, int64(5)).Return(topic, nil)
	m.users.On("GetByID", ctx, int64(200)).Return(createTestUser(200, 500), nil)
	m.topics.On("GetVote", ctx, int64(5), int64(200)).Return(existingVote, nil)

	_, err := service.VoteTopic(ctx, 200, 5, true)
	assert.ErrorIs(t, err, ErrAlreadyVoted)
	m.topics.AssertNotCalled(t, "CreateVote")
	m.topics.AssertNotCalled(t, "CountVote")
}
