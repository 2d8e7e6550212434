package service

import (
	"context"

	"debatearena/events"
	"debatearena/models"

	"github.com/stretchr/testify/mock"
)

// MockPlatformRepository is a mock implementation of PlatformRepository
type MockPlatformRepository struct {
	mock.Mock
}

func (m *MockPlatformRepository) Get(ctx context.Context) (*models.Platform, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Platform), args.Error(1)
}

func (m *MockPlatformRepository) Create(ctx context.Context, platform *models.Platform) error {
	args := m.Called(ctx, platform)
	return args.Error(0)
}

func (m *MockPlatformRepository) IncrementDebates(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlatformRepository) IncrementUsers(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlatformRepository) AddVolume(ctx context.Context, amount int64) error {
	args := m.Called(ctx, amount)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, username string, initialBalance int64) (*models.User, error) {
	args := m.Called(ctx, username, initialBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) AddBalance(ctx context.Context, id int64, amount int64) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

func (m *MockUserRepository) DeductBalance(ctx context.Context, id int64, amount int64) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

func (m *MockUserRepository) AddWagered(ctx context.Context, id int64, amount int64) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

func (m *MockUserRepository) AddWon(ctx context.Context, id int64, amount int64) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementAgentCount(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) RecordResult(ctx context.Context, id int64, won bool) error {
	args := m.Called(ctx, id, won)
	return args.Error(0)
}

// MockAgentRepository is a mock implementation of AgentRepository
type MockAgentRepository struct {
	mock.Mock
}

func (m *MockAgentRepository) Create(ctx context.Context, agent *models.Agent) error {
	args := m.Called(ctx, agent)
	return args.Error(0)
}

func (m *MockAgentRepository) GetByID(ctx context.Context, id int64) (*models.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Agent), args.Error(1)
}

func (m *MockAgentRepository) UpdateRating(ctx context.Context, id int64, rating int32, won bool) error {
	args := m.Called(ctx, id, rating, won)
	return args.Error(0)
}

// MockTopicRepository is a mock implementation of TopicRepository
type MockTopicRepository struct {
	mock.Mock
}

func (m *MockTopicRepository) Create(ctx context.Context, topic *models.Topic) error {
	args := m.Called(ctx, topic)
	return args.Error(0)
}

func (m *MockTopicRepository) GetByID(ctx context.Context, id int64) (*models.Topic, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Topic), args.Error(1)
}

func (m *MockTopicRepository) GetVote(ctx context.Context, topicID, voterID int64) (*models.TopicVote, error) {
	args := m.Called(ctx, topicID, voterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TopicVote), args.Error(1)
}

func (m *MockTopicRepository) CreateVote(ctx context.Context, vote *models.TopicVote) error {
	args := m.Called(ctx, vote)
	return args.Error(0)
}

func (m *MockTopicRepository) CountVote(ctx context.Context, topicID int64, upvote bool) error {
	args := m.Called(ctx, topicID, upvote)
	return args.Error(0)
}

// MockDebateRepository is a mock implementation of DebateRepository
type MockDebateRepository struct {
	mock.Mock
}

func (m *MockDebateRepository) Create(ctx context.Context, debate *models.Debate) error {
	args := m.Called(ctx, debate)
	return args.Error(0)
}

func (m *MockDebateRepository) GetByID(ctx context.Context, id int64) (*models.Debate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Debate), args.Error(1)
}

func (m *MockDebateRepository) Update(ctx context.Context, debate *models.Debate) error {
	args := m.Called(ctx, debate)
	return args.Error(0)
}

func (m *MockDebateRepository) AddRound(ctx context.Context, round *models.DebateRound) error {
	args := m.Called(ctx, round)
	return args.Error(0)
}

func (m *MockDebateRepository) GetRounds(ctx context.Context, debateID int64) ([]*models.DebateRound, error) {
	args := m.Called(ctx, debateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DebateRound), args.Error(1)
}

// MockBetRepository is a mock implementation of BetRepository
type MockBetRepository struct {
	mock.Mock
}

func (m *MockBetRepository) Create(ctx context.Context, bet *models.Bet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

func (m *MockBetRepository) GetByDebateAndBettor(ctx context.Context, debateID, bettorID int64) (*models.Bet, error) {
	args := m.Called(ctx, debateID, bettorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bet), args.Error(1)
}

func (m *MockBetRepository) Update(ctx context.Context, bet *models.Bet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

func (m *MockBetRepository) GetByDebate(ctx context.Context, debateID int64) ([]*models.Bet, error) {
	args := m.Called(ctx, debateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Bet), args.Error(1)
}

// MockEscrowRepository is a mock implementation of EscrowRepository
type MockEscrowRepository struct {
	mock.Mock
}

func (m *MockEscrowRepository) Create(ctx context.Context, debateID int64) error {
	args := m.Called(ctx, debateID)
	return args.Error(0)
}

func (m *MockEscrowRepository) Get(ctx context.Context, debateID int64) (*models.EscrowAccount, error) {
	args := m.Called(ctx, debateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EscrowAccount), args.Error(1)
}

func (m *MockEscrowRepository) Credit(ctx context.Context, debateID int64, amount int64) error {
	args := m.Called(ctx, debateID, amount)
	return args.Error(0)
}

func (m *MockEscrowRepository) Debit(ctx context.Context, debateID int64, amount int64) error {
	args := m.Called(ctx, debateID, amount)
	return args.Error(0)
}

// MockLedgerRepository is a mock implementation of LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Record(ctx context.Context, entry *models.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.LedgerEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LedgerEntry), args.Error(1)
}

// capturePublisher collects published events for assertions in tests
type capturePublisher struct {
	published []events.Event
}

func (p *capturePublisher) Publish(event events.Event) {
	p.published = append(p.published, event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Begin, Commit and
// Rollback go through testify expectations; the repository getters return
// whatever mocks were injected via SetRepositories.
type MockUnitOfWork struct {
	mock.Mock
	platformRepo PlatformRepository
	userRepo     UserRepository
	agentRepo    AgentRepository
	topicRepo    TopicRepository
	debateRepo   DebateRepository
	betRepo      BetRepository
	escrowRepo   EscrowRepository
	ledgerRepo   LedgerRepository
	bus          *capturePublisher
}

// SetRepositories injects the repository mocks this unit of work hands out
func (m *MockUnitOfWork) SetRepositories(
	platformRepo PlatformRepository,
	userRepo UserRepository,
	agentRepo AgentRepository,
	topicRepo TopicRepository,
	debateRepo DebateRepository,
	betRepo BetRepository,
	escrowRepo EscrowRepository,
	ledgerRepo LedgerRepository,
) {
	m.platformRepo = platformRepo
	m.userRepo = userRepo
	m.agentRepo = agentRepo
	m.topicRepo = topicRepo
	m.debateRepo = debateRepo
	m.betRepo = betRepo
	m.escrowRepo = escrowRepo
	m.ledgerRepo = ledgerRepo
	m.bus = &capturePublisher{}
}

// PublishedEvents returns the events published during the unit of work
func (m *MockUnitOfWork) PublishedEvents() []events.Event {
	return m.bus.published
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) PlatformRepository() PlatformRepository { return m.platformRepo }
func (m *MockUnitOfWork) UserRepository() UserRepository         { return m.userRepo }
func (m *MockUnitOfWork) AgentRepository() AgentRepository       { return m.agentRepo }
func (m *MockUnitOfWork) TopicRepository() TopicRepository       { return m.topicRepo }
func (m *MockUnitOfWork) DebateRepository() DebateRepository     { return m.debateRepo }
func (m *MockUnitOfWork) BetRepository() BetRepository           { return m.betRepo }
func (m *MockUnitOfWork) EscrowRepository() EscrowRepository     { return m.escrowRepo }
func (m *MockUnitOfWork) LedgerRepository() LedgerRepository     { return m.ledgerRepo }
func (m *MockUnitOfWork) EventBus() EventPublisher               { return m.bus }

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
