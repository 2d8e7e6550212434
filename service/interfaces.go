package service

import (
	"context"

	"debatearena/events"
	"debatearena/models"
)

// PlatformRepository defines the interface for the singleton platform record
type PlatformRepository interface {
	// Get retrieves the platform record, nil if not initialized
	Get(ctx context.Context) (*models.Platform, error)

	// Create creates the platform record
	Create(ctx context.Context, platform *models.Platform) error

	// IncrementDebates bumps the total_debates counter
	IncrementDebates(ctx context.Context) error

	// IncrementUsers bumps the total_users counter
	IncrementUsers(ctx context.Context) error

	// AddVolume adds to the total_volume counter
	AddVolume(ctx context.Context, amount int64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// Create creates a new user with the initial balance
	Create(ctx context.Context, username string, initialBalance int64) (*models.User, error)

	// AddBalance adds to a user's balance atomically
	AddBalance(ctx context.Context, id int64, amount int64) error

	// DeductBalance deducts from a user's balance atomically, failing if insufficient funds
	DeductBalance(ctx context.Context, id int64, amount int64) error

	// AddWagered adds to a user's lifetime wagered total
	AddWagered(ctx context.Context, id int64, amount int64) error

	// AddWon adds to a user's lifetime winnings total
	AddWon(ctx context.Context, id int64, amount int64) error

	// IncrementAgentCount bumps a user's registered agent count
	IncrementAgentCount(ctx context.Context, id int64) error

	// RecordResult increments a user's win or loss counter
	RecordResult(ctx context.Context, id int64, won bool) error
}

// AgentRepository defines the interface for agent data access
type AgentRepository interface {
	// Create creates a new agent
	Create(ctx context.Context, agent *models.Agent) error

	// GetByID retrieves an agent by ID
	GetByID(ctx context.Context, id int64) (*models.Agent, error)

	// UpdateRating sets an agent's rating and increments its win or loss counter
	UpdateRating(ctx context.Context, id int64, rating int32, won bool) error
}

// TopicRepository defines the interface for topic and topic vote data access
type TopicRepository interface {
	// Create creates a new topic
	Create(ctx context.Context, topic *models.Topic) error

	// GetByID retrieves a topic by ID
	GetByID(ctx context.Context, id int64) (*models.Topic, error)

	// GetVote retrieves a voter's vote on a topic, nil if none
	GetVote(ctx context.Context, topicID, voterID int64) (*models.TopicVote, error)

	// CreateVote records a vote
	CreateVote(ctx context.Context, vote *models.TopicVote) error

	// CountVote increments the topic's upvote or downvote tally
	CountVote(ctx context.Context, topicID int64, upvote bool) error
}

// DebateRepository defines the interface for debate data access
type DebateRepository interface {
	// Create creates a new debate
	Create(ctx context.Context, debate *models.Debate) error

	// GetByID retrieves a debate by ID
	GetByID(ctx context.Context, id int64) (*models.Debate, error)

	// Update updates a debate's status, counters, winner and timestamps
	Update(ctx context.Context, debate *models.Debate) error

	// AddRound appends a round result audit record
	AddRound(ctx context.Context, round *models.DebateRound) error

	// GetRounds returns all submitted round results for a debate in submission order
	GetRounds(ctx context.Context, debateID int64) ([]*models.DebateRound, error)
}

// BetRepository defines the interface for bet data access
type BetRepository interface {
	// Create creates a new bet record
	Create(ctx context.Context, bet *models.Bet) error

	// GetByDebateAndBettor retrieves a bet by its (debate, bettor) key, nil if none
	GetByDebateAndBettor(ctx context.Context, debateID, bettorID int64) (*models.Bet, error)

	// Update updates a bet's settled flag and payout
	Update(ctx context.Context, bet *models.Bet) error

	// GetByDebate returns all bets on a debate
	GetByDebate(ctx context.Context, debateID int64) ([]*models.Bet, error)
}

// EscrowRepository defines the interface for escrow account access
type EscrowRepository interface {
	// Create opens the escrow account for a debate with a zero balance
	Create(ctx context.Context, debateID int64) error

	// Get retrieves the escrow account for a debate
	Get(ctx context.Context, debateID int64) (*models.EscrowAccount, error)

	// Credit adds to the escrow balance atomically
	Credit(ctx context.Context, debateID int64, amount int64) error

	// Debit deducts from the escrow balance atomically, failing with
	// ErrInsufficientEscrow rather than letting the balance go negative
	Debit(ctx context.Context, debateID int64, amount int64) error
}

// LedgerRepository defines the interface for the wallet audit trail
type LedgerRepository interface {
	// Record creates a new ledger entry
	Record(ctx context.Context, entry *models.LedgerEntry) error

	// GetByUser returns ledger entries for a specific user, newest first
	GetByUser(ctx context.Context, userID int64, limit int) ([]*models.LedgerEntry, error)
}

// PlatformService defines the interface for platform bootstrap operations
type PlatformService interface {
	// Initialize creates the singleton platform record
	Initialize(ctx context.Context, authorityID, treasuryID, feeBps int64) (*models.Platform, error)

	// Get retrieves the platform record
	Get(ctx context.Context) (*models.Platform, error)
}

// UserService defines the interface for registration and rating operations
type UserService interface {
	// RegisterUser creates a new user with the starting balance and rating
	RegisterUser(ctx context.Context, username string) (*models.User, error)

	// GetUser retrieves a user by ID
	GetUser(ctx context.Context, id int64) (*models.User, error)

	// RegisterAgent creates a new agent owned by a user
	RegisterAgent(ctx context.Context, ownerID int64, name string, endpointHash []byte) (*models.Agent, error)

	// UpdateAgentRating sets an agent's rating after a debate; authority only
	UpdateAgentRating(ctx context.Context, callerID, agentID int64, newRating int32, won bool) error

	// GetLedger returns a user's wallet audit trail, newest first
	GetLedger(ctx context.Context, userID int64, limit int) ([]*models.LedgerEntry, error)
}

// TopicService defines the interface for topic proposal and voting
type TopicService interface {
	// ProposeTopic creates a new debate topic
	ProposeTopic(ctx context.Context, proposerID int64, text, category string) (*models.Topic, error)

	// VoteTopic records a one-time up/down vote on a topic
	VoteTopic(ctx context.Context, voterID, topicID int64, upvote bool) (*models.Topic, error)
}

// DebateService defines the interface for the debate lifecycle
type DebateService interface {
	// CreateDebate creates a pending debate, escrowing one stake from each
	// agent owner's wallet; either both stakes land in escrow or neither does
	CreateDebate(ctx context.Context, proAgentID, conAgentID int64, topic string, stakeAmount int64) (*models.Debate, error)

	// StartDebate transitions a pending debate to in progress; authority only
	StartDebate(ctx context.Context, callerID, debateID int64) (*models.Debate, error)

	// SubmitRoundResult records one round's vote tallies; authority only.
	// The aggregate counters are advisory and do not bind settlement.
	SubmitRoundResult(ctx context.Context, callerID, debateID int64, round int16, proVotes, conVotes int64) (*models.Debate, error)

	// SettleDebate declares the winner and pays out the stake pool; authority
	// only. The winner and the payee wallet are caller-supplied.
	SettleDebate(ctx context.Context, callerID, debateID int64, winner models.DebateSide, payeeID int64) (*models.SettlementResult, error)

	// GetDebate retrieves a debate by ID
	GetDebate(ctx context.Context, debateID int64) (*models.Debate, error)

	// GetRounds returns the submitted round history for a debate
	GetRounds(ctx context.Context, debateID int64) ([]*models.DebateRound, error)
}

// BettingService defines the interface for the side-betting pool
type BettingService interface {
	// PlaceBet deposits a wager into the debate's escrow while betting is open
	PlaceBet(ctx context.Context, bettorID, debateID int64, side models.DebateSide, amount int64) (*models.Bet, error)

	// ClaimBet settles a bet against the declared winner, at most once
	ClaimBet(ctx context.Context, bettorID, debateID int64) (*models.ClaimResult, error)

	// GetBet retrieves a bet by its (debate, bettor) key
	GetBet(ctx context.Context, debateID, bettorID int64) (*models.Bet, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	PlatformRepository() PlatformRepository
	UserRepository() UserRepository
	AgentRepository() AgentRepository
	TopicRepository() TopicRepository
	DebateRepository() DebateRepository
	BetRepository() BetRepository
	EscrowRepository() EscrowRepository
	LedgerRepository() LedgerRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}
