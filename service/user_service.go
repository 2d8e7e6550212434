package service

import (
	"context"
	"fmt"

	"debatearena/events"
	"debatearena/models"
)

// InitialBalance is the wallet balance granted to every new user
const InitialBalance int64 = 100_000

const (
	maxUsernameLength  = 32
	maxAgentNameLength = 50
)

type userService struct {
	uowFactory UnitOfWorkFactory
}

// NewUserService creates a new user service
func NewUserService(uowFactory UnitOfWorkFactory) UserService {
	return &userService{
		uowFactory: uowFactory,
	}
}

// RegisterUser creates a new user with the starting balance and rating
func (s *userService) RegisterUser(ctx context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, ErrUsernameEmpty
	}
	if len(username) > maxUsernameLength {
		return nil, fmt.Errorf("username %q: %w", username, ErrUsernameTooLong)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	existing, err := uow.UserRepository().GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("username %q: %w", username, ErrUsernameTaken)
	}

	user, err := uow.UserRepository().Create(ctx, username, InitialBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Record the grant in the audit trail
	entry := &models.LedgerEntry{
		UserID:          user.ID,
		BalanceBefore:   0,
		BalanceAfter:    InitialBalance,
		ChangeAmount:    InitialBalance,
		TransactionType: models.TransactionTypeInitial,
		Metadata: map[string]any{
			"username": username,
		},
	}
	if err := RecordLedgerEntry(ctx, uow, entry); err != nil {
		return nil, fmt.Errorf("failed to record initial balance: %w", err)
	}

	// The authority and treasury users register before the platform record
	// exists, so the counter only moves once it does
	platform, err := uow.PlatformRepository().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get platform: %w", err)
	}
	if platform != nil {
		if err := uow.PlatformRepository().IncrementUsers(ctx); err != nil {
			return nil, fmt.Errorf("failed to increment user counter: %w", err)
		}
	}

	uow.EventBus().Publish(events.UserRegisteredEvent{
		UserID:         user.ID,
		Username:       username,
		InitialBalance: InitialBalance,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user, nil
}

// GetUser retrieves a user by ID
func (s *userService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d not found: %w", id, ErrNotFound)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user, nil
}

// RegisterAgent creates a new agent owned by a user
func (s *userService) RegisterAgent(ctx context.Context, ownerID int64, name string, endpointHash []byte) (*models.Agent, error) {
	if name == "" {
		return nil, ErrAgentNameEmpty
	}
	if len(name) > maxAgentNameLength {
		return nil, fmt.Errorf("agent name %q: %w", name, ErrAgentNameTooLong)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	owner, err := uow.UserRepository().GetByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get owner: %w", err)
	}
	if owner == nil {
		return nil, fmt.Errorf("owner %d not found: %w", ownerID, ErrNotFound)
	}

	agent := &models.Agent{
		OwnerID:      ownerID,
		Name:         name,
		EndpointHash: endpointHash,
		Rating:       models.StartingRating,
		IsActive:     true,
	}

	if err := uow.AgentRepository().Create(ctx, agent); err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	if err := uow.UserRepository().IncrementAgentCount(ctx, ownerID); err != nil {
		return nil, fmt.Errorf("failed to increment agent count: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return agent, nil
}

// GetLedger returns a user's wallet audit trail, newest first
func (s *userService) GetLedger(ctx context.Context, userID int64, limit int) ([]*models.LedgerEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entries, err := uow.LedgerRepository().GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entries: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return entries, nil
}

// UpdateAgentRating sets an agent's rating after a debate and records the
// result on both the agent and its owner. Authority only. The new rating is
// caller-supplied; rating math happens off-core.
func (s *userService) UpdateAgentRating(ctx context.Context, callerID, agentID int64, newRating int32, won bool) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if _, err := requireAuthority(ctx, uow, callerID); err != nil {
		return err
	}

	agent, err := uow.AgentRepository().GetByID(ctx, agentID)
	if err != nil {
		return fmt.Errorf("failed to get agent: %w", err)
	}
	if agent == nil {
		return fmt.Errorf("agent %d not found: %w", agentID, ErrNotFound)
	}

	if err := uow.AgentRepository().UpdateRating(ctx, agentID, newRating, won); err != nil {
		return fmt.Errorf("failed to update agent rating: %w", err)
	}

	if err := uow.UserRepository().RecordResult(ctx, agent.OwnerID, won); err != nil {
		return fmt.Errorf("failed to record owner result: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
