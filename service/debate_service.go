package service

import (
	"context"
	"fmt"
	"time"

	"debatearena/events"
	"debatearena/models"

	log "github.com/sirupsen/logrus"
)

const (
	minRound int16 = 1
	maxRound int16 = 3
)

type debateService struct {
	uowFactory UnitOfWorkFactory
}

// NewDebateService creates a new debate service
func NewDebateService(uowFactory UnitOfWorkFactory) DebateService {
	return &debateService{
		uowFactory: uowFactory,
	}
}

// CreateDebate creates a pending debate and escrows one stake from each
// agent owner's wallet. Either both stakes land in escrow or neither does.
func (s *debateService) CreateDebate(ctx context.Context, proAgentID, conAgentID int64, topic string, stakeAmount int64) (*models.Debate, error) {
	if stakeAmount <= 0 {
		return nil, fmt.Errorf("stake %d: %w", stakeAmount, ErrInvalidStake)
	}
	if len(topic) < minTopicLength || len(topic) > maxTopicLength {
		return nil, fmt.Errorf("topic is %d characters: %w", len(topic), ErrInvalidTopicLength)
	}
	if proAgentID == conAgentID {
		return nil, ErrSelfDebate
	}

	// The stake pool is 2x the stake; reject stakes whose pool cannot be
	// represented before touching any balance
	pool, err := checkedDouble(stakeAmount)
	if err != nil {
		return nil, fmt.Errorf("stake pool for %d: %w", stakeAmount, err)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	platform, err := uow.PlatformRepository().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get platform: %w", err)
	}
	if platform == nil {
		return nil, fmt.Errorf("platform not initialized: %w", ErrNotFound)
	}

	proAgent, err := uow.AgentRepository().GetByID(ctx, proAgentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pro agent: %w", err)
	}
	if proAgent == nil {
		return nil, fmt.Errorf("pro agent %d not found: %w", proAgentID, ErrNotFound)
	}
	if !proAgent.IsActive {
		return nil, fmt.Errorf("pro agent %d is not active", proAgentID)
	}

	conAgent, err := uow.AgentRepository().GetByID(ctx, conAgentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get con agent: %w", err)
	}
	if conAgent == nil {
		return nil, fmt.Errorf("con agent %d not found: %w", conAgentID, ErrNotFound)
	}
	if !conAgent.IsActive {
		return nil, fmt.Errorf("con agent %d is not active", conAgentID)
	}

	debate := &models.Debate{
		Topic:       topic,
		ProAgentID:  proAgentID,
		ConAgentID:  conAgentID,
		Status:      models.DebateStatusPending,
		StakeAmount: stakeAmount,
	}

	if err := uow.DebateRepository().Create(ctx, debate); err != nil {
		return nil, fmt.Errorf("failed to create debate: %w", err)
	}

	if err := uow.EscrowRepository().Create(ctx, debate.ID); err != nil {
		return nil, fmt.Errorf("failed to create escrow account: %w", err)
	}

	// Both owners stake or neither does; a failed second deposit rolls back
	// the first along with the debate itself
	for _, owner := range []struct {
		userID int64
		side   models.DebateSide
	}{
		{proAgent.OwnerID, models.DebateSidePro},
		{conAgent.OwnerID, models.DebateSideCon},
	} {
		metadata := map[string]any{"side": string(owner.side)}
		if err := depositToEscrow(ctx, uow, owner.userID, debate.ID, stakeAmount,
			models.TransactionTypeStakeDeposit, debate.ID, models.RelatedTypeDebate, metadata); err != nil {
			return nil, fmt.Errorf("failed to escrow %s stake: %w", owner.side, err)
		}
	}

	if err := uow.PlatformRepository().IncrementDebates(ctx); err != nil {
		return nil, fmt.Errorf("failed to increment debate counter: %w", err)
	}
	if err := uow.PlatformRepository().AddVolume(ctx, pool); err != nil {
		return nil, fmt.Errorf("failed to add volume: %w", err)
	}

	uow.EventBus().Publish(events.DebateCreatedEvent{
		DebateID:    debate.ID,
		ProAgentID:  proAgentID,
		ConAgentID:  conAgentID,
		StakeAmount: stakeAmount,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"debateID": debate.ID,
		"stake":    stakeAmount,
	}).Info("Debate created with both stakes escrowed")

	return debate, nil
}

// StartDebate transitions a pending debate to in progress, closing betting.
// Authority only.
func (s *debateService) StartDebate(ctx context.Context, callerID, debateID int64) (*models.Debate, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if _, err := requireAuthority(ctx, uow, callerID); err != nil {
		return nil, err
	}

	debate, err := uow.DebateRepository().GetByID(ctx, debateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get debate: %w", err)
	}
	if debate == nil {
		return nil, fmt.Errorf("debate %d not found: %w", debateID, ErrNotFound)
	}
	if !debate.CanStart() {
		return nil, fmt.Errorf("debate %d is %s: %w", debateID, debate.Status, ErrInvalidDebateStatus)
	}

	now := time.Now()
	debate.Status = models.DebateStatusInProgress
	debate.StartedAt = &now

	if err := uow.DebateRepository().Update(ctx, debate); err != nil {
		return nil, fmt.Errorf("failed to update debate: %w", err)
	}

	uow.EventBus().Publish(events.DebateStartedEvent{DebateID: debateID})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return debate, nil
}

// SubmitRoundResult records one round's vote tallies. Authority only.
//
// The debate's aggregate vote totals and rounds-won counters are advisory
// and do not bind settlement. Round submissions are append-only: a
// resubmitted round number is accepted and counted again.
func (s *debateService) SubmitRoundResult(ctx context.Context, callerID, debateID int64, round int16, proVotes, conVotes int64) (*models.Debate, error) {
	if round < minRound || round > maxRound {
		return nil, fmt.Errorf("round %d: %w", round, ErrInvalidRound)
	}
	if proVotes < 0 || conVotes < 0 {
		return nil, fmt.Errorf("round %d tallies %d/%d: %w", round, proVotes, conVotes, ErrNegativeVotes)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if _, err := requireAuthority(ctx, uow, callerID); err != nil {
		return nil, err
	}

	debate, err := uow.DebateRepository().GetByID(ctx, debateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get debate: %w", err)
	}
	if debate == nil {
		return nil, fmt.Errorf("debate %d not found: %w", debateID, ErrNotFound)
	}
	if !debate.CanRecordRound() {
		return nil, fmt.Errorf("debate %d is %s: %w", debateID, debate.Status, ErrInvalidDebateStatus)
	}

	debate.TotalProVotes, err = checkedAddVotes(debate.TotalProVotes, proVotes)
	if err != nil {
		return nil, fmt.Errorf("pro vote total: %w", err)
	}
	debate.TotalConVotes, err = checkedAddVotes(debate.TotalConVotes, conVotes)
	if err != nil {
		return nil, fmt.Errorf("con vote total: %w", err)
	}

	// Strict majority takes the round; a tie takes neither counter
	if proVotes > conVotes {
		debate.ProRoundsWon++
	} else if conVotes > proVotes {
		debate.ConRoundsWon++
	}

	if err := uow.DebateRepository().AddRound(ctx, &models.DebateRound{
		DebateID: debateID,
		Round:    round,
		ProVotes: proVotes,
		ConVotes: conVotes,
	}); err != nil {
		return nil, fmt.Errorf("failed to record round: %w", err)
	}

	if err := uow.DebateRepository().Update(ctx, debate); err != nil {
		return nil, fmt.Errorf("failed to update debate: %w", err)
	}

	uow.EventBus().Publish(events.RoundRecordedEvent{
		DebateID: debateID,
		Round:    round,
		ProVotes: proVotes,
		ConVotes: conVotes,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return debate, nil
}

// SettleDebate declares the winner, pays the stake pool minus the platform
// fee to the payee wallet and the fee to the treasury. Authority only. The
// winner and payee are caller-supplied; the vote counters on the debate do
// not bind the outcome.
func (s *debateService) SettleDebate(ctx context.Context, callerID, debateID int64, winner models.DebateSide, payeeID int64) (*models.SettlementResult, error) {
	if !winner.Valid() {
		return nil, fmt.Errorf("winner %q: %w", winner, ErrInvalidSide)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	platform, err := requireAuthority(ctx, uow, callerID)
	if err != nil {
		return nil, err
	}

	debate, err := uow.DebateRepository().GetByID(ctx, debateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get debate: %w", err)
	}
	if debate == nil {
		return nil, fmt.Errorf("debate %d not found: %w", debateID, ErrNotFound)
	}
	if !debate.CanSettle() {
		return nil, fmt.Errorf("debate %d is %s: %w", debateID, debate.Status, ErrInvalidDebateStatus)
	}

	payout, fee, err := SettlementAmounts(debate.StakeAmount, platform.FeeBps)
	if err != nil {
		return nil, fmt.Errorf("settlement amounts for stake %d: %w", debate.StakeAmount, err)
	}

	metadata := map[string]any{"winner": string(winner)}
	if err := payoutFromEscrow(ctx, uow, payeeID, debateID, payout,
		models.TransactionTypeSettlementPayout, debateID, models.RelatedTypeDebate, metadata); err != nil {
		return nil, fmt.Errorf("failed to pay winner: %w", err)
	}

	if fee > 0 {
		if err := payoutFromEscrow(ctx, uow, platform.TreasuryID, debateID, fee,
			models.TransactionTypePlatformFee, debateID, models.RelatedTypeDebate, nil); err != nil {
			return nil, fmt.Errorf("failed to pay platform fee: %w", err)
		}
	}

	now := time.Now()
	debate.Status = models.DebateStatusCompleted
	debate.Winner = &winner
	debate.CompletedAt = &now

	if err := uow.DebateRepository().Update(ctx, debate); err != nil {
		return nil, fmt.Errorf("failed to update debate: %w", err)
	}

	uow.EventBus().Publish(events.DebateSettledEvent{
		DebateID:     debateID,
		Winner:       winner,
		PayeeID:      payeeID,
		WinnerPayout: payout,
		PlatformFee:  fee,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"debateID": debateID,
		"winner":   winner,
		"payout":   payout,
		"fee":      fee,
	}).Info("Debate settled")

	return &models.SettlementResult{
		Debate:       debate,
		Winner:       winner,
		PayeeID:      payeeID,
		WinnerPayout: payout,
		PlatformFee:  fee,
	}, nil
}

// GetDebate retrieves a debate by ID
func (s *debateService) GetDebate(ctx context.Context, debateID int64) (*models.Debate, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	debate, err := uow.DebateRepository().GetByID(ctx, debateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get debate: %w", err)
	}
	if debate == nil {
		return nil, fmt.Errorf("debate %d not found: %w", debateID, ErrNotFound)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return debate, nil
}

// GetRounds returns the submitted round history for a debate
func (s *debateService) GetRounds(ctx context.Context, debateID int64) ([]*models.DebateRound, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	rounds, err := uow.DebateRepository().GetRounds(ctx, debateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rounds: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return rounds, nil
}
