package service

import (
	"context"
	"fmt"
	"testing"

	"debatearena/events"
	"debatearena/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBettingService_PlaceBet(t *testing.T) {
	ctx := context.Background()
	m := createTestMocks()
	m.setupTransaction(ctx)

	service := NewBettingService(m.factory)

	bettor := createTestUser(300, 1_000_000)

	m.debates.On("GetByID", ctx, int64(7)).Return(createTestDebate(7, models.DebateStatusPending, 1000), nil)
	m.bets.On("GetByDebateAndBettor", ctx, int64(7), int64(300)).Return(nil, nil)

	m.bets.On("Create", ctx, mock.MatchedBy(func(b *models.Bet) bool {
		return b.DebateID == 7 && b.BettorID == 300 &&
			b.Side == models.DebateSidePro && b.Amount == 400_000 && !b.Settled
	})).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Bet).ID = 42
	})

	m.users.On("GetByID", ctx, int64(300)).Return(bettor, nil)
	m.users.On("DeductBalance", ctx, int64(300), int64(400_000)).Return(nil)
	m.escrow.On("Credit", ctx, int64(7), int64(400_000)).Return(nil)
	m.ledger.On("Record", ctx, mock.MatchedBy(func(e *models.LedgerEntry) bool {
		return e.ChangeAmount == -400_000 &&
			e.TransactionType == models.TransactionTypeBetDeposit &&
			e.RelatedID != nil && *e.RelatedID == 42
	})).Return(nil)

	m.users.On("AddWagered", ctx, int64(300), int64(400_000)).Return(nil)
	m.platform.On("AddVolume", ctx, int64(400_000)).Return(nil)

	bet, err := service.PlaceBet(ctx, 300, 7, models.DebateSidePro, 400_000)
	require.NoError(t, err)
	assert.Equal(t, int64(42), bet.ID)
	assert.False(t, bet.Settled)

	var placed bool
	for _, ev := range m.uow.PublishedEvents() {
		if e, ok := ev.(events.BetPlacedEvent); ok {
			placed = true
			assert.Equal(t, int64(400_000), e.Amount)
		}
	}
	assert.True(t, placed)

	m.bets.AssertExpectations(t)
	m.escrow.AssertExpectations(t)
}

func TestBettingService_PlaceBet_Validation(t *testing.T) {
	ctx := context.Background()
	m := createTestMocks()
	service := NewBettingService(m.factory)

	_, err := service.PlaceBet(ctx, 300, 7, models.DebateSidePro, 0)
	assert.ErrorIs(t, err, ErrInvalidBetAmount)

	_, err = service.PlaceBet(ctx, 300, 7, models.DebateSide("maybe"), 100)
	assert.ErrorIs(t, err, ErrInvalidSide)

	m.factory.AssertNotCalled(t, "Create")
}

func TestBettingService_PlaceBet_BettingClosed(t *testing.T) {
	ctx := context.Background()

	for _, status := range []models.DebateStatus{
		models.DebateStatusInProgress,
		models.DebateStatusCompleted,
		models.DebateStatusCancelled,
	} {
		m := createTestMocks()
		m.factory.On("Create").Return(m.uow)
		m.uow.On("Begin", ctx).Return(nil)
		m.uow.On("Rollback").Return(nil)

		service := NewBettingService(m.factory)

		m.debates.On("GetByID", ctx, int64(7)).Return(createTestDebate(7, status, 1000), nil)

		_, err := service.PlaceBet(ctx, 300, 7, models.DebateSidePro, 100)
		assert.ErrorIs(t, err, ErrBettingClosed, "status %s", status)
	}
}

func TestBettingService_PlaceBet_Duplicate(t *testing.T) {
	ctx := context.Background()
	m := createTestMocks()

	m.factory.On("Create").Return(m.uow)
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback").Return(nil)

	service := NewBettingService(m.factory)

	existing := &models.Bet{ID: 42, DebateID: 7, BettorID: 300, Side: models.DebateSidePro, Amount: 100}

	m.debates.On("GetByID", ctx, int64(7)).Return(createTestDebate(7, models.DebateStatusPending, 1000), nil)
	m.bets.On("GetByDebateAndBettor", ctx, int64(7), int64(300)).Return(existing, nil)

	_, err := service.PlaceBet(ctx, 300, 7, models.DebateSideCon, 200)
	assert.ErrorIs(t, err, ErrDuplicateBet)
	m.bets.AssertNotCalled(t, "Create")
}

func TestBettingService_ClaimBet_Win(t *testing.T) {
	ctx := context.Background()
	m := createTestMocks()
	m.setupTransaction(ctx)

	service := NewBettingService(m.factory)

	winner := models.DebateSidePro
	debate := createTestDebate(7, models.DebateStatusCompleted, 1_000_000)
	debate.Winner = &winner

	bet := &models.Bet{ID: 42, DebateID: 7, BettorID: 300, Side: models.DebateSidePro, Amount: 400_000}
	bettor := createTestUser(300, 600_000)

	m.platform.On("Get", ctx).Return(createTestPlatform(250), nil)
	m.debates.On("GetByID", ctx, int64(7)).Return(debate, nil)
	m.bets.On("GetByDebateAndBettor", ctx, int64(7), int64(300)).Return(bet, nil)

	// Fixed odds at 250 bps: 400,000 doubled less the fee
	m.users.On("GetByID", ctx, int64(300)).Return(bettor, nil)
	m.escrow.On("Debit", ctx, int64(7), int64(780_000)).Return(nil)
	m.users.On("AddBalance", ctx, int64(300), int64(780_000)).Return(nil)
	m.ledger.On("Record", ctx, mock.MatchedBy(func(e *models.LedgerEntry) bool {
		return e.ChangeAmount == 780_000 &&
			e.TransactionType == models.TransactionTypeBetPayout
	})).Return(nil)
	m.users.On("AddWon", ctx, int64(300), int64(780_000)).Return(nil)

	m.bets.On("Update", ctx, mock.MatchedBy(func(b *models.Bet) bool {
		return b.Settled && b.Payout == 780_000
	})).Return(nil)

	result, err := service.ClaimBet(ctx, 300, 7)
	require.NoError(t, err)
	assert.True(t, result.Won)
	assert.Equal(t, int64(780_000), result.Payout)

	m.escrow.AssertExpectations(t)
	m.bets.AssertExpectations(t)
}

func TestBettingService_ClaimBet_Loss(t *testing.T) {
	ctx := context.Background()
	m := createTestMocks()
	m.setupTransaction(ctx)

	service := NewBettingService(m.factory)

	winner := models.DebateSidePro
	debate := createTestDebate(7, models.DebateStatusCompleted, 1_000_000)
	debate.Winner = &winner

	bet := &models.Bet{ID: 42, DebateID: 7, BettorID: 300, Side: models.DebateSideCon, Amount: 400_000}

	m.platform.On("Get", ctx).Return(createTestPlatform(250), nil)
	m.debates.On("GetByID", ctx, int64(7)).Return(debate, nil)
	m.bets.On("GetByDebateAndBettor", ctx, int64(7), int64(300)).Return(bet, nil)
	m.bets.On("Update", ctx, mock.MatchedBy(func(b *models.Bet) bool {
		return b.Settled && b.Payout == 0
	})).Return(nil)

	result, err := service.ClaimBet(ctx, 300, 7)
	require.NoError(t, err)
	assert.False(t, result.Won)
	assert.Equal(t, int64(0), result.Payout)

	// Losing claims never touch escrow or the wallet
	m.escrow.AssertNotCalled(t, "Debit")
	m.users.AssertNotCalled(t, "AddBalance")
}

func TestBettingService_ClaimBet_Twice(t *testing.T) {
	ctx := context.Background()
	m := createTestMocks()

	m.factory.On("Create").Return(m.uow)
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback").Return(nil)

	service := NewBettingService(m.factory)

	winner := models.DebateSidePro
	debate := createTestDebate(7, models.DebateStatusCompleted, 1_000_000)
	debate.Winner = &winner

	settled := &models.Bet{ID: 42, DebateID: 7, BettorID: 300, Side: models.DebateSidePro, Amount: 400_000, Settled: true, Payout: 780_000}

	m.platform.On("Get", ctx).Return(createTestPlatform(250), nil)
	m.debates.On("GetByID", ctx, int64(7)).Return(debate, nil)
	m.bets.On("GetByDebateAndBettor", ctx, int64(7), int64(300)).Return(settled, nil)

	_, err := service.ClaimBet(ctx, 300, 7)
	assert.ErrorIs(t, err, ErrBetAlreadySettled)

	// The recorded payout never changes on a repeat claim
	assert.Equal(t, int64(780_000), settled.Payout)
	m.escrow.AssertNotCalled(t, "Debit")
	m.uow.AssertNotCalled(t, "Commit")
}

func TestBettingService_ClaimBet_NotCompleted(t *testing.T) {
	ctx := context.Background()
	m := createTestMocks()

	m.factory.On("Create").Return(m.uow)
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback").Return(nil)

	service := NewBettingService(m.factory)

	m.platform.On("Get", ctx).Return(createTestPlatform(250), nil)
	m.debates.On("GetByID", ctx, int64(7)).Return(createTestDebate(7, models.DebateStatusInProgress, 1000), nil)

	_, err := service.ClaimBet(ctx, 300, 7)
	assert.ErrorIs(t, err, ErrDebateNotCompleted)
}

// Fixed odds pay each winning bet as if matched 1:1, so a lopsided pool can
// leave the escrow unable to cover a later claim. The claim must fail
// cleanly and leave the bet claimable.
func TestBettingService_ClaimBet_EscrowInsolvent(t *testing.T) {
	ctx := context.Background()
	m := createTestMocks()

	m.factory.On("Create").Return(m.uow)
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback").Return(nil)

	service := NewBettingService(m.factory)

	winner := models.DebateSidePro
	debate := createTestDebate(7, models.DebateStatusCompleted, 100)
	debate.Winner = &winner

	// Stake pool was tiny; this winning bet dwarfs what escrow holds
	bet := &models.Bet{ID: 42, DebateID: 7, BettorID: 300, Side: models.DebateSidePro, Amount: 1000}
	bettor := createTestUser(300, 0)

	m.platform.On("Get", ctx).Return(createTestPlatform(500), nil)
	m.debates.On("GetByID", ctx, int64(7)).Return(debate, nil)
	m.bets.On("GetByDebateAndBettor", ctx, int64(7), int64(300)).Return(bet, nil)
	m.users.On("GetByID", ctx, int64(300)).Return(bettor, nil)

	// 1000 doubled at 500 bps fee = 1900, more than escrow holds
	m.escrow.On("Debit", ctx, int64(7), int64(1900)).
		Return(fmt.Errorf("escrow for debate 7 holds too little: %w", ErrInsufficientEscrow))

	_, err := service.ClaimBet(ctx, 300, 7)
	assert.ErrorIs(t, err, ErrInsufficientEscrow)

	// Nothing committed; the bet record is still unsettled
	assert.False(t, bet.Settled)
	m.uow.AssertNotCalled(t, "Commit")
	m.users.AssertNotCalled(t, "AddBalance")
}
