package service

import (
	"context"
	"fmt"

	"debatearena/events"
	"debatearena/models"

	log "github.com/sirupsen/logrus"
)

type bettingService struct {
	uowFactory UnitOfWorkFactory
}

// NewBettingService creates a new betting service
func NewBettingService(uowFactory UnitOfWorkFactory) BettingService {
	return &bettingService{
		uowFactory: uowFactory,
	}
}

// PlaceBet deposits a wager into the debate's escrow. Betting is open only
// while the debate is pending, and each bettor may hold at most one bet per
// debate.
func (s *bettingService) PlaceBet(ctx context.Context, bettorID, debateID int64, side models.DebateSide, amount int64) (*models.Bet, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("bet of %d: %w", amount, ErrInvalidBetAmount)
	}
	if !side.Valid() {
		return nil, fmt.Errorf("side %q: %w", side, ErrInvalidSide)
	}

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
	if !debate.CanAcceptBets() {
		return nil, fmt.Errorf("debate %d is %s: %w", debateID, debate.Status, ErrBettingClosed)
	}

	existing, err := uow.BetRepository().GetByDebateAndBettor(ctx, debateID, bettorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing bet: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("bettor %d on debate %d: %w", bettorID, debateID, ErrDuplicateBet)
	}

	bet := &models.Bet{
		DebateID: debateID,
		BettorID: bettorID,
		Side:     side,
		Amount:   amount,
	}

	if err := uow.BetRepository().Create(ctx, bet); err != nil {
		return nil, fmt.Errorf("failed to create bet: %w", err)
	}

	metadata := map[string]any{"side": string(side)}
	if err := depositToEscrow(ctx, uow, bettorID, debateID, amount,
		models.TransactionTypeBetDeposit, bet.ID, models.RelatedTypeBet, metadata); err != nil {
		return nil, fmt.Errorf("failed to escrow bet: %w", err)
	}

	if err := uow.UserRepository().AddWagered(ctx, bettorID, amount); err != nil {
		return nil, fmt.Errorf("failed to add wagered total: %w", err)
	}

	if err := uow.PlatformRepository().AddVolume(ctx, amount); err != nil {
		return nil, fmt.Errorf("failed to add volume: %w", err)
	}

	uow.EventBus().Publish(events.BetPlacedEvent{
		DebateID: debateID,
		BettorID: bettorID,
		Side:     side,
		Amount:   amount,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return bet, nil
}

// ClaimBet settles a bet against the declared winner, at most once. Winners
// are paid fixed odds from the debate's escrow; if the escrow cannot cover
// the payout the claim fails with ErrInsufficientEscrow and the bet stays
// claimable. Losing bets settle with a zero payout.
func (s *bettingService) ClaimBet(ctx context.Context, bettorID, debateID int64) (*models.ClaimResult, error) {
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

	debate, err := uow.DebateRepository().GetByID(ctx, debateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get debate: %w", err)
	}
	if debate == nil {
		return nil, fmt.Errorf("debate %d not found: %w", debateID, ErrNotFound)
	}
	if !debate.IsCompleted() {
		return nil, fmt.Errorf("debate %d is %s: %w", debateID, debate.Status, ErrDebateNotCompleted)
	}
	if debate.Winner == nil {
		return nil, fmt.Errorf("debate %d: %w", debateID, ErrNoWinner)
	}

	bet, err := uow.BetRepository().GetByDebateAndBettor(ctx, debateID, bettorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}
	if bet == nil {
		return nil, fmt.Errorf("no bet by %d on debate %d: %w", bettorID, debateID, ErrNotFound)
	}
	if bet.Settled {
		return nil, fmt.Errorf("bet %d: %w", bet.ID, ErrBetAlreadySettled)
	}

	won := bet.Side == *debate.Winner

	if won {
		payout, err := BetPayout(bet.Amount, platform.FeeBps)
		if err != nil {
			return nil, fmt.Errorf("bet payout for %d: %w", bet.Amount, err)
		}

		metadata := map[string]any{"winner": string(*debate.Winner)}
		if err := payoutFromEscrow(ctx, uow, bettorID, debateID, payout,
			models.TransactionTypeBetPayout, bet.ID, models.RelatedTypeBet, metadata); err != nil {
			return nil, fmt.Errorf("failed to pay bet: %w", err)
		}

		if err := uow.UserRepository().AddWon(ctx, bettorID, payout); err != nil {
			return nil, fmt.Errorf("failed to add winnings total: %w", err)
		}

		bet.Payout = payout
	}

	bet.Settled = true

	if err := uow.BetRepository().Update(ctx, bet); err != nil {
		return nil, fmt.Errorf("failed to update bet: %w", err)
	}

	uow.EventBus().Publish(events.BetClaimedEvent{
		DebateID: debateID,
		BettorID: bettorID,
		Won:      won,
		Payout:   bet.Payout,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"debateID": debateID,
		"bettorID": bettorID,
		"won":      won,
		"payout":   bet.Payout,
	}).Info("Bet claimed")

	return &models.ClaimResult{
		Bet:    bet,
		Won:    won,
		Payout: bet.Payout,
	}, nil
}

// GetBet retrieves a bet by its (debate, bettor) key
func (s *bettingService) GetBet(ctx context.Context, debateID, bettorID int64) (*models.Bet, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	bet, err := uow.BetRepository().GetByDebateAndBettor(ctx, debateID, bettorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}
	if bet == nil {
		return nil, fmt.Errorf("no bet by %d on debate %d: %w", bettorID, debateID, ErrNotFound)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return bet, nil
}
