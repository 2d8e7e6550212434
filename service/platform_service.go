package service

import (
	"context"
	"fmt"

	"debatearena/models"

	log "github.com/sirupsen/logrus"
)

type platformService struct {
	uowFactory UnitOfWorkFactory
}

// NewPlatformService creates a new platform service
func NewPlatformService(uowFactory UnitOfWorkFactory) PlatformService {
	return &platformService{
		uowFactory: uowFactory,
	}
}

// Initialize creates the singleton platform record. The fee is capped at
// 1000 basis points (10%) and both the authority and treasury must be
// existing users.
func (s *platformService) Initialize(ctx context.Context, authorityID, treasuryID, feeBps int64) (*models.Platform, error) {
	if feeBps < 0 || feeBps > models.MaxFeeBps {
		return nil, fmt.Errorf("fee %d bps out of range: %w", feeBps, ErrFeeTooHigh)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	existing, err := uow.PlatformRepository().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check platform: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyInitialized
	}

	authority, err := uow.UserRepository().GetByID(ctx, authorityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get authority user: %w", err)
	}
	if authority == nil {
		return nil, fmt.Errorf("authority user %d not found: %w", authorityID, ErrNotFound)
	}

	treasury, err := uow.UserRepository().GetByID(ctx, treasuryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get treasury user: %w", err)
	}
	if treasury == nil {
		return nil, fmt.Errorf("treasury user %d not found: %w", treasuryID, ErrNotFound)
	}

	platform := &models.Platform{
		AuthorityID: authorityID,
		TreasuryID:  treasuryID,
		FeeBps:      feeBps,
	}

	if err := uow.PlatformRepository().Create(ctx, platform); err != nil {
		return nil, fmt.Errorf("failed to create platform: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"authorityID": authorityID,
		"treasuryID":  treasuryID,
		"feeBps":      feeBps,
	}).Info("Platform initialized")

	return platform, nil
}

// Get retrieves the platform record
func (s *platformService) Get(ctx context.Context) (*models.Platform, error) {
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

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return platform, nil
}
