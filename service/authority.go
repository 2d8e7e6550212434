package service

import (
	"context"
	"fmt"

	"debatearena/models"
)

// requireAuthority loads the platform record and verifies the caller is its
// configured authority. Returns the platform so callers can reuse its fee
// and treasury settings without a second lookup.
func requireAuthority(ctx context.Context, uow UnitOfWork, callerID int64) (*models.Platform, error) {
	platform, err := uow.PlatformRepository().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get platform: %w", err)
	}
	if platform == nil {
		return nil, fmt.Errorf("platform not initialized: %w", ErrNotFound)
	}
	if !platform.IsAuthority(callerID) {
		return nil, fmt.Errorf("caller %d is not the platform authority: %w", callerID, ErrUnauthorized)
	}
	return platform, nil
}
