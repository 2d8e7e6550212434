package repository

import (
	"context"
	"testing"

	"debatearena/models"
	"debatearena/repository/testutil"
	"debatearena/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	testDB := testutil.SetupTestDatabase(t)
	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, err := repo.Create(ctx, "alice", 100_000)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, int64(100_000), user.Balance)
	assert.Equal(t, models.StartingRating, user.Rating)
	assert.Zero(t, user.Wins)
	assert.Zero(t, user.Losses)

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("get by username", func(t *testing.T) {
		got, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("missing user is nil", func(t *testing.T) {
		got, err := repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestUserRepository_BalanceOperations(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	testDB := testutil.SetupTestDatabase(t)
	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, err := repo.Create(ctx, "bob", 1000)
	require.NoError(t, err)

	t.Run("add balance", func(t *testing.T) {
		require.NoError(t, repo.AddBalance(ctx, user.ID, 500))

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1500), got.Balance)
	})

	t.Run("deduct balance", func(t *testing.T) {
		require.NoError(t, repo.DeductBalance(ctx, user.ID, 1500))

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), got.Balance)
	})

	t.Run("deduct below zero fails and changes nothing", func(t *testing.T) {
		err := repo.DeductBalance(ctx, user.ID, 1)
		assert.ErrorIs(t, err, service.ErrInsufficientFunds)

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), got.Balance)
	})
}

func TestUserRepository_Stats(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	testDB := testutil.SetupTestDatabase(t)
	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, err := repo.Create(ctx, "carol", 100_000)
	require.NoError(t, err)

	require.NoError(t, repo.AddWagered(ctx, user.ID, 5000))
	require.NoError(t, repo.AddWon(ctx, user.ID, 9000))
	require.NoError(t, repo.IncrementAgentCount(ctx, user.ID))
	require.NoError(t, repo.RecordResult(ctx, user.ID, true))
	require.NoError(t, repo.RecordResult(ctx, user.ID, false))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), got.TotalWagered)
	assert.Equal(t, int64(9000), got.TotalWon)
	assert.Equal(t, int16(1), got.AgentCount)
	assert.Equal(t, int32(1), got.Wins)
	assert.Equal(t, int32(1), got.Losses)
}
