package repository

import (
	"context"
	"testing"

	"debatearena/repository/testutil"
	"debatearena/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscrowRepository_CreditAndDebit(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	testDB := testutil.SetupTestDatabase(t)
	repo := NewEscrowRepository(testDB.DB)
	ctx := context.Background()

	debate := seedDebate(t, testDB)

	require.NoError(t, repo.Create(ctx, debate.ID))

	t.Run("opens at zero", func(t *testing.T) {
		account, err := repo.Get(ctx, debate.ID)
		require.NoError(t, err)
		require.NotNil(t, account)
		assert.Equal(t, int64(0), account.Balance)
	})

	t.Run("credit accumulates", func(t *testing.T) {
		require.NoError(t, repo.Credit(ctx, debate.ID, 1000))
		require.NoError(t, repo.Credit(ctx, debate.ID, 500))

		account, err := repo.Get(ctx, debate.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1500), account.Balance)
	})

	t.Run("debit within balance", func(t *testing.T) {
		require.NoError(t, repo.Debit(ctx, debate.ID, 1400))

		account, err := repo.Get(ctx, debate.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(100), account.Balance)
	})

	t.Run("overdraw fails and leaves balance intact", func(t *testing.T) {
		err := repo.Debit(ctx, debate.ID, 101)
		assert.ErrorIs(t, err, service.ErrInsufficientEscrow)

		account, err := repo.Get(ctx, debate.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(100), account.Balance)
	})

	t.Run("exact drain to zero succeeds", func(t *testing.T) {
		require.NoError(t, repo.Debit(ctx, debate.ID, 100))

		account, err := repo.Get(ctx, debate.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), account.Balance)
	})
}

func TestEscrowRepository_DebitMissingAccount(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	testDB := testutil.SetupTestDatabase(t)
	repo := NewEscrowRepository(testDB.DB)
	ctx := context.Background()

	err := repo.Debit(ctx, 999999, 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrInsufficientEscrow)
}
