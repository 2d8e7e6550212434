package repository

import (
	"context"
	"testing"

	"debatearena/models"
	"debatearena/repository/testutil"

	"github.com/stretchr/testify/require"
)

// seedUser inserts a user and returns it
func seedUser(t *testing.T, db *testutil.TestDatabase, username string, balance int64) *models.User {
	t.Helper()
	user, err := NewUserRepository(db.DB).Create(context.Background(), username, balance)
	require.NoError(t, err)
	return user
}

// seedAgent inserts an agent owned by the given user
func seedAgent(t *testing.T, db *testutil.TestDatabase, ownerID int64, name string) *models.Agent {
	t.Helper()
	agent := testutil.CreateTestAgent(ownerID, name)
	require.NoError(t, NewAgentRepository(db.DB).Create(context.Background(), agent))
	return agent
}

// seedDebate inserts two owners, two agents and a pending debate
func seedDebate(t *testing.T, db *testutil.TestDatabase) *models.Debate {
	t.Helper()
	pro := seedUser(t, db, "pro_owner", 10_000_000)
	con := seedUser(t, db, "con_owner", 10_000_000)
	proAgent := seedAgent(t, db, pro.ID, "pro_agent")
	conAgent := seedAgent(t, db, con.ID, "con_agent")

	debate := testutil.CreateTestDebate(proAgent.ID, conAgent.ID)
	require.NoError(t, NewDebateRepository(db.DB).Create(context.Background(), debate))
	return debate
}
