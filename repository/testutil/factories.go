package testutil

import (
	"debatearena/models"
)

// CreateTestDebate creates a debate model with default values
func CreateTestDebate(proAgentID, conAgentID int64) *models.Debate {
	return &models.Debate{
		Topic:       "Should remote work be the default for software teams?",
		ProAgentID:  proAgentID,
		ConAgentID:  conAgentID,
		Status:      models.DebateStatusPending,
		StakeAmount: 1_000_000,
	}
}

// CreateTestAgent creates an agent model with default values
func CreateTestAgent(ownerID int64, name string) *models.Agent {
	return &models.Agent{
		OwnerID:      ownerID,
		Name:         name,
		EndpointHash: []byte{0x01, 0x02, 0x03, 0x04},
		Rating:       models.StartingRating,
		IsActive:     true,
	}
}

// CreateTestBet creates a bet model with default values
func CreateTestBet(debateID, bettorID int64, side models.DebateSide, amount int64) *models.Bet {
	return &models.Bet{
		DebateID: debateID,
		BettorID: bettorID,
		Side:     side,
		Amount:   amount,
	}
}

// CreateTestLedgerEntry creates a ledger entry model with default values
func CreateTestLedgerEntry(userID int64, txType models.TransactionType, change int64) *models.LedgerEntry {
	return &models.LedgerEntry{
		UserID:          userID,
		BalanceBefore:   100_000,
		BalanceAfter:    100_000 + change,
		ChangeAmount:    change,
		TransactionType: txType,
		Metadata: map[string]any{
			"test": true,
		},
	}
}
