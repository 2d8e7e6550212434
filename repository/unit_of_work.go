package repository

import (
	"context"
	"fmt"

	"debatearena/database"
	"debatearena/events"
	"debatearena/service"
	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	platformRepo     service.PlatformRepository
	userRepo         service.UserRepository
	agentRepo        service.AgentRepository
	topicRepo        service.TopicRepository
	debateRepo       service.DebateRepository
	betRepo          service.BetRepository
	escrowRepo       service.EscrowRepository
	ledgerRepo       service.LedgerRepository
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories with the transaction
	u.platformRepo = newPlatformRepositoryWithTx(tx)
	u.userRepo = newUserRepositoryWithTx(tx)
	u.agentRepo = newAgentRepositoryWithTx(tx)
	u.topicRepo = newTopicRepositoryWithTx(tx)
	u.debateRepo = newDebateRepositoryWithTx(tx)
	u.betRepo = newBetRepositoryWithTx(tx)
	u.escrowRepo = newEscrowRepositoryWithTx(tx)
	u.ledgerRepo = newLedgerRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	// Flush pending events after successful commit
	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	// Discard pending events on rollback
	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

// PlatformRepository returns the platform repository for this unit of work
func (u *unitOfWork) PlatformRepository() service.PlatformRepository {
	if u.platformRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.platformRepo
}

// UserRepository returns the user repository for this unit of work
func (u *unitOfWork) UserRepository() service.UserRepository {
	if u.userRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.userRepo
}

// AgentRepository returns the agent repository for this unit of work
func (u *unitOfWork) AgentRepository() service.AgentRepository {
	if u.agentRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.agentRepo
}

// TopicRepository returns the topic repository for this unit of work
func (u *unitOfWork) TopicRepository() service.TopicRepository {
	if u.topicRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.topicRepo
}

// DebateRepository returns the debate repository for this unit of work
func (u *unitOfWork) DebateRepository() service.DebateRepository {
	if u.debateRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.debateRepo
}

// BetRepository returns the bet repository for this unit of work
func (u *unitOfWork) BetRepository() service.BetRepository {
	if u.betRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.betRepo
}

// EscrowRepository returns the escrow repository for this unit of work
func (u *unitOfWork) EscrowRepository() service.EscrowRepository {
	if u.escrowRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.escrowRepo
}

// LedgerRepository returns the ledger repository for this unit of work
func (u *unitOfWork) LedgerRepository() service.LedgerRepository {
	if u.ledgerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.ledgerRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
