package events

import (
	"context"
	"sync"

	"debatearena/models"
	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange  EventType = "balance_change"
	EventTypeUserRegistered EventType = "user_registered"
	EventTypeDebateCreated  EventType = "debate_created"
	EventTypeDebateStarted  EventType = "debate_started"
	EventTypeRoundRecorded  EventType = "round_recorded"
	EventTypeDebateSettled  EventType = "debate_settled"
	EventTypeBetPlaced      EventType = "bet_placed"
	EventTypeBetClaimed     EventType = "bet_claimed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a wallet balance change that occurred
type BalanceChangeEvent struct {
	UserID          int64
	OldBalance      int64
	NewBalance      int64
	TransactionType models.TransactionType
	ChangeAmount    int64
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// UserRegisteredEvent represents a new user registration
type UserRegisteredEvent struct {
	UserID         int64
	Username       string
	InitialBalance int64
}

func (e UserRegisteredEvent) Type() EventType {
	return EventTypeUserRegistered
}

// DebateCreatedEvent represents a new debate with both stakes escrowed
type DebateCreatedEvent struct {
	DebateID    int64
	ProAgentID  int64
	ConAgentID  int64
	StakeAmount int64
}

func (e DebateCreatedEvent) Type() EventType {
	return EventTypeDebateCreated
}

// DebateStartedEvent represents a debate entering progress; betting is closed
type DebateStartedEvent struct {
	DebateID int64
}

func (e DebateStartedEvent) Type() EventType {
	return EventTypeDebateStarted
}

// RoundRecordedEvent represents a submitted round result
type RoundRecordedEvent struct {
	DebateID int64
	Round    int16
	ProVotes int64
	ConVotes int64
}

func (e RoundRecordedEvent) Type() EventType {
	return EventTypeRoundRecorded
}

// DebateSettledEvent represents a settled debate
type DebateSettledEvent struct {
	DebateID     int64
	Winner       models.DebateSide
	PayeeID      int64
	WinnerPayout int64
	PlatformFee  int64
}

func (e DebateSettledEvent) Type() EventType {
	return EventTypeDebateSettled
}

// BetPlacedEvent represents a bet deposited into escrow
type BetPlacedEvent struct {
	DebateID int64
	BettorID int64
	Side     models.DebateSide
	Amount   int64
}

func (e BetPlacedEvent) Type() EventType {
	return EventTypeBetPlaced
}

// BetClaimedEvent represents a settled bet claim, winning or not
type BetClaimedEvent struct {
	DebateID int64
	BettorID int64
	Won      bool
	Payout   int64
}

func (e BetClaimedEvent) Type() EventType {
	return EventTypeBetClaimed
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking
	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}

// TransactionalBus holds pending events coupled to a unit of work and
// flushes them to the underlying bus only after the transaction commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush is called after a successful DB commit. Events are emitted on a
// background context so they outlive the transaction's context.
func (b *TransactionalBus) Flush(ctx context.Context) {
	eventCtx := context.Background()
	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
}

// Discard drops pending events after a rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
