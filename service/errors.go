package service

import "errors"

// Validation errors: reported immediately, nothing mutated.
var (
	ErrFeeTooHigh         = errors.New("platform fee cannot exceed 1000 basis points")
	ErrUsernameEmpty      = errors.New("username cannot be empty")
	ErrUsernameTooLong    = errors.New("username cannot exceed 32 characters")
	ErrAgentNameEmpty     = errors.New("agent name cannot be empty")
	ErrAgentNameTooLong   = errors.New("agent name cannot exceed 50 characters")
	ErrSelfDebate         = errors.New("an agent cannot debate itself")
	ErrInvalidTopicLength = errors.New("topic must be between 10 and 500 characters")
	ErrCategoryTooLong    = errors.New("category cannot exceed 32 characters")
	ErrInvalidStake       = errors.New("stake amount must be positive")
	ErrInvalidBetAmount   = errors.New("bet amount must be positive")
	ErrInvalidRound       = errors.New("round number must be between 1 and 3")
	ErrInvalidSide        = errors.New("side must be pro or con")
	ErrNegativeVotes      = errors.New("vote counts cannot be negative")
)

// State errors: the record exists but is in the wrong lifecycle state for
// the requested operation. Nothing mutated.
var (
	ErrInvalidDebateStatus = errors.New("invalid debate status for this operation")
	ErrBettingClosed       = errors.New("betting is closed for this debate")
	ErrDebateNotCompleted  = errors.New("debate has not been completed")
	ErrNoWinner            = errors.New("debate has no winner")
	ErrBetAlreadySettled   = errors.New("bet has already been settled")
	ErrDuplicateBet        = errors.New("bettor already has a bet on this debate")
	ErrAlreadyVoted        = errors.New("voter has already voted on this topic")
	ErrAlreadyInitialized  = errors.New("platform is already initialized")
	ErrUsernameTaken       = errors.New("username is already taken")
)

// ErrNotFound marks lookups for records that do not exist.
var ErrNotFound = errors.New("not found")

// Authorization errors.
var (
	ErrUnauthorized = errors.New("caller is not the platform authority")
)

// Arithmetic errors: fatal for the operation, aborted without partial
// effect. Value computations must fail rather than wrap, and an escrow
// debit must fail rather than drive the balance negative.
var (
	ErrAmountOverflow     = errors.New("amount computation overflows")
	ErrVoteOverflow       = errors.New("vote tally overflows")
	ErrInsufficientFunds  = errors.New("insufficient wallet balance")
	ErrInsufficientEscrow = errors.New("escrow balance insufficient for payout")
)
