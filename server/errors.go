package server

import (
	"errors"
	"net/http"

	"debatearena/service"

	"github.com/gin-gonic/gin"
)

// statusFor maps the service error taxonomy to HTTP status codes:
// validation failures are 400, missing records 404, authorization 403,
// lifecycle conflicts 409, everything else 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, service.ErrFeeTooHigh),
		errors.Is(err, service.ErrUsernameEmpty),
		errors.Is(err, service.ErrUsernameTooLong),
		errors.Is(err, service.ErrAgentNameEmpty),
		errors.Is(err, service.ErrAgentNameTooLong),
		errors.Is(err, service.ErrSelfDebate),
		errors.Is(err, service.ErrInvalidTopicLength),
		errors.Is(err, service.ErrCategoryTooLong),
		errors.Is(err, service.ErrInvalidStake),
		errors.Is(err, service.ErrInvalidBetAmount),
		errors.Is(err, service.ErrInvalidRound),
		errors.Is(err, service.ErrInvalidSide),
		errors.Is(err, service.ErrNegativeVotes),
		errors.Is(err, service.ErrAmountOverflow),
		errors.Is(err, service.ErrVoteOverflow):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidDebateStatus),
		errors.Is(err, service.ErrBettingClosed),
		errors.Is(err, service.ErrDebateNotCompleted),
		errors.Is(err, service.ErrNoWinner),
		errors.Is(err, service.ErrBetAlreadySettled),
		errors.Is(err, service.ErrDuplicateBet),
		errors.Is(err, service.ErrAlreadyVoted),
		errors.Is(err, service.ErrAlreadyInitialized),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrInsufficientFunds),
		errors.Is(err, service.ErrInsufficientEscrow):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
