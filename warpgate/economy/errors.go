package economy

import (
	"errors"
	"fmt"
	"time"
)

// Code identifies an expected engine outcome that is shown to the player.
type Code string

const (
	CodeNotRegistered     Code = "NOT_REGISTERED"
	CodeAlreadyRegistered Code = "ALREADY_REGISTERED"
	CodeNotOwned          Code = "NOT_OWNED"
	CodeInsufficientFunds Code = "INSUFFICIENT_FUNDS"
	CodeInsufficientCards Code = "INSUFFICIENT_COPIES"
	CodeMaxTierReached    Code = "MAX_TIER_REACHED"
	CodeNoUpgradedVariant Code = "NO_UPGRADED_VARIANT"
	CodeEmptyPool         Code = "EMPTY_POOL"
	CodeCooldownActive    Code = "COOLDOWN_ACTIVE"
	CodeAlreadyClaimed    Code = "ALREADY_CLAIMED"
	CodeNotYetClaimable   Code = "NOT_YET_CLAIMABLE"
	CodeBanned            Code = "BANNED"
	CodeInvalidArgument   Code = "INVALID_ARGUMENT"
)

// Error is returned by engine operations for every expected failure.
// Two errors match under errors.Is when their codes are equal.
type Error struct {
	Code       Code
	Message    string
	RetryAfter time.Duration
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrNotRegistered     = &Error{Code: CodeNotRegistered, Message: "you are not registered yet"}
	ErrAlreadyRegistered = &Error{Code: CodeAlreadyRegistered, Message: "you are already registered"}
	ErrNotOwned          = &Error{Code: CodeNotOwned, Message: "you do not own that card"}
	ErrInsufficientFunds = &Error{Code: CodeInsufficientFunds, Message: "not enough bloodcoins"}
	ErrInsufficientCards = &Error{Code: CodeInsufficientCards, Message: "not enough copies of that card"}
	ErrMaxTierReached    = &Error{Code: CodeMaxTierReached, Message: "this card is already at the highest tier"}
	ErrNoUpgradedVariant = &Error{Code: CodeNoUpgradedVariant, Message: "no upgraded version of this card exists"}
	ErrEmptyPool         = &Error{Code: CodeEmptyPool, Message: "no cards are available for that rarity"}
	ErrCooldownActive    = &Error{Code: CodeCooldownActive, Message: "this action is on cooldown"}
	ErrAlreadyClaimed    = &Error{Code: CodeAlreadyClaimed, Message: "reward already claimed"}
	ErrNotYetClaimable   = &Error{Code: CodeNotYetClaimable, Message: "quest is not completed yet"}
	ErrBanned            = &Error{Code: CodeBanned, Message: "you are banned from the game"}
	ErrInvalidArgument   = &Error{Code: CodeInvalidArgument, Message: "invalid argument"}
)

// CooldownActive reports an action that may be retried after remaining.
func CooldownActive(remaining time.Duration) *Error {
	if remaining < 0 {
		remaining = 0
	}
	return &Error{
		Code:       CodeCooldownActive,
		Message:    fmt.Sprintf("try again in %s", remaining.Round(time.Second)),
		RetryAfter: remaining,
	}
}

// Banned carries the moderator supplied reason.
func Banned(reason string) *Error {
	msg := ErrBanned.Message
	if reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, reason)
	}
	return &Error{Code: CodeBanned, Message: msg}
}

// Invalid builds an INVALID_ARGUMENT error with a formatted message.
func Invalid(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// EmptyPool names the rarity whose pool had no templates.
func EmptyPool(rarity string) *Error {
	return &Error{Code: CodeEmptyPool, Message: fmt.Sprintf("no %s cards are available", rarity)}
}

// Wrap attaches a cause to a copy of e.
func Wrap(e *Error, err error) *Error {
	c := *e
	c.Err = err
	return &c
}

// AsError returns the engine error carried by err, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsExpected reports whether err is an engine outcome rather than a fault.
func IsExpected(err error) bool {
	_, ok := AsError(err)
	return ok
}
