package domain

import "errors"

// Error message string constants - single source of truth for error
// messages. Use these in assert.Contains() checks when testing.
const (
	// Player/state errors
	ErrMsgPlayerNotFound  = "player not found"
	ErrMsgCorruptDocument = "player document failed schema validation"
	ErrMsgConflict        = "document version conflict"
	ErrMsgUnavailable     = "state store unavailable"

	// Economy errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgInsufficientStock = "insufficient stock"

	// Job lifecycle errors
	ErrMsgJobNotFound        = "job not found"
	ErrMsgJobNotAvailable    = "job is not available"
	ErrMsgJobNotInProgress   = "job is not in progress"
	ErrMsgJobNotComplete     = "job has not completed yet"
	ErrMsgNoLocosSelected    = "no locomotives selected"
	ErrMsgLocoNotAvailable   = "locomotive is not available"
	ErrMsgInsufficientPower  = "insufficient horsepower"
	ErrMsgTierLocked         = "job tier is locked"
	ErrMsgListingNotFound    = "listing not found"
	ErrMsgLocomotiveNotFound = "locomotive not found"

	// Fleet errors
	ErrMsgDuplicateUnitNumber = "duplicate unit number"
	ErrMsgInvalidUnitNumber   = "invalid unit number"

	// Achievement errors
	ErrMsgNotClaimable        = "achievement is not claimable"
	ErrMsgAlreadyClaimed      = "achievement already claimed"
	ErrMsgAchievementNotFound = "achievement not found"
	ErrMsgAchievementExpired  = "achievement has expired"
)

// Validation errors are user-correctable and are surfaced directly.
// ErrConflict and ErrUnavailable are transient: the caller reloads
// state (conflict) or retries reads (unavailable); mutations are never
// retried automatically.
var (
	ErrPlayerNotFound  = errors.New(ErrMsgPlayerNotFound)
	ErrCorruptDocument = errors.New(ErrMsgCorruptDocument)
	ErrConflict        = errors.New(ErrMsgConflict)
	ErrUnavailable     = errors.New(ErrMsgUnavailable)

	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrInsufficientStock = errors.New(ErrMsgInsufficientStock)

	ErrJobNotFound        = errors.New(ErrMsgJobNotFound)
	ErrJobNotAvailable    = errors.New(ErrMsgJobNotAvailable)
	ErrJobNotInProgress   = errors.New(ErrMsgJobNotInProgress)
	ErrJobNotComplete     = errors.New(ErrMsgJobNotComplete)
	ErrNoLocosSelected    = errors.New(ErrMsgNoLocosSelected)
	ErrLocoNotAvailable   = errors.New(ErrMsgLocoNotAvailable)
	ErrInsufficientPower  = errors.New(ErrMsgInsufficientPower)
	ErrTierLocked         = errors.New(ErrMsgTierLocked)
	ErrListingNotFound    = errors.New(ErrMsgListingNotFound)
	ErrLocomotiveNotFound = errors.New(ErrMsgLocomotiveNotFound)

	ErrDuplicateUnitNumber = errors.New(ErrMsgDuplicateUnitNumber)
	ErrInvalidUnitNumber   = errors.New(ErrMsgInvalidUnitNumber)

	ErrNotClaimable        = errors.New(ErrMsgNotClaimable)
	ErrAlreadyClaimed      = errors.New(ErrMsgAlreadyClaimed)
	ErrAchievementNotFound = errors.New(ErrMsgAchievementNotFound)
	ErrAchievementExpired  = errors.New(ErrMsgAchievementExpired)
)
