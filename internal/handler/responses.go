package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/ironhorse/railyard/internal/domain"
)

// responseBufferSize is the initial capacity of pooled response
// buffers. Most endpoints return a player snapshot of a few KB; small
// confirmations fit in far less, so 4KB avoids regrowing the buffer
// on the common path without pinning much memory per pooled entry.
const responseBufferSize = 4096

// responseBuffers recycles encode buffers across requests so the JSON
// encoder does not allocate a fresh backing array per response.
var responseBuffers = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, responseBufferSize))
	},
}

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := responseBuffers.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		responseBuffers.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."
	ErrMsgUnavailableError    = "Server is temporarily unavailable. Please try again later."
	ErrMsgConflictError       = "Your data changed in another session. Reload and try again."

	ErrMsgPlayerNotFoundError = "Player not found"

	ErrMsgNotEnoughCashError     = "Not enough cash"
	ErrMsgOutOfStockError        = "That model is out of stock"
	ErrMsgListingNotFoundError   = "That listing is no longer on the market"
	ErrMsgLocoNotFoundError      = "Locomotive not found"
	ErrMsgLocoBusyError          = "That locomotive is not available right now"
	ErrMsgDuplicateUnitNumError  = "That unit number is already taken"
	ErrMsgInvalidUnitNumError    = "Unit numbers are four digits, like 4014"
	ErrMsgJobNotFoundError       = "Job not found"
	ErrMsgJobNotAvailableError   = "That job has already been taken"
	ErrMsgJobNotInProgressError  = "That job is not in progress"
	ErrMsgJobNotCompleteError    = "That job has not finished yet"
	ErrMsgNoLocosSelectedError   = "Select at least one locomotive"
	ErrMsgNotEnoughPowerError    = "Not enough horsepower for that job"
	ErrMsgTierLockedError        = "That job tier is still locked"
	ErrMsgAchievementNotFoundErr = "Achievement not found"
	ErrMsgNotClaimableError      = "That achievement is not ready to claim"
	ErrMsgAlreadyClaimedError    = "Achievement already claimed"
	ErrMsgExpiredError           = "That achievement has expired"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrPlayerNotFound):
		return http.StatusNotFound, ErrMsgPlayerNotFoundError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughCashError
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusBadRequest, ErrMsgOutOfStockError
	case errors.Is(err, domain.ErrListingNotFound):
		return http.StatusBadRequest, ErrMsgListingNotFoundError
	case errors.Is(err, domain.ErrLocomotiveNotFound):
		return http.StatusBadRequest, ErrMsgLocoNotFoundError
	case errors.Is(err, domain.ErrLocoNotAvailable):
		return http.StatusBadRequest, ErrMsgLocoBusyError
	case errors.Is(err, domain.ErrDuplicateUnitNumber):
		return http.StatusBadRequest, ErrMsgDuplicateUnitNumError
	case errors.Is(err, domain.ErrInvalidUnitNumber):
		return http.StatusBadRequest, ErrMsgInvalidUnitNumError
	case errors.Is(err, domain.ErrJobNotFound):
		return http.StatusBadRequest, ErrMsgJobNotFoundError
	case errors.Is(err, domain.ErrJobNotAvailable):
		return http.StatusBadRequest, ErrMsgJobNotAvailableError
	case errors.Is(err, domain.ErrJobNotInProgress):
		return http.StatusBadRequest, ErrMsgJobNotInProgressError
	case errors.Is(err, domain.ErrJobNotComplete):
		return http.StatusBadRequest, ErrMsgJobNotCompleteError
	case errors.Is(err, domain.ErrNoLocosSelected):
		return http.StatusBadRequest, ErrMsgNoLocosSelectedError
	case errors.Is(err, domain.ErrInsufficientPower):
		return http.StatusBadRequest, ErrMsgNotEnoughPowerError
	case errors.Is(err, domain.ErrTierLocked):
		return http.StatusForbidden, ErrMsgTierLockedError
	case errors.Is(err, domain.ErrAchievementNotFound):
		return http.StatusBadRequest, ErrMsgAchievementNotFoundErr
	case errors.Is(err, domain.ErrNotClaimable):
		return http.StatusBadRequest, ErrMsgNotClaimableError
	case errors.Is(err, domain.ErrAlreadyClaimed):
		return http.StatusConflict, ErrMsgAlreadyClaimedError
	case errors.Is(err, domain.ErrAchievementExpired):
		return http.StatusGone, ErrMsgExpiredError
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, ErrMsgConflictError
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	case errors.Is(err, domain.ErrCorruptDocument):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	// Unwrapped custom errors from mocks keep their message when short.
	errMsg := err.Error()
	if errMsg != "" && len(errMsg) < 200 {
		return http.StatusInternalServerError, errMsg
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError translates a service error and writes it.
func respondServiceError(w http.ResponseWriter, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	respondError(w, status, msg)
}
