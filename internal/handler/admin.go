package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ironhorse/railyard/internal/logger"
	"github.com/ironhorse/railyard/internal/repository"
)

// AdminGrantRequest bumps a player's scalar stats directly. Operator
// tooling only.
type AdminGrantRequest struct {
	Cash   int64 `json:"cash"`
	XP     int64 `json:"xp"`
	Points int   `json:"points"`
}

// HandleAdminGrant applies an atomic stat grant. Uses the store's
// increment primitive so it cannot clobber a concurrent full-document
// commit.
func HandleAdminGrant(store repository.Player) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		playerID := chi.URLParam(r, "playerID")

		var req AdminGrantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode grant request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}

		err := store.IncrementStats(r.Context(), playerID, repository.StatDeltas{
			Cash:   req.Cash,
			XP:     req.XP,
			Points: req.Points,
		})
		if err != nil {
			log.Error("Grant failed", "player_id", playerID, "error", err)
			respondServiceError(w, err)
			return
		}

		log.Info("Admin grant applied",
			"player_id", playerID, "cash", req.Cash, "xp", req.XP, "points", req.Points)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Grant applied"})
	}
}
