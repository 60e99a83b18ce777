package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ironhorse/railyard/internal/economy"
	"github.com/ironhorse/railyard/internal/logger"
)

// HandleGetPlayer returns the full player snapshot, creating the
// starter state on first contact.
func HandleGetPlayer(economyService economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID := chi.URLParam(r, "playerID")
		if playerID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}

		p, err := economyService.GetPlayer(r.Context(), playerID)
		if err != nil {
			log.Error("Failed to get player", "player_id", playerID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, p)
	}
}
