package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ironhorse/railyard/internal/achievement"
	"github.com/ironhorse/railyard/internal/logger"
)

// HandleListAchievements returns every achievement set with current
// progress, regenerating the weekly set first when its deadline has
// passed.
func HandleListAchievements(achievementService achievement.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		playerID := chi.URLParam(r, "playerID")

		achievements, err := achievementService.List(r.Context(), playerID)
		if err != nil {
			log.Error("Failed to list achievements", "player_id", playerID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, achievements)
	}
}

// ClaimAchievementRequest names the achievement to claim.
type ClaimAchievementRequest struct {
	AchievementID string `json:"achievement_id" validate:"required"`
}

// HandleClaimAchievement claims a completed achievement. Exactly one
// concurrent claim succeeds; the loser receives a conflict.
func HandleClaimAchievement(achievementService achievement.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		playerID := chi.URLParam(r, "playerID")

		var req ClaimAchievementRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode achievement claim", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"errors": FormatValidationError(err),
			})
			return
		}

		result, err := achievementService.Claim(r.Context(), playerID, req.AchievementID)
		if err != nil {
			log.Warn("Achievement claim failed",
				"player_id", playerID, "achievement_id", req.AchievementID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}
