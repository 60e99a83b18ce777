package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ironhorse/railyard/internal/economy"
	"github.com/ironhorse/railyard/internal/logger"
)

// AssignJobRequest selects locomotives for a job.
type AssignJobRequest struct {
	JobID   string   `json:"job_id" validate:"required"`
	LocoIDs []string `json:"loco_ids" validate:"required,min=1"`
}

// HandleAssignJob commits locomotives to an available job.
func HandleAssignJob(economyService economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		playerID := chi.URLParam(r, "playerID")

		var req AssignJobRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode assign request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"errors": FormatValidationError(err),
			})
			return
		}

		job, err := economyService.AssignJob(r.Context(), playerID, req.JobID, req.LocoIDs)
		if err != nil {
			log.Warn("Assign failed", "player_id", playerID, "job_id", req.JobID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, job)
	}
}

// AutoAssignJobRequest names the job to staff automatically.
type AutoAssignJobRequest struct {
	JobID string `json:"job_id" validate:"required"`
}

// HandleAutoAssignJob staffs a job greedily from the available fleet.
func HandleAutoAssignJob(economyService economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		playerID := chi.URLParam(r, "playerID")

		var req AutoAssignJobRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode auto-assign request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"errors": FormatValidationError(err),
			})
			return
		}

		job, err := economyService.AutoAssignJob(r.Context(), playerID, req.JobID)
		if err != nil {
			log.Warn("Auto-assign failed", "player_id", playerID, "job_id", req.JobID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, job)
	}
}

// ClaimJobRequest names the finished job to settle.
type ClaimJobRequest struct {
	JobID string `json:"job_id" validate:"required"`
}

// HandleClaimJob settles a completed job and reports any level-up.
func HandleClaimJob(economyService economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		playerID := chi.URLParam(r, "playerID")

		var req ClaimJobRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode claim request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"errors": FormatValidationError(err),
			})
			return
		}

		result, err := economyService.ClaimJob(r.Context(), playerID, req.JobID)
		if err != nil {
			log.Warn("Claim failed", "player_id", playerID, "job_id", req.JobID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}
