package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ironhorse/railyard/internal/economy"
	"github.com/ironhorse/railyard/internal/logger"
)

// PurchaseNewRequest buys factory units from the dealership.
type PurchaseNewRequest struct {
	Model    string `json:"model" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1,max=20"`
}

// HandlePurchaseNew buys new locomotives from dealership stock.
func HandlePurchaseNew(economyService economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		playerID := chi.URLParam(r, "playerID")

		var req PurchaseNewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode purchase request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"errors": FormatValidationError(err),
			})
			return
		}

		bought, err := economyService.PurchaseNew(r.Context(), playerID, req.Model, req.Quantity)
		if err != nil {
			log.Warn("Purchase failed", "player_id", playerID, "model", req.Model, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, bought)
	}
}

// PurchaseUsedRequest buys one listing off the used market.
type PurchaseUsedRequest struct {
	ListingID string `json:"listing_id" validate:"required"`
}

// HandlePurchaseUsed buys a used/loaner locomotive.
func HandlePurchaseUsed(economyService economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		playerID := chi.URLParam(r, "playerID")

		var req PurchaseUsedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode used purchase request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"errors": FormatValidationError(err),
			})
			return
		}

		bought, err := economyService.PurchaseUsed(r.Context(), playerID, req.ListingID)
		if err != nil {
			log.Warn("Used purchase failed", "player_id", playerID, "listing_id", req.ListingID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, bought)
	}
}

// HandleRefreshMarket regenerates the market immediately. Idempotent:
// hitting it twice just rolls a fresh board twice; in-progress jobs
// are never discarded.
func HandleRefreshMarket(economyService economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		playerID := chi.URLParam(r, "playerID")

		p, err := economyService.TriggerRefresh(r.Context(), playerID)
		if err != nil {
			log.Error("Manual refresh failed", "player_id", playerID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, p)
	}
}
