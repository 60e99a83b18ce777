package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ironhorse/railyard/internal/economy"
	"github.com/ironhorse/railyard/internal/logger"
)

// DisposalResponse reports the cash realized from a sell or scrap.
type DisposalResponse struct {
	Credit int64 `json:"credit"`
}

// HandleSellLocomotive sells an available unit back to the dealer.
func HandleSellLocomotive(economyService economy.Service) http.HandlerFunc {
	return disposalHandler(economyService.SellLocomotive)
}

// HandleScrapLocomotive scraps an available unit for a flat value.
func HandleScrapLocomotive(economyService economy.Service) http.HandlerFunc {
	return disposalHandler(economyService.ScrapLocomotive)
}

func disposalHandler(op func(ctx context.Context, playerID, locoID string) (int64, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		playerID := chi.URLParam(r, "playerID")
		locoID := chi.URLParam(r, "locoID")

		credit, err := op(r.Context(), playerID, locoID)
		if err != nil {
			log.Warn("Disposal failed", "player_id", playerID, "loco_id", locoID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DisposalResponse{Credit: credit})
	}
}

// RenameRequest carries the new unit number in canonical form.
type RenameRequest struct {
	UnitNumber string `json:"unit_number" validate:"required,unitnumber"`
}

// HandleRenameLocomotive changes a unit number for the flat fee.
func HandleRenameLocomotive(economyService economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		playerID := chi.URLParam(r, "playerID")
		locoID := chi.URLParam(r, "locoID")

		var req RenameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode rename request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"errors": FormatValidationError(err),
			})
			return
		}

		if err := economyService.RenameLocomotive(r.Context(), playerID, locoID, req.UnitNumber); err != nil {
			log.Warn("Rename failed", "player_id", playerID, "loco_id", locoID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Unit renamed"})
	}
}

// RepairResponse reports the fee charged for a repair.
type RepairResponse struct {
	Cost int64 `json:"cost"`
}

// HandleRepairLocomotive restores a unit to full health.
func HandleRepairLocomotive(economyService economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		playerID := chi.URLParam(r, "playerID")
		locoID := chi.URLParam(r, "locoID")

		cost, err := economyService.RepairLocomotive(r.Context(), playerID, locoID)
		if err != nil {
			log.Warn("Repair failed", "player_id", playerID, "loco_id", locoID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, RepairResponse{Cost: cost})
	}
}

// HandlePaintLocomotive books a unit into the paint shop.
func HandlePaintLocomotive(economyService economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		playerID := chi.URLParam(r, "playerID")
		locoID := chi.URLParam(r, "locoID")

		if err := economyService.PaintLocomotive(r.Context(), playerID, locoID); err != nil {
			log.Warn("Paint booking failed", "player_id", playerID, "loco_id", locoID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Unit sent to the paint shop"})
	}
}

// StoreRequest toggles storage for a unit.
type StoreRequest struct {
	Stored bool `json:"stored"`
}

// HandleStoreLocomotive moves a unit in or out of storage.
func HandleStoreLocomotive(economyService economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		playerID := chi.URLParam(r, "playerID")
		locoID := chi.URLParam(r, "locoID")

		var req StoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode store request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}

		if err := economyService.SetStored(r.Context(), playerID, locoID, req.Stored); err != nil {
			log.Warn("Store toggle failed", "player_id", playerID, "loco_id", locoID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Storage updated"})
	}
}
