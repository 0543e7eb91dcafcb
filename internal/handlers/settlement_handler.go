package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"barterBack/internal/models"
	"barterBack/internal/services"
)

type SettlementHandler struct {
	Service *services.SettlementService
}

// ConfirmExchange handles POST /thread/confirm. A repeated confirmation by
// the same user is a success, not an error.
func (h *SettlementHandler) ConfirmExchange(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ThreadID int `json:"thread_id"`
		UserID   int `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	result, err := h.Service.Confirm(r.Context(), req.ThreadID, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrThreadNotFound):
			http.Error(w, "Thread not found", http.StatusNotFound)
		case errors.Is(err, models.ErrNotAParticipant):
			http.Error(w, "Not a party of this thread", http.StatusForbidden)
		default:
			log.Printf("ConfirmExchange error: %v", err)
			http.Error(w, "Could not confirm exchange", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(result)
}
