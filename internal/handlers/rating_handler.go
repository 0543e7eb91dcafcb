package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"barterBack/internal/models"
	"barterBack/internal/repositories"
	"barterBack/internal/services"
)

type RatingHandler struct {
	Service    *services.RatingService
	RatingRepo *repositories.RatingRepository
}

// RateParticipant handles POST /thread/rate.
func (h *RatingHandler) RateParticipant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ThreadID int    `json:"thread_id"`
		RaterID  int    `json:"rater_id"`
		Score    int    `json:"score"`
		Comment  string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	avg, err := h.Service.Rate(r.Context(), req.ThreadID, req.RaterID, req.Score, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrThreadNotFound):
			http.Error(w, "Thread not found", http.StatusNotFound)
		case errors.Is(err, models.ErrNotAParticipant):
			http.Error(w, "Not a party of this thread", http.StatusForbidden)
		case errors.Is(err, models.ErrInvalidScore):
			http.Error(w, "Score must be from 1 to 5", http.StatusBadRequest)
		case errors.Is(err, models.ErrThreadNotCompleted):
			http.Error(w, "Exchange is not completed", http.StatusConflict)
		case errors.Is(err, models.ErrAlreadyRated):
			http.Error(w, "Already rated", http.StatusConflict)
		default:
			log.Printf("RateParticipant error: %v", err)
			http.Error(w, "Could not save rating", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(map[string]float64{"new_average": avg})
}

// GetRatingsByUserID handles GET /user/:id/ratings.
func (h *RatingHandler) GetRatingsByUserID(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	ratings, err := h.RatingRepo.GetRatingsByUserID(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to get ratings", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(ratings)
}
