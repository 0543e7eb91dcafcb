package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"barterBack/internal/models"
	"barterBack/internal/services"
)

type ThreadHandler struct {
	Service *services.ThreadService
}

func (h *ThreadHandler) CreateThread(w http.ResponseWriter, r *http.Request) {
	var thread models.Thread
	if err := json.NewDecoder(r.Body).Decode(&thread); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if thread.InitiatorID == 0 || thread.ReceiverID == 0 || thread.InitiatorID == thread.ReceiverID {
		http.Error(w, "Invalid thread parties", http.StatusBadRequest)
		return
	}
	thread, err := h.Service.CreateThread(r.Context(), thread)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrItemNotFound):
			http.Error(w, "Item not found", http.StatusNotFound)
		case errors.Is(err, models.ErrNotAParticipant):
			http.Error(w, "Item does not belong to the party", http.StatusBadRequest)
		case errors.Is(err, models.ErrItemExchanged):
			http.Error(w, "Item already exchanged", http.StatusConflict)
		default:
			if isForeignKeyConstraintError(err) {
				http.Error(w, "Unknown user or item reference", http.StatusBadRequest)
				return
			}
			log.Printf("CreateThread error: %v", err)
			http.Error(w, "Failed to create thread", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(thread)
}

func (h *ThreadHandler) GetThreadByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid thread ID", http.StatusBadRequest)
		return
	}
	thread, err := h.Service.GetThreadByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrThreadNotFound) {
			http.Error(w, "Thread not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get thread", http.StatusInternalServerError)
		return
	}
	resp := struct {
		models.Thread
		State string `json:"state"`
	}{Thread: thread, State: thread.State()}
	json.NewEncoder(w).Encode(resp)
}

func (h *ThreadHandler) GetThreadsByUserID(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(r.URL.Query().Get(":user_id"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	threads, err := h.Service.GetThreadsByUserID(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to get threads", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(threads)
}
