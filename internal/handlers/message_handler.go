package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"barterBack/internal/models"
	"barterBack/internal/services"
)

type MessageHandler struct {
	MessageService *services.MessageService
}

func (h *MessageHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var msg models.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	msg, err := h.MessageService.CreateMessage(r.Context(), msg)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrThreadNotFound):
			http.Error(w, "Thread not found", http.StatusNotFound)
		case errors.Is(err, models.ErrNotAParticipant):
			http.Error(w, "Not a party of this thread", http.StatusForbidden)
		case errors.Is(err, models.ErrNoRecord):
			http.Error(w, "Empty message text", http.StatusBadRequest)
		default:
			http.Error(w, "Failed to create message", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(msg)
}

func (h *MessageHandler) GetMessagesForThread(w http.ResponseWriter, r *http.Request) {
	threadID, err := strconv.Atoi(r.URL.Query().Get(":thread_id"))
	if err != nil {
		http.Error(w, "Invalid thread_id", http.StatusBadRequest)
		return
	}
	messages, err := h.MessageService.GetMessagesByThreadID(r.Context(), threadID)
	if err != nil {
		http.Error(w, "Failed to get messages", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(messages)
}

func (h *MessageHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":message_id")
	if id == "" {
		http.Error(w, "Invalid message ID", http.StatusBadRequest)
		return
	}
	if err := h.MessageService.DeleteMessage(r.Context(), id); err != nil {
		http.Error(w, "Failed to delete message", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
