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

type ItemHandler struct {
	Service *services.ItemService
}

func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var item models.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if item.UserID == 0 || item.Name == "" {
		http.Error(w, "user_id and name are required", http.StatusBadRequest)
		return
	}
	item, err := h.Service.CreateItem(r.Context(), item)
	if err != nil {
		if isForeignKeyConstraintError(err) {
			http.Error(w, "Unknown user", http.StatusBadRequest)
			return
		}
		log.Printf("CreateItem error: %v", err)
		http.Error(w, "Failed to create item", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}

func (h *ItemHandler) GetItemByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return
	}
	item, err := h.Service.GetItemByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrItemNotFound) {
			http.Error(w, "Item not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get item", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(item)
}

func (h *ItemHandler) GetItemsByUserID(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(r.URL.Query().Get(":user_id"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	items, err := h.Service.GetItemsByUserID(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to get items", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(items)
}

func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return
	}
	var item models.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	item.ID = id
	if err := h.Service.UpdateItem(r.Context(), item); err != nil {
		if errors.Is(err, models.ErrItemExchanged) {
			http.Error(w, "Item already exchanged", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to update item", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.DeleteItem(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrItemExchanged) {
			http.Error(w, "Item already exchanged", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to delete item", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
