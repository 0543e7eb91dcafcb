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

type UserHandler struct {
	Service *services.UserService
}

func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if user.Phone == "" || user.Password == "" {
		http.Error(w, "phone and password are required", http.StatusBadRequest)
		return
	}
	user, err := h.Service.SignUp(r.Context(), user)
	if err != nil {
		if isDuplicateKeyError(err) {
			http.Error(w, "Phone or email already registered", http.StatusConflict)
			return
		}
		log.Printf("SignUp error: %v", err)
		http.Error(w, "Failed to sign up", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
}

func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	user, tokens, err := h.Service.SignIn(r.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		log.Printf("SignIn error: %v", err)
		http.Error(w, "Failed to sign in", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"user":   user,
		"tokens": tokens,
	})
}

func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	user, err := h.Service.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get user", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(user)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	user.ID = id
	if err := h.Service.UpdateUser(r.Context(), user); err != nil {
		http.Error(w, "Failed to update user", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// GetLedgerByUserID handles GET /user/:id/ledger — история завершённых
// обменов пользователя.
func (h *UserHandler) GetLedgerByUserID(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	entries, err := h.Service.GetLedgerByUserID(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to get ledger", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(entries)
}

func (h *UserHandler) RegisterDeviceToken(w http.ResponseWriter, r *http.Request) {
	var req models.DeviceToken
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.UserID == 0 || req.Token == "" {
		http.Error(w, "user_id and token are required", http.StatusBadRequest)
		return
	}
	if err := h.Service.SaveDeviceToken(r.Context(), req.UserID, req.Token); err != nil {
		http.Error(w, "Failed to save token", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
