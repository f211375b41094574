package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/routinelog/apiserver/internal/services"
	"github.com/routinelog/apiserver/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// AccountHandler exposes the logged-in user's profile.
type AccountHandler struct {
	userService *services.UserService
}

// NewAccountHandler constructs an AccountHandler with the provided dependencies.
func NewAccountHandler(userService *services.UserService) *AccountHandler {
	return &AccountHandler{userService: userService}
}

// AccountRouter registers account routes on the given router.
func AccountRouter(r chi.Router, userService *services.UserService, requireSession func(http.Handler) http.Handler) {
	handler := NewAccountHandler(userService)

	r.With(requireSession).Get("/account", handler.GetAccount)
	r.With(requireSession).Put("/account", handler.UpdateAccount)
}

// GetAccount returns the caller's name and email. A session whose user row
// has since been deleted is a 404, not a 500.
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "User not logged in")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}

	writeJSON(w, http.StatusOK, AccountResponse{
		Name:  user.Name,
		Email: user.Email,
	})
}

// UpdateAccount applies a partial update of name, email and password.
// Absent keys leave the field untouched; unknown keys are ignored.
func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "User not logged in")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}

	var req AccountUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		user.Email = strings.TrimSpace(*req.Email)
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Could not update account")
			return
		}
		user.PasswordHash = string(hashed)
	}

	if _, err := h.userService.Update(r.Context(), user); err != nil {
		writeError(w, http.StatusInternalServerError, "Could not update account")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Account updated successfully"})
}

// AccountResponse is the profile projection returned to the caller.
type AccountResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AccountUpdateRequest carries the optional profile fields. Pointers
// distinguish "absent" from "set to empty".
type AccountUpdateRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}
