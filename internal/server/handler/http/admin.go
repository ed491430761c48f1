package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tastybites/tastybites-client/internal/models"
)

// UserAdminService defines the admin-side user operations.
type UserAdminService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id, name, role string) error
	DeleteUser(ctx context.Context, id string) error
}

// AdminHandler handles the admin user endpoints. The rest of the admin
// namespace reuses the catalog, shop, and notify handlers under the
// admin-only route group.
type AdminHandler struct {
	Users UserAdminService
}

// ListUsers returns every registered user.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.ListUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

type updateUserRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// UpdateUser applies admin edits to a user.
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Role != "" && req.Role != models.RoleUser && req.Role != models.RoleAdmin {
		writeError(w, http.StatusBadRequest, "role must be USER or ADMIN")
		return
	}
	if err := h.Users.UpdateUser(r.Context(), chi.URLParam(r, "id"), req.Name, req.Role); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeMessage(w, http.StatusOK, "user updated")
}

// DeleteUser removes a user account.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.Users.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeMessage(w, http.StatusOK, "user deleted")
}
