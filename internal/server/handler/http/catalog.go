package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tastybites/tastybites-client/internal/models"
)

// CatalogService defines the operations the menu handlers require.
type CatalogService interface {
	Menu(ctx context.Context, category, itemType string) ([]models.MenuItem, error)
	Categories(ctx context.Context) ([]models.Category, error)
	AddMenuItem(ctx context.Context, m models.MenuItem) (*models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, m models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id string) error
	AddCategory(ctx context.Context, name string) error
	UpdateCategory(ctx context.Context, id, name string) error
	DeleteCategory(ctx context.Context, id string) error
}

// CatalogHandler handles the public menu endpoints and the admin menu CRUD.
type CatalogHandler struct {
	CatalogService CatalogService
}

// Menu lists menu items filtered by the category and type query params.
func (h *CatalogHandler) Menu(w http.ResponseWriter, r *http.Request) {
	items, err := h.CatalogService.Menu(r.Context(), r.URL.Query().Get("category"), r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// Categories lists the menu categories.
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.CatalogService.Categories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": cats})
}

// AddMenuItem creates a menu item.
func (h *CatalogHandler) AddMenuItem(w http.ResponseWriter, r *http.Request) {
	var item models.MenuItem
	if err := decode(r, &item); err != nil || item.Name == "" {
		writeError(w, http.StatusBadRequest, "item name is required")
		return
	}
	created, err := h.CatalogService.AddMenuItem(r.Context(), item)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateMenuItem updates a menu item.
func (h *CatalogHandler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	var item models.MenuItem
	if err := decode(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	item.ID = chi.URLParam(r, "id")
	if err := h.CatalogService.UpdateMenuItem(r.Context(), item); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeMessage(w, http.StatusOK, "menu item updated")
}

// DeleteMenuItem removes a menu item.
func (h *CatalogHandler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	if err := h.CatalogService.DeleteMenuItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeMessage(w, http.StatusOK, "menu item deleted")
}

type categoryRequest struct {
	Name string `json:"name"`
}

// AddCategory creates a category. Name length is enforced here as well as
// client-side.
func (h *CatalogHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decode(r, &req); err != nil || req.Name == "" || len(req.Name) > models.MaxCategoryNameLen {
		writeError(w, http.StatusBadRequest, "category name is required and must be 100 characters or fewer")
		return
	}
	if err := h.CatalogService.AddCategory(r.Context(), req.Name); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeMessage(w, http.StatusCreated, "category added")
}

// UpdateCategory renames a category.
func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decode(r, &req); err != nil || req.Name == "" || len(req.Name) > models.MaxCategoryNameLen {
		writeError(w, http.StatusBadRequest, "category name is required and must be 100 characters or fewer")
		return
	}
	if err := h.CatalogService.UpdateCategory(r.Context(), chi.URLParam(r, "id"), req.Name); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeMessage(w, http.StatusOK, "category updated")
}

// DeleteCategory removes a category.
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.CatalogService.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeMessage(w, http.StatusOK, "category deleted")
}
