package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tastybites/tastybites-client/internal/models"
	"github.com/tastybites/tastybites-client/internal/server/middleware"
	"github.com/tastybites/tastybites-client/internal/server/service"
)

// ShopService defines the operations the cart, favorites, and order
// handlers require.
type ShopService interface {
	Cart(ctx context.Context, userID string) ([]models.CartItem, error)
	AddCartItem(ctx context.Context, userID string, c models.CartItem) ([]models.CartItem, error)
	UpdateCartItem(ctx context.Context, userID, itemID string, quantity int) ([]models.CartItem, error)
	RemoveCartItem(ctx context.Context, userID, itemID string) ([]models.CartItem, error)
	Favorites(ctx context.Context, userID string) ([]models.FavoriteItem, error)
	AddFavorite(ctx context.Context, userID string, f models.FavoriteItem) ([]models.FavoriteItem, error)
	RemoveFavorite(ctx context.Context, userID, itemID string) ([]models.FavoriteItem, error)
	Orders(ctx context.Context, userID string) ([]models.Order, error)
	AllOrders(ctx context.Context) ([]models.Order, error)
	PlaceOrder(ctx context.Context, userID string, o models.Order) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) error
}

// ShopHandler handles cart, favorites, and order endpoints.
type ShopHandler struct {
	ShopService ShopService
}

func (h *ShopHandler) writeCart(w http.ResponseWriter, items []models.CartItem, err error) {
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// Cart returns the authenticated user's cart.
func (h *ShopHandler) Cart(w http.ResponseWriter, r *http.Request) {
	items, err := h.ShopService.Cart(r.Context(), middleware.UserIDFromContext(r.Context()))
	h.writeCart(w, items, err)
}

// AddCartItem merges an item into the cart and returns the full cart.
func (h *ShopHandler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var item models.CartItem
	if err := decode(r, &item); err != nil || item.ItemID == "" {
		writeError(w, http.StatusBadRequest, "itemId is required")
		return
	}
	items, err := h.ShopService.AddCartItem(r.Context(), middleware.UserIDFromContext(r.Context()), item)
	h.writeCart(w, items, err)
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartItem sets the quantity of the cart line holding the menu item
// named in the path.
func (h *ShopHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	items, err := h.ShopService.UpdateCartItem(r.Context(), middleware.UserIDFromContext(r.Context()), chi.URLParam(r, "itemId"), req.Quantity)
	h.writeCart(w, items, err)
}

// RemoveCartItem deletes the cart line holding the menu item named in the
// path.
func (h *ShopHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	items, err := h.ShopService.RemoveCartItem(r.Context(), middleware.UserIDFromContext(r.Context()), chi.URLParam(r, "itemId"))
	h.writeCart(w, items, err)
}

func (h *ShopHandler) writeFavorites(w http.ResponseWriter, items []models.FavoriteItem, err error) {
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// Favorites returns the authenticated user's favorites.
func (h *ShopHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	items, err := h.ShopService.Favorites(r.Context(), middleware.UserIDFromContext(r.Context()))
	h.writeFavorites(w, items, err)
}

// AddFavorite adds a favorite and returns the full list.
func (h *ShopHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var item models.FavoriteItem
	if err := decode(r, &item); err != nil || item.ItemID == "" {
		writeError(w, http.StatusBadRequest, "itemId is required")
		return
	}
	items, err := h.ShopService.AddFavorite(r.Context(), middleware.UserIDFromContext(r.Context()), item)
	h.writeFavorites(w, items, err)
}

// RemoveFavorite removes a favorite by menu item id.
func (h *ShopHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	items, err := h.ShopService.RemoveFavorite(r.Context(), middleware.UserIDFromContext(r.Context()), chi.URLParam(r, "itemId"))
	h.writeFavorites(w, items, err)
}

// Orders returns the authenticated user's order history.
func (h *ShopHandler) Orders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.ShopService.Orders(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

// PlaceOrder creates an order from the submitted payload.
func (h *ShopHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var order models.Order
	if err := decode(r, &order); err != nil || len(order.Items) == 0 {
		writeError(w, http.StatusBadRequest, "order items are required")
		return
	}
	created, err := h.ShopService.PlaceOrder(r.Context(), middleware.UserIDFromContext(r.Context()), order)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// AllOrders returns every order, for the admin dashboard.
func (h *ShopHandler) AllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.ShopService.AllOrders(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus transitions an order's status.
func (h *ShopHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decode(r, &req); err != nil || req.Status == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}
	if err := h.ShopService.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeMessage(w, http.StatusOK, "order status updated")
}
