package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tastybites/tastybites-client/internal/models"
)

// ErrInvalidStatus rejects unknown order-status transitions.
var ErrInvalidStatus = errors.New("invalid order status")

// ShopRepository defines the persistence operations the shop service needs.
type ShopRepository interface {
	CartItems(ctx context.Context, userID string) ([]models.CartItem, error)
	UpsertCartItem(ctx context.Context, userID string, c models.CartItem) error
	SetCartItemQuantity(ctx context.Context, userID, itemID string, quantity int) error
	DeleteCartItem(ctx context.Context, userID, itemID string) error
	Favorites(ctx context.Context, userID string) ([]models.FavoriteItem, error)
	AddFavorite(ctx context.Context, userID string, f models.FavoriteItem) error
	DeleteFavorite(ctx context.Context, userID, itemID string) error
	Orders(ctx context.Context, userID string) ([]models.Order, error)
	CreateOrder(ctx context.Context, userID string, o models.Order) error
	UpdateOrderStatus(ctx context.Context, id, status string) error
	OrderOwner(ctx context.Context, id string) (string, error)
}

// Notifier lets the shop service push order notifications.
type Notifier interface {
	Notify(ctx context.Context, userID string, n models.Notification) error
}

// ShopService implements cart, favorites, and order logic.
type ShopService struct {
	repo     ShopRepository
	notifier Notifier
}

// NewShopService constructs a ShopService. notifier may be nil.
func NewShopService(repo ShopRepository, notifier Notifier) *ShopService {
	return &ShopService{repo: repo, notifier: notifier}
}

// Cart returns the user's cart.
func (s *ShopService) Cart(ctx context.Context, userID string) ([]models.CartItem, error) {
	return s.repo.CartItems(ctx, userID)
}

// AddCartItem merges the item into the cart and returns the full cart.
func (s *ShopService) AddCartItem(ctx context.Context, userID string, c models.CartItem) ([]models.CartItem, error) {
	c.ID = uuid.NewString()
	c.Normalize()
	if err := s.repo.UpsertCartItem(ctx, userID, c); err != nil {
		return nil, err
	}
	return s.repo.CartItems(ctx, userID)
}

// UpdateCartItem sets the quantity of the line holding a menu item; zero or
// less removes the line. Cart lines are addressed by item id, the identifier
// clients already hold from the menu and their cached cart.
func (s *ShopService) UpdateCartItem(ctx context.Context, userID, itemID string, quantity int) ([]models.CartItem, error) {
	if quantity < 1 {
		return s.RemoveCartItem(ctx, userID, itemID)
	}
	if err := s.repo.SetCartItemQuantity(ctx, userID, itemID, quantity); err != nil {
		return nil, err
	}
	return s.repo.CartItems(ctx, userID)
}

// RemoveCartItem deletes the line holding a menu item and returns the
// remaining cart.
func (s *ShopService) RemoveCartItem(ctx context.Context, userID, itemID string) ([]models.CartItem, error) {
	if err := s.repo.DeleteCartItem(ctx, userID, itemID); err != nil {
		return nil, err
	}
	return s.repo.CartItems(ctx, userID)
}

// Favorites returns the user's favorites.
func (s *ShopService) Favorites(ctx context.Context, userID string) ([]models.FavoriteItem, error) {
	return s.repo.Favorites(ctx, userID)
}

// AddFavorite adds a favorite and returns the full list. Repeated adds of
// the same item are idempotent.
func (s *ShopService) AddFavorite(ctx context.Context, userID string, f models.FavoriteItem) ([]models.FavoriteItem, error) {
	f.ID = uuid.NewString()
	if err := s.repo.AddFavorite(ctx, userID, f); err != nil {
		return nil, err
	}
	return s.repo.Favorites(ctx, userID)
}

// RemoveFavorite removes a favorite by menu item id.
func (s *ShopService) RemoveFavorite(ctx context.Context, userID, itemID string) ([]models.FavoriteItem, error) {
	if err := s.repo.DeleteFavorite(ctx, userID, itemID); err != nil {
		return nil, err
	}
	return s.repo.Favorites(ctx, userID)
}

// Orders returns the user's order history.
func (s *ShopService) Orders(ctx context.Context, userID string) ([]models.Order, error) {
	return s.repo.Orders(ctx, userID)
}

// AllOrders returns every order, for the admin dashboard.
func (s *ShopService) AllOrders(ctx context.Context) ([]models.Order, error) {
	return s.repo.Orders(ctx, "")
}

// PlaceOrder creates an order from the submitted lines, clears the cart,
// and notifies the user.
func (s *ShopService) PlaceOrder(ctx context.Context, userID string, o models.Order) (*models.Order, error) {
	o.ID = uuid.NewString()
	o.Status = models.OrderPending
	o.CreatedAt = time.Now().UTC()
	o.Normalize()
	if err := s.repo.CreateOrder(ctx, userID, o); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.Notify(ctx, userID, models.Notification{
			ID:      uuid.NewString(),
			Title:   "Order placed",
			Content: "Your order has been placed and is being prepared.",
			Type:    models.NotificationOrder,
			SentAt:  o.CreatedAt,
		})
	}
	return &o, nil
}

// UpdateOrderStatus transitions an order and notifies its owner.
func (s *ShopService) UpdateOrderStatus(ctx context.Context, id, status string) error {
	switch status {
	case models.OrderPending, models.OrderDelivered, models.OrderCancelled:
	default:
		return ErrInvalidStatus
	}
	if err := s.repo.UpdateOrderStatus(ctx, id, status); err != nil {
		return err
	}

	if s.notifier != nil {
		if owner, err := s.repo.OrderOwner(ctx, id); err == nil && owner != "" {
			_ = s.notifier.Notify(ctx, owner, models.Notification{
				ID:      uuid.NewString(),
				Title:   "Order " + status,
				Content: "Your order status changed to " + status + ".",
				Type:    models.NotificationOrder,
				SentAt:  time.Now().UTC(),
			})
		}
	}
	return nil
}
