package session

import (
	"context"

	"github.com/tastybites/tastybites-client/internal/api"
	"github.com/tastybites/tastybites-client/internal/models"
)

// refreshCart refetches the cart cache under the sequence discipline.
func (s *Store) refreshCart(ctx context.Context) error {
	ticket := s.take(cacheCart)
	items, err := s.api.Cart(ctx)
	if err != nil {
		return err
	}
	s.applyCart(ticket, items)
	return nil
}

// applyCart installs a server-confirmed cart unless a newer request has
// been issued since the ticket was taken.
func (s *Store) applyCart(ticket uint64, items []models.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.latest(cacheCart, ticket) {
		return
	}
	s.cart = items
}

// AddToCart adds a menu item to the cart. The mutation is remote-first:
// the cache is updated only from the server's returned representation, so
// a server-side merge of a repeated itemId never drifts from the cache.
func (s *Store) AddToCart(ctx context.Context, item models.MenuItem, quantity int) Result {
	if _, res := s.requireToken(); !res.Success {
		return res
	}
	if quantity < 1 {
		quantity = 1
	}

	ticket := s.take(cacheCart)
	items, err := s.api.AddCartItem(ctx, api.AddCartItemRequest{
		ItemID:   item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Quantity: quantity,
		Image:    item.Image,
	})
	if err != nil {
		return failErr(err, "Could not add item to cart")
	}
	s.applyCart(ticket, items)
	return ok()
}

// UpdateCartItem sets the quantity of a cart line. A quantity below 1
// removes the line instead.
func (s *Store) UpdateCartItem(ctx context.Context, id string, quantity int) Result {
	if quantity < 1 {
		return s.RemoveFromCart(ctx, id)
	}
	if _, res := s.requireToken(); !res.Success {
		return res
	}

	ticket := s.take(cacheCart)
	items, err := s.api.UpdateCartItem(ctx, id, quantity)
	if err != nil {
		return failErr(err, "Could not update cart item")
	}
	s.applyCart(ticket, items)
	return ok()
}

// RemoveFromCart deletes a cart line.
func (s *Store) RemoveFromCart(ctx context.Context, id string) Result {
	if _, res := s.requireToken(); !res.Success {
		return res
	}

	ticket := s.take(cacheCart)
	items, err := s.api.RemoveCartItem(ctx, id)
	if err != nil {
		return failErr(err, "Could not remove cart item")
	}
	s.applyCart(ticket, items)
	return ok()
}
