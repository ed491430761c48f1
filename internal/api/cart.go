package api

import (
	"context"
	"net/url"

	"github.com/tastybites/tastybites-client/internal/models"
)

// cartResponse wraps the full cart representation. Every cart endpoint
// returns the whole cart so the client never has to guess how the server
// merged a mutation.
type cartResponse struct {
	Items []models.CartItem `json:"items"`
}

// Cart fetches the authenticated user's cart.
func (c *Client) Cart(ctx context.Context) ([]models.CartItem, error) {
	var resp cartResponse
	if err := c.Get(ctx, "/api/cart", &resp); err != nil {
		return nil, err
	}
	return normalizeCartItems(resp.Items), nil
}

// AddCartItemRequest describes the menu item being added to the cart.
type AddCartItemRequest struct {
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
}

// AddCartItem adds an item to the cart. The server merges repeated adds of
// the same itemId into a single line; the returned cart reflects the merge.
func (c *Client) AddCartItem(ctx context.Context, req AddCartItemRequest) ([]models.CartItem, error) {
	var resp cartResponse
	if err := c.Post(ctx, "/api/cart", req, &resp); err != nil {
		return nil, err
	}
	return normalizeCartItems(resp.Items), nil
}

// UpdateCartItem sets the quantity of a cart line and returns the cart.
func (c *Client) UpdateCartItem(ctx context.Context, id string, quantity int) ([]models.CartItem, error) {
	var resp cartResponse
	body := map[string]int{"quantity": quantity}
	if err := c.Put(ctx, "/api/cart/"+url.PathEscape(id), body, &resp); err != nil {
		return nil, err
	}
	return normalizeCartItems(resp.Items), nil
}

// RemoveCartItem deletes a cart line and returns the remaining cart.
func (c *Client) RemoveCartItem(ctx context.Context, id string) ([]models.CartItem, error) {
	var resp cartResponse
	if err := c.Delete(ctx, "/api/cart/"+url.PathEscape(id), &resp); err != nil {
		return nil, err
	}
	return normalizeCartItems(resp.Items), nil
}

func normalizeCartItems(items []models.CartItem) []models.CartItem {
	if items == nil {
		return []models.CartItem{}
	}
	for i := range items {
		items[i].Normalize()
	}
	return items
}
