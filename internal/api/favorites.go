package api

import (
	"context"
	"net/url"

	"github.com/tastybites/tastybites-client/internal/models"
)

// favoritesResponse wraps the full favorites representation.
type favoritesResponse struct {
	Items []models.FavoriteItem `json:"items"`
}

// Favorites fetches the authenticated user's favorites.
func (c *Client) Favorites(ctx context.Context) ([]models.FavoriteItem, error) {
	var resp favoritesResponse
	if err := c.Get(ctx, "/api/favorites", &resp); err != nil {
		return nil, err
	}
	return normalizeFavorites(resp.Items), nil
}

// AddFavoriteRequest describes the menu item being favorited.
type AddFavoriteRequest struct {
	ItemID string  `json:"itemId"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Image  string  `json:"image,omitempty"`
	Type   string  `json:"type,omitempty"`
}

// AddFavorite adds an item to the favorites and returns the full list.
func (c *Client) AddFavorite(ctx context.Context, req AddFavoriteRequest) ([]models.FavoriteItem, error) {
	var resp favoritesResponse
	if err := c.Post(ctx, "/api/favorites", req, &resp); err != nil {
		return nil, err
	}
	return normalizeFavorites(resp.Items), nil
}

// RemoveFavorite removes an item by its menu item id and returns the list.
func (c *Client) RemoveFavorite(ctx context.Context, itemID string) ([]models.FavoriteItem, error) {
	var resp favoritesResponse
	if err := c.Delete(ctx, "/api/favorites/"+url.PathEscape(itemID), &resp); err != nil {
		return nil, err
	}
	return normalizeFavorites(resp.Items), nil
}

func normalizeFavorites(items []models.FavoriteItem) []models.FavoriteItem {
	if items == nil {
		return []models.FavoriteItem{}
	}
	return items
}
