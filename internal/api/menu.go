package api

import (
	"context"
	"net/url"

	"github.com/tastybites/tastybites-client/internal/models"
)

// menuResponse wraps the menu listing.
type menuResponse struct {
	Items []models.MenuItem `json:"items"`
}

// Menu fetches menu items, optionally filtered by category and dietary
// type. models.CategoryAll (or the empty string) means no category filter.
// Menu requires no authentication.
func (c *Client) Menu(ctx context.Context, category, itemType string) ([]models.MenuItem, error) {
	q := url.Values{}
	if category != "" && category != models.CategoryAll {
		q.Set("category", category)
	}
	if itemType != "" {
		q.Set("type", itemType)
	}
	path := "/api/menu"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp menuResponse
	if err := c.Get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return normalizeMenuItems(resp.Items), nil
}

// categoriesResponse wraps the category listing.
type categoriesResponse struct {
	Categories []models.Category `json:"categories"`
}

// Categories fetches the menu categories. No authentication required.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var resp categoriesResponse
	if err := c.Get(ctx, "/api/menu/categories", &resp); err != nil {
		return nil, err
	}
	if resp.Categories == nil {
		return []models.Category{}, nil
	}
	return resp.Categories, nil
}

func normalizeMenuItems(items []models.MenuItem) []models.MenuItem {
	if items == nil {
		return []models.MenuItem{}
	}
	for i := range items {
		items[i].Normalize()
	}
	return items
}
