package session

import (
	"context"

	"github.com/tastybites/tastybites-client/internal/models"
)

// FetchMenu returns the full menu. Menu reads are public and bypass the
// auth guard; results are not cached in the store.
func (s *Store) FetchMenu(ctx context.Context) ([]models.MenuItem, Result) {
	return s.FetchMenuByCategory(ctx, models.CategoryAll)
}

// FetchMenuByCategory returns the menu filtered by category.
// models.CategoryAll means no filter.
func (s *Store) FetchMenuByCategory(ctx context.Context, category string) ([]models.MenuItem, Result) {
	items, err := s.api.Menu(ctx, category, "")
	if err != nil {
		return nil, failErr(err, "Could not load menu")
	}
	return items, ok()
}

// FetchCategories returns the menu categories. Public, like the menu.
func (s *Store) FetchCategories(ctx context.Context) ([]models.Category, Result) {
	cats, err := s.api.Categories(ctx)
	if err != nil {
		return nil, failErr(err, "Could not load categories")
	}
	return cats, ok()
}

// SendContactMessage submits the public contact form.
func (s *Store) SendContactMessage(ctx context.Context, name, email, message string) Result {
	if name == "" || email == "" || message == "" {
		return fail("Name, email, and message are required")
	}
	if err := s.api.SendContactMessage(ctx, name, email, message); err != nil {
		return failErr(err, "Could not send message")
	}
	return ok()
}
