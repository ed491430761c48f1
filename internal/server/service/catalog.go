package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/tastybites/tastybites-client/internal/models"
)

// CatalogRepository defines the persistence operations for menu management.
type CatalogRepository interface {
	MenuItems(ctx context.Context, category, itemType string) ([]models.MenuItem, error)
	AddMenuItem(ctx context.Context, m models.MenuItem) error
	UpdateMenuItem(ctx context.Context, m models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]models.Category, error)
	AddCategory(ctx context.Context, c models.Category) error
	UpdateCategory(ctx context.Context, id, name string) error
	DeleteCategory(ctx context.Context, id string) error
}

// CatalogService implements menu and category logic.
type CatalogService struct {
	repo CatalogRepository
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// Menu lists menu items. The "All" category sentinel and empty strings
// mean no filter.
func (s *CatalogService) Menu(ctx context.Context, category, itemType string) ([]models.MenuItem, error) {
	if category == models.CategoryAll {
		category = ""
	}
	return s.repo.MenuItems(ctx, category, itemType)
}

// Categories lists the menu categories.
func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.repo.Categories(ctx)
}

// AddMenuItem creates a menu item with a generated id.
func (s *CatalogService) AddMenuItem(ctx context.Context, m models.MenuItem) (*models.MenuItem, error) {
	m.ID = uuid.NewString()
	m.Normalize()
	if err := s.repo.AddMenuItem(ctx, m); err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateMenuItem updates a menu item.
func (s *CatalogService) UpdateMenuItem(ctx context.Context, m models.MenuItem) error {
	m.Normalize()
	return s.repo.UpdateMenuItem(ctx, m)
}

// DeleteMenuItem removes a menu item.
func (s *CatalogService) DeleteMenuItem(ctx context.Context, id string) error {
	return s.repo.DeleteMenuItem(ctx, id)
}

// AddCategory creates a category with a generated id.
func (s *CatalogService) AddCategory(ctx context.Context, name string) error {
	return s.repo.AddCategory(ctx, models.Category{ID: uuid.NewString(), Name: name})
}

// UpdateCategory renames a category.
func (s *CatalogService) UpdateCategory(ctx context.Context, id, name string) error {
	return s.repo.UpdateCategory(ctx, id, name)
}

// DeleteCategory removes a category.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	return s.repo.DeleteCategory(ctx, id)
}
