package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tastybites/tastybites-client/internal/models"
)

// PostgresCatalogRepository implements menu and category persistence.
type PostgresCatalogRepository struct {
	DB *sql.DB
}

// NewPostgresCatalogRepository creates a repository over the given connection.
func NewPostgresCatalogRepository(db *sql.DB) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{DB: db}
}

const menuColumns = `id, name, price, category, description, image, offer, rating, reviews, type`

// MenuItems lists menu items, optionally filtered by category and type.
// Empty filters match everything.
func (r *PostgresCatalogRepository) MenuItems(ctx context.Context, category, itemType string) ([]models.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+menuColumns+` FROM menu_items
		 WHERE ($1 = '' OR category = $1)
		   AND ($2 = '' OR type = $2)
		 ORDER BY name
	`, category, itemType)
	if err != nil {
		return nil, fmt.Errorf("menu items: %w", err)
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		var m models.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Price, &m.Category, &m.Description,
			&m.Image, &m.Offer, &m.Rating, &m.Reviews, &m.Type); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// AddMenuItem inserts a menu item.
func (r *PostgresCatalogRepository) AddMenuItem(ctx context.Context, m models.MenuItem) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO menu_items (`+menuColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, m.ID, m.Name, m.Price, m.Category, m.Description, m.Image, m.Offer, m.Rating, m.Reviews, m.Type)
	return err
}

// UpdateMenuItem updates a menu item by id.
func (r *PostgresCatalogRepository) UpdateMenuItem(ctx context.Context, m models.MenuItem) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE menu_items SET name = $2, price = $3, category = $4, description = $5,
			image = $6, offer = $7, rating = $8, reviews = $9, type = $10
		 WHERE id = $1
	`, m.ID, m.Name, m.Price, m.Category, m.Description, m.Image, m.Offer, m.Rating, m.Reviews, m.Type)
	return err
}

// DeleteMenuItem removes a menu item.
func (r *PostgresCatalogRepository) DeleteMenuItem(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	return err
}

// Categories lists the menu categories.
func (r *PostgresCatalogRepository) Categories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	defer rows.Close()

	cats := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// AddCategory inserts a category.
func (r *PostgresCatalogRepository) AddCategory(ctx context.Context, c models.Category) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO categories (id, name) VALUES ($1, $2)`, c.ID, c.Name)
	return err
}

// UpdateCategory renames a category.
func (r *PostgresCatalogRepository) UpdateCategory(ctx context.Context, id, name string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE categories SET name = $2 WHERE id = $1`, id, name)
	return err
}

// DeleteCategory removes a category.
func (r *PostgresCatalogRepository) DeleteCategory(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return err
}
