package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/tastybites/tastybites-client/internal/models"
)

// PostgresShopRepository implements cart, favorites, and order persistence.
type PostgresShopRepository struct {
	DB *sql.DB
}

// NewPostgresShopRepository creates a repository over the given connection.
func NewPostgresShopRepository(db *sql.DB) *PostgresShopRepository {
	return &PostgresShopRepository{DB: db}
}

// CartItems returns the user's cart lines.
func (r *PostgresShopRepository) CartItems(ctx context.Context, userID string) ([]models.CartItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, item_id, name, price, quantity, image
		  FROM cart_items WHERE user_id = $1 ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("cart items: %w", err)
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		var c models.CartItem
		if err := rows.Scan(&c.ID, &c.ItemID, &c.Name, &c.Price, &c.Quantity, &c.Image); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// UpsertCartItem adds a cart line, merging a repeated item_id by summing
// quantities. The cart therefore holds at most one line per item.
func (r *PostgresShopRepository) UpsertCartItem(ctx context.Context, userID string, c models.CartItem) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO cart_items (id, user_id, item_id, name, price, quantity, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, item_id) DO UPDATE SET
			quantity = cart_items.quantity + EXCLUDED.quantity,
			price = EXCLUDED.price
	`, c.ID, userID, c.ItemID, c.Name, c.Price, c.Quantity, c.Image)
	return err
}

// SetCartItemQuantity sets the quantity of the user's cart line for a menu
// item. Lines are keyed by item_id, the identifier clients hold.
func (r *PostgresShopRepository) SetCartItemQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE cart_items SET quantity = $3 WHERE user_id = $1 AND item_id = $2
	`, userID, itemID, quantity)
	return err
}

// DeleteCartItem removes the user's cart line for a menu item.
func (r *PostgresShopRepository) DeleteCartItem(ctx context.Context, userID, itemID string) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id = $1 AND item_id = $2`, userID, itemID)
	return err
}

// ClearCart removes every cart line for the user.
func (r *PostgresShopRepository) ClearCart(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}

// Favorites returns the user's favorite items.
func (r *PostgresShopRepository) Favorites(ctx context.Context, userID string) ([]models.FavoriteItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, item_id, name, price, image, type
		  FROM favorites WHERE user_id = $1 ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("favorites: %w", err)
	}
	defer rows.Close()

	items := []models.FavoriteItem{}
	for rows.Next() {
		var f models.FavoriteItem
		if err := rows.Scan(&f.ID, &f.ItemID, &f.Name, &f.Price, &f.Image, &f.Type); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		items = append(items, f)
	}
	return items, rows.Err()
}

// AddFavorite inserts a favorite; a repeated item_id is a no-op.
func (r *PostgresShopRepository) AddFavorite(ctx context.Context, userID string, f models.FavoriteItem) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO favorites (id, user_id, item_id, name, price, image, type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, item_id) DO NOTHING
	`, f.ID, userID, f.ItemID, f.Name, f.Price, f.Image, f.Type)
	return err
}

// DeleteFavorite removes a favorite by its menu item id.
func (r *PostgresShopRepository) DeleteFavorite(ctx context.Context, userID, itemID string) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND item_id = $2`, userID, itemID)
	return err
}

// Orders returns orders, newest first. An empty userID lists every order
// (the admin view).
func (r *PostgresShopRepository) Orders(ctx context.Context, userID string) ([]models.Order, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, total_price, name, address_line1, city, pincode, payment_method, status, created_at
		  FROM orders
		 WHERE ($1 = '' OR user_id = $1)
		 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	ids := []string{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.TotalPrice, &o.Name, &o.AddressLine1, &o.City,
			&o.Pincode, &o.PaymentMethod, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		o.Items = []models.OrderLineItem{}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	lineRows, err := r.DB.QueryContext(ctx, `
		SELECT order_id, item_id, name, price, quantity, image
		  FROM order_items WHERE order_id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("order items: %w", err)
	}
	defer lineRows.Close()

	byID := make(map[string]int, len(orders))
	for i, o := range orders {
		byID[o.ID] = i
	}
	for lineRows.Next() {
		var orderID string
		var li models.OrderLineItem
		if err := lineRows.Scan(&orderID, &li.ItemID, &li.Name, &li.Price, &li.Quantity, &li.Image); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if i, ok := byID[orderID]; ok {
			orders[i].Items = append(orders[i].Items, li)
		}
	}
	return orders, lineRows.Err()
}

// CreateOrder inserts an order and its line items in one transaction and
// clears the user's cart.
func (r *PostgresShopRepository) CreateOrder(ctx context.Context, userID string, o models.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, total_price, name, address_line1, city, pincode, payment_method, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, o.ID, userID, o.TotalPrice, o.Name, o.AddressLine1, o.City, o.Pincode, o.PaymentMethod, o.Status, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, li := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, item_id, name, price, quantity, image)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, o.ID, li.ItemID, li.Name, li.Price, li.Quantity, li.Image)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// UpdateOrderStatus transitions an order's status.
func (r *PostgresShopRepository) UpdateOrderStatus(ctx context.Context, id, status string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	return err
}

// Counts returns the order, cart-line, and favorite counts the profile
// endpoint denormalizes onto the user.
func (r *PostgresShopRepository) Counts(ctx context.Context, userID string) (orders, cartItems, favorites int, err error) {
	err = r.DB.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM orders WHERE user_id = $1),
			(SELECT COUNT(*) FROM cart_items WHERE user_id = $1),
			(SELECT COUNT(*) FROM favorites WHERE user_id = $1)
	`, userID).Scan(&orders, &cartItems, &favorites)
	if err != nil {
		err = fmt.Errorf("counts: %w", err)
	}
	return orders, cartItems, favorites, err
}

// OrderOwner returns the user id an order belongs to, for notification
// fan-out on status changes.
func (r *PostgresShopRepository) OrderOwner(ctx context.Context, id string) (string, error) {
	var userID string
	err := r.DB.QueryRowContext(ctx,
		`SELECT user_id FROM orders WHERE id = $1`, id).Scan(&userID)
	return userID, err
}
