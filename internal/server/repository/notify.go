package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tastybites/tastybites-client/internal/models"
)

// PostgresNotifyRepository implements notification and contact-message
// persistence.
type PostgresNotifyRepository struct {
	DB *sql.DB
}

// NewPostgresNotifyRepository creates a repository over the given connection.
func NewPostgresNotifyRepository(db *sql.DB) *PostgresNotifyRepository {
	return &PostgresNotifyRepository{DB: db}
}

// Notifications returns the user's inbox, newest first.
func (r *PostgresNotifyRepository) Notifications(ctx context.Context, userID string) ([]models.Notification, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, title, content, image_url, type, read, sent_at
		  FROM notifications WHERE user_id = $1 ORDER BY sent_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("notifications: %w", err)
	}
	defer rows.Close()

	ns := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.ImageURL, &n.Type, &n.Read, &n.SentAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		ns = append(ns, n)
	}
	return ns, rows.Err()
}

// Insert stores a notification for one user.
func (r *PostgresNotifyRepository) Insert(ctx context.Context, userID string, n models.Notification) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, title, content, image_url, type, read, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, n.ID, userID, n.Title, n.Content, n.ImageURL, n.Type, n.Read, n.SentAt)
	return err
}

// MarkRead marks one notification read.
func (r *PostgresNotifyRepository) MarkRead(ctx context.Context, userID, id string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

// MarkAllRead marks the whole inbox read.
func (r *PostgresNotifyRepository) MarkAllRead(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE notifications SET read = true WHERE user_id = $1`, userID)
	return err
}

// Delete removes one notification.
func (r *PostgresNotifyRepository) Delete(ctx context.Context, userID, id string) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

// Clear removes the whole inbox.
func (r *PostgresNotifyRepository) Clear(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM notifications WHERE user_id = $1`, userID)
	return err
}

// Broadcast stores a broadcast record and fans the notification out to
// every user in one statement.
func (r *PostgresNotifyRepository) Broadcast(ctx context.Context, n models.Notification) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO broadcasts (id, title, content, image_url, type, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, n.ID, n.Title, n.Content, n.ImageURL, n.Type, n.SentAt)
	if err != nil {
		return fmt.Errorf("insert broadcast: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, title, content, image_url, type, read, sent_at)
		SELECT $1 || '-' || id, id, $2, $3, $4, $5, false, $6 FROM users
	`, n.ID, n.Title, n.Content, n.ImageURL, n.Type, n.SentAt)
	if err != nil {
		return fmt.Errorf("fan out broadcast: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// BroadcastHistory lists previous broadcasts, newest first.
func (r *PostgresNotifyRepository) BroadcastHistory(ctx context.Context) ([]models.Notification, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, title, content, image_url, type, sent_at
		  FROM broadcasts ORDER BY sent_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("broadcast history: %w", err)
	}
	defer rows.Close()

	ns := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.ImageURL, &n.Type, &n.SentAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		n.Read = true
		ns = append(ns, n)
	}
	return ns, rows.Err()
}

// SaveContactMessage stores a contact-form submission.
func (r *PostgresNotifyRepository) SaveContactMessage(ctx context.Context, m models.ContactMessage) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO contact_messages (id, name, email, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, m.ID, m.Name, m.Email, m.Message, m.CreatedAt)
	return err
}

// ContactMessages lists contact-form submissions, newest first.
func (r *PostgresNotifyRepository) ContactMessages(ctx context.Context) ([]models.ContactMessage, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, email, message, created_at
		  FROM contact_messages ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("contact messages: %w", err)
	}
	defer rows.Close()

	msgs := []models.ContactMessage{}
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// DeleteContactMessage removes a contact-form submission.
func (r *PostgresNotifyRepository) DeleteContactMessage(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM contact_messages WHERE id = $1`, id)
	return err
}
