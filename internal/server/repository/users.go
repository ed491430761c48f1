// Package repository provides PostgreSQL persistence for the dev server.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tastybites/tastybites-client/internal/models"
)

// PostgresUserRepository implements user, address, and OTP persistence.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a repository over the given connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// UserRecord is a user row including the credential hash, which never
// leaves the server.
type UserRecord struct {
	models.User
	PasswordHash string
	Verified     bool
}

const userColumns = `id, email, name, password_hash, role, profile_picture,
	email_order_updates, email_promotions, desktop_notifications, verified`

func scanUser(row interface{ Scan(...any) error }) (*UserRecord, error) {
	var u UserRecord
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
		&u.ProfilePicture, &u.EmailOrderUpdates, &u.EmailPromotions,
		&u.DesktopNotifications, &u.Verified)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new, unverified user.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, id, email, name, passwordHash string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (id, email, name, password_hash) VALUES ($1, $2, $3, $4)
	`, id, email, name, passwordHash)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByEmail fetches a user by email. sql.ErrNoRows passes through.
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*UserRecord, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// GetByID fetches a user by id. sql.ErrNoRows passes through.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*UserRecord, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// ListUsers returns every user.
func (r *PostgresUserRepository) ListUsers(ctx context.Context) ([]UserRecord, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []UserRecord
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// MarkVerified flips the verified flag after OTP confirmation.
func (r *PostgresUserRepository) MarkVerified(ctx context.Context, email string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE users SET verified = true WHERE email = $1`, email)
	return err
}

// UpdateProfile updates the editable profile fields, skipping empty ones.
func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id, name, profilePicture string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE users SET
			name = COALESCE(NULLIF($2, ''), name),
			profile_picture = COALESCE(NULLIF($3, ''), profile_picture)
		WHERE id = $1
	`, id, name, profilePicture)
	return err
}

// UpdateUser applies admin edits to name and role, skipping empty fields.
func (r *PostgresUserRepository) UpdateUser(ctx context.Context, id, name, role string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE users SET
			name = COALESCE(NULLIF($2, ''), name),
			role = COALESCE(NULLIF($3, ''), role)
		WHERE id = $1
	`, id, name, role)
	return err
}

// UpdatePassword replaces the stored credential hash.
func (r *PostgresUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	return err
}

// UpdatePasswordByEmail replaces the hash during a password reset.
func (r *PostgresUserRepository) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE users SET password_hash = $2 WHERE email = $1`, email, passwordHash)
	return err
}

// UpdatePreferences stores the notification preferences.
func (r *PostgresUserRepository) UpdatePreferences(ctx context.Context, id string, p models.NotificationPreferences) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE users SET
			email_order_updates = $2,
			email_promotions = $3,
			desktop_notifications = $4
		WHERE id = $1
	`, id, p.EmailOrderUpdates, p.EmailPromotions, p.DesktopNotifications)
	return err
}

// DeleteUser removes a user; dependent rows cascade.
func (r *PostgresUserRepository) DeleteUser(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

// Addresses returns the user's delivery addresses.
func (r *PostgresUserRepository) Addresses(ctx context.Context, userID string) ([]models.Address, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, address_line1, address_line2, city, pincode
		  FROM addresses WHERE user_id = $1 ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("addresses: %w", err)
	}
	defer rows.Close()

	addrs := []models.Address{}
	for rows.Next() {
		var a models.Address
		if err := rows.Scan(&a.ID, &a.AddressLine1, &a.AddressLine2, &a.City, &a.Pincode); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		addrs = append(addrs, a)
	}
	return addrs, rows.Err()
}

// AddAddress inserts a delivery address.
func (r *PostgresUserRepository) AddAddress(ctx context.Context, userID string, a models.Address) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO addresses (id, user_id, address_line1, address_line2, city, pincode)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, a.ID, userID, a.AddressLine1, a.AddressLine2, a.City, a.Pincode)
	return err
}

// UpdateAddress updates an address owned by the user.
func (r *PostgresUserRepository) UpdateAddress(ctx context.Context, userID string, a models.Address) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE addresses SET address_line1 = $3, address_line2 = $4, city = $5, pincode = $6
		 WHERE id = $1 AND user_id = $2
	`, a.ID, userID, a.AddressLine1, a.AddressLine2, a.City, a.Pincode)
	return err
}

// DeleteAddress removes an address owned by the user.
func (r *PostgresUserRepository) DeleteAddress(ctx context.Context, userID, id string) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM addresses WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

// SaveOTP stores a one-time code, replacing any previous one for the same
// email and purpose.
func (r *PostgresUserRepository) SaveOTP(ctx context.Context, email, code, purpose string, expiresAt time.Time) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO otps (email, code, purpose, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email, purpose) DO UPDATE SET
			code = EXCLUDED.code,
			expires_at = EXCLUDED.expires_at
	`, email, code, purpose, expiresAt)
	return err
}

// ConsumeOTP validates and deletes a one-time code. It returns false when
// the code is wrong or expired.
func (r *PostgresUserRepository) ConsumeOTP(ctx context.Context, email, code, purpose string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM otps
		 WHERE email = $1 AND code = $2 AND purpose = $3 AND expires_at > now()
	`, email, code, purpose)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
