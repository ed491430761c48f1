// Package service provides the dev server's business logic, delegating
// persistence to the repository layer.
package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/tastybites/tastybites-client/internal/models"
	"github.com/tastybites/tastybites-client/internal/server/middleware"
	"github.com/tastybites/tastybites-client/internal/server/repository"
)

// OTP purposes.
const (
	otpPurposeSignup = "signup"
	otpPurposeReset  = "reset"
)

const (
	otpTTL   = 10 * time.Minute
	tokenTTL = 24 * time.Hour
)

// Authentication failures surfaced to clients with a 4xx status.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidOTP         = errors.New("invalid or expired OTP")
	ErrWeakPassword       = errors.New("password must be at least 8 characters and include uppercase, lowercase, a digit, and a special character")
	ErrNotFound           = errors.New("not found")
)

// passwordSpecials are the special characters accepted in passwords.
const passwordSpecials = "@$!%*?&"

// validPassword enforces the account password policy: at least 8 characters
// drawn from letters, digits, and passwordSpecials, with at least one
// lowercase, one uppercase, one digit, and one special character.
func validPassword(p string) bool {
	if len(p) < 8 {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return false
		}
	}
	return lower && upper && digit && special
}

// UserRepository defines the persistence operations the auth service needs.
type UserRepository interface {
	CreateUser(ctx context.Context, id, email, name, passwordHash string) error
	GetByEmail(ctx context.Context, email string) (*repository.UserRecord, error)
	GetByID(ctx context.Context, id string) (*repository.UserRecord, error)
	ListUsers(ctx context.Context) ([]repository.UserRecord, error)
	MarkVerified(ctx context.Context, email string) error
	UpdateProfile(ctx context.Context, id, name, profilePicture string) error
	UpdateUser(ctx context.Context, id, name, role string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error
	UpdatePreferences(ctx context.Context, id string, p models.NotificationPreferences) error
	DeleteUser(ctx context.Context, id string) error
	Addresses(ctx context.Context, userID string) ([]models.Address, error)
	AddAddress(ctx context.Context, userID string, a models.Address) error
	UpdateAddress(ctx context.Context, userID string, a models.Address) error
	DeleteAddress(ctx context.Context, userID, id string) error
	SaveOTP(ctx context.Context, email, code, purpose string, expiresAt time.Time) error
	ConsumeOTP(ctx context.Context, email, code, purpose string) (bool, error)
}

// ProfileCounter supplies the counters the profile endpoint denormalizes.
type ProfileCounter interface {
	Counts(ctx context.Context, userID string) (orders, cartItems, favorites int, err error)
}

// AuthService implements registration, OTP verification, login, and
// profile management.
type AuthService struct {
	users   UserRepository
	counter ProfileCounter
	secret  string
	log     *zap.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(users UserRepository, counter ProfileCounter, secret string, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{users: users, counter: counter, secret: secret, log: log}
}

// newOTP returns a random 6-digit code.
func newOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Register creates an unverified account and issues a signup OTP. The dev
// server has no mail transport, so the OTP is logged instead of mailed.
func (s *AuthService) Register(ctx context.Context, name, email, password string) error {
	if !validPassword(password) {
		return ErrWeakPassword
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.CreateUser(ctx, uuid.NewString(), email, name, string(hash)); err != nil {
		return err
	}

	return s.issueOTP(ctx, email, otpPurposeSignup)
}

// issueOTP saves and "delivers" a one-time code.
func (s *AuthService) issueOTP(ctx context.Context, email, purpose string) error {
	code, err := newOTP()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	if err := s.users.SaveOTP(ctx, email, code, purpose, time.Now().Add(otpTTL)); err != nil {
		return err
	}
	s.log.Info("issued otp", zap.String("email", email), zap.String("purpose", purpose), zap.String("code", code))
	return nil
}

// VerifySignupOTP consumes a signup OTP and returns a bearer token plus
// the verified user.
func (s *AuthService) VerifySignupOTP(ctx context.Context, email, otp string) (string, *models.User, error) {
	valid, err := s.users.ConsumeOTP(ctx, email, otp, otpPurposeSignup)
	if err != nil {
		return "", nil, err
	}
	if !valid {
		return "", nil, ErrInvalidOTP
	}
	if err := s.users.MarkVerified(ctx, email); err != nil {
		return "", nil, err
	}

	rec, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	return s.tokenFor(ctx, rec)
}

// Login verifies credentials and returns a bearer token plus the profile.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	rec, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}
	return s.tokenFor(ctx, rec)
}

func (s *AuthService) tokenFor(ctx context.Context, rec *repository.UserRecord) (string, *models.User, error) {
	token, err := middleware.IssueToken(s.secret, rec.ID, rec.Role, tokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	u, err := s.assembleProfile(ctx, rec)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// Profile returns the denormalized profile for the given user id.
func (s *AuthService) Profile(ctx context.Context, userID string) (*models.User, error) {
	rec, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.assembleProfile(ctx, rec)
}

// assembleProfile attaches addresses and counters to the bare user row.
func (s *AuthService) assembleProfile(ctx context.Context, rec *repository.UserRecord) (*models.User, error) {
	u := rec.User
	addrs, err := s.users.Addresses(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Addresses = addrs

	orders, cartItems, favorites, err := s.counter.Counts(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.OrdersCount = orders
	u.CartItemsCount = cartItems
	u.FavoriteItemsCount = favorites
	u.Normalize()
	return &u, nil
}

// UpdateProfile updates profile fields and returns the fresh profile.
func (s *AuthService) UpdateProfile(ctx context.Context, userID, name, profilePicture string) (*models.User, error) {
	if err := s.users.UpdateProfile(ctx, userID, name, profilePicture); err != nil {
		return nil, err
	}
	return s.Profile(ctx, userID)
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, newPassword string) error {
	if !validPassword(newPassword) {
		return ErrWeakPassword
	}
	rec, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(current)) != nil {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, userID, string(hash))
}

// ForgotPassword issues a reset OTP for an existing account. Unknown
// emails succeed silently so the endpoint cannot be used to probe accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if _, err := s.users.GetByEmail(ctx, email); errors.Is(err, sql.ErrNoRows) {
		return nil
	} else if err != nil {
		return err
	}
	return s.issueOTP(ctx, email, otpPurposeReset)
}

// ResetPassword consumes a reset OTP and stores the new hash.
func (s *AuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	if !validPassword(newPassword) {
		return ErrWeakPassword
	}
	valid, err := s.users.ConsumeOTP(ctx, email, otp, otpPurposeReset)
	if err != nil {
		return err
	}
	if !valid {
		return ErrInvalidOTP
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePasswordByEmail(ctx, email, string(hash))
}

// AddAddress stores a new address with a generated id.
func (s *AuthService) AddAddress(ctx context.Context, userID string, a models.Address) error {
	a.ID = uuid.NewString()
	return s.users.AddAddress(ctx, userID, a)
}

// UpdateAddress updates an address owned by the user.
func (s *AuthService) UpdateAddress(ctx context.Context, userID string, a models.Address) error {
	return s.users.UpdateAddress(ctx, userID, a)
}

// DeleteAddress removes an address owned by the user.
func (s *AuthService) DeleteAddress(ctx context.Context, userID, id string) error {
	return s.users.DeleteAddress(ctx, userID, id)
}

// UpdatePreferences stores the notification preferences.
func (s *AuthService) UpdatePreferences(ctx context.Context, userID string, p models.NotificationPreferences) error {
	return s.users.UpdatePreferences(ctx, userID, p)
}

// ListUsers returns every user profile, for the admin dashboard.
func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	recs, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(recs))
	for _, rec := range recs {
		u := rec.User
		u.Normalize()
		users = append(users, u)
	}
	return users, nil
}

// UpdateUser applies admin edits to a user.
func (s *AuthService) UpdateUser(ctx context.Context, id, name, role string) error {
	return s.users.UpdateUser(ctx, id, name, role)
}

// DeleteUser removes a user account.
func (s *AuthService) DeleteUser(ctx context.Context, id string) error {
	return s.users.DeleteUser(ctx, id)
}
