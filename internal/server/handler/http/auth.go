package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tastybites/tastybites-client/internal/models"
	"github.com/tastybites/tastybites-client/internal/server/middleware"
	"github.com/tastybites/tastybites-client/internal/server/service"
)

// AuthService defines the operations the auth handlers require.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) error
	VerifySignupOTP(ctx context.Context, email, otp string) (string, *models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID, name, profilePicture string) (*models.User, error)
	ChangePassword(ctx context.Context, userID, current, newPassword string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
	AddAddress(ctx context.Context, userID string, a models.Address) error
	UpdateAddress(ctx context.Context, userID string, a models.Address) error
	DeleteAddress(ctx context.Context, userID, id string) error
	UpdatePreferences(ctx context.Context, userID string, p models.NotificationPreferences) error
}

// AuthHandler handles registration, login, and profile endpoints.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// authStatus maps auth service failures onto HTTP statuses.
func authStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidOTP):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrWeakPassword):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an unverified account and triggers the signup OTP.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil || req.Email == "" || req.Password == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "name, email, and password are required")
		return
	}
	if err := h.AuthService.Register(r.Context(), req.Name, req.Email, req.Password); err != nil {
		writeError(w, authStatus(err), err.Error())
		return
	}
	writeMessage(w, http.StatusCreated, "OTP sent")
}

type otpRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifySignupOTP completes registration and issues a token.
func (h *AuthHandler) VerifySignupOTP(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if err := decode(r, &req); err != nil || req.Email == "" || req.OTP == "" {
		writeError(w, http.StatusBadRequest, "email and otp are required")
		return
	}
	token, user, err := h.AuthService.VerifySignupOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		writeError(w, authStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token and the profile.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	token, user, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, authStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

// Profile returns the authenticated user's profile.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.AuthService.Profile(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, authStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	Name           string `json:"name"`
	ProfilePicture string `json:"profilePicture"`
}

// UpdateProfile updates profile fields and returns the fresh profile.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	user, err := h.AuthService.UpdateProfile(r.Context(), middleware.UserIDFromContext(r.Context()), req.Name, req.ProfilePicture)
	if err != nil {
		writeError(w, authStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword replaces the account password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decode(r, &req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "current and new password are required")
		return
	}
	if err := h.AuthService.ChangePassword(r.Context(), middleware.UserIDFromContext(r.Context()), req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, authStatus(err), err.Error())
		return
	}
	writeMessage(w, http.StatusOK, "password changed")
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword issues a reset OTP.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decode(r, &req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}
	if err := h.AuthService.ForgotPassword(r.Context(), req.Email); err != nil {
		writeError(w, authStatus(err), err.Error())
		return
	}
	writeMessage(w, http.StatusOK, "reset code sent")
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// ResetPassword consumes a reset OTP and stores the new password.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decode(r, &req); err != nil || req.Email == "" || req.OTP == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "email, otp, and new password are required")
		return
	}
	if err := h.AuthService.ResetPassword(r.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		writeError(w, authStatus(err), err.Error())
		return
	}
	writeMessage(w, http.StatusOK, "password reset")
}

// AddAddress stores a delivery address.
func (h *AuthHandler) AddAddress(w http.ResponseWriter, r *http.Request) {
	var addr models.Address
	if err := decode(r, &addr); err != nil || addr.AddressLine1 == "" || addr.City == "" {
		writeError(w, http.StatusBadRequest, "addressLine1 and city are required")
		return
	}
	if err := h.AuthService.AddAddress(r.Context(), middleware.UserIDFromContext(r.Context()), addr); err != nil {
		writeError(w, authStatus(err), err.Error())
		return
	}
	writeMessage(w, http.StatusCreated, "address added")
}

// UpdateAddress updates a delivery address.
func (h *AuthHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	var addr models.Address
	if err := decode(r, &addr); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	addr.ID = chi.URLParam(r, "id")
	if err := h.AuthService.UpdateAddress(r.Context(), middleware.UserIDFromContext(r.Context()), addr); err != nil {
		writeError(w, authStatus(err), err.Error())
		return
	}
	writeMessage(w, http.StatusOK, "address updated")
}

// DeleteAddress removes a delivery address.
func (h *AuthHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthService.DeleteAddress(r.Context(), middleware.UserIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, authStatus(err), err.Error())
		return
	}
	writeMessage(w, http.StatusOK, "address deleted")
}

// UpdatePreferences stores the notification preferences.
func (h *AuthHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var prefs models.NotificationPreferences
	if err := decode(r, &prefs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.AuthService.UpdatePreferences(r.Context(), middleware.UserIDFromContext(r.Context()), prefs); err != nil {
		writeError(w, authStatus(err), err.Error())
		return
	}
	writeMessage(w, http.StatusOK, "preferences updated")
}
