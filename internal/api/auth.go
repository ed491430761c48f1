package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tastybites/tastybites-client/internal/models"
)

// AuthResponse is the payload of a successful login or OTP verification.
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login exchanges credentials for a bearer token and the user profile.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.Post(ctx, "/api/auth/login", body, &resp); err != nil {
		return nil, err
	}
	resp.User.Normalize()
	return &resp, nil
}

// Register creates an account. The backend sends a signup OTP out-of-band;
// the caller is expected to follow up with VerifySignupOTP.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.Post(ctx, "/api/auth/register", body, nil)
}

// VerifySignupOTP completes registration and behaves like Login on success.
func (c *Client) VerifySignupOTP(ctx context.Context, email, otp string) (*AuthResponse, error) {
	var resp AuthResponse
	body := map[string]string{"email": email, "otp": otp}
	if err := c.Post(ctx, "/api/auth/verify-signup-otp", body, &resp); err != nil {
		return nil, err
	}
	resp.User.Normalize()
	return &resp, nil
}

// ForgotPassword asks the backend to send a password-reset OTP.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.Post(ctx, "/api/auth/forgot-password", map[string]string{"email": email}, nil)
}

// ResetPassword sets a new password using a reset OTP.
func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	body := map[string]string{"email": email, "otp": otp, "newPassword": newPassword}
	return c.Post(ctx, "/api/auth/reset-password", body, nil)
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.Get(ctx, "/api/auth/profile", &u); err != nil {
		return nil, err
	}
	u.Normalize()
	return &u, nil
}

// UpdateProfileRequest carries the editable profile fields.
type UpdateProfileRequest struct {
	Name           string `json:"name,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// UpdateProfile updates profile fields and returns the fresh profile.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*models.User, error) {
	var u models.User
	if err := c.Put(ctx, "/api/auth/profile", req, &u); err != nil {
		return nil, err
	}
	u.Normalize()
	return &u, nil
}

// ChangePassword replaces the account password.
func (c *Client) ChangePassword(ctx context.Context, current, newPassword string) error {
	body := map[string]string{"currentPassword": current, "newPassword": newPassword}
	return c.Post(ctx, "/api/auth/change-password", body, nil)
}

// AddAddress creates a delivery address. Callers refetch the profile
// afterwards; the server copy stays authoritative.
func (c *Client) AddAddress(ctx context.Context, addr models.Address) error {
	return c.Post(ctx, "/api/auth/addresses", addr, nil)
}

// UpdateAddress updates an existing delivery address.
func (c *Client) UpdateAddress(ctx context.Context, addr models.Address) error {
	return c.Put(ctx, "/api/auth/addresses/"+url.PathEscape(addr.ID), addr, nil)
}

// DeleteAddress removes a delivery address.
func (c *Client) DeleteAddress(ctx context.Context, id string) error {
	return c.Delete(ctx, "/api/auth/addresses/"+url.PathEscape(id), nil)
}

// SendContactMessage submits the public contact form.
func (c *Client) SendContactMessage(ctx context.Context, name, email, message string) error {
	body := map[string]string{"name": name, "email": email, "message": message}
	if err := c.Post(ctx, "/api/contact", body, nil); err != nil {
		return fmt.Errorf("send contact message: %w", err)
	}
	return nil
}
