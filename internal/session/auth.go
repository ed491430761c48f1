package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/tastybites/tastybites-client/internal/api"
	"github.com/tastybites/tastybites-client/internal/models"
)

// Login authenticates with the backend, persists the session, and hydrates
// all four caches concurrently. A failure in any single cache fetch
// defaults that cache to empty without failing the login.
func (s *Store) Login(ctx context.Context, email, password string) Result {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return fail("Email and password are required")
	}

	s.setAuthLoading(true)
	defer s.setAuthLoading(false)

	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return failErr(err, "Login failed")
	}

	s.adopt(resp.Token, &resp.User)
	s.hydrate(ctx)
	return ok()
}

// Signup registers a new account. The password policy is checked before
// any network call; the backend follows up with an out-of-band OTP which
// VerifySignupOTP consumes.
func (s *Store) Signup(ctx context.Context, name, email, password string) Result {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return fail("Name and email are required")
	}
	if !validPassword(password) {
		return fail(errWeakPassword)
	}

	s.setAuthLoading(true)
	defer s.setAuthLoading(false)

	if err := s.api.Register(ctx, name, email, password); err != nil {
		return failErr(err, "Signup failed")
	}
	return ok()
}

// VerifySignupOTP completes registration. On success it behaves like Login
// except that the caches are reset to empty: a new account has no history.
func (s *Store) VerifySignupOTP(ctx context.Context, email, otp string) Result {
	email = strings.TrimSpace(email)
	otp = strings.TrimSpace(otp)
	if email == "" || otp == "" {
		return fail("Email and OTP are required")
	}

	s.setAuthLoading(true)
	defer s.setAuthLoading(false)

	resp, err := s.api.VerifySignupOTP(ctx, email, otp)
	if err != nil {
		return failErr(err, "OTP verification failed")
	}

	s.adopt(resp.Token, &resp.User)
	s.resetCaches()
	return ok()
}

// ForgotPassword requests a password-reset OTP for the given email.
func (s *Store) ForgotPassword(ctx context.Context, email string) Result {
	email = strings.TrimSpace(email)
	if email == "" {
		return fail("Email is required")
	}
	if err := s.api.ForgotPassword(ctx, email); err != nil {
		return failErr(err, "Could not send reset code")
	}
	return ok()
}

// ResetPassword sets a new password using a reset OTP. The new password
// must satisfy the same policy as signup.
func (s *Store) ResetPassword(ctx context.Context, email, otp, newPassword string) Result {
	if !validPassword(newPassword) {
		return fail(errWeakPassword)
	}
	if err := s.api.ResetPassword(ctx, email, otp, newPassword); err != nil {
		return failErr(err, "Password reset failed")
	}
	return ok()
}

// Logout clears the session synchronously: memory and durable storage are
// purged together and the token is dropped from the API client. No backend
// call is made; the token is only discarded client-side.
func (s *Store) Logout() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.lastOrder = nil
	s.clearCachesLocked()
	s.mu.Unlock()

	s.api.SetToken("")
	if err := s.file.Clear(); err != nil {
		s.log.Warn("failed to clear session file", zap.Error(err))
	}
}

// Bootstrap restores a persisted session once per app start. With no saved
// session the store ends up anonymous immediately. With one, the user and
// token are restored optimistically and every resource is refetched
// concurrently; a profile fetch failing with an auth error forces a full
// logout, while any other single failure only defaults its own cache.
func (s *Store) Bootstrap(ctx context.Context) {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	st, err := s.file.Load()
	if err != nil {
		s.log.Warn("failed to load session file", zap.Error(err))
		return
	}
	if st.Token == "" || st.User == nil {
		return
	}

	st.User.Normalize()
	s.mu.Lock()
	s.token = st.Token
	s.user = st.User
	s.lastOrder = st.LastOrder
	s.mu.Unlock()
	s.api.SetToken(st.Token)

	var wg sync.WaitGroup
	var authFailed bool

	wg.Add(1)
	go func() {
		defer wg.Done()
		u, err := s.api.Profile(ctx)
		if err != nil {
			if errors.Is(err, api.ErrUnauthorized) {
				authFailed = true
			} else {
				s.log.Debug("profile refresh failed during bootstrap", zap.Error(err))
			}
			return
		}
		s.mu.Lock()
		s.user = u
		s.persist()
		s.mu.Unlock()
	}()

	s.hydrateInto(ctx, &wg)
	wg.Wait()

	if authFailed {
		s.Logout()
	}
}

// adopt installs a fresh token and user in memory, in the API client, and
// in durable storage.
func (s *Store) adopt(token string, user *models.User) {
	s.api.SetToken(token)
	s.mu.Lock()
	s.token = token
	s.user = user
	s.persist()
	s.mu.Unlock()
}

// resetCaches empties all four caches.
func (s *Store) resetCaches() {
	s.mu.Lock()
	s.clearCachesLocked()
	s.mu.Unlock()
}

// clearCachesLocked resets the caches and counters. Callers hold s.mu.
func (s *Store) clearCachesLocked() {
	s.cart = []models.CartItem{}
	s.favorites = []models.FavoriteItem{}
	s.orders = []models.Order{}
	s.notifications = []models.Notification{}
	s.unreadCount = 0
}

// hydrate fetches cart, favorites, orders, and notifications concurrently
// and waits for all of them. Failures are isolated per resource.
func (s *Store) hydrate(ctx context.Context) {
	var wg sync.WaitGroup
	s.hydrateInto(ctx, &wg)
	wg.Wait()
}

// hydrateInto fans the four cache fetches out onto the given WaitGroup.
func (s *Store) hydrateInto(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(4)
	go func() {
		defer wg.Done()
		if err := s.refreshCart(ctx); err != nil {
			s.log.Debug("cart hydration failed", zap.Error(err))
		}
	}()
	go func() {
		defer wg.Done()
		if err := s.refreshFavorites(ctx); err != nil {
			s.log.Debug("favorites hydration failed", zap.Error(err))
		}
	}()
	go func() {
		defer wg.Done()
		if err := s.refreshOrders(ctx); err != nil {
			s.log.Debug("orders hydration failed", zap.Error(err))
		}
	}()
	go func() {
		defer wg.Done()
		if err := s.refreshNotifications(ctx); err != nil {
			s.log.Debug("notifications hydration failed", zap.Error(err))
		}
	}()
}
