package session

import (
	"context"
	"strings"

	"github.com/tastybites/tastybites-client/internal/api"
	"github.com/tastybites/tastybites-client/internal/models"
)

// UpdateProfile updates the editable profile fields and adopts the fresh
// server copy of the user.
func (s *Store) UpdateProfile(ctx context.Context, name, profilePicture string) Result {
	if _, res := s.requireToken(); !res.Success {
		return res
	}

	u, err := s.api.UpdateProfile(ctx, api.UpdateProfileRequest{
		Name:           name,
		ProfilePicture: profilePicture,
	})
	if err != nil {
		return failErr(err, "Could not update profile")
	}

	s.mu.Lock()
	s.user = u
	s.persist()
	s.mu.Unlock()
	return ok()
}

// ChangePassword replaces the account password. The new password must
// satisfy the signup policy; the check happens before any network call.
func (s *Store) ChangePassword(ctx context.Context, current, newPassword string) Result {
	if _, res := s.requireToken(); !res.Success {
		return res
	}
	if current == "" {
		return fail("Current password is required")
	}
	if !validPassword(newPassword) {
		return fail(errWeakPassword)
	}
	if err := s.api.ChangePassword(ctx, current, newPassword); err != nil {
		return failErr(err, "Could not change password")
	}
	return ok()
}

// validateAddress runs the client-side checks shared by the address
// mutations. The pincode format in particular is cheap to verify locally,
// so an obviously bad input never costs a round trip.
func validateAddress(addr models.Address) Result {
	if strings.TrimSpace(addr.AddressLine1) == "" {
		return fail("Address line 1 is required")
	}
	if strings.TrimSpace(addr.City) == "" {
		return fail("City is required")
	}
	if !validPincode(addr.Pincode) {
		return fail(errBadPincode)
	}
	return ok()
}

// AddAddress creates a delivery address and refetches the profile so the
// local copy of the address list stays authoritative.
func (s *Store) AddAddress(ctx context.Context, addr models.Address) Result {
	if _, res := s.requireToken(); !res.Success {
		return res
	}
	if res := validateAddress(addr); !res.Success {
		return res
	}
	if err := s.api.AddAddress(ctx, addr); err != nil {
		return failErr(err, "Could not add address")
	}
	return s.refetchProfile(ctx)
}

// UpdateAddress updates a delivery address and refetches the profile.
func (s *Store) UpdateAddress(ctx context.Context, addr models.Address) Result {
	if _, res := s.requireToken(); !res.Success {
		return res
	}
	if addr.ID == "" {
		return fail("Address id is required")
	}
	if res := validateAddress(addr); !res.Success {
		return res
	}
	if err := s.api.UpdateAddress(ctx, addr); err != nil {
		return failErr(err, "Could not update address")
	}
	return s.refetchProfile(ctx)
}

// DeleteAddress removes a delivery address and refetches the profile.
func (s *Store) DeleteAddress(ctx context.Context, id string) Result {
	if _, res := s.requireToken(); !res.Success {
		return res
	}
	if id == "" {
		return fail("Address id is required")
	}
	if err := s.api.DeleteAddress(ctx, id); err != nil {
		return failErr(err, "Could not delete address")
	}
	return s.refetchProfile(ctx)
}

// refetchProfile refreshes the cached user from the backend.
func (s *Store) refetchProfile(ctx context.Context) Result {
	u, err := s.api.Profile(ctx)
	if err != nil {
		return failErr(err, "Could not refresh profile")
	}
	s.mu.Lock()
	s.user = u
	s.persist()
	s.mu.Unlock()
	return ok()
}
