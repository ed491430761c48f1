// Package models defines the data structures exchanged with the TastyBites API.
package models

// User roles as reported by the backend.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Address is a delivery address owned by a user.
type Address struct {
	// ID is the unique identifier for the address.
	ID string `json:"id"`
	// AddressLine1 is the required first address line.
	AddressLine1 string `json:"addressLine1"`
	// AddressLine2 is the optional second address line.
	AddressLine2 string `json:"addressLine2,omitempty"`
	// City is the city name.
	City string `json:"city"`
	// Pincode is the 6-digit postal code.
	Pincode string `json:"pincode"`
}

// User represents an application user together with the counters and
// preferences the backend denormalizes onto the profile.
type User struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Role               string    `json:"role"`
	ProfilePicture     string    `json:"profilePicture"`
	OrdersCount        int       `json:"ordersCount"`
	CartItemsCount     int       `json:"cartItemsCount"`
	FavoriteItemsCount int       `json:"favoriteItemsCount"`
	Addresses          []Address `json:"addresses"`

	EmailOrderUpdates    bool `json:"emailOrderUpdates"`
	EmailPromotions      bool `json:"emailPromotions"`
	DesktopNotifications bool `json:"desktopNotifications"`
}

// Normalize coerces missing or malformed fields to safe defaults so that
// consumers never see nil slices or negative counters. The backend is not
// under this client's control, every response shape is re-defaulted.
func (u *User) Normalize() {
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.Addresses == nil {
		u.Addresses = []Address{}
	}
	if u.OrdersCount < 0 {
		u.OrdersCount = 0
	}
	if u.CartItemsCount < 0 {
		u.CartItemsCount = 0
	}
	if u.FavoriteItemsCount < 0 {
		u.FavoriteItemsCount = 0
	}
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// NotificationPreferences is the user-tunable slice of the profile.
type NotificationPreferences struct {
	EmailOrderUpdates    bool `json:"emailOrderUpdates"`
	EmailPromotions      bool `json:"emailPromotions"`
	DesktopNotifications bool `json:"desktopNotifications"`
}
