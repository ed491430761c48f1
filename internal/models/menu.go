package models

// Dietary types for menu and favorite items.
const (
	TypeVeg    = "Veg"
	TypeNonVeg = "Non-Veg"
)

// CategoryAll is the sentinel category meaning "no category filter".
const CategoryAll = "All"

// MenuItem is a dish as served by the menu endpoints. The client treats it
// as read-only; admins mutate it through the admin namespace.
type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Offer       string  `json:"offer,omitempty"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
	Type        string  `json:"type"`
}

// Normalize defaults malformed fields coming from the backend.
func (m *MenuItem) Normalize() {
	if m.Price < 0 {
		m.Price = 0
	}
	if m.Rating < 0 {
		m.Rating = 0
	}
	if m.Reviews < 0 {
		m.Reviews = 0
	}
	if m.Type == "" {
		m.Type = TypeVeg
	}
}

// Category is an admin-managed menu category. Names are required and
// limited to 100 characters.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MaxCategoryNameLen is the longest category name the backend accepts.
const MaxCategoryNameLen = 100
