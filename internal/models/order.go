package models

import "time"

// Order statuses.
const (
	OrderPending   = "Pending"
	OrderDelivered = "Delivered"
	OrderCancelled = "Cancelled"
)

// CartItem is a line in the user's cart. The cart holds at most one entry
// per distinct ItemID; repeated adds merge server-side.
type CartItem struct {
	// ID is the cart-line identifier assigned by the backend.
	ID string `json:"id"`
	// ItemID references the menu item this line was created from.
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
}

// Normalize clamps price and quantity into their valid ranges.
func (c *CartItem) Normalize() {
	if c.Price < 0 {
		c.Price = 0
	}
	if c.Quantity < 1 {
		c.Quantity = 1
	}
}

// FavoriteItem is an entry in the user's favorites list, unique per ItemID.
type FavoriteItem struct {
	ID     string  `json:"id"`
	ItemID string  `json:"itemId"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Image  string  `json:"image"`
	Type   string  `json:"type"`
}

// OrderLineItem is a priced snapshot of a cart line at checkout time.
type OrderLineItem struct {
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
}

// Order is a placed order as reported by the backend.
type Order struct {
	ID            string          `json:"id"`
	Items         []OrderLineItem `json:"items"`
	TotalPrice    float64         `json:"totalPrice"`
	Name          string          `json:"name"`
	AddressLine1  string          `json:"addressLine1"`
	City          string          `json:"city"`
	Pincode       string          `json:"pincode"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Normalize defaults missing fields.
func (o *Order) Normalize() {
	if o.Items == nil {
		o.Items = []OrderLineItem{}
	}
	if o.Status == "" {
		o.Status = OrderPending
	}
	if o.TotalPrice < 0 {
		o.TotalPrice = 0
	}
}

// LastOrder is the denormalized order snapshot the client keeps in durable
// storage for the confirmation screen. EstimatedDelivery is computed
// client-side and never comes from the backend.
type LastOrder struct {
	Order
	EstimatedDelivery string `json:"estimatedDelivery"`
}
