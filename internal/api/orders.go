package api

import (
	"context"

	"github.com/tastybites/tastybites-client/internal/models"
)

// ordersResponse wraps the order history listing.
type ordersResponse struct {
	Orders []models.Order `json:"orders"`
}

// Orders fetches the authenticated user's order history.
func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var resp ordersResponse
	if err := c.Get(ctx, "/api/orders", &resp); err != nil {
		return nil, err
	}
	return normalizeOrders(resp.Orders), nil
}

// PlaceOrderRequest is the checkout payload.
type PlaceOrderRequest struct {
	Items         []models.OrderLineItem `json:"items"`
	TotalPrice    float64                `json:"totalPrice"`
	Name          string                 `json:"name"`
	AddressLine1  string                 `json:"addressLine1"`
	City          string                 `json:"city"`
	Pincode       string                 `json:"pincode"`
	PaymentMethod string                 `json:"paymentMethod"`
}

// PlaceOrder submits an order and returns the server's order record.
func (c *Client) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.Post(ctx, "/api/orders", req, &order); err != nil {
		return nil, err
	}
	order.Normalize()
	return &order, nil
}

func normalizeOrders(orders []models.Order) []models.Order {
	if orders == nil {
		return []models.Order{}
	}
	for i := range orders {
		orders[i].Normalize()
	}
	return orders
}
