package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/tastybites/tastybites-client/internal/api"
	"github.com/tastybites/tastybites-client/internal/models"
)

// estimatedDelivery is the fixed textual ETA shown on the confirmation
// screen. It is computed client-side and stored with the snapshot.
const estimatedDelivery = "35-45 minutes"

// refreshOrders refetches the order-history cache.
func (s *Store) refreshOrders(ctx context.Context) error {
	ticket := s.take(cacheOrders)
	orders, err := s.api.Orders(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.latest(cacheOrders, ticket) {
		return nil
	}
	s.orders = orders
	return nil
}

// OrderDetails is the checkout input. TotalPrice is optional: when zero it
// is computed from the cart.
type OrderDetails struct {
	Name          string
	AddressLine1  string
	City          string
	Pincode       string
	PaymentMethod string
	TotalPrice    float64
}

// PlaceOrder submits the current cart as an order. It requires a token and
// a non-empty cart, and neither touches the cart nor the network when
// either guard fails. On success the denormalized last-order snapshot
// (including the fixed ETA) goes to durable storage, the cart cache is
// cleared, and the cart and order caches are refreshed from the backend.
// On failure the cart is left untouched.
func (s *Store) PlaceOrder(ctx context.Context, details OrderDetails) Result {
	if _, res := s.requireToken(); !res.Success {
		return res
	}

	s.mu.Lock()
	cart := append([]models.CartItem(nil), s.cart...)
	s.mu.Unlock()
	if len(cart) == 0 {
		return fail("Your cart is empty")
	}

	lines := make([]models.OrderLineItem, 0, len(cart))
	computedTotal := 0.0
	for _, c := range cart {
		lines = append(lines, models.OrderLineItem{
			ItemID:   c.ItemID,
			Name:     c.Name,
			Price:    c.Price,
			Quantity: c.Quantity,
			Image:    c.Image,
		})
		computedTotal += c.Price * float64(c.Quantity)
	}

	total := details.TotalPrice
	if total <= 0 {
		total = computedTotal
	}

	order, err := s.api.PlaceOrder(ctx, api.PlaceOrderRequest{
		Items:         lines,
		TotalPrice:    total,
		Name:          details.Name,
		AddressLine1:  details.AddressLine1,
		City:          details.City,
		Pincode:       details.Pincode,
		PaymentMethod: details.PaymentMethod,
	})
	if err != nil {
		return failErr(err, "Could not place order")
	}

	snapshot := &models.LastOrder{Order: *order, EstimatedDelivery: estimatedDelivery}
	s.mu.Lock()
	s.lastOrder = snapshot
	s.cart = []models.CartItem{}
	s.persist()
	s.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := s.refreshCart(ctx); err != nil {
			s.log.Debug("cart refresh after order failed", zap.Error(err))
		}
	}()
	go func() {
		defer wg.Done()
		if err := s.refreshOrders(ctx); err != nil {
			s.log.Debug("orders refresh after order failed", zap.Error(err))
		}
	}()
	wg.Wait()

	return ok()
}

// FetchOrders refreshes the order-history cache on demand.
func (s *Store) FetchOrders(ctx context.Context) Result {
	if _, res := s.requireToken(); !res.Success {
		return res
	}
	if err := s.refreshOrders(ctx); err != nil {
		return failErr(err, "Could not load orders")
	}
	return ok()
}
