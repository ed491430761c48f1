package session

import (
	"context"
	"testing"

	"github.com/tastybites/tastybites-client/internal/models"
)

func TestPlaceOrder_EmptyCart(t *testing.T) {
	b := newFakeBackend()
	defer b.close()

	store, _ := loggedInStore(t, b)
	before := b.total()

	res := store.PlaceOrder(context.Background(), OrderDetails{Name: "Alice", AddressLine1: "1 Main St", City: "Pune", Pincode: "411001", PaymentMethod: "cod"})
	if res.Success {
		t.Fatalf("expected failure for empty cart")
	}
	if res.Error != "Your cart is empty" {
		t.Errorf("error = %q; want the empty-cart message", res.Error)
	}
	if b.total() != before {
		t.Errorf("an empty cart must not reach the network")
	}
}

func TestPlaceOrder_RequiresLogin(t *testing.T) {
	b := newFakeBackend()
	defer b.close()

	store, _ := newTestStore(t, b)
	requireGuardFailure(t, store.PlaceOrder(context.Background(), OrderDetails{}))
}

func TestPlaceOrder_Success(t *testing.T) {
	b := newFakeBackend()
	defer b.close()
	b.cart = []models.CartItem{
		{ItemID: "m1", Name: "Dosa", Price: 120, Quantity: 2},
		{ItemID: "m2", Name: "Idli", Price: 60, Quantity: 1},
	}

	store, file := loggedInStore(t, b)
	res := store.PlaceOrder(context.Background(), OrderDetails{
		Name:          "Alice",
		AddressLine1:  "1 Main St",
		City:          "Pune",
		Pincode:       "411001",
		PaymentMethod: "cod",
	})
	if !res.Success {
		t.Fatalf("place order failed: %s", res.Error)
	}

	// The snapshot carries the server's order plus the fixed client ETA.
	lo := store.LastOrder()
	if lo == nil {
		t.Fatalf("expected a last-order snapshot")
	}
	if lo.ID != "o-new" {
		t.Errorf("order id = %q; want o-new", lo.ID)
	}
	if lo.EstimatedDelivery != "35-45 minutes" {
		t.Errorf("eta = %q; want 35-45 minutes", lo.EstimatedDelivery)
	}
	// The total is computed from the cart when not supplied: 2*120 + 60.
	if lo.TotalPrice != 300 {
		t.Errorf("total = %v; want 300", lo.TotalPrice)
	}

	if cart := store.Cart(); len(cart) != 0 {
		t.Errorf("cart must be empty after checkout: %+v", cart)
	}
	orders := store.Orders()
	if len(orders) != 1 || orders[0].ID != "o-new" {
		t.Errorf("order history not refreshed: %+v", orders)
	}

	// The snapshot survives a restart.
	st, err := file.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if st.LastOrder == nil || st.LastOrder.ID != "o-new" || st.LastOrder.EstimatedDelivery != "35-45 minutes" {
		t.Errorf("snapshot not persisted: %+v", st.LastOrder)
	}
}

func TestPlaceOrder_FailureLeavesCartUntouched(t *testing.T) {
	b := newFakeBackend()
	defer b.close()
	b.cart = []models.CartItem{{ItemID: "m1", Name: "Dosa", Price: 120, Quantity: 1}}

	store, _ := loggedInStore(t, b)
	b.srv.Close()

	res := store.PlaceOrder(context.Background(), OrderDetails{Name: "Alice"})
	if res.Success {
		t.Fatalf("expected a transport failure")
	}
	if cart := store.Cart(); len(cart) != 1 {
		t.Errorf("failed checkout must leave the cart untouched: %+v", cart)
	}
	if store.LastOrder() != nil {
		t.Errorf("failed checkout must not write a snapshot")
	}
}

func TestFetchOrders(t *testing.T) {
	b := newFakeBackend()
	defer b.close()

	store, _ := loggedInStore(t, b)
	b.mu.Lock()
	b.orders = []models.Order{{ID: "o1", Status: models.OrderDelivered, TotalPrice: 300}}
	b.mu.Unlock()

	if res := store.FetchOrders(context.Background()); !res.Success {
		t.Fatalf("fetch failed: %s", res.Error)
	}
	orders := store.Orders()
	if len(orders) != 1 || orders[0].ID != "o1" {
		t.Errorf("unexpected orders: %+v", orders)
	}
}
