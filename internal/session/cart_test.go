package session

import (
	"context"
	"testing"

	"github.com/tastybites/tastybites-client/internal/models"
)

func TestAddToCart_RequiresLogin(t *testing.T) {
	b := newFakeBackend()
	defer b.close()

	store, _ := newTestStore(t, b)
	res := store.AddToCart(context.Background(), models.MenuItem{ID: "m1"}, 1)
	requireGuardFailure(t, res)
	if b.total() != 0 {
		t.Errorf("guard failures must not reach the network")
	}
}

func TestAddToCart_RepeatedAddsMerge(t *testing.T) {
	b := newFakeBackend()
	defer b.close()

	store, _ := loggedInStore(t, b)
	item := models.MenuItem{ID: "m1", Name: "Dosa", Price: 120}

	if res := store.AddToCart(context.Background(), item, 1); !res.Success {
		t.Fatalf("first add failed: %s", res.Error)
	}
	if res := store.AddToCart(context.Background(), item, 2); !res.Success {
		t.Fatalf("second add failed: %s", res.Error)
	}

	cart := store.Cart()
	if len(cart) != 1 {
		t.Fatalf("expected one merged line, got %d", len(cart))
	}
	if cart[0].Quantity != 3 {
		t.Errorf("quantity = %d; want 3", cart[0].Quantity)
	}
}

func TestAddToCart_CacheMatchesServerRepresentation(t *testing.T) {
	b := newFakeBackend()
	defer b.close()
	// The backend already holds a line the client has never seen.
	b.cart = []models.CartItem{{ItemID: "m9", Name: "Idli", Price: 60, Quantity: 1}}

	store, _ := loggedInStore(t, b)
	if res := store.AddToCart(context.Background(), models.MenuItem{ID: "m1", Name: "Dosa", Price: 120}, 1); !res.Success {
		t.Fatalf("add failed: %s", res.Error)
	}

	// The cache is replaced by the server's full representation, not
	// patched locally.
	if cart := store.Cart(); len(cart) != 2 {
		t.Errorf("expected the server's two lines, got %+v", cart)
	}
}

func TestUpdateCartItem_ZeroQuantityRemoves(t *testing.T) {
	b := newFakeBackend()
	defer b.close()
	b.cart = []models.CartItem{{ItemID: "m1", Name: "Dosa", Price: 120, Quantity: 2}}

	store, _ := loggedInStore(t, b)
	if res := store.UpdateCartItem(context.Background(), "m1", 0); !res.Success {
		t.Fatalf("update failed: %s", res.Error)
	}

	if b.count("DELETE /api/cart/m1") != 1 {
		t.Errorf("quantity zero must issue a removal")
	}
	if b.count("PUT /api/cart/m1") != 0 {
		t.Errorf("quantity zero must not issue an update")
	}
	if cart := store.Cart(); len(cart) != 0 {
		t.Errorf("expected empty cart, got %+v", cart)
	}
}

func TestUpdateCartItem_SetsQuantity(t *testing.T) {
	b := newFakeBackend()
	defer b.close()
	b.cart = []models.CartItem{{ItemID: "m1", Name: "Dosa", Price: 120, Quantity: 2}}

	store, _ := loggedInStore(t, b)
	if res := store.UpdateCartItem(context.Background(), "m1", 5); !res.Success {
		t.Fatalf("update failed: %s", res.Error)
	}
	if cart := store.Cart(); len(cart) != 1 || cart[0].Quantity != 5 {
		t.Errorf("unexpected cart: %+v", cart)
	}
}

func TestRemoveFromCart(t *testing.T) {
	b := newFakeBackend()
	defer b.close()
	b.cart = []models.CartItem{
		{ItemID: "m1", Name: "Dosa", Price: 120, Quantity: 1},
		{ItemID: "m2", Name: "Idli", Price: 60, Quantity: 1},
	}

	store, _ := loggedInStore(t, b)
	if res := store.RemoveFromCart(context.Background(), "m1"); !res.Success {
		t.Fatalf("remove failed: %s", res.Error)
	}
	cart := store.Cart()
	if len(cart) != 1 || cart[0].ItemID != "m2" {
		t.Errorf("unexpected cart: %+v", cart)
	}
}

func TestCart_FailedMutationLeavesCacheUntouched(t *testing.T) {
	b := newFakeBackend()
	defer b.close()
	b.cart = []models.CartItem{{ItemID: "m1", Name: "Dosa", Price: 120, Quantity: 1}}

	store, _ := loggedInStore(t, b)
	b.srv.Close() // backend goes away

	res := store.AddToCart(context.Background(), models.MenuItem{ID: "m2", Name: "Idli", Price: 60}, 1)
	if res.Success {
		t.Fatalf("expected a transport failure")
	}
	if cart := store.Cart(); len(cart) != 1 || cart[0].ItemID != "m1" {
		t.Errorf("failed mutation must leave the cache untouched: %+v", cart)
	}
}
