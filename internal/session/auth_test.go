package session

import (
	"context"
	"testing"

	"github.com/tastybites/tastybites-client/internal/models"
	"github.com/tastybites/tastybites-client/internal/storage"
)

func TestLogin_Success(t *testing.T) {
	b := newFakeBackend()
	defer b.close()
	b.cart = []models.CartItem{{ItemID: "m1", Name: "Dosa", Price: 120, Quantity: 2}}
	b.notifications = []models.Notification{
		{ID: "n1", Title: "Welcome", Read: false},
		{ID: "n2", Title: "Offer", Read: true},
	}

	store, file := newTestStore(t, b)
	res := store.Login(context.Background(), testEmail, testPassword)
	if !res.Success {
		t.Fatalf("login failed: %s", res.Error)
	}

	if store.Token() != testToken {
		t.Errorf("token = %q; want %q", store.Token(), testToken)
	}
	user := store.User()
	if user == nil || user.Email != testEmail {
		t.Fatalf("unexpected user: %+v", user)
	}

	// All four caches are hydrated from the backend.
	if cart := store.Cart(); len(cart) != 1 || cart[0].ItemID != "m1" {
		t.Errorf("unexpected cart: %+v", cart)
	}
	if got := store.UnreadCount(); got != 1 {
		t.Errorf("unread = %d; want 1", got)
	}

	// The session survives a restart via the file.
	st, err := file.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if st.Token != testToken || st.User == nil || st.User.Email != testEmail {
		t.Errorf("unexpected persisted state: %+v", st)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	b := newFakeBackend()
	defer b.close()

	store, _ := newTestStore(t, b)
	res := store.Login(context.Background(), testEmail, "WrongPass1!")
	if res.Success {
		t.Fatalf("expected failure")
	}
	if res.Error != "Invalid email or password" {
		t.Errorf("error = %q; want the server message", res.Error)
	}
	if store.Token() != "" || store.User() != nil {
		t.Errorf("failed login must not leave a session behind")
	}
}

func TestLogin_MissingInput(t *testing.T) {
	b := newFakeBackend()
	defer b.close()

	store, _ := newTestStore(t, b)
	if res := store.Login(context.Background(), "", "x"); res.Success {
		t.Errorf("expected failure for empty email")
	}
	if b.total() != 0 {
		t.Errorf("validation failures must not reach the network, saw %d requests", b.total())
	}
}

func TestLogin_CacheHydrationFailureIsIsolated(t *testing.T) {
	b := newFakeBackend()
	defer b.close()
	b.cart = []models.CartItem{{ItemID: "m1", Name: "Dosa", Price: 120, Quantity: 1}}
	b.ordersStatus = 500

	store, _ := newTestStore(t, b)
	res := store.Login(context.Background(), testEmail, testPassword)
	if !res.Success {
		t.Fatalf("a broken orders endpoint must not fail the login: %s", res.Error)
	}
	if cart := store.Cart(); len(cart) != 1 {
		t.Errorf("cart hydration affected by the orders failure: %+v", cart)
	}
	if orders := store.Orders(); len(orders) != 0 {
		t.Errorf("orders cache must default to empty, got %+v", orders)
	}
}

func TestSignup_WeakPasswordNeverHitsNetwork(t *testing.T) {
	b := newFakeBackend()
	defer b.close()

	store, _ := newTestStore(t, b)
	weak := []string{
		"short1!",    // too short
		"alllower1!", // no uppercase
		"ALLUPPER1!", // no lowercase
		"NoDigits!!", // no digit
		"NoSpecial1", // no special
		"Bad Pass1!", // space is outside the allowed set
	}
	for _, pw := range weak {
		res := store.Signup(context.Background(), "Alice", testEmail, pw)
		if res.Success {
			t.Errorf("Signup(%q) succeeded; want policy failure", pw)
		}
		if res.Error != errWeakPassword {
			t.Errorf("Signup(%q) error = %q; want policy message", pw, res.Error)
		}
	}
	if b.total() != 0 {
		t.Errorf("weak passwords must not reach the network, saw %d requests", b.total())
	}
}

func TestSignup_Success(t *testing.T) {
	b := newFakeBackend()
	defer b.close()

	store, _ := newTestStore(t, b)
	res := store.Signup(context.Background(), "Alice", testEmail, testPassword)
	if !res.Success {
		t.Fatalf("signup failed: %s", res.Error)
	}
	// Registration alone does not authenticate; the OTP step does that.
	if store.Token() != "" {
		t.Errorf("signup must not install a token")
	}
	if b.count("POST /api/auth/register") != 1 {
		t.Errorf("expected one register call")
	}
}

func TestVerifySignupOTP(t *testing.T) {
	b := newFakeBackend()
	defer b.close()

	store, _ := newTestStore(t, b)
	if res := store.VerifySignupOTP(context.Background(), testEmail, "000000"); res.Success {
		t.Errorf("expected failure for wrong OTP")
	}

	res := store.VerifySignupOTP(context.Background(), testEmail, "123456")
	if !res.Success {
		t.Fatalf("verify failed: %s", res.Error)
	}
	if store.Token() != testToken {
		t.Errorf("token = %q; want %q", store.Token(), testToken)
	}
	// A fresh account starts with empty caches instead of a hydration
	// round-trip.
	if len(store.Cart()) != 0 || len(store.Favorites()) != 0 {
		t.Errorf("new account caches must be empty")
	}
}

func TestLogout_PurgesEverything(t *testing.T) {
	b := newFakeBackend()
	defer b.close()
	b.cart = []models.CartItem{{ItemID: "m1", Name: "Dosa", Price: 120, Quantity: 1}}

	store, file := loggedInStore(t, b)
	before := b.total()

	store.Logout()

	if b.total() != before {
		t.Errorf("logout must be client-only, saw extra requests")
	}
	if store.Token() != "" || store.User() != nil || store.LastOrder() != nil {
		t.Errorf("logout left session state behind")
	}
	if len(store.Cart()) != 0 || len(store.Favorites()) != 0 || len(store.Orders()) != 0 || len(store.Notifications()) != 0 {
		t.Errorf("logout left cache state behind")
	}
	if store.UnreadCount() != 0 {
		t.Errorf("unread = %d; want 0", store.UnreadCount())
	}

	// Durable state is purged in the same step: a reload is anonymous.
	st, err := file.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if st.Token != "" || st.User != nil {
		t.Errorf("session file not purged: %+v", st)
	}
}

func TestBootstrap_NoSavedSession(t *testing.T) {
	b := newFakeBackend()
	defer b.close()

	store, _ := newTestStore(t, b)
	if !store.Loading() {
		t.Errorf("store must start in the loading state")
	}
	store.Bootstrap(context.Background())

	if store.Loading() {
		t.Errorf("bootstrap must clear the loading flag")
	}
	if store.Token() != "" || store.User() != nil {
		t.Errorf("expected an anonymous session")
	}
	if b.total() != 0 {
		t.Errorf("anonymous bootstrap must not reach the network, saw %d requests", b.total())
	}
}

func TestBootstrap_RestoresSession(t *testing.T) {
	b := newFakeBackend()
	defer b.close()
	b.user.Name = "Alice Fresh"
	b.cart = []models.CartItem{{ItemID: "m1", Name: "Dosa", Price: 120, Quantity: 1}}

	store, file := newTestStore(t, b)
	seed := storage.State{
		Token:     testToken,
		User:      &models.User{ID: "u1", Name: "Alice Stale", Email: testEmail},
		LastOrder: &models.LastOrder{Order: models.Order{ID: "o9"}, EstimatedDelivery: "35-45 minutes"},
	}
	if err := file.Save(seed); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	store.Bootstrap(context.Background())

	if store.Loading() {
		t.Errorf("bootstrap must clear the loading flag")
	}
	user := store.User()
	if user == nil || user.Name != "Alice Fresh" {
		t.Errorf("profile not refreshed from the backend: %+v", user)
	}
	if cart := store.Cart(); len(cart) != 1 {
		t.Errorf("cart not hydrated: %+v", cart)
	}
	if lo := store.LastOrder(); lo == nil || lo.ID != "o9" {
		t.Errorf("last-order snapshot not restored: %+v", lo)
	}
}

func TestBootstrap_ExpiredTokenForcesLogout(t *testing.T) {
	b := newFakeBackend()
	defer b.close()
	b.profileStatus = 401

	store, file := newTestStore(t, b)
	seed := storage.State{Token: "stale-token", User: &models.User{ID: "u1", Email: testEmail}}
	if err := file.Save(seed); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	store.Bootstrap(context.Background())

	if store.Token() != "" || store.User() != nil {
		t.Errorf("expired token must force a logout")
	}
	st, err := file.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if st.Token != "" {
		t.Errorf("session file must be purged after a forced logout")
	}
}

func TestBootstrap_BackendOutageKeepsSession(t *testing.T) {
	b := newFakeBackend()
	defer b.close()
	b.profileStatus = 500

	store, _ := newTestStore(t, b)
	seed := storage.State{Token: testToken, User: &models.User{ID: "u1", Name: "Alice", Email: testEmail}}
	if err := store.file.Save(seed); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	store.Bootstrap(context.Background())

	// A 500 is not an auth failure: the persisted session stays usable.
	if store.Token() != testToken {
		t.Errorf("token dropped on a non-auth failure")
	}
	if user := store.User(); user == nil || user.Name != "Alice" {
		t.Errorf("user dropped on a non-auth failure: %+v", user)
	}
}
