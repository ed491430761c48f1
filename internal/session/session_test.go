package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/tastybites/tastybites-client/internal/api"
	"github.com/tastybites/tastybites-client/internal/models"
	"github.com/tastybites/tastybites-client/internal/storage"
)

const (
	testEmail    = "a@b.com"
	testPassword = "Passw0rd!"
	testToken    = "test-token"
)

// fakeBackend is a stateful in-memory stand-in for the REST backend. It
// implements the server-side merge semantics the store relies on: repeated
// cart adds accumulate quantity, mutations return the full updated list.
type fakeBackend struct {
	mu sync.Mutex

	srv      *httptest.Server
	requests map[string]int

	user          models.User
	cart          []models.CartItem
	favorites     []models.FavoriteItem
	orders        []models.Order
	notifications []models.Notification

	// profileStatus and ordersStatus override the corresponding response
	// codes when non-zero, to simulate expired tokens and outages.
	profileStatus int
	ordersStatus  int
}

func newFakeBackend() *fakeBackend {
	b := &fakeBackend{
		requests: map[string]int{},
		user: models.User{
			ID:    "u1",
			Name:  "Alice",
			Email: testEmail,
			Role:  models.RoleUser,
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", b.handleLogin)
	mux.HandleFunc("POST /api/auth/register", b.handleRegister)
	mux.HandleFunc("POST /api/auth/verify-signup-otp", b.handleVerifyOTP)
	mux.HandleFunc("GET /api/auth/profile", b.handleProfile)
	mux.HandleFunc("PUT /api/auth/profile", b.handleUpdateProfile)
	mux.HandleFunc("GET /api/menu", b.handleMenu)
	mux.HandleFunc("GET /api/menu/categories", b.handleCategories)
	mux.HandleFunc("GET /api/cart", b.handleCart)
	mux.HandleFunc("POST /api/cart", b.handleAddCart)
	mux.HandleFunc("PUT /api/cart/{id}", b.handleUpdateCart)
	mux.HandleFunc("DELETE /api/cart/{id}", b.handleRemoveCart)
	mux.HandleFunc("GET /api/favorites", b.handleFavorites)
	mux.HandleFunc("POST /api/favorites", b.handleAddFavorite)
	mux.HandleFunc("DELETE /api/favorites/{id}", b.handleRemoveFavorite)
	mux.HandleFunc("GET /api/orders", b.handleOrders)
	mux.HandleFunc("POST /api/orders", b.handlePlaceOrder)
	mux.HandleFunc("GET /api/notifications", b.handleNotifications)
	mux.HandleFunc("POST /api/notifications/read-all", b.handleReadAll)
	mux.HandleFunc("POST /api/notifications/{id}/read", b.handleReadOne)
	mux.HandleFunc("DELETE /api/notifications", b.handleClearNotifications)
	mux.HandleFunc("DELETE /api/notifications/{id}", b.handleDeleteNotification)
	mux.HandleFunc("PUT /api/notifications/preferences", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusOK, map[string]string{"message": "ok"})
	})

	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests[r.Method+" "+r.URL.Path]++
		b.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	return b
}

func (b *fakeBackend) close() { b.srv.Close() }

// count returns the number of requests seen for "METHOD /path".
func (b *fakeBackend) count(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests[key]
}

// total returns the total number of requests seen.
func (b *fakeBackend) total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.requests {
		n += c
	}
	return n
}

func writeBody(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (b *fakeBackend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct{ Email, Password string }
	json.NewDecoder(r.Body).Decode(&req)
	b.mu.Lock()
	defer b.mu.Unlock()
	if req.Email != testEmail || req.Password != testPassword {
		writeBody(w, http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
		return
	}
	writeBody(w, http.StatusOK, map[string]any{"token": testToken, "user": b.user})
}

func (b *fakeBackend) handleRegister(w http.ResponseWriter, r *http.Request) {
	writeBody(w, http.StatusCreated, map[string]string{"message": "OTP sent"})
}

func (b *fakeBackend) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct{ Email, OTP string }
	json.NewDecoder(r.Body).Decode(&req)
	if req.OTP != "123456" {
		writeBody(w, http.StatusBadRequest, map[string]string{"error": "Invalid or expired OTP"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	writeBody(w, http.StatusOK, map[string]any{"token": testToken, "user": b.user})
}

func (b *fakeBackend) authorized(r *http.Request) bool {
	return r.Header.Get("Authorization") == "Bearer "+testToken
}

func (b *fakeBackend) handleProfile(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	status := b.profileStatus
	user := b.user
	b.mu.Unlock()
	if status != 0 {
		writeBody(w, status, map[string]string{"error": "Invalid token"})
		return
	}
	if !b.authorized(r) {
		writeBody(w, http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
		return
	}
	writeBody(w, http.StatusOK, user)
}

func (b *fakeBackend) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           string `json:"name"`
		ProfilePicture string `json:"profilePicture"`
	}
	json.NewDecoder(r.Body).Decode(&req)
	b.mu.Lock()
	defer b.mu.Unlock()
	if req.Name != "" {
		b.user.Name = req.Name
	}
	writeBody(w, http.StatusOK, b.user)
}

func (b *fakeBackend) handleMenu(w http.ResponseWriter, r *http.Request) {
	writeBody(w, http.StatusOK, map[string]any{"items": []models.MenuItem{
		{ID: "m1", Name: "Dosa", Price: 120, Category: "South Indian", Type: models.TypeVeg},
	}})
}

func (b *fakeBackend) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeBody(w, http.StatusOK, map[string]any{"categories": []models.Category{
		{ID: "c1", Name: "South Indian"},
	}})
}

func (b *fakeBackend) writeCart(w http.ResponseWriter) {
	writeBody(w, http.StatusOK, map[string]any{"items": b.cart})
}

func (b *fakeBackend) handleCart(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writeCart(w)
}

func (b *fakeBackend) handleAddCart(w http.ResponseWriter, r *http.Request) {
	var req models.CartItem
	json.NewDecoder(r.Body).Decode(&req)
	b.mu.Lock()
	defer b.mu.Unlock()
	merged := false
	for i := range b.cart {
		if b.cart[i].ItemID == req.ItemID {
			b.cart[i].Quantity += req.Quantity
			merged = true
			break
		}
	}
	if !merged {
		b.cart = append(b.cart, req)
	}
	b.writeCart(w)
}

func (b *fakeBackend) handleUpdateCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	json.NewDecoder(r.Body).Decode(&req)
	id := r.PathValue("id")
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.cart {
		if b.cart[i].ItemID == id {
			b.cart[i].Quantity = req.Quantity
		}
	}
	b.writeCart(w)
}

func (b *fakeBackend) handleRemoveCart(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.cart[:0]
	for _, it := range b.cart {
		if it.ItemID != id {
			out = append(out, it)
		}
	}
	b.cart = out
	b.writeCart(w)
}

func (b *fakeBackend) writeFavorites(w http.ResponseWriter) {
	writeBody(w, http.StatusOK, map[string]any{"items": b.favorites})
}

func (b *fakeBackend) handleFavorites(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writeFavorites(w)
}

func (b *fakeBackend) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	var req models.FavoriteItem
	json.NewDecoder(r.Body).Decode(&req)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.favorites = append(b.favorites, req)
	b.writeFavorites(w)
}

func (b *fakeBackend) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.favorites[:0]
	for _, it := range b.favorites {
		if it.ItemID != id {
			out = append(out, it)
		}
	}
	b.favorites = out
	b.writeFavorites(w)
}

func (b *fakeBackend) handleOrders(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ordersStatus != 0 {
		writeBody(w, b.ordersStatus, map[string]string{"error": "orders unavailable"})
		return
	}
	writeBody(w, http.StatusOK, map[string]any{"orders": b.orders})
}

func (b *fakeBackend) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req api.PlaceOrderRequest
	json.NewDecoder(r.Body).Decode(&req)
	b.mu.Lock()
	defer b.mu.Unlock()
	order := models.Order{
		ID:         "o-new",
		Items:      req.Items,
		TotalPrice: req.TotalPrice,
		Status:     models.OrderPending,
	}
	b.orders = append([]models.Order{order}, b.orders...)
	b.cart = nil
	writeBody(w, http.StatusCreated, order)
}

func (b *fakeBackend) handleNotifications(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeBody(w, http.StatusOK, map[string]any{
		"notifications": b.notifications,
		"unreadCount":   models.CountUnread(b.notifications),
	})
}

func (b *fakeBackend) handleReadAll(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.notifications {
		b.notifications[i].Read = true
	}
	writeBody(w, http.StatusOK, map[string]string{"message": "ok"})
}

func (b *fakeBackend) handleReadOne(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.notifications {
		if b.notifications[i].ID == id {
			b.notifications[i].Read = true
		}
	}
	writeBody(w, http.StatusOK, map[string]string{"message": "ok"})
}

func (b *fakeBackend) handleClearNotifications(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notifications = nil
	writeBody(w, http.StatusOK, map[string]string{"message": "ok"})
}

func (b *fakeBackend) handleDeleteNotification(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.notifications[:0]
	for _, n := range b.notifications {
		if n.ID != id {
			out = append(out, n)
		}
	}
	b.notifications = out
	writeBody(w, http.StatusOK, map[string]string{"message": "ok"})
}

// newTestStore wires a Store to the fake backend with a temp session file.
func newTestStore(t *testing.T, b *fakeBackend) (*Store, *storage.SessionFile) {
	t.Helper()
	file := storage.NewSessionFile(filepath.Join(t.TempDir(), "session.json"))
	client := api.New(b.srv.URL, nil)
	return New(client, file, nil), file
}

// loggedInStore returns a store already authenticated against the backend.
func loggedInStore(t *testing.T, b *fakeBackend) (*Store, *storage.SessionFile) {
	t.Helper()
	store, file := newTestStore(t, b)
	res := store.Login(context.Background(), testEmail, testPassword)
	if !res.Success {
		t.Fatalf("login failed: %s", res.Error)
	}
	return store, file
}

// requireGuardFailure asserts the result is the not-logged-in guard.
func requireGuardFailure(t *testing.T, res Result) {
	t.Helper()
	if res.Success {
		t.Fatalf("expected guard failure, got success")
	}
	if !strings.Contains(res.Error, "log in") {
		t.Errorf("error = %q; want a login prompt", res.Error)
	}
}
