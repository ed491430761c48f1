// Package session implements the client-side session store: the single
// source of truth for the authenticated user, the bearer token, and the
// cart, favorites, orders, and notifications caches. All mutation flows
// through the store's methods; no other component writes this state.
package session

import (
	"go.uber.org/zap"

	"github.com/tastybites/tastybites-client/internal/api"
	"github.com/tastybites/tastybites-client/internal/models"
	"github.com/tastybites/tastybites-client/internal/storage"

	"sync"
)

// Result is the uniform outcome of a store operation. Presentation code
// never needs to distinguish failure origin: validation, authorization,
// transport, and parse errors all surface here the same way.
type Result struct {
	Success bool
	// Error is a short human-readable message, set when Success is false.
	Error string
}

func ok() Result {
	return Result{Success: true}
}

func fail(msg string) Result {
	return Result{Error: msg}
}

// failErr turns an error into a failed Result, preferring the error's own
// message and falling back to the given default.
func failErr(err error, fallback string) Result {
	if err == nil || err.Error() == "" {
		return fail(fallback)
	}
	return fail(err.Error())
}

// cache identifies one of the store's cache slots for the sequence
// discipline below.
type cache int

const (
	cacheCart cache = iota
	cacheFavorites
	cacheOrders
	cacheNotifications
	cacheCount
)

// Store owns the session state. Methods are safe for concurrent use.
type Store struct {
	api  *api.Client
	file *storage.SessionFile
	log  *zap.Logger

	mu            sync.Mutex
	user          *models.User
	token         string
	cart          []models.CartItem
	favorites     []models.FavoriteItem
	orders        []models.Order
	notifications []models.Notification
	unreadCount   int
	lastOrder     *models.LastOrder
	loading       bool
	authLoading   bool

	// seq holds one ticket counter per cache. A response is applied only
	// if its ticket is still the latest issued for that cache, so when two
	// requests for the same cache race, the latest request wins.
	seq [cacheCount]uint64
}

// New returns a Store bound to the given API client and session file.
// loading stays true until Bootstrap completes.
func New(client *api.Client, file *storage.SessionFile, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		api:           client,
		file:          file,
		log:           log,
		cart:          []models.CartItem{},
		favorites:     []models.FavoriteItem{},
		orders:        []models.Order{},
		notifications: []models.Notification{},
		loading:       true,
	}
}

// take issues a new ticket for the cache.
func (s *Store) take(c cache) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq[c]++
	return s.seq[c]
}

// latest reports whether the ticket is still current for the cache.
// Callers must hold s.mu.
func (s *Store) latest(c cache, ticket uint64) bool {
	return s.seq[c] == ticket
}

// User returns a copy of the current user, or nil when anonymous.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	u.Addresses = append([]models.Address(nil), s.user.Addresses...)
	return &u
}

// Token returns the current bearer token, empty when anonymous.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Loading reports whether the initial bootstrap is still in progress.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// AuthLoading reports whether an authentication operation is in flight.
func (s *Store) AuthLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authLoading
}

// Cart returns a copy of the cart cache.
func (s *Store) Cart() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CartItem(nil), s.cart...)
}

// Favorites returns a copy of the favorites cache.
func (s *Store) Favorites() []models.FavoriteItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.FavoriteItem(nil), s.favorites...)
}

// Orders returns a copy of the order-history cache.
func (s *Store) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Order(nil), s.orders...)
}

// Notifications returns a copy of the notifications cache.
func (s *Store) Notifications() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Notification(nil), s.notifications...)
}

// UnreadCount returns the derived unread-notification counter.
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unreadCount
}

// LastOrder returns the durable last-order snapshot, or nil.
func (s *Store) LastOrder() *models.LastOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastOrder == nil {
		return nil
	}
	lo := *s.lastOrder
	return &lo
}

func (s *Store) setAuthLoading(v bool) {
	s.mu.Lock()
	s.authLoading = v
	s.mu.Unlock()
}

// requireToken is the auth guard shared by every authenticated operation.
func (s *Store) requireToken() (string, Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", fail("Please log in first")
	}
	return s.token, ok()
}

// requireAdmin short-circuits privileged operations for non-admin users.
// This is a UX guard only; the backend independently re-validates the role
// on every privileged endpoint.
func (s *Store) requireAdmin() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return fail("Please log in first")
	}
	if !s.user.IsAdmin() {
		return fail("Admin access required")
	}
	return ok()
}

// persist writes the durable slice of the current state. Callers must hold
// s.mu. Persistence failures are logged, not surfaced: the in-memory
// session stays usable either way.
func (s *Store) persist() {
	st := storage.State{
		Token:     s.token,
		User:      s.user,
		LastOrder: s.lastOrder,
	}
	if err := s.file.Save(st); err != nil {
		s.log.Warn("failed to persist session", zap.Error(err))
	}
}
