// Package storage persists the client session between application runs.
// The token, the user profile, and the last-order snapshot live together in
// a single JSON file so that logout can purge all of them atomically.
package storage

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/tastybites/tastybites-client/internal/models"
)

// DefaultFile is the session file used when no path is configured.
const DefaultFile = "session.json"

// State is the durable slice of the session.
type State struct {
	Token     string            `json:"token,omitempty"`
	User      *models.User      `json:"user,omitempty"`
	LastOrder *models.LastOrder `json:"lastOrder,omitempty"`
}

// SessionFile reads and writes the session state file.
type SessionFile struct {
	path string
	mu   sync.Mutex
}

// NewSessionFile returns a SessionFile backed by path. An empty path falls
// back to DefaultFile in the working directory.
func NewSessionFile(path string) *SessionFile {
	if path == "" {
		path = DefaultFile
	}
	return &SessionFile{path: path}
}

// Load reads the persisted state. A missing file is not an error: it yields
// the zero State, which the caller treats as an anonymous session.
func (s *SessionFile) Load() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var st State
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return st, nil
		}
		return st, err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&st); err != nil {
		return State{}, err
	}
	return st, nil
}

// Save writes the state, replacing any previous contents.
func (s *SessionFile) Save(st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(&st)
}

// Clear removes the session file. A file that never existed counts as
// cleared.
func (s *SessionFile) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
