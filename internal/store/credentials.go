// internal/store/credentials.go
package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/versehub/versehub/internal/auth"
	"github.com/versehub/versehub/internal/domain"
	"github.com/versehub/versehub/internal/logger"
)

// Specific errors for credential operations
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already registered")
)

var (
	customLog = logger.NewLogger()
)

// DefaultScopes are attached to every credential created through
// registration.
var DefaultScopes = []string{"user"}

// seedAccount is a built-in credential created on store init.
type seedAccount struct {
	username string
	email    string
	password string
	scopes   []string
}

var seedAccounts = []seedAccount{
	{username: "admin", email: "admin@versehub.dev", password: "admin123", scopes: []string{"admin", "user"}},
	{username: "demo", email: "demo@versehub.dev", password: "demo1234", scopes: []string{"user"}},
}

// CredentialStore holds known accounts in process memory. It is the only
// shared mutable state in the system; all access goes through the mutex,
// and Insert is an atomic check-and-insert so concurrent registrations for
// the same username cannot both succeed. The store resets to its seed
// accounts on every process start.
type CredentialStore struct {
	mu      sync.RWMutex
	records map[string]*domain.Credential
}

// NewCredentialStore creates an empty credential store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{
		records: make(map[string]*domain.Credential),
	}
}

// Seed populates the store with the built-in accounts. Called once at
// startup; hashing happens here so no plaintext is retained.
func (s *CredentialStore) Seed() error {
	for _, acct := range seedAccounts {
		hash, err := auth.HashPassword(acct.password)
		if err != nil {
			return err
		}
		record := &domain.Credential{
			ID:           uuid.New().String(),
			Username:     acct.username,
			Email:        acct.email,
			PasswordHash: hash,
			Scopes:       acct.scopes,
			IsActive:     true,
			CreatedAt:    time.Now().UTC(),
		}
		if err := s.Insert(record); err != nil {
			return err
		}
	}
	customLog.Printf("Credential store seeded with %d built-in accounts", len(seedAccounts))
	return nil
}

// Lookup returns the credential for an exact username match. Absence is a
// normal outcome, not an error. The returned record is a copy; mutating it
// does not touch the store.
func (s *CredentialStore) Lookup(username string) (*domain.Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[username]
	if !ok {
		return nil, false
	}
	return copyCredential(record), true
}

// Insert adds a new credential. It fails with ErrUsernameTaken if the
// username already exists; the existing record is left untouched. A record
// without scopes gets DefaultScopes.
func (s *CredentialStore) Insert(record *domain.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[record.Username]; exists {
		return ErrUsernameTaken
	}
	if len(record.Scopes) == 0 {
		record.Scopes = append([]string(nil), DefaultScopes...)
	}
	s.records[record.Username] = copyCredential(record)
	return nil
}

// UpdatePassword swaps the stored hash for an existing credential.
func (s *CredentialStore) UpdatePassword(username, newHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[username]
	if !ok {
		return ErrUserNotFound
	}
	record.PasswordHash = newHash
	return nil
}

// List returns all credentials sorted by username.
func (s *CredentialStore) List() []*domain.Credential {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Credential, 0, len(s.records))
	for _, record := range s.records {
		out = append(out, copyCredential(record))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

// Count returns the number of stored credentials.
func (s *CredentialStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func copyCredential(record *domain.Credential) *domain.Credential {
	clone := *record
	clone.Scopes = append([]string(nil), record.Scopes...)
	return &clone
}
