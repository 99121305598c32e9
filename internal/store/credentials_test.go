// internal/store/credentials_test.go
package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/versehub/versehub/internal/auth"
	"github.com/versehub/versehub/internal/domain"
)

func newTestCredential(username string) *domain.Credential {
	return &domain.Credential{
		ID:           username + "-id",
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$2a$10$fakefakefakefakefakefakefakefakefakefakefakefakefakef",
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestLookupAbsentIsNotAnError(t *testing.T) {
	s := NewCredentialStore()

	record, found := s.Lookup("nobody")
	if found || record != nil {
		t.Errorf("expected absence, got %+v", record)
	}
}

func TestInsertAndLookup(t *testing.T) {
	assert := assert.New(t)
	s := NewCredentialStore()

	assert.NoError(s.Insert(newTestCredential("alice")))

	record, found := s.Lookup("alice")
	assert.True(found)
	assert.Equal("alice", record.Username)
	// No scopes supplied: the default scope set applies.
	assert.Equal([]string{"user"}, record.Scopes)
}

func TestInsertConflictLeavesExistingRecordUntouched(t *testing.T) {
	assert := assert.New(t)
	s := NewCredentialStore()

	original := newTestCredential("bob")
	original.PasswordHash = "original-hash"
	assert.NoError(s.Insert(original))

	dupe := newTestCredential("bob")
	dupe.PasswordHash = "attacker-hash"
	assert.ErrorIs(s.Insert(dupe), ErrUsernameTaken)

	record, found := s.Lookup("bob")
	assert.True(found)
	assert.Equal("original-hash", record.PasswordHash)
}

func TestConcurrentInsertSameUsername(t *testing.T) {
	s := NewCredentialStore()

	const attempts = 32
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			record := newTestCredential("carol")
			record.PasswordHash = fmt.Sprintf("hash-%d", i)
			errs[i] = s.Insert(record)
		}(i)
	}
	wg.Wait()

	// Exactly one insert wins; the rest observe the conflict.
	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else if err != ErrUsernameTaken {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Errorf("expected exactly 1 successful insert, got %d", successes)
	}
	if s.Count() != 1 {
		t.Errorf("expected 1 stored record, got %d", s.Count())
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	assert := assert.New(t)
	s := NewCredentialStore()
	assert.NoError(s.Insert(newTestCredential("dave")))

	record, _ := s.Lookup("dave")
	record.PasswordHash = "mutated"
	record.Scopes = append(record.Scopes, "admin")

	fresh, _ := s.Lookup("dave")
	assert.NotEqual("mutated", fresh.PasswordHash)
	assert.Equal([]string{"user"}, fresh.Scopes)
}

func TestUpdatePassword(t *testing.T) {
	assert := assert.New(t)
	s := NewCredentialStore()
	assert.NoError(s.Insert(newTestCredential("erin")))

	assert.NoError(s.UpdatePassword("erin", "new-hash"))
	record, _ := s.Lookup("erin")
	assert.Equal("new-hash", record.PasswordHash)

	assert.ErrorIs(s.UpdatePassword("nobody", "x"), ErrUserNotFound)
}

func TestSeedAccounts(t *testing.T) {
	assert := assert.New(t)
	s := NewCredentialStore()
	assert.NoError(s.Seed())

	admin, found := s.Lookup("admin")
	assert.True(found)
	assert.Contains(admin.Scopes, "admin")
	assert.Contains(admin.Scopes, "user")
	assert.True(auth.CheckPasswordHash("admin123", admin.PasswordHash))

	demo, found := s.Lookup("demo")
	assert.True(found)
	assert.Equal([]string{"user"}, demo.Scopes)
}

func TestListSortedByUsername(t *testing.T) {
	assert := assert.New(t)
	s := NewCredentialStore()
	for _, name := range []string{"zara", "alice", "mike"} {
		assert.NoError(s.Insert(newTestCredential(name)))
	}

	records := s.List()
	assert.Len(records, 3)
	assert.Equal("alice", records[0].Username)
	assert.Equal("mike", records[1].Username)
	assert.Equal("zara", records[2].Username)
}
