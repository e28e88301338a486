package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadUsersFallback(t *testing.T) {
	users := loadUsers("", "")
	assert.Equal(t, fallbackUsers, users)
}

func TestLoadUsersEnv(t *testing.T) {
	users := loadUsers("", "alice:secret, bob:hunter2 ,, broken")
	assert.Equal(t, map[string]string{"alice": "secret", "bob": "hunter2"}, users)
}

func TestLoadUsersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"carol":"pw"}`), 0o600))

	users := loadUsers(path, "alice:ignored")
	assert.Equal(t, map[string]string{"carol": "pw"}, users)
}

func TestLoadUsersBadFileFallsThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	users := loadUsers(path, "alice:secret")
	assert.Equal(t, map[string]string{"alice": "secret"}, users)
}

func TestCheckCredentials(t *testing.T) {
	users := map[string]string{"admin": "ebay2024"}
	assert.True(t, checkCredentials(users, "admin", "ebay2024"))
	assert.False(t, checkCredentials(users, "admin", "wrong"))
	assert.False(t, checkCredentials(users, "nobody", "ebay2024"))
	assert.False(t, checkCredentials(users, "", ""))
}

func TestSessionLifecycle(t *testing.T) {
	s := NewSessionStore(time.Hour)
	token := s.Create("admin")
	require.NotEmpty(t, token)

	sess, ok := s.Lookup(token)
	require.True(t, ok)
	assert.Equal(t, "admin", sess.User)

	s.Destroy(token)
	_, ok = s.Lookup(token)
	assert.False(t, ok)
}

func TestSessionLazyExpiry(t *testing.T) {
	s := NewSessionStore(time.Hour)
	token := s.Create("admin")

	s.mu.Lock()
	s.sessions[token] = Session{User: "admin", Expires: time.Now().Add(-time.Minute)}
	s.mu.Unlock()

	_, ok := s.Lookup(token)
	assert.False(t, ok)
	assert.Zero(t, s.Len(), "expired session should be deleted on lookup")
}

func TestSessionSweep(t *testing.T) {
	s := NewSessionStore(time.Hour)
	live := s.Create("admin")
	dead := s.Create("user1")

	s.mu.Lock()
	s.sessions[dead] = Session{User: "user1", Expires: time.Now().Add(-time.Minute)}
	s.mu.Unlock()

	assert.Equal(t, 1, s.Sweep(time.Now()))
	assert.Equal(t, 1, s.Len())
	_, ok := s.Lookup(live)
	assert.True(t, ok)
}
