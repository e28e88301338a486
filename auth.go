package main

import (
	"crypto/subtle"
	"encoding/json"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Credential handling. Plain username/password pairs, intentionally
// simple: this guards a team-internal dashboard, not customer data.
// Pairs come from DASHBOARD_USERS ("user:pass,user:pass") or a JSON
// secrets file; the compiled-in fallback matches the historical
// defaults and only applies when nothing else is configured.

var fallbackUsers = map[string]string{
	"admin": "ebay2024",
	"user1": "password1",
}

// loadUsers resolves the credential table. Order: secrets file, env
// var, fallback.
func loadUsers(usersFile, usersEnv string) map[string]string {
	if usersFile != "" {
		raw, err := os.ReadFile(usersFile)
		if err != nil {
			log.Printf("[AUTH] cannot read users file %s: %v", usersFile, err)
		} else {
			var users map[string]string
			if err := json.Unmarshal(raw, &users); err != nil {
				log.Printf("[AUTH] cannot parse users file %s: %v", usersFile, err)
			} else if len(users) > 0 {
				return users
			}
		}
	}

	if usersEnv != "" {
		users := make(map[string]string)
		for _, pair := range strings.Split(usersEnv, ",") {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			name, pass, ok := strings.Cut(pair, ":")
			if !ok || name == "" || pass == "" {
				log.Printf("[AUTH] ignoring malformed DASHBOARD_USERS entry")
				continue
			}
			users[strings.TrimSpace(name)] = pass
		}
		if len(users) > 0 {
			return users
		}
	}

	log.Printf("[AUTH] no credentials configured, using built-in fallback users")
	return fallbackUsers
}

// checkCredentials compares in constant time. The dummy compare on the
// unknown-user path keeps timing identical either way.
func checkCredentials(users map[string]string, username, password string) bool {
	want, ok := users[username]
	if !ok {
		subtle.ConstantTimeCompare([]byte(password), []byte("-"))
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(want)) == 1
}

// -------- Sessions --------

type Session struct {
	User    string
	Expires time.Time
}

// SessionStore is an in-memory token→session map with TTL. Restart
// logs everyone out, which is fine for this tool.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	ttl      time.Duration
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionStore{
		sessions: make(map[string]Session),
		ttl:      ttl,
	}
}

// Create issues a fresh random token for a user.
func (s *SessionStore) Create(user string) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = Session{User: user, Expires: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return token
}

// Lookup returns the session for a token, expiring lazily.
func (s *SessionStore) Lookup(token string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return Session{}, false
	}
	if time.Now().After(sess.Expires) {
		delete(s.sessions, token)
		return Session{}, false
	}
	return sess, true
}

func (s *SessionStore) Destroy(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Sweep drops expired sessions; runs on the janitor cadence.
func (s *SessionStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for token, sess := range s.sessions {
		if now.After(sess.Expires) {
			delete(s.sessions, token)
			n++
		}
	}
	return n
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
