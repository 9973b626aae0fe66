// Package auth provides bearer-token sessions for the database-backed variant.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	gocache "github.com/patrickmn/go-cache"
)

// SessionStore maps opaque bearer tokens to user ids. The handlers only ever
// talk to this interface, so the in-memory table can be swapped for a
// persistent or distributed store without touching them.
type SessionStore interface {
	Create(userID int64) (string, error)
	Get(token string) (int64, bool)
	Delete(token string)
}

// MemorySessionStore keeps sessions in process memory. Tokens never expire;
// a restart invalidates all of them.
type MemorySessionStore struct {
	sessions *gocache.Cache
}

var _ SessionStore = (*MemorySessionStore)(nil)

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: gocache.New(gocache.NoExpiration, gocache.NoExpiration),
	}
}

// Create mints a 32-byte random token, hex encoded.
func (s *MemorySessionStore) Create(userID int64) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	token := hex.EncodeToString(b)
	s.sessions.Set(token, userID, gocache.NoExpiration)
	return token, nil
}

func (s *MemorySessionStore) Get(token string) (int64, bool) {
	v, ok := s.sessions.Get(token)
	if !ok {
		return 0, false
	}
	return v.(int64), true
}

func (s *MemorySessionStore) Delete(token string) {
	s.sessions.Delete(token)
}
