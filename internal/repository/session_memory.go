package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/mitre88/go-on-line/internal/domain/game"
	errs "github.com/mitre88/go-on-line/internal/errors"
)

type memorySession struct {
	data    []byte
	expires time.Time // zero means no expiry
}

// MemorySessionStorage is used when no Redis is configured and in tests.
// Sessions are stored encoded so callers never share slices with the store.
// Like the Redis store, every save refreshes the TTL.
type MemorySessionStorage struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	ttl      time.Duration
	now      func() time.Time
}

// NewMemorySessionStorage keeps sessions for ttl after their last save;
// a ttl of zero keeps them forever.
func NewMemorySessionStorage(ttl time.Duration) *MemorySessionStorage {
	return &MemorySessionStorage{
		sessions: make(map[string]memorySession),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *MemorySessionStorage) SaveSession(_ context.Context, session game.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	entry := memorySession{data: data}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ttl > 0 {
		entry.expires = m.now().Add(m.ttl)
	}
	m.sessions[session.ID] = entry
	m.evictExpired()
	return nil
}

func (m *MemorySessionStorage) LoadSession(_ context.Context, id string) (game.Session, error) {
	m.mu.Lock()
	entry, ok := m.sessions[id]
	if ok && m.expired(entry) {
		delete(m.sessions, id)
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return game.Session{}, errs.ErrGameNotFound
	}
	var session game.Session
	err := json.Unmarshal(entry.data, &session)
	return session, err
}

func (m *MemorySessionStorage) expired(entry memorySession) bool {
	return !entry.expires.IsZero() && !m.now().Before(entry.expires)
}

// evictExpired must be called with mu held.
func (m *MemorySessionStorage) evictExpired() {
	for id, entry := range m.sessions {
		if m.expired(entry) {
			delete(m.sessions, id)
		}
	}
}
