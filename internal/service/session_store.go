package service

import (
	"strings"
	"sync"
	"time"

	"quickchat/internal/domain"
)

// SessionStore guarda la identidad autenticada por id de sesion.
type SessionStore interface {
	Set(sid string, identity domain.Identity, ttl time.Duration) error
	Get(sid string) (domain.Identity, bool, error)
	Clear(sid string) error
}

type sessionEntry struct {
	identity  domain.Identity
	expiresAt time.Time
}

type memorySessionStore struct {
	mu    sync.Mutex
	items map[string]sessionEntry
}

func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{
		items: make(map[string]sessionEntry),
	}
}

func (s *memorySessionStore) Set(sid string, identity domain.Identity, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(sid) == "" {
		return nil
	}
	s.items[sid] = sessionEntry{
		identity:  identity,
		expiresAt: time.Now().UTC().Add(ttl),
	}
	return nil
}

func (s *memorySessionStore) Get(sid string) (domain.Identity, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.items[sid]
	if !ok {
		return domain.Identity{}, false, nil
	}
	if time.Now().UTC().After(entry.expiresAt) {
		delete(s.items, sid)
		return domain.Identity{}, false, nil
	}
	return entry.identity, true, nil
}

func (s *memorySessionStore) Clear(sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, sid)
	return nil
}
