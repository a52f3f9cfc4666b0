package store

import (
	"context"
	"sync"

	"github.com/viant/authstate/session"
)

// Store is a pluggable persistence layer for provider session state
type Store interface {
	// LoadSession returns persisted session or nil
	LoadSession(ctx context.Context) (*session.Session, error)
	SaveSession(ctx context.Context, s *session.Session) error
	DeleteSession(ctx context.Context) error
	// PutCodeVerifier keeps PKCE verifier until the authorization code is exchanged
	PutCodeVerifier(ctx context.Context, verifier string) error
	// TakeCodeVerifier returns and removes pending PKCE verifier
	TakeCodeVerifier(ctx context.Context) (string, bool, error)
}

type memoryStore struct {
	mu           sync.RWMutex
	session      *session.Session
	codeVerifier string
}

func (m *memoryStore) LoadSession(_ context.Context) (*session.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session, nil
}

func (m *memoryStore) SaveSession(_ context.Context, s *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
	return nil
}

func (m *memoryStore) DeleteSession(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

func (m *memoryStore) PutCodeVerifier(_ context.Context, verifier string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codeVerifier = verifier
	return nil
}

func (m *memoryStore) TakeCodeVerifier(_ context.Context) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	verifier := m.codeVerifier
	m.codeVerifier = ""
	return verifier, verifier != "", nil
}

// MemoryStoreOption modifies memory store
type MemoryStoreOption func(*memoryStore)

// WithSession seeds memory store with a session
func WithSession(s *session.Session) MemoryStoreOption {
	return func(m *memoryStore) {
		m.session = s
	}
}

// NewMemoryStore creates in-memory store
func NewMemoryStore(options ...MemoryStoreOption) Store {
	ret := &memoryStore{}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
