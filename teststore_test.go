package controltower

import (
	"context"
	"sync"

	"github.com/towerops/controltower/session"
)

// memStore is an in-memory session.Store for tests that don't care about
// durability.
type memStore struct {
	mu  sync.Mutex
	rec *session.Record
}

func newMemStore() *memStore {
	return &memStore{}
}

func (m *memStore) Load(_ context.Context) (*session.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rec == nil {
		return nil, session.ErrNoSession
	}
	cp := *m.rec
	return &cp, nil
}

func (m *memStore) Save(_ context.Context, rec *session.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rec
	m.rec = &cp
	return nil
}

func (m *memStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = nil
	return nil
}
