package memory

import (
	"context"
	"sync"

	"github.com/geocoder89/bankportal/internal/domain/session"
)

type SessionsRepo struct {
	mu    sync.RWMutex
	items map[string]map[string]string // handle -> persisted fields
}

func NewSessionsRepo() *SessionsRepo {
	return &SessionsRepo{
		items: make(map[string]map[string]string),
	}
}

func (r *SessionsRepo) Save(_ context.Context, handle string, s session.Session) error {
	fields := s.Fields()

	r.mu.Lock()
	r.items[handle] = fields
	r.mu.Unlock()

	return nil
}

func (r *SessionsRepo) Load(_ context.Context, handle string) (session.Session, error) {
	r.mu.RLock()
	fields, ok := r.items[handle]
	r.mu.RUnlock()

	if !ok {
		return session.Session{}, session.ErrNotFound
	}

	return session.FromFields(fields)
}

func (r *SessionsRepo) Clear(_ context.Context, handle string) error {
	r.mu.Lock()
	delete(r.items, handle)
	r.mu.Unlock()

	return nil
}

// Len reports how many handles hold a session.
func (r *SessionsRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func (r *SessionsRepo) Ping(context.Context) error { return nil }
