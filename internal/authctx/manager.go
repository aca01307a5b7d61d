package authctx

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/geocoder89/bankportal/internal/domain/session"
)

// Store persists sessions under an opaque handle. Load returns
// session.ErrNotFound when the handle holds nothing usable.
type Store interface {
	Save(ctx context.Context, handle string, s session.Session) error
	Load(ctx context.Context, handle string) (session.Session, error)
	Clear(ctx context.Context, handle string) error
}

type EventKind string

const (
	LoggedIn    EventKind = "logged_in"
	LoggedOut   EventKind = "logged_out"
	Invalidated EventKind = "invalidated"
)

type Event struct {
	Kind    EventKind
	Handle  string
	Session *session.Session
}

// Manager is the only writer of sessions. It never talks to the backend.
type Manager struct {
	store Store
	log   *slog.Logger

	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]func(Event)
}

func NewManager(store Store, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}

	return &Manager{
		store: store,
		log:   log,
		subs:  make(map[uint64]func(Event)),
	}
}

// Hydrate resolves handle to a scope. Store failures are treated as "no
// session" so an outage never lets a request through the guard.
func (m *Manager) Hydrate(ctx context.Context, handle string) *Scope {
	if handle == "" {
		return Anonymous()
	}

	s, err := m.store.Load(ctx, handle)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			m.log.WarnContext(ctx, "session_load_failed", "err", err)
		}
		return NewScope(handle, nil)
	}

	return NewScope(handle, &s)
}

// LoginUser records a session the backend has just issued and returns the
// scope that now owns it.
func (m *Manager) LoginUser(ctx context.Context, handle string, s session.Session) (*Scope, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	if err := m.store.Save(ctx, handle, s); err != nil {
		return nil, err
	}

	scope := NewScope(handle, &s)
	m.publish(Event{Kind: LoggedIn, Handle: handle, Session: scope.Session()})

	return scope, nil
}

// Logout clears the stored session and returns an anonymous scope.
func (m *Manager) Logout(ctx context.Context, scope *Scope) (*Scope, error) {
	if scope == nil || scope.handle == "" {
		return Anonymous(), nil
	}

	prev := scope.Session()

	if err := m.store.Clear(ctx, scope.handle); err != nil {
		return scope, err
	}

	m.publish(Event{Kind: LoggedOut, Handle: scope.handle, Session: prev})

	return NewScope(scope.handle, nil), nil
}

// SessionInvalidated is called by the API client on every backend 401. The
// store is cleared at most once per request scope no matter how many calls
// in that request were rejected.
func (m *Manager) SessionInvalidated(ctx context.Context) {
	scope, ok := FromContext(ctx)
	if !ok || scope.handle == "" {
		m.log.WarnContext(ctx, "session_invalidated_without_scope")
		return
	}

	scope.invalidateOnce.Do(func() {
		prev := scope.Session()
		scope.invalidated.Store(true)

		if err := m.store.Clear(ctx, scope.handle); err != nil {
			m.log.ErrorContext(ctx, "session_clear_failed", "err", err)
		}

		m.publish(Event{Kind: Invalidated, Handle: scope.handle, Session: prev})
	})
}

// Token returns the bearer token of the scope bound to ctx.
func (m *Manager) Token(ctx context.Context) string {
	scope, ok := FromContext(ctx)
	if !ok {
		return ""
	}

	if s := scope.Session(); s != nil {
		return s.Token
	}
	return ""
}

// Subscribe registers fn for every session event. Subscribers run
// synchronously on the goroutine that caused the event.
func (m *Manager) Subscribe(fn func(Event)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

func (m *Manager) publish(e Event) {
	m.mu.RLock()
	fns := make([]func(Event), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.RUnlock()

	for _, fn := range fns {
		fn(e)
	}
}
