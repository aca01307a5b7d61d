package authctx_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/geocoder89/bankportal/internal/authctx"
	"github.com/geocoder89/bankportal/internal/domain/session"
	"github.com/geocoder89/bankportal/internal/repo/memory"
)

// countingStore wraps the in-memory repo and counts calls per operation.
type countingStore struct {
	inner  *memory.SessionsRepo
	loads  atomic.Int32
	clears atomic.Int32
	loadFn func(ctx context.Context, handle string) (session.Session, error)
}

func newCountingStore() *countingStore {
	return &countingStore{inner: memory.NewSessionsRepo()}
}

func (s *countingStore) Save(ctx context.Context, handle string, sess session.Session) error {
	return s.inner.Save(ctx, handle, sess)
}

func (s *countingStore) Load(ctx context.Context, handle string) (session.Session, error) {
	s.loads.Add(1)
	if s.loadFn != nil {
		return s.loadFn(ctx, handle)
	}
	return s.inner.Load(ctx, handle)
}

func (s *countingStore) Clear(ctx context.Context, handle string) error {
	s.clears.Add(1)
	return s.inner.Clear(ctx, handle)
}

var client = session.Session{Token: "tok", Role: session.RoleClient, UserID: "3", DisplayName: "Cleo"}

func TestHydrateLoadsOnce(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	m := authctx.NewManager(store, nil)

	if _, err := m.LoginUser(ctx, "h1", client); err != nil {
		t.Fatalf("login: %v", err)
	}

	scope := m.Hydrate(ctx, "h1")
	if store.loads.Load() != 1 {
		t.Fatalf("got %d loads, want 1", store.loads.Load())
	}

	// reading the scope repeatedly must not go back to the store
	for i := 0; i < 5; i++ {
		if s := scope.Session(); s == nil || *s != client {
			t.Fatalf("got %+v, want %+v", s, client)
		}
	}
	if store.loads.Load() != 1 {
		t.Fatalf("got %d loads after reads, want 1", store.loads.Load())
	}
}

func TestHydrateAnonymousAndFailures(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	m := authctx.NewManager(store, nil)

	if m.Hydrate(ctx, "").Authenticated() {
		t.Fatalf("empty handle must be anonymous")
	}
	if store.loads.Load() != 0 {
		t.Fatalf("empty handle must not hit the store")
	}

	if m.Hydrate(ctx, "unknown").Authenticated() {
		t.Fatalf("unknown handle must be anonymous")
	}

	store.loadFn = func(context.Context, string) (session.Session, error) {
		return session.Session{}, errors.New("redis down")
	}
	if m.Hydrate(ctx, "h1").Authenticated() {
		t.Fatalf("store failure must fail closed")
	}
}

func TestLogoutEmptiesStoreAndScope(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	m := authctx.NewManager(store, nil)

	scope, err := m.LoginUser(ctx, "h1", client)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	after, err := m.Logout(ctx, scope)
	if err != nil {
		t.Fatalf("logout: %v", err)
	}

	if after.Authenticated() {
		t.Fatalf("scope still holds a session after logout")
	}
	if store.inner.Len() != 0 {
		t.Fatalf("store still holds %d sessions after logout", store.inner.Len())
	}
	if _, err := store.inner.Load(ctx, "h1"); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestLoginRejectsIncompleteSession(t *testing.T) {
	m := authctx.NewManager(newCountingStore(), nil)

	_, err := m.LoginUser(context.Background(), "h1", session.Session{Token: "tok"})
	if !errors.Is(err, session.ErrIncomplete) {
		t.Fatalf("got %v, want ErrIncomplete", err)
	}
}

func TestInvalidationClearsExactlyOnce(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	m := authctx.NewManager(store, nil)

	var events atomic.Int32
	m.Subscribe(func(e authctx.Event) {
		if e.Kind == authctx.Invalidated {
			events.Add(1)
		}
	})

	if _, err := m.LoginUser(ctx, "h1", client); err != nil {
		t.Fatalf("login: %v", err)
	}

	scope := m.Hydrate(ctx, "h1")
	reqCtx := authctx.WithScope(ctx, scope)

	if got := m.Token(reqCtx); got != "tok" {
		t.Fatalf("got token %q, want tok", got)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.SessionInvalidated(reqCtx)
		}()
	}
	wg.Wait()

	if store.clears.Load() != 1 {
		t.Fatalf("got %d clears, want 1", store.clears.Load())
	}
	if events.Load() != 1 {
		t.Fatalf("got %d invalidation events, want 1", events.Load())
	}
	if scope.Authenticated() || !scope.Invalidated() {
		t.Fatalf("scope must report no session after invalidation")
	}
	if m.Token(reqCtx) != "" {
		t.Fatalf("token must be gone after invalidation")
	}
	if store.inner.Len() != 0 {
		t.Fatalf("store not cleared")
	}
}

func TestInvalidationWithoutScopeIsNoop(t *testing.T) {
	store := newCountingStore()
	m := authctx.NewManager(store, nil)

	m.SessionInvalidated(context.Background())

	if store.clears.Load() != 0 {
		t.Fatalf("got %d clears, want 0", store.clears.Load())
	}
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	ctx := context.Background()
	m := authctx.NewManager(newCountingStore(), nil)

	var kinds []authctx.EventKind
	unsubscribe := m.Subscribe(func(e authctx.Event) {
		kinds = append(kinds, e.Kind)
	})

	scope, _ := m.LoginUser(ctx, "h1", client)
	_, _ = m.Logout(ctx, scope)

	unsubscribe()
	_, _ = m.LoginUser(ctx, "h2", client)

	if len(kinds) != 2 || kinds[0] != authctx.LoggedIn || kinds[1] != authctx.LoggedOut {
		t.Fatalf("unexpected events: %v", kinds)
	}
}

type fakeObserver struct {
	ops []string
}

func (f *fakeObserver) ObserveStore(backend, op string, fn func() error) error {
	f.ops = append(f.ops, backend+"."+op)
	return fn()
}

func TestInstrumentedStore(t *testing.T) {
	ctx := context.Background()
	obs := &fakeObserver{}
	store := authctx.Instrument(memory.NewSessionsRepo(), obs, "memory")

	_ = store.Save(ctx, "h", client)
	got, err := store.Load(ctx, "h")
	if err != nil || got != client {
		t.Fatalf("got %+v, %v", got, err)
	}
	_ = store.Clear(ctx, "h")

	want := []string{"memory.save", "memory.load", "memory.clear"}
	if len(obs.ops) != len(want) {
		t.Fatalf("got ops %v, want %v", obs.ops, want)
	}
	for i := range want {
		if obs.ops[i] != want[i] {
			t.Fatalf("got ops %v, want %v", obs.ops, want)
		}
	}
}
