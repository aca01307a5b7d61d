package authctx

import (
	"context"
	"log/slog"

	"github.com/geocoder89/bankportal/internal/domain/session"
)

type StoreObserver interface {
	ObserveStore(backend, op string, fn func() error) error
}

type instrumentedStore struct {
	next    Store
	obs     StoreObserver
	backend string
}

// Instrument times every store call through obs, labelled with backend.
func Instrument(store Store, obs StoreObserver, backend string) Store {
	return &instrumentedStore{next: store, obs: obs, backend: backend}
}

func (s *instrumentedStore) Save(ctx context.Context, handle string, sess session.Session) error {
	return s.obs.ObserveStore(s.backend, "save", func() error {
		return s.next.Save(ctx, handle, sess)
	})
}

func (s *instrumentedStore) Load(ctx context.Context, handle string) (session.Session, error) {
	var out session.Session

	err := s.obs.ObserveStore(s.backend, "load", func() error {
		var err error
		out, err = s.next.Load(ctx, handle)
		return err
	})

	return out, err
}

func (s *instrumentedStore) Clear(ctx context.Context, handle string) error {
	return s.obs.ObserveStore(s.backend, "clear", func() error {
		return s.next.Clear(ctx, handle)
	})
}

// LogEvents is a subscriber that writes one line per session event.
func LogEvents(log *slog.Logger) func(Event) {
	return func(e Event) {
		attrs := []any{"kind", string(e.Kind)}
		if e.Session != nil {
			attrs = append(attrs, "user_id", e.Session.UserID, "role", string(e.Session.Role))
		}
		log.Info("session_event", attrs...)
	}
}

type EventCounter interface {
	IncSessionEvent(kind string)
}

// CountEvents is a subscriber feeding a metrics counter.
func CountEvents(c EventCounter) func(Event) {
	return func(e Event) {
		c.IncSessionEvent(string(e.Kind))
	}
}
