package authctx

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/geocoder89/bankportal/internal/domain/session"
)

type ctxKey struct{}

// Scope is one request's view of the browser session: the handle from the
// cookie and the session it resolved to, loaded once. Scopes are never edited;
// login and logout produce new ones.
type Scope struct {
	handle string
	sess   *session.Session

	invalidateOnce sync.Once
	invalidated    atomic.Bool
}

// NewScope pins sess to handle for one request.
func NewScope(handle string, sess *session.Session) *Scope {
	return &Scope{handle: handle, sess: sess}
}

// Anonymous is the scope of a browser without a usable session.
func Anonymous() *Scope {
	return NewScope("", nil)
}

func (s *Scope) Handle() string {
	if s == nil {
		return ""
	}
	return s.handle
}

// Session returns a copy of the session, or nil. A scope whose session the
// backend has rejected reports nil from then on.
func (s *Scope) Session() *session.Session {
	if s == nil || s.sess == nil || s.invalidated.Load() {
		return nil
	}
	cp := *s.sess
	return &cp
}

func (s *Scope) Authenticated() bool {
	return s.Session() != nil
}

func (s *Scope) Invalidated() bool {
	return s != nil && s.invalidated.Load()
}

func WithScope(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (*Scope, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Scope)
	return s, ok && s != nil
}
