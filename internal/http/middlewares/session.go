package middlewares

import (
	"context"
	"net/http"

	"github.com/geocoder89/bankportal/internal/authctx"
	"github.com/gin-gonic/gin"
)

type HandleVerifier interface {
	Verify(raw string) (string, error)
}

type Hydrator interface {
	Hydrate(ctx context.Context, handle string) *authctx.Scope
}

// SessionCookie describes the cookie carrying the signed session handle.
type SessionCookie struct {
	Name   string
	Secure bool
}

// Write sets the cookie. It never expires on its own; logout and
// invalidation remove it.
func (sc SessionCookie) Write(c *gin.Context, signed string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     sc.Name,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (sc SessionCookie) Expire(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     sc.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Session resolves the cookie to a scope once per request and binds it to
// both the request context and the gin context. A missing, forged or
// unknown handle yields an anonymous scope.
func Session(cookie SessionCookie, verifier HandleVerifier, sessions Hydrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		handle := ""

		if raw, err := c.Cookie(cookie.Name); err == nil && raw != "" {
			if h, err := verifier.Verify(raw); err == nil {
				handle = h
			}
		}

		scope := sessions.Hydrate(c.Request.Context(), handle)
		BindScope(c, scope)

		c.Next()
	}
}

// BindScope makes scope the request's session view.
func BindScope(c *gin.Context, scope *authctx.Scope) {
	c.Set(CtxScope, scope)
	c.Request = c.Request.WithContext(authctx.WithScope(c.Request.Context(), scope))
}

func ScopeFrom(c *gin.Context) *authctx.Scope {
	v, ok := c.Get(CtxScope)
	if !ok {
		return nil
	}
	scope, _ := v.(*authctx.Scope)
	return scope
}
