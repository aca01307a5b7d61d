package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/geocoder89/bankportal/internal/apiclient"
	"github.com/geocoder89/bankportal/internal/authctx"
	"github.com/geocoder89/bankportal/internal/domain/session"
	"github.com/geocoder89/bankportal/internal/flash"
	"github.com/geocoder89/bankportal/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

// View is the document a browser shell renders for one dashboard tab.
type View struct {
	View  string           `json:"view"`
	Tab   string           `json:"tab,omitempty"`
	User  *session.Session `json:"user,omitempty"`
	Flash *flash.Message   `json:"flash,omitempty"`
	Data  any              `json:"data"`
}

func scopeOf(ctx *gin.Context) *authctx.Scope {
	if scope := middlewares.ScopeFrom(ctx); scope != nil {
		return scope
	}
	if scope, ok := authctx.FromContext(ctx.Request.Context()); ok {
		return scope
	}
	return authctx.Anonymous()
}

// renderView answers a GET with an ETag so unchanged tabs cost one 304.
func renderView(ctx *gin.Context, flashes *flash.Store, name, tab string, data any) {
	scope := scopeOf(ctx)

	RespondViewWithETag(ctx, View{
		View:  name,
		Tab:   tab,
		User:  scope.Session(),
		Flash: flashes.Get(scope.Handle()),
		Data:  data,
	})
}

// renderMutation answers a mutation with the refetched tab and the banner it
// just set. Failed mutations are still a rendered view.
func renderMutation(ctx *gin.Context, flashes *flash.Store, name, tab string, data any) {
	scope := scopeOf(ctx)

	ctx.JSON(http.StatusOK, View{
		View:  name,
		Tab:   tab,
		User:  scope.Session(),
		Flash: flashes.Get(scope.Handle()),
		Data:  data,
	})
}

// unauthorized hands a 401 to HandleErrors and stops the handler. Every
// backend error must pass through it before being degraded or flashed.
func unauthorized(ctx *gin.Context, err error) bool {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		_ = ctx.Error(err)
		ctx.Abort()
		return true
	}
	return false
}

// soft degrades a failed read to its empty value. It reports false when the
// request must stop.
func soft(ctx *gin.Context, err error) bool {
	if err == nil {
		return true
	}
	if unauthorized(ctx, err) {
		return false
	}
	slog.Default().WarnContext(ctx.Request.Context(), "backend_read_failed", "route", ctx.FullPath(), "err", err)
	return true
}

// notify records the outcome of a mutation as the session's banner. A
// failure shows the backend's message, or fallback when it sent none. It
// reports false when the request must stop.
func notify(ctx *gin.Context, flashes *flash.Store, err error, success, fallback string) bool {
	return record(ctx, flashes, err, success, apiclient.MessageFrom(err, fallback))
}

// notifyFixed is notify for operations whose failure text never comes from
// the backend.
func notifyFixed(ctx *gin.Context, flashes *flash.Store, err error, success, failure string) bool {
	return record(ctx, flashes, err, success, failure)
}

func record(ctx *gin.Context, flashes *flash.Store, err error, success, failure string) bool {
	handle := scopeOf(ctx).Handle()

	if err != nil {
		if unauthorized(ctx, err) {
			return false
		}
		slog.Default().InfoContext(ctx.Request.Context(), "backend_mutation_failed", "route", ctx.FullPath(), "err", err)
		flashes.Set(handle, flash.Failure(failure))
		return true
	}

	flashes.Set(handle, flash.Success(success))
	return true
}

func pathID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondBadRequest(ctx, "Invalid id", gin.H{"field": "id"})
		return 0, false
	}
	return id, true
}
