package handlers

import (
	"errors"
	"log/slog"

	"github.com/geocoder89/bankportal/internal/apiclient"
	"github.com/geocoder89/bankportal/internal/domain/session"
	"github.com/geocoder89/bankportal/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

// HandleErrors is the one place a backend 401 turns into navigation. By the
// time it runs the session has already been cleared by the API client's
// listener; this only drops the cookie and sends the browser to login.
func HandleErrors(cookie middlewares.SessionCookie) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()

		for _, e := range ctx.Errors {
			if !errors.Is(e.Err, apiclient.ErrUnauthorized) {
				continue
			}

			slog.Default().InfoContext(ctx.Request.Context(), "session_rejected_by_backend", "route", ctx.FullPath())

			if ctx.Writer.Written() {
				return
			}

			cookie.Expire(ctx)
			middlewares.Redirect(ctx, session.PathLogin)
			return
		}
	}
}
