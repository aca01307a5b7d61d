package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/geocoder89/bankportal/internal/apiclient"
	"github.com/geocoder89/bankportal/internal/authctx"
	"github.com/geocoder89/bankportal/internal/domain/banking"
	"github.com/geocoder89/bankportal/internal/domain/session"
	"github.com/geocoder89/bankportal/internal/flash"
	"github.com/geocoder89/bankportal/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

const (
	msgInvalidCredentials = "Invalid credentials"
	msgRegistered         = "Registration successful! Please sign in."
)

type AuthAPI interface {
	Login(ctx context.Context, req banking.LoginRequest) (banking.LoginResult, error)
	Register(ctx context.Context, req banking.RegisterRequest) error
}

type SessionManager interface {
	LoginUser(ctx context.Context, handle string, s session.Session) (*authctx.Scope, error)
	Logout(ctx context.Context, scope *authctx.Scope) (*authctx.Scope, error)
}

type HandleIssuer interface {
	NewHandle() (handle string, signed string, err error)
}

type AuthHandler struct {
	api      AuthAPI
	sessions SessionManager
	handles  HandleIssuer
	cookie   middlewares.SessionCookie
	flashes  *flash.Store
}

func NewAuthHandler(api AuthAPI, sessions SessionManager, handles HandleIssuer, cookie middlewares.SessionCookie, flashes *flash.Store) *AuthHandler {
	return &AuthHandler{
		api:      api,
		sessions: sessions,
		handles:  handles,
		cookie:   cookie,
		flashes:  flashes,
	}
}

func (h *AuthHandler) loginView(ctx *gin.Context, status int, msg *flash.Message) {
	scope := scopeOf(ctx)
	if msg == nil {
		msg = h.flashes.Get(scope.Handle())
	}

	ctx.JSON(status, View{
		View:  "login",
		User:  scope.Session(),
		Flash: msg,
		Data:  gin.H{},
	})
}

func (h *AuthHandler) LoginPage(ctx *gin.Context) {
	h.loginView(ctx, http.StatusOK, nil)
}

// Login exchanges credentials for a backend token, stores the session under
// a fresh handle and sends the browser to its role's dashboard.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var req banking.LoginRequest
	if !BindJSON(ctx, &req) {
		return
	}

	res, err := h.api.Login(ctx.Request.Context(), req)
	if err != nil {
		msg := flash.Failure(apiclient.FieldMessage(err, msgInvalidCredentials))
		h.loginView(ctx, http.StatusOK, &msg)
		return
	}

	s := session.Session{
		Token:       res.Token,
		Role:        session.ParseRole(res.Role),
		UserID:      strconv.FormatInt(res.UserID, 10),
		DisplayName: res.Name,
	}

	// a previous login in this browser ends here; handles are never reused
	if prev := scopeOf(ctx); prev.Authenticated() {
		if _, err := h.sessions.Logout(ctx.Request.Context(), prev); err != nil {
			slog.Default().WarnContext(ctx.Request.Context(), "previous_session_clear_failed", "err", err)
		}
	}

	handle, signed, err := h.handles.NewHandle()
	if err != nil {
		RespondInternal(ctx, "Could not start a session")
		return
	}

	scope, err := h.sessions.LoginUser(ctx.Request.Context(), handle, s)
	if err != nil {
		if errors.Is(err, session.ErrIncomplete) {
			slog.Default().WarnContext(ctx.Request.Context(), "backend_login_incomplete", "err", err)
			msg := flash.Failure(msgInvalidCredentials)
			h.loginView(ctx, http.StatusOK, &msg)
			return
		}
		slog.Default().ErrorContext(ctx.Request.Context(), "session_save_failed", "err", err)
		RespondInternal(ctx, "Could not start a session")
		return
	}

	h.cookie.Write(ctx, signed)
	middlewares.BindScope(ctx, scope)

	middlewares.Redirect(ctx, session.LandingPath(scope.Session()))
}

// Register creates a user through the public backend endpoint. It does not
// sign the new user in.
func (h *AuthHandler) Register(ctx *gin.Context) {
	var req banking.RegisterRequest
	if !BindJSON(ctx, &req) {
		return
	}
	if req.Role != "" {
		req.Role = string(session.ParseRole(req.Role))
	}

	var msg flash.Message
	if err := h.api.Register(ctx.Request.Context(), req); err != nil {
		msg = flash.Failure(apiclient.MessageFrom(err, msgError))
	} else {
		msg = flash.Success(msgRegistered)
	}

	h.loginView(ctx, http.StatusOK, &msg)
}

func (h *AuthHandler) Logout(ctx *gin.Context) {
	scope := scopeOf(ctx)

	if _, err := h.sessions.Logout(ctx.Request.Context(), scope); err != nil {
		slog.Default().ErrorContext(ctx.Request.Context(), "session_clear_failed", "err", err)
		RespondInternal(ctx, "Could not end the session")
		return
	}

	h.flashes.Dismiss(scope.Handle())
	h.cookie.Expire(ctx)
	middlewares.BindScope(ctx, authctx.Anonymous())

	middlewares.Redirect(ctx, session.PathLogin)
}

// Root sends the browser to the dashboard its role lands on.
func (h *AuthHandler) Root(ctx *gin.Context) {
	middlewares.Redirect(ctx, session.LandingPath(scopeOf(ctx).Session()))
}
