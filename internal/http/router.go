package http

import (
	"context"

	"github.com/geocoder89/bankportal/internal/authctx"
	"github.com/geocoder89/bankportal/internal/domain/session"
	"github.com/geocoder89/bankportal/internal/flash"
	"github.com/geocoder89/bankportal/internal/http/handlers"
	"github.com/geocoder89/bankportal/internal/http/middlewares"
	"github.com/geocoder89/bankportal/internal/observability"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "bankportal"

// Backend is every banking call the dashboards make.
type Backend interface {
	handlers.AuthAPI
	handlers.AdminAPI
	handlers.TellerAPI
	handlers.ClientAPI
}

type Sessions interface {
	Hydrate(ctx context.Context, handle string) *authctx.Scope
	handlers.SessionManager
}

type Handles interface {
	middlewares.HandleVerifier
	handlers.HandleIssuer
}

type Deps struct {
	Env string

	Backend  Backend
	Sessions Sessions
	Handles  Handles
	Cookie   middlewares.SessionCookie
	Flashes  *flash.Store
	Prom     *observability.Prom

	// Ping probes the session store for /readyz; Draining turns it off
	// during shutdown.
	Ping     func(ctx context.Context) error
	Draining func() bool

	AllowedOrigins []string
	MaxBodyBytes   int64
	LoginLimiter   *middlewares.RateLimiter
	Tracing        bool
}

func NewRouter(d Deps) *gin.Engine {
	if d.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	handlers.RegisterValidators()

	r.Use(gin.Recovery())
	if d.Tracing {
		r.Use(otelgin.Middleware(serviceName))
	}
	r.Use(middlewares.RequestID())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(d.AllowedOrigins))
	if d.Prom != nil {
		r.Use(d.Prom.GinHandleMiddleware())
		r.GET("/metrics", gin.WrapH(d.Prom.Handler()))
	}

	h := handlers.NewHealthHandler(d.Ping, d.Draining)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	// everything below sees the browser session
	portal := r.Group("/")
	if d.MaxBodyBytes > 0 {
		portal.Use(middlewares.MaxBodyBytes(d.MaxBodyBytes))
	}
	portal.Use(middlewares.Session(d.Cookie, d.Handles, d.Sessions))
	portal.Use(middlewares.RequestLogger())
	portal.Use(handlers.HandleErrors(d.Cookie))
	portal.Use(middlewares.RequireJSON())

	auth := handlers.NewAuthHandler(d.Backend, d.Sessions, d.Handles, d.Cookie, d.Flashes)
	credentials := []gin.HandlerFunc{}
	if d.LoginLimiter != nil {
		credentials = append(credentials, d.LoginLimiter.RateLimiterMiddleware(middlewares.KeyByIP))
	}

	portal.GET("/login", auth.LoginPage)
	portal.POST("/login", append(credentials, auth.Login)...)
	portal.POST("/register", append(credentials, auth.Register)...)
	portal.POST("/logout", auth.Logout)
	portal.GET("/", middlewares.RequireRoles(), auth.Root)

	admin := handlers.NewAdminHandler(d.Backend, d.Flashes)
	adminGroup := portal.Group(session.PathAdmin, middlewares.RequireRoles(middlewares.AdminRoles...))
	{
		adminGroup.GET("", admin.Show)
		adminGroup.GET("/:tab", admin.Show)
		adminGroup.POST("/users", admin.CreateUser)
		adminGroup.DELETE("/users/:id", admin.DeleteUser)
		adminGroup.POST("/banks", admin.AddBank)
		adminGroup.PUT("/banks/:id", admin.UpdateBank)
		adminGroup.DELETE("/banks/:id", admin.DeleteBank)
		adminGroup.PUT("/accounts/:id", admin.UpdateAccount)
		adminGroup.DELETE("/accounts/:id", admin.DeactivateAccount)
	}

	teller := handlers.NewTellerHandler(d.Backend, d.Flashes)
	tellerGroup := portal.Group(session.PathTeller, middlewares.RequireRoles(middlewares.TellerRoles...))
	{
		tellerGroup.GET("", teller.Show)
		tellerGroup.GET("/:tab", teller.Show)
		tellerGroup.POST("/accounts", teller.CreateAccount)
		tellerGroup.POST("/deposit", teller.Deposit)
		tellerGroup.POST("/withdraw", teller.Withdraw)
	}

	client := handlers.NewClientHandler(d.Backend, d.Flashes)
	clientGroup := portal.Group(session.PathClient, middlewares.RequireRoles(middlewares.ClientRoles...))
	{
		clientGroup.GET("", client.Show)
		clientGroup.GET("/:tab", client.Show)
		clientGroup.POST("/withdraw", client.Withdraw)
		clientGroup.POST("/pin", client.SetPin)
	}

	return r
}
