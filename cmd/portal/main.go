package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/geocoder89/bankportal/internal/apiclient"
	"github.com/geocoder89/bankportal/internal/auth"
	"github.com/geocoder89/bankportal/internal/authctx"
	"github.com/geocoder89/bankportal/internal/config"
	"github.com/geocoder89/bankportal/internal/flash"
	httpx "github.com/geocoder89/bankportal/internal/http"
	"github.com/geocoder89/bankportal/internal/http/middlewares"
	"github.com/geocoder89/bankportal/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
)

func main() {
	// Load the config set up
	cfg := config.Load()

	pflag.IntVar(&cfg.Port, "port", cfg.Port, "port the portal listens on")
	pflag.StringVar(&cfg.BackendBaseURL, "backend", cfg.BackendBaseURL, "base URL of the banking REST backend")
	pflag.StringVar(&cfg.SessionStore, "session-store", cfg.SessionStore, "session store: memory, redis or postgres")
	pflag.Parse()

	cfg.BackendBaseURL = strings.TrimRight(cfg.BackendBaseURL, "/")
	cfg.SessionStore = strings.ToLower(cfg.SessionStore)

	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	if cfg.OTelEnabled {
		ctx, cancel := config.WithTimeout(5 * time.Second)
		shutdown, err := observability.InitTracer(ctx, "bankportal", cfg.OTelEndpoint)
		cancel()

		if err != nil {
			log.Error("tracer init failed", "err", err)
		} else {
			defer func() {
				ctx, cancel := config.WithTimeout(5 * time.Second)
				defer cancel()
				_ = shutdown(ctx)
			}()
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	store, err := openStore(cfg)
	if err != nil {
		log.Error("session store unavailable", "store", cfg.SessionStore, "err", err)
		os.Exit(1)
	}
	defer store.close()

	sessions := authctx.NewManager(authctx.Instrument(store.Store, prom, cfg.SessionStore), log)
	sessions.Subscribe(authctx.LogEvents(log))
	sessions.Subscribe(authctx.CountEvents(prom))

	signer, err := auth.NewHandleSigner(cfg.CookieSecret)
	if err != nil {
		log.Error("cookie signer", "err", err)
		os.Exit(1)
	}

	backend := apiclient.New(apiclient.Config{
		BaseURL:  cfg.BackendBaseURL,
		Timeout:  cfg.BackendTimeout,
		Tokens:   sessions,
		Listener: sessions,
		Metrics:  prom,
		Logger:   log,
	})

	flashes := flash.New(cfg.FlashTTL)

	var draining atomic.Bool

	router := httpx.NewRouter(httpx.Deps{
		Env:      cfg.Env,
		Backend:  backend,
		Sessions: sessions,
		Handles:  signer,
		Cookie:   middlewares.SessionCookie{Name: cfg.CookieName, Secure: cfg.Secure()},
		Flashes:  flashes,
		Prom:     prom,
		Ping:     store.ping,
		Draining: draining.Load,

		AllowedOrigins: cfg.AllowedOrigins,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		LoginLimiter:   middlewares.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow),
		Tracing:        cfg.OTelEnabled,
	})

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.BackendTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sweepFlashes(sweepCtx, flashes, cfg.FlashTTL)

	go func() {
		log.Info("portal starting", "port", cfg.Port, "env", cfg.Env, "backend", cfg.BackendBaseURL, "session_store", cfg.SessionStore)
		err := srv.ListenAndServe()

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")
	draining.Store(true)

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}

// sweepFlashes drops banners nobody came back to read.
func sweepFlashes(ctx context.Context, flashes *flash.Store, ttl time.Duration) {
	t := time.NewTicker(10 * ttl)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			flashes.Sweep()
		}
	}
}
