package main

import (
	"context"
	"fmt"

	"github.com/geocoder89/bankportal/internal/authctx"
	"github.com/geocoder89/bankportal/internal/config"
	"github.com/geocoder89/bankportal/internal/db"
	"github.com/geocoder89/bankportal/internal/redisclient"
	"github.com/geocoder89/bankportal/internal/repo/memory"
	"github.com/geocoder89/bankportal/internal/repo/postgres"
	"github.com/geocoder89/bankportal/internal/repo/redisrepo"
)

type sessionStore struct {
	authctx.Store
	ping  func(ctx context.Context) error
	close func()
}

func openStore(cfg config.Config) (*sessionStore, error) {
	switch cfg.SessionStore {
	case config.SessionStoreMemory:
		repo := memory.NewSessionsRepo()
		return &sessionStore{Store: repo, ping: repo.Ping, close: func() {}}, nil

	case config.SessionStoreRedis:
		rc := redisclient.New(redisclient.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		ctx, cancel := config.WithTimeout(cfg.BackendTimeout)
		defer cancel()
		if err := rc.Ping(ctx); err != nil {
			_ = rc.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}

		return &sessionStore{
			Store: redisrepo.NewSessionsRepo(rc.Raw()),
			ping:  rc.Ping,
			close: func() { _ = rc.Close() },
		}, nil

	case config.SessionStorePostgres:
		pool, err := db.NewPool(cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("postgres connect: %w", err)
		}

		ctx, cancel := config.WithTimeout(cfg.BackendTimeout)
		defer cancel()
		if err := db.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("postgres schema: %w", err)
		}

		return &sessionStore{
			Store: postgres.NewSessionsRepo(pool),
			ping:  pool.Ping,
			close: pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}
}
