package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const sessionsDDL = `
CREATE TABLE IF NOT EXISTS portal_sessions (
	handle     TEXT PRIMARY KEY,
	token      TEXT NOT NULL DEFAULT '',
	role       TEXT NOT NULL DEFAULT '',
	user_id    TEXT NOT NULL DEFAULT '',
	name       TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// EnsureSchema creates the session table when the postgres store is selected.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, sessionsDDL)
	return err
}
