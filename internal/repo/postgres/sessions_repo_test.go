package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/geocoder89/bankportal/internal/db"
	"github.com/geocoder89/bankportal/internal/domain/session"
	"github.com/google/uuid"
)

func setupSessionsRepo(t *testing.T) *SessionsRepo {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	pool, err := db.NewPool(dsn)
	if err != nil {
		t.Fatalf("Failed to create pgx pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := db.EnsureSchema(context.Background(), pool); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	return NewSessionsRepo(pool)
}

func TestSessionsRepoUpsertReplacesWholesale(t *testing.T) {
	repo := setupSessionsRepo(t)
	ctx := context.Background()
	handle := uuid.NewString()
	t.Cleanup(func() { _ = repo.Clear(ctx, handle) })

	first := session.Session{Token: "a", Role: session.RoleClient, UserID: "1", DisplayName: "One"}
	second := session.Session{Token: "b", Role: session.RoleAdmin, UserID: "2", DisplayName: "Two"}

	if err := repo.Save(ctx, handle, first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := repo.Save(ctx, handle, second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	got, err := repo.Load(ctx, handle)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != second {
		t.Fatalf("got %+v, want %+v", got, second)
	}

	if err := repo.Clear(ctx, handle); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := repo.Load(ctx, handle); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("after clear: got %v, want ErrNotFound", err)
	}
}
