package postgres

import (
	"context"
	"errors"

	"github.com/geocoder89/bankportal/internal/domain/session"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SessionsRepo struct {
	pool *pgxpool.Pool
}

func NewSessionsRepo(pool *pgxpool.Pool) *SessionsRepo {
	return &SessionsRepo{pool: pool}
}

// Save replaces whatever the handle held with all four fields in one statement.
func (r *SessionsRepo) Save(ctx context.Context, handle string, s session.Session) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO portal_sessions (handle, token, role, user_id, name, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (handle) DO UPDATE
		SET token = EXCLUDED.token,
		    role = EXCLUDED.role,
		    user_id = EXCLUDED.user_id,
		    name = EXCLUDED.name,
		    updated_at = NOW()
	`, handle, s.Token, string(s.Role), s.UserID, s.DisplayName)

	return err
}

func (r *SessionsRepo) Load(ctx context.Context, handle string) (session.Session, error) {
	var token, role, userID, name string

	err := r.pool.QueryRow(ctx, `
		SELECT token, role, user_id, name
		FROM portal_sessions
		WHERE handle = $1
	`, handle).Scan(&token, &role, &userID, &name)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return session.Session{}, session.ErrNotFound
		}

		return session.Session{}, err
	}

	return session.FromFields(map[string]string{
		session.FieldToken:  token,
		session.FieldRole:   role,
		session.FieldUserID: userID,
		session.FieldName:   name,
	})
}

func (r *SessionsRepo) Clear(ctx context.Context, handle string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM portal_sessions WHERE handle = $1`, handle)
	return err
}

func (r *SessionsRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
