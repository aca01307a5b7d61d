package redisrepo

import (
	"context"
	"errors"

	"github.com/geocoder89/bankportal/internal/domain/session"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "bankportal:session:"

// SessionsRepo keeps one hash per session handle. Keys carry no TTL: the
// backend decides when a token stops being valid.
type SessionsRepo struct {
	rdb *redis.Client
}

func NewSessionsRepo(rdb *redis.Client) *SessionsRepo {
	return &SessionsRepo{rdb: rdb}
}

func sessionKey(handle string) string {
	return keyPrefix + handle
}

func (r *SessionsRepo) Save(ctx context.Context, handle string, s session.Session) error {
	key := sessionKey(handle)
	fields := s.Fields()

	// DEL + HSET in one MULTI so readers never see a half-written session.
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fields)
		return nil
	})

	return err
}

func (r *SessionsRepo) Load(ctx context.Context, handle string) (session.Session, error) {
	fields, err := r.rdb.HGetAll(ctx, sessionKey(handle)).Result()

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return session.Session{}, session.ErrNotFound
		}
		return session.Session{}, err
	}

	if len(fields) == 0 {
		return session.Session{}, session.ErrNotFound
	}

	return session.FromFields(fields)
}

func (r *SessionsRepo) Clear(ctx context.Context, handle string) error {
	return r.rdb.Del(ctx, sessionKey(handle)).Err()
}

func (r *SessionsRepo) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}
