package observability

import (
	"errors"
	"strings"
	"time"

	"github.com/geocoder89/bankportal/internal/domain/session"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
)

// ObserveStore times one session store operation. A missing session is a
// normal outcome and is not counted as an error.
func (p *Prom) ObserveStore(backend, op string, fn func() error) error {
	start := time.Now()
	err := fn()

	status := "ok"

	if err != nil && !errors.Is(err, session.ErrNotFound) {
		status = "error"
		p.StoreErrors.WithLabelValues(backend, op, classifyStoreErr(err)).Inc()
	}
	p.StoreDuration.WithLabelValues(backend, op, status).Observe(time.Since(start).Seconds())
	return err
}

func classifyStoreErr(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42P01":
			return "undefined_table"
		case "40001":
			return "serialization_failure"
		case "57014":
			return "query_canceled"
		default:
			return "pg_" + pgErr.Code
		}
	}

	var redisErr redis.Error
	if errors.As(err, &redisErr) {
		return "redis_" + strings.ToLower(strings.SplitN(redisErr.Error(), " ", 2)[0])
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline"):
		return "timeout"
	case strings.Contains(msg, "connection") || strings.Contains(msg, "refused"):
		return "connection"
	default:
		return "unknown"
	}
}
