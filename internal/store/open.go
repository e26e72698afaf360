package store

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/blueexport/blueexport/backend/go-services/internal/config"
	"github.com/blueexport/blueexport/backend/go-services/pkg/logger"
)

// Open builds the Store named by cfg.URL. The scheme picks the backend:
// mongodb/mongodb+srv, postgres/postgresql, redis/rediss, minio/minios, memory.
// Missing or unusable settings yield a *ConfigurationError; connection
// failures a *PersistenceError.
func Open(ctx context.Context, cfg config.DatabaseConfig) (Store, error) {
	if cfg.URL == "" {
		return nil, &ConfigurationError{Reason: "DATABASE_URL is not set"}
	}
	u, err := url.Parse(cfg.URL)
	if err != nil || u.Scheme == "" {
		return nil, &ConfigurationError{Reason: "DATABASE_URL is not a valid URL"}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	switch u.Scheme {
	case "memory":
		return NewMemoryStore(cfg.Name), nil
	case "redis", "rediss":
		client, err := ConnectRedis(ctx, cfg.URL, timeout)
		if err != nil {
			return nil, &PersistenceError{Op: "connect", Err: err}
		}
		return NewRedisStore(client, cfg.Name), nil
	case "postgres", "postgresql":
		pool, err := ConnectPostgres(ctx, cfg.URL, timeout)
		if err != nil {
			return nil, &PersistenceError{Op: "connect", Err: err}
		}
		s, err := NewPostgresStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, &PersistenceError{Op: "connect", Err: err}
		}
		return s, nil
	}

	if cfg.Name == "" {
		return nil, &ConfigurationError{Reason: "DATABASE_NAME is not set"}
	}

	switch u.Scheme {
	case "mongodb", "mongodb+srv":
		client, err := ConnectMongo(ctx, cfg.URL, timeout)
		if err != nil {
			return nil, &PersistenceError{Op: "connect", Err: err}
		}
		return NewMongoStore(client, cfg.Name), nil
	case "minio", "minios":
		mcfg, err := ParseMinIOURL(cfg.URL, cfg.Name)
		if err != nil {
			return nil, &ConfigurationError{Reason: err.Error()}
		}
		s, err := NewMinIOStore(ctx, mcfg, timeout)
		if err != nil {
			return nil, &PersistenceError{Op: "connect", Err: err}
		}
		return s, nil
	}
	return nil, &ConfigurationError{Reason: "unsupported DATABASE_URL scheme " + u.Scheme}
}

// Connect calls Open up to cfg.ConnectAttempts times with exponential backoff to
// ride out startup races. Configuration errors are not retried. On failure it
// returns an *Unavailable store carrying the last error, never nil.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (Store, error) {
	attempts := cfg.ConnectAttempts
	if attempts < 1 {
		attempts = 1
	}
	backoff := time.Second
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		s, err := Open(ctx, cfg)
		if err == nil {
			return s, nil
		}
		lastErr = err
		var ce *ConfigurationError
		if errors.As(err, &ce) {
			break
		}
		logger.Warnf("attempt %d/%d: failed to open document store: %v", attempt, attempts, err)
		if attempt < attempts {
			select {
			case <-ctx.Done():
				return NewUnavailable(cfg.Name, ctx.Err()), ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}
	return NewUnavailable(cfg.Name, lastErr), lastErr
}
