// Package database coordinates minegate's optional side stores: PostgreSQL
// session history, Redis idempotency and rate limits, and InfluxDB metrics.
// Each store is enabled independently; a disabled store is nil.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/bardlex/minegate/internal/database/influx"
	"github.com/bardlex/minegate/internal/database/postgres"
	"github.com/bardlex/minegate/internal/database/redis"
	"github.com/bardlex/minegate/pkg/circuit"
	"github.com/bardlex/minegate/pkg/errors"
	"github.com/bardlex/minegate/pkg/log"
	"github.com/bardlex/minegate/pkg/retry"
)

// Manager owns the connections to every enabled store
type Manager struct {
	Postgres *postgres.Client
	Redis    *redis.Client
	Influx   *influx.Client

	// Repositories
	Sessions *postgres.SessionRepository

	logger *log.Logger

	// Error handling for history writes
	circuitBreaker *circuit.Breaker
	retryPolicy    retry.Policy
}

// Config selects the stores to connect; nil entries stay disabled
type Config struct {
	Postgres *postgres.Config
	Redis    *redis.Config
	Influx   *influx.Config
}

// NewManager connects every configured store. A failure closes whatever was
// already opened.
func NewManager(ctx context.Context, cfg *Config, logger *log.Logger) (*Manager, error) {
	m := &Manager{
		logger:      logger.WithComponent("database"),
		retryPolicy: retry.Storage(),
	}

	cbConfig := circuit.DefaultConfig("postgres")
	cbConfig.MaxFailures = 3
	cbConfig.SuccessRequired = 2
	cbConfig.OnStateChange = func(name string, from, to circuit.State) {
		m.logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
	}
	m.circuitBreaker = circuit.New(cbConfig)

	if cfg.Postgres != nil {
		pgClient, err := postgres.NewClient(ctx, cfg.Postgres)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeStorage, "postgres_connection",
				"failed to connect to PostgreSQL database")
		}
		m.Postgres = pgClient

		sessions := postgres.NewSessionRepository(pgClient.DB())
		if err := sessions.EnsureSchema(ctx); err != nil {
			m.closeOnError()
			return nil, errors.Wrap(err, errors.ErrorTypeStorage, "postgres_schema",
				"failed to prepare session history schema")
		}
		m.Sessions = sessions
	}

	if cfg.Redis != nil {
		redisClient, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			m.closeOnError()
			return nil, errors.Wrap(err, errors.ErrorTypeStorage, "redis_connection",
				"failed to connect to Redis database")
		}
		m.Redis = redisClient
	}

	if cfg.Influx != nil {
		influxClient, err := influx.NewClient(ctx, cfg.Influx, logger)
		if err != nil {
			m.closeOnError()
			return nil, errors.Wrap(err, errors.ErrorTypeStorage, "influx_connection",
				"failed to connect to InfluxDB database")
		}
		m.Influx = influxClient
	}

	return m, nil
}

func (m *Manager) closeOnError() {
	if err := m.Close(); err != nil {
		m.logger.WithError(err).Warn("cleanup after failed connect")
	}
}

// Close closes all open connections
func (m *Manager) Close() error {
	var errs []error

	if m.Postgres != nil {
		if err := m.Postgres.Close(); err != nil {
			errs = append(errs, fmt.Errorf("PostgreSQL close error: %w", err))
		}
	}

	if m.Redis != nil {
		if err := m.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close error: %w", err))
		}
	}

	if m.Influx != nil {
		m.Influx.Close()
	}

	if len(errs) > 0 {
		return fmt.Errorf("database close errors: %v", errs)
	}

	return nil
}

// Checks returns a health probe per enabled store
func (m *Manager) Checks() map[string]func(context.Context) error {
	checks := make(map[string]func(context.Context) error)
	if m.Postgres != nil {
		checks["postgres"] = m.Postgres.Health
	}
	if m.Redis != nil {
		checks["redis"] = m.Redis.Health
	}
	if m.Influx != nil {
		checks["influx"] = m.Influx.Health
	}
	return checks
}

// Health checks every enabled store
func (m *Manager) Health(ctx context.Context) error {
	for name, check := range m.Checks() {
		if err := check(ctx); err != nil {
			return fmt.Errorf("%s health check failed: %w", name, err)
		}
	}
	return nil
}

// Session history operations

// historyWrite runs one history mutation behind the breaker and retry policy
func (m *Manager) historyWrite(ctx context.Context, op, sessionID string, fn func(ctx context.Context) error) error {
	if m.Sessions == nil {
		return nil
	}

	return m.circuitBreaker.Execute(ctx, func(ctx context.Context) error {
		return retry.Do(ctx, m.retryPolicy, func(ctx context.Context) error {
			if err := fn(ctx); err != nil {
				return errors.Wrap(err, errors.ErrorTypeStorage, op,
					"failed to update session history").
					WithContext("session_id", sessionID)
			}
			return nil
		})
	})
}

// RecordStart stores a freshly started session
func (m *Manager) RecordStart(ctx context.Context, rec *postgres.SessionRecord) error {
	return m.historyWrite(ctx, "record_start", rec.SessionID, func(ctx context.Context) error {
		return m.Sessions.CreateSession(ctx, rec)
	})
}

// RecordPause stores the state file of a paused session
func (m *Manager) RecordPause(ctx context.Context, sessionID, stateFile string) error {
	return m.historyWrite(ctx, "record_pause", sessionID, func(ctx context.Context) error {
		return m.Sessions.MarkPaused(ctx, sessionID, stateFile)
	})
}

// RecordResume stores the session created by resuming stateFile
func (m *Manager) RecordResume(ctx context.Context, sessionID, stateFile string) error {
	return m.historyWrite(ctx, "record_resume", sessionID, func(ctx context.Context) error {
		return m.Sessions.CreateResumedSession(ctx, sessionID, stateFile)
	})
}

// RecordSolution marks a session solved
func (m *Manager) RecordSolution(ctx context.Context, sessionID, nonce string) error {
	return m.historyWrite(ctx, "record_solution", sessionID, func(ctx context.Context) error {
		_, err := m.Sessions.MarkSolved(ctx, sessionID, nonce)
		return err
	})
}

// ListSessions returns history rows, newest first
func (m *Manager) ListSessions(ctx context.Context, limit, offset int) ([]*postgres.SessionRecord, error) {
	if m.Sessions == nil {
		return nil, errors.New(errors.ErrorTypeStorage, "list_sessions", "session history is not enabled")
	}
	return m.Sessions.ListSessions(ctx, limit, offset)
}

// GetSession returns one history row or postgres.ErrSessionNotFound
func (m *Manager) GetSession(ctx context.Context, sessionID string) (*postgres.SessionRecord, error) {
	if m.Sessions == nil {
		return nil, errors.New(errors.ErrorTypeStorage, "get_session", "session history is not enabled")
	}
	return m.Sessions.GetSession(ctx, sessionID)
}

// Metrics operations, no-ops when InfluxDB is disabled

// WriteRequestMetric records one served HTTP request
func (m *Manager) WriteRequestMetric(method, route string, status int, duration time.Duration) {
	if m.Influx != nil {
		m.Influx.WriteRequestMetric(method, route, status, duration)
	}
}

// WriteStatusMetric records one status observation
func (m *Manager) WriteStatusMetric(sessionID string, isMining, solutionFound bool, totalHashes uint64, hashRate float64) {
	if m.Influx != nil {
		m.Influx.WriteStatusMetric(sessionID, isMining, solutionFound, totalHashes, hashRate)
	}
}

// Idempotency and rate limiting, delegated to Redis

// LookupStart returns the session started under key, or "" when none was
func (m *Manager) LookupStart(ctx context.Context, key string) (string, error) {
	if m.Redis == nil {
		return "", nil
	}
	rec, err := m.Redis.LookupStart(ctx, key)
	if err != nil || rec == nil {
		return "", err
	}
	return rec.SessionID, nil
}

// StoreStart remembers sessionID under key for ttl
func (m *Manager) StoreStart(ctx context.Context, key, sessionID string, ttl time.Duration) error {
	if m.Redis == nil {
		return nil
	}
	stored, err := m.Redis.StoreStart(ctx, key, sessionID, ttl)
	if err != nil {
		return err
	}
	if !stored {
		m.logger.Warn("idempotency key already taken", "key", key, "session_id", sessionID)
	}
	return nil
}

// Allow counts a hit for subject and reports whether it fits in limit per window
func (m *Manager) Allow(ctx context.Context, subject string, limit int, window time.Duration) (bool, error) {
	if m.Redis == nil {
		return true, nil
	}
	return m.Redis.CheckRateLimit(ctx, subject, int64(limit), window)
}
