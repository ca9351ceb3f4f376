package gateway

import (
	"context"
	"time"

	"github.com/bardlex/minegate/internal/database/postgres"
	"github.com/bardlex/minegate/internal/messaging"
)

// EventPublisher publishes session lifecycle events
type EventPublisher interface {
	PublishEvent(ctx context.Context, event *messaging.MiningEvent) error
}

// HistoryStore records and serves session history
type HistoryStore interface {
	RecordStart(ctx context.Context, rec *postgres.SessionRecord) error
	RecordPause(ctx context.Context, sessionID, stateFile string) error
	RecordResume(ctx context.Context, sessionID, stateFile string) error
	RecordSolution(ctx context.Context, sessionID, nonce string) error
	ListSessions(ctx context.Context, limit, offset int) ([]*postgres.SessionRecord, error)
	GetSession(ctx context.Context, sessionID string) (*postgres.SessionRecord, error)
}

// IdempotencyStore maps Idempotency-Key values to started sessions
type IdempotencyStore interface {
	LookupStart(ctx context.Context, key string) (string, error)
	StoreStart(ctx context.Context, key, sessionID string, ttl time.Duration) error
}

// RateLimiter counts hits per subject in fixed windows
type RateLimiter interface {
	Allow(ctx context.Context, subject string, limit int, window time.Duration) (bool, error)
}

// MetricsRecorder receives request and status observations
type MetricsRecorder interface {
	WriteRequestMetric(method, route string, status int, duration time.Duration)
	WriteStatusMetric(sessionID string, isMining, solutionFound bool, totalHashes uint64, hashRate float64)
}

// HealthCheck probes one dependency
type HealthCheck func(ctx context.Context) error
