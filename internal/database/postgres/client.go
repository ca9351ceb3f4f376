// Package postgres provides the PostgreSQL session history store for minegate.
// It records every session the gateway starts or resumes, and its pause and
// solution transitions.
package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/bardlex/minegate/pkg/errors"
)

// Client owns the connection pool of the history database
type Client struct {
	db *sql.DB
}

// Config holds PostgreSQL connection configuration
type Config struct {
	// URL is a postgres:// URL or a key=value connection string
	URL string

	// ApplicationName is reported to the server unless URL sets its own
	ApplicationName string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	// PingTimeout bounds the connectivity check made by NewClient
	PingTimeout time.Duration
}

// DefaultConfig returns pool settings sized for a single gateway instance
func DefaultConfig(url string) *Config {
	return &Config{
		URL:             url,
		ApplicationName: "minegate",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
		PingTimeout:     5 * time.Second,
	}
}

// DSN returns the key=value connection string for cfg
func (cfg *Config) DSN() (string, error) {
	dsn := strings.TrimSpace(cfg.URL)
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		parsed, err := pq.ParseURL(dsn)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrorTypeStorage, "postgres_dsn", "invalid PostgreSQL URL")
		}
		dsn = parsed
	}

	if cfg.ApplicationName != "" {
		dsn = strings.TrimSpace(dsn + " fallback_application_name='" + cfg.ApplicationName + "'")
	}
	return dsn, nil
}

// NewClient opens the pool and checks that the server answers
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	connector, err := pq.NewConnector(dsn)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeStorage, "postgres_open", "invalid PostgreSQL connection settings")
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx := ctx
	if cfg.PingTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.PingTimeout)
		defer cancel()
	}

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, errors.ErrorTypeStorage, "postgres_ping", "PostgreSQL is unreachable")
	}

	return &Client{db: db}, nil
}

// Close closes the database connection
func (c *Client) Close() error {
	return c.db.Close()
}

// Health pings the server through the pool
func (c *Client) Health(ctx context.Context) error {
	if err := c.db.PingContext(ctx); err != nil {
		stats := c.db.Stats()
		return errors.Wrap(err, errors.ErrorTypeStorage, "postgres_health", "PostgreSQL is unreachable").
			WithContext("open_connections", stats.OpenConnections).
			WithContext("in_use", stats.InUse)
	}
	return nil
}

// DB returns the underlying sql.DB
func (c *Client) DB() *sql.DB {
	return c.db
}
