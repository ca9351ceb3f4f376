// Package main implements the minegate service.
// It exposes the miner's start, pause, resume and status operations over HTTP
// and forwards them to the MinerService over gRPC.
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bardlex/minegate/internal/config"
	"github.com/bardlex/minegate/internal/database"
	"github.com/bardlex/minegate/internal/database/influx"
	"github.com/bardlex/minegate/internal/database/postgres"
	"github.com/bardlex/minegate/internal/database/redis"
	"github.com/bardlex/minegate/internal/gateway"
	"github.com/bardlex/minegate/internal/messaging"
	"github.com/bardlex/minegate/internal/miner"
	"github.com/bardlex/minegate/pkg/log"
	"github.com/bardlex/minegate/pkg/retry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := log.New(cfg.ServiceName, cfg.Version, cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = logger.Sync() }()

	logger.Info("starting minegate",
		"version", cfg.Version,
		"listen", cfg.ListenAddress(),
		"miner", cfg.MinerGRPCAddr,
	)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, err := NewGatewayServer(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Error("failed to create gateway")
		os.Exit(1)
	}

	server.WaitForMiner(ctx)

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	exitCode := 0
	select {
	case <-sigChan:
		logger.Info("shutdown signal received")
	case err := <-errChan:
		logger.WithError(err).Error("server failed")
		exitCode = 1
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("shutdown failed")
		exitCode = 1
	}

	logger.Info("minegate stopped")
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// GatewayServer owns the HTTP listener and every client the gateway talks to
type GatewayServer struct {
	cfg    *config.Config
	logger *log.Logger

	miner     *miner.Client
	kafka     *messaging.KafkaClient
	dbManager *database.Manager

	handler  *gateway.Handler
	http     *http.Server
	listener net.Listener

	// baseCtx parents every request context; cancelling it ends open watches
	baseCtx    context.Context
	cancelBase context.CancelFunc
}

// NewGatewayServer dials the miner, connects the enabled integrations and
// builds the HTTP server. Nothing is listening until Start.
func NewGatewayServer(ctx context.Context, cfg *config.Config, logger *log.Logger) (*GatewayServer, error) {
	s := &GatewayServer{
		cfg:    cfg,
		logger: logger.WithComponent("server"),
	}

	minerClient, err := miner.Dial(cfg.MinerGRPCAddr, logger, miner.ClientOptions{})
	if err != nil {
		return nil, err
	}
	s.miner = minerClient

	opts := gateway.Options{
		Logger:         logger,
		Miner:          minerClient,
		IdempotencyTTL: cfg.IdempotencyTTL,
		RateLimit:      cfg.RateLimit,
		MinerState:     minerClient.State,
		WatchInterval:  cfg.WatchInterval,
		CORSOrigins:    cfg.CORSOrigins,
		ServiceName:    cfg.ServiceName,
		Version:        cfg.Version,
		HealthChecks: map[string]gateway.HealthCheck{
			"miner": minerClient.Health,
		},
	}

	if len(cfg.KafkaBrokers) > 0 {
		s.kafka = messaging.NewKafkaClient(cfg.KafkaBrokers, logger)
		opts.Events = messaging.NewEventPublisher(s.kafka, cfg.KafkaTopic)
		opts.HealthChecks["kafka"] = s.kafka.Health
		s.logger.Info("mining events enabled", "topic", cfg.KafkaTopic)
	}

	dbConfig, err := buildDatabaseConfig(cfg)
	if err != nil {
		s.closeClients()
		return nil, err
	}

	dbManager, err := database.NewManager(ctx, dbConfig, logger)
	if err != nil {
		s.closeClients()
		return nil, err
	}
	s.dbManager = dbManager

	for name, check := range dbManager.Checks() {
		opts.HealthChecks[name] = check
	}
	if dbManager.Sessions != nil {
		opts.History = dbManager
		s.logger.Info("session history enabled")
	}
	if dbManager.Redis != nil {
		opts.Idempotency = dbManager
		opts.Limiter = dbManager
		s.logger.Info("idempotent starts enabled", "ttl", cfg.IdempotencyTTL, "rate_limit", cfg.RateLimit)
	}
	if dbManager.Influx != nil {
		opts.Metrics = dbManager
		s.logger.Info("metrics enabled", "bucket", cfg.InfluxBucket)
	}

	s.handler = gateway.NewHandler(opts)

	router, err := gateway.NewRouter(s.handler)
	if err != nil {
		s.closeClients()
		return nil, err
	}

	s.baseCtx, s.cancelBase = context.WithCancel(context.Background())
	s.http = &http.Server{
		Addr:         cfg.ListenAddress(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return s.baseCtx },
	}

	return s, nil
}

// buildDatabaseConfig enables each store whose URL is set
func buildDatabaseConfig(cfg *config.Config) (*database.Config, error) {
	dbConfig := &database.Config{}

	if cfg.PostgresURL != "" {
		dbConfig.Postgres = postgres.DefaultConfig(cfg.PostgresURL)
	}

	if cfg.RedisURL != "" {
		redisConfig, err := redis.ConfigFromURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		dbConfig.Redis = redisConfig
	}

	if cfg.InfluxURL != "" {
		dbConfig.Influx = &influx.Config{
			URL:    cfg.InfluxURL,
			Token:  cfg.InfluxToken,
			Org:    cfg.InfluxOrg,
			Bucket: cfg.InfluxBucket,
		}
	}

	return dbConfig, nil
}

// WaitForMiner probes the miner until it is ready or MINER_READY_TIMEOUT
// passes. An unready miner is logged, not fatal.
func (s *GatewayServer) WaitForMiner(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.MinerReadyTimeout)
	defer cancel()

	probe := retry.Probe()
	probe.OnRetry = func(attempt int, err error, delay time.Duration) {
		s.logger.Debug("miner not ready yet", "attempt", attempt, "retry_in", delay, "state", s.miner.State())
	}

	err := retry.Do(ctx, probe, s.miner.Ping)
	if err != nil {
		s.logger.WithError(err).Warn("miner service not ready, requests will fail until it is",
			"state", s.miner.State())
		return
	}

	s.logger.Info("miner service ready")
}

// Start listens and serves until Shutdown. It returns nil after a clean shutdown.
func (s *GatewayServer) Start() error {
	listener, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.http.Addr, err)
	}
	return s.Serve(listener)
}

// Serve serves HTTP on listener
func (s *GatewayServer) Serve(listener net.Listener) error {
	s.listener = listener
	s.logger.Info("server listening", "address", listener.Addr().String())

	if err := s.http.Serve(listener); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, drains in-flight ones, ends open watches,
// waits for background side effects, then closes every client.
func (s *GatewayServer) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	start := time.Now()

	var shutdownErr error
	if err := s.http.Shutdown(ctx); err != nil {
		shutdownErr = fmt.Errorf("http shutdown: %w", err)
	}

	// Hijacked watch connections are not drained by http.Shutdown
	s.cancelBase()

	// Wait for watches, event and history writes
	done := make(chan struct{})
	go func() {
		s.handler.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn("shutdown timeout exceeded with side effects pending")
	}

	s.closeClients()
	s.logger.LogDuration("shutdown", time.Since(start))
	return shutdownErr
}

// closeClients closes the integrations and the miner connection
func (s *GatewayServer) closeClients() {
	if s.kafka != nil {
		if err := s.kafka.Close(); err != nil {
			s.logger.WithError(err).Error("failed to close Kafka client")
		}
	}

	if s.dbManager != nil {
		if err := s.dbManager.Close(); err != nil {
			s.logger.WithError(err).Error("failed to close database manager")
		}
	}

	if s.miner != nil {
		if err := s.miner.Close(); err != nil {
			s.logger.WithError(err).Error("failed to close miner connection")
		}
	}
}
