// Package config provides configuration management for the minegate gateway.
// Values come from built-in defaults, an optional config file (CONFIG_FILE)
// and environment variables, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the global configuration for the gateway
type Config struct {
	// Service identification
	ServiceName string
	Version     string
	Environment string

	// HTTP listener
	ListenAddr      string
	ListenPort      int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	// Miner service connection
	MinerGRPCAddr     string
	MinerReadyTimeout time.Duration

	// Status watch
	WatchInterval time.Duration

	// Optional integrations, disabled when the address is empty
	KafkaBrokers   []string
	KafkaTopic     string
	PostgresURL    string
	RedisURL       string
	IdempotencyTTL time.Duration
	RateLimit      int
	InfluxURL      string
	InfluxToken    string
	InfluxOrg      string
	InfluxBucket   string

	// Logging
	LogLevel  string
	LogFormat string
}

// ListenAddress returns host:port for the HTTP server
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.ListenAddr, c.ListenPort)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_name", "minegate")
	v.SetDefault("version", "dev")
	v.SetDefault("environment", "development")

	v.SetDefault("listen_addr", "0.0.0.0")
	v.SetDefault("listen_port", 8001)
	v.SetDefault("read_timeout", 30*time.Second)
	v.SetDefault("write_timeout", 0)
	v.SetDefault("idle_timeout", 120*time.Second)
	v.SetDefault("shutdown_timeout", 30*time.Second)
	v.SetDefault("cors_allow_origins", "*")

	v.SetDefault("miner_grpc_addr", "localhost:50051")
	v.SetDefault("miner_ready_timeout", 5*time.Second)

	v.SetDefault("watch_interval", time.Second)

	v.SetDefault("kafka_brokers", "")
	v.SetDefault("kafka_topic", "mining.gateway.events")
	v.SetDefault("postgres_url", "")
	v.SetDefault("redis_url", "")
	v.SetDefault("idempotency_ttl", 24*time.Hour)
	v.SetDefault("rate_limit_per_minute", 0)
	v.SetDefault("influx_url", "")
	v.SetDefault("influx_token", "")
	v.SetDefault("influx_org", "minegate")
	v.SetDefault("influx_bucket", "gateway")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
}

// Load loads configuration from the environment and an optional config file
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		ServiceName: v.GetString("service_name"),
		Version:     v.GetString("version"),
		Environment: v.GetString("environment"),

		ListenAddr:      v.GetString("listen_addr"),
		ListenPort:      v.GetInt("listen_port"),
		ReadTimeout:     v.GetDuration("read_timeout"),
		WriteTimeout:    v.GetDuration("write_timeout"),
		IdleTimeout:     v.GetDuration("idle_timeout"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		CORSOrigins:     splitList(v.GetString("cors_allow_origins")),

		MinerGRPCAddr:     v.GetString("miner_grpc_addr"),
		MinerReadyTimeout: v.GetDuration("miner_ready_timeout"),

		WatchInterval: v.GetDuration("watch_interval"),

		KafkaBrokers:   splitList(v.GetString("kafka_brokers")),
		KafkaTopic:     v.GetString("kafka_topic"),
		PostgresURL:    v.GetString("postgres_url"),
		RedisURL:       v.GetString("redis_url"),
		IdempotencyTTL: v.GetDuration("idempotency_ttl"),
		RateLimit:      v.GetInt("rate_limit_per_minute"),
		InfluxURL:      v.GetString("influx_url"),
		InfluxToken:    v.GetString("influx_token"),
		InfluxOrg:      v.GetString("influx_org"),
		InfluxBucket:   v.GetString("influx_bucket"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate performs basic validation of configuration values
func (c *Config) validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("SERVICE_NAME cannot be empty")
	}

	if c.ListenPort <= 0 || c.ListenPort > 65535 {
		return fmt.Errorf("LISTEN_PORT must be between 1 and 65535")
	}

	if c.MinerGRPCAddr == "" {
		return fmt.Errorf("MINER_GRPC_ADDR cannot be empty")
	}

	if c.WatchInterval <= 0 {
		return fmt.Errorf("WATCH_INTERVAL must be positive")
	}

	if c.RedisURL != "" && c.IdempotencyTTL <= 0 {
		return fmt.Errorf("IDEMPOTENCY_TTL must be positive")
	}

	if c.RateLimit < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE cannot be negative")
	}

	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		return fmt.Errorf("KAFKA_TOPIC cannot be empty when KAFKA_BROKERS is set")
	}

	return nil
}

// splitList parses a comma-separated value, dropping blanks
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
