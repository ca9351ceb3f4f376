package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
	}{
		{
			name:    "default config",
			envVars: map[string]string{},
			wantErr: false,
		},
		{
			name: "custom config",
			envVars: map[string]string{
				"SERVICE_NAME":    "test-gateway",
				"LISTEN_PORT":     "9001",
				"MINER_GRPC_ADDR": "miner:50051",
				"KAFKA_BROKERS":   "k1:9092, k2:9092",
			},
			wantErr: false,
		},
		{
			name:    "invalid port",
			envVars: map[string]string{"LISTEN_PORT": "99999"},
			wantErr: true,
		},
		{
			name:    "negative rate limit",
			envVars: map[string]string{"RATE_LIMIT_PER_MINUTE": "-1"},
			wantErr: true,
		},
		{
			name:    "zero watch interval",
			envVars: map[string]string{"WATCH_INTERVAL": "0s"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg, err := Load()
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				if cfg.ServiceName == "" {
					t.Error("ServiceName should not be empty")
				}
				if cfg.ListenPort <= 0 {
					t.Error("ListenPort should be positive")
				}
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ListenPort != 8001 {
		t.Errorf("ListenPort = %d, want 8001", cfg.ListenPort)
	}
	if cfg.MinerGRPCAddr != "localhost:50051" {
		t.Errorf("MinerGRPCAddr = %q, want localhost:50051", cfg.MinerGRPCAddr)
	}
	if cfg.WatchInterval != time.Second {
		t.Errorf("WatchInterval = %v, want 1s", cfg.WatchInterval)
	}
	if cfg.RateLimit != 0 {
		t.Errorf("RateLimit = %d, want 0", cfg.RateLimit)
	}
	if len(cfg.KafkaBrokers) != 0 || cfg.PostgresURL != "" || cfg.RedisURL != "" || cfg.InfluxURL != "" {
		t.Error("integrations should be disabled by default")
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"*"}) {
		t.Errorf("CORSOrigins = %v, want [*]", cfg.CORSOrigins)
	}
	if got := cfg.ListenAddress(); got != "0.0.0.0:8001" {
		t.Errorf("ListenAddress() = %q", got)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "k1:9092, ,k2:9092")
	t.Setenv("IDEMPOTENCY_TTL", "1h")
	t.Setenv("WATCH_INTERVAL", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !reflect.DeepEqual(cfg.KafkaBrokers, []string{"k1:9092", "k2:9092"}) {
		t.Errorf("KafkaBrokers = %v", cfg.KafkaBrokers)
	}
	if cfg.IdempotencyTTL != time.Hour {
		t.Errorf("IdempotencyTTL = %v, want 1h", cfg.IdempotencyTTL)
	}
	if cfg.WatchInterval != 250*time.Millisecond {
		t.Errorf("WatchInterval = %v, want 250ms", cfg.WatchInterval)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minegate.yaml")
	content := "listen_port: 9100\nminer_grpc_addr: miner.internal:50051\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ListenPort != 9100 {
		t.Errorf("ListenPort = %d, want 9100 from file", cfg.ListenPort)
	}
	if cfg.MinerGRPCAddr != "miner.internal:50051" {
		t.Errorf("MinerGRPCAddr = %q", cfg.MinerGRPCAddr)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, environment should override file", cfg.LogLevel)
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	if _, err := Load(); err == nil {
		t.Error("Load() should fail when CONFIG_FILE does not exist")
	}
}

func TestConfigValidation(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ServiceName:    "test",
			ListenPort:     8001,
			MinerGRPCAddr:  "localhost:50051",
			WatchInterval:  time.Second,
			IdempotencyTTL: time.Hour,
		}
	}

	if err := valid().validate(); err != nil {
		t.Errorf("validate() should not fail for valid config: %v", err)
	}

	mutations := []func(*Config){
		func(c *Config) { c.ServiceName = "" },
		func(c *Config) { c.ListenPort = 0 },
		func(c *Config) { c.MinerGRPCAddr = "" },
		func(c *Config) { c.WatchInterval = 0 },
		func(c *Config) { c.RedisURL = "redis://localhost:6379/0"; c.IdempotencyTTL = 0 },
		func(c *Config) { c.KafkaBrokers = []string{"localhost:9092"}; c.KafkaTopic = "" },
		func(c *Config) { c.RateLimit = -1 },
	}

	for i, mutate := range mutations {
		cfg := valid()
		mutate(cfg)
		if err := cfg.validate(); err == nil {
			t.Errorf("validate() should fail for invalid config %d", i)
		}
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{" a , b,,c ", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		if got := splitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
