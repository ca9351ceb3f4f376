package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"
)

func TestConfigFromURL(t *testing.T) {
	tests := []struct {
		url      string
		wantAddr string
		wantDB   int
		wantErr  bool
	}{
		{"redis://localhost:6379/0", "localhost:6379", 0, false},
		{"redis://:secret@cache:6380/3", "cache:6380", 3, false},
		{"http://localhost:6379", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			cfg, err := ConfigFromURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ConfigFromURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			opts, err := cfg.Options()
			if err != nil {
				t.Fatalf("Options() error = %v", err)
			}
			if opts.Addr != tt.wantAddr || opts.DB != tt.wantDB {
				t.Errorf("Options() = %s/%d, want %s/%d", opts.Addr, opts.DB, tt.wantAddr, tt.wantDB)
			}
			if cfg.KeyPrefix != DefaultKeyPrefix {
				t.Errorf("KeyPrefix = %q", cfg.KeyPrefix)
			}
		})
	}
}

func TestConfig_OptionsKeepURLSettings(t *testing.T) {
	cfg, err := ConfigFromURL("redis://cache:6379/1?pool_size=42&dial_timeout=7s")
	if err != nil {
		t.Fatalf("ConfigFromURL() error = %v", err)
	}

	opts, err := cfg.Options()
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	if opts.PoolSize != 42 {
		t.Errorf("PoolSize = %d, want 42 from the URL", opts.PoolSize)
	}
	if opts.DialTimeout != 7*time.Second {
		t.Errorf("DialTimeout = %v, want 7s from the URL", opts.DialTimeout)
	}
	if opts.MaxRetries != cfg.MaxRetries || opts.ReadTimeout != cfg.ReadTimeout {
		t.Errorf("defaults not applied: %+v", opts)
	}
}

func TestRateLimitKey(t *testing.T) {
	now := time.Unix(1_700_000_040, 0) // window boundary

	a := rateLimitKey(DefaultKeyPrefix, "10.0.0.1", time.Minute, now)
	b := rateLimitKey(DefaultKeyPrefix, "10.0.0.1", time.Minute, now.Add(20*time.Second))
	c := rateLimitKey(DefaultKeyPrefix, "10.0.0.1", time.Minute, now.Add(70*time.Second))

	if a != b {
		t.Errorf("same window produced different keys: %s vs %s", a, b)
	}
	if a == c {
		t.Errorf("next window reused key %s", a)
	}
	if want := fmt.Sprintf("minegate:rl:10.0.0.1:%d", now.Unix()/60); a != want {
		t.Errorf("rateLimitKey() = %s, want %s", a, want)
	}
}

func newTestClient(t *testing.T) *Client {
	t.Helper()

	url := os.Getenv("MINEGATE_TEST_REDIS_URL")
	if url == "" || testing.Short() {
		t.Skip("Skipping integration test: MINEGATE_TEST_REDIS_URL not set")
	}

	cfg, err := ConfigFromURL(url)
	if err != nil {
		t.Fatalf("ConfigFromURL() error = %v", err)
	}
	client, err := NewClient(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestClient_Idempotency(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	key := fmt.Sprintf("test-%d", time.Now().UnixNano())

	rec, err := client.LookupStart(ctx, key)
	if err != nil || rec != nil {
		t.Fatalf("LookupStart(new key) = %v, %v; want nil, nil", rec, err)
	}

	stored, err := client.StoreStart(ctx, key, "s-1", time.Minute)
	if err != nil || !stored {
		t.Fatalf("StoreStart() = %v, %v; want true", stored, err)
	}

	stored, err = client.StoreStart(ctx, key, "s-2", time.Minute)
	if err != nil || stored {
		t.Errorf("second StoreStart() = %v, %v; want false", stored, err)
	}

	rec, err = client.LookupStart(ctx, key)
	if err != nil {
		t.Fatalf("LookupStart() error = %v", err)
	}
	if rec == nil || rec.SessionID != "s-1" {
		t.Errorf("LookupStart() = %+v, want s-1", rec)
	}
}

func TestClient_CheckRateLimit(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	subject := fmt.Sprintf("test-%d", time.Now().UnixNano())

	for i := 0; i < 2; i++ {
		ok, err := client.CheckRateLimit(ctx, subject, 2, time.Hour)
		if err != nil || !ok {
			t.Fatalf("hit %d: CheckRateLimit() = %v, %v; want true", i, ok, err)
		}
	}

	ok, err := client.CheckRateLimit(ctx, subject, 2, time.Hour)
	if err != nil || ok {
		t.Errorf("third hit: CheckRateLimit() = %v, %v; want false", ok, err)
	}
}
