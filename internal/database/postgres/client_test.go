package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/bardlex/minegate/pkg/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("postgres://localhost/minegate")
	if cfg.URL != "postgres://localhost/minegate" {
		t.Errorf("URL = %q", cfg.URL)
	}
	if cfg.MaxOpenConns <= 0 || cfg.MaxIdleConns <= 0 || cfg.ConnMaxLifetime <= 0 || cfg.PingTimeout <= 0 {
		t.Errorf("pool settings should be positive: %+v", cfg)
	}
	if cfg.ApplicationName != "minegate" {
		t.Errorf("ApplicationName = %q", cfg.ApplicationName)
	}
}

func TestConfig_DSN(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr bool
	}{
		{
			name: "url",
			cfg:  Config{URL: "postgres://gw:secret@db:5432/minegate?sslmode=disable"},
			want: "dbname='minegate' host='db' password='secret' port='5432' sslmode='disable' user='gw'",
		},
		{
			name: "url with application name",
			cfg:  Config{URL: "postgresql://db/minegate", ApplicationName: "minegate"},
			want: "dbname='minegate' host='db' fallback_application_name='minegate'",
		},
		{
			name: "key value passes through",
			cfg:  Config{URL: "host=db dbname=minegate"},
			want: "host=db dbname=minegate",
		},
		{
			name:    "bad url",
			cfg:     Config{URL: "postgres://db:%zz/minegate"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.DSN()
			if (err != nil) != tt.wantErr {
				t.Fatalf("DSN() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.IsType(err, errors.ErrorTypeStorage) {
					t.Errorf("error type = %v, want storage", errors.TypeOf(err))
				}
				return
			}
			if got != tt.want {
				t.Errorf("DSN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewClient_InvalidSettings(t *testing.T) {
	cfg := DefaultConfig("host='db")
	cfg.ApplicationName = ""
	cfg.PingTimeout = time.Second

	_, err := NewClient(context.Background(), cfg)
	if err == nil {
		t.Fatal("NewClient() should reject an unterminated quote")
	}
	if !errors.IsType(err, errors.ErrorTypeStorage) {
		t.Errorf("error type = %v, want storage", errors.TypeOf(err))
	}
}
