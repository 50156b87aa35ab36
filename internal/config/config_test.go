package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8082" {
		t.Errorf("expected default port 8082, got %s", cfg.Port)
	}
	if cfg.DataBackend != "file" {
		t.Errorf("expected default backend file, got %s", cfg.DataBackend)
	}
	if cfg.StorageKey != "verkefni_data" {
		t.Errorf("expected default storage key verkefni_data, got %s", cfg.StorageKey)
	}
	if cfg.SyncMode != SyncOff {
		t.Errorf("expected sync off by default, got %s", cfg.SyncMode)
	}
	if cfg.InvoiceCacheTTL != 5*time.Minute {
		t.Errorf("expected 5m cache TTL, got %v", cfg.InvoiceCacheTTL)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestValidateEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("SYNC_MODE", "appsscript")
	t.Setenv("APPS_SCRIPT_URL", "https://script.google.com/macros/s/abc/exec")

	cfg := Load()
	if cfg.Port != "9000" || cfg.DataBackend != "memory" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("config must validate: %v", err)
	}
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Port = "nope" },
			wantMsg: "invalid port",
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.DataBackend = "postgres" },
			wantMsg: "invalid data backend",
		},
		{
			name:    "unknown sync mode",
			mutate:  func(c *Config) { c.SyncMode = "ftp" },
			wantMsg: "invalid sync mode",
		},
		{
			name:    "appsscript without URL",
			mutate:  func(c *Config) { c.SyncMode = SyncAppsScript },
			wantMsg: "APPS_SCRIPT_URL is required",
		},
		{
			name: "amqp without queue",
			mutate: func(c *Config) {
				c.SyncMode = SyncAMQP
				c.AMQPQueue = ""
			},
			wantMsg: "queue name cannot be empty",
		},
		{
			name:    "cache TTL too small",
			mutate:  func(c *Config) { c.InvoiceCacheTTL = 10 * time.Millisecond },
			wantMsg: "invoice cache TTL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected message containing %q, got %v", tt.wantMsg, err)
			}
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Load()
	cfg.Port = "x"
	cfg.DataBackend = "y"
	cfg.SyncMode = "z"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"invalid port", "invalid data backend", "invalid sync mode"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected combined error to contain %q, got %v", want, err)
		}
	}
}

func TestValidateWorker(t *testing.T) {
	cfg := Load()
	if err := cfg.ValidateWorker(); err == nil {
		t.Error("expected worker validation to fail without spreadsheet settings")
	}

	cfg.GoogleSpreadsheetID = "sheet-id"
	cfg.GoogleCredentialsJSON = `{"type":"service_account"}`
	if err := cfg.ValidateWorker(); err != nil {
		t.Errorf("worker config must validate: %v", err)
	}
}
