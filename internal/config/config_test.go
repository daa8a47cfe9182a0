package config

import (
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid file backend config",
			config: Config{
				DataBackend: "file",
				DataFile:    "./data/expensebook.json",
				LogLevel:    "info",
			},
			wantErr: false,
		},
		{
			name: "valid sqlite backend config",
			config: Config{
				DataBackend:  "sqlite",
				SQLiteDBPath: "./test.db",
				LogLevel:     "debug",
			},
			wantErr: false,
		},
		{
			name: "invalid data backend",
			config: Config{
				DataBackend: "postgres",
				LogLevel:    "info",
			},
			wantErr:     true,
			errorString: "invalid data backend 'postgres'",
		},
		{
			name: "file backend without path",
			config: Config{
				DataBackend: "file",
				DataFile:    "",
				LogLevel:    "info",
			},
			wantErr:     true,
			errorString: "DATA_FILE must be set",
		},
		{
			name: "sqlite backend without path",
			config: Config{
				DataBackend:  "sqlite",
				SQLiteDBPath: "",
				LogLevel:     "info",
			},
			wantErr:     true,
			errorString: "SQLITE_DB_PATH must be set",
		},
		{
			name: "invalid log level",
			config: Config{
				DataBackend: "file",
				DataFile:    "./data/expensebook.json",
				LogLevel:    "loud",
			},
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	// Clear any ambient environment so defaults apply.
	for _, key := range []string{"DATA_BACKEND", "DATA_FILE", "SQLITE_DB_PATH", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.DataBackend != "file" {
		t.Fatalf("DataBackend = %q, want file", cfg.DataBackend)
	}
	if cfg.DataFile != "./data/expensebook.json" {
		t.Fatalf("DataFile = %q", cfg.DataFile)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("SQLITE_DB_PATH", "/tmp/eb.db")
	t.Setenv("LOG_LEVEL", "warn")

	cfg := Load()
	if cfg.DataBackend != "sqlite" {
		t.Fatalf("DataBackend = %q, want sqlite", cfg.DataBackend)
	}
	if cfg.SQLiteDBPath != "/tmp/eb.db" {
		t.Fatalf("SQLiteDBPath = %q", cfg.SQLiteDBPath)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config should validate: %v", err)
	}
}
