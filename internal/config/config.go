package config

import (
	"fmt"
	"os"
	"strings"

	"expensebook/internal/log"
)

// Config holds everything the binaries read from the environment.
type Config struct {
	// Backend selection: "file" or "sqlite".
	DataBackend string

	// File backend
	DataFile string

	// SQLite backend
	SQLiteDBPath string

	// Logging
	LogLevel string
}

// Load reads the environment, falling back to local-development defaults.
func Load() *Config {
	return &Config{
		DataBackend:  getEnv("DATA_BACKEND", "file"),
		DataFile:     getEnv("DATA_FILE", "./data/expensebook.json"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/expensebook.db"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
}

// Validate returns an error describing every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	switch c.DataBackend {
	case "file":
		if c.DataFile == "" {
			problems = append(problems, "DATA_FILE must be set for the file backend")
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			problems = append(problems, "SQLITE_DB_PATH must be set for the sqlite backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid data backend '%s': must be one of [file sqlite]", c.DataBackend))
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
