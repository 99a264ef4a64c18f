// Package config loads process settings from the environment, optionally
// seeded from a .env file. LLM provider settings live in the llm package.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults.
const (
	DefaultAddr          = ":8080"
	DefaultCredentialTTL = time.Hour
	DefaultLogMode       = "dev"
)

// Config aggregates non-LLM settings.
type Config struct {
	Server  ServerConfig
	Scratch ScratchConfig
	Log     LogConfig
}

// ServerConfig describes the HTTP API.
type ServerConfig struct {
	Addr string

	// CredentialTTL is how long a validated API key is remembered for a
	// client session.
	CredentialTTL time.Duration
}

// ScratchConfig selects the scratch store. An empty RedisAddr means the
// in-process store.
type ScratchConfig struct {
	RedisAddr string
}

// LogConfig selects the logger mode (dev, prod or nop) and an optional
// file sink.
type LogConfig struct {
	Mode string
	File string
}

// LoadDotEnv loads variables from the given files, or ./.env when none
// are given. Variables already set in the environment win. Missing files
// are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads settings from STUDENTSIM_* variables.
func Load() (*Config, error) {
	addr, err := loadAddr()
	if err != nil {
		return nil, err
	}

	ttl := DefaultCredentialTTL
	if v := strings.TrimSpace(os.Getenv("STUDENTSIM_CREDENTIAL_TTL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid STUDENTSIM_CREDENTIAL_TTL value: %q", v)
		}
		ttl = d
	}

	mode := strings.TrimSpace(os.Getenv("STUDENTSIM_LOG"))
	if mode == "" {
		mode = DefaultLogMode
	}

	return &Config{
		Server:  ServerConfig{Addr: addr, CredentialTTL: ttl},
		Scratch: ScratchConfig{RedisAddr: strings.TrimSpace(os.Getenv("STUDENTSIM_REDIS_ADDR"))},
		Log: LogConfig{
			Mode: mode,
			File: strings.TrimSpace(os.Getenv("STUDENTSIM_LOG_FILE")),
		},
	}, nil
}

// loadAddr accepts a bare port ("9000") or a full listen address.
func loadAddr() (string, error) {
	v := strings.TrimSpace(os.Getenv("STUDENTSIM_ADDR"))
	if v == "" {
		return DefaultAddr, nil
	}
	if strings.Contains(v, " ") {
		return "", fmt.Errorf("invalid STUDENTSIM_ADDR value: %q", v)
	}
	if strings.Contains(v, ":") {
		return v, nil
	}
	return ":" + v, nil
}
