// Package config loads service configuration from the environment.
// Credentials are validated once at startup: a missing Gemini API key or
// session secret is a fatal configuration error, not something rediscovered
// on every request.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/irvinng98/New2Canada/internal/routing"
)

type Config struct {
	Server  ServerConfig
	Gemini  GeminiConfig
	Session SessionConfig
	Storage StorageConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port int
}

type GeminiConfig struct {
	APIKey        string
	FallbackModel string
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

type StorageConfig struct {
	DataDir string
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{Port: 8080},
		Gemini: GeminiConfig{
			FallbackModel: routing.FallbackModelID,
		},
		Session: SessionConfig{TTL: 24 * time.Hour},
		Storage: StorageConfig{DataDir: defaultDataDir()},
		Log:     LogConfig{Level: "info"},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".n2c"
	}
	return filepath.Join(home, ".n2c")
}

// Load reads configuration from N2C_* environment variables over built-in
// defaults. GEMINI_API_KEY is honored as a fallback for the credential so
// the standard variable name keeps working.
func Load() (Config, error) {
	cfg := defaults()

	applyEnv(&cfg)

	if cfg.Gemini.APIKey == "" {
		return Config{}, fmt.Errorf("missing required config: Gemini API key. Set N2C_GEMINI_API_KEY (or GEMINI_API_KEY)")
	}
	if cfg.Session.Secret == "" {
		return Config{}, fmt.Errorf("missing required config: session secret. Set N2C_SESSION_SECRET")
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Gemini.APIKey, "N2C_GEMINI_API_KEY")
	if cfg.Gemini.APIKey == "" {
		setString(&cfg.Gemini.APIKey, "GEMINI_API_KEY")
	}
	setString(&cfg.Gemini.FallbackModel, "N2C_GEMINI_FALLBACK_MODEL")
	setString(&cfg.Session.Secret, "N2C_SESSION_SECRET")
	setString(&cfg.Storage.DataDir, "N2C_STORAGE_DATA_DIR")
	setString(&cfg.Log.Level, "N2C_LOG_LEVEL")
	setInt(&cfg.Server.Port, "N2C_SERVER_PORT")
	setDuration(&cfg.Session.TTL, "N2C_SESSION_TTL")
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func setInt(dst *int, env string) {
	raw := os.Getenv(env)
	if raw == "" {
		return
	}
	if i, err := strconv.Atoi(raw); err == nil {
		*dst = i
	} else {
		fmt.Fprintf(os.Stderr, "[WARN] could not parse integer from env var %s=%q: %v. Using default value.\n", env, raw, err)
	}
}

func setDuration(dst *time.Duration, env string) {
	raw := os.Getenv(env)
	if raw == "" {
		return
	}
	if d, err := time.ParseDuration(raw); err == nil {
		*dst = d
	} else {
		fmt.Fprintf(os.Stderr, "[WARN] could not parse duration from env var %s=%q: %v. Using default value.\n", env, raw, err)
	}
}
