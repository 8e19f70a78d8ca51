package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store names accepted by Settings.Store.
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Settings is the process configuration read from the environment.
type Settings struct {
	Host        string `env:"MAZE_HOST" envDefault:"localhost"`
	Port        int    `env:"MAZE_PORT" envDefault:"8080"`
	ConfigDir   string `env:"MAZE_CONFIG_DIR" envDefault:"configs"`
	SessionsDir string `env:"MAZE_SESSIONS_DIR" envDefault:"sessions"`

	Store       string `env:"MAZE_STORE" envDefault:"file"`
	RedisAddr   string `env:"MAZE_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPrefix string `env:"MAZE_REDIS_PREFIX" envDefault:"maze:session:"`

	SessionTTL      time.Duration `env:"MAZE_SESSION_TTL" envDefault:"24h"`
	CleanupInterval time.Duration `env:"MAZE_CLEANUP_INTERVAL" envDefault:"1h"`

	LogLevel string `env:"MAZE_LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"MAZE_LOG_FILE"`

	NgrokEnabled   bool   `env:"NGROK_ENABLED" envDefault:"false"`
	NgrokAuthtoken string `env:"NGROK_AUTHTOKEN"`
	NgrokDomain    string `env:"NGROK_DOMAIN"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadSettings reads the optional dotenv files and then the environment.
// Variables already set in the environment win over the files.
func LoadSettings(dotenvFiles ...string) (*Settings, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, file := range dotenvFiles {
		// A missing file is fine; a malformed one is not.
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}

	var s Settings
	if err := ParseEnv(&s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks values the environment parser cannot.
func (s *Settings) Validate() error {
	switch s.Store {
	case StoreFile, StoreRedis, StoreMemory:
	default:
		return fmt.Errorf("MAZE_STORE must be %s, %s or %s, got %q", StoreFile, StoreRedis, StoreMemory, s.Store)
	}
	if s.Port < 0 || s.Port > 65535 {
		return fmt.Errorf("MAZE_PORT out of range: %d", s.Port)
	}
	if s.SessionTTL < 0 || s.CleanupInterval < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	return nil
}

// Addr returns host:port for the HTTP listener.
func (s *Settings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
