package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Session store backends.
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Mock    MockConfig
}

type BackendConfig struct {
	URL       string        `env:"BACKEND_URL,        default=http://localhost:8081"`
	Timeout   time.Duration `env:"BACKEND_TIMEOUT,    default=10s"`
	RateLimit float64       `env:"BACKEND_RATE_LIMIT, default=0"`
	Burst     int           `env:"BACKEND_BURST,      default=5"`
}

type SessionConfig struct {
	Store string `env:"SESSION_STORE, default=file"`
	// File defaults to <user config dir>/storefront/session.json.
	File string `env:"SESSION_FILE"`
	// ID names the session document/key set in shared stores.
	ID string `env:"SESSION_ID, default=default"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=storefront"`
}

type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR,       default=localhost:6379"`
	Password  string `env:"REDIS_PASSWORD"`
	DB        int    `env:"REDIS_DB,         default=0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX, default=storefront:session:"`
}

// MockConfig drives the in-memory library backend used for local runs.
type MockConfig struct {
	Port      string        `env:"MOCK_PORT,       default=8081"`
	JWTSecret string        `env:"MOCK_JWT_SECRET, default=dev-secret"`
	TokenTTL  time.Duration `env:"MOCK_TOKEN_TTL,  default=24h"`
}

// IsDevelopment reports whether ENV selects developer-friendly defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads an optional .env file and then the environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	switch cfg.Session.Store {
	case StoreFile, StoreRedis, StoreMongo, StoreMemory:
	default:
		return nil, fmt.Errorf("config: unknown SESSION_STORE %q", cfg.Session.Store)
	}

	if cfg.Session.Store == StoreFile && cfg.Session.File == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("config: locate session file: %w", err)
		}
		cfg.Session.File = filepath.Join(dir, "storefront", "session.json")
	}
	return &cfg, nil
}

// MustLoad is Load for process start-up, where a bad environment is fatal.
func MustLoad() *Config {
	cfg, err := Load(context.Background())
	if err != nil {
		panic(err)
	}
	return cfg
}
