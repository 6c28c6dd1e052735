package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	debugBaseURL   = "http://localhost:85/api"
	releaseBaseURL = "https://notaspace.ru/api"
)

type Config struct {
	Env      string `env:"NOTASPACE_ENV,      default=development"`
	BaseURL  string `env:"NOTASPACE_BASE_URL"`
	LogLevel string `env:"LOG_LEVEL,          default=info"`

	Agent    AgentConfig
	Keychain KeychainConfig
	Autosave AutosaveConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

type AgentConfig struct {
	Addr   string `env:"AGENT_ADDR,   default=127.0.0.1:7878"`
	Secret string `env:"AGENT_SECRET"`
}

type KeychainConfig struct {
	Backend    string `env:"KEYCHAIN_BACKEND,    default=file"`
	Path       string `env:"KEYCHAIN_PATH"`
	Passphrase string `env:"KEYCHAIN_PASSPHRASE"`
	Service    string `env:"KEYCHAIN_SERVICE,    default=ru.notaspace.app"`
	Account    string `env:"KEYCHAIN_ACCOUNT,    default=auth_token"`
}

type AutosaveConfig struct {
	Quiet   time.Duration `env:"AUTOSAVE_QUIET, default=1s"`
	Workers int           `env:"SAVE_WORKERS,   default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=notaspace_client"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads an optional .env file, then the environment.
func Load() *Config {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	if cfg.Keychain.Path == "" {
		cfg.Keychain.Path = defaultKeychainPath()
	}
	return &cfg
}

// APIBaseURL is the backend root: the explicit override when set, otherwise
// the release URL in production and the local debug URL everywhere else.
func (c *Config) APIBaseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	if c.Env == EnvProduction {
		return releaseBaseURL
	}
	return debugBaseURL
}

func (c *Config) IsProduction() bool { return c.Env == EnvProduction }

func defaultKeychainPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "notaspace", "keychain.json")
}
