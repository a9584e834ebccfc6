package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the main config struct
type Config struct {
	Environment string         `yaml:"environment" env:"ENVIRONMENT" env-default:"production" env-description:"Environment name"`
	Secret      string         `yaml:"secret" env:"SECRET" env-default:"" env-description:"Bearer token for the admin API"`
	Verbose     string         `yaml:"verbose" env:"VERBOSE" env-default:"warn" env-description:"Log level: debug, info, warn, error"`
	Fib         FibConfig      `yaml:"fib"`
	Database    DatabaseConfig `yaml:"database"`
	Cache       CacheConfig    `yaml:"cache"`
	Metrics     MetricsConfig  `yaml:"metrics"`
	Telegram    TelegramConfig `yaml:"telegram"`
	Proxy       ProxyConfig    `yaml:"proxy"`
	API         APIConfig      `yaml:"api"`
}

// Fibonacci evaluation limits
type FibConfig struct {
	// MaxRecursive caps n for the exponential algorithm on the network surfaces.
	MaxRecursive int64 `yaml:"max_recursive" env:"FIB_MAX_RECURSIVE" env-default:"40" env-description:"Largest n accepted for the recursive algorithm"`
	// Algorithm is used when a request does not name one.
	Algorithm string `yaml:"algorithm" env:"FIB_ALGORITHM" env-default:"recursive" env-description:"Default algorithm: recursive, iterative, table"`
}

// Telegram config, an empty token disables the bot
type TelegramConfig struct {
	Token     string        `yaml:"token" env:"TELEGRAM_TOKEN" env-default:"" env-description:"Telegram bot token"`
	Timeout   time.Duration `yaml:"timeout" env:"TELEGRAM_TIMEOUT" env-default:"10s" env-description:"Long polling timeout"`
	Whitelist []int64       `yaml:"whitelist" env:"TELEGRAM_WHITELIST" env-description:"Allowed chat IDs"`
	Blacklist []int64       `yaml:"blacklist" env:"TELEGRAM_BLACKLIST" env-description:"Banned chat IDs"`
	IgnoreVia bool          `yaml:"ignore_via" env:"TELEGRAM_IGNORE_VIA" env-default:"false" env-description:"Ignore messages sent via bots"`
}

// SOCKS5 proxy for outgoing Telegram traffic
type ProxyConfig struct {
	Address  string `yaml:"address" env:"PROXY_ADDRESS" env-default:"" env-description:"Proxy host"`
	Port     int    `yaml:"port" env:"PROXY_PORT" env-default:"0" env-description:"Proxy port"`
	Username string `yaml:"username" env:"PROXY_USERNAME" env-default:""`
	Password string `yaml:"password" env:"PROXY_PASSWORD" env-default:""`
}

// API config
type APIConfig struct {
	Host         string        `yaml:"host" env:"API_HOST" env-default:"localhost" env-description:"API host address to bind to"`
	Port         int           `yaml:"port" env:"API_PORT" env-default:"8080" env-description:"API port to bind to"`
	Timeout      time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"15s"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"API_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"API_WRITE_TIMEOUT" env-default:"20s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"API_IDLE_TIMEOUT" env-default:"15s"`
}

// SQLite, PostgreSQL or MySQL config
type DatabaseConfig struct {
	Enabled bool `yaml:"enabled" env:"DATABASE_ENABLED" env-default:"true" env-description:"Record computed results"`
	// Driver is the database driver to use. Supported drivers are "sqlite3", "postgres" and "mysql".
	Driver     string `yaml:"driver" env:"DATABASE_DRIVER" env-default:"sqlite3" env-description:"Database driver to use"`
	Connection string `yaml:"connection" env:"DATABASE_CONNECTION" env-default:":memory:" env-description:"Database connection string"`
}

// In-memory result cache
type CacheConfig struct {
	MaxCost     int64 `yaml:"max_cost" env:"CACHE_MAX_COST" env-default:"4096" env-description:"Maximum number of cached results"`
	NumCounters int64 `yaml:"num_counters" env:"CACHE_NUM_COUNTERS" env-default:"40960"`
}

// InfluxDB metrics, an empty URL disables them
type MetricsConfig struct {
	URL    string `yaml:"url" env:"METRICS_URL" env-default:"" env-description:"InfluxDB URL"`
	Token  string `yaml:"token" env:"METRICS_TOKEN" env-default:""`
	Org    string `yaml:"org" env:"METRICS_ORG" env-default:"foxy"`
	Bucket string `yaml:"bucket" env:"METRICS_BUCKET" env-default:"fib"`
}

// ConfigError - error returned when the configuration cannot be loaded
type ConfigError struct {
	Message string
}

// Error - implements the error interface
func (e *ConfigError) Error() string {
	return e.Message
}

// MustLoadConfig reads the YAML file at CONFIG_PATH when it is set,
// otherwise the environment alone. A .env file is applied first if present.
func MustLoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, &ConfigError{
			Message: fmt.Sprintf("Cannot read .env file: %s", err),
		}
	}

	var config Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		if err := cleanenv.ReadEnv(&config); err != nil {
			return nil, &ConfigError{
				Message: fmt.Sprintf("Cannot read environment: %s", err),
			}
		}

		return &config, nil
	}

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, &ConfigError{
			Message: fmt.Sprintf("Config file does not exist: %s", configPath),
		}
	}

	if err := cleanenv.ReadConfig(configPath, &config); err != nil {
		return nil, &ConfigError{
			Message: fmt.Sprintf("Cannot read config file: %s", err),
		}
	}

	return &config, nil
}

// Defaults - the configuration an empty environment produces.
// Used by the programs when the environment or config file cannot be parsed.
func Defaults() *Config {
	return &Config{
		Environment: "production",
		Verbose:     "warn",
		Fib: FibConfig{
			MaxRecursive: 40,
			Algorithm:    "recursive",
		},
		Database: DatabaseConfig{
			Enabled:    true,
			Driver:     "sqlite3",
			Connection: ":memory:",
		},
		Cache: CacheConfig{
			MaxCost:     4096,
			NumCounters: 40960,
		},
		Metrics: MetricsConfig{
			Org:    "foxy",
			Bucket: "fib",
		},
		Telegram: TelegramConfig{
			Timeout: 10 * time.Second,
		},
		API: APIConfig{
			Host:         "localhost",
			Port:         8080,
			Timeout:      15 * time.Second,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 20 * time.Second,
			IdleTimeout:  15 * time.Second,
		},
	}
}
