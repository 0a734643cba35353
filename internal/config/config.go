package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bassista/go_items/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "ITEMS"

// Config is the full application configuration.
type Config struct {
	Server ServerConfig
	Data   DataConfig
	Misc   MiscConfig
}

type ServerConfig struct {
	Port               int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	ShutDownTimeout    time.Duration
	RequestTimeout     time.Duration
	CORSAllowedOrigins string
}

type DataConfig struct {
	FilePath             string
	CreateIfMissing      bool
	WatchDebounce        time.Duration
	StatsRefreshInterval time.Duration
	DefaultPageLimit     int
	MaxPageLimit         int // 0 means unbounded
}

type MiscConfig struct {
	GinMode  string
	LogLevel string
}

// LoadConfig reads configuration from defaults, an optional config.yaml, a .env file
// and ITEMS_* environment variables, in increasing order of precedence.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.WithComponent("config").Warnf("cannot load .env file: %v", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getEnvOrDefault(envPrefix+"_CONFIG_PATH", "./config"))

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// ITEMS_DATA_PATH is the older name for the data file location.
	if err := v.BindEnv("data.file_path", envPrefix+"_DATA_FILE_PATH", envPrefix+"_DATA_PATH"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config file error: %w", err)
		}
		logger.WithComponent("config").Debug("no config file found, using defaults and env vars")
	}

	port, err := getEnvOrViperPort("PORT", v, "server.port")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               port,
			ReadTimeout:        v.GetDuration("server.read_timeout"),
			WriteTimeout:       v.GetDuration("server.write_timeout"),
			IdleTimeout:        v.GetDuration("server.idle_timeout"),
			ShutDownTimeout:    v.GetDuration("server.shutdown_timeout"),
			RequestTimeout:     v.GetDuration("server.request_timeout"),
			CORSAllowedOrigins: v.GetString("server.cors_allowed_origins"),
		},
		Data: DataConfig{
			FilePath:             v.GetString("data.file_path"),
			CreateIfMissing:      v.GetBool("data.create_if_missing"),
			WatchDebounce:        v.GetDuration("data.watch_debounce"),
			StatsRefreshInterval: v.GetDuration("data.stats_refresh_interval"),
			DefaultPageLimit:     v.GetInt("data.default_page_limit"),
			MaxPageLimit:         v.GetInt("data.max_page_limit"),
		},
		Misc: MiscConfig{
			GinMode:  v.GetString("misc.gin_mode"),
			LogLevel: v.GetString("misc.log_level"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Data.CreateIfMissing {
		if err := ensureDataFile(cfg.Data.FilePath); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.request_timeout", 2*time.Second)
	v.SetDefault("server.cors_allowed_origins", "http://localhost:3000")

	v.SetDefault("data.file_path", "./data/items.json")
	v.SetDefault("data.create_if_missing", true)
	v.SetDefault("data.watch_debounce", 200*time.Millisecond)
	v.SetDefault("data.stats_refresh_interval", 30*time.Second)
	v.SetDefault("data.default_page_limit", 10)
	v.SetDefault("data.max_page_limit", 0)

	v.SetDefault("misc.gin_mode", "release")
	v.SetDefault("misc.log_level", "info")
}

func (c *Config) validate() error {
	if c.Data.FilePath == "" {
		return errors.New("data.file_path is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.IdleTimeout <= 0 {
		return errors.New("server read/write/idle timeouts must be positive")
	}
	if c.Server.ShutDownTimeout <= 0 {
		return errors.New("server.shutdown_timeout must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		return errors.New("server.request_timeout must be positive")
	}
	if c.Data.WatchDebounce < 0 {
		return errors.New("data.watch_debounce must not be negative")
	}
	if c.Data.StatsRefreshInterval <= 0 {
		return errors.New("data.stats_refresh_interval must be positive")
	}
	if c.Data.DefaultPageLimit <= 0 {
		return errors.New("data.default_page_limit must be positive")
	}
	if c.Data.MaxPageLimit < 0 {
		return errors.New("data.max_page_limit must not be negative")
	}
	return nil
}

// ensureDataFile creates an empty collection file when none exists yet.
func ensureDataFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat data file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		return fmt.Errorf("create data file: %w", err)
	}
	logger.WithComponent("config").Infof("created empty data file at %s", path)
	return nil
}

func getEnvOrDefault(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvOrViperPort prefers a plain env var (PORT on most PaaS) over the viper key.
func getEnvOrViperPort(envKey string, v *viper.Viper, viperKey string) (int, error) {
	if val := os.Getenv(envKey); val != "" {
		port, err := strconv.Atoi(val)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", envKey, val, err)
		}
		return port, nil
	}
	return v.GetInt(viperKey), nil
}
