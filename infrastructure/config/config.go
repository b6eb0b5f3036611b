package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Config holds all application configuration
type Config struct {
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`

	// Timezone used to read zoneless task timestamps. "Local" is the host zone.
	Timezone string `mapstructure:"timezone"`

	Storage StorageConfig `mapstructure:"storage"`
	Server  ServerConfig  `mapstructure:"server"`

	// Feature flags
	EnableMetrics bool `mapstructure:"enable_metrics"`
}

// StorageConfig selects and tunes the durable backend
type StorageConfig struct {
	Driver     string `mapstructure:"driver"`
	DataDir    string `mapstructure:"data_dir"`
	SQLitePath string `mapstructure:"sqlite_path"`

	// PollInterval is how often the sqlite backend checks for other writers
	PollInterval time.Duration `mapstructure:"poll_interval"`
	// Debounce coalesces bursts of file events per key
	Debounce time.Duration `mapstructure:"debounce"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Load reads configuration from defaults, an optional config file and
// ETHERLINK_* environment variables, in increasing priority. An empty path
// looks for etherlink.{yaml,json,toml} in the working directory and the
// user config directory; a missing file there is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("etherlink")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "etherlink"))
		}
	}

	v.SetEnvPrefix("ETHERLINK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("timezone", "Local")
	v.SetDefault("enable_metrics", true)

	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.data_dir", defaultDataDir())
	v.SetDefault("storage.sqlite_path", "")
	v.SetDefault("storage.poll_interval", time.Second)
	v.SetDefault("storage.debounce", 100*time.Millisecond)

	v.SetDefault("server.address", "127.0.0.1:7777")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "etherlink", "data")
	}
	return ".etherlink"
}

func (c *Config) normalize() {
	c.Environment = strings.ToLower(strings.TrimSpace(c.Environment))
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = filepath.Join(c.Storage.DataDir, "etherlink.db")
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverFile, DriverSQLite:
	default:
		return fmt.Errorf("storage.driver must be one of %s, %s, %s; got %q",
			DriverMemory, DriverFile, DriverSQLite, c.Storage.Driver)
	}
	if c.Storage.Driver == DriverFile && strings.TrimSpace(c.Storage.DataDir) == "" {
		return fmt.Errorf("storage.data_dir is required for the file driver")
	}
	if c.Storage.PollInterval <= 0 {
		return fmt.Errorf("storage.poll_interval must be greater than zero")
	}
	if c.Storage.Debounce <= 0 {
		return fmt.Errorf("storage.debounce must be greater than zero")
	}
	if strings.TrimSpace(c.Server.Address) == "" {
		return fmt.Errorf("server.address is required")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Location returns the configured timezone
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
