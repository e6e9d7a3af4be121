// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort            = 3000
	DefaultEnvironment     = "development"
	DefaultFontsDir        = "fonts"
	DefaultShutdownSeconds = 30
	DefaultLogLevel        = "info"
)

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		LogLevel    string `yaml:"log_level"`
	} `yaml:"app"`

	Server struct {
		ShutdownTimeoutSeconds int      `yaml:"shutdown_timeout_seconds"`
		AllowedOrigins         []string `yaml:"allowed_origins"`
	} `yaml:"server"`

	Fonts struct {
		Dir string `yaml:"dir"`
	} `yaml:"fonts"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.App.Name = "themeapi"
	cfg.App.Environment = DefaultEnvironment
	cfg.App.Port = DefaultPort
	cfg.App.LogLevel = DefaultLogLevel
	cfg.Server.ShutdownTimeoutSeconds = DefaultShutdownSeconds
	cfg.Server.AllowedOrigins = []string{"*"}
	cfg.Fonts.Dir = DefaultFontsDir
	return &cfg
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in that order of precedence (environment wins). A .env file
// next to configPath, or in the working directory when configPath is empty,
// is loaded first if present.
func Load(configPath string) (*Config, error) {
	envPath := ".env"
	if configPath != "" {
		envPath = filepath.Join(filepath.Dir(configPath), ".env")
	}
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := Default()
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if value, ok := os.LookupEnv("PORT"); ok {
		port, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", value, err)
		}
		c.App.Port = port
	}
	if value, ok := os.LookupEnv("ENVIRONMENT"); ok {
		c.App.Environment = value
	}
	if value, ok := os.LookupEnv("LOG_LEVEL"); ok {
		c.App.LogLevel = value
	}
	if value, ok := os.LookupEnv("FONTS_DIR"); ok {
		c.Fonts.Dir = value
	}
	if value, ok := os.LookupEnv("SHUTDOWN_TIMEOUT_SECONDS"); ok {
		seconds, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid SHUTDOWN_TIMEOUT_SECONDS %q: %w", value, err)
		}
		c.Server.ShutdownTimeoutSeconds = seconds
	}
	if value, ok := os.LookupEnv("CORS_ALLOWED_ORIGINS"); ok {
		c.Server.AllowedOrigins = splitList(value)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("app port must be between 1 and 65535, got %d", c.App.Port)
	}
	if c.App.Environment == "" {
		return fmt.Errorf("app environment is required")
	}
	if _, err := zerolog.ParseLevel(c.App.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.App.LogLevel, err)
	}
	if c.Server.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin is required")
	}
	if c.Fonts.Dir == "" {
		return fmt.Errorf("fonts directory is required")
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.App.Port)
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == DefaultEnvironment
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
