package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
	WebRoot string `mapstructure:"web_root"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type SessionConfig struct {
	Secret      string `mapstructure:"secret"`
	CookieName  string `mapstructure:"cookie_name"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type StreamConfig struct {
	PollIntervalMS int `mapstructure:"poll_interval_ms"`
	RetryBackoffMS int `mapstructure:"retry_backoff_ms"`
	MaxRetries     int `mapstructure:"max_retries"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Session  SessionConfig  `mapstructure:"session"`
	Stream   StreamConfig   `mapstructure:"stream"`
}

// PollInterval returns the stream poll interval, defaulting to 500ms.
func (s StreamConfig) PollInterval() time.Duration {
	if s.PollIntervalMS <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(s.PollIntervalMS) * time.Millisecond
}

// RetryBackoff returns the delay before retrying a failed poll, defaulting to 1s.
func (s StreamConfig) RetryBackoff() time.Duration {
	if s.RetryBackoffMS <= 0 {
		return time.Second
	}
	return time.Duration(s.RetryBackoffMS) * time.Millisecond
}

// Load loads configuration from given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in current working directory.
// The returned config is passed to components explicitly; there is no
// package-level accessor.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	// environment overrides, e.g. POP_SERVER_PORT=9000
	v.SetEnvPrefix("POP")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if c.Server.WebRoot == "" {
		c.Server.WebRoot = "./web"
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "pop_session"
	}
	if c.Stream.MaxRetries <= 0 {
		c.Stream.MaxRetries = 10
	}

	return &c, nil
}
