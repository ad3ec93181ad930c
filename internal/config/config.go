// Package config loads server settings from defaults, an optional YAML file
// and TRIPS_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TRIPS_SERVER_ADDR.
const EnvPrefix = "TRIPS"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Provider  ProviderConfig  `mapstructure:"provider"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Session   SessionConfig   `mapstructure:"session"`
	Concierge ConciergeConfig `mapstructure:"concierge"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// ProviderConfig names the result provider. An empty BaseURL is valid: every
// search then answers with the placeholder listing.
type ProviderConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

type SessionConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type ConciergeConfig struct {
	Latency time.Duration `mapstructure:"latency"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("provider.base_url", "")
	v.SetDefault("provider.timeout", 2*time.Second)
	v.SetDefault("cache.ttl", 30*time.Second)
	v.SetDefault("ratelimit.requests", 60)
	v.SetDefault("ratelimit.window", time.Minute)
	v.SetDefault("session.ttl", 30*time.Minute)
	v.SetDefault("concierge.latency", 1500*time.Millisecond)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load reads the configuration. path may be empty, in which case only
// defaults and the environment apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("provider.base_url", EnvPrefix+"_PROVIDER_BASE_URL", "BACKEND_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if c.Provider.Timeout <= 0 {
		return fmt.Errorf("provider.timeout must be positive, got %s", c.Provider.Timeout)
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("ratelimit.window must be positive, got %s", c.RateLimit.Window)
	}
	if c.Concierge.Latency < 0 {
		return fmt.Errorf("concierge.latency must not be negative, got %s", c.Concierge.Latency)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text, got %q", c.Log.Format)
	}
	return nil
}
