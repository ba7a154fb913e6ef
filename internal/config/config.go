// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rovshanmuradov/tokenview/internal/tokenview"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	DexScreenerURL   string        `mapstructure:"dexscreener_url"`
	GasURL           string        `mapstructure:"gas_url"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
	RateLimit        int           `mapstructure:"rate_limit"`
	UserAgent        string        `mapstructure:"user_agent"`
	CancelSuperseded bool          `mapstructure:"cancel_superseded"`
	SurfaceErrors    bool          `mapstructure:"surface_errors"`
	DefaultNetwork   string        `mapstructure:"default_network"`
	RefreshInterval  time.Duration `mapstructure:"refresh_interval"`
	LogLevel         string        `mapstructure:"log_level"`
	LogFile          string        `mapstructure:"log_file"`
	DebugLogging     bool          `mapstructure:"debug_logging"`
	MetricsAddr      string        `mapstructure:"metrics_addr"`
	Mode             string        `mapstructure:"mode"`
}

const (
	ModeSearch = "search"
	ModeGas    = "gas"
)

const (
	DefaultDexScreenerURL = "https://api.dexscreener.com/latest/dex"
	DefaultGasURL         = "https://iai-donation-be.onrender.com/detector/get-average-gas-fee"
	DefaultRequestTimeout = 10 * time.Second
	DefaultRateLimit      = 300
	DefaultUserAgent      = "tokenview/1.0"
	DefaultLogLevel       = "info"
	DefaultLogFile        = "tokenview.log"

	EnvPrefix = "TOKENVIEW"
)

// flagKeys maps command line flag names onto config keys.
var flagKeys = map[string]string{
	"mode":              "mode",
	"log-level":         "log_level",
	"log-file":          "log_file",
	"metrics-addr":      "metrics_addr",
	"timeout":           "request_timeout",
	"network":           "default_network",
	"surface-errors":    "surface_errors",
	"refresh-interval":  "refresh_interval",
	"cancel-superseded": "cancel_superseded",
}

// Load merges defaults, an optional config file, TOKENVIEW_* environment
// variables and flags, in increasing priority. An empty path looks for
// tokenview.{yaml,json,toml} in the working directory and ignores a miss.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	defaults := map[string]interface{}{
		"dexscreener_url":   DefaultDexScreenerURL,
		"gas_url":           DefaultGasURL,
		"request_timeout":   DefaultRequestTimeout,
		"rate_limit":        DefaultRateLimit,
		"user_agent":        DefaultUserAgent,
		"cancel_superseded": true,
		"surface_errors":    false,
		"default_network":   "",
		"refresh_interval":  time.Duration(0),
		"log_level":         DefaultLogLevel,
		"log_file":          DefaultLogFile,
		"debug_logging":     false,
		"metrics_addr":      "",
		"mode":              ModeSearch,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("tokenview")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()

	return &cfg, validateConfig(&cfg)
}

func (c *Config) normalize() {
	c.DexScreenerURL = strings.TrimRight(strings.TrimSpace(c.DexScreenerURL), "/")
	c.GasURL = strings.TrimSpace(c.GasURL)
	c.DefaultNetwork = strings.ToLower(strings.TrimSpace(c.DefaultNetwork))
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	if c.DebugLogging {
		c.LogLevel = "debug"
	}
}

func validateConfig(cfg *Config) error {
	if err := validateURLWithCache(cfg.DexScreenerURL, "http"); err != nil {
		return fmt.Errorf("invalid dexscreener_url: %w", err)
	}
	if err := validateURLWithCache(cfg.GasURL, "http"); err != nil {
		return fmt.Errorf("invalid gas_url: %w", err)
	}
	if err := validateNumericParams(cfg); err != nil {
		return err
	}
	network, err := tokenview.ParseNetwork(cfg.DefaultNetwork)
	if err != nil {
		return fmt.Errorf("invalid default_network: %w", err)
	}
	cfg.DefaultNetwork = string(network)
	if cfg.Mode != ModeSearch && cfg.Mode != ModeGas {
		return fmt.Errorf("invalid mode %q, want %s or %s", cfg.Mode, ModeSearch, ModeGas)
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q", cfg.LogLevel)
	}
	return nil
}

func validateNumericParams(cfg *Config) error {
	if cfg.RequestTimeout <= 0 {
		return errors.New("invalid request_timeout")
	}
	if cfg.RateLimit < 0 {
		return errors.New("invalid rate_limit")
	}
	if cfg.RefreshInterval < 0 {
		return errors.New("invalid refresh_interval")
	}
	return nil
}

var urlCache sync.Map

func validateURLWithCache(rawURL string, protocol string) error {
	if _, ok := urlCache.Load(rawURL); ok {
		return nil
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if !strings.HasPrefix(parsed.Scheme, protocol) || parsed.Host == "" {
		return errors.New("invalid URL protocol")
	}
	urlCache.Store(rawURL, parsed)
	return nil
}
