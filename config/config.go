package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Identity  IdentityConfig
	Payment   PaymentConfig
	Reference ReferenceConfig
	KeepAlive KeepAliveConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port            string
	Env             string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level  string
	Format string // "console" or "json"
}

// IdentityConfig for the mobile-money MSISDN validation API (bearer auth).
type IdentityConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// PaymentConfig for the payment processor. Credentials travel in the request body.
type PaymentConfig struct {
	BaseURL    string
	Username   string
	Password   string
	SuccessURL string
	FailedURL  string
	Timeout    time.Duration
}

type ReferenceConfig struct {
	Length int
	Secret string
}

type KeepAliveConfig struct {
	AppURL   string
	Interval time.Duration // <= 0 disables the loop
	Timeout  time.Duration
}

type RateLimitConfig struct {
	PerMinute int // 0 disables
}

// environment variable names; kept compatible with the existing deployment
var envBindings = map[string]string{
	"server.port":             "PORT",
	"server.env":              "ENV",
	"server.gin_mode":         "GIN_MODE",
	"server.read_timeout":     "READ_TIMEOUT",
	"server.write_timeout":    "WRITE_TIMEOUT",
	"server.shutdown_timeout": "SHUTDOWN_TIMEOUT",
	"logger.level":            "LOG_LEVEL",
	"logger.format":           "LOG_FORMAT",
	"identity.base_url":       "RELWORX_BASE_URL",
	"identity.api_key":        "RELWORX_API_KEY",
	"payment.base_url":        "API_BASE_URL",
	"payment.username":        "DEVCRAFT_USERNAME",
	"payment.password":        "DEVCRAFT_PASSWORD",
	"payment.success_url":     "PAYMENT_SUCCESS_URL",
	"payment.failed_url":      "PAYMENT_FAILED_URL",
	"upstream.timeout":        "UPSTREAM_TIMEOUT",
	"reference.length":        "REFERENCE_LENGTH",
	"reference.secret":        "SECRET_KEY",
	"keepalive.app_url":       "APP_URL",
	"keepalive.interval":      "PING_INTERVAL",
	"keepalive.timeout":       "PING_TIMEOUT",
	"ratelimit.per_minute":    "RATE_LIMIT_PER_MINUTE",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")

	v.SetDefault("identity.base_url", "https://payments.relworx.com")
	v.SetDefault("payment.success_url", "https://your_url/payment/success")
	v.SetDefault("payment.failed_url", "https://your_url/payment/failed")
	v.SetDefault("upstream.timeout", "20s")

	v.SetDefault("reference.length", 6)

	v.SetDefault("keepalive.interval", "100s")
	v.SetDefault("keepalive.timeout", "10s")

	v.SetDefault("ratelimit.per_minute", 0)
}

// Load reads an optional config.yaml and lets environment variables override it.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")

	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	d := durationReader{v: v}
	upstreamTimeout := d.get("upstream.timeout")

	env := v.GetString("server.env")
	if mode := v.GetString("server.gin_mode"); mode == "release" {
		env = "production"
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            strings.TrimPrefix(v.GetString("server.port"), ":"),
			Env:             env,
			ReadTimeout:     d.get("server.read_timeout"),
			WriteTimeout:    d.get("server.write_timeout"),
			ShutdownTimeout: d.get("server.shutdown_timeout"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("logger.level"),
			Format: v.GetString("logger.format"),
		},
		Identity: IdentityConfig{
			BaseURL: strings.TrimRight(v.GetString("identity.base_url"), "/"),
			APIKey:  v.GetString("identity.api_key"),
			Timeout: upstreamTimeout,
		},
		Payment: PaymentConfig{
			BaseURL:    strings.TrimRight(v.GetString("payment.base_url"), "/"),
			Username:   v.GetString("payment.username"),
			Password:   v.GetString("payment.password"),
			SuccessURL: v.GetString("payment.success_url"),
			FailedURL:  v.GetString("payment.failed_url"),
			Timeout:    upstreamTimeout,
		},
		Reference: ReferenceConfig{
			Length: v.GetInt("reference.length"),
			Secret: v.GetString("reference.secret"),
		},
		KeepAlive: KeepAliveConfig{
			AppURL:   strings.TrimRight(v.GetString("keepalive.app_url"), "/"),
			Interval: d.get("keepalive.interval"),
			Timeout:  d.get("keepalive.timeout"),
		},
		RateLimit: RateLimitConfig{
			PerMinute: v.GetInt("ratelimit.per_minute"),
		},
	}
	if d.err != nil {
		return nil, d.err
	}
	if cfg.KeepAlive.AppURL == "" {
		cfg.KeepAlive.AppURL = "http://localhost:" + cfg.Server.Port
	}
	return cfg, nil
}

// Validate reports missing provider credentials. Called once at boot; the server must not start without them.
func (c *Config) Validate() error {
	var missing []string
	if c.Payment.BaseURL == "" {
		missing = append(missing, envBindings["payment.base_url"])
	}
	if c.Payment.Username == "" {
		missing = append(missing, envBindings["payment.username"])
	}
	if c.Payment.Password == "" {
		missing = append(missing, envBindings["payment.password"])
	}
	if c.Identity.APIKey == "" {
		missing = append(missing, envBindings["identity.api_key"])
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// durationReader accepts Go duration strings ("20s") and bare integers as seconds ("100").
type durationReader struct {
	v   *viper.Viper
	err error
}

func (d *durationReader) get(key string) time.Duration {
	dur, err := ParseDuration(d.v.GetString(key))
	if err != nil && d.err == nil {
		d.err = fmt.Errorf("%s: %w", key, err)
	}
	return dur
}

func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(n * float64(time.Second)), nil
	}
	return time.ParseDuration(s)
}
