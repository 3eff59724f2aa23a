package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the gateway.
type Config struct {
	Environment   string `validate:"required"`
	Addr          string `validate:"required"`
	PublicURL     string
	AllowedOrigin string   `validate:"required"`
	Paths         []string `validate:"min=1,dive,startswith=/"`
	Upstream      UpstreamConfig
	Log           LogConfig
	RateLimit     RateLimitConfig
}

// UpstreamConfig holds the task service settings.
type UpstreamConfig struct {
	BaseURL            string `validate:"required,url"`
	APIKey             string
	UserAgent          string `validate:"required"`
	PublicationTargets []string
	Timeout            time.Duration `validate:"gt=0"`
	PendingPolicy      string        `validate:"oneof=list-only split"`
	DetailSource       string        `validate:"oneof=live sample"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `validate:"oneof=trace debug info warn warning error"`
	Format string `validate:"oneof=json text"`
}

// RateLimitConfig configures the inbound limiter. Zero RequestsPerSecond disables it.
type RateLimitConfig struct {
	RequestsPerSecond float64 `validate:"gte=0"`
	Burst             int     `validate:"gte=0"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", "8080")
	v.SetDefault("ALLOWED_ORIGIN", "*")
	v.SetDefault("GATEWAY_PATHS", "/api/atividades,/")
	v.SetDefault("EDUSP_BASE_URL", "https://edusp-api.ip.tv")
	v.SetDefault("EDUSP_USER_AGENT", "Mozilla/5.0 (Android 12; Mobile; rv:144.0) Gecko/144.0 Firefox/144.0")
	v.SetDefault("EDUSP_PENDING_POLICY", "list-only")
	v.SetDefault("EDUSP_DETAIL_SOURCE", "live")
	v.SetDefault("UPSTREAM_TIMEOUT", 15*time.Second)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("RATE_LIMIT_RPS", 0)
	v.SetDefault("RATE_LIMIT_BURST", 20)
}

// Load loads configuration from a .env file (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Environment:   v.GetString("ENVIRONMENT"),
		Addr:          bindAddr(v),
		PublicURL:     EnsureURL(v.GetString("PUBLIC_URL"), ""),
		AllowedOrigin: v.GetString("ALLOWED_ORIGIN"),
		Paths:         splitList(v.GetString("GATEWAY_PATHS")),
		Upstream: UpstreamConfig{
			BaseURL:            EnsureURL(v.GetString("EDUSP_BASE_URL"), "https"),
			APIKey:             strings.TrimSpace(v.GetString("EDUSP_API_KEY")),
			UserAgent:          v.GetString("EDUSP_USER_AGENT"),
			PublicationTargets: splitList(v.GetString("EDUSP_PUBLICATION_TARGETS")),
			Timeout:            v.GetDuration("UPSTREAM_TIMEOUT"),
			PendingPolicy:      strings.ToLower(v.GetString("EDUSP_PENDING_POLICY")),
			DetailSource:       strings.ToLower(v.GetString("EDUSP_DETAIL_SOURCE")),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags on Config.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// IsProduction reports whether the gateway runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// bindAddr prefers ADDR, otherwise HOST:PORT.
func bindAddr(v *viper.Viper) string {
	if addr := strings.TrimSpace(v.GetString("ADDR")); addr != "" {
		return addr
	}
	host := strings.TrimSpace(v.GetString("HOST"))
	port := strings.TrimPrefix(strings.TrimSpace(v.GetString("PORT")), ":")
	return host + ":" + port
}

// splitList splits a comma separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
