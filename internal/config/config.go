package config

import (
	"fmt"
	"net/url"

	pkgconfig "github.com/osamaqaseem39/stationary-gbs/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`

	// Upstream commerce API
	UpstreamBaseURL        string  `env:"UPSTREAM_BASE_URL" envDefault:"http://localhost:3001/api"`
	UpstreamTimeoutSeconds int     `env:"UPSTREAM_TIMEOUT_SECONDS" envDefault:"30"`
	UpstreamMaxRetries     int     `env:"UPSTREAM_MAX_RETRIES" envDefault:"3"`
	BreakerFailureRatio    float64 `env:"UPSTREAM_BREAKER_FAILURE_RATIO" envDefault:"0.5"`
	BreakerMinRequests     uint32  `env:"UPSTREAM_BREAKER_MIN_REQUESTS" envDefault:"5"`
	BreakerTimeoutSeconds  int     `env:"UPSTREAM_BREAKER_TIMEOUT_SECONDS" envDefault:"30"`

	// Redis session storage. Disabled falls back to in-memory sessions.
	RedisEnabled bool   `env:"REDIS_ENABLED" envDefault:"true"`
	RedisAddr    string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass    string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB      int    `env:"REDIS_DB" envDefault:"0"`

	// Session TTL in hours (default: 7 days)
	SessionTTLHours int `env:"SESSION_TTL_HOURS" envDefault:"168"`

	// Kafka analytics events
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Tracing
	TracingEnabled bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint   string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TraceSample    float64 `env:"TRACE_SAMPLE_RATE" envDefault:"1.0"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// pprof access
	PprofCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.0/8" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if _, err := url.Parse(c.UpstreamBaseURL); err != nil || c.UpstreamBaseURL == "" {
		return fmt.Errorf("invalid upstream base URL: %q", c.UpstreamBaseURL)
	}
	if c.BreakerFailureRatio <= 0 || c.BreakerFailureRatio > 1 {
		return fmt.Errorf("breaker failure ratio must be in (0, 1]: %v", c.BreakerFailureRatio)
	}
	return nil
}
