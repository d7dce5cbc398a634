package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	Port            string
	BenchmarkSource string
	ComputeTimeout  time.Duration
	MethodTimeout   time.Duration
	AdvisoryTimeout time.Duration
	AnthropicAPIKey string
	LogLevel        string
	LogFormat       string
	OTLPEndpoint    string
	ReportCacheTTL  time.Duration
}

// Load reads configuration from a .env file, if present, and the environment.
// Variables already set in the environment take precedence over .env.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getenv("PORT", "8080"),
		BenchmarkSource: getenv("BENCHMARK_SOURCE", "builtin"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		LogFormat:       getenv("LOG_FORMAT", "text"),
		OTLPEndpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	var err error
	if cfg.ComputeTimeout, err = duration("COMPUTE_TIMEOUT", 300*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.MethodTimeout, err = duration("METHOD_TIMEOUT", 150*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.AdvisoryTimeout, err = duration("ADVISORY_TIMEOUT", 2*time.Second); err != nil {
		return nil, err
	}
	if cfg.ReportCacheTTL, err = duration("REPORT_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	return cfg, nil
}

// ConfigureLogging applies LOG_LEVEL and LOG_FORMAT to the standard logger
func (c *Config) ConfigureLogging() {
	if level, err := log.ParseLevel(c.LogLevel); err == nil {
		log.SetLevel(level)
	}
	if c.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func duration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", key, v)
	}
	return d, nil
}
