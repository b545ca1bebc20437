package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	maxPageSize        = 50
	defaultGasBudget   = 10_000_000
	defaultGasCoinType = "0x2::sui::SUI"
)

type Config struct {
	Sui      SuiConfig
	Gas      GasConfig
	Finality FinalityConfig
	Signer   SignerConfig
	Tracing  TracingConfig
	Server   ServerConfig
	Log      LogConfig
}

type SuiConfig struct {
	GraphQLURL string
	Network    string
	RPS        float64
	Burst      int
	Timeout    time.Duration
	PageSize   int

	// BreakerFailures is the number of consecutive transient failures that
	// opens the endpoint breaker. Zero disables it.
	BreakerFailures    int
	BreakerOpenTimeout time.Duration
}

type GasConfig struct {
	Budget   uint64
	CoinType string
}

// FinalityConfig bounds the finality poll. Zero MaxAttempts or Deadline means unbounded.
type FinalityConfig struct {
	PollInterval time.Duration
	MaxAttempts  int
	Deadline     time.Duration
}

type SignerConfig struct {
	PrivateKey string
}

type TracingConfig struct {
	Endpoint    string
	Insecure    bool
	SampleRatio float64
}

type ServerConfig struct {
	MetricsAddr string
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Sui: SuiConfig{
			GraphQLURL: getEnv("SUI_GRAPHQL_URL", ""),
			Network:    getEnv("SUI_NETWORK", "testnet"),
			RPS:        getEnvFloat("SUI_RPC_RPS", 20),
			Burst:      getEnvInt("SUI_RPC_BURST", 10),
			Timeout:    time.Duration(getEnvInt("SUI_RPC_TIMEOUT_SEC", 30)) * time.Second,
			PageSize:   getEnvInt("SUI_PAGE_SIZE", maxPageSize),

			BreakerFailures:    getEnvInt("SUI_BREAKER_FAILURES", 0),
			BreakerOpenTimeout: time.Duration(getEnvInt("SUI_BREAKER_OPEN_SEC", 30)) * time.Second,
		},
		Gas: GasConfig{
			Budget:   getEnvUint64("SUI_GAS_BUDGET", defaultGasBudget),
			CoinType: getEnv("SUI_GAS_COIN_TYPE", defaultGasCoinType),
		},
		Finality: FinalityConfig{
			PollInterval: time.Duration(getEnvInt("FINALITY_POLL_INTERVAL_MS", 100)) * time.Millisecond,
			MaxAttempts:  getEnvInt("FINALITY_MAX_ATTEMPTS", 0),
			Deadline:     time.Duration(getEnvInt("FINALITY_DEADLINE_MS", 0)) * time.Millisecond,
		},
		Signer: SignerConfig{
			PrivateKey: strings.TrimSpace(os.Getenv("SUI_PRIVATE_KEY")),
		},
		Tracing: TracingConfig{
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Insecure:    getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			SampleRatio: getEnvFloat("OTEL_TRACES_SAMPLER_RATIO", 1),
		},
		Server: ServerConfig{
			MetricsAddr: getEnv("METRICS_ADDR", ""),
		},
		Log: LogConfig{
			Level: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		},
	}

	if cfg.Sui.PageSize > maxPageSize {
		cfg.Sui.PageSize = maxPageSize
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Sui.GraphQLURL == "" {
		return fmt.Errorf("SUI_GRAPHQL_URL is required")
	}
	u, err := url.Parse(c.Sui.GraphQLURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("SUI_GRAPHQL_URL must be an http(s) URL, got %q", c.Sui.GraphQLURL)
	}
	if c.Sui.PageSize <= 0 {
		return fmt.Errorf("SUI_PAGE_SIZE must be positive, got %d", c.Sui.PageSize)
	}
	if c.Sui.Timeout <= 0 {
		return fmt.Errorf("SUI_RPC_TIMEOUT_SEC must be positive")
	}
	if c.Sui.BreakerFailures < 0 {
		return fmt.Errorf("SUI_BREAKER_FAILURES must not be negative")
	}
	if c.Sui.BreakerFailures > 0 && c.Sui.BreakerOpenTimeout <= 0 {
		return fmt.Errorf("SUI_BREAKER_OPEN_SEC must be positive when the breaker is enabled")
	}
	if c.Gas.CoinType == "" {
		return fmt.Errorf("SUI_GAS_COIN_TYPE is required")
	}
	if c.Finality.PollInterval <= 0 {
		return fmt.Errorf("FINALITY_POLL_INTERVAL_MS must be positive")
	}
	if c.Finality.MaxAttempts < 0 {
		return fmt.Errorf("FINALITY_MAX_ATTEMPTS must not be negative, got %d", c.Finality.MaxAttempts)
	}
	if c.Finality.Deadline < 0 {
		return fmt.Errorf("FINALITY_DEADLINE_MS must not be negative")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug|info|warn|error, got %q", c.Log.Level)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvUint64(key string, fallback uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseUint(strings.ReplaceAll(v, "_", ""), 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
