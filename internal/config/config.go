// Package config loads runtime configuration from .env and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Default provider endpoints.
const (
	DefaultPumpFunBaseURL  = "https://frontend-api-v3.pump.fun"
	DefaultDebotBaseURL    = "https://debot.ai"
	DefaultChainFMBaseURL  = "https://chain.fm"
	DefaultPumpNewsBaseURL = "https://www.pump.news"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all runtime settings.
type Config struct {
	ListenAddr string
	LogLevel   string
	LogFormat  string // text | json

	// Gateway
	HTTPTimeout time.Duration
	ProviderRPS float64 // per provider; 0 disables limiting

	PumpFunBaseURL  string
	DebotBaseURL    string
	ChainFMBaseURL  string
	ChainFMCookie   string // session cookie obtained out of band
	PumpNewsBaseURL string

	// Page sizes
	HistoryLimit       int
	SmartMoneyPageSize int
}

// Load reads .env (if present) and the environment.
// Variables already set in the environment are not overridden by .env.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ListenAddr: getEnv("TOKENSCOPE_LISTEN_ADDR", ":8080"),
		LogLevel:   getEnv("TOKENSCOPE_LOG_LEVEL", "info"),
		LogFormat:  getEnv("TOKENSCOPE_LOG_FORMAT", "text"),

		HTTPTimeout: getEnvDuration("TOKENSCOPE_HTTP_TIMEOUT", 15*time.Second),
		ProviderRPS: getEnvFloat("TOKENSCOPE_PROVIDER_RPS", 5),

		PumpFunBaseURL:  getEnv("PUMPFUN_BASE_URL", DefaultPumpFunBaseURL),
		DebotBaseURL:    getEnv("DEBOT_BASE_URL", DefaultDebotBaseURL),
		ChainFMBaseURL:  getEnv("CHAINFM_BASE_URL", DefaultChainFMBaseURL),
		ChainFMCookie:   os.Getenv("CHAINFM_COOKIE"),
		PumpNewsBaseURL: getEnv("PUMPNEWS_BASE_URL", DefaultPumpNewsBaseURL),

		HistoryLimit:       getEnvInt("TOKENSCOPE_HISTORY_LIMIT", 10),
		SmartMoneyPageSize: getEnvInt("TOKENSCOPE_SMART_MONEY_PAGE_SIZE", 30),
	}
}

// Validate checks the configuration for obviously unusable values.
func (c *Config) Validate() error {
	urls := map[string]string{
		"PUMPFUN_BASE_URL":  c.PumpFunBaseURL,
		"DEBOT_BASE_URL":    c.DebotBaseURL,
		"CHAINFM_BASE_URL":  c.ChainFMBaseURL,
		"PUMPNEWS_BASE_URL": c.PumpNewsBaseURL,
	}
	for key, v := range urls {
		if v == "" {
			return fmt.Errorf("%w: %s is empty", ErrInvalidConfig, key)
		}
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%w: http timeout must be positive, got %v", ErrInvalidConfig, c.HTTPTimeout)
	}
	if c.ProviderRPS < 0 {
		return fmt.Errorf("%w: provider rps must not be negative, got %v", ErrInvalidConfig, c.ProviderRPS)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("%w: history limit must be positive, got %d", ErrInvalidConfig, c.HistoryLimit)
	}
	if c.SmartMoneyPageSize <= 0 {
		return fmt.Errorf("%w: smart money page size must be positive, got %d", ErrInvalidConfig, c.SmartMoneyPageSize)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
