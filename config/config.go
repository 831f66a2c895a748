package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const defaultAPIBase = "https://radiology-backend-vvor.onrender.com"

type Config struct {
	AppEnv      string
	APIBaseURL  string
	WSURL       string
	HTTPTimeout time.Duration
	LogLevel    string
}

var (
	cfg  *Config
	once sync.Once
)

func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Warn().Msg(".env file not found, relying on environment variables")
		}
		cfg = &Config{
			AppEnv:      os.Getenv("APP_ENV"),
			APIBaseURL:  os.Getenv("API_BASE_URL"),
			WSURL:       os.Getenv("WS_URL"),
			HTTPTimeout: timeoutFromEnv("HTTP_TIMEOUT_SECONDS", 15*time.Second),
			LogLevel:    os.Getenv("LOG_LEVEL"),
		}
		if cfg.APIBaseURL == "" {
			cfg.APIBaseURL = defaultAPIBase
		}
		if cfg.WSURL == "" {
			cfg.WSURL = deriveWSURL(cfg.APIBaseURL)
		}
	})
	return cfg
}

func timeoutFromEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		log.Warn().Str("key", key).Str("value", raw).Msg("invalid timeout, using default")
		return fallback
	}
	return time.Duration(secs) * time.Second
}

// deriveWSURL turns the REST base URL into the websocket endpoint
// (https -> wss, http -> ws) when WS_URL is not set explicitly.
func deriveWSURL(base string) string {
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://") + "/ws"
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://") + "/ws"
	default:
		return base + "/ws"
	}
}
