package config

import (
	"os"
	"strconv"
	"time"
)

const (
	baseURLVar     = "BASE_URL"
	appNameVar     = "APP_NAME"
	httpTimeoutVar = "HTTP_TIMEOUT"
	sessionFileVar = "SESSION_FILE"
	redisAddrVar   = "REDIS_ADDR"
)

type EnvConfig interface {
	GetBaseURL() string
	GetAppName() string
	GetHTTPTimeout() time.Duration
	GetSessionFile() string
	GetRedisAddr() string
	GetEnv() string
}

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

// GetBaseURL returns the base URL of the blog platform API, including the
// version prefix (e.g. "https://blog.example.com/api/v1")
func (EnvVars) GetBaseURL() string {
	return GetEnv(baseURLVar, "http://localhost:8080/api/v1")
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Blog Client")
}

// GetHTTPTimeout returns the per-request timeout in seconds
func (EnvVars) GetHTTPTimeout() time.Duration {
	raw := GetEnv(httpTimeoutVar, "30")
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		seconds = 30
	}
	return time.Duration(seconds) * time.Second
}

// GetSessionFile returns the path of the persisted session record
func (EnvVars) GetSessionFile() string {
	return GetEnv(sessionFileVar, "./data/session.json")
}

func (EnvVars) GetRedisAddr() string {
	return GetEnv(redisAddrVar, "localhost:6379")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
