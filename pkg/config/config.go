package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort string
	LogLevel   string

	SessionStatePath string
	SourceHost       string
	LoginURL         string

	NotionToken      string
	NotionDatabaseID string
	NotionVersion    string
	URLPropertyName  string
	DatePropertyName string
	DateUTCOffset    int

	MaxBrowserContexts int
	PageLoadTimeout    time.Duration
	FrameWaitTimeout   time.Duration
	NetworkIdleTimeout time.Duration
	FrameSettleDelay   time.Duration
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "3000"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		SessionStatePath: getEnv("SESSION_STATE_PATH", "storage/naver-state.json"),
		SourceHost:       getEnv("SOURCE_HOST", "cafe.naver.com"),
		LoginURL:         getEnv("LOGIN_URL", "https://nid.naver.com/nidlogin.login"),

		NotionToken:      getEnv("NOTION_TOKEN", ""),
		NotionDatabaseID: getEnv("NOTION_DATABASE_ID", ""),
		NotionVersion:    getEnv("NOTION_VERSION", "2022-06-28"),
		URLPropertyName:  getEnv("NOTION_URL_PROPERTY", "원문 링크"),
		DatePropertyName: getEnv("NOTION_DATE_PROPERTY", "후기 작성일"),
		DateUTCOffset:    getEnvAsInt("DATE_UTC_OFFSET_HOURS", 9),

		MaxBrowserContexts: getEnvAsInt("MAX_BROWSER_CONTEXTS", 4),
		PageLoadTimeout:    getEnvAsDuration("PAGE_LOAD_TIMEOUT_SECONDS", 60) * time.Second,
		FrameWaitTimeout:   getEnvAsDuration("FRAME_WAIT_TIMEOUT_SECONDS", 15) * time.Second,
		NetworkIdleTimeout: getEnvAsDuration("NETWORK_IDLE_TIMEOUT_SECONDS", 15) * time.Second,
		FrameSettleDelay:   getEnvAsDuration("FRAME_SETTLE_DELAY_MS", 800) * time.Millisecond,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallback))
}
