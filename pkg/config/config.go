package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Data sources
	Reddit RedditConfig
	Trends TrendsConfig

	// Alert delivery
	Alerts AlertsConfig

	// Scan behavior
	Scan ScanConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL     string
	Enabled bool

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// RedditConfig holds Reddit API credentials and fetch parameters
type RedditConfig struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	UserAgent    string
	BaseURL      string
	AuthURL      string
	Subreddits   []string
	PostsPerSub  int // hot + rising combined
}

// TrendsConfig holds the trend-scraping source configuration
type TrendsConfig struct {
	BaseURL   string
	Region    string
	MaxTrends int
}

// AlertsConfig holds outbound alert delivery configuration
type AlertsConfig struct {
	DiscordWebhookURL string
	ResendAPIKey      string
	ResendBaseURL     string
	AlertEmail        string
	FromEmail         string
}

// ScanConfig controls the aggregation scan
type ScanConfig struct {
	TopN         int
	CacheTTL     time.Duration
	CronSchedule string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			Enabled:         getEnvAsBool("DATABASE_ENABLED", false),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},

		// Data sources
		Reddit: RedditConfig{
			ClientID:     getEnv("REDDIT_CLIENT_ID", ""),
			ClientSecret: getEnv("REDDIT_CLIENT_SECRET", ""),
			Username:     getEnv("REDDIT_USERNAME", ""),
			Password:     getEnv("REDDIT_PASSWORD", ""),
			UserAgent:    getEnv("REDDIT_USER_AGENT", "TrendPulse/1.0"),
			BaseURL:      getEnv("REDDIT_BASE_URL", "https://oauth.reddit.com"),
			AuthURL:      getEnv("REDDIT_AUTH_URL", "https://www.reddit.com/api/v1/access_token"),
			Subreddits:   getEnvAsSlice("REDDIT_SUBREDDITS", []string{"wallstreetbets", "cryptocurrency"}),
			PostsPerSub:  getEnvAsInt("REDDIT_POSTS_PER_SUB", 50),
		},

		Trends: TrendsConfig{
			BaseURL:   getEnv("TRENDS_BASE_URL", "https://trends24.in"),
			Region:    getEnv("TRENDS_REGION", "united-states"),
			MaxTrends: getEnvAsInt("TRENDS_MAX", 30),
		},

		// Alert delivery
		Alerts: AlertsConfig{
			DiscordWebhookURL: getEnv("DISCORD_WEBHOOK_URL", ""),
			ResendAPIKey:      getEnv("RESEND_API_KEY", ""),
			ResendBaseURL:     getEnv("RESEND_BASE_URL", "https://api.resend.com"),
			AlertEmail:        getEnv("ALERT_EMAIL", ""),
			FromEmail:         getEnv("ALERT_FROM_EMAIL", "TrendPulse <alerts@resend.dev>"),
		},

		// Scan
		Scan: ScanConfig{
			TopN:         getEnvAsInt("SCAN_TOP_N", 20),
			CacheTTL:     getEnvAsDuration("SCAN_CACHE_TTL", "60s"),
			CronSchedule: getEnv("SCAN_CRON", "0 */10 * * * *"),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Database.Enabled && c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required when DATABASE_ENABLED=true")
	}

	if len(c.Reddit.Subreddits) == 0 {
		return fmt.Errorf("REDDIT_SUBREDDITS must name at least one subreddit")
	}

	if c.Scan.TopN <= 0 {
		return fmt.Errorf("SCAN_TOP_N must be positive")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
			filepath.Join(exeDir, "..", "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
