package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Analytics AnalyticsConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Discord   DiscordConfig
	Auth      AuthConfig
	Agent     AgentConfig
	Storage   StorageConfig
	Worker    WorkerConfig
	Studio    StudioConfig
	Log       LogConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port        string
	Env         string
	CORSOrigins []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL. DATABASE_URL wins over the discrete settings.
func (c DatabaseConfig) URL() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// AnalyticsConfig points at the read-only database used by ask-ai queries
type AnalyticsConfig struct {
	URL          string
	QueryTimeout time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

// DiscordConfig holds bot credentials and the admin identity
type DiscordConfig struct {
	Token         string
	ApplicationID string
	GuildID       string
	BotSecret     string
	AdminUserID   string
}

// AuthConfig holds the email verification secret and login throttling
type AuthConfig struct {
	GoogleVerifySecret string
	RatePerSecond      float64
	RateBurst          int
}

// AgentConfig holds the text-to-SQL agent endpoint
type AgentConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// StorageConfig selects where uploads go
type StorageConfig struct {
	Driver         string
	LocalDir       string
	PublicURL      string
	SupabaseURL    string
	SupabaseKey    string
	SupabaseBucket string
}

// WorkerConfig holds reminder worker settings
type WorkerConfig struct {
	PollInterval           time.Duration
	BatchSize              int
	OfferingReminderOffset []int
	DeadlineReminderOffset []int
}

// StudioConfig holds business settings
type StudioConfig struct {
	Timezone          string
	StatisticCacheTTL time.Duration
}

// Location resolves the studio time zone, falling back to UTC.
func (c StudioConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LogConfig holds the optional rotated log file
type LogConfig struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", getEnv("PORT", "8080")),
			Env:         getEnv("SERVER_ENV", "development"),
			CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"https://studio.seorangabi.com", "http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			DSN:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "studio"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Analytics: AnalyticsConfig{
			URL:          getEnv("AI_DATABASE_URL", ""),
			QueryTimeout: getEnvAsDuration("AI_QUERY_TIMEOUT", 15*time.Second),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:       getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry: getEnvAsDuration("JWT_ACCESS_EXPIRY", 7*24*time.Hour),
		},
		Discord: DiscordConfig{
			Token:         getEnv("DISCORD_TOKEN", ""),
			ApplicationID: getEnv("DISCORD_APPLICATION_ID", ""),
			GuildID:       getEnv("DISCORD_TEST_GUILD_ID", ""),
			BotSecret:     getEnv("BOT_SECRET", ""),
			AdminUserID:   getEnv("DEFAULT_ADMIN_DISCORD_USER_ID", ""),
		},
		Auth: AuthConfig{
			GoogleVerifySecret: getEnv("GOOGLE_VERIFY_SECRET", ""),
			RatePerSecond:      getEnvAsFloat("AUTH_RATE_PER_SECOND", 1),
			RateBurst:          getEnvAsInt("AUTH_RATE_BURST", 5),
		},
		Agent: AgentConfig{
			URL:     strings.TrimRight(getEnv("AGENT_URL", ""), "/"),
			APIKey:  getEnv("AGENT_API_KEY", ""),
			Timeout: getEnvAsDuration("AGENT_TIMEOUT", 60*time.Second),
		},
		Storage: StorageConfig{
			Driver:         getEnv("STORAGE_DRIVER", "local"),
			LocalDir:       getEnv("UPLOAD_DIR", "uploads"),
			PublicURL:      strings.TrimRight(getEnv("STORAGE_URL", "http://localhost:8080"), "/"),
			SupabaseURL:    getEnv("SUPABASE_URL", ""),
			SupabaseKey:    getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
			SupabaseBucket: getEnv("SUPABASE_BUCKET", "uploads"),
		},
		Worker: WorkerConfig{
			PollInterval:           getEnvAsDuration("WORKER_POLL_INTERVAL", 5*time.Second),
			BatchSize:              getEnvAsInt("WORKER_BATCH_SIZE", 50),
			OfferingReminderOffset: getEnvAsIntList("OFFERING_REMINDER_MINUTES", []int{60, 30, 10, 0}),
			DeadlineReminderOffset: getEnvAsIntList("DEADLINE_REMINDER_MINUTES", []int{10, 5, 1, 0}),
		},
		Studio: StudioConfig{
			Timezone:          getEnv("APP_TIMEZONE", "Asia/Jakarta"),
			StatisticCacheTTL: getEnvAsDuration("STATISTIC_CACHE_TTL", time.Minute),
		},
		Log: LogConfig{
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 50),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 14),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// getEnvAsIntList parses "60,30,10,0"; any invalid entry discards the whole value.
func getEnvAsIntList(key string, defaultValue []int) []int {
	parts := getEnvAsList(key, nil)
	if len(parts) == 0 {
		return defaultValue
	}
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return defaultValue
		}
		out = append(out, n)
	}
	return out
}
