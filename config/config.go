package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	Timezone          string `mapstructure:"TIMEZONE"`

	// Proxies whose X-Forwarded-For / X-Real-IP headers are believed.
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES"`

	// Upstream platform API.
	UpstreamBaseURL        string `mapstructure:"UPSTREAM_BASE_URL"`
	UpstreamTimeoutSeconds int    `mapstructure:"UPSTREAM_TIMEOUT_SECONDS"`
	UpstreamServiceToken   string `mapstructure:"UPSTREAM_SERVICE_TOKEN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Activity feed storage.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	SessionTTLMinutes        int    `mapstructure:"SESSION_TTL_MINUTES"`
	ReferenceCacheTTLMinutes int    `mapstructure:"REFERENCE_CACHE_TTL_MINUTES"`
	ReferenceRefreshCron     string `mapstructure:"REFERENCE_REFRESH_CRON"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("TIMEZONE", "Asia/Jakarta")
	viper.SetDefault("TRUSTED_PROXIES", []string{})
	viper.SetDefault("UPSTREAM_BASE_URL", "http://localhost:8000/api")
	viper.SetDefault("UPSTREAM_TIMEOUT_SECONDS", 10)
	viper.SetDefault("UPSTREAM_SERVICE_TOKEN", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_SESSION_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DATABASE_NAME", "mentorhub")
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("REFERENCE_CACHE_TTL_MINUTES", 10)
	viper.SetDefault("REFERENCE_REFRESH_CRON", "*/5 * * * *")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Location resolves TIMEZONE, falling back to the process local zone.
func Location() *time.Location {
	if AppConfig.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(AppConfig.Timezone)
	if err != nil {
		log.Printf("unknown TIMEZONE %q, using local time: %v", AppConfig.Timezone, err)
		return time.Local
	}
	return loc
}

func UpstreamTimeout() time.Duration {
	if AppConfig.UpstreamTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(AppConfig.UpstreamTimeoutSeconds) * time.Second
}

func SessionTTL() time.Duration {
	if AppConfig.SessionTTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(AppConfig.SessionTTLMinutes) * time.Minute
}

func ReferenceCacheTTL() time.Duration {
	if AppConfig.ReferenceCacheTTLMinutes <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(AppConfig.ReferenceCacheTTLMinutes) * time.Minute
}
