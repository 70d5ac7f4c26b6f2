package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisHoldDB   int    `mapstructure:"REDIS_HOLD_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Credentials. Tenant tokens carry an org claim; the service token is the
	// only credential allowed to confirm holds.
	TenantJWTSecret  string `mapstructure:"TENANT_JWT_SECRET"`
	ServiceJWTSecret string `mapstructure:"SERVICE_JWT_SECRET"`

	// Scheduling engine tuning.
	StandardSessionMinutes int  `mapstructure:"STANDARD_SESSION_MINUTES"`
	ScheduleWindowMaxDays  int  `mapstructure:"SCHEDULE_WINDOW_MAX_DAYS"`
	GeocodingEnabled       bool `mapstructure:"GEOCODING_ENABLED"`
	HoldTTLMinutes         int  `mapstructure:"HOLD_TTL_MINUTES"`
	HoldSweepGraceMinutes  int  `mapstructure:"HOLD_SWEEP_GRACE_MINUTES"`

	HealthCheckIntervalSeconds int `mapstructure:"HEALTH_CHECK_INTERVAL_SECONDS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_HOLD_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "caresched")
	viper.SetDefault("TENANT_JWT_SECRET", "")
	viper.SetDefault("SERVICE_JWT_SECRET", "")
	viper.SetDefault("STANDARD_SESSION_MINUTES", 60)
	viper.SetDefault("SCHEDULE_WINDOW_MAX_DAYS", 31)
	viper.SetDefault("GEOCODING_ENABLED", true)
	viper.SetDefault("HOLD_TTL_MINUTES", 10)
	viper.SetDefault("HOLD_SWEEP_GRACE_MINUTES", 60)
	viper.SetDefault("HEALTH_CHECK_INTERVAL_SECONDS", 60)

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
