package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Scheduling engine.
	BusinessTimezone     string   `mapstructure:"BUSINESS_TIMEZONE"`      // canonical zone for all appointment times
	BookingGraceMinutes  int      `mapstructure:"BOOKING_GRACE_MINUTES"`  // how far in the past a start time may still be accepted
	EnforceClientOverlap bool     `mapstructure:"ENFORCE_CLIENT_OVERLAP"` // a client cannot hold two overlapping bookings across professionals
	ExclusiveServiceIDs  []string `mapstructure:"EXCLUSIVE_SERVICE_IDS"`
	ReminderLeadMinutes  int      `mapstructure:"REMINDER_LEAD_MINUTES"`
	AvailabilityCacheTTL int      `mapstructure:"AVAILABILITY_CACHE_TTL_SECONDS"`

	// Stripe key for the payment capability adapter.
	StripeKey string `mapstructure:"STRIPE_KEY"`
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
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 3)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("BUSINESS_TIMEZONE", "UTC")
	viper.SetDefault("BOOKING_GRACE_MINUTES", 5)
	viper.SetDefault("ENFORCE_CLIENT_OVERLAP", false)
	viper.SetDefault("REMINDER_LEAD_MINUTES", 60)
	viper.SetDefault("AVAILABILITY_CACHE_TTL_SECONDS", 30)
	viper.SetDefault("STRIPE_KEY", "")

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

// BusinessLocation resolves the canonical time zone; falls back to UTC when
// the configured zone cannot be loaded.
func BusinessLocation() *time.Location {
	loc, err := time.LoadLocation(AppConfig.BusinessTimezone)
	if err != nil {
		log.Printf("invalid BUSINESS_TIMEZONE %q, falling back to UTC", AppConfig.BusinessTimezone)
		return time.UTC
	}
	return loc
}
