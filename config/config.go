package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultSpinCategories is the shelf-category list a "category" reward draws from.
var DefaultSpinCategories = []string{
	"D-RMN", "D-TY", "D-DĞ", "D-HK", "DRG", "MNG", "TR-DĞ", "TR-RMN", "TR-HK", "TR-ŞR", "TR-TY", "Ç-RMN", "İNG",
}

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	AdminToken        string `mapstructure:"ADMIN_TOKEN"`

	// Storage.
	StorageDriver string `mapstructure:"STORAGE_DRIVER"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	DatabaseName  string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr          string `mapstructure:"REDIS_ADDR"`
	RedisPassword      string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB       int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB       int    `mapstructure:"REDIS_QUEUE_DB"`
	LedgerQueueEnabled bool   `mapstructure:"LEDGER_QUEUE_ENABLED"`

	// Firebase push. Empty disables FCM.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Library rules.
	DefaultFinePerDay float64       `mapstructure:"DEFAULT_FINE_PER_DAY"`
	CouponExpiryDays  int           `mapstructure:"COUPON_EXPIRY_DAYS"`
	SpinTimezone      string        `mapstructure:"SPIN_TIMEZONE"`
	DefaultWheelID    string        `mapstructure:"DEFAULT_WHEEL_ID"`
	WheelCacheTTL     time.Duration `mapstructure:"WHEEL_CACHE_TTL"`
	SpinCategories    []string      `mapstructure:"SPIN_CATEGORIES"`
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
	viper.SetDefault("ADMIN_TOKEN", "")
	viper.SetDefault("STORAGE_DRIVER", "mongo")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "librarium")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 3)
	viper.SetDefault("LEDGER_QUEUE_ENABLED", true)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	viper.SetDefault("DEFAULT_FINE_PER_DAY", 5)
	viper.SetDefault("COUPON_EXPIRY_DAYS", 30)
	viper.SetDefault("SPIN_TIMEZONE", "UTC")
	viper.SetDefault("DEFAULT_WHEEL_ID", "spinWheel")
	viper.SetDefault("WHEEL_CACHE_TTL", "5m")
	viper.SetDefault("SPIN_CATEGORIES", strings.Join(DefaultSpinCategories, ","))

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig.SpinCategories = normalizeList(AppConfig.SpinCategories)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// SpinLocation resolves SPIN_TIMEZONE, falling back to UTC.
func SpinLocation() *time.Location {
	if AppConfig.SpinTimezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(AppConfig.SpinTimezone)
	if err != nil {
		log.Printf("Unknown SPIN_TIMEZONE %q, using UTC", AppConfig.SpinTimezone)
		return time.UTC
	}
	return loc
}

// env lists arrive as a single comma separated string.
func normalizeList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	if len(out) == 0 {
		return append([]string(nil), DefaultSpinCategories...)
	}
	return out
}
