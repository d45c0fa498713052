package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

var loadEnvOnce sync.Once

// Config returns the value of an environment variable, loading .env on first use.
func Config(key string) string {
	loadEnvOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file found, using system environment")
		}
	})
	return os.Getenv(key)
}

type AppConfig struct {
	Environment string
	LogLevel    string

	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Payment    PaymentConfig
	Mail       MailConfig
	Cloudinary CloudinaryConfig
	Jobs       JobsConfig
}

type ServerConfig struct {
	Addr         string
	AllowOrigins string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

type RedisConfig struct {
	URL      string
	CacheTTL time.Duration
}

type AuthConfig struct {
	JWTSecret      string
	AccessTokenTTL time.Duration
	AdminEmail     string
	AdminPassword  string
}

type PaymentConfig struct {
	// SecretKey is the static fallback used when no dynamic setting is stored.
	SecretKey       string
	SignatureHeader string
	TicketSecret    string
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	AppURL   string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

type JobsConfig struct {
	MaterializeCron  string
	MaterializeBatch int
	PendingOrderTTL  time.Duration
	ExpiryHour       uint
	ExpiryMinute     uint
	TimeZone         string
}

const (
	defaultMaterializeCron = "*/5 * * * *"
)

func Load() *AppConfig {
	return &AppConfig{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Server: ServerConfig{
			Addr:         getEnv("SERVER_ADDR", ":8002"),
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", "15s"),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", "15s"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "event_ticketing"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "localhost:6379"),
			CacheTTL: getEnvAsDuration("SETTINGS_CACHE_TTL", "5m"),
		},
		Auth: AuthConfig{
			JWTSecret:      getEnv("JWT_SECRET", ""),
			AccessTokenTTL: getEnvAsDuration("ACCESS_TOKEN_TTL", "60m"),
			AdminEmail:     getEnv("ADMIN_EMAIL", "admin@example.com"),
			AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
		},
		Payment: PaymentConfig{
			SecretKey:       getEnv("PAYMENT_SECRET_KEY", ""),
			SignatureHeader: getEnv("PAYMENT_SIGNATURE_HEADER", "x-paystack-signature"),
			TicketSecret:    getEnv("TICKET_SIGNING_SECRET", ""),
		},
		Mail: MailConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", ""),
			AppURL:   getEnv("APP_URL", "http://localhost:5173"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
			Folder:    getEnv("CLOUDINARY_FOLDER", "events/covers"),
		},
		Jobs: JobsConfig{
			MaterializeCron:  getEnvAsCron("MATERIALIZE_CRON", defaultMaterializeCron),
			MaterializeBatch: getEnvAsInt("MATERIALIZE_BATCH", 50),
			PendingOrderTTL:  getEnvAsDuration("ORDER_PENDING_TTL", "24h"),
			ExpiryHour:       uint(getEnvAsInt("ORDER_EXPIRY_HOUR", 0)),
			ExpiryMinute:     uint(getEnvAsInt("ORDER_EXPIRY_MINUTE", 10)),
			TimeZone:         getEnv("JOBS_TIMEZONE", "UTC"),
		},
	}
}

func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := Config(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	if duration, err := time.ParseDuration(getEnv(key, defaultValue)); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

// getEnvAsCron rejects expressions the standard five-field parser cannot read.
func getEnvAsCron(key string, defaultValue string) string {
	value := getEnv(key, defaultValue)
	if _, err := cron.ParseStandard(value); err != nil {
		log.Printf("invalid %s %q, using %q: %v", key, value, defaultValue, err)
		return defaultValue
	}
	return value
}
