package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	CallbackTTL time.Duration
}

type PaymentConfig struct {
	BaseURL   string
	APIKey    string
	SiteID    string
	NotifyURL string
}

type MailerConfig struct {
	BaseURL     string
	APIKey      string
	SenderName  string
	SenderEmail string
}

type JWTConfig struct {
	Secret        string
	PublicKeyPath string
	Issuer        string
	Expiration    time.Duration
}

type Config struct {
	GRPCPort    int
	HTTPPort    int
	DB          DatabaseConfig
	Kafka       KafkaConfig
	Redis       RedisConfig
	Payment     PaymentConfig
	Mailer      MailerConfig
	JWT         JWTConfig
	OTLPAddr    string
	LogLevel    string
	LogFormat   string
	ServiceName string
}

func (c Config) Validate() {
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
	if c.JWT.Secret == "" && c.JWT.PublicKeyPath == "" {
		panic("JWT_SECRET or JWT_PUBLIC_KEY_PATH is required")
	}
}

func Load() Config {
	return Config{
		GRPCPort: getEnvInt("GRPC_PORT", 9090),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "moro"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "moro_financing"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   getEnv("KAFKA_TOPIC", "financing-events"),
		},
		Redis: RedisConfig{
			Addr:        getEnv("REDIS_ADDR", "localhost:6379"),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DB:          getEnvInt("REDIS_DB", 0),
			CallbackTTL: getEnvDuration("CALLBACK_DEDUPE_TTL", 72*time.Hour),
		},
		Payment: PaymentConfig{
			BaseURL:   getEnv("PAYMENT_BASE_URL", "https://api-checkout.cinetpay.com/v2"),
			APIKey:    getEnv("PAYMENT_API_KEY", ""),
			SiteID:    getEnv("PAYMENT_SITE_ID", ""),
			NotifyURL: getEnv("PAYMENT_NOTIFY_URL", ""),
		},
		Mailer: MailerConfig{
			BaseURL:     getEnv("MAILER_BASE_URL", "https://api.brevo.com/v3"),
			APIKey:      getEnv("MAILER_API_KEY", ""),
			SenderName:  getEnv("MAILER_SENDER_NAME", "MORO"),
			SenderEmail: getEnv("MAILER_SENDER_EMAIL", "no-reply@moro.app"),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", ""),
			PublicKeyPath: getEnv("JWT_PUBLIC_KEY_PATH", ""),
			Issuer:        getEnv("JWT_ISSUER", "moro"),
			Expiration:    getEnvDuration("JWT_EXPIRATION", 24*time.Hour),
		},
		OTLPAddr:    getEnv("OTLP_ADDR", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		ServiceName: "moro-financing",
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
