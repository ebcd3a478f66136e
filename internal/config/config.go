package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Telebirr TelebirrConfig
	Stripe   StripeConfig
	Auth     AuthConfig
}

type ServerConfig struct {
	Port         int
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

func (d DatabaseConfig) ConnectionString() string {
	return "host=" + d.Host +
		" port=" + strconv.Itoa(d.Port) +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" sslmode=" + d.SSLMode
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// TelebirrConfig holds the Fabric gateway credentials and endpoints.
// UseMock switches the whole provider to the in-process mock; UseMockSigning
// keeps the live request path but replaces signatures with mock values.
type TelebirrConfig struct {
	BaseURL        string
	WebBaseURL     string
	AppID          string
	FabricAppID    string
	MerchantAppID  string
	MerchantCode   string
	NotifyURL      string
	RedirectURL    string
	Timeout        time.Duration
	UseMock        bool
	UseMockSigning bool
	MockDelay      time.Duration
}

type StripeConfig struct {
	SecretKey string
	Currency  string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:  time.Duration(getEnvInt("SERVER_READ_TIMEOUT", 30)) * time.Second,
			WriteTimeout: time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT", 30)) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnvString("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnvString("DB_USER", "easyshop"),
			Password: getEnvString("DB_PASSWORD", "easyshop"),
			Name:     getEnvString("DB_NAME", "easyshop"),
			SSLMode:  getEnvString("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnvString("REDIS_ADDR", "localhost:6379"),
			Password: getEnvString("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvInt("REDIS_TTL_SECONDS", 300)) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnvString("KAFKA_BROKERS", "localhost:9092")},
			Topic:   getEnvString("KAFKA_TOPIC", "easyshop.events"),
		},
		Telebirr: TelebirrConfig{
			BaseURL:        getEnvString("TELEBIRR_BASE_URL", "https://196.188.120.3:38443/apiaccess/payment/gateway"),
			WebBaseURL:     getEnvString("TELEBIRR_WEB_BASE_URL", "https://196.188.120.3:38443/payment/web/paygate"),
			AppID:          getEnvString("TELEBIRR_APP_ID", ""),
			FabricAppID:    getEnvString("TELEBIRR_FABRIC_APP_ID", ""),
			MerchantAppID:  getEnvString("TELEBIRR_MERCHANT_APP_ID", ""),
			MerchantCode:   getEnvString("TELEBIRR_MERCHANT_CODE", ""),
			NotifyURL:      getEnvString("TELEBIRR_NOTIFY_URL", "http://localhost:8080/api/v1/telebirr/webhook"),
			RedirectURL:    getEnvString("TELEBIRR_REDIRECT_URL", "http://localhost:3000/payment/result"),
			Timeout:        time.Duration(getEnvInt("TELEBIRR_TIMEOUT_SECONDS", 30)) * time.Second,
			UseMock:        getEnvBool("TELEBIRR_USE_MOCK", true),
			UseMockSigning: getEnvBool("TELEBIRR_USE_MOCK_SIGNING", false),
			MockDelay:      time.Duration(getEnvInt("TELEBIRR_MOCK_DELAY_MS", 500)) * time.Millisecond,
		},
		Stripe: StripeConfig{
			SecretKey: getEnvString("STRIPE_SECRET_KEY", ""),
			Currency:  getEnvString("STRIPE_CURRENCY", "usd"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnvString("JWT_SECRET", "dev-secret-change-me"),
			TokenTTL:  time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,
		},
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
