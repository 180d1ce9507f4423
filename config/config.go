package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	ReorderSourceProduct = "product"
	ReorderSourceGlobal  = "global"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Store     StoreConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Mail      MailConfig
	Inventory InventoryConfig
	Forecast  ForecastConfig
	I18n      I18nConfig
}

type ServerConfig struct {
	AppEnv   string
	GRPCPort string
	HTTPAddr string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type StoreConfig struct {
	Driver string
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

// RedisConfig with an empty Addr disables the forecast cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// KafkaConfig with no brokers disables the sale feed listener.
type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

type MailConfig struct {
	Host           string
	Port           int
	Username       string
	Password       string
	From           string
	AlertRecipient string
}

// Enabled reports whether enough is set to attempt SMTP delivery.
func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.From != ""
}

type InventoryConfig struct {
	ReorderQuantity int
	ReorderSource   string
	NotifyOnReorder bool
}

type ForecastConfig struct {
	Timezone string
	CacheTTL time.Duration
}

type I18nConfig struct {
	DefaultLocale string
	LocalesDir    string
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:   getEnv("APP_ENV", "dev"),
			GRPCPort: getEnv("GRPC_PORT", ":8082"),
			HTTPAddr: getEnv("HTTP_ADDR", "127.0.0.1:8090"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnv("POSTGRES_PORT", "5432"),
			User:            getEnv("POSTGRES_USER", "inventory"),
			Password:        getEnv("POSTGRES_PASSWORD", "inventory"),
			DBName:          getEnv("POSTGRES_DB", "smart_inventory"),
			SSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 4),
			MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 2),
			ConnMaxLifetime: getEnvInt("POSTGRES_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("POSTGRES_CONN_MAX_IDLE_TIME", 60),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvSlice("KAFKA_BROKERS", nil),
			Topic:   getEnv("KAFKA_TOPIC_SALES", "pos.sales"),
			GroupID: getEnv("KAFKA_GROUP_INVENTORY", "smart-inventory"),
		},
		Mail: MailConfig{
			Host:           getEnv("MAIL_HOST", ""),
			Port:           getEnvInt("MAIL_PORT", 587),
			Username:       getEnv("MAIL_USERNAME", ""),
			Password:       getEnv("MAIL_PASSWORD", ""),
			From:           getEnv("MAIL_FROM", ""),
			AlertRecipient: getEnv("ALERT_RECIPIENT", ""),
		},
		Inventory: InventoryConfig{
			ReorderQuantity: getEnvInt("REORDER_QUANTITY", 100),
			ReorderSource:   strings.ToLower(getEnv("REORDER_SOURCE", ReorderSourceProduct)),
			NotifyOnReorder: getEnvBool("NOTIFY_ON_REORDER", false),
		},
		Forecast: ForecastConfig{
			Timezone: getEnv("FORECAST_TIMEZONE", "Local"),
			CacheTTL: time.Duration(getEnvInt("FORECAST_CACHE_TTL", 600)) * time.Second,
		},
		I18n: I18nConfig{
			DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
			LocalesDir:    getEnv("LOCALES_DIR", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return fallback
}
