package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cast"
)

var (
	config     *Config
	configOnce sync.Once
)

// Config stores all configuration of the application
type Config struct {
	// Environment type
	EnvType string

	// Database
	DBDriver        string // sqlite, mysql, postgres
	DatabaseURL     string // full DSN; built from the DB_* parts when empty
	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBPort          string
	DBMigrationMode string // "auto" (default) or "drop"
	DBMaxIdleConns  int
	DBMaxOpenConns  int
	SeedDemoUser    bool

	// Server
	ServerPort         string
	GinMode            string
	CORSAllowedOrigins []string
	RateLimit          string // ulule format, e.g. "20-S"
	ResponseCacheTTL   time.Duration

	// Cache
	CacheType     string // local or redis
	CacheTTL      time.Duration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// MQTT
	MQTTEnabled     bool
	MQTTBrokerURL   string
	MQTTClientID    string
	MQTTUsername    string
	MQTTPassword    string
	MQTTQoS         int
	MQTTTopicPrefix string

	// Firmware
	FirmwareLatestVersion string
	FirmwareReleaseNotes  string

	// Logging
	LogLevel      string
	LogDir        string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

// LoadConfig loads config from environment variables based on ENV_TYPE
func LoadConfig() *Config {
	envType := strings.ToUpper(getEnv("ENV_TYPE", "LOCAL"))
	var prefix string
	switch envType {
	case "LOCAL":
		prefix = "LOCAL_"
	case "SERVER":
		prefix = "SERVER_"
	default:
		fmt.Printf("Warning: Unknown ENV_TYPE '%s', defaulting to LOCAL environment\n", envType)
		prefix = "LOCAL_"
		envType = "LOCAL"
	}

	driver := strings.ToLower(getPrefixed(prefix, "DB_DRIVER", "sqlite"))
	cfg := &Config{
		EnvType: envType,

		DBDriver:        driver,
		DatabaseURL:     getPrefixed(prefix, "DATABASE_URL", ""),
		DBMigrationMode: getPrefixed(prefix, "DB_MIGRATION_MODE", "auto"),
		DBMaxIdleConns:  getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		DBMaxOpenConns:  getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
		SeedDemoUser:    getEnvAsBool("SEED_DEMO_USER", true),

		ServerPort:         getPrefixed(prefix, "SERVER_PORT", "3000"),
		GinMode:            getEnv("GIN_MODE", "release"),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:8000", "http://127.0.0.1:8000"}),
		RateLimit:          getEnv("RATE_LIMIT", "20-S"),
		ResponseCacheTTL:   getEnvAsDuration("RESPONSE_CACHE_TTL", 5*time.Second),

		CacheType:     strings.ToLower(getEnv("CACHE_TYPE", "local")),
		CacheTTL:      getEnvAsDuration("CACHE_TTL", 30*time.Second),
		RedisHost:     getPrefixed(prefix, "REDIS_HOST", "localhost"),
		RedisPort:     getPrefixed(prefix, "REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		MQTTEnabled:     getEnvAsBool("MQTT_ENABLED", false),
		MQTTBrokerURL:   getEnv("MQTT_BROKER_URL", "tcp://localhost:1883"),
		MQTTClientID:    getEnv("MQTT_CLIENT_ID", "trailguard"),
		MQTTUsername:    getEnv("MQTT_USERNAME", ""),
		MQTTPassword:    getEnv("MQTT_PASSWORD", ""),
		MQTTQoS:         getEnvAsInt("MQTT_QOS", 1),
		MQTTTopicPrefix: getEnv("MQTT_TOPIC_PREFIX", "trailguard"),

		FirmwareLatestVersion: getEnv("FIRMWARE_LATEST_VERSION", "1.2.3"),
		FirmwareReleaseNotes:  getEnv("FIRMWARE_RELEASE_NOTES", "Improved GPS accuracy and battery reporting."),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogDir:        getEnv("LOG_DIR", "logs"),
		LogMaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 7),
		LogMaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 30),
	}

	// Server databases need their connection parts unless a full URL is given.
	if cfg.DatabaseURL == "" && driver != "sqlite" {
		cfg.DBHost = getEnvRequired(prefix + "DB_HOST")
		cfg.DBUser = getEnvRequired(prefix + "DB_USER")
		cfg.DBPassword = getEnvRequired(prefix + "DB_PASSWORD")
		cfg.DBName = getEnvRequired(prefix + "DB_NAME")
		cfg.DBPort = getPrefixed(prefix, "DB_PORT", defaultPort(driver))
	}

	return cfg
}

// GetConfig returns the application configuration as a singleton
func GetConfig() *Config {
	configOnce.Do(func() {
		config = LoadConfig()
	})
	return config
}

// GetDSN returns the database connection string for the configured driver.
func (c *Config) GetDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	switch c.DBDriver {
	case "mysql":
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=True&loc=UTC"
	case "postgres":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
	default:
		return "file:trailguard.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func defaultPort(driver string) string {
	if driver == "mysql" {
		return "3306"
	}
	return "5432"
}

// getPrefixed prefers the ENV_TYPE-specific variable over the plain one.
func getPrefixed(prefix, key, defaultValue string) string {
	return getEnv(prefix+key, getEnv(key, defaultValue))
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	if value, err := cast.ToIntE(raw); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	if value, err := cast.ToBoolE(raw); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	if value, err := cast.ToDurationE(raw); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if strings.TrimSpace(raw) == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// getEnvRequired panics when key is unset or empty.
func getEnvRequired(key string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	panic(fmt.Sprintf("Required environment variable %s is not set", key))
}
