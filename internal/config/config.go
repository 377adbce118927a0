package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DB        DBConfig
	Server    ServerConfig
	API       APIConfig
	Cache     CacheConfig
	Redis     RedisConfig
	Catalog   CatalogConfig
	Favorites FavoritesConfig
	Log       LogConfig
	Seeder    SeederConfig
}

// DBType represents database type
type DBType string

const (
	DBTypePostgreSQL DBType = "postgres"
	DBTypeMemory     DBType = "memory"
)

// CacheBackend names a request cache implementation
type CacheBackend string

const (
	CacheBackendMemory   CacheBackend = "memory"
	CacheBackendRedis    CacheBackend = "redis"
	CacheBackendDatabase CacheBackend = "database"
)

// DBConfig holds database configuration
type DBConfig struct {
	Type     DBType
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the database connection string
func (c DBConfig) DSN() string {
	if c.Type == DBTypeMemory {
		// SQLite in-memory database
		if c.Name != "" && c.Name != "exploring" {
			return fmt.Sprintf("file:%s?mode=memory&cache=shared", c.Name)
		}
		return "file::memory:?cache=shared"
	}
	// PostgreSQL connection string
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// IsMemory returns true if using in-memory database
func (c DBConfig) IsMemory() bool {
	return c.Type == DBTypeMemory
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port          string
	SessionCookie string
}

// APIConfig holds settings for the REST Countries upstream
type APIConfig struct {
	BaseURL    string
	Timeout    time.Duration
	ListFields []string
}

// CacheConfig holds request cache settings
type CacheConfig struct {
	Backend CacheBackend
	TTL     time.Duration
}

// RedisConfig holds settings for the redis cache backend
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	OpTimeout time.Duration
}

// CatalogConfig holds list view settings
type CatalogConfig struct {
	PageSize int
}

// FavoritesConfig holds favorites session settings
type FavoritesConfig struct {
	SessionIdle   time.Duration
	SweepInterval time.Duration
}

// LogConfig holds logger settings
type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// SeederConfig holds settings for cache warm-up from a local dump
type SeederConfig struct {
	DumpPath    string
	WarmOnStart bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbType := DBType(getEnv("DB_TYPE", "memory"))
	if dbType != DBTypePostgreSQL && dbType != DBTypeMemory {
		dbType = DBTypeMemory
	}

	backend := CacheBackend(getEnv("CACHE_BACKEND", string(CacheBackendDatabase)))
	switch backend {
	case CacheBackendMemory, CacheBackendRedis, CacheBackendDatabase:
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}

	pageSize := getEnvAsInt("CATALOG_PAGE_SIZE", 12)
	if pageSize <= 0 {
		return nil, fmt.Errorf("CATALOG_PAGE_SIZE must be positive, got %d", pageSize)
	}

	config := &Config{
		DB: DBConfig{
			Type:     dbType,
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "exploring"),
			Password: getEnv("DB_PASSWORD", "exploring_password"),
			Name:     getEnv("DB_NAME", "exploring"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Server: ServerConfig{
			Port:          getEnv("APP_PORT", "8080"),
			SessionCookie: getEnv("SESSION_COOKIE", "exploring_session"),
		},
		API: APIConfig{
			BaseURL:    strings.TrimRight(getEnv("API_BASE_URL", "https://restcountries.com/v3.1"), "/"),
			Timeout:    getEnvAsDuration("API_TIMEOUT", 10*time.Second),
			ListFields: getEnvAsSlice("API_LIST_FIELDS"),
		},
		Cache: CacheConfig{
			Backend: backend,
			TTL:     getEnvAsDuration("CACHE_TTL", time.Hour),
		},
		Redis: RedisConfig{
			Addr:      getEnv("REDIS_ADDR", "localhost:6379"),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getEnvAsInt("REDIS_DB", 0),
			OpTimeout: getEnvAsDuration("REDIS_OP_TIMEOUT", 100*time.Millisecond),
		},
		Catalog: CatalogConfig{
			PageSize: pageSize,
		},
		Favorites: FavoritesConfig{
			SessionIdle:   getEnvAsDuration("FAVORITES_SESSION_IDLE", 24*time.Hour),
			SweepInterval: getEnvAsDuration("FAVORITES_SWEEP_INTERVAL", 10*time.Minute),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 15),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 28),
		},
		Seeder: SeederConfig{
			DumpPath:    getEnv("SEEDER_DUMP_PATH", "data/countries.json"),
			WarmOnStart: getEnvAsBool("SEEDER_WARM_ON_START", false),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	var result []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
