package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends understood by Load.
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	Port           string
	Env            string
	StoreBackend   string
	DBPath         string
	ProductsPath   string
	RedisURL       string
	RequestTimeout time.Duration

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string

	AllowedOrigins     []string
	RateLimitPerMinute int
	RateLimitBurst     int

	// AllowCartOverwrite keeps accepting whole-cart payloads on POST /api/cart.
	AllowCartOverwrite bool
	DebugEndpoints     bool
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return Config{
		Port:               getEnv("PORT", "3000"),
		Env:                getEnv("APP_ENV", "development"),
		StoreBackend:       strings.ToLower(getEnv("STORE_BACKEND", BackendFile)),
		DBPath:             getEnv("DB_PATH", "data/db.json"),
		ProductsPath:       getEnv("PRODUCTS_PATH", "data/products.json"),
		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		RequestTimeout:     getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		PostgresUser:       os.Getenv("POSTGRES_USER"),
		PostgresPassword:   os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:         os.Getenv("POSTGRES_DB"),
		PostgresHost:       getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:       getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:    getEnv("POSTGRES_SSLMODE", "disable"),
		AllowedOrigins:     getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:4200", "http://localhost:3000"}),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 100),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 50),
		AllowCartOverwrite: getEnvBool("ALLOW_CART_OVERWRITE", true),
		DebugEndpoints:     getEnvBool("DEBUG_ENDPOINTS", false),
	}
}

// Validate reports configuration that cannot start the service.
func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendFile:
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH is required for the file backend")
		}
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for the redis backend")
		}
	case BackendPostgres:
		if c.PostgresUser == "" || c.PostgresPassword == "" || c.PostgresDB == "" || c.PostgresHost == "" {
			return fmt.Errorf("database config incomplete")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.ProductsPath == "" {
		return fmt.Errorf("PRODUCTS_PATH is required")
	}
	if c.RateLimitPerMinute <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit settings must be positive")
	}
	return nil
}

// PostgresDSN builds the connection string used by gorm's postgres driver.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort, c.PostgresSSLMode)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

func getEnvList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var out []string
	for _, o := range strings.Split(v, ",") {
		o = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(o), "/"))
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
