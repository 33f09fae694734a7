// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Server
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Wayra API
	WayraAPIURL     string
	WayraAPITimeout time.Duration

	// Client state store: "mongo" or "redis"
	StateStore string

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// PostgreSQL (airport and route reference tables). Empty disables it.
	PostgresURI string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// HTTP
	AllowedOrigins []string
	ClientCookie   string
	SecureCookie   bool

	// Storefront defaults
	DefaultTheme       string
	HotelPageSize      int
	BusPageSize        int
	FlightPageSize     int
	ReservationPerPage int
	AdminPageSize      int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		AppVersion:      getEnv("APP_VERSION", "1.0.0"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Port:            getEnv("PORT", "8080"),
		ReadTimeout:     time.Duration(getEnvAsInt("READ_TIMEOUT", 15)) * time.Second,
		WriteTimeout:    time.Duration(getEnvAsInt("WRITE_TIMEOUT", 15)) * time.Second,
		IdleTimeout:     time.Duration(getEnvAsInt("IDLE_TIMEOUT", 60)) * time.Second,
		ShutdownTimeout: time.Duration(getEnvAsInt("SHUTDOWN_TIMEOUT", 10)) * time.Second,

		WayraAPIURL:     strings.TrimRight(getEnv("WAYRA_API_URL", "https://wayraback.up.railway.app/api"), "/"),
		WayraAPITimeout: time.Duration(getEnvAsInt("WAYRA_API_TIMEOUT", 30)) * time.Second,

		StateStore: strings.ToLower(getEnv("STATE_STORE", "mongo")),

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "wayra"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		ClientCookie:   getEnv("CLIENT_COOKIE", "wayra_client"),
		SecureCookie:   getEnv("COOKIE_SECURE", "false") == "true",

		DefaultTheme:       getEnv("DEFAULT_THEME", "light"),
		HotelPageSize:      getEnvAsInt("HOTEL_PAGE_SIZE", 6),
		BusPageSize:        getEnvAsInt("BUS_PAGE_SIZE", 6),
		FlightPageSize:     getEnvAsInt("FLIGHT_PAGE_SIZE", 9),
		ReservationPerPage: getEnvAsInt("RESERVATION_PAGE_SIZE", 6),
		AdminPageSize:      getEnvAsInt("ADMIN_PAGE_SIZE", 8),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects settings the service cannot start with
func (c *Config) Validate() error {
	switch c.StateStore {
	case "mongo", "redis":
	default:
		return fmt.Errorf("invalid STATE_STORE %q: want mongo or redis", c.StateStore)
	}
	if c.DefaultTheme != "light" && c.DefaultTheme != "dark" {
		return fmt.Errorf("invalid DEFAULT_THEME %q: want light or dark", c.DefaultTheme)
	}
	if c.WayraAPIURL == "" {
		return fmt.Errorf("WAYRA_API_URL is required")
	}
	return nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
