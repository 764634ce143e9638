package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the full application configuration, loaded from environment
// variables with sane defaults and validated before use.
type Config struct {
	Port     int
	LogLevel string

	Database DatabaseConfig
	Auth     AuthConfig
	Notifier NotifierConfig
	Security SecurityConfig
	Server   ServerConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// AuthConfig holds session token configuration. Tokens are the durable session
// record: a valid token is what "logged in" means.
type AuthConfig struct {
	JWTSecret     string
	TokenExpiry   time.Duration
	LoginPagePath string
}

// NotifierConfig holds configuration for the outbound webhook notifier
type NotifierConfig struct {
	URL            string
	Timeout        time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
	MaxPayloadSize int64
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	RateLimitRPS    int
	RateLimitBurst  int
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	EnableCORS      bool
	AllowedOrigins  []string
	TrustedProxies  []string
}

// ServerConfig holds server performance configuration
type ServerConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
}

// LoadConfig loads and validates the configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		Port:     getEnvAsInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Database: loadDatabaseConfig(),
		Auth:     loadAuthConfig(),
		Notifier: loadNotifierConfig(),
		Security: loadSecurityConfig(),
		Server:   loadServerConfig(),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            getEnvAsInt("DB_PORT", 5432),
		User:            getEnv("DB_USER", ""),
		Password:        getEnv("DB_PASSWORD", ""),
		Name:            getEnv("DB_NAME", ""),
		SSLMode:         getEnv("DB_SSL_MODE", "disable"),
		MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
		ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		ConnMaxIdleTime: getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
	}
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret:     getEnv("JWT_SECRET", ""),
		TokenExpiry:   getEnvAsDuration("JWT_EXPIRY", 24*time.Hour),
		LoginPagePath: getEnv("LOGIN_PAGE_PATH", "/login"),
	}
}

func loadNotifierConfig() NotifierConfig {
	return NotifierConfig{
		URL:            getEnv("NOTIFIER_URL", ""),
		Timeout:        getEnvAsDuration("NOTIFIER_TIMEOUT", 10*time.Second),
		RetryAttempts:  getEnvAsInt("NOTIFIER_RETRY_ATTEMPTS", 1),
		RetryDelay:     getEnvAsDuration("NOTIFIER_RETRY_DELAY", time.Second),
		MaxPayloadSize: getEnvAsInt64("NOTIFIER_MAX_PAYLOAD_SIZE", 1024*1024),
	}
}

func loadSecurityConfig() SecurityConfig {
	return SecurityConfig{
		RateLimitRPS:    getEnvAsInt("RATE_LIMIT_RPS", 100),
		RateLimitBurst:  getEnvAsInt("RATE_LIMIT_BURST", 200),
		RequestTimeout:  getEnvAsDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		EnableCORS:      getEnvAsBool("ENABLE_CORS", true),
		AllowedOrigins:  getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		TrustedProxies:  getEnvAsSlice("TRUSTED_PROXIES", []string{}),
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		ReadTimeout:    getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:   getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:    getEnvAsDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		MaxHeaderBytes: getEnvAsInt("SERVER_MAX_HEADER_BYTES", 1<<20),
	}
}

func (c *Config) validate() error {
	var problems []string

	if c.Database.User == "" {
		problems = append(problems, "database user is required")
	}
	if c.Database.Password == "" {
		problems = append(problems, "database password is required")
	}
	if c.Database.Name == "" {
		problems = append(problems, "database name is required")
	}

	if c.Auth.JWTSecret == "" {
		problems = append(problems, "JWT secret is required")
	}
	if c.Auth.TokenExpiry <= 0 {
		problems = append(problems, "token expiry must be positive")
	}

	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, "port must be between 1 and 65535")
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		problems = append(problems, "database port must be between 1 and 65535")
	}

	if len(problems) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(problems, "; "))
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User,
		c.Database.Password, c.Database.Name, c.Database.SSLMode)
}

// Environment variable helpers.

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
