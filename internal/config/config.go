package config

import (
	"errors"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// ErrMissingJWTSecret is returned when JWT_SECRET is not set.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

type Config struct {
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	ServerPort      string
	ShutdownTimeout time.Duration

	JWTSecret string

	// AccessTokenMaxAge is the session token lifetime in seconds.
	AccessTokenMaxAge int
	BcryptCost        int

	RedisURL          string
	TimelineCacheTTL  time.Duration
	CORSAllowedOrigin []string

	LogLevel string
}

// AccessTokenTTL returns the session token lifetime as a duration.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenMaxAge) * time.Second
}

// DSN returns the Postgres connection string. DATABASE_URL wins over the
// individual DB_* variables when both are present.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSSLMode}}.Encode(),
	}
	return u.String()
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file loaded, relying on environment variables", slog.String("component", "config"))
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	accessTokenMaxAge, err := strconv.Atoi(os.Getenv("ACCESS_TOKEN_MAX_AGE"))
	if err != nil || accessTokenMaxAge <= 0 {
		accessTokenMaxAge = 86400
	}

	bcryptCost, err := strconv.Atoi(os.Getenv("BCRYPT_COST"))
	if err != nil || bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	cacheTTL, err := strconv.Atoi(os.Getenv("TIMELINE_CACHE_TTL"))
	if err != nil || cacheTTL <= 0 {
		cacheTTL = 60
	}

	shutdownTimeout, err := strconv.Atoi(os.Getenv("SHUTDOWN_TIMEOUT"))
	if err != nil || shutdownTimeout <= 0 {
		shutdownTimeout = 10
	}

	return &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      getEnv("DB_NAME", "minitweet"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		ServerPort:      getEnv("SERVER_PORT", "8080"),
		ShutdownTimeout: time.Duration(shutdownTimeout) * time.Second,

		JWTSecret: jwtSecret,

		AccessTokenMaxAge: accessTokenMaxAge,
		BcryptCost:        bcryptCost,

		RedisURL:          os.Getenv("REDIS_URL"),
		TimelineCacheTTL:  time.Duration(cacheTTL) * time.Second,
		CORSAllowedOrigin: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5000,http://127.0.0.1:5000")),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
