package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/monocle-dev/herald/internal/types"
	"golang.org/x/crypto/bcrypt"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	// Used only outside production when JWT_SECRET is unset.
	InsecureJWTSecret = "your_jwt_secret"
)

type Config struct {
	Env  string
	Port string

	JWTSecret       string
	JWTTTL          time.Duration
	JWTSecretIsWeak bool
	BcryptCost      int

	DBDriver    string
	DatabaseURL string

	AllowedOrigins []string

	LogLevel  string
	LogFormat string

	ShutdownTimeout time.Duration
}

func (c *Config) IsDevelopment() bool {
	return c.Env != EnvProduction
}

// Load reads configuration from the environment. Callers load .env files first.
func Load() (*Config, error) {
	cfg := &Config{
		Env:       strings.ToLower(getEnv("APP_ENV", EnvDevelopment)),
		Port:      getEnv("PORT", "3000"),
		DBDriver:  strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		if cfg.Env == EnvProduction {
			return nil, fmt.Errorf("missing required env var: JWT_SECRET")
		}
		cfg.JWTSecret = InsecureJWTSecret
		cfg.JWTSecretIsWeak = true
	}

	ttl, err := getDuration("JWT_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.JWTTTL = ttl

	cost, err := getInt("BCRYPT_COST", bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	cfg.BcryptCost = cost

	switch cfg.DBDriver {
	case "postgres", "mysql":
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("missing required env var: DATABASE_URL")
		}
	case "sqlite":
		cfg.DatabaseURL = getEnv("DATABASE_URL", "herald.db")
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	st, err := getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.ShutdownTimeout = st

	cfg.AllowedOrigins = allowedOrigins()

	return cfg, nil
}

func allowedOrigins() []string {
	origins := make([]string, len(types.DefaultOrigins))
	copy(origins, types.DefaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if extra := os.Getenv("ALLOWED_ORIGINS"); extra != "" {
		for _, origin := range strings.Split(extra, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %q: %w", key, v, err)
	}
	return n, nil
}
