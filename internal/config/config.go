package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	CartStoreMemory = "memory"
	CartStoreRedis  = "redis"
)

// Config holds every runtime setting of the store.
type Config struct {
	AppPort        string
	DatabaseDriver string
	DatabaseDSN    string
	SeedOnStart    bool
	CartStore      string
	RedisAddr      string
	CartTTL        time.Duration
	RabbitMQURL    string
	JWTSecret      string
	AdminUsername  string
	AdminPassword  string
	LogLevel       string
	LogFormat      string
}

// Load reads an optional .env file and then the environment.
// Values already present in the environment win over the .env file.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "pcstore.db")
	v.SetDefault("SEED_ON_START", true)
	v.SetDefault("CART_STORE", CartStoreMemory)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("CART_TTL", "0s")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.AutomaticEnv()

	cfg := &Config{
		AppPort:        v.GetString("APP_PORT"),
		DatabaseDriver: strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		SeedOnStart:    v.GetBool("SEED_ON_START"),
		CartStore:      strings.ToLower(v.GetString("CART_STORE")),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		CartTTL:        v.GetDuration("CART_TTL"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		AdminUsername:  v.GetString("ADMIN_USERNAME"),
		AdminPassword:  v.GetString("ADMIN_PASSWORD"),
		LogLevel:       strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:      strings.ToLower(v.GetString("LOG_FORMAT")),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q (want sqlite or postgres)", c.DatabaseDriver)
	}
	switch c.CartStore {
	case CartStoreMemory, CartStoreRedis:
	default:
		return fmt.Errorf("unsupported CART_STORE %q (want memory or redis)", c.CartStore)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if c.CartTTL < 0 {
		return fmt.Errorf("CART_TTL must not be negative, got %s", c.CartTTL)
	}
	return nil
}
