package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPPort              string        `envconfig:"HTTP_PORT" default:"8080"`
	DBHost                string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort                string        `envconfig:"DB_PORT" default:"5432"`
	DBUser                string        `envconfig:"DB_USER" default:"postgres"`
	DBPassword            string        `envconfig:"DB_PASSWORD"`
	DBName                string        `envconfig:"DB_NAME" default:"cafe"`
	DBSslMode             string        `envconfig:"DB_SSLMODE" default:"disable"`
	RabbitMQURL           string        `envconfig:"RABBITMQ_URL"`
	RabbitMQExchange      string        `envconfig:"RABBITMQ_EXCHANGE" default:"cafe.orders"`
	OutboxBatchSize       int           `envconfig:"OUTBOX_BATCH_SIZE" default:"100"`
	PublishTimeout        time.Duration `envconfig:"OUTBOX_PUBLISH_TIMEOUT" default:"5s"`
	RelayRunTimeout       time.Duration `envconfig:"OUTBOX_RELAY_TIMEOUT" default:"1m"`
	OpenOrdersMaxAgeHours int           `envconfig:"OPEN_ORDERS_MAX_AGE_HOURS" default:"24"`
	LogLevel              string        `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadConfig reads envFile into the environment when it exists, then decodes the
// environment. Variables already set win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN is the PostgreSQL connection string for both gorm and the migration runner.
func (c Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSslMode)
}

func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
