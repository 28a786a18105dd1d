package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"orders/internal/adapters/out/postgres"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config is read from the environment, optionally seeded from a .env file.
type Config struct {
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Storage       string `env:"STORAGE" envDefault:"postgres"`
	DBHost        string `env:"DB_HOST" envDefault:"localhost"`
	DBPort        int    `env:"DB_PORT" envDefault:"5432"`
	DBUser        string `env:"DB_USER" envDefault:"postgres"`
	DBPassword    string `env:"DB_PASSWORD"`
	DBName        string `env:"DB_NAME" envDefault:"orders"`
	DBSslMode     string `env:"DB_SSLMODE" envDefault:"disable"`
	DBAutoMigrate bool   `env:"DB_AUTO_MIGRATE" envDefault:"true"`

	CompletionDelay     time.Duration `env:"COMPLETION_DELAY" envDefault:"5s"`
	CompletionSchedule  string        `env:"COMPLETION_SCHEDULE" envDefault:"* * * * * *"`
	CompletionBatchSize int           `env:"COMPLETION_BATCH_SIZE" envDefault:"100"`

	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	Environment  string `env:"APP_ENV" envDefault:"development"`
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE"`
}

// LoadConfig loads envFile when it exists and parses the environment.
// Variables already set in the process win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errList []error
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		errList = append(errList, fmt.Errorf("HTTP_PORT %d is out of range", c.HTTPPort))
	}
	if c.Storage != StoragePostgres && c.Storage != StorageMemory {
		errList = append(errList, fmt.Errorf("STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, c.Storage))
	}
	if c.CompletionDelay < 0 {
		errList = append(errList, fmt.Errorf("COMPLETION_DELAY %s is negative", c.CompletionDelay))
	}
	if c.CompletionBatchSize <= 0 {
		errList = append(errList, fmt.Errorf("COMPLETION_BATCH_SIZE %d is not greater than 0", c.CompletionBatchSize))
	}
	return errors.Join(errList...)
}

func (c Config) DSN() string {
	return postgres.DSN(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.HTTPPort)
}
