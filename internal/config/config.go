// Package config loads process configuration from defaults, an optional YAML
// file, a .env file and the environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/text/currency"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Payments PaymentsConfig `mapstructure:"payments"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Outbox   OutboxConfig   `mapstructure:"outbox"`
	Log      LogConfig      `mapstructure:"log"`
}

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL     string `mapstructure:"url"`
	Migrate bool   `mapstructure:"migrate"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

type AuthConfig struct {
	JWTSecret      string        `mapstructure:"jwt_secret"`
	AdminSecretKey string        `mapstructure:"admin_secret_key"`
	TokenTTL       time.Duration `mapstructure:"token_ttl"`
	BcryptCost     int           `mapstructure:"bcrypt_cost"`
	RateRPS        float64       `mapstructure:"rate_rps"`
	RateBurst      int           `mapstructure:"rate_burst"`
}

type PaymentsConfig struct {
	StripeSecretKey string `mapstructure:"stripe_secret_key"`
	Currency        string `mapstructure:"currency"`
	VerifyIntents   bool   `mapstructure:"verify_intents"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type OutboxConfig struct {
	Interval  time.Duration `mapstructure:"interval"`
	BatchSize int           `mapstructure:"batch_size"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var envKeys = map[string]string{
	"http.addr":                  "HTTP_ADDR",
	"database.url":               "DATABASE_URL",
	"database.migrate":           "DATABASE_MIGRATE",
	"storage.driver":             "STORAGE_DRIVER",
	"auth.jwt_secret":            "JWT_SECRET",
	"auth.admin_secret_key":      "ADMIN_SECRET_KEY",
	"auth.token_ttl":             "TOKEN_TTL",
	"auth.rate_rps":              "AUTH_RATE_RPS",
	"auth.rate_burst":            "AUTH_RATE_BURST",
	"payments.stripe_secret_key": "STRIPE_SECRET_KEY",
	"payments.currency":          "PAYMENT_CURRENCY",
	"payments.verify_intents":    "PAYMENT_VERIFY_INTENTS",
	"kafka.brokers":              "KAFKA_BROKERS",
	"kafka.topic":                "KAFKA_TOPIC",
	"outbox.interval":            "OUTBOX_INTERVAL",
	"outbox.batch_size":          "OUTBOX_BATCH_SIZE",
	"log.level":                  "LOG_LEVEL",
	"log.format":                 "LOG_FORMAT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.migrate", true)
	v.SetDefault("storage.driver", DriverPostgres)
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.rate_rps", 5)
	v.SetDefault("auth.rate_burst", 10)
	v.SetDefault("payments.currency", "MYR")
	v.SetDefault("payments.verify_intents", false)
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "storefront.events")
	v.SetDefault("outbox.interval", time.Second)
	v.SetDefault("outbox.batch_size", 100)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load reads configuration. path may be empty, a .env file in the working
// directory is optional.
func Load(path string) (Config, error) {
	var cfg Config

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("godotenv.Load: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return cfg, fmt.Errorf("v.BindEnv[%s]: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("v.ReadInConfig: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("v.Unmarshal: %w", err)
	}

	// KAFKA_BROKERS="a:9092, b:9092"
	cfg.Kafka.Brokers = splitList(cfg.Kafka.Brokers)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("cfg.Validate: %w", err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	if c.Auth.RateRPS <= 0 || c.Auth.RateBurst <= 0 {
		errs = append(errs, errors.New("auth.rate_rps and auth.rate_burst must be positive"))
	}

	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("database.url is required for the postgres driver"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q is unknown", c.Storage.Driver))
	}

	if _, err := c.Currency(); err != nil {
		errs = append(errs, err)
	}
	if c.Payments.VerifyIntents && c.Payments.StripeSecretKey == "" {
		errs = append(errs, errors.New("payments.verify_intents requires payments.stripe_secret_key"))
	}

	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		errs = append(errs, errors.New("kafka.topic is required when brokers are set"))
	}
	if c.Outbox.Interval <= 0 || c.Outbox.BatchSize <= 0 {
		errs = append(errs, errors.New("outbox.interval and outbox.batch_size must be positive"))
	}

	if _, err := c.Log.level(); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		errs = append(errs, fmt.Errorf("log.format %q is unknown", c.Log.Format))
	}

	return errors.Join(errs...)
}

func (c Config) Currency() (currency.Unit, error) {
	unit, err := currency.ParseISO(c.Payments.Currency)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("payments.currency %q: %w", c.Payments.Currency, err)
	}
	return unit, nil
}

// NewLogger builds the process logger.
func (l LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := l.level()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	if l.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return slog.New(slog.NewJSONHandler(w, opts)), nil
}

func (l LogConfig) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return level, fmt.Errorf("log.level %q: %w", l.Level, err)
	}
	return level, nil
}

func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
