package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"forwarding/internal/core/domain/model/branch"
	"forwarding/internal/jobs"
	"forwarding/internal/pkg/errs"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPPort     = "8080"
	defaultStoreTimeout = 5 * time.Second
	defaultTimeZone     = "Asia/Tbilisi"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// StoreTimeout bounds every request that reaches the store.
	StoreTimeout time.Duration
	// Location is the business time zone that report days are cut in.
	Location           *time.Location
	BranchDeletePolicy branch.DeletePolicy

	KafkaBrokers           string
	KafkaOrderChangedTopic string

	SummaryJobSchedule string
}

// UsesDatabase reports whether Postgres is configured. Without DB_HOST the
// service runs on the in-memory store.
func (c Config) UsesDatabase() bool {
	return c.DBHost != ""
}

// UsesKafka reports whether events go to Kafka rather than to the log.
func (c Config) UsesKafka() bool {
	return c.KafkaBrokers != ""
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfigFromEnv reads .env when present, then the process environment.
// Variables already set in the environment win over the file.
func LoadConfigFromEnv() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return LoadConfig(os.Getenv)
}

// LoadConfig builds the configuration from getenv, applying defaults and
// reporting every invalid setting at once.
func LoadConfig(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		HTTPPort:               get("HTTP_PORT", defaultHTTPPort),
		DBHost:                 get("DB_HOST", ""),
		DBPort:                 get("DB_PORT", "5432"),
		DBUser:                 get("DB_USER", ""),
		DBPassword:             getenv("DB_PASSWORD"),
		DBName:                 get("DB_NAME", ""),
		DBSslMode:              get("DB_SSLMODE", "disable"),
		KafkaBrokers:           get("KAFKA_BROKERS", ""),
		KafkaOrderChangedTopic: get("KAFKA_ORDER_CHANGED_TOPIC", "forwarding.order_changed"),
		SummaryJobSchedule:     get("SUMMARY_JOB_SCHEDULE", jobs.DefaultSummarySchedule),
	}

	var problems []error

	if port, err := strconv.Atoi(cfg.HTTPPort); err != nil || port < 1 || port > 65535 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("HTTP_PORT", fmt.Errorf("%q is not a port", cfg.HTTPPort)))
	}

	timeout, err := time.ParseDuration(get("STORE_TIMEOUT", defaultStoreTimeout.String()))
	switch {
	case err != nil:
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("STORE_TIMEOUT", err))
	case timeout <= 0:
		problems = append(problems, errs.NewValueIsOutOfRangeError("STORE_TIMEOUT", timeout, "1ns", "unbounded"))
	default:
		cfg.StoreTimeout = timeout
	}

	if cfg.Location, err = time.LoadLocation(get("TIME_ZONE", defaultTimeZone)); err != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("TIME_ZONE", err))
	}

	if cfg.BranchDeletePolicy, err = branch.ParseDeletePolicy(getenv("BRANCH_DELETE_POLICY")); err != nil {
		problems = append(problems, err)
	}

	if cfg.UsesDatabase() {
		if cfg.DBUser == "" {
			problems = append(problems, errs.NewValueIsRequiredError("DB_USER"))
		}
		if cfg.DBName == "" {
			problems = append(problems, errs.NewValueIsRequiredError("DB_NAME"))
		}
	}

	if err = errors.Join(problems...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
