package cmd_test

import (
	"testing"
	"time"

	"forwarding/cmd"
	"forwarding/internal/core/domain/model/branch"
	"forwarding/internal/jobs"
	"forwarding/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := cmd.LoadConfig(env(nil))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, "Asia/Tbilisi", cfg.Location.String())
	assert.Equal(t, branch.RestrictDelete, cfg.BranchDeletePolicy)
	assert.Equal(t, jobs.DefaultSummarySchedule, cfg.SummaryJobSchedule)
	assert.False(t, cfg.UsesDatabase())
	assert.False(t, cfg.UsesKafka())
}

func TestLoadConfig_ReadsEverySetting(t *testing.T) {
	cfg, err := cmd.LoadConfig(env(map[string]string{
		"HTTP_PORT":                 "9090",
		"DB_HOST":                   "db",
		"DB_PORT":                   "6432",
		"DB_USER":                   "forwarding",
		"DB_PASSWORD":               "secret",
		"DB_NAME":                   "forwarding",
		"DB_SSLMODE":                "require",
		"STORE_TIMEOUT":             "750ms",
		"TIME_ZONE":                 "America/New_York",
		"BRANCH_DELETE_POLICY":      "unrestricted",
		"KAFKA_BROKERS":             "kafka-1:9092, kafka-2:9092",
		"KAFKA_ORDER_CHANGED_TOPIC": "orders.changed",
		"SUMMARY_JOB_SCHEDULE":      "0 30 2 1 * *",
	}))

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 750*time.Millisecond, cfg.StoreTimeout)
	assert.Equal(t, "America/New_York", cfg.Location.String())
	assert.Equal(t, branch.UnrestrictedDelete, cfg.BranchDeletePolicy)
	assert.Equal(t, "orders.changed", cfg.KafkaOrderChangedTopic)
	assert.Equal(t, "0 30 2 1 * *", cfg.SummaryJobSchedule)
	assert.True(t, cfg.UsesDatabase())
	assert.True(t, cfg.UsesKafka())
	assert.Equal(t,
		"host=db port=6432 user=forwarding password=secret dbname=forwarding sslmode=require",
		cfg.DSN(),
	)
}

func TestLoadConfig_ReportsEveryProblem(t *testing.T) {
	_, err := cmd.LoadConfig(env(map[string]string{
		"HTTP_PORT":            "http",
		"STORE_TIMEOUT":        "-1s",
		"TIME_ZONE":            "Mars/Olympus_Mons",
		"BRANCH_DELETE_POLICY": "cascade",
		"DB_HOST":              "db",
	}))

	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	for _, key := range []string{"HTTP_PORT", "STORE_TIMEOUT", "TIME_ZONE", "branch delete policy", "DB_USER", "DB_NAME"} {
		assert.Contains(t, err.Error(), key)
	}
}
