package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setRequiredTables(t *testing.T) {
	t.Setenv("DYNAMODB_VOUCHERS_TABLE_NAME", "vouchers")
	t.Setenv("DYNAMODB_EVENTS_TABLE_NAME", "events")
	t.Setenv("DYNAMODB_FLOATS_TABLE_NAME", "floats")
	t.Setenv("DYNAMODB_SWITCH_REQUESTS_TABLE_NAME", "switch-requests")
	t.Setenv("DYNAMODB_SNAPSHOTS_TABLE_NAME", "snapshots")
	t.Setenv("DYNAMODB_WALLETS_TABLE_NAME", "wallets")
	t.Setenv("DYNAMODB_NOTIFICATIONS_TABLE_NAME", "notifications")
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		setRequiredTables(t)

		cfg, err := Load()

		assert.NoError(t, err)
		assert.Equal(t, "8080", cfg.HTTPPort)
		assert.Equal(t, 3, cfg.MaxReissueCount)
		assert.Equal(t, 7*24*time.Hour, cfg.ReissueExtension)
		assert.Equal(t, 10*time.Second, cfg.SwitchTimeout)
		assert.Equal(t, int64(100_000), cfg.DualControlThreshold)
		assert.Equal(t, int64(100), cfg.ReconciliationTolerance)
	})

	t.Run("Overrides", func(t *testing.T) {
		setRequiredTables(t)
		t.Setenv("HTTP_PORT", "9090")
		t.Setenv("VOUCHER_MAX_REISSUE_COUNT", "5")
		t.Setenv("SWITCH_TIMEOUT", "2s")
		t.Setenv("FLOAT_DUAL_CONTROL_THRESHOLD", "250000")

		cfg, err := Load()

		assert.NoError(t, err)
		assert.Equal(t, "9090", cfg.HTTPPort)
		assert.Equal(t, 5, cfg.MaxReissueCount)
		assert.Equal(t, 2*time.Second, cfg.SwitchTimeout)
		assert.Equal(t, int64(250_000), cfg.DualControlThreshold)
	})

	t.Run("Missing Table Names", func(t *testing.T) {
		setRequiredTables(t)
		t.Setenv("DYNAMODB_VOUCHERS_TABLE_NAME", "")

		cfg, err := Load()

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "DYNAMODB_VOUCHERS_TABLE_NAME")
		assert.Nil(t, cfg)
	})

	t.Run("Unparseable Tunable Falls Back", func(t *testing.T) {
		setRequiredTables(t)
		t.Setenv("VOUCHER_MAX_REISSUE_COUNT", "many")

		cfg, err := Load()

		assert.NoError(t, err)
		assert.Equal(t, 3, cfg.MaxReissueCount)
	})
}
