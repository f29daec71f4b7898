package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/cashstream/voucher-settlement/pkg/storage/dynamodb"
)

// Config holds all environment-driven settings for the settlement core.
type Config struct {
	Tables     dynamodb.Tables
	AlertQueue string
	HTTPPort   string
	SwitchURL  string
	BankURL    string

	// Voucher lifecycle.
	MaxReissueCount  int
	ReissueExtension time.Duration

	// Payment switch adapter.
	SwitchTimeout time.Duration

	// Agent liquidity guard.
	CriticalFloor        int64
	DualControlThreshold int64

	// Trust reconciliation.
	ReconciliationTolerance int64
	SeverityThreshold       int64

	// Status event sync.
	SyncLookback    time.Duration
	ExpiryWarningIn time.Duration
}

// Load reads configuration from the environment. Table names and the alert
// queue URL are required; tunables fall back to sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Tables: dynamodb.Tables{
			Vouchers:       os.Getenv("DYNAMODB_VOUCHERS_TABLE_NAME"),
			Events:         os.Getenv("DYNAMODB_EVENTS_TABLE_NAME"),
			Floats:         os.Getenv("DYNAMODB_FLOATS_TABLE_NAME"),
			SwitchRequests: os.Getenv("DYNAMODB_SWITCH_REQUESTS_TABLE_NAME"),
			Snapshots:      os.Getenv("DYNAMODB_SNAPSHOTS_TABLE_NAME"),
			Wallets:        os.Getenv("DYNAMODB_WALLETS_TABLE_NAME"),
			Notifications:  os.Getenv("DYNAMODB_NOTIFICATIONS_TABLE_NAME"),
		},
		AlertQueue: os.Getenv("SQS_ALERT_QUEUE_URL"),
		HTTPPort:   envOr("HTTP_PORT", "8080"),
		SwitchURL:  os.Getenv("PAYMENT_SWITCH_URL"),
		BankURL:    os.Getenv("BANK_API_URL"),

		MaxReissueCount:  envInt("VOUCHER_MAX_REISSUE_COUNT", 3),
		ReissueExtension: envDuration("VOUCHER_REISSUE_EXTENSION", 7*24*time.Hour),

		SwitchTimeout: envDuration("SWITCH_TIMEOUT", 10*time.Second),

		CriticalFloor:        envInt64("FLOAT_CRITICAL_FLOOR", 0),
		DualControlThreshold: envInt64("FLOAT_DUAL_CONTROL_THRESHOLD", 100_000),

		ReconciliationTolerance: envInt64("RECONCILIATION_TOLERANCE", 100),
		SeverityThreshold:       envInt64("RECONCILIATION_SEVERITY_THRESHOLD", 10_000),

		SyncLookback:    envDuration("EVENT_SYNC_LOOKBACK", 24*time.Hour),
		ExpiryWarningIn: envDuration("EXPIRY_WARNING_WINDOW", 72*time.Hour),
	}

	missing := []string{}
	for name, value := range map[string]string{
		"DYNAMODB_VOUCHERS_TABLE_NAME":        cfg.Tables.Vouchers,
		"DYNAMODB_EVENTS_TABLE_NAME":          cfg.Tables.Events,
		"DYNAMODB_FLOATS_TABLE_NAME":          cfg.Tables.Floats,
		"DYNAMODB_SWITCH_REQUESTS_TABLE_NAME": cfg.Tables.SwitchRequests,
		"DYNAMODB_SNAPSHOTS_TABLE_NAME":       cfg.Tables.Snapshots,
		"DYNAMODB_WALLETS_TABLE_NAME":         cfg.Tables.Wallets,
		"DYNAMODB_NOTIFICATIONS_TABLE_NAME":   cfg.Tables.Notifications,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %v", missing)
	}

	return cfg, nil
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func envInt(name string, fallback int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(name string, fallback int64) int64 {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(name string, fallback time.Duration) time.Duration {
	if v := os.Getenv(name); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
