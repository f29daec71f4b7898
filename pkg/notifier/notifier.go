package notifier

import (
	"context"
	"time"
)

// AlertKind classifies alerts for the external notification collaborator.
type AlertKind string

const (
	AlertFloatLow           AlertKind = "FLOAT_LOW"
	AlertFloatCritical      AlertKind = "FLOAT_CRITICAL"
	AlertFloatOverdraft     AlertKind = "FLOAT_OVERDRAFT"
	AlertFloatReplenishment AlertKind = "FLOAT_REPLENISHMENT_REQUEST"
	AlertReconDiscrepancy   AlertKind = "RECONCILIATION_DISCREPANCY"
	AlertReconFetchFailure  AlertKind = "RECONCILIATION_FETCH_FAILURE"
)

// Alert is one message for the notification collaborator. The core never
// delivers notifications itself; it only enqueues them.
type Alert struct {
	Kind      AlertKind         `json:"kind"`
	Subject   string            `json:"subject"`
	Body      string            `json:"body"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// Publisher defines the interface for enqueuing alerts.
type Publisher interface {
	// PublishAlert enqueues an alert for asynchronous delivery.
	PublishAlert(ctx context.Context, alert Alert) error
}

// NoOpPublisher is a publisher that does nothing. Useful in tests and in
// entrypoints that never alert.
type NoOpPublisher struct{}

// PublishAlert does nothing.
func (p *NoOpPublisher) PublishAlert(ctx context.Context, alert Alert) error {
	return nil
}
