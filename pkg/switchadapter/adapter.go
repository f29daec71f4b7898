package switchadapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cashstream/voucher-settlement/pkg/models"
	"github.com/cashstream/voucher-settlement/pkg/storage"
)

// Standardized rejection codes returned by the switch protocol.
const (
	CodeInsufficientFunds      = "NSUF"
	CodeInvalidAccount         = "AC04"
	CodeInvalidAmount          = "AM09"
	CodeDuplicateRequest       = "DUPL"
	CodeParticipantUnavailable = "PART"
	CodeTimeout                = "TIME"
	CodeInternal               = "G000"
)

// knownCodes is the closed rejection taxonomy. Anything the switch returns
// outside this set is normalized to G000.
var knownCodes = map[string]string{
	CodeInsufficientFunds:      "insufficient funds",
	CodeInvalidAccount:         "invalid account",
	CodeInvalidAmount:          "invalid amount",
	CodeDuplicateRequest:       "duplicate request",
	CodeParticipantUnavailable: "participant unavailable",
	CodeTimeout:                "timeout",
	CodeInternal:               "internal error",
}

// SettlementRequest describes one settlement to perform. The caller mints
// the idempotency key; retrying with the same key replays the stored result.
type SettlementRequest struct {
	IdempotencyKey string
	DebtorId       string
	CreditorId     string
	Amount         int64
}

// SettlementResult is the adapter's verdict. Rejections are domain outcomes,
// not errors: callers receive the triple and decide messaging themselves.
type SettlementResult struct {
	Status     models.SwitchRequestStatus
	ReasonCode string
	Reason     string
	Replayed   bool
}

// Accepted reports whether the settlement went through.
func (r *SettlementResult) Accepted() bool {
	return r.Status == models.SwitchAccepted
}

// Retryable reports whether a fresh attempt under a new idempotency key
// could succeed.
func (r *SettlementResult) Retryable() bool {
	return r.ReasonCode == CodeTimeout || r.ReasonCode == CodeParticipantUnavailable
}

// HealthStatus is the result of one switch health probe.
type HealthStatus struct {
	Healthy   bool
	RoundTrip time.Duration
}

// Adapter settles redemptions across e-money providers via the external
// instant-payment switch, or rejects deterministically.
type Adapter struct {
	Store   storage.SwitchRequestStore
	Client  SwitchClient
	Timeout time.Duration
}

// NewAdapter creates a new Adapter.
func NewAdapter(store storage.SwitchRequestStore, client SwitchClient, timeout time.Duration) *Adapter {
	return &Adapter{Store: store, Client: client, Timeout: timeout}
}

// SettlePayment settles one payment with exactly-once semantics from the
// caller's perspective. A request that already resolved under this key
// returns the stored result unchanged; a pending record past its deadline is
// resolved to a TIME rejection rather than retried — the caller must mint a
// fresh key for a new attempt, which prevents silent double settlement.
func (a *Adapter) SettlePayment(ctx context.Context, req SettlementRequest) (*SettlementResult, error) {
	existing, err := a.Store.GetSwitchRequest(ctx, req.IdempotencyKey)
	if err != nil && !errors.Is(err, storage.ErrSwitchRequestNotFound) {
		return nil, fmt.Errorf("failed to look up idempotency key: %w", err)
	}
	if existing != nil {
		return a.replay(ctx, existing)
	}

	record := &models.PaymentSwitchRequest{
		IdempotencyKey: req.IdempotencyKey,
		DebtorId:       req.DebtorId,
		CreditorId:     req.CreditorId,
		Amount:         req.Amount,
		Status:         models.SwitchPending,
		CreatedAt:      time.Now(),
	}
	if err := a.Store.CreateSwitchRequest(ctx, record); err != nil {
		if errors.Is(err, storage.ErrDuplicateIdempotencyKey) {
			// Another caller created the record between our read and write.
			racing, getErr := a.Store.GetSwitchRequest(ctx, req.IdempotencyKey)
			if getErr != nil {
				return nil, fmt.Errorf("failed to load racing request: %w", getErr)
			}
			return a.replay(ctx, racing)
		}
		return nil, fmt.Errorf("failed to create switch request: %w", err)
	}

	return a.execute(ctx, req)
}

// execute performs the outbound call within the bounded response window and
// resolves the stored record. No ledger row lock is held across this
// boundary; balances are only moved after the call resolves.
func (a *Adapter) execute(ctx context.Context, req SettlementRequest) (*SettlementResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, a.Timeout)
	defer cancel()

	started := time.Now()
	wire, err := a.Client.Settle(callCtx, WireRequest{
		IdempotencyKey: req.IdempotencyKey,
		DebtorId:       req.DebtorId,
		CreditorId:     req.CreditorId,
		Amount:         req.Amount,
	})
	elapsed := time.Since(started)

	var result *SettlementResult
	switch {
	case err != nil && (errors.Is(err, context.DeadlineExceeded) || callCtx.Err() != nil):
		result = &SettlementResult{Status: models.SwitchRejected, ReasonCode: CodeTimeout, Reason: knownCodes[CodeTimeout]}
	case err != nil:
		result = &SettlementResult{Status: models.SwitchRejected, ReasonCode: CodeParticipantUnavailable, Reason: knownCodes[CodeParticipantUnavailable]}
		slog.Log(ctx, slog.LevelWarn, "switch call failed", "idempotency_key", req.IdempotencyKey, "error", err)
	case wire.Accepted:
		result = &SettlementResult{Status: models.SwitchAccepted}
	default:
		code := wire.ReasonCode
		reason, known := knownCodes[code]
		if !known {
			code = CodeInternal
			reason = knownCodes[CodeInternal]
		}
		if wire.Reason != "" {
			reason = wire.Reason
		}
		result = &SettlementResult{Status: models.SwitchRejected, ReasonCode: code, Reason: reason}
	}

	settlementsTotal.WithLabelValues(string(result.Status), result.ReasonCode).Inc()
	settlementDuration.WithLabelValues(string(result.Status)).Observe(elapsed.Seconds())

	if err := a.Store.ResolveSwitchRequest(ctx, req.IdempotencyKey, result.Status, result.ReasonCode, result.Reason, time.Now()); err != nil {
		if errors.Is(err, storage.ErrConcurrentUpdate) {
			// Someone else resolved the record first; their outcome stands.
			resolved, getErr := a.Store.GetSwitchRequest(ctx, req.IdempotencyKey)
			if getErr != nil {
				return nil, fmt.Errorf("failed to load concurrently resolved request: %w", getErr)
			}
			return a.replay(ctx, resolved)
		}
		return nil, fmt.Errorf("failed to resolve switch request: %w", err)
	}

	return result, nil
}

// LookupSettlement returns the stored outcome for an idempotency key without
// submitting anything to the switch. A pending record past its response
// window reports as a TIME rejection, the same rule SettlePayment applies
// when it replays a key.
func (a *Adapter) LookupSettlement(ctx context.Context, idempotencyKey string) (*SettlementResult, error) {
	record, err := a.Store.GetSwitchRequest(ctx, idempotencyKey)
	if err != nil {
		return nil, err
	}
	return a.replay(ctx, record)
}

// replay returns the stored outcome for an existing request. A pending
// record past its deadline is treated as failed, never silently retried.
func (a *Adapter) replay(ctx context.Context, record *models.PaymentSwitchRequest) (*SettlementResult, error) {
	if record.Resolved() {
		return &SettlementResult{
			Status:     record.Status,
			ReasonCode: record.ReasonCode,
			Reason:     record.Reason,
			Replayed:   true,
		}, nil
	}

	if time.Since(record.CreatedAt) > a.Timeout {
		if err := a.Store.ResolveSwitchRequest(ctx, record.IdempotencyKey, models.SwitchRejected, CodeTimeout, knownCodes[CodeTimeout], time.Now()); err != nil && !errors.Is(err, storage.ErrConcurrentUpdate) {
			return nil, fmt.Errorf("failed to expire stale pending request: %w", err)
		}
		return &SettlementResult{
			Status:     models.SwitchRejected,
			ReasonCode: CodeTimeout,
			Reason:     knownCodes[CodeTimeout],
			Replayed:   true,
		}, nil
	}

	// Still within its window; the original attempt owns the outcome.
	return &SettlementResult{Status: models.SwitchPending, Replayed: true}, nil
}

// HealthCheck probes the switch and reports round-trip latency. Used for
// circuit-breaking by callers.
func (a *Adapter) HealthCheck(ctx context.Context) HealthStatus {
	callCtx, cancel := context.WithTimeout(ctx, a.Timeout)
	defer cancel()

	started := time.Now()
	err := a.Client.Ping(callCtx)
	status := HealthStatus{Healthy: err == nil, RoundTrip: time.Since(started)}

	if status.Healthy {
		switchHealthy.Set(1)
	} else {
		switchHealthy.Set(0)
	}

	return status
}
