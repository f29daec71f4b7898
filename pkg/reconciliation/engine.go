package reconciliation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cashstream/voucher-settlement/pkg/models"
	"github.com/cashstream/voucher-settlement/pkg/notifier"
	"github.com/cashstream/voucher-settlement/pkg/storage"
)

// BankClient is the narrow interface to the external banking collaborator.
type BankClient interface {
	// GetTrustAccountBalance returns the authoritative trust-account balance
	// as of the given date (YYYY-MM-DD).
	GetTrustAccountBalance(ctx context.Context, date string) (int64, error)
}

// LedgerReader is the slice of the data layer the engine reads.
type LedgerReader interface {
	storage.SnapshotStore
	storage.LiabilityReader
}

// Engine proves that the trust-account balance covers the outstanding
// e-money liability. Detection only: it never corrects the ledger.
type Engine struct {
	Bank              BankClient
	Store             LedgerReader
	Alerts            notifier.Publisher
	Tolerance         int64
	SeverityThreshold int64
}

// NewEngine creates a new reconciliation Engine.
func NewEngine(bank BankClient, store LedgerReader, alerts notifier.Publisher, tolerance, severityThreshold int64) *Engine {
	return &Engine{
		Bank:              bank,
		Store:             store,
		Alerts:            alerts,
		Tolerance:         tolerance,
		SeverityThreshold: severityThreshold,
	}
}

// Reconcile runs one reconciliation for the given date and persists the
// result as a superseding snapshot. Given a fixed trust balance and ledger
// state, the discrepancy and classification are pure functions of the
// inputs. A fetch failure still writes a snapshot, classified as ERROR.
func (e *Engine) Reconcile(ctx context.Context, date string) (*models.TrustAccountSnapshot, error) {
	snapshot := &models.TrustAccountSnapshot{
		ReconciliationDate: date,
		GeneratedAt:        time.Now(),
	}

	trustBalance, bankErr := e.Bank.GetTrustAccountBalance(ctx, date)
	liability, ledgerErr := e.Store.SumOutstandingLiability(ctx)

	if bankErr != nil || ledgerErr != nil {
		snapshot.Status = models.SnapshotError
		if bankErr != nil {
			snapshot.Detail = fmt.Sprintf("trust balance fetch failed: %v", bankErr)
		} else {
			snapshot.Detail = fmt.Sprintf("liability sum failed: %v", ledgerErr)
		}
		if err := e.Store.PutSnapshot(ctx, snapshot); err != nil {
			return nil, fmt.Errorf("failed to persist error snapshot: %w", err)
		}
		e.escalateFetchFailure(ctx, date, snapshot.Detail)
		return snapshot, nil
	}

	snapshot.TrustBalance = trustBalance
	snapshot.LiabilityTotal = liability
	snapshot.Discrepancy = trustBalance - liability

	if abs(snapshot.Discrepancy) <= e.Tolerance {
		snapshot.Status = models.SnapshotBalanced
	} else {
		snapshot.Status = models.SnapshotDiscrepancy
		snapshot.Detail = fmt.Sprintf("trust balance %d does not cover liability %d", trustBalance, liability)
	}

	if err := e.Store.PutSnapshot(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to persist snapshot: %w", err)
	}

	if snapshot.Status == models.SnapshotDiscrepancy && abs(snapshot.Discrepancy) > e.SeverityThreshold {
		e.escalateDiscrepancy(ctx, snapshot)
	}

	return snapshot, nil
}

// LatestSnapshot returns the canonical snapshot for a date.
func (e *Engine) LatestSnapshot(ctx context.Context, date string) (*models.TrustAccountSnapshot, error) {
	return e.Store.GetLatestSnapshot(ctx, date)
}

func (e *Engine) escalateDiscrepancy(ctx context.Context, snapshot *models.TrustAccountSnapshot) {
	alert := notifier.Alert{
		Kind:    notifier.AlertReconDiscrepancy,
		Subject: fmt.Sprintf("Trust account discrepancy of %d on %s", snapshot.Discrepancy, snapshot.ReconciliationDate),
		Body:    snapshot.Detail,
		Metadata: map[string]string{
			"date":        snapshot.ReconciliationDate,
			"discrepancy": fmt.Sprintf("%d", snapshot.Discrepancy),
		},
		CreatedAt: time.Now(),
	}
	if err := e.Alerts.PublishAlert(ctx, alert); err != nil {
		// The snapshot is already durable; escalation is retried next run.
		slog.Log(ctx, slog.LevelError, "failed to escalate discrepancy", "date", snapshot.ReconciliationDate, "error", err)
	}
}

func (e *Engine) escalateFetchFailure(ctx context.Context, date, detail string) {
	alert := notifier.Alert{
		Kind:      notifier.AlertReconFetchFailure,
		Subject:   fmt.Sprintf("Reconciliation for %s could not complete", date),
		Body:      detail,
		Metadata:  map[string]string{"date": date},
		CreatedAt: time.Now(),
	}
	if err := e.Alerts.PublishAlert(ctx, alert); err != nil {
		slog.Log(ctx, slog.LevelError, "failed to escalate fetch failure", "date", date, "error", err)
	}
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
