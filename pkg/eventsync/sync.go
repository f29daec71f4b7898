package eventsync

import (
	"context"
	"fmt"
	"time"

	"github.com/cashstream/voucher-settlement/pkg/models"
	"github.com/cashstream/voucher-settlement/pkg/storage"
)

// Notification source types. Together with the source ID they form the
// dedup key, so re-running the sync never duplicates a row.
const (
	SourceStatusEvent     = "status_event"
	SourceVoucherExpiring = "voucher_expiring"
	SourcePaymentRejected = "payment_rejected"
)

// eventListPageSize bounds one sync pass over the event log.
const eventListPageSize = 500

// SyncStore is the slice of the data layer the sync reads and projects into.
type SyncStore interface {
	storage.EventReader
	storage.VoucherReader
	storage.SwitchRequestStore
	storage.NotificationStore
}

// Syncer projects the append-only status event log, plus a small set of
// requires-attention queries, into upserted notification rows for the
// external notification collaborator.
type Syncer struct {
	Store           SyncStore
	Lookback        time.Duration
	ExpiryWarningIn time.Duration
}

// NewSyncer creates a new Syncer.
func NewSyncer(store SyncStore, lookback, expiryWarningIn time.Duration) *Syncer {
	return &Syncer{Store: store, Lookback: lookback, ExpiryWarningIn: expiryWarningIn}
}

// SyncResult summarizes one sync run.
type SyncResult struct {
	Created int
	Updated int
}

// Sync runs one projection pass. Safe under at-least-once scheduler
// delivery: each row is keyed by (source_type, source_id) and upserted, so
// a second run over an unchanged log creates nothing new.
func (s *Syncer) Sync(ctx context.Context) (SyncResult, error) {
	result := SyncResult{}
	now := time.Now()

	events, err := s.Store.ListEventsSince(ctx, now.Add(-s.Lookback), eventListPageSize)
	if err != nil {
		return result, fmt.Errorf("failed to list events for sync: %w", err)
	}
	for i := range events {
		e := &events[i]
		n := &models.Notification{
			SourceType: SourceStatusEvent,
			SourceId:   e.Id,
			Kind:       fmt.Sprintf("%s_%s", e.EntityType, e.ToStatus),
			Subject:    fmt.Sprintf("%s %s moved to %s", e.EntityType, e.EntityId, e.ToStatus),
			Body:       fmt.Sprintf("Status changed from %q to %q, triggered by %s.", e.FromStatus, e.ToStatus, e.TriggeredBy),
			Metadata: map[string]string{
				"entity_type": string(e.EntityType),
				"entity_id":   e.EntityId,
			},
		}
		if err := s.upsert(ctx, n, &result); err != nil {
			return result, err
		}
	}

	if err := s.syncExpiringVouchers(ctx, now, &result); err != nil {
		return result, err
	}
	if err := s.syncRejectedPayments(ctx, now, &result); err != nil {
		return result, err
	}

	return result, nil
}

// syncExpiringVouchers projects vouchers approaching expiry so the
// collaborator can warn beneficiaries before the value is lost.
func (s *Syncer) syncExpiringVouchers(ctx context.Context, now time.Time, result *SyncResult) error {
	expiring, err := s.Store.ListVouchersExpiringBefore(ctx, now.Add(s.ExpiryWarningIn))
	if err != nil {
		return fmt.Errorf("failed to list expiring vouchers: %w", err)
	}

	for _, v := range expiring {
		if !v.ExpiresAt.After(now) {
			// Already past due; the expiry sweep owns this one.
			continue
		}
		n := &models.Notification{
			SourceType: SourceVoucherExpiring,
			SourceId:   v.Id,
			Kind:       "voucher_expiring",
			Subject:    fmt.Sprintf("Voucher %s expires soon", v.Id),
			Body:       fmt.Sprintf("Voucher for beneficiary %s worth %d expires at %s.", v.BeneficiaryId, v.Amount, v.ExpiresAt.Format(time.RFC3339)),
			Metadata: map[string]string{
				"beneficiary_id": v.BeneficiaryId,
				"expires_at":     v.ExpiresAt.Format(time.RFC3339),
			},
		}
		if err := s.upsert(ctx, n, result); err != nil {
			return err
		}
	}

	return nil
}

// syncRejectedPayments projects failed settlements for operator follow-up.
func (s *Syncer) syncRejectedPayments(ctx context.Context, now time.Time, result *SyncResult) error {
	rejected, err := s.Store.ListRejectedRequestsSince(ctx, now.Add(-s.Lookback))
	if err != nil {
		return fmt.Errorf("failed to list rejected payments: %w", err)
	}

	for _, r := range rejected {
		n := &models.Notification{
			SourceType: SourcePaymentRejected,
			SourceId:   r.IdempotencyKey,
			Kind:       "payment_rejected",
			Subject:    fmt.Sprintf("Settlement %s rejected (%s)", r.IdempotencyKey, r.ReasonCode),
			Body:       fmt.Sprintf("Settlement of %d from %s to %s was rejected: %s.", r.Amount, r.DebtorId, r.CreditorId, r.Reason),
			Metadata: map[string]string{
				"reason_code": r.ReasonCode,
			},
		}
		if err := s.upsert(ctx, n, result); err != nil {
			return err
		}
	}

	return nil
}

func (s *Syncer) upsert(ctx context.Context, n *models.Notification, result *SyncResult) error {
	created, err := s.Store.UpsertNotification(ctx, n)
	if err != nil {
		return fmt.Errorf("failed to upsert notification %s/%s: %w", n.SourceType, n.SourceId, err)
	}
	if created {
		result.Created++
	} else {
		result.Updated++
	}
	return nil
}
