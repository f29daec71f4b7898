package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cashstream/voucher-settlement/pkg/models"
	"github.com/cashstream/voucher-settlement/pkg/storage"
	"github.com/google/uuid"
)

// ErrReissueLimitReached is returned when a reissue request would exceed the
// configured maximum reissue count.
var ErrReissueLimitReached = errors.New("voucher reissue limit reached")

// ErrInvalidExpiry is returned when an issuance request carries an
// expires_at that is not strictly after issued_at.
var ErrInvalidExpiry = errors.New("expires_at must be after issued_at")

// VoucherLedger is the slice of the data layer the state machine drives.
type VoucherLedger interface {
	storage.VoucherStore
	storage.EventReader
}

// Service governs the lifecycle of vouchers. It is the only component
// allowed to mutate voucher status.
type Service struct {
	Store            VoucherLedger
	MaxReissueCount  int
	ReissueExtension time.Duration
}

// NewService creates a new lifecycle Service.
func NewService(store VoucherLedger, maxReissueCount int, reissueExtension time.Duration) *Service {
	return &Service{
		Store:            store,
		MaxReissueCount:  maxReissueCount,
		ReissueExtension: reissueExtension,
	}
}

// IssueRequest describes a new voucher to create.
type IssueRequest struct {
	BeneficiaryId string
	Amount        int64
	GrantType     string
	ExpiresAt     time.Time
	Actor         string
}

// Issue creates a voucher in ISSUED together with its initial status event.
func (s *Service) Issue(ctx context.Context, req IssueRequest) (*models.Voucher, error) {
	now := time.Now()
	if !req.ExpiresAt.After(now) {
		return nil, ErrInvalidExpiry
	}

	voucher := &models.Voucher{
		Id:            uuid.New().String(),
		BeneficiaryId: req.BeneficiaryId,
		Amount:        req.Amount,
		GrantType:     req.GrantType,
		Status:        models.ISSUED,
		IssuedAt:      now,
		ExpiresAt:     req.ExpiresAt,
	}
	event := newVoucherEvent(voucher.Id, "", models.ISSUED, req.Actor, nil, now)

	if err := s.Store.CreateVoucher(ctx, voucher, event); err != nil {
		return nil, fmt.Errorf("failed to issue voucher: %w", err)
	}

	return voucher, nil
}

// TransitionRequest describes one requested lifecycle move.
type TransitionRequest struct {
	VoucherID string
	Event     models.VoucherEvent
	Actor     string
	Metadata  map[string]string
}

// TransitionResult carries the voucher after the move plus the event that
// recorded it. For an idempotent duplicate, Duplicate is true and Event is
// the previously persisted event.
type TransitionResult struct {
	Voucher   *models.Voucher
	Event     *models.StatusEvent
	Duplicate bool
}

// Transition validates the requested move against the transition table and
// applies it atomically with its status event. Duplicate triggers for a
// state the voucher already reached return the prior event rather than an
// error, which protects against at-least-once delivery of upstream triggers.
func (s *Service) Transition(ctx context.Context, req TransitionRequest) (*TransitionResult, error) {
	voucher, err := s.Store.GetVoucher(ctx, req.VoucherID)
	if err != nil {
		return nil, err
	}

	target, ok := Target(voucher.Status, req.Event)
	if !ok {
		if dupTarget, known := TargetAnywhere(req.Event); known && voucher.Status == dupTarget {
			return s.resolveDuplicate(ctx, voucher)
		}
		return nil, fmt.Errorf("%w: %s from %s", storage.ErrInvalidTransition, req.Event, voucher.Status)
	}

	update := &storage.VoucherTransitionUpdate{
		VoucherID:  voucher.Id,
		FromStatus: voucher.Status,
		ToStatus:   target,
	}

	now := time.Now()
	switch req.Event {
	case models.EventRedeem:
		update.RedeemedAt = &now
	case models.EventReissue:
		if voucher.ReissueCount >= s.MaxReissueCount {
			return nil, fmt.Errorf("%w: count %d", ErrReissueLimitReached, voucher.ReissueCount)
		}
		newCount := voucher.ReissueCount + 1
		newExpiry := now.Add(s.ReissueExtension)
		update.ReissueCount = &newCount
		update.ExpiresAt = &newExpiry
	}

	event := newVoucherEvent(voucher.Id, string(voucher.Status), target, req.Actor, req.Metadata, now)

	if err := s.Store.TransitionVoucher(ctx, update, event); err != nil {
		if errors.Is(err, storage.ErrAlreadyInTargetState) {
			// Lost a race against a writer moving to the same state.
			current, getErr := s.Store.GetVoucher(ctx, req.VoucherID)
			if getErr != nil {
				return nil, getErr
			}
			return s.resolveDuplicate(ctx, current)
		}
		return nil, err
	}

	voucher.Status = target
	if update.RedeemedAt != nil {
		voucher.RedeemedAt = update.RedeemedAt
	}
	if update.ExpiresAt != nil {
		voucher.ExpiresAt = *update.ExpiresAt
	}
	if update.ReissueCount != nil {
		voucher.ReissueCount = *update.ReissueCount
	}

	return &TransitionResult{Voucher: voucher, Event: event}, nil
}

// resolveDuplicate returns the previously persisted event for a voucher
// already in the requested target state.
func (s *Service) resolveDuplicate(ctx context.Context, voucher *models.Voucher) (*TransitionResult, error) {
	prior, err := s.Store.LatestEventForEntity(ctx, models.EntityVoucher, voucher.Id)
	if err != nil {
		return nil, fmt.Errorf("failed to load prior event for duplicate trigger: %w", err)
	}
	return &TransitionResult{Voucher: voucher, Event: prior, Duplicate: true}, nil
}

// ExpirySweepResult summarizes one expiry batch.
type ExpirySweepResult struct {
	Scanned int
	Expired int
	Lost    int
}

// CheckExpiry scans vouchers whose expires_at has passed and transitions
// each to EXPIRED. Safe to run concurrently with Transition: each move is
// conditioned on the voucher's scanned status, so a redeem that commits
// first wins and the sweep records the voucher as lost rather than failing.
func (s *Service) CheckExpiry(ctx context.Context, now time.Time) (ExpirySweepResult, error) {
	result := ExpirySweepResult{}

	candidates, err := s.Store.ListExpiryCandidates(ctx, now)
	if err != nil {
		return result, fmt.Errorf("failed to list expiry candidates: %w", err)
	}
	result.Scanned = len(candidates)

	for _, v := range candidates {
		update := &storage.VoucherTransitionUpdate{
			VoucherID:  v.Id,
			FromStatus: v.Status,
			ToStatus:   models.EXPIRED,
		}
		event := newVoucherEvent(v.Id, string(v.Status), models.EXPIRED, "scheduler", nil, now)

		err := s.Store.TransitionVoucher(ctx, update, event)
		switch {
		case err == nil:
			result.Expired++
		case errors.Is(err, storage.ErrAlreadyInTargetState), errors.Is(err, storage.ErrConcurrentUpdate):
			// A redeem or earlier sweep committed first.
			result.Lost++
			slog.Log(ctx, slog.LevelDebug, "expiry lost race", "voucher_id", v.Id)
		default:
			return result, fmt.Errorf("failed to expire voucher %s: %w", v.Id, err)
		}
	}

	return result, nil
}

func newVoucherEvent(voucherID, from string, to models.VoucherStatus, actor string, metadata map[string]string, at time.Time) *models.StatusEvent {
	return &models.StatusEvent{
		Id:          uuid.New().String(),
		EntityType:  models.EntityVoucher,
		EntityId:    voucherID,
		EntityKey:   fmt.Sprintf("%s#%s", models.EntityVoucher, voucherID),
		FromStatus:  from,
		ToStatus:    string(to),
		TriggeredBy: actor,
		Metadata:    metadata,
		Timestamp:   at,
		GSI1PK:      models.EventLogPartition,
	}
}
