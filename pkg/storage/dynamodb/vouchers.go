package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cashstream/voucher-settlement/pkg/models"
	"github.com/cashstream/voucher-settlement/pkg/storage"
)

const (
	voucherStatusExpiryGSI = "status-expires_at-index"
)

// GetVoucher retrieves a voucher from DynamoDB by its ID.
func (s *Store) GetVoucher(ctx context.Context, voucherID string) (*models.Voucher, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": voucherID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal voucher ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.VouchersTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get voucher from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrVoucherNotFound
	}

	var v models.Voucher
	if err := attributevalue.UnmarshalMap(result.Item, &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal voucher: %w", err)
	}

	return &v, nil
}

// CreateVoucher atomically persists a new voucher together with its initial
// status event. No event without a committed voucher row, and vice versa.
func (s *Store) CreateVoucher(ctx context.Context, voucher *models.Voucher, event *models.StatusEvent) error {
	voucherAV, err := attributevalue.MarshalMap(voucher)
	if err != nil {
		return fmt.Errorf("failed to marshal voucher: %w", err)
	}
	eventAV, err := attributevalue.MarshalMap(event)
	if err != nil {
		return fmt.Errorf("failed to marshal status event: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(s.VouchersTableName),
					Item:                voucherAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(s.EventsTableName),
					Item:                eventAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		return fmt.Errorf("failed to execute voucher creation transaction: %w", err)
	}

	return nil
}

// TransitionVoucher atomically applies a status transition conditioned on the
// voucher's current status, appending the status event in the same unit.
// A racing writer that commits first makes the condition fail; the loser is
// reported as ErrAlreadyInTargetState or ErrConcurrentUpdate after a re-read.
func (s *Store) TransitionVoucher(ctx context.Context, update *storage.VoucherTransitionUpdate, event *models.StatusEvent) error {
	eventAV, err := attributevalue.MarshalMap(event)
	if err != nil {
		return fmt.Errorf("failed to marshal status event: %w", err)
	}

	updateExpr := "SET #status = :to_status"
	exprValues := map[string]types.AttributeValue{
		":to_status":   &types.AttributeValueMemberS{Value: string(update.ToStatus)},
		":from_status": &types.AttributeValueMemberS{Value: string(update.FromStatus)},
	}

	if update.RedeemedAt != nil {
		redeemedAV, err := attributevalue.Marshal(update.RedeemedAt)
		if err != nil {
			return fmt.Errorf("failed to marshal redeemed_at: %w", err)
		}
		updateExpr += ", redeemed_at = :redeemed_at"
		exprValues[":redeemed_at"] = redeemedAV
	}
	if update.ExpiresAt != nil {
		expiresAV, err := attributevalue.Marshal(update.ExpiresAt)
		if err != nil {
			return fmt.Errorf("failed to marshal expires_at: %w", err)
		}
		updateExpr += ", expires_at = :expires_at"
		exprValues[":expires_at"] = expiresAV
	}
	if update.ReissueCount != nil {
		updateExpr += ", reissue_count = :reissue_count"
		exprValues[":reissue_count"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", *update.ReissueCount)}
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Move the voucher, conditioned on its current status.
				Update: &types.Update{
					TableName: aws.String(s.VouchersTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: update.VoucherID},
					},
					UpdateExpression:    aws.String(updateExpr),
					ConditionExpression: aws.String("#status = :from_status"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: exprValues,
				},
			},
			{
				// Operation 2: Append the status event.
				Put: &types.Put{
					TableName:           aws.String(s.EventsTableName),
					Item:                eventAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) && len(tce.CancellationReasons) > 0 &&
			tce.CancellationReasons[0].Code != nil && *tce.CancellationReasons[0].Code == "ConditionalCheckFailed" {
			// Re-read to distinguish a duplicate trigger from a lost race.
			current, getErr := s.GetVoucher(ctx, update.VoucherID)
			if getErr != nil {
				return fmt.Errorf("transition condition failed and re-read failed: %w", getErr)
			}
			if current.Status == update.ToStatus {
				return storage.ErrAlreadyInTargetState
			}
			return storage.ErrConcurrentUpdate
		}
		return fmt.Errorf("failed to execute transition transaction: %w", err)
	}

	return nil
}

// ListExpiryCandidates retrieves vouchers still in a live status whose
// expires_at has passed. Queries the status GSI once per live status.
func (s *Store) ListExpiryCandidates(ctx context.Context, now time.Time) ([]models.Voucher, error) {
	return s.queryLiveVouchersExpiringBefore(ctx, now)
}

// ListVouchersExpiringBefore retrieves live vouchers expiring before the
// cutoff, used by the event sync's attention queries.
func (s *Store) ListVouchersExpiringBefore(ctx context.Context, cutoff time.Time) ([]models.Voucher, error) {
	return s.queryLiveVouchersExpiringBefore(ctx, cutoff)
}

func (s *Store) queryLiveVouchersExpiringBefore(ctx context.Context, cutoff time.Time) ([]models.Voucher, error) {
	cutoffStr, err := cutoff.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cutoff time: %w", err)
	}

	var vouchers []models.Voucher
	for _, status := range []models.VoucherStatus{models.ISSUED, models.AVAILABLE} {
		input := &dynamodb.QueryInput{
			TableName:              aws.String(s.VouchersTableName),
			IndexName:              aws.String(voucherStatusExpiryGSI),
			KeyConditionExpression: aws.String("#status = :status AND expires_at <= :cutoff"),
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":status": &types.AttributeValueMemberS{Value: string(status)},
				":cutoff": &types.AttributeValueMemberS{Value: string(cutoffStr)},
			},
		}

		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query vouchers in status %s: %w", status, err)
		}

		var page []models.Voucher
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal vouchers: %w", err)
		}
		vouchers = append(vouchers, page...)
	}

	return vouchers, nil
}
