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

const switchRequestGSI = "gsi1pk-created_at-index"

// GetSwitchRequest retrieves a request by its idempotency key.
func (s *Store) GetSwitchRequest(ctx context.Context, idempotencyKey string) (*models.PaymentSwitchRequest, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"idempotency_key": idempotencyKey})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal idempotency key: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.SwitchRequestsTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get switch request from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrSwitchRequestNotFound
	}

	var req models.PaymentSwitchRequest
	if err := attributevalue.UnmarshalMap(result.Item, &req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal switch request: %w", err)
	}

	return &req, nil
}

// CreateSwitchRequest persists a new pending request. The idempotency key is
// the partition key, so a duplicate create is rejected at the store rather
// than creating a second settlement.
func (s *Store) CreateSwitchRequest(ctx context.Context, req *models.PaymentSwitchRequest) error {
	req.GSI1PK = models.SwitchRequestPartition

	reqAV, err := attributevalue.MarshalMap(req)
	if err != nil {
		return fmt.Errorf("failed to marshal switch request: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.SwitchRequestsTableName),
		Item:                reqAV,
		ConditionExpression: aws.String("attribute_not_exists(idempotency_key)"),
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrDuplicateIdempotencyKey
		}
		return fmt.Errorf("failed to create switch request in DynamoDB: %w", err)
	}

	return nil
}

// ResolveSwitchRequest moves a pending request to its terminal status. The
// update is conditioned on the request still being pending, so a duplicate
// resolution never overwrites a committed outcome.
func (s *Store) ResolveSwitchRequest(ctx context.Context, idempotencyKey string, status models.SwitchRequestStatus, reasonCode, reason string, resolvedAt time.Time) error {
	resolvedAV, err := attributevalue.Marshal(resolvedAt)
	if err != nil {
		return fmt.Errorf("failed to marshal resolved_at: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.SwitchRequestsTableName),
		Key: map[string]types.AttributeValue{
			"idempotency_key": &types.AttributeValueMemberS{Value: idempotencyKey},
		},
		UpdateExpression:    aws.String("SET #status = :status, reason_code = :reason_code, reason = :reason, resolved_at = :resolved_at"),
		ConditionExpression: aws.String("#status = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":      &types.AttributeValueMemberS{Value: string(status)},
			":reason_code": &types.AttributeValueMemberS{Value: reasonCode},
			":reason":      &types.AttributeValueMemberS{Value: reason},
			":resolved_at": resolvedAV,
			":pending":     &types.AttributeValueMemberS{Value: string(models.SwitchPending)},
		},
	}

	if _, err := s.Client.UpdateItem(ctx, input); err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrConcurrentUpdate
		}
		return fmt.Errorf("failed to resolve switch request: %w", err)
	}

	return nil
}

// ListRejectedRequestsSince retrieves rejected requests created at or after
// the given instant.
func (s *Store) ListRejectedRequestsSince(ctx context.Context, since time.Time) ([]models.PaymentSwitchRequest, error) {
	sinceStr, err := since.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal since time: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.SwitchRequestsTableName),
		IndexName:              aws.String(switchRequestGSI),
		KeyConditionExpression: aws.String("gsi1pk = :pk AND created_at >= :since"),
		FilterExpression:       aws.String("#status = :rejected"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":       &types.AttributeValueMemberS{Value: models.SwitchRequestPartition},
			":since":    &types.AttributeValueMemberS{Value: string(sinceStr)},
			":rejected": &types.AttributeValueMemberS{Value: string(models.SwitchRejected)},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query rejected switch requests: %w", err)
	}

	var reqs []models.PaymentSwitchRequest
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &reqs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal switch requests: %w", err)
	}

	return reqs, nil
}
