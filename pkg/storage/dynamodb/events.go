package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cashstream/voucher-settlement/pkg/models"
)

const eventLogGSI = "gsi1pk-timestamp-index"

// AppendEvent writes one status event to the append-only log.
func (s *Store) AppendEvent(ctx context.Context, event *models.StatusEvent) error {
	eventAV, err := attributevalue.MarshalMap(event)
	if err != nil {
		return fmt.Errorf("failed to marshal status event: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.EventsTableName),
		Item:                eventAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		return fmt.Errorf("failed to append status event: %w", err)
	}

	return nil
}

// ListEventsByEntity retrieves all events for one entity in timestamp order.
func (s *Store) ListEventsByEntity(ctx context.Context, entityType models.EntityType, entityID string) ([]models.StatusEvent, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.EventsTableName),
		IndexName:              aws.String("entity_key-timestamp-index"),
		KeyConditionExpression: aws.String("entity_key = :key"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":key": &types.AttributeValueMemberS{Value: entityKey(entityType, entityID)},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query events for entity: %w", err)
	}

	var events []models.StatusEvent
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status events: %w", err)
	}

	return events, nil
}

// LatestEventForEntity retrieves the most recent event for one entity.
func (s *Store) LatestEventForEntity(ctx context.Context, entityType models.EntityType, entityID string) (*models.StatusEvent, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.EventsTableName),
		IndexName:              aws.String("entity_key-timestamp-index"),
		KeyConditionExpression: aws.String("entity_key = :key"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":key": &types.AttributeValueMemberS{Value: entityKey(entityType, entityID)},
		},
		ScanIndexForward: aws.Bool(false), // Newest first.
		Limit:            aws.Int32(1),
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest event for entity: %w", err)
	}

	if len(result.Items) == 0 {
		return nil, nil
	}

	var event models.StatusEvent
	if err := attributevalue.UnmarshalMap(result.Items[0], &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status event: %w", err)
	}

	return &event, nil
}

// ListEventsSince retrieves events across all entities with a timestamp at
// or after the given instant, oldest first.
func (s *Store) ListEventsSince(ctx context.Context, since time.Time, limit int32) ([]models.StatusEvent, error) {
	sinceStr, err := since.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal since time: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.EventsTableName),
		IndexName:              aws.String(eventLogGSI),
		KeyConditionExpression: aws.String("gsi1pk = :pk AND #ts >= :since"),
		ExpressionAttributeNames: map[string]string{
			"#ts": "timestamp",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":    &types.AttributeValueMemberS{Value: models.EventLogPartition},
			":since": &types.AttributeValueMemberS{Value: string(sinceStr)},
		},
		Limit: aws.Int32(limit),
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query event log: %w", err)
	}

	var events []models.StatusEvent
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status events: %w", err)
	}

	return events, nil
}

func entityKey(entityType models.EntityType, entityID string) string {
	return fmt.Sprintf("%s#%s", entityType, entityID)
}
