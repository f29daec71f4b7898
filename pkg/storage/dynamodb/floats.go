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

// GetAgentFloat retrieves an agent's float record from DynamoDB.
func (s *Store) GetAgentFloat(ctx context.Context, agentID string) (*models.AgentFloat, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"agent_id": agentID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal agent ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.FloatsTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get agent float from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrAgentNotFound
	}

	var f models.AgentFloat
	if err := attributevalue.UnmarshalMap(result.Item, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal agent float: %w", err)
	}

	return &f, nil
}

// CreateAgentFloat creates a new float record for an agent.
func (s *Store) CreateAgentFloat(ctx context.Context, float *models.AgentFloat) (*models.AgentFloat, error) {
	float.Version = 1
	float.LastUpdated = time.Now()

	floatAV, err := attributevalue.MarshalMap(float)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal agent float: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.FloatsTableName),
		Item:                floatAV,
		ConditionExpression: aws.String("attribute_not_exists(agent_id)"),
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("float for agent ID %s already exists", float.AgentId)
		}
		return nil, fmt.Errorf("failed to create agent float in DynamoDB: %w", err)
	}

	return float, nil
}

// ApplyFloatChange atomically applies a balance delta conditioned on the
// record's current version, and appends the audit event in the same unit.
// Two concurrent redemptions against one agent cannot both pass: the second
// writer's version check fails and it must re-read and re-decide.
func (s *Store) ApplyFloatChange(ctx context.Context, change *storage.FloatChange, event *models.StatusEvent) error {
	eventAV, err := attributevalue.MarshalMap(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}

	nowAV, err := attributevalue.Marshal(time.Now())
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Apply the balance delta under the version check.
				Update: &types.Update{
					TableName: aws.String(s.FloatsTableName),
					Key: map[string]types.AttributeValue{
						"agent_id": &types.AttributeValueMemberS{Value: change.AgentID},
					},
					UpdateExpression:    aws.String("SET balance = balance + :delta, cash_on_hand = cash_on_hand + :cash_delta, #status = :new_status, version = version + :inc, last_updated = :now"),
					ConditionExpression: aws.String("version = :version"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":delta":      &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", change.BalanceDelta)},
						":cash_delta": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", change.CashOnHandDelta)},
						":new_status": &types.AttributeValueMemberS{Value: string(change.NewStatus)},
						":version":    &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", change.ExpectedVersion)},
						":inc":        &types.AttributeValueMemberN{Value: "1"},
						":now":        nowAV,
					},
				},
			},
			{
				// Operation 2: Append the audit event.
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
			return storage.ErrConcurrentUpdate
		}
		return fmt.Errorf("failed to execute float change transaction: %w", err)
	}

	return nil
}

// ListAgentsBelowThreshold retrieves agents whose status is not OK.
func (s *Store) ListAgentsBelowThreshold(ctx context.Context) ([]models.AgentFloat, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(s.FloatsTableName),
		FilterExpression: aws.String("#status <> :ok"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ok": &types.AttributeValueMemberS{Value: string(models.FloatOK)},
		},
	}

	result, err := s.Client.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to scan for agents below threshold: %w", err)
	}

	var floats []models.AgentFloat
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &floats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal agent floats: %w", err)
	}

	return floats, nil
}
