package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cashstream/voucher-settlement/pkg/models"
	"github.com/cashstream/voucher-settlement/pkg/storage"
)

// PutSnapshot persists one reconciliation result under the next free
// revision for its date. Re-running a date supersedes the prior snapshot
// without overwriting it; every revision stays queryable for audit.
func (s *Store) PutSnapshot(ctx context.Context, snapshot *models.TrustAccountSnapshot) error {
	latest, err := s.GetLatestSnapshot(ctx, snapshot.ReconciliationDate)
	if err != nil {
		return fmt.Errorf("failed to determine latest snapshot revision: %w", err)
	}

	snapshot.Revision = 1
	if latest != nil {
		snapshot.Revision = latest.Revision + 1
	}

	snapshotAV, err := attributevalue.MarshalMap(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.SnapshotsTableName),
		Item:                snapshotAV,
		ConditionExpression: aws.String("attribute_not_exists(reconciliation_date) AND attribute_not_exists(revision)"),
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			// Another run claimed this revision between our read and write.
			return storage.ErrConcurrentUpdate
		}
		return fmt.Errorf("failed to put snapshot in DynamoDB: %w", err)
	}

	return nil
}

// GetLatestSnapshot retrieves the highest-revision snapshot for a date.
func (s *Store) GetLatestSnapshot(ctx context.Context, date string) (*models.TrustAccountSnapshot, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.SnapshotsTableName),
		KeyConditionExpression: aws.String("reconciliation_date = :date"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":date": &types.AttributeValueMemberS{Value: date},
		},
		ScanIndexForward: aws.Bool(false), // Highest revision first.
		Limit:            aws.Int32(1),
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}

	if len(result.Items) == 0 {
		return nil, nil
	}

	var snapshot models.TrustAccountSnapshot
	if err := attributevalue.UnmarshalMap(result.Items[0], &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
