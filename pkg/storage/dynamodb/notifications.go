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

// UpsertNotification inserts or refreshes a notification row keyed by
// (source_type, source_id). The dedup key lives in the table's primary key,
// not in a read-then-write check, so concurrent syncs cannot race into a
// duplicate. Returns true when the row was newly created.
func (s *Store) UpsertNotification(ctx context.Context, n *models.Notification) (bool, error) {
	n.UpdatedAt = time.Now()

	nAV, err := attributevalue.MarshalMap(n)
	if err != nil {
		return false, fmt.Errorf("failed to marshal notification: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:    aws.String(s.NotificationsTableName),
		Item:         nAV,
		ReturnValues: types.ReturnValueAllOld,
	}

	result, err := s.Client.PutItem(ctx, input)
	if err != nil {
		return false, fmt.Errorf("failed to upsert notification in DynamoDB: %w", err)
	}

	// No previous item means this upsert created the row.
	return len(result.Attributes) == 0, nil
}
