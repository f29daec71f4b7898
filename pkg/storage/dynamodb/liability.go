package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cashstream/voucher-settlement/pkg/models"
)

// SumOutstandingLiability returns the total of outstanding voucher value
// plus all wallet balances. Both scans use strongly consistent reads so the
// sum reflects committed state rather than a skewed mid-write view.
func (s *Store) SumOutstandingLiability(ctx context.Context) (int64, error) {
	var total int64

	var lastKey map[string]types.AttributeValue
	for {
		input := &dynamodb.ScanInput{
			TableName:        aws.String(s.VouchersTableName),
			ConsistentRead:   aws.Bool(true),
			FilterExpression: aws.String("#status IN (:issued, :available, :reissued)"),
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":issued":    &types.AttributeValueMemberS{Value: string(models.ISSUED)},
				":available": &types.AttributeValueMemberS{Value: string(models.AVAILABLE)},
				":reissued":  &types.AttributeValueMemberS{Value: string(models.REISSUED)},
			},
			ExclusiveStartKey: lastKey,
		}

		result, err := s.Client.Scan(ctx, input)
		if err != nil {
			return 0, fmt.Errorf("failed to scan outstanding vouchers: %w", err)
		}

		var vouchers []models.Voucher
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &vouchers); err != nil {
			return 0, fmt.Errorf("failed to unmarshal vouchers: %w", err)
		}
		for _, v := range vouchers {
			total += v.Amount
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		lastKey = result.LastEvaluatedKey
	}

	wallets, err := s.ListWallets(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list wallets for liability sum: %w", err)
	}
	for _, w := range wallets {
		total += w.Balance
	}

	return total, nil
}
