package main

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/cashstream/voucher-settlement/pkg/config"
	"github.com/cashstream/voucher-settlement/pkg/lifecycle"
	"github.com/cashstream/voucher-settlement/pkg/liquidity"
	"github.com/cashstream/voucher-settlement/pkg/notifier"
	dydbstore "github.com/cashstream/voucher-settlement/pkg/storage/dynamodb"
	"github.com/joho/godotenv"
)

var lifecycleSvc *lifecycle.Service
var guard *liquidity.Guard

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(awsCfg)
	store := dydbstore.New(dbClient, cfg.Tables)

	sqsClient := sqs.NewFromConfig(awsCfg)
	alerts := notifier.NewSQSPublisher(sqsClient, cfg.AlertQueue)

	lifecycleSvc = lifecycle.NewService(store, cfg.MaxReissueCount, cfg.ReissueExtension)
	guard = liquidity.NewGuard(store, alerts, cfg.CriticalFloor, cfg.DualControlThreshold)
}

// HandleRequest is triggered by an EventBridge Schedule. It expires every
// voucher past its deadline, then flags agent floats needing replenishment.
func HandleRequest(ctx context.Context) error {
	log.Println("Starting voucher expiry sweep...")

	result, err := lifecycleSvc.CheckExpiry(ctx, time.Now())
	if err != nil {
		log.Printf("ERROR: expiry sweep failed: %v", err)
		return err
	}

	log.Printf("Expiry sweep finished: scanned=%d expired=%d lost=%d", result.Scanned, result.Expired, result.Lost)

	flagged, err := guard.ReplenishmentSweep(ctx)
	if err != nil {
		log.Printf("ERROR: replenishment sweep failed: %v", err)
		return err
	}

	log.Printf("Replenishment sweep finished: %d agents flagged", flagged)
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
