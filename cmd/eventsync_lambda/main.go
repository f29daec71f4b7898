package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/cashstream/voucher-settlement/pkg/config"
	"github.com/cashstream/voucher-settlement/pkg/eventsync"
	dydbstore "github.com/cashstream/voucher-settlement/pkg/storage/dynamodb"
	"github.com/joho/godotenv"
)

var syncer *eventsync.Syncer

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

	syncer = eventsync.NewSyncer(store, cfg.SyncLookback, cfg.ExpiryWarningIn)
}

// HandleRequest is triggered by an EventBridge Schedule. It projects recent
// status events, expiring vouchers, and rejected payments into the
// notification table. Repeat runs over the same window update in place.
func HandleRequest(ctx context.Context) error {
	log.Println("Starting event sync...")

	result, err := syncer.Sync(ctx)
	if err != nil {
		log.Printf("ERROR: event sync failed: %v", err)
		return err
	}

	log.Printf("Event sync finished: created=%d updated=%d", result.Created, result.Updated)
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
