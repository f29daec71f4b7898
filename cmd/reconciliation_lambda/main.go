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
	"github.com/cashstream/voucher-settlement/pkg/models"
	"github.com/cashstream/voucher-settlement/pkg/notifier"
	"github.com/cashstream/voucher-settlement/pkg/reconciliation"
	dydbstore "github.com/cashstream/voucher-settlement/pkg/storage/dynamodb"
	"github.com/joho/godotenv"
)

var engine *reconciliation.Engine

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

	bank := reconciliation.NewHTTPBankClient(cfg.BankURL)
	engine = reconciliation.NewEngine(bank, store, alerts, cfg.ReconciliationTolerance, cfg.SeverityThreshold)
}

// HandleRequest is triggered by a daily EventBridge Schedule. It reconciles
// the trust account against the outstanding e-money liability for today.
func HandleRequest(ctx context.Context) error {
	date := time.Now().UTC().Format("2006-01-02")
	log.Printf("Starting trust account reconciliation for %s...", date)

	snapshot, err := engine.Reconcile(ctx, date)
	if err != nil {
		log.Printf("ERROR: reconciliation for %s failed: %v", date, err)
		return err
	}

	switch snapshot.Status {
	case models.SnapshotBalanced:
		log.Printf("Reconciliation for %s balanced (revision %d)", date, snapshot.Revision)
	case models.SnapshotDiscrepancy:
		log.Printf("Reconciliation for %s found discrepancy of %d (revision %d)", date, snapshot.Discrepancy, snapshot.Revision)
	default:
		log.Printf("Reconciliation for %s could not complete: %s", date, snapshot.Detail)
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
