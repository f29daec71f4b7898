package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/cashstream/voucher-settlement/pkg/config"
	"github.com/cashstream/voucher-settlement/pkg/handlers"
	"github.com/cashstream/voucher-settlement/pkg/lifecycle"
	"github.com/cashstream/voucher-settlement/pkg/liquidity"
	"github.com/cashstream/voucher-settlement/pkg/notifier"
	"github.com/cashstream/voucher-settlement/pkg/reconciliation"
	"github.com/cashstream/voucher-settlement/pkg/redemption"
	"github.com/cashstream/voucher-settlement/pkg/switchadapter"
	dydbstore "github.com/cashstream/voucher-settlement/pkg/storage/dynamodb"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// AWS Session
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(awsCfg)
	store := dydbstore.New(dbClient, cfg.Tables)

	// SQS client for operational alerts.
	sqsClient := sqs.NewFromConfig(awsCfg)
	var alerts notifier.Publisher = notifier.NewSQSPublisher(sqsClient, cfg.AlertQueue)
	if cfg.AlertQueue == "" {
		log.Println("SQS_ALERT_QUEUE_URL not set, alerts are disabled")
		alerts = &notifier.NoOpPublisher{}
	}

	// Domain services.
	lifecycleSvc := lifecycle.NewService(store, cfg.MaxReissueCount, cfg.ReissueExtension)
	guard := liquidity.NewGuard(store, alerts, cfg.CriticalFloor, cfg.DualControlThreshold)
	adapter := switchadapter.NewAdapter(store, switchadapter.NewHTTPSwitchClient(cfg.SwitchURL), cfg.SwitchTimeout)
	redemptionSvc := redemption.NewService(lifecycleSvc, guard, adapter, store)
	engine := reconciliation.NewEngine(reconciliation.NewHTTPBankClient(cfg.BankURL), store, alerts, cfg.ReconciliationTolerance, cfg.SeverityThreshold)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	router := handlers.NewRouter(
		logger,
		handlers.NewVouchersHandler(lifecycleSvc, redemptionSvc, store, store),
		handlers.NewAgentsHandler(guard, store),
		handlers.NewPaymentsHandler(adapter),
		handlers.NewReconciliationHandler(engine),
		handlers.NewHealthHandler(adapter),
	)

	log.Printf("Starting server on port %s", cfg.HTTPPort)

	// Start the server
	err = http.ListenAndServe(":"+cfg.HTTPPort, router)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
