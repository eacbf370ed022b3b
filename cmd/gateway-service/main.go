package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/cashupay/cashu-gateway-service/internal/app/background"
	"github.com/cashupay/cashu-gateway-service/internal/config"
	"github.com/cashupay/cashu-gateway-service/internal/delivery/httpapi"
	"github.com/cashupay/cashu-gateway-service/internal/domain"
	"github.com/cashupay/cashu-gateway-service/internal/infrastructure/kafka"
	"github.com/cashupay/cashu-gateway-service/internal/infrastructure/metrics"
	"github.com/cashupay/cashu-gateway-service/internal/infrastructure/migrate"
	"github.com/cashupay/cashu-gateway-service/internal/infrastructure/mint"
	"github.com/cashupay/cashu-gateway-service/internal/infrastructure/notifier"
	"github.com/cashupay/cashu-gateway-service/internal/infrastructure/postgres"
	"github.com/cashupay/cashu-gateway-service/internal/infrastructure/postgres/repository"
	"github.com/cashupay/cashu-gateway-service/internal/infrastructure/rates"
	"github.com/cashupay/cashu-gateway-service/internal/infrastructure/security"
	"github.com/cashupay/cashu-gateway-service/internal/infrastructure/trigger"
	"github.com/cashupay/cashu-gateway-service/internal/usecase"
	invoiceusecase "github.com/cashupay/cashu-gateway-service/internal/usecase/invoice"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	setupLogger(cfg)

	// Init database
	db := postgres.MustInitDB(cfg)
	if cfg.GatewayDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.GatewayDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Init repos
	storeRepo := repository.NewDefaultStoreRepository(db)
	invoiceRepo := repository.NewDefaultInvoiceRepository(db)
	webhookRepo := repository.NewDefaultWebhookRepository(db)
	deliveryRepo := repository.NewDefaultWebhookDeliveryRepository(db)
	rateCacheRepo := repository.NewDefaultRateCacheRepository(db)

	gatewayMetrics := metrics.NewGatewayMetrics()

	// Kafka is optional: without a broker the pipeline still runs, only the
	// event stream is off.
	var publisher domain.EventPublisher
	if cfg.KafkaService.Enabled {
		brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
		publisher = kafka.NewKafkaPublisher(brokers, cfg.KafkaService.Topic)
	}

	// Init usecases
	rateUsecase := usecase.NewDefaultRateUsecase(rates.DefaultProviders(), rateCacheRepo, gatewayMetrics)
	conversionUsecase := usecase.NewDefaultConversionUsecase(rateUsecase)
	dispatcher := usecase.NewDefaultWebhookDispatcher(webhookRepo, deliveryRepo, notifier.NewWebhookSender(), gatewayMetrics)
	invoiceUsecase := invoiceusecase.NewDefaultInvoiceUsecase(
		invoiceRepo,
		storeRepo,
		conversionUsecase,
		dispatcher,
		mint.DefaultClientFactory,
		publisher,
		gatewayMetrics,
	)
	storeUsecase := usecase.NewDefaultStoreUsecase(storeRepo)
	webhookUsecase := usecase.NewDefaultWebhookUsecase(webhookRepo, deliveryRepo, storeRepo)
	maintenanceUsecase := usecase.NewDefaultMaintenanceUsecase(
		invoiceUsecase,
		rateUsecase,
		gatewayMetrics,
		cfg.Maintenance.SyncInterval,
	)

	// Internal key and self-trigger
	internalKey, err := security.LoadOrCreateInternalKey(cfg.Maintenance.KeyPath)
	if err != nil {
		log.Fatalf("failed to init internal key: %v", err)
	}
	bgTrigger := trigger.NewBackgroundTrigger(cfg.Maintenance.BaseURL, internalKey)

	// HTTP handlers
	storeHandler := httpapi.NewStoreHandler(storeUsecase)
	invoiceHandler := httpapi.NewInvoiceHandler(invoiceUsecase, bgTrigger)
	webhookHandler := httpapi.NewWebhookHandler(webhookUsecase, dispatcher)
	maintenanceHandler := httpapi.NewMaintenanceHandler(maintenanceUsecase, internalKey)

	router := httpapi.NewRouter(storeHandler, invoiceHandler, webhookHandler, maintenanceHandler)

	// Background tasks
	tasks := background.NewBackgroundTasks(maintenanceUsecase, rateUsecase)
	tasks.StartAll(context.Background())

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("gateway HTTP server started on %s\n", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}

func setupLogger(cfg *config.GatewayConfig) {
	var level slog.Level
	switch cfg.LogConfig.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogConfig.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
