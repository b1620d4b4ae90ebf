package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/moneybook-app/moneybook/internal/adapter/http"
	"github.com/moneybook-app/moneybook/internal/adapter/http/handler"
	postgresRepo "github.com/moneybook-app/moneybook/internal/adapter/repository/postgres"
	redisRepo "github.com/moneybook-app/moneybook/internal/adapter/repository/redis"
	"github.com/moneybook-app/moneybook/internal/infrastructure/config"
	"github.com/moneybook-app/moneybook/internal/infrastructure/eventpublisher"
	"github.com/moneybook-app/moneybook/internal/infrastructure/metrics"
	"github.com/moneybook-app/moneybook/internal/infrastructure/postgres"
	"github.com/moneybook-app/moneybook/internal/infrastructure/redis"
	"github.com/moneybook-app/moneybook/internal/usecase"
)

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("LOG_FORMAT") != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	templateRepo := postgresRepo.NewTemplateRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	assetRepo := postgresRepo.NewAssetRepository(pool)
	settlementRepo := postgresRepo.NewSettlementRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	appMetrics := metrics.New()

	// Initialize use cases
	settlementUC := usecase.NewSettlementUseCase(usecase.SettlementConfig{
		TxManager:      txManager,
		TemplateRepo:   templateRepo,
		EntryRepo:      entryRepo,
		AssetRepo:      assetRepo,
		SettlementRepo: settlementRepo,
		OutboxRepo:     outboxRepo,
		Cache:          cache,
		Metrics:        appMetrics,
		IDGen:          idGen,
	})
	templateUC := usecase.NewTemplateUseCase(templateRepo, idGen)
	entryUC := usecase.NewEntryUseCase(txManager, entryRepo, idGen)
	assetUC := usecase.NewAssetUseCase(assetRepo)

	// Initialize handlers
	settlementHandler := handler.NewSettlementHandler(settlementUC)
	templateHandler := handler.NewTemplateHandler(templateUC)
	entryHandler := handler.NewEntryHandler(entryUC)
	assetHandler := handler.NewAssetHandler(assetUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		SettlementHandler: settlementHandler,
		TemplateHandler:   templateHandler,
		EntryHandler:      entryHandler,
		AssetHandler:      assetHandler,
		HealthHandler:     healthHandler,
		IdempotencyStore:  idempotencyStore,
	})

	// Start the outbox publisher. Events land in RabbitMQ when a broker is
	// configured, otherwise they are logged.
	pubCtx, pubCancel := context.WithCancel(ctx)
	defer pubCancel()

	var sink eventpublisher.Publisher
	if cfg.AMQPURL != "" {
		amqpPub, err := eventpublisher.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to rabbitmq")
		}
		defer amqpPub.Close()
		sink = amqpPub
		log.Info().Str("exchange", cfg.AMQPExchange).Msg("connected to rabbitmq")
	} else {
		sink = eventpublisher.NewLogPublisher(slog.Default())
	}

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  sink,
		Logger:     slog.Default(),
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxPollInterval,
		Retention:  cfg.OutboxRetention,
	})
	go func() {
		if err := publisher.Start(pubCtx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	pubCancel()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
