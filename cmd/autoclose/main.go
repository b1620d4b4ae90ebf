package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	postgresRepo "github.com/moneybook-app/moneybook/internal/adapter/repository/postgres"
	"github.com/moneybook-app/moneybook/internal/domain"
	"github.com/moneybook-app/moneybook/internal/infrastructure/config"
	"github.com/moneybook-app/moneybook/internal/infrastructure/metrics"
	"github.com/moneybook-app/moneybook/internal/infrastructure/postgres"
	"github.com/moneybook-app/moneybook/internal/usecase"
)

// The auto-close worker settles the previous month for every user who owns
// at least one monthly template. Already-settled months are counted as
// successes so reruns are harmless.
func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("LOG_FORMAT") != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx := context.Background()

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

	templateRepo := postgresRepo.NewTemplateRepository(pool)
	settlementUC := usecase.NewSettlementUseCase(usecase.SettlementConfig{
		TxManager:      postgresRepo.NewTxManager(pool),
		TemplateRepo:   templateRepo,
		EntryRepo:      postgresRepo.NewEntryRepository(pool),
		AssetRepo:      postgresRepo.NewAssetRepository(pool),
		SettlementRepo: postgresRepo.NewSettlementRepository(pool),
		OutboxRepo:     postgresRepo.NewOutboxRepository(pool),
		Metrics:        metrics.New(),
		IDGen:          postgresRepo.NewULIDGenerator(),
	})
	retrier := postgresRepo.NewRetrier()

	runner := cron.New()
	_, err = runner.AddFunc(cfg.AutoCloseSchedule, func() {
		closePreviousMonth(ctx, templateRepo, settlementUC, retrier)
	})
	if err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.AutoCloseSchedule).Msg("invalid autoclose schedule")
	}

	log.Info().Str("schedule", cfg.AutoCloseSchedule).Msg("autoclose worker started")
	runner.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("autoclose worker shutting down")
	<-runner.Stop().Done()
}

func closePreviousMonth(ctx context.Context, templateRepo *postgresRepo.TemplateRepository, settlementUC *usecase.SettlementUseCase, retrier *postgresRepo.Retrier) {
	month := domain.MonthOf(time.Now()).Prev().String()
	log.Info().Str("month", month).Msg("auto-close run started")

	userIDs, err := templateRepo.ListUserIDsWithMonthly(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list users")
		return
	}

	var settled, skipped, failed int
	for _, userID := range userIDs {
		for _, ledgerType := range []domain.LedgerType{domain.LedgerTypeIncome, domain.LedgerTypeExpense} {
			err := retrier.Retry(ctx, func() error {
				_, err := settlementUC.Settle(ctx, userID, ledgerType, month)
				return err
			})
			switch {
			case err == nil:
				settled++
			case errors.Is(err, domain.ErrAlreadySettled):
				skipped++
			default:
				failed++
				log.Error().Err(err).
					Str("user_id", userID).
					Str("ledger_type", string(ledgerType)).
					Str("month", month).
					Msg("auto-close settle failed")
			}
		}
	}

	log.Info().
		Str("month", month).
		Int("users", len(userIDs)).
		Int("settled", settled).
		Int("already_settled", skipped).
		Int("failed", failed).
		Msg("auto-close run finished")
}
