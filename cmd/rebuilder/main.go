package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"github.com/fieldhouse/capledger/internal/adapter"
	"github.com/fieldhouse/capledger/internal/config"
	"github.com/fieldhouse/capledger/internal/domain"
	"github.com/fieldhouse/capledger/internal/engine"
	"github.com/fieldhouse/capledger/internal/logger"
	"github.com/fieldhouse/capledger/internal/providers/jetstream"
	"github.com/fieldhouse/capledger/internal/store"
)

const dateLayout = "2006-01-02"

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	asOfDate   = flag.String("as-of", "", "As-of date (YYYY-MM-DD); defaults to today")
	asOfCycle  = flag.Int("as-of-cycle", 0, "As-of competitive cycle; defaults to the as-of date's year")
	maxRetries = flag.Uint("max-retries", 3, "Retry attempts for transient database failures")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadRebuilderConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "rebuilder",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting contract rebuilder")

	clock := adapter.NewClock()
	startTime := clock.Now()

	// The engine takes the as-of view explicitly; "now" defaulting happens
	// here and only here
	asOf, err := resolveAsOf(clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to resolve as-of", zap.Error(err))
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if cfg.Database.ReadHost != "" {
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.Open(cfg.Database.ReadDSN())},
		}))
		if err != nil {
			logger.FatalCtx(ctx, "Failed to register read replica", zap.Error(err), zap.String("read_host", cfg.Database.ReadHost))
		}
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	dataStore := store.NewPGStore(db)

	// Build the liability schedule from configuration
	fractions, err := cfg.Liability.Schedule()
	if err != nil {
		logger.FatalCtx(ctx, "Failed to read liability schedule", zap.Error(err))
	}
	schedule, err := engine.NewLiabilitySchedule(fractions)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to build liability schedule", zap.Error(err))
	}

	eng := engine.New(schedule, engine.Config{PoolSize: cfg.Engine.PoolSize})

	// Load the transaction log, retrying transient failures
	var events []domain.TransactionEvent
	err = retry(ctx, *maxRetries, func() error {
		var loadErr error
		events, loadErr = dataStore.ListTransactionEvents(ctx)
		return loadErr
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to load transaction events", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Loaded transaction events", zap.Int("count", len(events)))

	// Rebuild. Any invariant violation aborts here with nothing persisted.
	result, err := eng.Rebuild(ctx, events, asOf)
	if err != nil {
		logger.FatalCtx(ctx, "Rebuild failed", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Rebuild completed",
		zap.String("rebuild_id", result.RebuildID),
		zap.Int("periods", len(result.Periods)),
		zap.Int("rejections", len(result.Rejections)),
		zap.Int("excluded_unresolved_subject", result.Stats.UnresolvedSubject),
		zap.Int("excluded_no_destination_owner", result.Stats.NoDestinationOwner),
		zap.Int("excluded_no_monetary_terms", result.Stats.NoMonetaryTerms),
	)

	// Persist, retrying transient failures
	err = retry(ctx, *maxRetries, func() error {
		return dataStore.ReplaceRebuildOutput(ctx, result.RebuildID, result.Periods, result.Rejections)
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to persist rebuild output", zap.Error(err))
	}

	// Publish the rebuild notice when a broker is configured
	if cfg.NATS.URL != "" {
		publishNotice(ctx, cfg, result, clock)
	}

	logger.InfoCtx(ctx, "Rebuilder finished",
		zap.String("rebuild_id", result.RebuildID),
		zap.Duration("duration", clock.Since(startTime)),
	)
}

// resolveAsOf turns the as-of flags into the engine's explicit parameter
func resolveAsOf(clock adapter.Clock) (engine.AsOf, error) {
	date := clock.Now().UTC().Truncate(24 * time.Hour)
	if *asOfDate != "" {
		parsed, err := clock.Parse(dateLayout, *asOfDate)
		if err != nil {
			return engine.AsOf{}, fmt.Errorf("invalid -as-of value %q: %w", *asOfDate, err)
		}
		date = parsed
	}

	cycle := *asOfCycle
	if cycle == 0 {
		cycle = date.Year()
	}

	return engine.AsOf{Date: date, Cycle: cycle}, nil
}

// retry wraps a store call with exponential backoff for transient failures
func retry(ctx context.Context, attempts uint, op func() error) error {
	return backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(attempts)), ctx))
}

// publishNotice sends the rebuild-completed notice; failures are logged, not
// fatal, since the output is already durably persisted
func publishNotice(ctx context.Context, cfg *config.RebuilderConfig, result *engine.Result, clock adapter.Clock) {
	publisher, err := jetstream.NewPublisher(jetstream.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
	}, adapter.NewNatsJetStream(), adapter.NewJSON())
	if err != nil {
		logger.ErrorCtx(ctx, err)
		return
	}
	defer publisher.Close()

	notice := &domain.RebuildNotice{
		NoticeID:       uuid.NewString(),
		RebuildID:      result.RebuildID,
		AsOfDate:       result.AsOf.Date,
		AsOfCycle:      result.AsOf.Cycle,
		PeriodCount:    len(result.Periods),
		RejectionCount: len(result.Rejections),
		CompletedAt:    clock.Now().UTC(),
	}
	if err := publisher.PublishRebuildCompleted(ctx, notice); err != nil {
		logger.ErrorCtx(ctx, err)
	}
}
