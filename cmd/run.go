package cmd

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"hellbingo/cmd/console"
	"hellbingo/config"
	"hellbingo/database"
	"hellbingo/events"
	"hellbingo/infrastructure"
	"hellbingo/infrastructure/observability"
	"hellbingo/repository"
	"hellbingo/service"

	log "github.com/sirupsen/logrus"
)

// Run wires the game to its archive, exporters and metrics and runs the
// console shell until the player quits or ctx is cancelled
func Run(ctx context.Context, in io.Reader, out io.Writer) error {
	cfg := config.Get()
	ConfigureLogging(cfg)
	log.WithField("environment", cfg.Environment).Info("Starting hellbingo...")

	if err := observability.InitializeGlobalMetrics(ctx, cfg); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	metrics := observability.GetMetrics()

	eventBus := events.NewBus()
	metrics.Register(eventBus)

	var repo service.CampaignResultRepository
	var db *database.DB
	if cfg.ArchiveEnabled() {
		var err error
		db, err = database.NewConnection(ctx, cfg.GetDatabaseURL())
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		repo = repository.NewCampaignResultRepository(db)
	} else {
		log.Info("No DATABASE_URL set, campaign archive kept in memory")
		repo = repository.NewMemoryCampaignResultRepository()
	}
	service.NewCampaignArchive(repo).Register(eventBus)

	var natsClient *infrastructure.NATSClient
	if cfg.EventExportEnabled() {
		natsClient = infrastructure.NewNATSClient(cfg.NATSServers)
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err := natsClient.Connect(connectCtx)
		cancel()
		if err != nil {
			closeDB(db)
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}

		publisher := infrastructure.NewNATSEventPublisher(natsClient, infrastructure.NewEventSubjectMapper(), metrics)
		if err := publisher.EnsureEventStream(natsClient); err != nil {
			log.WithError(err).Warn("Could not ensure event stream, events may be dropped")
		}
		publisher.Register(eventBus)
	}

	seed := cfg.ResolveSeed()
	log.WithField("seed", seed).Info("Game seeded")
	game := service.NewGameService(
		service.GameOptionsFromConfig(cfg, seed),
		rand.New(rand.NewSource(seed)),
		eventBus,
	)
	stats := service.NewStatsService(repo)

	runErr := console.New(game, stats, in, out).Run(ctx)

	log.Info("Shutting down...")

	// Bus handlers run asynchronously; give in-flight exports and archive writes a moment
	time.Sleep(500 * time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if natsClient != nil {
		if err := natsClient.Close(); err != nil {
			log.WithError(err).Error("Error closing NATS connection")
		}
	}
	closeDB(db)
	if err := observability.ShutdownGlobalMetrics(shutdownCtx); err != nil {
		log.WithError(err).Error("Error shutting down metrics")
	}

	log.Info("Shutdown completed")
	return runErr
}

func closeDB(db *database.DB) {
	if db != nil {
		log.Info("Closing database connection...")
		db.Close()
	}
}
