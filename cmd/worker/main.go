package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/gamecatalog/pkg/app"
	"github.com/ghuser/gamecatalog/pkg/cache"
	"github.com/ghuser/gamecatalog/pkg/config"
	"github.com/ghuser/gamecatalog/pkg/database"
	"github.com/ghuser/gamecatalog/pkg/events"
	"github.com/ghuser/gamecatalog/pkg/logger"
	"github.com/ghuser/gamecatalog/pkg/telemetry"
	pkgworkflows "github.com/ghuser/gamecatalog/pkg/workflows"
	"github.com/ghuser/gamecatalog/services/catalog/application/projector"
	domain "github.com/ghuser/gamecatalog/services/catalog/domain"
	gameEvents "github.com/ghuser/gamecatalog/services/catalog/domain/events"
	"github.com/ghuser/gamecatalog/services/catalog/infrastructure/persistence/postgres"
	"github.com/ghuser/gamecatalog/services/catalog/infrastructure/search"
	catalogWorkflows "github.com/ghuser/gamecatalog/services/catalog/workflows"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Cfg:      cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	games := postgres.NewGameRepository(pool)
	docs := search.NewStore(redisClient)

	if err := registerSubscribers(ctx, appConfig, projector.New(games, docs, log)); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	// Read-model reconciliation runs on Temporal when a server is configured.
	if cfg.TemporalHostPort != "" {
		temporalClient, err := pkgworkflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
		if err != nil {
			log.Error("failed to initialize temporal client", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer temporalClient.Close()

		w := catalogWorkflows.NewWorker(temporalClient, catalogWorkflows.NewActivities(games, docs, log))
		if err := w.Start(); err != nil {
			log.Error("failed to start temporal worker", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer w.Stop()

		if err := catalogWorkflows.ScheduleReconcile(ctx, temporalClient, cfg.ReconcileInterval); err != nil {
			log.Error("failed to schedule reconcile workflow", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		log.Info("reconcile workflow scheduled", "interval", cfg.ReconcileInterval)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires the projection handler onto the game events topic.
// Add new topics here as more contexts publish events.
func registerSubscribers(ctx context.Context, a *app.Application, proj *projector.Projector) error {
	errCh, err := a.EventBus.Subscribe(ctx, gameEvents.TopicGameEvents, handleGameEvent(a, proj))
	if err != nil {
		return err
	}

	// Drain subscriber errors in background so the channel never blocks.
	go func() {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error",
				"topic", gameEvents.TopicGameEvents,
				"error", err,
			)
		}
	}()

	a.Logger.Info("event subscribers registered", "topics", []string{gameEvents.TopicGameEvents})
	return nil
}

// handleGameEvent returns the projection handler for catalog.games.
// Handlers must be idempotent — EventBus retries up to 3× on failure.
//
// Poison messages (unknown event tags, payloads the aggregate rejects) are
// parked on the dead-letter topic and acked so redelivery cannot loop on them.
// Everything else is treated as transient and handed back for retry.
func handleGameEvent(a *app.Application, proj *projector.Projector) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		tag := msg.Metadata.Get(gameEvents.MetadataEventType)
		evtType, err := gameEvents.ParseType(tag)
		if err != nil {
			return deadLetter(ctx, a, msg, err)
		}

		if err := proj.Apply(ctx, evtType, msg.Payload); err != nil {
			if errors.Is(err, domain.ErrInvalidGame) {
				return deadLetter(ctx, a, msg, err)
			}
			return err
		}
		return nil
	}
}

// deadLetter copies the message onto the dead-letter topic and swallows the
// original error so the bus acks it. Publish failures propagate: the message
// must not be lost between queues.
func deadLetter(ctx context.Context, a *app.Application, msg *message.Message, cause error) error {
	a.Logger.ErrorContext(ctx, "poison message moved to dead letter",
		"topic", gameEvents.TopicGameEvents,
		"message_id", msg.UUID,
		"error", cause,
	)

	parked := message.NewMessage(msg.UUID, msg.Payload)
	for k, v := range msg.Metadata {
		parked.Metadata.Set(k, v)
	}
	if err := a.EventBus.Publish(ctx, gameEvents.TopicGameDeadLetter, parked); err != nil {
		return err
	}
	return nil
}
