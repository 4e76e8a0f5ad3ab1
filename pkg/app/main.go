package app

import (
	"github.com/ghuser/gamecatalog/pkg/cache"
	"github.com/ghuser/gamecatalog/pkg/config"
	"github.com/ghuser/gamecatalog/pkg/database"
	"github.com/ghuser/gamecatalog/pkg/events"
	"github.com/ghuser/gamecatalog/pkg/logger"
	"github.com/ghuser/gamecatalog/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to route registration and worker wiring during process initialization.
//
// Logging: app.Logger is backed by a trace-aware handler — use slog's context
// methods and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "projecting event", "game_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Cfg            *config.Config
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	TemporalClient *workflows.TemporalClient // nil when TEMPORAL_HOST_PORT is unset
}
