package services

import (
	"github.com/ghuser/gamecatalog/pkg/app"
	"github.com/ghuser/gamecatalog/services/catalog/infrastructure/ownership"
	"github.com/ghuser/gamecatalog/services/catalog/infrastructure/persistence/postgres"
	"github.com/ghuser/gamecatalog/services/catalog/infrastructure/search"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Game            *GameService
	Personalization *PersonalizationEngine
}

// New wires all catalog application services with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	games := postgres.NewGameRepository(a.Db)
	docs := search.NewStore(a.Redis)
	audit := postgres.NewAuditLog(a.Db)
	publisher := NewAuditedPublisher(audit, a.EventBus, a.Logger)
	ownershipClient := ownership.NewClient(a.Cfg.OwnershipAPIURL)

	return &Services{
		Game:            NewGameService(games, docs, publisher, a.Cfg.SearchPageSize),
		Personalization: NewPersonalizationEngine(ownershipClient, games, docs, a.Logger, a.Cfg.SearchPageSize),
	}
}
