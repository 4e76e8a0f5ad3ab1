package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/gamecatalog/pkg/logger"
	"github.com/ghuser/gamecatalog/services/catalog/domain/models"
	"github.com/ghuser/gamecatalog/services/catalog/domain/repositories"
	domainsvcs "github.com/ghuser/gamecatalog/services/catalog/domain/services"
)

// PersonalizationEngine biases ranked search with the caller's genre
// affinity, derived per query from the games they own. Affinity is never
// persisted.
type PersonalizationEngine struct {
	ownership repositories.OwnershipService
	games     repositories.GameRepository
	docs      repositories.DocumentStore
	log       logger.Logger
	pageSize  int
}

// NewPersonalizationEngine returns an engine over the given collaborators.
func NewPersonalizationEngine(
	ownership repositories.OwnershipService,
	games repositories.GameRepository,
	docs repositories.DocumentStore,
	log logger.Logger,
	pageSize int,
) *PersonalizationEngine {
	return &PersonalizationEngine{
		ownership: ownership,
		games:     games,
		docs:      docs,
		log:       log,
		pageSize:  pageSize,
	}
}

// Search resolves the user's top genres and delegates to the document store's
// ranked search with the genre boost string appended to the query.
//
// An unreachable ownership service is a hard failure for the whole call
// (wrapping ErrOwnershipUnavailable); there is no non-personalized fallback.
// An empty library degenerates to an empty boost string.
func (e *PersonalizationEngine) Search(ctx context.Context, userID uuid.UUID, freeText string, page int) ([]*models.GameDocument, error) {
	library, err := e.ownership.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch user library: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(library))
	for _, record := range library {
		ids = append(ids, record.GameID)
	}

	owned, err := e.games.FilterByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve owned games: %w", err)
	}

	affinities := domainsvcs.TopGenres(owned, domainsvcs.TopAffinityGenres)
	boost := domainsvcs.BoostString(affinities)

	e.log.DebugContext(ctx, "personalized search",
		"user_id", userID, "owned", len(owned), "genre_boost", boost)

	return e.docs.RankedSearch(ctx, freeText, boost, repositories.NewPagination(page, e.pageSize))
}
