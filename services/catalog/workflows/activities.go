package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/gamecatalog/pkg/logger"
	domain "github.com/ghuser/gamecatalog/services/catalog/domain"
	"github.com/ghuser/gamecatalog/services/catalog/domain/models"
	"github.com/ghuser/gamecatalog/services/catalog/domain/repositories"
)

// Activities holds the reconciliation activities and their store dependencies.
type Activities struct {
	games repositories.GameRepository
	docs  repositories.DocumentStore
	log   logger.Logger
}

// NewActivities returns Activities over the given stores.
func NewActivities(games repositories.GameRepository, docs repositories.DocumentStore, log logger.Logger) *Activities {
	return &Activities{games: games, docs: docs, log: log}
}

// ListGameIDs returns one page of game ids from the write model.
func (a *Activities) ListGameIDs(ctx context.Context, page int) ([]uuid.UUID, error) {
	return a.games.ListIDs(ctx, repositories.NewPagination(page, reconcilePageSize))
}

// RepairDocuments compares each game against its search document and repairs
// the document store: missing documents are recreated with a zero sales count,
// drifted denormalized fields are replaced in place. Returns the number of
// repaired documents.
func (a *Activities) RepairDocuments(ctx context.Context, ids []uuid.UUID) (int, error) {
	repaired := 0
	for _, id := range ids {
		game, err := a.games.GetByID(ctx, id)
		if errors.Is(err, domain.ErrGameNotFound) {
			// Deleted since the page was listed.
			continue
		}
		if err != nil {
			return repaired, fmt.Errorf("load game %s: %w", id, err)
		}

		doc, err := a.docs.GetByID(ctx, id)
		switch {
		case errors.Is(err, domain.ErrDocumentNotFound):
			if err := a.docs.Put(ctx, models.NewGameDocument(game)); err != nil {
				return repaired, fmt.Errorf("recreate document %s: %w", id, err)
			}
			a.log.InfoContext(ctx, "recreated missing search document", "game_id", id)
			repaired++
		case err != nil:
			return repaired, fmt.Errorf("load document %s: %w", id, err)
		case documentDrifted(doc, game):
			doc.ApplyDetails(game)
			if err := a.docs.Replace(ctx, doc); err != nil {
				return repaired, fmt.Errorf("replace document %s: %w", id, err)
			}
			a.log.InfoContext(ctx, "repaired drifted search document", "game_id", id)
			repaired++
		}
	}
	return repaired, nil
}

func documentDrifted(doc *models.GameDocument, game *models.Game) bool {
	return doc.Title != game.Title ||
		doc.Developer != game.Developer ||
		doc.Genre != game.Genre.String() ||
		doc.LaunchYear != game.LaunchYear ||
		!doc.Price.Equal(game.Price)
}
