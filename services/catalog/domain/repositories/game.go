package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/gamecatalog/services/catalog/domain/models"
)

// GameRepository is the persistence interface for the Game write model.
// The domain layer owns this interface; infrastructure implements it.
type GameRepository interface {
	// Save persists a new Game. Returns ErrGameAlreadyExists when the natural
	// key (title, developer, launch year) is already taken.
	Save(ctx context.Context, game *models.Game) error

	// GetByID returns ErrGameNotFound when no game has the given id.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error)

	// ExistsByNaturalKey reports whether a game with the same business identity
	// already exists. Used to dedupe redelivered Created events.
	ExistsByNaturalKey(ctx context.Context, title, developer string, launchYear int) (bool, error)

	// Update persists changes to an existing Game.
	Update(ctx context.Context, game *models.Game) error

	// Delete removes a game by id. Deleting an absent id is not an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// FilterByIDs returns the games whose ids appear in ids; absent ids are
	// skipped silently.
	FilterByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Game, error)

	// ListIDs returns a page of game ids in insertion order. Used by the
	// read-model reconciler to walk the write model.
	ListIDs(ctx context.Context, p Pagination) ([]uuid.UUID, error)
}
