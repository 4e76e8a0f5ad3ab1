package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/ghuser/gamecatalog/services/catalog/domain"
	"github.com/ghuser/gamecatalog/services/catalog/domain/events"
	"github.com/ghuser/gamecatalog/services/catalog/domain/models"
	"github.com/ghuser/gamecatalog/services/catalog/domain/repositories"
)

// GameCommand carries the writable fields of a game, shared by create and
// update operations.
type GameCommand struct {
	Title      string
	Price      decimal.Decimal
	LaunchYear int
	Developer  string
	Genre      string
}

// GameService is the command and query surface of the catalog. The write path
// is event-driven: commands validate against the current state, then audit and
// publish the matching event; the projection worker applies the actual store
// mutations. Queries read the search document store.
type GameService struct {
	games     repositories.GameRepository
	docs      repositories.DocumentStore
	publisher *AuditedPublisher
	pageSize  int
}

// NewGameService returns a GameService wired with the given stores and publisher.
func NewGameService(games repositories.GameRepository, docs repositories.DocumentStore, publisher *AuditedPublisher, pageSize int) *GameService {
	return &GameService{games: games, docs: docs, publisher: publisher, pageSize: pageSize}
}

// Create validates the command through the aggregate factory, rejects natural
// key duplicates, and publishes GameCreated. Returns the new game's id.
func (s *GameService) Create(ctx context.Context, cmd GameCommand) (uuid.UUID, error) {
	genre, err := models.ParseGenre(cmd.Genre)
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	game, err := models.NewGame(id, cmd.Title, cmd.Price, cmd.LaunchYear, cmd.Developer, genre)
	if err != nil {
		return uuid.Nil, err
	}

	exists, err := s.games.ExistsByNaturalKey(ctx, game.Title, game.Developer, game.LaunchYear)
	if err != nil {
		return uuid.Nil, fmt.Errorf("check natural key: %w", err)
	}
	if exists {
		return uuid.Nil, domain.ErrGameAlreadyExists
	}

	evt := events.GameCreatedEvent{
		GameID:     id,
		Title:      game.Title,
		Price:      game.Price,
		LaunchYear: game.LaunchYear,
		Developer:  game.Developer,
		Genre:      game.Genre.String(),
	}
	if err := s.publisher.Publish(ctx, events.TopicGameEvents, id, events.TypeGameCreated, evt); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Update validates the command against the current aggregate and publishes
// GameUpdated. Returns ErrGameNotFound for unknown ids.
func (s *GameService) Update(ctx context.Context, id uuid.UUID, cmd GameCommand) error {
	game, err := s.games.GetByID(ctx, id)
	if err != nil {
		return err
	}

	genre, err := models.ParseGenre(cmd.Genre)
	if err != nil {
		return err
	}
	if err := game.Update(cmd.Title, cmd.Price, cmd.LaunchYear, cmd.Developer, genre); err != nil {
		return err
	}

	evt := events.GameUpdatedEvent{
		GameID:     id,
		Title:      game.Title,
		Price:      game.Price,
		LaunchYear: game.LaunchYear,
		Developer:  game.Developer,
		Genre:      game.Genre.String(),
	}
	return s.publisher.Publish(ctx, events.TopicGameEvents, id, events.TypeGameUpdated, evt)
}

// Delete publishes GameDeleted plus the library fan-out. Returns
// ErrGameNotFound when the game has no search document.
func (s *GameService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.docs.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return domain.ErrGameNotFound
		}
		return err
	}

	evt := events.GameDeletedEvent{GameID: id}
	if err := s.publisher.Publish(ctx, events.TopicGameEvents, id, events.TypeGameDeleted, evt); err != nil {
		return err
	}

	// Owned copies disappear with the game; the ownership context listens on
	// its own topic.
	removed := events.LibraryGameRemovedEvent{GameID: id}
	return s.publisher.Publish(ctx, events.TopicLibraryGames, id, events.TypeGameDeleted, removed)
}

// GetByID reads one document from the search store.
func (s *GameService) GetByID(ctx context.Context, id uuid.UUID) (*models.GameDocument, error) {
	return s.docs.GetByID(ctx, id)
}

// List returns one page of documents in the store's natural order.
func (s *GameService) List(ctx context.Context, page int) ([]*models.GameDocument, error) {
	return s.docs.List(ctx, repositories.NewPagination(page, s.pageSize))
}

// TopSellers returns one page ordered by sales count descending.
func (s *GameService) TopSellers(ctx context.Context, page int) ([]*models.GameDocument, error) {
	return s.docs.TopSellers(ctx, repositories.NewPagination(page, s.pageSize))
}
