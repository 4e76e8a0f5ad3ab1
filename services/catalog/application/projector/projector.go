// Package projector routes inbound catalog events into idempotent write-model
// and read-model mutations. Events arrive at-least-once and unordered, so
// every handler tolerates redelivery: duplicates and updates for unknown ids
// are silent no-ops, deletes are idempotent, and the sales counter increments
// through an atomic storage primitive.
package projector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ghuser/gamecatalog/pkg/logger"
	domain "github.com/ghuser/gamecatalog/services/catalog/domain"
	"github.com/ghuser/gamecatalog/services/catalog/domain/events"
	"github.com/ghuser/gamecatalog/services/catalog/domain/models"
	"github.com/ghuser/gamecatalog/services/catalog/domain/repositories"
)

// Projector applies domain events to the game write model and the search
// document read model. It holds no state between events; all coordination
// lives in the stores.
type Projector struct {
	games repositories.GameRepository
	docs  repositories.DocumentStore
	log   logger.Logger
}

// New returns a Projector over the given stores.
func New(games repositories.GameRepository, docs repositories.DocumentStore, log logger.Logger) *Projector {
	return &Projector{games: games, docs: docs, log: log}
}

// Apply dispatches one event by its type tag.
//
// Error classes for the caller:
//   - errors wrapping domain.ErrInvalidGame are poison messages (dead-letter,
//     do not retry);
//   - errors wrapping domain.ErrUnknownEventType are configuration errors;
//   - anything else is transient infrastructure failure, safe to retry via
//     redelivery because every handler is idempotent.
func (p *Projector) Apply(ctx context.Context, evtType events.Type, payload []byte) error {
	switch evtType {
	case events.TypeGameCreated:
		return p.applyCreated(ctx, payload)
	case events.TypeGameUpdated:
		return p.applyUpdated(ctx, payload)
	case events.TypeGameDeleted:
		return p.applyDeleted(ctx, payload)
	case events.TypeGameSold:
		return p.applySold(ctx, payload)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownEventType, string(evtType))
	}
}

// applyCreated builds the aggregate through the validating factory, dedupes by
// natural key, and writes the write model first, then the read model. The two
// writes are not atomic: a crash between them leaves a game without a search
// document until an Updated event or the reconciler repairs it.
func (p *Projector) applyCreated(ctx context.Context, payload []byte) error {
	var evt events.GameCreatedEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return fmt.Errorf("%w: malformed GameCreated payload: %w", domain.ErrInvalidGame, err)
	}

	genre, err := models.ParseGenre(evt.Genre)
	if err != nil {
		return err
	}

	game, err := models.NewGame(evt.GameID, evt.Title, evt.Price, evt.LaunchYear, evt.Developer, genre)
	if err != nil {
		return err
	}

	exists, err := p.games.ExistsByNaturalKey(ctx, game.Title, game.Developer, game.LaunchYear)
	if err != nil {
		return fmt.Errorf("check natural key: %w", err)
	}
	if exists {
		p.log.InfoContext(ctx, "projector: duplicate GameCreated ignored",
			"game_id", evt.GameID, "title", game.Title)
		return nil
	}

	if err := p.games.Save(ctx, game); err != nil {
		if errors.Is(err, domain.ErrGameAlreadyExists) {
			// Lost the race with a concurrent redelivery; same outcome as the
			// natural-key check above.
			p.log.InfoContext(ctx, "projector: duplicate GameCreated ignored",
				"game_id", evt.GameID, "title", game.Title)
			return nil
		}
		return fmt.Errorf("save game: %w", err)
	}

	if err := p.docs.Put(ctx, models.NewGameDocument(game)); err != nil {
		return fmt.Errorf("create search document: %w", err)
	}

	p.log.InfoContext(ctx, "projector: game created", "game_id", game.ID, "title", game.Title)
	return nil
}

// applyUpdated drops updates for unknown ids: they are stale or out of order,
// and resurrecting a deleted game would be worse than losing the update. A
// missing search document for a known game is repaired here, closing the
// non-atomic-create gap.
func (p *Projector) applyUpdated(ctx context.Context, payload []byte) error {
	var evt events.GameUpdatedEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return fmt.Errorf("%w: malformed GameUpdated payload: %w", domain.ErrInvalidGame, err)
	}

	game, err := p.games.GetByID(ctx, evt.GameID)
	if err != nil {
		if errors.Is(err, domain.ErrGameNotFound) {
			p.log.InfoContext(ctx, "projector: GameUpdated for unknown id ignored", "game_id", evt.GameID)
			return nil
		}
		return fmt.Errorf("load game: %w", err)
	}

	genre, err := models.ParseGenre(evt.Genre)
	if err != nil {
		return err
	}
	if err := game.Update(evt.Title, evt.Price, evt.LaunchYear, evt.Developer, genre); err != nil {
		return err
	}
	if err := p.games.Update(ctx, game); err != nil {
		return fmt.Errorf("update game: %w", err)
	}

	doc, err := p.docs.GetByID(ctx, game.ID)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			if err := p.docs.Put(ctx, models.NewGameDocument(game)); err != nil {
				return fmt.Errorf("recreate search document: %w", err)
			}
			p.log.InfoContext(ctx, "projector: missing search document recreated", "game_id", game.ID)
			return nil
		}
		return fmt.Errorf("load search document: %w", err)
	}

	doc.ApplyDetails(game)
	if err := p.docs.Replace(ctx, doc); err != nil {
		return fmt.Errorf("replace search document: %w", err)
	}

	p.log.InfoContext(ctx, "projector: game updated", "game_id", game.ID)
	return nil
}

// applyDeleted removes both representations. Both deletes are idempotent, so
// redelivery and unknown ids fall through without error.
func (p *Projector) applyDeleted(ctx context.Context, payload []byte) error {
	var evt events.GameDeletedEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return fmt.Errorf("%w: malformed GameDeleted payload: %w", domain.ErrInvalidGame, err)
	}

	if err := p.games.Delete(ctx, evt.GameID); err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if err := p.docs.Delete(ctx, evt.GameID); err != nil {
		return fmt.Errorf("delete search document: %w", err)
	}

	p.log.InfoContext(ctx, "projector: game deleted", "game_id", evt.GameID)
	return nil
}

// applySold bumps the read-model sales counter through the store's atomic
// increment; the write model is never touched.
func (p *Projector) applySold(ctx context.Context, payload []byte) error {
	var evt events.GameSoldEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return fmt.Errorf("%w: malformed GameSold payload: %w", domain.ErrInvalidGame, err)
	}

	sales, err := p.docs.IncrementSales(ctx, evt.GameID)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			p.log.InfoContext(ctx, "projector: GameSold for unknown id ignored", "game_id", evt.GameID)
			return nil
		}
		return fmt.Errorf("increment sales: %w", err)
	}

	p.log.InfoContext(ctx, "projector: sale recorded", "game_id", evt.GameID, "sales_count", sales)
	return nil
}
