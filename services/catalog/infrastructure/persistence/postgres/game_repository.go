package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/ghuser/gamecatalog/pkg/database"
	domain "github.com/ghuser/gamecatalog/services/catalog/domain"
	"github.com/ghuser/gamecatalog/services/catalog/domain/models"
	"github.com/ghuser/gamecatalog/services/catalog/domain/repositories"
)

// GameRepository implements repositories.GameRepository against PostgreSQL.
type GameRepository struct {
	db *database.Database
}

// NewGameRepository returns a GameRepository backed by the given connection pool.
func NewGameRepository(db *database.Database) *GameRepository {
	return &GameRepository{db: db}
}

// Save persists a new Game. The unique index on (title, developer, launch_year)
// backs the natural-key dedupe; violations map to ErrGameAlreadyExists.
func (r *GameRepository) Save(ctx context.Context, game *models.Game) error {
	const q = `
		INSERT INTO games (id, title, price, launch_year, developer, genre, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.DB().ExecContext(ctx, q,
		game.ID, game.Title, game.Price.String(), game.LaunchYear,
		game.Developer, game.Genre.String(), game.CreatedAt, game.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrGameAlreadyExists
		}
		return fmt.Errorf("insert game: %w", err)
	}
	return nil
}

// GetByID retrieves a Game by id. Returns ErrGameNotFound if not found.
func (r *GameRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	const q = `
		SELECT id, title, price, launch_year, developer, genre, created_at, updated_at
		FROM games WHERE id = $1`

	game, err := scanGame(r.db.DB().QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGameNotFound
		}
		return nil, fmt.Errorf("query game: %w", err)
	}
	return game, nil
}

// ExistsByNaturalKey reports whether a game with the same business identity
// (title, developer, launch year) is already registered.
func (r *GameRepository) ExistsByNaturalKey(ctx context.Context, title, developer string, launchYear int) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM games WHERE title = $1 AND developer = $2 AND launch_year = $3
		)`

	var exists bool
	if err := r.db.DB().QueryRowContext(ctx, q, title, developer, launchYear).Scan(&exists); err != nil {
		return false, fmt.Errorf("check natural key: %w", err)
	}
	return exists, nil
}

// Update persists changes to an existing Game.
func (r *GameRepository) Update(ctx context.Context, game *models.Game) error {
	const q = `
		UPDATE games
		SET title = $2, price = $3, launch_year = $4, developer = $5, genre = $6, updated_at = $7
		WHERE id = $1`

	_, err := r.db.DB().ExecContext(ctx, q,
		game.ID, game.Title, game.Price.String(), game.LaunchYear,
		game.Developer, game.Genre.String(), game.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update game: %w", err)
	}
	return nil
}

// Delete removes a game by id. Deleting an absent id is not an error.
func (r *GameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.DB().ExecContext(ctx, `DELETE FROM games WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	return nil
}

// FilterByIDs returns the games whose ids appear in ids, skipping absent ids.
func (r *GameRepository) FilterByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Game, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	const q = `
		SELECT id, title, price, launch_year, developer, genre, created_at, updated_at
		FROM games WHERE id = ANY($1)`

	rows, err := r.db.DB().QueryContext(ctx, q, idsToStrings(ids))
	if err != nil {
		return nil, fmt.Errorf("query games by ids: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var games []*models.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	return games, nil
}

// ListIDs returns a page of game ids in insertion order for the reconciler.
func (r *GameRepository) ListIDs(ctx context.Context, p repositories.Pagination) ([]uuid.UUID, error) {
	const q = `SELECT id FROM games ORDER BY created_at, id LIMIT $1 OFFSET $2`

	rows, err := r.db.DB().QueryContext(ctx, q, p.PageSize, p.Offset())
	if err != nil {
		return nil, fmt.Errorf("list game ids: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan game id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate game ids: %w", err)
	}
	return ids, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*models.Game, error) {
	var (
		game     models.Game
		price    string
		genreStr string
	)
	if err := row.Scan(&game.ID, &game.Title, &price, &game.LaunchYear,
		&game.Developer, &genreStr, &game.CreatedAt, &game.UpdatedAt); err != nil {
		return nil, err
	}

	parsedPrice, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", price, err)
	}
	game.Price = parsedPrice

	genre, err := models.ParseGenre(genreStr)
	if err != nil {
		return nil, fmt.Errorf("parse genre: %w", err)
	}
	game.Genre = genre
	return &game, nil
}

func idsToStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
