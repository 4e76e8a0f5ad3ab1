package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/ghuser/gamecatalog/services/catalog/domain"
)

const (
	maxTitleLength     = 200
	maxDeveloperLength = 100
)

// Game is the write-model aggregate: the system-of-record representation of a
// catalog entry. It is never partially constructed — NewGame validates every
// field before the struct exists, and Update re-validates before mutating.
type Game struct {
	ID         uuid.UUID
	Title      string
	Price      decimal.Decimal
	LaunchYear int
	Developer  string
	Genre      Genre
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewGame constructs a valid Game aggregate. All constraint violations wrap
// domain.ErrInvalidGame so callers can classify them with errors.Is.
func NewGame(id uuid.UUID, title string, price decimal.Decimal, launchYear int, developer string, genre Genre) (*Game, error) {
	if err := validateGameFields(title, price, launchYear, developer, genre); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Game{
		ID:         id,
		Title:      title,
		Price:      price,
		LaunchYear: launchYear,
		Developer:  developer,
		Genre:      genre,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Update replaces the mutable fields of the aggregate. Validation runs before
// any assignment so a failed update leaves the Game untouched.
func (g *Game) Update(title string, price decimal.Decimal, launchYear int, developer string, genre Genre) error {
	if err := validateGameFields(title, price, launchYear, developer, genre); err != nil {
		return err
	}

	g.Title = title
	g.Price = price
	g.LaunchYear = launchYear
	g.Developer = developer
	g.Genre = genre
	g.UpdatedAt = time.Now().UTC()
	return nil
}

func validateGameFields(title string, price decimal.Decimal, launchYear int, developer string, genre Genre) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title must not be empty", domain.ErrInvalidGame)
	}
	if len(title) > maxTitleLength {
		return fmt.Errorf("%w: title must not exceed %d characters", domain.ErrInvalidGame, maxTitleLength)
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", domain.ErrInvalidGame)
	}
	if launchYear > time.Now().UTC().Year() {
		return fmt.Errorf("%w: launch year must not be in the future", domain.ErrInvalidGame)
	}
	if strings.TrimSpace(developer) == "" {
		return fmt.Errorf("%w: developer must not be empty", domain.ErrInvalidGame)
	}
	if len(developer) > maxDeveloperLength {
		return fmt.Errorf("%w: developer must not exceed %d characters", domain.ErrInvalidGame, maxDeveloperLength)
	}
	if !genre.Valid() {
		return fmt.Errorf("%w: genre %q is not recognized", domain.ErrInvalidGame, string(genre))
	}
	return nil
}
