package models

import (
	"fmt"
	"strings"

	domain "github.com/ghuser/gamecatalog/services/catalog/domain"
)

// Genre is a closed enumeration of catalog genres.
type Genre string

const (
	GenreAction     Genre = "Action"
	GenreAdventure  Genre = "Adventure"
	GenreFighting   Genre = "Fighting"
	GenreHorror     Genre = "Horror"
	GenrePlatformer Genre = "Platformer"
	GenrePuzzle     Genre = "Puzzle"
	GenreRPG        Genre = "RPG"
	GenreRacing     Genre = "Racing"
	GenreShooter    Genre = "Shooter"
	GenreSimulation Genre = "Simulation"
	GenreSports     Genre = "Sports"
	GenreStrategy   Genre = "Strategy"
)

var genres = []Genre{
	GenreAction, GenreAdventure, GenreFighting, GenreHorror,
	GenrePlatformer, GenrePuzzle, GenreRPG, GenreRacing,
	GenreShooter, GenreSimulation, GenreSports, GenreStrategy,
}

// Genres returns the full genre set in declaration order.
func Genres() []Genre {
	out := make([]Genre, len(genres))
	copy(out, genres)
	return out
}

// ParseGenre resolves a genre name case-insensitively against the closed set.
// Unknown names wrap domain.ErrInvalidGame.
func ParseGenre(s string) (Genre, error) {
	for _, g := range genres {
		if strings.EqualFold(s, string(g)) {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: genre %q is not recognized", domain.ErrInvalidGame, s)
}

// Valid reports whether g is a member of the closed genre set.
func (g Genre) Valid() bool {
	for _, known := range genres {
		if g == known {
			return true
		}
	}
	return false
}

// String returns the canonical genre name.
func (g Genre) String() string {
	return string(g)
}
