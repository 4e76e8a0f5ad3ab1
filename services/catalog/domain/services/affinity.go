package services

import (
	"sort"
	"strings"

	"github.com/ghuser/gamecatalog/services/catalog/domain/models"
)

// TopAffinityGenres is how many genres feed the personalization boost.
const TopAffinityGenres = 3

// GenreAffinity is a (genre, owned count) pair. It is derived per query from
// the user's library and never persisted.
type GenreAffinity struct {
	Genre models.Genre
	Count int
}

// TopGenres builds a genre histogram over games and returns the n most
// frequent genres, descending by count. Equal counts are broken by ascending
// genre name, which makes the result independent of input order.
func TopGenres(games []*models.Game, n int) []GenreAffinity {
	counts := make(map[models.Genre]int)
	for _, g := range games {
		counts[g.Genre]++
	}

	affinities := make([]GenreAffinity, 0, len(counts))
	for genre, count := range counts {
		affinities = append(affinities, GenreAffinity{Genre: genre, Count: count})
	}

	sort.Slice(affinities, func(i, j int) bool {
		if affinities[i].Count != affinities[j].Count {
			return affinities[i].Count > affinities[j].Count
		}
		return affinities[i].Genre < affinities[j].Genre
	})

	if n < len(affinities) {
		affinities = affinities[:n]
	}
	return affinities
}

// BoostString concatenates the affinity genre names, highest count first,
// with no separator.
func BoostString(affinities []GenreAffinity) string {
	var b strings.Builder
	for _, a := range affinities {
		b.WriteString(a.Genre.String())
	}
	return b.String()
}
