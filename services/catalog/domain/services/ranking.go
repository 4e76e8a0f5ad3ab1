// Package services contains stateless domain services for the catalog bounded
// context: search ranking and genre affinity. They operate purely on domain
// types and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/ghuser/gamecatalog/services/catalog/domain/models"
)

// popularityWeight scales the sales-count boost added to text relevance.
const popularityWeight = 2.0

// Tokenize lowercases s and splits it on non-alphanumeric runes.
// All scoring runs over these tokens, for both queries and document fields.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// TextScore counts, for every query token, the matching tokens across the
// document's title, genre, and developer fields. One point per match.
func TextScore(doc *models.GameDocument, queryTokens []string) float64 {
	if len(queryTokens) == 0 {
		return 0
	}

	fieldTokens := Tokenize(doc.Title)
	fieldTokens = append(fieldTokens, Tokenize(doc.Genre)...)
	fieldTokens = append(fieldTokens, Tokenize(doc.Developer)...)

	var score float64
	for _, q := range queryTokens {
		for _, f := range fieldTokens {
			if q == f {
				score++
			}
		}
	}
	return score
}

// PopularityScore is the additive sales boost: weight × log(1 + salesCount).
// A document with zero sales gets exactly zero boost.
func PopularityScore(salesCount int64) float64 {
	return popularityWeight * math.Log1p(float64(salesCount))
}

// FinalScore combines text relevance and the popularity boost additively.
func FinalScore(doc *models.GameDocument, queryTokens []string) float64 {
	return TextScore(doc, queryTokens) + PopularityScore(doc.SalesCount)
}

// RankDocuments orders candidates by final score descending. When the query
// has tokens, candidates with zero text relevance are dropped; an empty query
// matches everything and ranks by popularity alone. The sort is stable, so
// equal scores keep the caller's order (the store's natural order).
func RankDocuments(docs []*models.GameDocument, query string) []*models.GameDocument {
	tokens := Tokenize(query)

	ranked := make([]*models.GameDocument, 0, len(docs))
	scores := make(map[*models.GameDocument]float64, len(docs))
	for _, doc := range docs {
		text := TextScore(doc, tokens)
		if len(tokens) > 0 && text == 0 {
			continue
		}
		scores[doc] = text + PopularityScore(doc.SalesCount)
		ranked = append(ranked, doc)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})
	return ranked
}
