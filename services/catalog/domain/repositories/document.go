package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/gamecatalog/services/catalog/domain/models"
)

// DocumentStore is the search-optimized read model for game documents.
//
// Ordering contract: Put assigns each new document a stable position (the
// store's natural insertion order). List returns that order; TopSellers and
// RankedSearch break score ties with it.
type DocumentStore interface {
	// Put stores a new document. Putting an existing id overwrites the
	// document but keeps its original position in the natural order.
	Put(ctx context.Context, doc *models.GameDocument) error

	// Replace overwrites the denormalized fields of an existing document,
	// leaving SalesCount untouched. Returns ErrDocumentNotFound when absent.
	Replace(ctx context.Context, doc *models.GameDocument) error

	// GetByID returns ErrDocumentNotFound when no document has the given id.
	GetByID(ctx context.Context, id uuid.UUID) (*models.GameDocument, error)

	// Delete removes a document. Deleting an absent id is not an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementSales atomically adds 1 to the document's sales counter and
	// returns the new value. Returns ErrDocumentNotFound when absent; the
	// store must not create a document as a side effect.
	IncrementSales(ctx context.Context, id uuid.UUID) (int64, error)

	// List returns a page of documents in natural insertion order.
	List(ctx context.Context, p Pagination) ([]*models.GameDocument, error)

	// TopSellers returns a page ordered by SalesCount descending, ties broken
	// by natural order.
	TopSellers(ctx context.Context, p Pagination) ([]*models.GameDocument, error)

	// RankedSearch scores candidates against the concatenation of freeText and
	// genreBoost over the title/genre/developer fields, adds the popularity
	// boost 2×log(1+salesCount), and returns a page ordered by final score
	// descending.
	RankedSearch(ctx context.Context, freeText, genreBoost string, p Pagination) ([]*models.GameDocument, error)
}
