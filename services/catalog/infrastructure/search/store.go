// Package search implements the game document read model on Redis.
//
// Layout:
//   - doc:{id}   hash with the denormalized document fields
//   - doc:index  ZSET of ids scored by an insertion sequence (doc:seq); this
//     is the store's stable natural order
//
// The sales counter is incremented through a Lua script so the
// existence check and HINCRBY execute atomically: concurrent Sold events for
// the same id cannot lose updates, and an increment for a deleted id cannot
// resurrect a stray key.
package search

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/ghuser/gamecatalog/pkg/cache"
	domain "github.com/ghuser/gamecatalog/services/catalog/domain"
	"github.com/ghuser/gamecatalog/services/catalog/domain/models"
	"github.com/ghuser/gamecatalog/services/catalog/domain/repositories"
	domainsvcs "github.com/ghuser/gamecatalog/services/catalog/domain/services"
)

const (
	docKeyPrefix = "doc:"
	indexKey     = "doc:index"
	seqKey       = "doc:seq"
)

// incrementSales: atomic existence-checked sales bump. Returns the new count,
// or -1 when the document does not exist.
var incrementSales = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return -1
end
return redis.call("HINCRBY", KEYS[1], "sales_count", 1)
`)

// replaceDetails: overwrite every field except sales_count, only when the
// document exists. Returns 0 when absent.
var replaceDetails = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return 0
end
redis.call("HSET", KEYS[1],
	"title", ARGV[1], "developer", ARGV[2], "genre", ARGV[3],
	"launch_year", ARGV[4], "price", ARGV[5])
return 1
`)

// Store implements repositories.DocumentStore on Redis.
type Store struct {
	client *cache.RedisClient
}

// NewStore returns a document Store backed by the given Redis client.
func NewStore(client *cache.RedisClient) *Store {
	return &Store{client: client}
}

// Put stores a new document and registers it in the natural-order index.
// Re-putting an existing id overwrites the fields but keeps its position
// (ZAddNX leaves existing index entries alone).
func (s *Store) Put(ctx context.Context, doc *models.GameDocument) error {
	seq, err := s.client.Client().Incr(ctx, seqKey).Result()
	if err != nil {
		return fmt.Errorf("search put: next seq: %w", err)
	}

	pipe := s.client.Client().Pipeline()
	pipe.HSet(ctx, s.key(doc.ID),
		"id", doc.ID.String(),
		"title", doc.Title,
		"developer", doc.Developer,
		"genre", doc.Genre,
		"launch_year", strconv.Itoa(doc.LaunchYear),
		"price", doc.Price.String(),
		"sales_count", strconv.FormatInt(doc.SalesCount, 10),
	)
	pipe.ZAddNX(ctx, indexKey, redis.Z{Score: float64(seq), Member: doc.ID.String()})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("search put: %w", err)
	}
	return nil
}

// Replace overwrites the denormalized fields of an existing document, leaving
// sales_count untouched. Returns ErrDocumentNotFound when absent.
func (s *Store) Replace(ctx context.Context, doc *models.GameDocument) error {
	res, err := replaceDetails.Run(ctx, s.client.Client(), []string{s.key(doc.ID)},
		doc.Title, doc.Developer, doc.Genre,
		strconv.Itoa(doc.LaunchYear), doc.Price.String(),
	).Int()
	if err != nil {
		return fmt.Errorf("search replace: %w", err)
	}
	if res == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

// GetByID loads one document. Returns ErrDocumentNotFound when absent.
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*models.GameDocument, error) {
	vals, err := s.client.Client().HGetAll(ctx, s.key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("search get: %w", err)
	}
	if len(vals) == 0 {
		return nil, domain.ErrDocumentNotFound
	}
	return parseDoc(vals)
}

// Delete removes the document and its index entry. Absent ids are a no-op.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	pipe := s.client.Client().Pipeline()
	pipe.Del(ctx, s.key(id))
	pipe.ZRem(ctx, indexKey, id.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("search delete: %w", err)
	}
	return nil
}

// IncrementSales atomically adds 1 to the document's sales counter.
func (s *Store) IncrementSales(ctx context.Context, id uuid.UUID) (int64, error) {
	n, err := incrementSales.Run(ctx, s.client.Client(), []string{s.key(id)}).Int64()
	if err != nil {
		return 0, fmt.Errorf("search increment sales: %w", err)
	}
	if n < 0 {
		return 0, domain.ErrDocumentNotFound
	}
	return n, nil
}

// List returns a page of documents in natural insertion order.
func (s *Store) List(ctx context.Context, p repositories.Pagination) ([]*models.GameDocument, error) {
	start := int64(p.Offset())
	stop := start + int64(p.PageSize) - 1
	ids, err := s.client.Client().ZRange(ctx, indexKey, start, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("search list: %w", err)
	}
	return s.fetch(ctx, ids)
}

// TopSellers returns a page ordered by sales count descending; documents with
// equal counts keep their natural order (stable sort over the index order).
// Ordering happens over the full document set on every call; the catalog read
// model is small enough that loading it whole is cheaper than maintaining a
// second sales-ordered index.
func (s *Store) TopSellers(ctx context.Context, p repositories.Pagination) ([]*models.GameDocument, error) {
	docs, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].SalesCount > docs[j].SalesCount
	})

	lo, hi := p.Bounds(len(docs))
	return docs[lo:hi], nil
}

// RankedSearch scores every candidate against freeText plus the genre boost
// terms and returns a page ordered by final score descending. Like TopSellers
// it scans the full document set per query, which holds up only while the
// catalog stays in the thousands of documents.
func (s *Store) RankedSearch(ctx context.Context, freeText, genreBoost string, p repositories.Pagination) ([]*models.GameDocument, error) {
	docs, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	ranked := domainsvcs.RankDocuments(docs, freeText+" "+genreBoost)
	lo, hi := p.Bounds(len(ranked))
	return ranked[lo:hi], nil
}

// Ping checks the underlying Redis connection health.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// loadAll fetches every document in natural index order.
func (s *Store) loadAll(ctx context.Context) ([]*models.GameDocument, error) {
	ids, err := s.client.Client().ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("search load index: %w", err)
	}
	return s.fetch(ctx, ids)
}

// fetch pipelines HGETALL for the given ids, preserving their order.
// Ids whose hash vanished between index read and fetch are skipped.
func (s *Store) fetch(ctx context.Context, ids []string) ([]*models.GameDocument, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	pipe := s.client.Client().Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, docKeyPrefix+id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("search fetch: %w", err)
	}

	docs := make([]*models.GameDocument, 0, len(ids))
	for _, cmd := range cmds {
		vals, err := cmd.Result()
		if err != nil || len(vals) == 0 {
			continue
		}
		doc, err := parseDoc(vals)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *Store) key(id uuid.UUID) string {
	return docKeyPrefix + id.String()
}

func parseDoc(vals map[string]string) (*models.GameDocument, error) {
	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("search parse id: %w", err)
	}
	launchYear, err := strconv.Atoi(vals["launch_year"])
	if err != nil {
		return nil, fmt.Errorf("search parse launch_year: %w", err)
	}
	price, err := decimal.NewFromString(vals["price"])
	if err != nil {
		return nil, fmt.Errorf("search parse price: %w", err)
	}
	sales, err := strconv.ParseInt(vals["sales_count"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("search parse sales_count: %w", err)
	}

	return &models.GameDocument{
		ID:         id,
		Title:      vals["title"],
		Developer:  vals["developer"],
		Genre:      vals["genre"],
		LaunchYear: launchYear,
		Price:      price,
		SalesCount: sales,
	}, nil
}
