package projector

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/gamecatalog/pkg/config"
	"github.com/ghuser/gamecatalog/pkg/logger"
	domain "github.com/ghuser/gamecatalog/services/catalog/domain"
	"github.com/ghuser/gamecatalog/services/catalog/domain/events"
	"github.com/ghuser/gamecatalog/services/catalog/domain/models"
	"github.com/ghuser/gamecatalog/services/catalog/domain/repositories"
	domainsvcs "github.com/ghuser/gamecatalog/services/catalog/domain/services"
)

// fakeGames is an in-memory GameRepository with the same dedupe semantics as
// the Postgres implementation.
type fakeGames struct {
	games map[uuid.UUID]*models.Game
}

func newFakeGames() *fakeGames {
	return &fakeGames{games: make(map[uuid.UUID]*models.Game)}
}

func (f *fakeGames) Save(_ context.Context, game *models.Game) error {
	for _, g := range f.games {
		if g.Title == game.Title && g.Developer == game.Developer && g.LaunchYear == game.LaunchYear {
			return domain.ErrGameAlreadyExists
		}
	}
	cp := *game
	f.games[game.ID] = &cp
	return nil
}

func (f *fakeGames) GetByID(_ context.Context, id uuid.UUID) (*models.Game, error) {
	g, ok := f.games[id]
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	cp := *g
	return &cp, nil
}

func (f *fakeGames) ExistsByNaturalKey(_ context.Context, title, developer string, launchYear int) (bool, error) {
	for _, g := range f.games {
		if g.Title == title && g.Developer == developer && g.LaunchYear == launchYear {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeGames) Update(_ context.Context, game *models.Game) error {
	cp := *game
	f.games[game.ID] = &cp
	return nil
}

func (f *fakeGames) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.games, id)
	return nil
}

func (f *fakeGames) FilterByIDs(_ context.Context, ids []uuid.UUID) ([]*models.Game, error) {
	var out []*models.Game
	for _, id := range ids {
		if g, ok := f.games[id]; ok {
			cp := *g
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeGames) ListIDs(_ context.Context, p repositories.Pagination) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(f.games))
	for id := range f.games {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	lo, hi := p.Bounds(len(ids))
	return ids[lo:hi], nil
}

// fakeDocs is an in-memory DocumentStore preserving insertion order.
type fakeDocs struct {
	docs  map[uuid.UUID]*models.GameDocument
	order []uuid.UUID
}

func newFakeDocs() *fakeDocs {
	return &fakeDocs{docs: make(map[uuid.UUID]*models.GameDocument)}
}

func (f *fakeDocs) Put(_ context.Context, doc *models.GameDocument) error {
	if _, ok := f.docs[doc.ID]; !ok {
		f.order = append(f.order, doc.ID)
	}
	cp := *doc
	f.docs[doc.ID] = &cp
	return nil
}

func (f *fakeDocs) Replace(_ context.Context, doc *models.GameDocument) error {
	existing, ok := f.docs[doc.ID]
	if !ok {
		return domain.ErrDocumentNotFound
	}
	cp := *doc
	cp.SalesCount = existing.SalesCount
	f.docs[doc.ID] = &cp
	return nil
}

func (f *fakeDocs) GetByID(_ context.Context, id uuid.UUID) (*models.GameDocument, error) {
	d, ok := f.docs[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDocs) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.docs, id)
	return nil
}

func (f *fakeDocs) IncrementSales(_ context.Context, id uuid.UUID) (int64, error) {
	d, ok := f.docs[id]
	if !ok {
		return 0, domain.ErrDocumentNotFound
	}
	d.SalesCount++
	return d.SalesCount, nil
}

func (f *fakeDocs) all() []*models.GameDocument {
	out := make([]*models.GameDocument, 0, len(f.order))
	for _, id := range f.order {
		if d, ok := f.docs[id]; ok {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out
}

func (f *fakeDocs) List(_ context.Context, p repositories.Pagination) ([]*models.GameDocument, error) {
	docs := f.all()
	lo, hi := p.Bounds(len(docs))
	return docs[lo:hi], nil
}

func (f *fakeDocs) TopSellers(_ context.Context, p repositories.Pagination) ([]*models.GameDocument, error) {
	docs := f.all()
	sort.SliceStable(docs, func(i, j int) bool { return docs[i].SalesCount > docs[j].SalesCount })
	lo, hi := p.Bounds(len(docs))
	return docs[lo:hi], nil
}

func (f *fakeDocs) RankedSearch(_ context.Context, freeText, genreBoost string, p repositories.Pagination) ([]*models.GameDocument, error) {
	ranked := domainsvcs.RankDocuments(f.all(), freeText+" "+genreBoost)
	lo, hi := p.Bounds(len(ranked))
	return ranked[lo:hi], nil
}

func testLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

func newTestProjector() (*Projector, *fakeGames, *fakeDocs) {
	games := newFakeGames()
	docs := newFakeDocs()
	return New(games, docs, testLogger()), games, docs
}

func createdPayload(t *testing.T, id uuid.UUID, title string) []byte {
	t.Helper()
	body, err := json.Marshal(events.GameCreatedEvent{
		GameID:     id,
		Title:      title,
		Price:      decimal.NewFromFloat(59.90),
		LaunchYear: 2020,
		Developer:  "Sample Studio",
		Genre:      "RPG",
	})
	if err != nil {
		t.Fatal(err)
	}
	return body
}

func mustApply(t *testing.T, p *Projector, evtType events.Type, payload []byte) {
	t.Helper()
	if err := p.Apply(context.Background(), evtType, payload); err != nil {
		t.Fatalf("apply %s: %v", evtType, err)
	}
}

func TestProjector_Created(t *testing.T) {
	p, games, docs := newTestProjector()
	id := uuid.New()

	mustApply(t, p, events.TypeGameCreated, createdPayload(t, id, "Alpha Quest"))

	if _, err := games.GetByID(context.Background(), id); err != nil {
		t.Fatalf("game not in write model: %v", err)
	}
	doc, err := docs.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("document not in read model: %v", err)
	}
	if doc.SalesCount != 0 {
		t.Errorf("new document sales = %d, want 0", doc.SalesCount)
	}
}

func TestProjector_CreatedRedeliveryIsNoOp(t *testing.T) {
	p, games, docs := newTestProjector()
	id := uuid.New()
	payload := createdPayload(t, id, "Alpha Quest")

	mustApply(t, p, events.TypeGameCreated, payload)
	mustApply(t, p, events.TypeGameCreated, payload)

	// A redelivery with a fresh message id but the same natural key must also
	// be dropped.
	mustApply(t, p, events.TypeGameCreated, createdPayload(t, uuid.New(), "Alpha Quest"))

	if len(games.games) != 1 || len(docs.docs) != 1 {
		t.Errorf("stores hold %d games, %d docs; want 1, 1", len(games.games), len(docs.docs))
	}
}

func TestProjector_UpdatedUnknownIDIsNoOp(t *testing.T) {
	p, games, docs := newTestProjector()

	body, _ := json.Marshal(events.GameUpdatedEvent{
		GameID: uuid.New(), Title: "Ghost", Price: decimal.Zero,
		LaunchYear: 2020, Developer: "Nobody", Genre: "RPG",
	})
	mustApply(t, p, events.TypeGameUpdated, body)

	if len(games.games) != 0 || len(docs.docs) != 0 {
		t.Error("update for unknown id must not create state")
	}
}

func TestProjector_UpdatedPreservesSales(t *testing.T) {
	p, _, docs := newTestProjector()
	id := uuid.New()
	mustApply(t, p, events.TypeGameCreated, createdPayload(t, id, "Alpha Quest"))

	soldBody, _ := json.Marshal(events.GameSoldEvent{GameID: id})
	mustApply(t, p, events.TypeGameSold, soldBody)
	mustApply(t, p, events.TypeGameSold, soldBody)

	updBody, _ := json.Marshal(events.GameUpdatedEvent{
		GameID: id, Title: "Alpha Quest Remastered", Price: decimal.NewFromInt(30),
		LaunchYear: 2021, Developer: "Sample Studio", Genre: "Action",
	})
	mustApply(t, p, events.TypeGameUpdated, updBody)

	doc, err := docs.GetByID(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Title != "Alpha Quest Remastered" || doc.Genre != "Action" {
		t.Errorf("details not replaced: %+v", doc)
	}
	if doc.SalesCount != 2 {
		t.Errorf("sales = %d, want 2 (update must not reset the counter)", doc.SalesCount)
	}
}

func TestProjector_UpdatedRecreatesMissingDocument(t *testing.T) {
	p, _, docs := newTestProjector()
	id := uuid.New()
	mustApply(t, p, events.TypeGameCreated, createdPayload(t, id, "Alpha Quest"))

	// Simulate the non-atomic write gap: game row exists, document lost.
	if err := docs.Delete(context.Background(), id); err != nil {
		t.Fatal(err)
	}

	updBody, _ := json.Marshal(events.GameUpdatedEvent{
		GameID: id, Title: "Alpha Quest", Price: decimal.NewFromInt(30),
		LaunchYear: 2020, Developer: "Sample Studio", Genre: "RPG",
	})
	mustApply(t, p, events.TypeGameUpdated, updBody)

	doc, err := docs.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("document not recreated: %v", err)
	}
	if doc.SalesCount != 0 {
		t.Errorf("recreated document sales = %d, want 0", doc.SalesCount)
	}
}

func TestProjector_DeletedIsIdempotent(t *testing.T) {
	p, games, docs := newTestProjector()
	id := uuid.New()
	mustApply(t, p, events.TypeGameCreated, createdPayload(t, id, "Alpha Quest"))

	delBody, _ := json.Marshal(events.GameDeletedEvent{GameID: id})
	mustApply(t, p, events.TypeGameDeleted, delBody)
	mustApply(t, p, events.TypeGameDeleted, delBody)

	if len(games.games) != 0 || len(docs.docs) != 0 {
		t.Error("delete must remove both representations")
	}
}

func TestProjector_SoldIncrements(t *testing.T) {
	p, _, docs := newTestProjector()
	id := uuid.New()
	mustApply(t, p, events.TypeGameCreated, createdPayload(t, id, "Alpha Quest"))

	soldBody, _ := json.Marshal(events.GameSoldEvent{GameID: id})
	for range 3 {
		mustApply(t, p, events.TypeGameSold, soldBody)
	}

	doc, _ := docs.GetByID(context.Background(), id)
	if doc.SalesCount != 3 {
		t.Errorf("sales = %d, want 3", doc.SalesCount)
	}
}

func TestProjector_SoldUnknownIDIsNoOp(t *testing.T) {
	p, _, docs := newTestProjector()

	soldBody, _ := json.Marshal(events.GameSoldEvent{GameID: uuid.New()})
	mustApply(t, p, events.TypeGameSold, soldBody)

	if len(docs.docs) != 0 {
		t.Error("sale for unknown id must not create a document")
	}
}

func TestProjector_PoisonAndUnknownTags(t *testing.T) {
	p, _, _ := newTestProjector()
	ctx := context.Background()

	t.Run("malformed payload is invalid", func(t *testing.T) {
		err := p.Apply(ctx, events.TypeGameCreated, []byte("{not json"))
		if !errors.Is(err, domain.ErrInvalidGame) {
			t.Errorf("expected ErrInvalidGame, got %v", err)
		}
	})

	t.Run("constraint violation is invalid", func(t *testing.T) {
		body, _ := json.Marshal(events.GameCreatedEvent{
			GameID: uuid.New(), Title: "", Price: decimal.Zero,
			LaunchYear: 2020, Developer: "Sample Studio", Genre: "RPG",
		})
		err := p.Apply(ctx, events.TypeGameCreated, body)
		if !errors.Is(err, domain.ErrInvalidGame) {
			t.Errorf("expected ErrInvalidGame, got %v", err)
		}
	})

	t.Run("unknown tag is a config error", func(t *testing.T) {
		err := p.Apply(ctx, events.Type("GameRenamed"), []byte("{}"))
		if !errors.Is(err, domain.ErrUnknownEventType) {
			t.Errorf("expected ErrUnknownEventType, got %v", err)
		}
	})
}

// Walks a full lifecycle through the projector and checks the read model at
// each step, including out-of-order redelivery of the final delete.
func TestProjector_Lifecycle(t *testing.T) {
	p, _, docs := newTestProjector()
	ctx := context.Background()
	id := uuid.New()

	mustApply(t, p, events.TypeGameCreated, createdPayload(t, id, "Alpha Quest"))

	soldBody, _ := json.Marshal(events.GameSoldEvent{GameID: id})
	mustApply(t, p, events.TypeGameSold, soldBody)

	updBody, _ := json.Marshal(events.GameUpdatedEvent{
		GameID: id, Title: "Alpha Quest GOTY", Price: decimal.NewFromInt(80),
		LaunchYear: 2020, Developer: "Sample Studio", Genre: "RPG",
	})
	mustApply(t, p, events.TypeGameUpdated, updBody)

	doc, err := docs.GetByID(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Title != "Alpha Quest GOTY" || doc.SalesCount != 1 {
		t.Errorf("mid-lifecycle state wrong: %+v", doc)
	}

	delBody, _ := json.Marshal(events.GameDeletedEvent{GameID: id})
	mustApply(t, p, events.TypeGameDeleted, delBody)

	// Late redeliveries after the delete must not resurrect the game.
	mustApply(t, p, events.TypeGameUpdated, updBody)
	mustApply(t, p, events.TypeGameSold, soldBody)

	if _, err := docs.GetByID(ctx, id); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("deleted game resurrected: %v", err)
	}
}
