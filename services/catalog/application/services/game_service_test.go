package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/ghuser/gamecatalog/services/catalog/domain"
	"github.com/ghuser/gamecatalog/services/catalog/domain/events"
	"github.com/ghuser/gamecatalog/services/catalog/domain/models"
	"github.com/ghuser/gamecatalog/services/catalog/domain/repositories"
)

// cmdGames backs the command-side tests: a map plus natural-key lookups.
type cmdGames struct {
	games map[uuid.UUID]*models.Game
}

func (f *cmdGames) Save(context.Context, *models.Game) error { panic("unused") }

func (f *cmdGames) GetByID(_ context.Context, id uuid.UUID) (*models.Game, error) {
	g, ok := f.games[id]
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	cp := *g
	return &cp, nil
}

func (f *cmdGames) ExistsByNaturalKey(_ context.Context, title, developer string, launchYear int) (bool, error) {
	for _, g := range f.games {
		if g.Title == title && g.Developer == developer && g.LaunchYear == launchYear {
			return true, nil
		}
	}
	return false, nil
}

func (f *cmdGames) Update(context.Context, *models.Game) error { panic("unused") }
func (f *cmdGames) Delete(context.Context, uuid.UUID) error    { panic("unused") }
func (f *cmdGames) FilterByIDs(context.Context, []uuid.UUID) ([]*models.Game, error) {
	panic("unused")
}
func (f *cmdGames) ListIDs(context.Context, repositories.Pagination) ([]uuid.UUID, error) {
	panic("unused")
}

// cmdDocs serves only GetByID; command handlers never mutate the read model
// directly.
type cmdDocs struct {
	docs map[uuid.UUID]*models.GameDocument
}

func (f *cmdDocs) GetByID(_ context.Context, id uuid.UUID) (*models.GameDocument, error) {
	d, ok := f.docs[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return d, nil
}

func (f *cmdDocs) Put(context.Context, *models.GameDocument) error     { panic("unused") }
func (f *cmdDocs) Replace(context.Context, *models.GameDocument) error { panic("unused") }
func (f *cmdDocs) Delete(context.Context, uuid.UUID) error             { panic("unused") }
func (f *cmdDocs) IncrementSales(context.Context, uuid.UUID) (int64, error) {
	panic("unused")
}
func (f *cmdDocs) List(context.Context, repositories.Pagination) ([]*models.GameDocument, error) {
	panic("unused")
}
func (f *cmdDocs) TopSellers(context.Context, repositories.Pagination) ([]*models.GameDocument, error) {
	panic("unused")
}
func (f *cmdDocs) RankedSearch(context.Context, string, string, repositories.Pagination) ([]*models.GameDocument, error) {
	panic("unused")
}

func newCommandService(games *cmdGames, docs *cmdDocs) (*GameService, *recordingAudit, *recordingSink) {
	audit := &recordingAudit{}
	sink := &recordingSink{}
	publisher := NewAuditedPublisher(audit, sink, testLogger())
	return NewGameService(games, docs, publisher, 10), audit, sink
}

func validCommand() GameCommand {
	return GameCommand{
		Title:      "Alpha Quest",
		Price:      decimal.NewFromFloat(59.90),
		LaunchYear: 2020,
		Developer:  "Sample Studio",
		Genre:      "rpg",
	}
}

func TestGameService_Create(t *testing.T) {
	svc, audit, sink := newCommandService(
		&cmdGames{games: map[uuid.UUID]*models.Game{}},
		&cmdDocs{docs: map[uuid.UUID]*models.GameDocument{}},
	)

	id, err := svc.Create(context.Background(), validCommand())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("expected a new game id")
	}

	if len(sink.batches) != 1 || sink.batches[0].topic != events.TopicGameEvents {
		t.Fatalf("expected one publish to %s, got %+v", events.TopicGameEvents, sink.batches)
	}
	msg := sink.batches[0].msgs[0]
	if msg.Metadata.Get(events.MetadataEventType) != string(events.TypeGameCreated) {
		t.Errorf("event tag = %q", msg.Metadata.Get(events.MetadataEventType))
	}

	var evt events.GameCreatedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		t.Fatal(err)
	}
	if evt.GameID != id || evt.Genre != "RPG" {
		t.Errorf("event = %+v (genre must be canonicalized)", evt)
	}
	if len(audit.records) != 1 {
		t.Errorf("audit records = %d, want 1", len(audit.records))
	}
}

func TestGameService_CreateRejectsDuplicateNaturalKey(t *testing.T) {
	existing := &models.Game{
		ID: uuid.New(), Title: "Alpha Quest", Developer: "Sample Studio", LaunchYear: 2020,
	}
	svc, _, sink := newCommandService(
		&cmdGames{games: map[uuid.UUID]*models.Game{existing.ID: existing}},
		&cmdDocs{docs: map[uuid.UUID]*models.GameDocument{}},
	)

	_, err := svc.Create(context.Background(), validCommand())
	if !errors.Is(err, domain.ErrGameAlreadyExists) {
		t.Fatalf("expected ErrGameAlreadyExists, got %v", err)
	}
	if len(sink.batches) != 0 {
		t.Error("nothing may be published for a rejected command")
	}
}

func TestGameService_CreateRejectsInvalidInput(t *testing.T) {
	svc, _, sink := newCommandService(
		&cmdGames{games: map[uuid.UUID]*models.Game{}},
		&cmdDocs{docs: map[uuid.UUID]*models.GameDocument{}},
	)

	cmd := validCommand()
	cmd.Genre = "Polka"
	if _, err := svc.Create(context.Background(), cmd); !errors.Is(err, domain.ErrInvalidGame) {
		t.Fatalf("expected ErrInvalidGame, got %v", err)
	}

	cmd = validCommand()
	cmd.Price = decimal.NewFromInt(-1)
	if _, err := svc.Create(context.Background(), cmd); !errors.Is(err, domain.ErrInvalidGame) {
		t.Fatalf("expected ErrInvalidGame, got %v", err)
	}

	if len(sink.batches) != 0 {
		t.Error("nothing may be published for rejected commands")
	}
}

func TestGameService_UpdateUnknownID(t *testing.T) {
	svc, _, sink := newCommandService(
		&cmdGames{games: map[uuid.UUID]*models.Game{}},
		&cmdDocs{docs: map[uuid.UUID]*models.GameDocument{}},
	)

	err := svc.Update(context.Background(), uuid.New(), validCommand())
	if !errors.Is(err, domain.ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
	if len(sink.batches) != 0 {
		t.Error("nothing may be published for an unknown id")
	}
}

func TestGameService_DeleteFansOutToLibrary(t *testing.T) {
	id := uuid.New()
	svc, _, sink := newCommandService(
		&cmdGames{games: map[uuid.UUID]*models.Game{}},
		&cmdDocs{docs: map[uuid.UUID]*models.GameDocument{
			id: {ID: id, Title: "Alpha Quest"},
		}},
	)

	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sink.batches) != 2 {
		t.Fatalf("publishes = %d, want 2", len(sink.batches))
	}
	if sink.batches[0].topic != events.TopicGameEvents {
		t.Errorf("first publish topic = %q", sink.batches[0].topic)
	}
	if sink.batches[1].topic != events.TopicLibraryGames {
		t.Errorf("second publish topic = %q", sink.batches[1].topic)
	}
}

func TestGameService_DeleteUnknownID(t *testing.T) {
	svc, _, sink := newCommandService(
		&cmdGames{games: map[uuid.UUID]*models.Game{}},
		&cmdDocs{docs: map[uuid.UUID]*models.GameDocument{}},
	)

	err := svc.Delete(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
	if len(sink.batches) != 0 {
		t.Error("nothing may be published for an unknown id")
	}
}
