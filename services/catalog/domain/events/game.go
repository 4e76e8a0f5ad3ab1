package events

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/ghuser/gamecatalog/services/catalog/domain"
)

const (
	// TopicGameEvents carries all catalog game events. Delivery is
	// at-least-once with no ordering guarantee across ids or event types.
	TopicGameEvents = "catalog.games"

	// TopicGameDeadLetter receives events the projector classified as poison
	// (construction-time constraint violations). They are parked for manual
	// inspection instead of being retried.
	TopicGameDeadLetter = "catalog.games.deadletter"

	// TopicLibraryGames notifies the ownership context; a removal event is
	// fanned out here when a game is deleted from the catalog.
	TopicLibraryGames = "library.games"

	// MetadataEventType is the message metadata key holding the dispatch tag.
	MetadataEventType = "event_type"
)

// Type is the closed set of game event tags.
type Type string

const (
	TypeGameCreated Type = "GameCreated"
	TypeGameUpdated Type = "GameUpdated"
	TypeGameDeleted Type = "GameDeleted"
	TypeGameSold    Type = "GameSold"
)

// ParseType resolves a metadata tag against the closed event-type set.
// Unknown tags wrap domain.ErrUnknownEventType: a misconfigured producer,
// never droppable data.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeGameCreated, TypeGameUpdated, TypeGameDeleted, TypeGameSold:
		return Type(s), nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownEventType, s)
	}
}

// GameCreatedEvent is published when a game is added to the catalog.
type GameCreatedEvent struct {
	GameID     uuid.UUID       `json:"id"`
	Title      string          `json:"title"`
	Price      decimal.Decimal `json:"price"`
	LaunchYear int             `json:"launchYear"`
	Developer  string          `json:"developer"`
	Genre      string          `json:"genre"`
}

// GameUpdatedEvent is published when a game's catalog details change.
type GameUpdatedEvent struct {
	GameID     uuid.UUID       `json:"id"`
	Title      string          `json:"title"`
	Price      decimal.Decimal `json:"price"`
	LaunchYear int             `json:"launchYear"`
	Developer  string          `json:"developer"`
	Genre      string          `json:"genre"`
}

// GameDeletedEvent is published when a game is removed from the catalog.
type GameDeletedEvent struct {
	GameID uuid.UUID `json:"id"`
}

// GameSoldEvent is published by the purchase context for each completed sale.
type GameSoldEvent struct {
	GameID uuid.UUID `json:"id"`
}

// LibraryGameRemovedEvent is the fan-out to the ownership context when a game
// is deleted; user libraries drop their copies of the removed game.
type LibraryGameRemovedEvent struct {
	GameID uuid.UUID `json:"id"`
}

// Envelope wraps an event payload in a Watermill message with the dispatch
// tag set in metadata.
func Envelope(evtType Type, payload any) (*message.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s event: %w", evtType, err)
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.Metadata.Set(MetadataEventType, string(evtType))
	return msg, nil
}
