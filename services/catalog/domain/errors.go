package domain

import "errors"

// Sentinel errors for the catalog domain. Use errors.Is() to check these.
var (
	// ErrInvalidGame indicates a game violates construction-time constraints.
	// Events that fail with this error are poison messages: log and dead-letter,
	// never retry.
	ErrInvalidGame = errors.New("invalid game")

	// ErrGameNotFound indicates the requested game does not exist in the write model.
	ErrGameNotFound = errors.New("game not found")

	// ErrGameAlreadyExists indicates a game with the same natural key
	// (title, developer, launch year) is already registered.
	ErrGameAlreadyExists = errors.New("game already exists")

	// ErrDocumentNotFound indicates the requested search document does not exist.
	ErrDocumentNotFound = errors.New("search document not found")

	// ErrOwnershipUnavailable indicates the external ownership service could not
	// be reached or answered non-2xx. Personalized search fails hard on this;
	// there is no degraded fallback.
	ErrOwnershipUnavailable = errors.New("ownership service unavailable")

	// ErrUnknownEventType indicates an event carried a type tag outside the
	// closed set. This is a configuration error, not a data error.
	ErrUnknownEventType = errors.New("unknown event type")
)
