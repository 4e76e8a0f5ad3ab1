package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors_Messages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrInvalidGame, "invalid game"},
		{ErrGameNotFound, "game not found"},
		{ErrGameAlreadyExists, "game already exists"},
		{ErrDocumentNotFound, "search document not found"},
		{ErrOwnershipUnavailable, "ownership service unavailable"},
		{ErrUnknownEventType, "unknown event type"},
	}
	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Errorf("message = %q, want %q", tt.err.Error(), tt.want)
		}
	}
}

func TestSentinelErrors_WrappedIdentity(t *testing.T) {
	wrapped := fmt.Errorf("load game: %w", ErrGameNotFound)
	if !errors.Is(wrapped, ErrGameNotFound) {
		t.Fatal("errors.Is must match wrapped ErrGameNotFound")
	}

	wrapped2 := fmt.Errorf("%w: %w", ErrInvalidGame, errors.New("title must not be empty"))
	if !errors.Is(wrapped2, ErrInvalidGame) {
		t.Fatal("errors.Is must match double-wrapped ErrInvalidGame")
	}
}
