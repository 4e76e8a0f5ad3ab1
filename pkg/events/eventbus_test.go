package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/gamecatalog/pkg/config"
	"github.com/ghuser/gamecatalog/pkg/logger"
)

func testLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

func TestRetryWithBackoff_SucceedsFirstTry(t *testing.T) {
	calls := 0
	handler := func(context.Context, *message.Message) error {
		calls++
		return nil
	}

	msg := message.NewMessage("id", nil)
	if err := retryWithBackoff(context.Background(), msg, handler, 3, time.Millisecond, testLogger()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryWithBackoff_RecoversAfterFailures(t *testing.T) {
	calls := 0
	handler := func(context.Context, *message.Message) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}

	msg := message.NewMessage("id", nil)
	if err := retryWithBackoff(context.Background(), msg, handler, 3, time.Millisecond, testLogger()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryWithBackoff_ExhaustsRetries(t *testing.T) {
	calls := 0
	sentinel := errors.New("permanent")
	handler := func(context.Context, *message.Message) error {
		calls++
		return sentinel
	}

	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(context.Background(), msg, handler, 3, time.Millisecond, testLogger())
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped handler error, got %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryWithBackoff_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	handler := func(context.Context, *message.Message) error {
		cancel()
		return errors.New("transient")
	}

	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(ctx, msg, handler, 3, time.Hour, testLogger())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
