package admission

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestInterruptable_NewRequestCancelsPrevious(t *testing.T) {
	started := make(chan struct{}, 2)
	w := NewInterruptable(func(ctx context.Context, _ string, _ map[string]string) (json.RawMessage, error) {
		started <- struct{}{}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
			return json.RawMessage(`{"slow":true}`), nil
		}
	})

	firstErr := make(chan error, 1)
	go func() {
		_, err := w.Request(context.Background(), "/x", nil)
		firstErr <- err
	}()

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting first request to start")
	}

	go func() {
		_, _ = w.Request(context.Background(), "/x", nil)
	}()
	<-started

	select {
	case err := <-firstErr:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected first request cancelled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("first request was not cancelled by the second")
	}
}

func TestInterruptable_SequentialRequestsComplete(t *testing.T) {
	calls := 0
	w := NewInterruptable(func(ctx context.Context, _ string, _ map[string]string) (json.RawMessage, error) {
		calls++
		return json.RawMessage(`{"ok":true}`), nil
	})

	for i := 0; i < 3; i++ {
		payload, err := w.Request(context.Background(), "/x", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(payload) != `{"ok":true}` {
			t.Fatalf("unexpected payload: %s", payload)
		}
	}
	if calls != 3 {
		t.Fatalf("expected 3 issuer calls, got %d", calls)
	}
}
