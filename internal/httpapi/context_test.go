package httpapi

import (
	"context"
	"testing"
	"time"
)

func waitDone(t *testing.T, ctx context.Context) {
	t.Helper()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatalf("context not canceled in time")
	}
}

func TestJoinContextsCancelsOnEitherSide(t *testing.T) {
	a, cancelA := context.WithCancel(context.Background())
	joined, cancel := joinContexts(a, context.Background())
	defer cancel()
	cancelA()
	waitDone(t, joined)

	b, cancelB := context.WithCancel(context.Background())
	joined2, cancel2 := joinContexts(context.Background(), b)
	defer cancel2()
	cancelB()
	waitDone(t, joined2)
}

func TestSetBaseContextNilResets(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	SetBaseContext(ctx)
	cancel()
	if serverBaseCtx.Err() == nil {
		t.Fatalf("base context not installed")
	}
	SetBaseContext(nil)
	if serverBaseCtx.Err() != nil {
		t.Fatalf("nil must reset to background")
	}
}
