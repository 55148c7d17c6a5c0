package locker

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLockerExclusion(t *testing.T) {
	l := NewMemoryLocker()
	ctx := context.Background()

	ok, err := l.Acquire(ctx, "order-1", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected first acquire to succeed")
	}

	ok, err = l.Acquire(ctx, "order-1", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected second acquire to fail while held")
	}

	if ok, _ := l.Acquire(ctx, "order-2", time.Minute); !ok {
		t.Fatal("expected unrelated key to be acquirable")
	}
}

func TestMemoryLockerRelease(t *testing.T) {
	l := NewMemoryLocker()
	ctx := context.Background()

	if ok, _ := l.Acquire(ctx, "order-1", time.Minute); !ok {
		t.Fatal("expected acquire to succeed")
	}
	if err := l.Release(ctx, "order-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok, _ := l.Acquire(ctx, "order-1", time.Minute); !ok {
		t.Fatal("expected acquire after release to succeed")
	}
}

func TestMemoryLockerExpiry(t *testing.T) {
	l := NewMemoryLocker()
	ctx := context.Background()

	if ok, _ := l.Acquire(ctx, "order-1", time.Millisecond); !ok {
		t.Fatal("expected acquire to succeed")
	}
	time.Sleep(5 * time.Millisecond)
	if ok, _ := l.Acquire(ctx, "order-1", time.Minute); !ok {
		t.Fatal("expected expired lock to be reclaimable")
	}
}
