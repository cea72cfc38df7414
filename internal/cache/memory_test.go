package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemory_SetGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, ok := m.Get(ctx, "missing"); ok {
		t.Error("Get() on empty cache should miss")
	}

	if err := m.Set(ctx, "k", "v", 0); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	got, ok := m.Get(ctx, "k")
	if !ok || got != "v" {
		t.Errorf("Get() = (%q, %v), want (\"v\", true)", got, ok)
	}
}

func TestMemory_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.Set(ctx, "k", "v", 10*time.Millisecond); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	if _, ok := m.Get(ctx, "k"); !ok {
		t.Fatal("entry should be live before TTL elapses")
	}

	time.Sleep(20 * time.Millisecond)

	if _, ok := m.Get(ctx, "k"); ok {
		t.Error("entry should expire after TTL")
	}
}
