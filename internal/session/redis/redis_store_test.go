package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"notaryflow/internal/domain"
)

func setupTestStore(t *testing.T) (*KVStore, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	store, err := NewKVStore("redis://" + s.Addr())
	if err != nil {
		t.Fatalf("failed to create kv store: %v", err)
	}
	return store, s
}

func TestNewKVStore(t *testing.T) {
	s := miniredis.RunT(t)
	defer s.Close()

	store, err := NewKVStore("redis://" + s.Addr())
	if err != nil {
		t.Fatalf("NewKVStore failed: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Ping(ctx); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestSetAndGet(t *testing.T) {
	store, s := setupTestStore(t)
	defer store.Close()
	defer s.Close()

	ctx := context.Background()
	if err := store.Set(ctx, "wizard:abc", `{"selected_type":"affidavit"}`, time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := store.Get(ctx, "wizard:abc")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if val != `{"selected_type":"affidavit"}` {
		t.Errorf("unexpected value: %s", val)
	}
}

func TestGetMissingKey(t *testing.T) {
	store, s := setupTestStore(t)
	defer store.Close()
	defer s.Close()

	_, err := store.Get(context.Background(), "wizard:missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetExpiredKey(t *testing.T) {
	store, s := setupTestStore(t)
	defer store.Close()
	defer s.Close()

	ctx := context.Background()
	if err := store.Set(ctx, "wizard:short", "x", time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	s.FastForward(2 * time.Millisecond)

	_, err := store.Get(ctx, "wizard:short")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after expiry, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	store, s := setupTestStore(t)
	defer store.Close()
	defer s.Close()

	ctx := context.Background()
	if err := store.Set(ctx, "wizard:del", "x", time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Delete(ctx, "wizard:del"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err := store.Get(ctx, "wizard:del")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting a missing key is not an error.
	if err := store.Delete(ctx, "wizard:del"); err != nil {
		t.Errorf("Delete of missing key failed: %v", err)
	}
}
