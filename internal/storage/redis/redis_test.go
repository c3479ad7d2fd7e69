package redis

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
)

// newTestStore connects to the server named by SHOPHUB_TEST_REDIS_ADDR.
// Each test gets a unique key prefix.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	addr := os.Getenv("SHOPHUB_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SHOPHUB_TEST_REDIS_ADDR not set")
	}

	store, err := New(context.Background(), Options{
		Addr:   addr,
		Prefix: "shophub-test:" + uuid.NewString() + ":",
	})
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "shopHubCart"); err != nil || ok {
		t.Fatalf("Get on fresh prefix = (ok=%v, err=%v), want absent", ok, err)
	}

	if err := store.Set(ctx, "shopHubCart", "[]"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value, ok, err := store.Get(ctx, "shopHubCart")
	if err != nil || !ok || value != "[]" {
		t.Fatalf("Get = (%q, %v, %v), want stored value", value, ok, err)
	}

	if err := store.Remove(ctx, "shopHubCart"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "shopHubCart"); ok {
		t.Error("Expected key to be removed")
	}
	if err := store.Remove(ctx, "shopHubCart"); err != nil {
		t.Errorf("Removing absent key returned error: %v", err)
	}
}

func TestPrefixIsolation(t *testing.T) {
	a := newTestStore(t)
	b := newTestStore(t)
	ctx := context.Background()

	if err := a.Set(ctx, "currentUser", "alice"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, ok, _ := b.Get(ctx, "currentUser"); ok {
		t.Error("Expected keys under different prefixes to be isolated")
	}
}
