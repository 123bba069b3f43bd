package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	payload := []byte(`{"items":[]}`)
	if err := store.Save(ctx, "artprint_basket", payload); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, ok, err := store.Load(ctx, "artprint_basket")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatal("Load ok = false, want true")
	}
	if string(data) != string(payload) {
		t.Errorf("Load = %s, want %s", data, payload)
	}
}

func TestFileStoreLoadAbsent(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	data, ok, err := store.Load(ctx, "missing")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok || data != nil {
		t.Errorf("Load absent = (%v, %v), want (nil, false)", data, ok)
	}
}

func TestFileStoreRemove(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := store.Save(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Remove(ctx, "k"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok, _ := store.Load(ctx, "k"); ok {
		t.Error("Load after Remove ok = true, want false")
	}

	// Removing an absent key is a no-op, not an error.
	if err := store.Remove(ctx, "k"); err != nil {
		t.Errorf("Remove absent = %v, want nil", err)
	}
}

func TestFileStoreCorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("not json{"), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, _, err = store.Load(ctx, "bad")
	if err == nil {
		t.Fatal("Load corrupt entry error = nil, want corrupt error")
	}
}

func TestFileStoreRejectsUnsafeKeys(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	for _, key := range []string{"", "a/b", "..", "a\\b"} {
		if err := store.Save(ctx, key, []byte("v")); err == nil {
			t.Errorf("Save(%q) error = nil, want key validation error", key)
		}
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Save(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, "k", []byte("v2")); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}

	data, ok, err := store.Load(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Load = (%v, %v, %v), want value", data, ok, err)
	}
	if string(data) != "v2" {
		t.Errorf("Load = %s, want v2", data)
	}

	if err := store.Remove(ctx, "k"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("Len after Remove = %d, want 0", store.Len())
	}
}

func TestMemoryStoreCopiesData(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	payload := []byte("original")
	if err := store.Save(ctx, "k", payload); err != nil {
		t.Fatalf("Save: %v", err)
	}
	payload[0] = 'X'

	data, _, _ := store.Load(ctx, "k")
	if string(data) != "original" {
		t.Errorf("stored data aliased the caller's slice: %s", data)
	}
}
