package cas_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.trai.ch/rivebuild/internal/adapters/cas"
	"go.trai.ch/rivebuild/internal/core/domain"
)

func TestStore_PutAndGet(t *testing.T) {
	tmpDir := t.TempDir()
	storePath := filepath.Join(tmpDir, "state.json")

	store, err := cas.NewStore(storePath)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	record := domain.ArtifactRecord{
		Destination: "/plugin/Libraries/Mac/Mac/rive.a",
		Source:      "/runtime/out/mac/arm64/release/rive.a",
		Hash:        "00000000deadbeef",
		Timestamp:   time.Now(),
	}

	if err := store.Put(record); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get("/plugin/Libraries/Mac/Mac/../Mac/rive.a")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil")
	}
	if got.Hash != record.Hash {
		t.Errorf("expected Hash %q, got %q", record.Hash, got.Hash)
	}

	missing, err := store.Get("/plugin/other.a")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown destination, got %+v", missing)
	}
}

func TestStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()
	storePath := filepath.Join(tmpDir, "nested", "state.json")

	store1, err := cas.NewStore(storePath)
	if err != nil {
		t.Fatalf("NewStore 1 failed: %v", err)
	}

	if err := store1.Put(
		domain.ArtifactRecord{Destination: "/b.lib", Hash: "2"},
		domain.ArtifactRecord{Destination: "/a.lib", Hash: "1"},
	); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	store2, err := cas.NewStore(storePath)
	if err != nil {
		t.Fatalf("NewStore 2 failed: %v", err)
	}

	all, err := store2.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 records, got %d", len(all))
	}
	if all[0].Destination != "/a.lib" || all[1].Destination != "/b.lib" {
		t.Errorf("records not sorted by destination: %+v", all)
	}
	if _, err := os.Stat(storePath + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temporary file left behind: %v", err)
	}
}

func TestStore_PutOverwrites(t *testing.T) {
	store, err := cas.NewStore(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if err := store.Put(domain.ArtifactRecord{Destination: "/rive.a", Hash: "old"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put(domain.ArtifactRecord{Destination: "/rive.a", Hash: "new"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	all, err := store.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != 1 || all[0].Hash != "new" {
		t.Errorf("expected single overwritten record, got %+v", all)
	}
}

func TestStore_OmitZero(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "state.json")

	store, err := cas.NewStore(storePath)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if err := store.Put(domain.ArtifactRecord{Destination: "/rive.a"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	//nolint:gosec // Test file with controlled path
	content, err := os.ReadFile(storePath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	jsonStr := string(content)
	if strings.Contains(jsonStr, `"hash"`) {
		t.Error("JSON should not contain 'hash' for zero value")
	}
	if strings.Contains(jsonStr, `"timestamp"`) {
		t.Error("JSON should not contain 'timestamp' for zero value")
	}
	if !strings.Contains(jsonStr, `"destination"`) {
		t.Error("JSON should contain 'destination'")
	}
}

func TestStore_CorruptFile(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(storePath, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := cas.NewStore(storePath); err == nil {
		t.Fatal("expected error for corrupt store")
	}
}

func TestStore_EmptyFile(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(storePath, nil, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	store, err := cas.NewStore(storePath)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	all, _ := store.All()
	if len(all) != 0 {
		t.Errorf("expected empty store, got %+v", all)
	}
}
