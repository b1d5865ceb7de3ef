package persist

import (
	"path/filepath"
	"testing"
)

func TestBuildComputesStableHash(t *testing.T) {
	heap := []byte{1, 2, 3, 4}
	roots := map[string][]int{"stack": {0}}
	a := Build(heap, roots)
	b := Build(heap, roots)
	if a.Hash != b.Hash {
		t.Errorf("Build should be deterministic for identical inputs")
	}
}

func TestBuildHashChangesWithHeap(t *testing.T) {
	roots := map[string][]int{"stack": {0}}
	a := Build([]byte{1, 2, 3}, roots)
	b := Build([]byte{1, 2, 4}, roots)
	if a.Hash == b.Hash {
		t.Errorf("different heap bytes should hash differently")
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.db48x")

	heap := []byte{9, 8, 7, 6, 5}
	roots := map[string][]int{"stack": {0, 2}, "directory": {4}}
	p := Build(heap, roots)

	if err := Save(path, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(loaded.HeapBytes) != string(heap) {
		t.Errorf("heap bytes mismatch after round trip")
	}
	if len(loaded.Roots["stack"]) != 2 {
		t.Errorf("roots mismatch after round trip: %+v", loaded.Roots)
	}
}

func TestLoadRejectsCorruptedPayload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.db48x")

	p := Build([]byte{1, 2, 3}, map[string][]int{"stack": {0}})
	p.HeapBytes[0] = 99 // corrupt after hashing
	if err := Save(path, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := Load(path); err != ErrCorrupt {
		t.Errorf("Load: got %v, want ErrCorrupt", err)
	}
}

func TestLoadRejectsSchemaMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.db48x")

	p := Build([]byte{1}, map[string][]int{})
	p.Schema = schemaVersion + 1
	if err := Save(path, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := Load(path); err != ErrSchemaMismatch {
		t.Errorf("Load: got %v, want ErrSchemaMismatch", err)
	}
}
