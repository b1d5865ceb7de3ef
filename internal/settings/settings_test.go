package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default settings should validate: %v", err)
	}
}

func TestWordBytesRoundsUp(t *testing.T) {
	s := Default()
	s.WordSize = 20
	if got := s.WordBytes(); got != 3 {
		t.Errorf("WordBytes(20) = %d, want 3", got)
	}
}

func TestValidateRejectsBadBase(t *testing.T) {
	s := Default()
	s.Base = 7
	if err := s.Validate(); err == nil {
		t.Errorf("expected error for base 7")
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")

	s := Default()
	s.Base = 16
	s.WordSize = 32
	if err := Save(path, s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Base != 16 || loaded.WordSize != 32 {
		t.Errorf("round-tripped settings mismatch: %+v", loaded)
	}
}

func TestLoadMissingCalculatorSectionFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.toml")
	if err := os.WriteFile(path, []byte("\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded != Default() {
		t.Errorf("expected default settings for empty file")
	}
}
