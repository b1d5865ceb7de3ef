package main

import (
	"os"
	"path/filepath"
	"testing"

	"db48x/internal/settings"
)

func TestEvalBatchFileComputesStack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.rpl")
	if err := os.WriteFile(path, []byte("2 3 ADD"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := settings.Default()
	r := evalBatchFile(path, s)
	if r.err != nil {
		t.Fatalf("evalBatchFile: %v", r.err)
	}
	if len(r.lines) != 1 || r.lines[0] != "1: 5" {
		t.Fatalf("lines = %v, want [%q]", r.lines, "1: 5")
	}
}

func TestEvalBatchFileReportsMissingFile(t *testing.T) {
	s := settings.Default()
	r := evalBatchFile(filepath.Join(t.TempDir(), "missing.rpl"), s)
	if r.err == nil {
		t.Fatal("expected an error for a nonexistent file")
	}
}

func TestEvalBatchFileIsolatesEvaluators(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.rpl")
	pathB := filepath.Join(dir, "b.rpl")
	if err := os.WriteFile(pathA, []byte("1 'X' STO"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(pathB, []byte("X"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := settings.Default()
	evalBatchFile(pathA, s)
	rb := evalBatchFile(pathB, s)
	if rb.err == nil {
		t.Fatal("expected an undefined_name error: b.rpl must not see a.rpl's directory binding")
	}
}
