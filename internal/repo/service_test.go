package repo

import (
	"os"
	"path/filepath"
	"testing"
)

func TestServiceDefaultClonePath(t *testing.T) {
	root := t.TempDir()
	svc, err := NewService(root + string(filepath.Separator))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	if svc.DefaultClonePath() != root {
		t.Fatalf("expected %q, got %q", root, svc.DefaultClonePath())
	}
}

func TestServiceRejectsEmptyRoot(t *testing.T) {
	if _, err := NewService("  "); err == nil {
		t.Fatalf("expected error for empty root")
	}
}

func TestServiceDestinationExists(t *testing.T) {
	root := t.TempDir()
	svc, err := NewService(root)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	existingDir := filepath.Join(root, "octo", "hello")
	if err := os.MkdirAll(existingDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	existingFile := filepath.Join(root, "notes.txt")
	if err := os.WriteFile(existingFile, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	cases := []struct {
		path string
		want bool
	}{
		{existingDir, true},
		{existingFile, true},
		{filepath.Join(root, "octo", "other"), false},
		{"", false},
	}
	for _, tc := range cases {
		if got := svc.DestinationExists(tc.path); got != tc.want {
			t.Fatalf("DestinationExists(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}
