package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/cfpstats/internal/utils"
)

func TestSafeWriteFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "proposals.csv-by-level.csv")
	if err := utils.SafeWriteFile(p, []byte("Level,Count\n")); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := utils.SafeWriteFile(p, []byte("Level,Count\nAdvanced,1\n")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "Level,Count\nAdvanced,1\n" {
		t.Fatalf("content = %q", b)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestSafeWriteFileMissingDir(t *testing.T) {
	p := filepath.Join(t.TempDir(), "missing", "out.csv")
	if err := utils.SafeWriteFile(p, []byte("x")); err == nil {
		t.Fatalf("expected error writing into a missing directory")
	}
	if err := utils.EnsureDir(filepath.Dir(p)); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	if err := utils.SafeWriteFile(p, []byte("x")); err != nil {
		t.Fatalf("write after EnsureDir: %v", err)
	}
}
