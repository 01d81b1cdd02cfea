package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/greenmetrics/mvstat/internal/utils"
)

func TestFindPlanRoot(t *testing.T) {
	root := t.TempDir()
	planDir := filepath.Join(root, "plans", "capstone")
	nested := filepath.Join(planDir, "exports", "2024")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(planDir, "plan.yaml"), []byte("name: capstone\n"), 0o644); err != nil {
		t.Fatalf("write plan: %v", err)
	}

	got, err := utils.FindPlanRoot(nested)
	if err != nil {
		t.Fatalf("FindPlanRoot: %v", err)
	}
	if got != planDir {
		t.Errorf("got %q, want %q", got, planDir)
	}

	file := filepath.Join(nested, "report.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	got, err = utils.FindPlanRoot(file)
	if err != nil {
		t.Fatalf("FindPlanRoot from file: %v", err)
	}
	if got != planDir {
		t.Errorf("got %q, want %q", got, planDir)
	}
}

func TestFindPlanRootNotFound(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "empty")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := utils.FindPlanRoot(dir); err == nil {
		t.Fatal("expected an error when no plan.yaml exists above the start")
	}
}

func TestSafeWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := utils.SafeWriteFile(path, []byte("first")); err != nil {
		t.Fatalf("SafeWriteFile: %v", err)
	}
	if err := utils.SafeWriteFile(path, []byte("second")); err != nil {
		t.Fatalf("SafeWriteFile overwrite: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != "second" {
		t.Errorf("content = %q, want %q", b, "second")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
}
