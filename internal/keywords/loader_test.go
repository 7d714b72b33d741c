package keywords

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingPath(t *testing.T) {
	loader := NewLoader("/nonexistent/patterns")
	set, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	defaults := DefaultSet()
	if len(set.Deny) != len(defaults.Deny) {
		t.Errorf("Deny count = %v, want %v", len(set.Deny), len(defaults.Deny))
	}
	if len(set.Allow) != len(defaults.Allow) {
		t.Errorf("Allow count = %v, want %v", len(set.Allow), len(defaults.Allow))
	}
}

func TestLoadEmptyPath(t *testing.T) {
	loader := NewLoader("")
	set, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(set.TextNeedles) == 0 {
		t.Error("expected default text needles")
	}
}

func TestLoadOverlayReplacesOnlyNamedLists(t *testing.T) {
	tmpDir := t.TempDir()
	overlay := "allow:\n  - blaster\n  - raygun\n"
	if err := os.WriteFile(filepath.Join(tmpDir, "custom.yaml"), []byte(overlay), 0644); err != nil {
		t.Fatalf("failed to write overlay: %v", err)
	}

	loader := NewLoader(tmpDir)
	set, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(set.Allow) != 2 || set.Allow[0] != "blaster" || set.Allow[1] != "raygun" {
		t.Errorf("Allow = %v, want [blaster raygun]", set.Allow)
	}

	// Lists the overlay does not name keep their defaults.
	defaults := DefaultSet()
	if len(set.Deny) != len(defaults.Deny) {
		t.Errorf("Deny count = %v, want %v (untouched)", len(set.Deny), len(defaults.Deny))
	}
	if len(set.BinaryNeedles) != len(defaults.BinaryNeedles) {
		t.Errorf("BinaryNeedles count = %v, want %v (untouched)", len(set.BinaryNeedles), len(defaults.BinaryNeedles))
	}
}

func TestLoadIgnoresNonYAMLFiles(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("allow: [x]"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	loader := NewLoader(tmpDir)
	set, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	defaults := DefaultSet()
	if len(set.Allow) != len(defaults.Allow) {
		t.Errorf("Allow count = %v, want defaults %v", len(set.Allow), len(defaults.Allow))
	}
}
