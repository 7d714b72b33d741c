package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gmodtools/swepscan/pkg/models"
	"go.uber.org/zap"
)

func TestWalkOrderAndExclude(t *testing.T) {
	tmpDir := t.TempDir()

	mustWrite := func(rel string) {
		path := filepath.Join(tmpDir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	mustWrite("b.lua")
	mustWrite("a.lua")
	mustWrite("skipme/c.lua")

	walker := NewWalker(zap.NewNop(), []string{"skipme"})

	var seen []string
	err := walker.Walk(tmpDir, func(f models.CandidateFile) error {
		rel, _ := filepath.Rel(tmpDir, f.Path)
		seen = append(seen, rel)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	if len(seen) != 2 {
		t.Fatalf("saw %d files, want 2: %v", len(seen), seen)
	}
	if seen[0] != "a.lua" || seen[1] != "b.lua" {
		t.Errorf("enumeration order = %v, want [a.lua b.lua]", seen)
	}
}

func TestWalkMissingRoot(t *testing.T) {
	walker := NewWalker(zap.NewNop(), nil)
	err := walker.Walk("/nonexistent/root", func(models.CandidateFile) error {
		t.Error("callback invoked for missing root")
		return nil
	})
	if err != nil {
		t.Errorf("Walk() error = %v, want nil (access errors are skipped)", err)
	}
}

func TestDecodePermissive(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{"Plain text", []byte("SWEP.PrintName = \"x\""), "SWEP.PrintName = \"x\""},
		{"Embedded NULs", []byte("mod\x00els/weap\x00ons"), "models/weapons"},
		{"Keeps newlines and tabs", []byte("a\n\tb"), "a\n\tb"},
		{"Invalid bytes dropped", []byte{0xff, 'o', 'k', 0xfe}, "ok"},
		{"Valid UTF-8 preserved", []byte(`SWEP.PrintName = "Пистолет"`), `SWEP.PrintName = "Пистолет"`},
		{"Invalid byte inside UTF-8 text", []byte("д\xffе"), "де"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodePermissive(tt.input); got != tt.expected {
				t.Errorf("DecodePermissive() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestReadTextKeepsMultibyteNames(t *testing.T) {
	script := "SWEP.PrintName = \"Пистолет Макарова\"\nSWEP.Author = \"дев\"\n"
	path := filepath.Join(t.TempDir(), "weapon_makarov.lua")
	if err := os.WriteFile(path, []byte(script), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := ReadText(path)
	if err != nil {
		t.Fatalf("ReadText() error = %v", err)
	}
	if got != script {
		t.Errorf("ReadText() = %q, want %q", got, script)
	}
}

func TestReadCapped(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "big.dat")
	if err := os.WriteFile(tmpFile, make([]byte, 8192), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := ReadCapped(tmpFile, 4096)
	if err != nil {
		t.Fatalf("ReadCapped() error = %v", err)
	}
	if len(data) != 4096 {
		t.Errorf("len = %v, want 4096", len(data))
	}
}

func TestGetExtension(t *testing.T) {
	if got := GetExtension("weapon_pistol.lua"); got != "lua" {
		t.Errorf("GetExtension() = %q, want %q", got, "lua")
	}
	if got := GetExtension("noext"); got != "" {
		t.Errorf("GetExtension() = %q, want empty", got)
	}
}
