package vmt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestContentWeaponTemplate(t *testing.T) {
	g := NewGenerator(Options{}, nil)

	content, kind := g.Content("materials/models/weapons/v_pistol.vtf")
	if kind != KindWeapon {
		t.Fatalf("kind = %q, want weapon", kind)
	}
	if !strings.Contains(content, `"UnlitGeneric"`) {
		t.Errorf("content missing shader header:\n%s", content)
	}
	if !strings.Contains(content, `"$basetexture"    "models/weapons/v_pistol"`) {
		t.Errorf("basetexture not stripped of root/extension:\n%s", content)
	}
	if !strings.Contains(content, `"$selfillum"`) {
		t.Errorf("weapon template should glow:\n%s", content)
	}
}

func TestContentWeaponTint(t *testing.T) {
	g := NewGenerator(Options{
		WeaponColors: []ColorRule{
			{Name: "rifles", Enabled: true, Patterns: []string{"rifle"}, Color: "[1 0 0]", Glow: "[0.5 0 0]"},
			{Name: "off", Enabled: false, Patterns: []string{"pistol"}, Color: "[0 1 0]"},
		},
	}, nil)

	content, _ := g.Content("materials/weapons/v_rifle.vtf")
	if !strings.Contains(content, "[1 0 0]") {
		t.Errorf("enabled rule color not applied:\n%s", content)
	}

	content, _ = g.Content("materials/weapons/v_pistol.vtf")
	if strings.Contains(content, "[0 1 0]") {
		t.Errorf("disabled rule color applied:\n%s", content)
	}
}

func TestContentPropAndFallbacks(t *testing.T) {
	g := NewGenerator(Options{
		PropPatterns: []string{"props/"},
		SkipPatterns: []string{"hud/"},
	}, nil)

	tests := []struct {
		path string
		want Kind
	}{
		{"materials/props/crate.vtf", KindProp},
		{"materials/hud/icon.vtf", KindNormal},
		{"materials/env/glass_pane.vtf", KindTransparent},
		{"materials/concrete/wall.vtf", KindDefault},
	}
	for _, tt := range tests {
		if _, kind := g.Content(tt.path); kind != tt.want {
			t.Errorf("Content(%q) kind = %q, want %q", tt.path, kind, tt.want)
		}
	}
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(Options{}, nil)

	written, err := g.WriteFiles(dir, []string{
		"materials/weapons/v_pistol.vtf",
		"materials/concrete/wall.vtf",
	})
	if err != nil {
		t.Fatalf("WriteFiles() error = %v", err)
	}
	if written != 2 {
		t.Fatalf("written = %d, want 2", written)
	}

	target := filepath.Join(dir, "materials", "weapons", "v_pistol.vmt")
	raw, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("reading generated material: %v", err)
	}
	if !strings.Contains(string(raw), "$basetexture") {
		t.Errorf("generated material malformed:\n%s", raw)
	}
}

func TestWriteFilesKeepsExistingMaterials(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "materials", "weapons", "v_pistol.vmt")
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, []byte("hand-tuned"), 0o644); err != nil {
		t.Fatal(err)
	}

	g := NewGenerator(Options{}, nil)
	written, err := g.WriteFiles(dir, []string{"materials/weapons/v_pistol.vtf"})
	if err != nil {
		t.Fatalf("WriteFiles() error = %v", err)
	}
	if written != 0 {
		t.Errorf("written = %d, want 0 when the material already exists", written)
	}
	raw, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "hand-tuned" {
		t.Errorf("existing material overwritten: %q", raw)
	}

	g = NewGenerator(Options{ForceRegenerate: true}, nil)
	written, err = g.WriteFiles(dir, []string{"materials/weapons/v_pistol.vtf"})
	if err != nil {
		t.Fatalf("WriteFiles() error = %v", err)
	}
	if written != 1 {
		t.Errorf("written = %d, want 1 with ForceRegenerate", written)
	}
	raw, err = os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "$basetexture") {
		t.Errorf("material not regenerated:\n%s", raw)
	}
}

func TestWriteFilesRequiresDir(t *testing.T) {
	g := NewGenerator(Options{}, nil)
	if _, err := g.WriteFiles("", []string{"materials/x.vtf"}); err == nil {
		t.Fatal("WriteFiles(\"\") error = nil, want error")
	}
}
