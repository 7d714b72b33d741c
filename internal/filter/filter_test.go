package filter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gmodtools/swepscan/internal/keywords"
)

func newTestFilter() *Filter {
	return New(keywords.DefaultSet(), 10*1024*1024, 100*1024)
}

func TestClassifyMetadataOnly(t *testing.T) {
	f := newTestFilter()

	tests := []struct {
		name     string
		path     string
		size     int64
		eligible bool
		reason   string
	}{
		{"Empty file", "lua/weapons/weapon_abc.lua", 0, false, "empty"},
		{"Too large", "lua/weapons/weapon_abc.lua", 20 * 1024 * 1024, false, "too_large"},
		{"Bad extension", "cache/lua/blob.bin", 512, false, "bad_extension"},
		{"Weapon keyword in name", "somewhere/weapon_pistol.lua", 512, true, "allowed:weapon"},
		{"Gun keyword in name", "x/shotgun_db.lua", 512, true, "allowed:gun"},
		{"Content root directory", "garrysmod/lua/weapons/abc.lua", 512, true, "content_root:lua/weapons"},
		{"Small no signal", "stuff/misc.lua", 512, true, "small_default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.Classify(tt.path, tt.size)
			if got.Eligible != tt.eligible {
				t.Errorf("Classify(%q).Eligible = %v, want %v (reason %q)", tt.path, got.Eligible, tt.eligible, got.Reason)
			}
			if got.Reason != tt.reason {
				t.Errorf("Classify(%q).Reason = %q, want %q", tt.path, got.Reason, tt.reason)
			}
		})
	}
}

// The filename denylist wins over directory and content signals, even when
// an allowlist keyword appears elsewhere in the path.
func TestDenylistPrecedence(t *testing.T) {
	f := newTestFilter()

	tests := []string{
		"lua/weapons/gamemode_init.lua",
		"lua/weapons/weapon_config.lua",
		"garrysmod/lua/weapons/shared.lua",
		"addons/guns/lua/weapons/cl_init.lua",
	}

	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			got := f.Classify(path, 512)
			if got.Eligible {
				t.Errorf("Classify(%q) eligible with reason %q, want denylist rejection", path, got.Reason)
			}
			if !strings.HasPrefix(got.Reason, "denied:") {
				t.Errorf("Classify(%q).Reason = %q, want denied:*", path, got.Reason)
			}
		})
	}
}

func TestClassifyMissingFile(t *testing.T) {
	f := newTestFilter()
	got := f.Classify("/nonexistent/weapon_x.lua", -1)
	if got.Eligible || got.Reason != "missing" {
		t.Errorf("Classify() = %+v, want missing rejection", got)
	}
}

func TestSniffLargeFile(t *testing.T) {
	tmpDir := t.TempDir()

	withNeedle := filepath.Join(tmpDir, "unnamed1.lua")
	content := append([]byte("SWEP.PrintName = \"Test\"\n"), make([]byte, 200*1024)...)
	if err := os.WriteFile(withNeedle, content, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	withoutNeedle := filepath.Join(tmpDir, "unnamed2.lua")
	if err := os.WriteFile(withoutNeedle, make([]byte, 200*1024), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	f := newTestFilter()

	got := f.Classify(withNeedle, int64(len(content)))
	if !got.Eligible {
		t.Errorf("file with SWEP needle rejected: %q", got.Reason)
	}

	got = f.Classify(withoutNeedle, 200*1024)
	if got.Eligible {
		t.Errorf("file without needles accepted: %q", got.Reason)
	}
	if got.Reason != "no_indicators" {
		t.Errorf("Reason = %q, want no_indicators", got.Reason)
	}
}

func TestLuaCacheSuffixEligible(t *testing.T) {
	f := newTestFilter()
	got := f.Classify("garrysmod/cache/lua/weapon_ak47.lua.cache", 2048)
	if !got.Eligible {
		t.Errorf("lua.cache rejected: %q", got.Reason)
	}
}
