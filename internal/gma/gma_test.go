package gma

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"
)

// buildArchive assembles a minimal version-3 GMAD index.
func buildArchive(t *testing.T, names []string) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString(Magic)
	buf.WriteByte(3)
	buf.Write(make([]byte, 16)) // steamid + timestamp
	buf.WriteByte(0)            // empty required-content list
	buf.WriteString("Test Addon\x00")
	buf.WriteString("desc\x00")
	buf.WriteString("author\x00")
	buf.Write(make([]byte, 4)) // addon version

	for i, name := range names {
		binary.Write(&buf, binary.LittleEndian, uint32(i+1))
		buf.WriteString(name + "\x00")
		binary.Write(&buf, binary.LittleEndian, int64(128))
		binary.Write(&buf, binary.LittleEndian, uint32(0xDEADBEEF))
	}
	binary.Write(&buf, binary.LittleEndian, uint32(0))

	return buf.Bytes()
}

func TestParse(t *testing.T) {
	names := []string{
		"lua/weapons/weapon_test/shared.lua",
		"materials/weapons/test_skin.vmt",
		"models/weapons/v_test.mdl",
		"sound/test/fire.wav",
	}
	raw := buildArchive(t, names)

	arc, err := Parse(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if arc.Name != "Test Addon" {
		t.Errorf("Name = %q, want Test Addon", arc.Name)
	}
	if len(arc.Files) != len(names) {
		t.Fatalf("len(Files) = %d, want %d", len(arc.Files), len(names))
	}
	for i, entry := range arc.Files {
		if entry.Name != names[i] {
			t.Errorf("Files[%d].Name = %q, want %q", i, entry.Name, names[i])
		}
		if entry.Size != 128 {
			t.Errorf("Files[%d].Size = %d, want 128", i, entry.Size)
		}
	}
}

func TestParseRequiredContentList(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(Magic)
	buf.WriteByte(3)
	buf.Write(make([]byte, 16))
	// Two required-content entries, then the empty terminator.
	buf.WriteString("cstrike\x00")
	buf.WriteString("ep2\x00")
	buf.WriteByte(0)
	buf.WriteString("Test Addon\x00")
	buf.WriteString("desc\x00")
	buf.WriteString("author\x00")
	buf.Write(make([]byte, 4))
	binary.Write(&buf, binary.LittleEndian, uint32(0))

	arc, err := Parse(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if arc.Name != "Test Addon" || arc.Author != "author" {
		t.Errorf("header fields desynced past content list: name=%q author=%q", arc.Name, arc.Author)
	}
}

func TestParseRejectsBadMagic(t *testing.T) {
	_, err := Parse(strings.NewReader("ZIP!not a gmad file"))
	if err == nil {
		t.Fatal("Parse() error = nil, want magic rejection")
	}
}

func TestParseTruncatedIndex(t *testing.T) {
	raw := buildArchive(t, []string{"lua/weapons/x.lua", "models/y.mdl"})
	// Cut into the second record.
	arc, err := Parse(bytes.NewReader(raw[:len(raw)-10]))
	if err == nil {
		t.Fatal("Parse() error = nil, want truncation error")
	}
	if arc == nil || len(arc.Files) != 1 {
		t.Fatalf("partial archive = %+v, want first entry preserved", arc)
	}
}

func TestAssetPaths(t *testing.T) {
	arc := &Archive{Files: []Entry{
		{Name: `materials\weapons\skin.vtf`},
		{Name: "materials/weapons/skin.vmt"},
		{Name: "models/weapons/v_test.mdl"},
		{Name: "models/weapons/v_test.phy"},
		{Name: "sound/fire.wav"},
	}}

	textures, modelRefs := arc.AssetPaths()
	if len(textures) != 2 {
		t.Errorf("textures = %v, want 2 entries", textures)
	}
	if len(modelRefs) != 1 || modelRefs[0] != "models/weapons/v_test.mdl" {
		t.Errorf("modelRefs = %v", modelRefs)
	}
	if textures[0] != "materials/weapons/skin.vtf" {
		t.Errorf("textures[0] = %q, backslashes should normalize", textures[0])
	}
}

func TestLuaEntries(t *testing.T) {
	arc := &Archive{Files: []Entry{
		{Name: "lua/weapons/weapon_test/shared.lua"},
		{Name: "LUA/autorun/init.lua"},
		{Name: "materials/weapons/skin.vmt"},
	}}
	if got := arc.LuaEntries(); len(got) != 2 {
		t.Errorf("LuaEntries() = %v, want 2 entries", got)
	}
}
