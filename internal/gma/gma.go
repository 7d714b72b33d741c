// Package gma reads Garry's Mod addon (GMAD) container headers and file
// tables. Only the index is parsed; payload bytes are never loaded.
package gma

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"
)

// Magic identifies a GMAD container.
const Magic = "GMAD"

// Entry describes one file recorded in an addon's index.
type Entry struct {
	Name string
	Size int64
	CRC  uint32
}

// Archive is the parsed index of a .gma file.
type Archive struct {
	FormatVersion byte
	Name          string
	Description   string
	Author        string
	Files         []Entry
}

// ListFiles opens path and parses its GMAD index. A file that is not a
// GMAD container yields an error; a truncated index yields the entries
// read so far plus the error.
func ListFiles(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open addon: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a GMAD index from r.
func Parse(r io.Reader) (*Archive, error) {
	br := bufio.NewReader(r)

	magic := make([]byte, 4)
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	if string(magic) != Magic {
		return nil, fmt.Errorf("not a GMAD container (magic %q)", magic)
	}

	version, err := br.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("read format version: %w", err)
	}

	arc := &Archive{FormatVersion: version}

	// SteamID and timestamp are unused by the index.
	if _, err := br.Discard(16); err != nil {
		return nil, fmt.Errorf("skip header: %w", err)
	}

	// Format versions after 1 carry a required-content list of
	// NUL-terminated strings ending with an empty string.
	if version > 1 {
		for {
			s, err := readCString(br)
			if err != nil {
				return nil, fmt.Errorf("read required content: %w", err)
			}
			if s == "" {
				break
			}
		}
	}

	if arc.Name, err = readCString(br); err != nil {
		return nil, fmt.Errorf("read addon name: %w", err)
	}
	if arc.Description, err = readCString(br); err != nil {
		return nil, fmt.Errorf("read addon description: %w", err)
	}
	if arc.Author, err = readCString(br); err != nil {
		return nil, fmt.Errorf("read addon author: %w", err)
	}

	// Addon version, unused.
	if _, err := br.Discard(4); err != nil {
		return nil, fmt.Errorf("skip addon version: %w", err)
	}

	// File records: uint32 ordinal (zero terminates), NUL-terminated
	// name, int64 size, uint32 crc.
	for {
		var ordinal uint32
		if err := binary.Read(br, binary.LittleEndian, &ordinal); err != nil {
			return arc, fmt.Errorf("read file ordinal: %w", err)
		}
		if ordinal == 0 {
			break
		}

		var entry Entry
		if entry.Name, err = readCString(br); err != nil {
			return arc, fmt.Errorf("read file name: %w", err)
		}
		if err := binary.Read(br, binary.LittleEndian, &entry.Size); err != nil {
			return arc, fmt.Errorf("read file size: %w", err)
		}
		if err := binary.Read(br, binary.LittleEndian, &entry.CRC); err != nil {
			return arc, fmt.Errorf("read file crc: %w", err)
		}
		arc.Files = append(arc.Files, entry)
	}

	return arc, nil
}

// AssetPaths filters an archive's index down to material and model paths
// worth recording, already normalized to forward slashes.
func (a *Archive) AssetPaths() (textures, modelRefs []string) {
	for _, entry := range a.Files {
		name := strings.ToLower(strings.ReplaceAll(entry.Name, `\`, "/"))
		switch {
		case strings.HasPrefix(name, "materials/") &&
			(strings.HasSuffix(name, ".vtf") || strings.HasSuffix(name, ".vmt")):
			textures = append(textures, name)
		case strings.HasPrefix(name, "models/") && strings.HasSuffix(name, ".mdl"):
			modelRefs = append(modelRefs, name)
		}
	}
	return textures, modelRefs
}

// LuaEntries returns the index entries under lua/, the scripts an addon
// ships.
func (a *Archive) LuaEntries() []Entry {
	var out []Entry
	for _, entry := range a.Files {
		name := strings.ToLower(strings.ReplaceAll(entry.Name, `\`, "/"))
		if strings.HasPrefix(name, "lua/") {
			out = append(out, entry)
		}
	}
	return out
}

func readCString(br *bufio.Reader) (string, error) {
	s, err := br.ReadString(0)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(s, "\x00"), nil
}
