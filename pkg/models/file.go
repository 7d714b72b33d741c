package models

import (
	"path/filepath"
	"strings"
	"time"
)

// FileKind categorizes a candidate file by how its content must be recovered.
type FileKind string

const (
	KindSourceScript  FileKind = "source_script"  // plain readable Lua
	KindCompiledCache FileKind = "compiled_cache" // .lua.cache / .lc container
	KindWorkshopBlob  FileKind = "workshop_blob"  // downloaded workshop content
	KindUnknown       FileKind = "unknown"
)

// CandidateFile is a file selected during enumeration. It is immutable and
// discarded once processed.
type CandidateFile struct {
	Path string
	Size int64
	Kind FileKind
}

// DetectKind guesses the file kind from its path.
func DetectKind(path string) FileKind {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".lua.cache") || strings.HasSuffix(lower, ".lc"):
		return KindCompiledCache
	case strings.HasSuffix(lower, ".gma") || strings.Contains(lower, "workshop"):
		return KindWorkshopBlob
	case strings.HasSuffix(lower, ".lua") || strings.HasSuffix(lower, ".luac") ||
		strings.HasSuffix(lower, ".txt") || strings.HasSuffix(lower, ".dat"):
		return KindSourceScript
	default:
		return KindUnknown
	}
}

// Stem returns the file name without directory or extensions, used as the
// weapon class identifier for table-style definitions. Compound suffixes
// like .lua.cache are stripped entirely.
func Stem(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, ".lua.cache")
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

// DecodeStrategy identifies which cascade strategy produced the decoded text.
type DecodeStrategy string

const (
	StrategyExternalTool          DecodeStrategy = "external_tool"
	StrategyStructuredCompression DecodeStrategy = "structured_compression"
	StrategyStreamScan            DecodeStrategy = "stream_scan"
	StrategyEncodedBlobScan       DecodeStrategy = "encoded_blob_scan"
	StrategyStringSalvage         DecodeStrategy = "string_salvage"
	StrategyNone                  DecodeStrategy = "none"
)

// DecodeOutcome is the result of running the decode cascade over one file.
// An empty outcome (StrategyNone) means nothing recoverable, not an error.
type DecodeOutcome struct {
	Text     string
	Strategy DecodeStrategy
	Elapsed  time.Duration
}

// Empty reports whether the cascade recovered nothing.
func (o DecodeOutcome) Empty() bool {
	return o.Strategy == StrategyNone || o.Text == ""
}
