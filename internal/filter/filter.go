// Package filter implements the cheap eligibility check that decides whether
// a candidate file is worth the expensive decode path. It rejects on file
// metadata alone wherever possible; content is only sniffed as a last step,
// and only as a bounded prefix read.
package filter

import (
	"bytes"
	"os"
	"strings"

	"github.com/gmodtools/swepscan/internal/filesystem"
	"github.com/gmodtools/swepscan/internal/keywords"
)

// sniffPrefixSize bounds the content read used for signature sniffing.
const sniffPrefixSize = 4096

// Result is the outcome of classifying one candidate.
type Result struct {
	Eligible bool
	Reason   string
}

func rejected(reason string) Result { return Result{Eligible: false, Reason: reason} }
func accepted(reason string) Result { return Result{Eligible: true, Reason: reason} }

// Filter classifies candidate files against a keyword vocabulary.
type Filter struct {
	set            *keywords.Set
	maxSize        int64
	sniffThreshold int64
}

// New creates a filter. maxSize is the hard upper bound; files at or above
// sniffThreshold with no filename signal get a content sniff before the
// verdict, smaller ones are accepted on the cheap.
func New(set *keywords.Set, maxSize, sniffThreshold int64) *Filter {
	return &Filter{
		set:            set,
		maxSize:        maxSize,
		sniffThreshold: sniffThreshold,
	}
}

var scriptExtensions = map[string]bool{
	"lua":  true,
	"luac": true,
	"txt":  true,
	"dat":  true,
	"lc":   true,
}

// Classify runs the decision chain over one candidate. Each step
// short-circuits; the filename denylist wins over everything after it.
func (f *Filter) Classify(path string, size int64) Result {
	if size < 0 {
		info, err := os.Stat(path)
		if err != nil {
			return rejected("missing")
		}
		size = info.Size()
	}
	if size == 0 {
		return rejected("empty")
	}
	if f.maxSize > 0 && size > f.maxSize {
		return rejected("too_large")
	}

	name := strings.ToLower(lastSegment(path))
	if !scriptExtensions[filesystem.GetExtension(name)] && !strings.HasSuffix(name, ".lua.cache") {
		return rejected("bad_extension")
	}

	for _, kw := range f.set.Deny {
		if strings.Contains(name, kw) {
			return rejected("denied:" + kw)
		}
	}

	for _, kw := range f.set.Allow {
		if strings.Contains(name, kw) {
			return accepted("allowed:" + kw)
		}
	}

	dir := strings.ToLower(filesystem.NormalizeSlashes(path))
	for _, root := range f.set.ContentRoots {
		if strings.Contains(dir, root) {
			return accepted("content_root:" + root)
		}
	}

	// Large files with no filename signal earn a bounded content sniff;
	// small ones are cheap enough to risk a false positive.
	if f.sniffThreshold > 0 && size >= f.sniffThreshold {
		return f.sniff(path)
	}
	return accepted("small_default")
}

// sniff reads a bounded prefix and looks for weapon-definition needles,
// first as raw bytes, then in the permissively decoded text.
func (f *Filter) sniff(path string) Result {
	prefix, err := filesystem.ReadCapped(path, sniffPrefixSize)
	if err != nil {
		return rejected("unreadable")
	}

	for _, needle := range f.set.BinaryNeedles {
		if bytes.Contains(prefix, []byte(needle)) {
			return accepted("binary_needle:" + needle)
		}
	}

	text := filesystem.DecodePermissive(prefix)
	for _, needle := range f.set.TextNeedles {
		if strings.Contains(text, needle) {
			return accepted("text_needle:" + needle)
		}
	}

	return rejected("no_indicators")
}

func lastSegment(path string) string {
	normalized := filesystem.NormalizeSlashes(path)
	if idx := strings.LastIndexByte(normalized, '/'); idx >= 0 {
		return normalized[idx+1:]
	}
	return normalized
}
