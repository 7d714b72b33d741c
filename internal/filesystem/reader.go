package filesystem

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// ReadCapped reads at most limit bytes from the start of a file.
func ReadCapped(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// ReadText reads a whole file and decodes it permissively: invalid bytes are
// dropped rather than surfaced as errors, matching how partially-binary
// script files are handled throughout the pipeline.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return DecodePermissive(data), nil
}

// DecodePermissive converts raw bytes to a string, keeping printable ASCII,
// tabs, newlines and valid multibyte UTF-8 sequences. Invalid bytes and
// other control characters are dropped, so NUL-heavy binary input shrinks
// to its embedded text while non-English names survive intact.
func DecodePermissive(data []byte) string {
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); {
		b := data[i]
		if b == '\n' || b == '\r' || b == '\t' || (b >= 0x20 && b < 0x7f) {
			out = append(out, b)
			i++
			continue
		}
		if b >= utf8.RuneSelf {
			r, size := utf8.DecodeRune(data[i:])
			if r != utf8.RuneError || size > 1 {
				out = append(out, data[i:i+size]...)
				i += size
				continue
			}
		}
		i++
	}
	return string(out)
}
