package decoder

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gmodtools/swepscan/internal/filesystem"
	"github.com/gmodtools/swepscan/pkg/models"
	"github.com/ulikunitz/xz/lzma"
)

// maxDecompressed caps how much any decompression strategy will inflate a
// single file. Weapon scripts are small; anything near this bound is junk.
const maxDecompressed = 16 * 1024 * 1024

// LZMAStrategy handles the game's compiled Lua cache container: a 4-byte
// checksum header followed by a single raw LZMA stream.
type LZMAStrategy struct{}

// NewLZMAStrategy creates the structured-compression strategy.
func NewLZMAStrategy() *LZMAStrategy {
	return &LZMAStrategy{}
}

// Name returns the strategy tag.
func (s *LZMAStrategy) Name() models.DecodeStrategy {
	return models.StrategyStructuredCompression
}

// Decode strips the header, decompresses, and trims trailing padding.
func (s *LZMAStrategy) Decode(_ context.Context, _ string, raw []byte) (string, error) {
	if len(raw) <= 4 {
		return "", fmt.Errorf("file too short for cache container")
	}

	r, err := lzma.NewReader(bytes.NewReader(raw[4:]))
	if err != nil {
		return "", fmt.Errorf("not an lzma stream: %w", err)
	}

	decompressed, err := io.ReadAll(io.LimitReader(r, maxDecompressed))
	if err != nil {
		return "", fmt.Errorf("lzma decompression failed: %w", err)
	}

	text := strings.TrimRight(filesystem.DecodePermissive(decompressed), "\x00")
	return text, nil
}
