package decoder

import (
	"bytes"
	"compress/zlib"
	"context"
	"fmt"
	"io"

	"github.com/gmodtools/swepscan/internal/filesystem"
	"github.com/gmodtools/swepscan/pkg/models"
)

// zlibMagic is the default-compression zlib stream header.
var zlibMagic = []byte{0x78, 0x9c}

// ZlibScanStrategy searches the raw bytes for an embedded zlib stream and
// decompresses from its offset.
type ZlibScanStrategy struct{}

// NewZlibScanStrategy creates the embedded-stream-scan strategy.
func NewZlibScanStrategy() *ZlibScanStrategy {
	return &ZlibScanStrategy{}
}

// Name returns the strategy tag.
func (s *ZlibScanStrategy) Name() models.DecodeStrategy {
	return models.StrategyStreamScan
}

// Decode finds the stream marker and inflates whatever follows it.
func (s *ZlibScanStrategy) Decode(_ context.Context, _ string, raw []byte) (string, error) {
	offset := bytes.Index(raw, zlibMagic)
	if offset < 0 {
		return "", fmt.Errorf("no zlib stream marker found")
	}

	r, err := zlib.NewReader(bytes.NewReader(raw[offset:]))
	if err != nil {
		return "", fmt.Errorf("zlib open failed: %w", err)
	}
	defer r.Close()

	decompressed, err := io.ReadAll(io.LimitReader(r, maxDecompressed))
	if err != nil && len(decompressed) == 0 {
		return "", fmt.Errorf("zlib decompression failed: %w", err)
	}

	return filesystem.DecodePermissive(decompressed), nil
}
