package decoder

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"

	"github.com/gmodtools/swepscan/internal/filesystem"
	"github.com/gmodtools/swepscan/pkg/models"
)

// maxBlobCandidates bounds how many encoded runs are attempted per file.
const maxBlobCandidates = 5

// base64Run matches long runs of base64-alphabet characters.
var base64Run = regexp.MustCompile(`[A-Za-z0-9+/=]{50,}`)

// Base64ScanStrategy looks for long encoded-alphabet runs in the
// text-decoded bytes and tries each as a base64 blob.
type Base64ScanStrategy struct {
	floor int
}

// NewBase64ScanStrategy creates the encoded-blob-scan strategy. floor is the
// minimum decoded blob size worth accepting.
func NewBase64ScanStrategy(floor int) *Base64ScanStrategy {
	return &Base64ScanStrategy{floor: floor}
}

// Name returns the strategy tag.
func (s *Base64ScanStrategy) Name() models.DecodeStrategy {
	return models.StrategyEncodedBlobScan
}

// Decode tries the first few candidate runs and accepts the first blob that
// decodes to a plausible size.
func (s *Base64ScanStrategy) Decode(ctx context.Context, _ string, raw []byte) (string, error) {
	text := filesystem.DecodePermissive(raw)

	matches := base64Run.FindAllString(text, maxBlobCandidates)
	for _, match := range matches {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		// Runs clipped mid-quantum cannot decode; trim to a whole one.
		if rem := len(match) % 4; rem != 0 {
			match = match[:len(match)-rem]
		}

		decoded, err := base64.StdEncoding.DecodeString(match)
		if err != nil || len(decoded) < s.floor {
			continue
		}
		return filesystem.DecodePermissive(decoded), nil
	}

	return "", fmt.Errorf("no decodable base64 runs")
}
