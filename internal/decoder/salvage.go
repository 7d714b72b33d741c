package decoder

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/gmodtools/swepscan/internal/filesystem"
	"github.com/gmodtools/swepscan/pkg/models"
)

// salvageWindow bounds how much decoded text the salvage patterns scan.
const salvageWindow = 100 * 1024

// salvagePatterns match script fragments worth keeping from otherwise
// unreadable binary: property assignments, function definitions, common
// builtin calls, and quoted asset paths.
var salvagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`SWEP\.[\w_]+\s*=[^\r\n]*`),
	regexp.MustCompile(`function\s+[\w_:.]+\s*\([^)]*\)`),
	regexp.MustCompile(`local\s+[\w_]+\s*=[^\r\n]*`),
	regexp.MustCompile(`AddCSLuaFile\([^)]*\)`),
	regexp.MustCompile(`include\([^)]*\)`),
	regexp.MustCompile(`resource\.AddFile\([^)]*\)`),
	regexp.MustCompile(`"models/[^"]+\.mdl"`),
	regexp.MustCompile(`"materials/[^"]+\.\w+"`),
}

// SalvageStrategy is the last resort: extract only script-like substrings
// from the permissively decoded bytes and join them with newlines.
type SalvageStrategy struct{}

// NewSalvageStrategy creates the string-salvage strategy.
func NewSalvageStrategy() *SalvageStrategy {
	return &SalvageStrategy{}
}

// Name returns the strategy tag.
func (s *SalvageStrategy) Name() models.DecodeStrategy {
	return models.StrategyStringSalvage
}

// Decode collects pattern matches over a bounded window of the input.
func (s *SalvageStrategy) Decode(ctx context.Context, _ string, raw []byte) (string, error) {
	text := filesystem.DecodePermissive(raw)
	if len(text) > salvageWindow {
		text = text[:salvageWindow]
	}

	var fragments []string
	for _, p := range salvagePatterns {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		fragments = append(fragments, p.FindAllString(text, -1)...)
	}

	if len(fragments) == 0 {
		return "", fmt.Errorf("no script fragments found")
	}
	return strings.Join(fragments, "\n"), nil
}
