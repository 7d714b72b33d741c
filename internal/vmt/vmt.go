// Package vmt writes Source engine material definitions for textures the
// scan discovered.
package vmt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Kind labels which template a generated material used.
type Kind string

const (
	KindWeapon      Kind = "weapon"
	KindProp        Kind = "prop"
	KindNormal      Kind = "normal"
	KindTransparent Kind = "transparent"
	KindDefault     Kind = "default"
)

var weaponPathHints = []string{
	"/weapons/", "models/weapons", "/w_", "/v_", "/c_",
	"weapon_", "models/v_", "models/w_", "models/c_",
}

// ColorRule tints weapon materials whose path matches one of its patterns.
type ColorRule struct {
	Name     string   `yaml:"name"`
	Enabled  bool     `yaml:"enabled"`
	Patterns []string `yaml:"patterns"`
	Color    string   `yaml:"color"`
	Glow     string   `yaml:"glow"`
}

// Options control template selection and output behavior.
type Options struct {
	WeaponColors []ColorRule
	PropPatterns []string
	PropAlpha    float64
	SkipPatterns []string
	DefaultAlpha float64

	// ForceRegenerate overwrites materials that already exist on disk.
	// Off by default so hand-tuned files survive a rescan.
	ForceRegenerate bool
}

// Generator builds VMT content and writes material trees.
type Generator struct {
	opts   Options
	logger *zap.Logger
}

// NewGenerator returns a Generator; zero-valued fields in opts fall back to
// the stock tuning.
func NewGenerator(opts Options, logger *zap.Logger) *Generator {
	if opts.PropAlpha == 0 {
		opts.PropAlpha = 0.9
	}
	if opts.DefaultAlpha == 0 {
		opts.DefaultAlpha = 0.45
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{opts: opts, logger: logger}
}

// Content builds the VMT text for a texture path and reports which template
// was chosen. The path may carry a materials/ root and a .vtf extension;
// both are stripped for the $basetexture value.
func (g *Generator) Content(texturePath string) (string, Kind) {
	base := basePath(texturePath)
	lower := strings.ToLower(base)

	if matchesAny(lower, weaponPathHints) {
		color, glow := g.weaponTint(lower)
		content := fmt.Sprintf(`"UnlitGeneric"
{
	"$basetexture"    "%s"
	"$ignorez"        1
	"$vertexcolor"    1
	"$vertexalpha"    1
	"$nolod"          "1"
	"$color2"         "%s"
	"$selfillum"      1
	"$selfillumtint"  "%s"
}
`, base, color, glow)
		return content, KindWeapon
	}

	if len(g.opts.PropPatterns) > 0 && matchesAny(lower, g.opts.PropPatterns) {
		content := fmt.Sprintf(`"LightmappedGeneric"
{
	"$basetexture" "%s"
	"$alpha" "%.2f"
}
`, base, g.opts.PropAlpha)
		return content, KindProp
	}

	if matchesAny(lower, g.opts.SkipPatterns) {
		content := fmt.Sprintf(`"UnlitGeneric"
{
	"$basetexture" "%s"
}
`, base)
		return content, KindNormal
	}

	if strings.Contains(lower, "glass") || strings.Contains(lower, "window") {
		content := fmt.Sprintf(`"UnlitGeneric"
{
	"$basetexture" "%s"
	"$translucent" "1"
	"$alpha" "0.4"
}
`, base)
		return content, KindTransparent
	}

	content := fmt.Sprintf(`"UnlitGeneric"
{
	"$basetexture" "%s"
	"$translucent" "1"
	"$alpha" "%.2f"
}
`, base, g.opts.DefaultAlpha)
	return content, KindDefault
}

// WriteFiles generates one .vmt per texture path under dir, mirroring the
// materials tree. Existing materials are kept unless ForceRegenerate is
// set. Returns the number of files written; per-file failures are logged
// and skipped.
func (g *Generator) WriteFiles(dir string, texturePaths []string) (int, error) {
	if dir == "" {
		return 0, fmt.Errorf("output directory not set")
	}

	written := 0
	for _, tex := range texturePaths {
		rel := basePath(tex) + ".vmt"
		target := filepath.Join(dir, "materials", filepath.FromSlash(rel))

		if !g.opts.ForceRegenerate {
			if _, err := os.Stat(target); err == nil {
				g.logger.Debug("material exists, keeping",
					zap.String("path", target))
				continue
			}
		}

		content, kind := g.Content(tex)

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			g.logger.Warn("create material directory failed",
				zap.String("path", target), zap.Error(err))
			continue
		}
		if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
			g.logger.Warn("write material failed",
				zap.String("path", target), zap.Error(err))
			continue
		}

		g.logger.Debug("wrote material",
			zap.String("path", target), zap.String("kind", string(kind)))
		written++
	}

	return written, nil
}

// weaponTint picks color and glow from the first enabled rule whose
// patterns match; stock tint otherwise.
func (g *Generator) weaponTint(lowerPath string) (color, glow string) {
	color, glow = "[1.2 1.2 1.2]", "[0.3 0.3 0.3]"
	for _, rule := range g.opts.WeaponColors {
		if !rule.Enabled {
			continue
		}
		for _, pattern := range rule.Patterns {
			if strings.Contains(lowerPath, strings.ToLower(pattern)) {
				if rule.Color != "" {
					color = rule.Color
				}
				if rule.Glow != "" {
					glow = rule.Glow
				}
				return color, glow
			}
		}
	}
	return color, glow
}

// basePath strips a materials/ root and a .vtf or .vmt extension.
func basePath(texturePath string) string {
	p := strings.ReplaceAll(texturePath, `\`, "/")
	lower := strings.ToLower(p)
	if strings.HasPrefix(lower, "materials/") {
		p = p[len("materials/"):]
		lower = lower[len("materials/"):]
	}
	if strings.HasSuffix(lower, ".vtf") || strings.HasSuffix(lower, ".vmt") {
		p = p[:len(p)-4]
	}
	return p
}

func matchesAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(s, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
