package extract

import (
	"regexp"
	"strings"
)

var texturePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)materials/([^\s"']+)\.vtf`),
	regexp.MustCompile(`(?i)materials/([^\s"']+)\.vmt`),
	regexp.MustCompile(`(?i)Material\(["'](.*?)["']\)`),
	regexp.MustCompile(`(?i)SetMaterial\(["'](.*?)["']\)`),
	regexp.MustCompile(`(?i)SetSubMaterial\(\d+,\s*["'](.*?)["']\)`),
	regexp.MustCompile(`(?i)["'](materials/.*?)["']`),
	regexp.MustCompile(`(?i)["'](models/.*?/.*?)["']`),
}

var modelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)models/([^\s"']+)\.mdl`),
	regexp.MustCompile(`(?i)Model\(["'](.*?)["']\)`),
	regexp.MustCompile(`(?i)SetModel\(["'](.*?)["']\)`),
	regexp.MustCompile(`(?i)["'](models/.*?\.mdl)["']`),
	regexp.MustCompile(`(?i)SWEP\.ViewModel\s*=\s*["'](.*?)["']`),
	regexp.MustCompile(`(?i)SWEP\.WorldModel\s*=\s*["'](.*?)["']`),
	regexp.MustCompile(`(?i)self\.ViewModel\s*=\s*["'](.*?)["']`),
	regexp.MustCompile(`(?i)self\.WorldModel\s*=\s*["'](.*?)["']`),
}

var modelExtensions = []string{".mdl", ".phy", ".vtx", ".vvd"}

// NormalizeTexturePath canonicalizes a harvested material reference:
// backslashes become forward slashes, paths already under models/ are
// sliced to that root, and anything else gets a materials/ prefix.
func NormalizeTexturePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	path = strings.ReplaceAll(path, `\`, "/")

	if strings.HasPrefix(path, "materials/") || strings.HasPrefix(path, "models/") {
		return path
	}
	if idx := strings.Index(strings.ToLower(path), "models/"); idx >= 0 {
		return path[idx:]
	}
	return "materials/" + path
}

// NormalizeModelPath canonicalizes a harvested model reference: forward
// slashes, a models/ root, and a .mdl extension unless the path already
// carries a model-family extension.
func NormalizeModelPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	path = strings.ReplaceAll(path, `\`, "/")

	if !strings.HasPrefix(path, "models/") {
		path = "models/" + path
	}

	lower := strings.ToLower(path)
	for _, ext := range modelExtensions {
		if strings.HasSuffix(lower, ext) {
			return path
		}
	}
	return path + ".mdl"
}

func harvestTextures(text string, set *pathSet) {
	for _, pattern := range texturePatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			set.add(NormalizeTexturePath(m[1]))
		}
	}
}

func harvestModels(text string, set *pathSet) {
	for _, pattern := range modelPatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			set.add(NormalizeModelPath(m[1]))
		}
	}
}
