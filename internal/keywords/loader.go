package keywords

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Loader loads keyword overrides from YAML files
type Loader struct {
	patternsPath string
}

// NewLoader creates a new keyword loader
func NewLoader(patternsPath string) *Loader {
	return &Loader{
		patternsPath: patternsPath,
	}
}

// overlayFile mirrors Set with pointer slices so that an absent key leaves
// the default list untouched while an empty list clears it.
type overlayFile struct {
	Deny          *[]string `yaml:"deny"`
	Allow         *[]string `yaml:"allow"`
	ContentRoots  *[]string `yaml:"content_roots"`
	TextNeedles   *[]string `yaml:"text_needles"`
	BinaryNeedles *[]string `yaml:"binary_needles"`
}

// Load returns the default set overlaid with any YAML files found under the
// patterns path. A missing path yields the defaults unchanged.
func (l *Loader) Load() (*Set, error) {
	set := DefaultSet()

	if l.patternsPath == "" {
		return set, nil
	}
	if _, err := os.Stat(l.patternsPath); os.IsNotExist(err) {
		return set, nil
	}

	err := filepath.Walk(l.patternsPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || (filepath.Ext(path) != ".yaml" && filepath.Ext(path) != ".yml") {
			return nil
		}

		if err := l.loadFile(path, set); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}

		return nil
	})

	return set, err
}

// loadFile overlays a single YAML file onto the set
func (l *Loader) loadFile(path string, set *Set) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var overlay overlayFile
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return err
	}

	if overlay.Deny != nil {
		set.Deny = *overlay.Deny
	}
	if overlay.Allow != nil {
		set.Allow = *overlay.Allow
	}
	if overlay.ContentRoots != nil {
		set.ContentRoots = *overlay.ContentRoots
	}
	if overlay.TextNeedles != nil {
		set.TextNeedles = *overlay.TextNeedles
	}
	if overlay.BinaryNeedles != nil {
		set.BinaryNeedles = *overlay.BinaryNeedles
	}

	return nil
}
