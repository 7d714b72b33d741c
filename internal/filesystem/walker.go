package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gmodtools/swepscan/pkg/models"
	"go.uber.org/zap"
)

// Walker enumerates candidate files under a root in deterministic order.
type Walker struct {
	logger  *zap.Logger
	exclude map[string]bool
}

// NewWalker creates a new filesystem walker. Excluded directory names are
// skipped wherever they appear in the tree.
func NewWalker(logger *zap.Logger, exclude []string) *Walker {
	excludeMap := make(map[string]bool)
	for _, dir := range exclude {
		excludeMap[dir] = true
	}

	return &Walker{
		logger:  logger,
		exclude: excludeMap,
	}
}

// Walk recursively walks the directory tree, invoking callback for every
// regular file. WalkDir visits entries in lexical order, which gives the
// stable enumeration order the orchestrator relies on. Access errors are
// logged and skipped, never fatal.
func (w *Walker) Walk(root string, callback func(models.CandidateFile) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("Error accessing path", zap.String("path", path), zap.Error(err))
			return nil
		}

		if d.IsDir() {
			if w.exclude[d.Name()] {
				w.logger.Debug("Skipping excluded directory", zap.String("path", path))
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			w.logger.Warn("Error reading file info", zap.String("path", path), zap.Error(err))
			return nil
		}

		return callback(models.CandidateFile{
			Path: path,
			Size: info.Size(),
			Kind: models.DetectKind(path),
		})
	})
}

// ListDirs returns the immediate subdirectories of root in lexical order.
// A missing root yields an empty list.
func ListDirs(root string) []string {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(root, e.Name()))
		}
	}
	return dirs
}

// GetExtension returns the file extension without the leading dot.
func GetExtension(path string) string {
	ext := filepath.Ext(path)
	if len(ext) > 0 && ext[0] == '.' {
		return ext[1:]
	}
	return ext
}

// NormalizeSlashes converts backslash separators to forward slashes, the
// form used by engine asset paths.
func NormalizeSlashes(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}
