package gallery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wb-go/wbf/zlog"

	"github.com/velikanov/thumbgrid/internal/helpers"
)

// ListImages returns the absolute paths of image files directly under dir,
// filtered by extension and ordered naturally, so frame_2 sorts before
// frame_10 the way a labeling session expects.
func ListImages(dir string, extensions []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read images dir %s: %w", dir, err)
	}

	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = true
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !allowed[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		abs, err := filepath.Abs(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		paths = append(paths, abs)
	}

	sort.Slice(paths, func(i, j int) bool {
		return helpers.NaturalLess(filepath.Base(paths[i]), filepath.Base(paths[j]))
	})

	zlog.Logger.Info().Str("dir", dir).Int("images", len(paths)).Msg("images listed")
	return paths, nil
}
