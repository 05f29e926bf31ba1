package gallery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListImagesFiltersAndOrdersNaturally(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"frame_10.jpg", "frame_2.jpg", "frame_1.png", "notes.txt", "classes.txt", "sub"} {
		if name == "sub" {
			require.NoError(t, os.Mkdir(filepath.Join(dir, name), 0o755))
			continue
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	paths, err := ListImages(dir, []string{".jpg", ".png"})
	require.NoError(t, err)

	names := make([]string, len(paths))
	for i, p := range paths {
		assert.True(t, filepath.IsAbs(p))
		names[i] = filepath.Base(p)
	}
	assert.Equal(t, []string{"frame_1.png", "frame_2.jpg", "frame_10.jpg"}, names)
}

func TestListImagesExtensionsAreCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shot.JPG"), []byte("x"), 0o644))

	paths, err := ListImages(dir, []string{".jpg"})
	require.NoError(t, err)
	require.Len(t, paths, 1)
}

func TestListImagesMissingDirFails(t *testing.T) {
	_, err := ListImages(filepath.Join(t.TempDir(), "missing"), []string{".jpg"})
	assert.Error(t, err)
}
