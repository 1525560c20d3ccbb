package photo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T, dir, name string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("not a real image"), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestScanDirFiltersAndRecurses(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	writeImage(t, dir, "a.jpg", base)
	writeImage(t, dir, "b.PNG", base)
	writeImage(t, dir, filepath.Join("nested", "c.webp"), base)
	writeImage(t, dir, "notes.txt", base)
	writeImage(t, dir, "raw.cr2", base)

	photos, err := ScanDir(dir)
	require.NoError(t, err)
	require.Len(t, photos, 3)
	for _, p := range photos {
		assert.Equal(t, p.URL, p.ID, "scan uses the path as both ID and URL")
		assert.False(t, p.CreatedAt.IsZero())
	}
}

func TestScanDirOrdersByModTimeThenPath(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	newest := writeImage(t, dir, "a.jpg", base.Add(time.Hour))
	writeImage(t, dir, "z.jpg", base)
	writeImage(t, dir, "m.jpg", base)

	photos, err := ScanDir(dir)
	require.NoError(t, err)
	require.Len(t, photos, 3)
	assert.Equal(t, filepath.Join(dir, "m.jpg"), photos[0].URL)
	assert.Equal(t, filepath.Join(dir, "z.jpg"), photos[1].URL)
	assert.Equal(t, newest, photos[2].URL)
}

func TestScanDirMissing(t *testing.T) {
	_, err := ScanDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestScanDirRejectsFile(t *testing.T) {
	dir := t.TempDir()
	path := writeImage(t, dir, "a.jpg", time.Now())
	_, err := ScanDir(path)
	assert.ErrorContains(t, err, "not a directory")
}
