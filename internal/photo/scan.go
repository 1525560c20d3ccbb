package photo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// image extensions the loader can decode (see texture.DecodePhoto).
var scanExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".tga":  true,
	".gif":  true,
}

// ScanDir walks a directory tree and returns a Photo per decodable image
// file import order. The file path becomes the URL, the modification time
// becomes CreatedAt, so repeated scans of the same directory produce the
// same slot layout.
func ScanDir(dir string) ([]Photo, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("photo: scan %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("photo: scan %s: not a directory", dir)
	}

	var photos []Photo
	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if !scanExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return nil
		}
		photos = append(photos, Photo{
			ID:        path,
			URL:       path,
			CreatedAt: fi.ModTime(),
		})
		return nil
	})

	// WalkDir is already lexical, but mtimes decide slot order; keep the
	// scan output in assignment order so callers see what the engine sees.
	sort.SliceStable(photos, func(i, j int) bool {
		if !photos[i].CreatedAt.Equal(photos[j].CreatedAt) {
			return photos[i].CreatedAt.Before(photos[j].CreatedAt)
		}
		return photos[i].ID < photos[j].ID
	})
	return photos, nil
}
