// Package assets resolves photo identifiers to image files. An index over
// every source's photo directory is built once at startup and treated as
// read-only; lookups use the exact (directory, identifier) pair rather
// than substring matching, so unrelated directories sharing a suffix can
// never shadow each other.
package assets

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"taipamap/pkg/model"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type key struct {
	dir   string
	photo string
}

// Index maps (photo directory, photo identifier) pairs to image files.
type Index struct {
	dataDir string
	byKey   map[key]string
}

// Build indexes every image under every source's photo directory. An
// unreadable directory contributes no entries; misses degrade to the
// constructed-path fallback at resolve time.
func Build(dataDir string, sources []model.Source) *Index {
	ix := &Index{
		dataDir: dataDir,
		byKey:   make(map[key]string),
	}

	seen := make(map[string]bool)
	for _, src := range sources {
		if src.PhotoDir == "" || seen[src.PhotoDir] {
			continue
		}
		seen[src.PhotoDir] = true
		ix.indexDir(src.PhotoDir)
	}

	slog.Info("Photo index built", "dirs", len(seen), "photos", len(ix.byKey))
	return ix
}

func (ix *Index) indexDir(photoDir string) {
	abs := filepath.Join(ix.dataDir, photoDir)
	entries, err := os.ReadDir(abs)
	if err != nil {
		slog.Warn("Failed to read photo directory", "dir", abs, "error", err)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if !imageExtensions[ext] {
			continue
		}
		id := strings.TrimSuffix(name, filepath.Ext(name))
		k := key{dir: photoDir, photo: id}
		// First file wins when an identifier exists in several formats.
		if _, ok := ix.byKey[k]; !ok {
			ix.byKey[k] = filepath.Join(abs, name)
		}
	}
}

// Resolve returns the indexed image path for the (directory, identifier)
// pair. On a miss it returns a constructed dir/name.jpg path and false,
// deferring failure to the rendering layer.
func (ix *Index) Resolve(photoDir, photo string) (string, bool) {
	if path, ok := ix.byKey[key{dir: photoDir, photo: photo}]; ok {
		return path, true
	}
	return filepath.Join(ix.dataDir, photoDir, photo+".jpg"), false
}

// Len returns the number of indexed photos.
func (ix *Index) Len() int {
	return len(ix.byKey)
}
