package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/mlc/internal/models"
	"github.com/desertthunder/mlc/internal/shared"
)

// ScanFolder lists the regular files directly inside dir, one record per file.
//
// The title is the file name without its final extension and the artist is left empty.
// Subdirectories are not descended into. Records come back in directory order (sorted by name).
func (l *Loader) ScanFolder(dir string) ([]models.Track, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", shared.ErrInvalidScan, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", shared.ErrInvalidScan, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", shared.ErrInvalidScan, dir, err)
	}

	tracks := []models.Track{}
	for _, entry := range entries {
		if !isFile(dir, entry) {
			continue
		}
		tracks = append(tracks, models.Track{Title: trimExtension(entry.Name())})
	}

	l.logger.Debug("scanned folder", "dir", dir, "tracks", len(tracks))
	return tracks, nil
}

// isFile reports whether entry is a regular file, following symlinks.
func isFile(dir string, entry os.DirEntry) bool {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.Type().IsRegular()
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.Mode().IsRegular()
}

// trimExtension removes the final extension from name; dotfiles keep their full name.
func trimExtension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return name
	}
	return strings.TrimSuffix(name, ext)
}
