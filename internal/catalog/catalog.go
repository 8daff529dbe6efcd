package catalog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mlc/internal/models"
	"github.com/desertthunder/mlc/internal/shared"
)

// Loader reads catalogs from files and folders, reporting skipped records to its logger.
type Loader struct {
	logger *log.Logger
}

// NewLoader creates a Loader; a nil logger discards all output.
func NewLoader(logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{logger: logger}
}

var std = NewLoader(nil)

// ParseCSV reads a CSV catalog using a silent [Loader].
func ParseCSV(r io.Reader) ([]models.Track, error) { return std.ParseCSV(r) }

// ParseXML reads an XML catalog using a silent [Loader].
func ParseXML(r io.Reader, name string) ([]models.Track, error) { return std.ParseXML(r, name) }

// ScanFolder lists a music folder using a silent [Loader].
func ScanFolder(dir string) ([]models.Track, error) { return std.ScanFolder(dir) }

// LoadFile loads a catalog from path using a silent [Loader].
func LoadFile(path string) ([]models.Track, error) { return std.LoadFile(path) }

// LoadFile loads the catalog at path.
//
// Directories are scanned, files ending in .xml are parsed as XML and anything else as CSV.
func (l *Loader) LoadFile(path string) ([]models.Track, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: catalog path", shared.ErrMissingArgument)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	if info.IsDir() {
		return l.ScanFolder(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	var tracks []models.Track
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		tracks, err = l.ParseXML(f, filepath.Base(path))
	default:
		tracks, err = l.ParseCSV(f)
	}
	if err != nil {
		return nil, err
	}

	l.logger.Debug("loaded catalog", "path", path, "tracks", len(tracks))
	return tracks, nil
}
