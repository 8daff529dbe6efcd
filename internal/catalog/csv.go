package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/desertthunder/mlc/internal/models"
	"github.com/desertthunder/mlc/internal/shared"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// canonical header mapping
var headerAliases = map[string]string{
	"title":       "title",
	"name":        "title",
	"track":       "title",
	"track name":  "title",
	"track_name":  "title",
	"track title": "title",
	"track_title": "title",
	"song":        "title",

	"artist":         "artist",
	"artists":        "artist",
	"artist name":    "artist",
	"artist name(s)": "artist",
	"artist_name":    "artist",
	"album artist":   "artist",
	"performer":      "artist",
	"primary artist": "artist",

	"album":       "album",
	"album name":  "album",
	"album_name":  "album",
	"album title": "album",
	"album_title": "album",
}

// columns holds the field index of each known column, -1 when absent.
type columns struct {
	title, artist, album int
}

var positional = columns{title: 0, artist: 1, album: 2}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// mapColumns resolves header names to field indexes. The first occurrence of a column wins.
//
// Headers without a recognizable title column fall back to positional columns.
func mapColumns(header []string) columns {
	cols := columns{title: -1, artist: -1, album: -1}
	for i, h := range header {
		switch headerAliases[normalizeHeader(h)] {
		case "title":
			if cols.title < 0 {
				cols.title = i
			}
		case "artist":
			if cols.artist < 0 {
				cols.artist = i
			}
		case "album":
			if cols.album < 0 {
				cols.album = i
			}
		}
	}

	if cols.title < 0 {
		return positional
	}
	return cols
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// ParseCSV reads a CSV catalog. The first row is always treated as the header.
//
// A leading byte order mark is stripped (UTF-16 input with a BOM is transcoded).
// Rows that are missing the title or artist column, or whose title is empty, are skipped.
func (l *Loader) ParseCSV(r io.Reader) ([]models.Track, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	tracks := []models.Track{}

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return tracks, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV header: %w", shared.ErrMalformedInput, err)
	}

	cols := mapColumns(header)
	l.logger.Debug("mapped CSV columns", "title", cols.title, "artist", cols.artist, "album", cols.album)

	required := max(cols.title, cols.artist)
	skipped := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read CSV record: %w", shared.ErrMalformedInput, err)
		}

		if len(record) <= required {
			skipped++
			continue
		}

		t := models.Track{
			Title:  field(record, cols.title),
			Artist: field(record, cols.artist),
			Album:  field(record, cols.album),
		}
		if t.Title == "" {
			skipped++
			continue
		}

		tracks = append(tracks, t)
	}

	if skipped > 0 {
		l.logger.Warn("skipped incomplete CSV rows", "count", skipped)
	}
	return tracks, nil
}
