package catalog

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/desertthunder/mlc/internal/models"
	"github.com/desertthunder/mlc/internal/shared"
	"golang.org/x/text/encoding/htmlindex"
)

// charsetReader decodes XML documents that declare a non UTF-8 encoding.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown encoding %q", shared.ErrUnsupported, label)
	}
	return enc.NewDecoder().Reader(input), nil
}

// pendingTrack accumulates the fields of the <track> element being decoded.
type pendingTrack struct {
	title, artist, album string
	line                 int
}

// ParseXML reads an XML catalog, streaming tokens so large libraries are never held in memory twice.
//
// Every <track> element yields one record when it carries a non-empty <title> or <name> and
// an <artist>; other tracks are skipped with a warning. Field elements outside a <track> are ignored.
// Syntax errors are reported as [shared.ErrMalformedInput] with the document name and line.
func (l *Loader) ParseXML(r io.Reader, name string) ([]models.Track, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	tracks := []models.Track{}
	var current *pendingTrack

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, l.decodeError(dec, name, err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "track":
				line, _ := dec.InputPos()
				current = &pendingTrack{line: line}
			case "title", "name", "artist", "album":
				if current == nil {
					if err := dec.Skip(); err != nil {
						return nil, l.decodeError(dec, name, err)
					}
					continue
				}

				var text string
				if err := dec.DecodeElement(&text, &el); err != nil {
					return nil, l.decodeError(dec, name, err)
				}
				text = strings.TrimSpace(text)

				switch el.Name.Local {
				case "title", "name":
					current.title = text
				case "artist":
					current.artist = text
				case "album":
					current.album = text
				}
			}
		case xml.EndElement:
			if el.Name.Local != "track" || current == nil {
				continue
			}

			if current.title == "" || current.artist == "" {
				l.logger.Warn("skipping track with missing title or artist", "file", name, "line", current.line)
			} else {
				tracks = append(tracks, models.Track{Title: current.title, Artist: current.artist, Album: current.album})
			}
			current = nil
		}
	}

	l.logger.Debug("parsed XML catalog", "file", name, "tracks", len(tracks))
	return tracks, nil
}

func (l *Loader) decodeError(dec *xml.Decoder, name string, err error) error {
	line, _ := dec.InputPos()
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		line = syntaxErr.Line
	}
	l.logger.Error("failed to parse XML catalog", "file", name, "line", line, "error", err)
	return fmt.Errorf("%w: %s line %d: %w", shared.ErrMalformedInput, name, line, err)
}
