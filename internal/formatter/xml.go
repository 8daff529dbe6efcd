package formatter

import (
	"encoding/xml"
	"fmt"

	"github.com/desertthunder/mlc/internal/models"
	"github.com/desertthunder/mlc/internal/shared"
)

type songXML struct {
	Title      string   `xml:"title"`
	Artist     string   `xml:"artist"`
	Album      string   `xml:"album,omitempty"`
	MatchScore *float64 `xml:"matchScore,omitempty"`
}

// songsXML is a single result set; songs are not wrapped in an extra element.
type songsXML struct {
	XMLName xml.Name  `xml:"songs"`
	Songs   []songXML `xml:"song"`
}

type songListXML struct {
	Songs []songXML `xml:"song"`
}

type comparisonXML struct {
	XMLName     xml.Name    `xml:"comparisonResult"`
	CommonSongs songListXML `xml:"commonSongs"`
	UniqueSongs songListXML `xml:"uniqueSongs"`
}

func toSongs(tracks []models.Track) []songXML {
	songs := make([]songXML, len(tracks))
	for i, t := range tracks {
		songs[i] = songXML{Title: t.Title, Artist: t.Artist, Album: t.Album}
	}
	return songs
}

func toScoredSongs(scored []models.ScoredTrack) []songXML {
	songs := make([]songXML, len(scored))
	for i, s := range scored {
		songs[i] = songXML{Title: s.Track.Title, Artist: s.Track.Artist, Album: s.Track.Album, MatchScore: s.MatchScore}
	}
	return songs
}

// marshalXML renders v as an indented document with an XML declaration.
func marshalXML(v any) ([]byte, error) {
	data, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to render XML: %w", shared.ErrSerialization, err)
	}
	return append([]byte(xml.Header), append(data, '\n')...), nil
}

// ExportToXML renders a result set as a <songs> document with one <song> element per track.
func ExportToXML(tracks []models.Track) ([]byte, error) {
	return marshalXML(songsXML{Songs: toSongs(tracks)})
}

// ExportComparisonToXML renders the common and local-only sets under <commonSongs> and <uniqueSongs>.
func ExportComparisonToXML(common, localOnly []models.Track) ([]byte, error) {
	return marshalXML(comparisonXML{
		CommonSongs: songListXML{Songs: toSongs(common)},
		UniqueSongs: songListXML{Songs: toSongs(localOnly)},
	})
}

// ExportScoredToXML renders a best-effort missing report; each <song> carries its <matchScore>.
func ExportScoredToXML(scored []models.ScoredTrack) ([]byte, error) {
	return marshalXML(songsXML{Songs: toScoredSongs(scored)})
}
