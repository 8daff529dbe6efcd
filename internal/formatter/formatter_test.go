package formatter

import (
	"encoding/xml"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/mlc/internal/models"
	"github.com/desertthunder/mlc/internal/shared"
	th "github.com/desertthunder/mlc/internal/testing"
)

func scored(title, artist string, score float64) models.ScoredTrack {
	return models.ScoredTrack{Track: models.Track{Title: title, Artist: artist}, MatchScore: &score}
}

func TestExportToCSV(t *testing.T) {
	t.Run("empty result set", func(t *testing.T) {
		got := string(ExportToCSV(nil))
		want := "\ufeffTitle,Artist,Album\n"
		if got != want {
			t.Errorf("ExportToCSV(nil) = %q, want %q", got, want)
		}
	})

	t.Run("rows are quoted", func(t *testing.T) {
		got := string(ExportToCSV(th.ReferenceTracks()))
		want := "\ufeffTitle,Artist,Album\n" +
			`"Song 1","Artist 1","Album 1"` + "\n" +
			`"Song 2","Artist 2","Album 2"` + "\n"
		if got != want {
			t.Errorf("ExportToCSV() = %q, want %q", got, want)
		}
	})

	t.Run("embedded quotes are doubled", func(t *testing.T) {
		tracks := []models.Track{{Title: `Say "Hello"`, Artist: "Comma, Inc"}}
		got := string(ExportToCSV(tracks))
		if !strings.Contains(got, `"Say ""Hello""","Comma, Inc",""`) {
			t.Errorf("CSV row not escaped, got: %s", got)
		}
	})

	t.Run("starts with BOM", func(t *testing.T) {
		data := ExportToCSV(nil)
		if len(data) < 3 || data[0] != 0xEF || data[1] != 0xBB || data[2] != 0xBF {
			t.Errorf("expected UTF-8 BOM prefix, got % x", data[:3])
		}
	})
}

func TestExportComparisonToCSV(t *testing.T) {
	t.Run("both sections", func(t *testing.T) {
		common := []models.Track{{Title: "Song 1", Artist: "Artist 1"}}
		localOnly := []models.Track{{Title: "Song 3", Artist: "Artist 3", Album: "Album 3"}}

		got := string(ExportComparisonToCSV(common, localOnly))
		want := "\ufeff--- Common Songs ---\n" +
			`"Title","Artist","Album"` + "\n" +
			`"Song 1","Artist 1",""` + "\n" +
			"\n" +
			"--- Local Only Songs ---\n" +
			`"Title","Artist","Album"` + "\n" +
			`"Song 3","Artist 3","Album 3"` + "\n"
		if got != want {
			t.Errorf("ExportComparisonToCSV() = %q, want %q", got, want)
		}
	})

	t.Run("empty sections keep banners", func(t *testing.T) {
		got := string(ExportComparisonToCSV(nil, nil))
		if !strings.Contains(got, CommonBanner) || !strings.Contains(got, LocalOnlyBanner) {
			t.Errorf("missing banners, got: %q", got)
		}
		if strings.Count(got, `"Title","Artist","Album"`) != 2 {
			t.Errorf("expected two headers, got: %q", got)
		}
	})
}

func TestExportScoredToCSV(t *testing.T) {
	got := string(ExportScoredToCSV([]models.ScoredTrack{scored("Song 2", "Artist 2", 0.5)}))
	want := "\ufeffTitle,Artist,Album,Match Score\n" + `"Song 2","Artist 2","","0.5000"` + "\n"
	if got != want {
		t.Errorf("ExportScoredToCSV() = %q, want %q", got, want)
	}
}

func TestExportToXML(t *testing.T) {
	t.Run("single set", func(t *testing.T) {
		tracks := []models.Track{
			{Title: "Song 1", Artist: "Artist 1", Album: "Album 1"},
			{Title: "Song 3", Artist: "Artist 3"},
		}

		data, err := ExportToXML(tracks)
		if err != nil {
			t.Fatalf("ExportToXML failed: %v", err)
		}

		want := xml.Header +
			"<songs>\n" +
			"  <song>\n" +
			"    <title>Song 1</title>\n" +
			"    <artist>Artist 1</artist>\n" +
			"    <album>Album 1</album>\n" +
			"  </song>\n" +
			"  <song>\n" +
			"    <title>Song 3</title>\n" +
			"    <artist>Artist 3</artist>\n" +
			"  </song>\n" +
			"</songs>\n"
		if string(data) != want {
			t.Errorf("ExportToXML() = %s, want %s", data, want)
		}
	})

	t.Run("escapes markup", func(t *testing.T) {
		data, err := ExportToXML([]models.Track{{Title: "Rock & Roll", Artist: "<Unknown>"}})
		if err != nil {
			t.Fatalf("ExportToXML failed: %v", err)
		}
		output := string(data)
		if !strings.Contains(output, "Rock &amp; Roll") || !strings.Contains(output, "&lt;Unknown&gt;") {
			t.Errorf("expected escaped markup, got: %s", output)
		}
	})

	t.Run("round trips through decoder", func(t *testing.T) {
		data, err := ExportToXML(th.ReferenceTracks())
		if err != nil {
			t.Fatalf("ExportToXML failed: %v", err)
		}

		var decoded songsXML
		if err := xml.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("output is not well-formed: %v", err)
		}
		if len(decoded.Songs) != 2 || decoded.Songs[1].Title != "Song 2" {
			t.Errorf("unexpected decoded songs: %+v", decoded.Songs)
		}
	})
}

func TestExportComparisonToXML(t *testing.T) {
	common := []models.Track{{Title: "Song 1", Artist: "Artist 1"}}
	localOnly := []models.Track{{Title: "Song 3", Artist: "Artist 3"}}

	data, err := ExportComparisonToXML(common, localOnly)
	if err != nil {
		t.Fatalf("ExportComparisonToXML failed: %v", err)
	}

	output := string(data)
	for _, want := range []string{"<comparisonResult>", "  <commonSongs>", "    <song>", "  <uniqueSongs>", "<title>Song 3</title>"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}

	var decoded comparisonXML
	if err := xml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not well-formed: %v", err)
	}
	if len(decoded.CommonSongs.Songs) != 1 || len(decoded.UniqueSongs.Songs) != 1 {
		t.Errorf("unexpected decoded result: %+v", decoded)
	}
}

func TestExportScoredToXML(t *testing.T) {
	data, err := ExportScoredToXML([]models.ScoredTrack{scored("Song 2", "Artist 2", 0.25)})
	if err != nil {
		t.Fatalf("ExportScoredToXML failed: %v", err)
	}
	if !strings.Contains(string(data), "<matchScore>0.25</matchScore>") {
		t.Errorf("expected match score element, got: %s", data)
	}

	plain, err := ExportToXML([]models.Track{{Title: "Song 2", Artist: "Artist 2"}})
	if err != nil {
		t.Fatalf("ExportToXML failed: %v", err)
	}
	if strings.Contains(string(plain), "matchScore") {
		t.Errorf("unscored export should not carry match scores, got: %s", plain)
	}
}

func TestMarshalXMLError(t *testing.T) {
	_, err := marshalXML(make(chan int))
	if err == nil {
		t.Fatal("expected error for unsupported value")
	}
	if !errors.Is(err, shared.ErrSerialization) {
		t.Errorf("expected ErrSerialization, got %v", err)
	}
	var unsupported *xml.UnsupportedTypeError
	if !errors.As(err, &unsupported) {
		t.Errorf("expected cause to be preserved, got %v", err)
	}
}

func TestHumanReadable(t *testing.T) {
	tracks := th.ReferenceTracks()

	t.Run("ExportToMarkdown", func(t *testing.T) {
		output := string(ExportToMarkdown("Reference Only", tracks))
		for _, want := range []string{"# Reference Only", "**Tracks**: 2", "1. Artist 1 - Song 1 (Album 1)", "2. Artist 2 - Song 2 (Album 2)"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected %q in output, got: %s", want, output)
			}
		}
	})

	t.Run("ExportComparisonToMarkdown", func(t *testing.T) {
		output := string(ExportComparisonToMarkdown(tracks[:1], tracks[1:]))
		for _, want := range []string{"## Common Songs", "## Local Only Songs", "**Common**: 1", "1. Artist 2 - Song 2"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected %q in output, got: %s", want, output)
			}
		}
	})

	t.Run("ExportScoredToMarkdown", func(t *testing.T) {
		output := string(ExportScoredToMarkdown([]models.ScoredTrack{scored("Song 2", "Artist 2", 0.5)}))
		if !strings.Contains(output, "1. Artist 2 - Song 2 [50.0%]") {
			t.Errorf("unexpected output: %s", output)
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		output := string(ExportToText("Common", tracks))
		if !strings.HasPrefix(output, "Common\nTracks: 2\n\n") {
			t.Errorf("unexpected heading: %s", output)
		}
		if !strings.Contains(output, "2. Artist 2 - Song 2\n") {
			t.Errorf("missing track line: %s", output)
		}
	})

	t.Run("folder scan records without artist", func(t *testing.T) {
		output := string(ExportToText("Scan", []models.Track{{Title: "demo"}}))
		if !strings.Contains(output, "1. demo\n") {
			t.Errorf("unexpected line: %s", output)
		}
	})

	t.Run("ExportScoredToText", func(t *testing.T) {
		output := string(ExportScoredToText([]models.ScoredTrack{scored("Song 2", "Artist 2", 0.12345)}))
		if !strings.Contains(output, "1. Artist 2 - Song 2 (score 0.1235)") {
			t.Errorf("unexpected output: %s", output)
		}
	})
}

func TestRender(t *testing.T) {
	tracks := th.ReferenceTracks()

	for _, format := range []string{FormatCSV, FormatXML, FormatMarkdown, FormatText} {
		t.Run(format, func(t *testing.T) {
			if data, err := Render(format, "Set", tracks); err != nil || len(data) == 0 {
				t.Errorf("Render(%q) = %d bytes, %v", format, len(data), err)
			}
			if data, err := RenderComparison(format, tracks, nil); err != nil || len(data) == 0 {
				t.Errorf("RenderComparison(%q) = %d bytes, %v", format, len(data), err)
			}
			if data, err := RenderScored(format, nil); err != nil || len(data) == 0 {
				t.Errorf("RenderScored(%q) = %d bytes, %v", format, len(data), err)
			}
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		_, err := Render("yaml", "Set", tracks)
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
		if _, err := RenderComparison("yaml", nil, nil); err == nil {
			t.Error("expected error for unknown comparison format")
		}
		if _, err := RenderScored("yaml", nil); err == nil {
			t.Error("expected error for unknown scored format")
		}
	})
}

func TestExtension(t *testing.T) {
	tc := []struct {
		format string
		want   string
	}{
		{FormatCSV, ".csv"},
		{FormatXML, ".xml"},
		{FormatMarkdown, ".md"},
		{FormatText, ".txt"},
	}

	for _, tt := range tc {
		if got := Extension(tt.format); got != tt.want {
			t.Errorf("Extension(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestSlug(t *testing.T) {
	tc := []struct {
		in, want string
	}{
		{"Reference Only", "reference_only"},
		{"  Common   Songs ", "common_songs"},
		{"", "report"},
	}

	for _, tt := range tc {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriters(t *testing.T) {
	t.Run("WriteExport creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "reports", "nested", "out.csv")
		if err := WriteExport([]byte("data"), path); err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		th.AssertFileExists(t, path)
		if got := th.MustReadFile(t, path); got != "data" {
			t.Errorf("unexpected content: %q", got)
		}
	})

	t.Run("WriteExport requires a path", func(t *testing.T) {
		if err := WriteExport([]byte("data"), ""); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("WriteSetExport", func(t *testing.T) {
		t.Run("WithCustomPath", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "missing.xml")
			written, err := WriteSetExport(FormatXML, "Reference Only", th.ReferenceTracks(), path)
			if err != nil {
				t.Fatalf("WriteSetExport failed: %v", err)
			}
			if written != path {
				t.Errorf("expected %s, got %s", path, written)
			}
			if content := th.MustReadFile(t, path); !strings.Contains(content, "<songs>") {
				t.Errorf("unexpected content: %s", content)
			}
		})

		t.Run("WithDefaultPath", func(t *testing.T) {
			t.Chdir(t.TempDir())

			written, err := WriteSetExport(FormatCSV, "Reference Only", th.ReferenceTracks(), "")
			if err != nil {
				t.Fatalf("WriteSetExport failed: %v", err)
			}
			if written != "reference_only.csv" {
				t.Errorf("expected default filename, got %s", written)
			}
			th.AssertFileExists(t, written)
		})

		t.Run("UnknownFormat", func(t *testing.T) {
			if _, err := WriteSetExport("yaml", "Set", nil, filepath.Join(t.TempDir(), "x")); err == nil {
				t.Error("expected error for unknown format")
			}
		})
	})

	t.Run("WriteComparisonExport", func(t *testing.T) {
		t.Chdir(t.TempDir())

		written, err := WriteComparisonExport(FormatMarkdown, th.LocalTracks()[:1], th.LocalTracks()[1:], "")
		if err != nil {
			t.Fatalf("WriteComparisonExport failed: %v", err)
		}
		if written != "comparison.md" {
			t.Errorf("expected comparison.md, got %s", written)
		}
		if content := th.MustReadFile(t, written); !strings.Contains(content, "## Local Only Songs") {
			t.Errorf("unexpected content: %s", content)
		}
	})

	t.Run("WriteScoredExport", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.csv")
		if _, err := WriteScoredExport(FormatCSV, []models.ScoredTrack{scored("Song 2", "Artist 2", 0.5)}, path); err != nil {
			t.Fatalf("WriteScoredExport failed: %v", err)
		}
		if content := th.MustReadFile(t, path); !strings.Contains(content, "Match Score") {
			t.Errorf("unexpected content: %s", content)
		}
	})
}
