// package formatter renders result sets as reports (CSV, XML, Markdown, plain text)
package formatter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/mlc/internal/models"
	"github.com/desertthunder/mlc/internal/shared"
)

// Report formats understood by [Render] and friends.
const (
	FormatCSV      = "csv"
	FormatXML      = "xml"
	FormatMarkdown = "markdown"
	FormatText     = "txt"
)

// Section banners used by the paired reports.
const (
	CommonBanner    = "--- Common Songs ---"
	LocalOnlyBanner = "--- Local Only Songs ---"
)

// bom marks CSV output as UTF-8 for spreadsheet applications.
const bom = "\ufeff"

var csvHeader = []string{"Title", "Artist", "Album"}

// quoteCSV wraps field in double quotes, doubling any embedded quote.
func quoteCSV(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

func csvLine(fields ...string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = quoteCSV(f)
	}
	return strings.Join(quoted, ",") + "\n"
}

func trackLine(t models.Track) string {
	return csvLine(t.Title, t.Artist, t.Album)
}

// ExportToCSV renders a result set as BOM-prefixed CSV with a Title,Artist,Album header and every field quoted.
func ExportToCSV(tracks []models.Track) []byte {
	var buf bytes.Buffer
	buf.WriteString(bom)
	buf.WriteString(strings.Join(csvHeader, ",") + "\n")
	for _, t := range tracks {
		buf.WriteString(trackLine(t))
	}
	return buf.Bytes()
}

// ExportComparisonToCSV renders the common and local-only sets as one CSV document with a banner before each section.
func ExportComparisonToCSV(common, localOnly []models.Track) []byte {
	var buf bytes.Buffer
	buf.WriteString(bom)

	buf.WriteString(CommonBanner + "\n")
	buf.WriteString(csvLine(csvHeader...))
	for _, t := range common {
		buf.WriteString(trackLine(t))
	}
	buf.WriteString("\n")

	buf.WriteString(LocalOnlyBanner + "\n")
	buf.WriteString(csvLine(csvHeader...))
	for _, t := range localOnly {
		buf.WriteString(trackLine(t))
	}
	return buf.Bytes()
}

// ExportScoredToCSV renders a best-effort missing report with an extra "Match Score" column.
func ExportScoredToCSV(scored []models.ScoredTrack) []byte {
	var buf bytes.Buffer
	buf.WriteString(bom)
	buf.WriteString(strings.Join(csvHeader, ",") + ",Match Score\n")
	for _, s := range scored {
		buf.WriteString(csvLine(s.Track.Title, s.Track.Artist, s.Track.Album, FormatScore(s.Score())))
	}
	return buf.Bytes()
}

// FormatScore renders a match score with four decimal places.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 4, 64)
}

func markdownItem(i int, t models.Track) string {
	albumPart := ""
	if t.Album != "" {
		albumPart = fmt.Sprintf(" (%s)", t.Album)
	}
	return fmt.Sprintf("%d. %s%s\n", i+1, t, albumPart)
}

// ExportToMarkdown renders a titled result set as a Markdown document
func ExportToMarkdown(title string, tracks []models.Track) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n\n", len(tracks)))
	for i, t := range tracks {
		buf.WriteString(markdownItem(i, t))
	}

	return buf.Bytes()
}

// ExportComparisonToMarkdown renders the common and local-only sets under separate headings
func ExportComparisonToMarkdown(common, localOnly []models.Track) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Comparison\n\n")
	buf.WriteString(fmt.Sprintf("**Common**: %d\n", len(common)))
	buf.WriteString(fmt.Sprintf("**Local only**: %d\n\n", len(localOnly)))

	buf.WriteString("## Common Songs\n\n")
	for i, t := range common {
		buf.WriteString(markdownItem(i, t))
	}

	buf.WriteString("\n## Local Only Songs\n\n")
	for i, t := range localOnly {
		buf.WriteString(markdownItem(i, t))
	}

	return buf.Bytes()
}

// ExportScoredToMarkdown renders a best-effort missing report with scores as percentages
func ExportScoredToMarkdown(scored []models.ScoredTrack) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Missing Songs\n\n")
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n\n", len(scored)))
	for i, s := range scored {
		buf.WriteString(fmt.Sprintf("%d. %s [%.1f%%]\n", i+1, s.Track, s.Score()*100))
	}

	return buf.Bytes()
}

// ExportToText renders a titled result set as plain text
func ExportToText(title string, tracks []models.Track) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s\n", title))
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(tracks)))
	for i, t := range tracks {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, t))
	}

	return buf.Bytes()
}

// ExportComparisonToText renders the common and local-only sets as plain text
func ExportComparisonToText(common, localOnly []models.Track) []byte {
	var buf bytes.Buffer
	buf.Write(ExportToText("Common Songs", common))
	buf.WriteString("\n")
	buf.Write(ExportToText("Local Only Songs", localOnly))
	return buf.Bytes()
}

// ExportScoredToText renders a best-effort missing report as plain text
func ExportScoredToText(scored []models.ScoredTrack) []byte {
	var buf bytes.Buffer

	buf.WriteString("Missing Songs\n")
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(scored)))
	for i, s := range scored {
		buf.WriteString(fmt.Sprintf("%d. %s (score %s)\n", i+1, s.Track, FormatScore(s.Score())))
	}

	return buf.Bytes()
}

// Extension returns the file extension, including the dot, for a report format.
func Extension(format string) string {
	switch format {
	case FormatMarkdown:
		return ".md"
	case FormatText:
		return ".txt"
	case FormatXML:
		return ".xml"
	default:
		return ".csv"
	}
}

func unsupported(format string) error {
	return fmt.Errorf("%w: report format %q", shared.ErrInvalidArgument, format)
}

// Render renders a single titled result set in the given format.
func Render(format, title string, tracks []models.Track) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(tracks), nil
	case FormatXML:
		return ExportToXML(tracks)
	case FormatMarkdown:
		return ExportToMarkdown(title, tracks), nil
	case FormatText:
		return ExportToText(title, tracks), nil
	default:
		return nil, unsupported(format)
	}
}

// RenderComparison renders the common/local-only pair in the given format.
func RenderComparison(format string, common, localOnly []models.Track) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportComparisonToCSV(common, localOnly), nil
	case FormatXML:
		return ExportComparisonToXML(common, localOnly)
	case FormatMarkdown:
		return ExportComparisonToMarkdown(common, localOnly), nil
	case FormatText:
		return ExportComparisonToText(common, localOnly), nil
	default:
		return nil, unsupported(format)
	}
}

// RenderScored renders a best-effort missing report in the given format.
func RenderScored(format string, scored []models.ScoredTrack) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportScoredToCSV(scored), nil
	case FormatXML:
		return ExportScoredToXML(scored)
	case FormatMarkdown:
		return ExportScoredToMarkdown(scored), nil
	case FormatText:
		return ExportScoredToText(scored), nil
	default:
		return nil, unsupported(format)
	}
}

// WriteExport writes rendered report data to path, creating parent directories as needed.
func WriteExport(data []byte, path string) error {
	if path == "" {
		return fmt.Errorf("%w: report path", shared.ErrMissingArgument)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}

// WriteSetExport renders a single result set and writes it to path.
//
// Defaults to {title}{ext} in the working directory when path is empty.
func WriteSetExport(format, title string, tracks []models.Track, path string) (string, error) {
	data, err := Render(format, title, tracks)
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}

	if path == "" {
		path = Slug(title) + Extension(format)
	}
	if err := WriteExport(data, path); err != nil {
		return "", err
	}
	return path, nil
}

// WriteComparisonExport renders the common/local-only pair and writes it to path.
//
// Defaults to comparison{ext} in the working directory when path is empty.
func WriteComparisonExport(format string, common, localOnly []models.Track, path string) (string, error) {
	data, err := RenderComparison(format, common, localOnly)
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}

	if path == "" {
		path = "comparison" + Extension(format)
	}
	if err := WriteExport(data, path); err != nil {
		return "", err
	}
	return path, nil
}

// WriteScoredExport renders a best-effort missing report and writes it to path.
//
// Defaults to missing{ext} in the working directory when path is empty.
func WriteScoredExport(format string, scored []models.ScoredTrack, path string) (string, error) {
	data, err := RenderScored(format, scored)
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}

	if path == "" {
		path = "missing" + Extension(format)
	}
	if err := WriteExport(data, path); err != nil {
		return "", err
	}
	return path, nil
}

// Slug lowercases s and joins its words with underscores for use in file names.
func Slug(s string) string {
	slug := strings.Join(strings.Fields(strings.ToLower(s)), "_")
	if slug == "" {
		return "report"
	}
	return slug
}
