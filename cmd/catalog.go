package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/desertthunder/mlc/internal/matcher"
	"github.com/desertthunder/mlc/internal/models"
	"github.com/desertthunder/mlc/internal/shared"
	"github.com/urfave/cli/v3"
)

// Scan lists the records a music folder scan produces.
func (r *Runner) Scan(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.String("dir")
	if dir == "" {
		return fmt.Errorf("%w: --dir", shared.ErrMissingArgument)
	}

	tracks, err := r.loader.ScanFolder(dir)
	if err != nil {
		return err
	}
	r.logger.Debug("folder scanned", "dir", dir, "tracks", len(tracks))

	if cmd.Bool("json") {
		return r.writeJSON(tracks, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("%s (%d tracks)", dir, len(tracks)))
	for i, track := range tracks {
		r.writePlain("  %d. %s\n", i+1, track.Title)
	}
	return nil
}

// normalizeReport is the JSON shape of the normalize command.
type normalizeReport struct {
	Title            string   `json:"title"`
	Artist           string   `json:"artist"`
	NormalizedTitle  string   `json:"normalized_title"`
	NormalizedArtist string   `json:"normalized_artist"`
	Against          *against `json:"against,omitempty"`
}

type against struct {
	Title            string  `json:"title"`
	Artist           string  `json:"artist"`
	NormalizedTitle  string  `json:"normalized_title"`
	NormalizedArtist string  `json:"normalized_artist"`
	TitleScore       float64 `json:"title_score"`
	ArtistScore      float64 `json:"artist_score"`
	Similar          bool    `json:"similar"`
}

func buildNormalizeReport(track models.Track, other *models.Track) normalizeReport {
	report := normalizeReport{
		Title:            track.Title,
		Artist:           track.Artist,
		NormalizedTitle:  matcher.NormalizeTitle(track.Title),
		NormalizedArtist: matcher.NormalizeArtist(track.Artist),
	}
	if other == nil {
		return report
	}

	a := &against{
		Title:            other.Title,
		Artist:           other.Artist,
		NormalizedTitle:  matcher.NormalizeTitle(other.Title),
		NormalizedArtist: matcher.NormalizeArtist(other.Artist),
		Similar:          matcher.IsSimilar(track, *other),
	}
	a.TitleScore = matcher.Similarity(report.NormalizedTitle, a.NormalizedTitle)
	a.ArtistScore = matcher.Similarity(report.NormalizedArtist, a.NormalizedArtist)
	report.Against = a
	return report
}

// Normalize prints the comparison forms of a title and artist.
//
// With --against-title or --against-artist it also scores the pair and reports whether it would match.
func (r *Runner) Normalize(ctx context.Context, cmd *cli.Command) error {
	track := models.Track{Title: cmd.String("title"), Artist: cmd.String("artist")}
	if track.Title == "" && track.Artist == "" {
		return fmt.Errorf("%w: --title or --artist", shared.ErrMissingArgument)
	}

	var other *models.Track
	if t, a := cmd.String("against-title"), cmd.String("against-artist"); t != "" || a != "" {
		other = &models.Track{Title: t, Artist: a}
	}

	report := buildNormalizeReport(track, other)
	if cmd.Bool("json") {
		return r.writeJSON(report, cmd.Bool("pretty"))
	}

	rows := [][]string{
		{"title", report.Title, report.NormalizedTitle},
		{"artist", report.Artist, report.NormalizedArtist},
	}
	headers := []string{"Field", "Raw", "Normalized"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft}

	if a := report.Against; a != nil {
		headers = append(headers, "Against", "Score")
		aligns = append(aligns, alignLeft, alignRight)
		rows[0] = append(rows[0], a.NormalizedTitle, strconv.FormatFloat(a.TitleScore, 'f', 4, 64))
		rows[1] = append(rows[1], a.NormalizedArtist, strconv.FormatFloat(a.ArtistScore, 'f', 4, 64))
	}

	r.writePlain("%s\n", renderTable(headers, rows, aligns, r.colorize()))

	if a := report.Against; a != nil {
		verdict := "✗ not a match"
		if a.Similar {
			verdict = "✓ match"
		}
		r.writePlain("%s (threshold %.2f)\n", verdict, matcher.AcceptanceThreshold)
	}
	return nil
}
