package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/desertthunder/mlc/internal/formatter"
	"github.com/desertthunder/mlc/internal/models"
	"github.com/desertthunder/mlc/internal/shared"
	"github.com/desertthunder/mlc/internal/tasks"
	"github.com/urfave/cli/v3"
)

// catalogSources builds the reference and local sources from flags, labelled from config unless overridden.
func (r *Runner) catalogSources(cmd *cli.Command) (tasks.CatalogSource, tasks.CatalogSource) {
	reference := tasks.CatalogSource{Label: r.config.Catalog.ReferenceLabel, Path: cmd.String("reference")}
	local := tasks.CatalogSource{Label: r.config.Catalog.LocalLabel, Path: cmd.String("local")}

	if label := cmd.String("reference-label"); label != "" {
		reference.Label = label
	}
	if label := cmd.String("local-label"); label != "" {
		local.Label = label
	}
	return reference, local
}

// watchProgress prints engine progress until the returned stop function is called.
//
// A disabled watcher returns a nil channel so JSON output stays clean.
func (r *Runner) watchProgress(enabled bool) (chan tasks.ProgressUpdate, func()) {
	if !enabled {
		return nil, func() {}
	}

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.LoadReference, tasks.LoadLocal:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.Classify, tasks.Score:
				r.writePlain("🔍 %s\n", update.Message)
			case tasks.ExportReport:
				r.writePlain("📝 %s\n", update.Message)
			}
		}
	}()

	return progressCh, func() {
		close(progressCh)
		<-done
	}
}

// Compare runs the three classifications and prints a summary.
//
// With --output the common and local-only sets are also written as a single comparison report.
func (r *Runner) Compare(ctx context.Context, cmd *cli.Command) error {
	reference, local := r.catalogSources(cmd)
	asJSON := cmd.Bool("json")

	format, err := r.format(cmd)
	if err != nil {
		return err
	}

	progressCh, stop := r.watchProgress(!asJSON)
	result, err := r.engine.Reconcile(ctx, progressCh, reference, local)
	stop()
	if err != nil {
		return err
	}

	if asJSON {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}

	r.writeComparisonSummary(result)

	if cmd.Bool("list") {
		for _, set := range []tasks.ResultSet{tasks.SetCommon, tasks.SetReferenceOnly, tasks.SetLocalOnly} {
			r.writeTrackList(set.Label(), result.Tracks(set))
		}
	}

	if output := cmd.String("output"); output != "" {
		path, err := formatter.WriteComparisonExport(format, result.Bundle.Common, result.Bundle.LocalOnly, output)
		if err != nil {
			return err
		}
		r.logger.Info("comparison report written", "path", path, "format", format)
		r.writePlainln("✓ Comparison report written to %s", path)
	}

	return nil
}

// Missing prints the best-effort missing report with match scores.
//
// With --output the report is written with a Match Score column.
func (r *Runner) Missing(ctx context.Context, cmd *cli.Command) error {
	reference, local := r.catalogSources(cmd)
	asJSON := cmd.Bool("json")

	format, err := r.format(cmd)
	if err != nil {
		return err
	}

	progressCh, stop := r.watchProgress(!asJSON)
	result, err := r.engine.Missing(ctx, progressCh, reference, local)
	stop()
	if err != nil {
		return err
	}

	if asJSON {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}

	r.writePlain("\n")
	r.writePlainHeader("Missing Tracks")
	r.writePlain("%s: %d tracks • %s: %d tracks\n", result.Reference.Label, result.Reference.Tracks, result.Local.Label, result.Local.Tracks)
	r.writePlain("Missing from %s: %d tracks\n\n", result.Local.Label, len(result.Missing))

	if len(result.Missing) > 0 {
		rows := make([][]string, len(result.Missing))
		for i, scored := range result.Missing {
			rows[i] = []string{strconv.Itoa(i + 1), scored.Track.Title, scored.Track.Artist, scored.Track.Album, formatter.FormatScore(scored.Score())}
		}
		r.writePlain("%s\n", renderTable(
			[]string{"#", "Title", "Artist", "Album", "Best Match"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight},
			r.colorize(),
		))
	}

	if output := cmd.String("output"); output != "" {
		path, err := formatter.WriteScoredExport(format, result.Missing, output)
		if err != nil {
			return err
		}
		r.logger.Info("missing report written", "path", path, "format", format)
		r.writePlainln("✓ Missing report written to %s", path)
	}

	return nil
}

// Export reconciles both catalogs and writes the requested result sets into the output directory.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	reference, local := r.catalogSources(cmd)

	format, err := r.format(cmd)
	if err != nil {
		return err
	}

	sets := []tasks.ResultSet{}
	for _, name := range cmd.StringSlice("set") {
		set, err := tasks.ParseResultSet(name)
		if err != nil {
			return fmt.Errorf("%w: --set: %w", shared.ErrInvalidFlag, err)
		}
		sets = append(sets, set)
	}

	outputDir := cmd.String("output")
	if outputDir == "" {
		outputDir = r.config.Export.Directory
	}

	asJSON := cmd.Bool("json")
	progressCh, stop := r.watchProgress(!asJSON)
	result, err := r.engine.Reconcile(ctx, progressCh, reference, local)
	if err != nil {
		stop()
		return err
	}

	export, err := r.engine.Export(ctx, progressCh, result, tasks.ExportOpts{
		Format:     format,
		OutputDir:  outputDir,
		Sets:       sets,
		NumWorkers: int(cmd.Int("workers")),
		Manifest:   cmd.Bool("manifest"),
	})
	stop()
	if err != nil {
		return err
	}

	if asJSON {
		return r.writeJSON(export, cmd.Bool("pretty"))
	}

	r.writePlain("\n")
	r.writePlainHeader("Export Complete")
	rows := make([][]string, len(export.Results))
	for i, res := range export.Results {
		status := "✓"
		location := res.Path
		if !res.Success {
			status = "✗"
			location = res.ErrorMessage
		}
		rows[i] = []string{status, string(res.Set), strconv.Itoa(res.Tracks), location}
	}
	r.writePlain("%s\n", renderTable(
		[]string{"", "Set", "Tracks", "File"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
		r.colorize(),
	))

	if export.ManifestPath != "" {
		r.writePlain("Manifest: %s\n", export.ManifestPath)
	}
	if export.FailedExports > 0 {
		return fmt.Errorf("%d of %d reports failed to export", export.FailedExports, len(export.Results))
	}
	return nil
}

func (r *Runner) writeComparisonSummary(result *tasks.ReconcileResult) {
	r.writePlain("\n")
	r.writePlainHeader("Comparison Results")

	rows := [][]string{
		{result.Reference.Label, "reference catalog", strconv.Itoa(result.Reference.Tracks)},
		{result.Local.Label, "local catalog", strconv.Itoa(result.Local.Tracks)},
		{tasks.SetCommon.Label(), "in both", strconv.Itoa(len(result.Bundle.Common))},
		{tasks.SetReferenceOnly.Label(), "missing from " + result.Local.Label, strconv.Itoa(len(result.Bundle.ReferenceOnly))},
		{tasks.SetLocalOnly.Label(), "absent from " + result.Reference.Label, strconv.Itoa(len(result.Bundle.LocalOnly))},
	}
	r.writePlain("%s\n", renderTable(
		[]string{"Set", "Description", "Tracks"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight},
		r.colorize(),
	))
}

func (r *Runner) writeTrackList(title string, tracks []models.Track) {
	r.writePlainln("%s (%d):", title, len(tracks))
	for i, track := range tracks {
		r.writePlain("  %d. %s - %s", i+1, track.Artist, track.Title)
		if track.Album != "" {
			r.writePlain(" (%s)", track.Album)
		}
		r.writePlain("\n")
	}
}
