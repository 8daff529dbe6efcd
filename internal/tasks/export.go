package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/desertthunder/mlc/internal/formatter"
	"github.com/desertthunder/mlc/internal/shared"
)

// SetMissing is the best-effort missing report written by [ReconcileEngine.ExportMissing].
const SetMissing ResultSet = "missing"

// ExportOpts contains configuration for report exports.
type ExportOpts struct {
	Format     string      // Report format: csv, xml, markdown, txt (default: csv)
	OutputDir  string      // Output directory (default: reports)
	Sets       []ResultSet // Result sets to export, duplicates ignored (default: comparison)
	NumWorkers int         // Concurrent writers (default: 2, max: 4)
	Manifest   bool        // Write a JSON manifest describing the exported files
}

func (o ExportOpts) withDefaults() ExportOpts {
	if o.Format == "" {
		o.Format = formatter.FormatCSV
	}
	if o.OutputDir == "" {
		o.OutputDir = "reports"
	}
	if len(o.Sets) == 0 {
		o.Sets = []ResultSet{SetComparison}
	}
	sets := make([]ResultSet, 0, len(o.Sets))
	for _, set := range o.Sets {
		if !slices.Contains(sets, set) {
			sets = append(sets, set)
		}
	}
	o.Sets = sets
	if o.NumWorkers <= 0 {
		o.NumWorkers = 2
	}
	if o.NumWorkers > 4 {
		o.NumWorkers = 4
	}
	return o
}

// SetExportResult describes the outcome of exporting a single result set.
type SetExportResult struct {
	Set          ResultSet `json:"set"`
	Path         string    `json:"path,omitempty"`
	Tracks       int       `json:"tracks"`
	Success      bool      `json:"success"`
	Error        error     `json:"-"`
	ErrorMessage string    `json:"error,omitempty"`
}

// ExportResult summarizes an export run.
type ExportResult struct {
	RunID             string            `json:"run_id"`
	Format            string            `json:"format"`
	OutputDirectory   string            `json:"output_directory"`
	ExportedAt        time.Time         `json:"exported_at"`
	Results           []SetExportResult `json:"results"`
	SuccessfulExports int               `json:"successful_exports"`
	FailedExports     int               `json:"failed_exports"`
	ManifestPath      string            `json:"-"`
}

// exportJob renders one report; index keeps results in request order.
type exportJob struct {
	index  int
	set    ResultSet
	tracks int
	render func(format string) ([]byte, error)
}

type indexedResult struct {
	index int
	res   SetExportResult
}

// Export renders the requested result sets of a reconciliation into opts.OutputDir.
//
// Files are named {set}_{run}{ext}. Individual failures are recorded in the result and do not stop other sets.
func (e *ReconcileEngine) Export(ctx context.Context, progress chan<- ProgressUpdate, result *ReconcileResult, opts ExportOpts) (*ExportResult, error) {
	if result == nil {
		return nil, fmt.Errorf("%w: reconcile result", shared.ErrMissingArgument)
	}
	opts = opts.withDefaults()

	jobs := make([]exportJob, 0, len(opts.Sets))
	for _, set := range opts.Sets {
		if !slices.Contains(ResultSets, set) {
			return nil, fmt.Errorf("%w: result set %q", shared.ErrInvalidArgument, set)
		}

		job := exportJob{set: set}
		if set == SetComparison {
			job.tracks = len(result.Bundle.Common) + len(result.Bundle.LocalOnly)
			job.render = func(format string) ([]byte, error) {
				return formatter.RenderComparison(format, result.Bundle.Common, result.Bundle.LocalOnly)
			}
		} else {
			tracks := result.Tracks(set)
			job.tracks = len(tracks)
			job.render = func(format string) ([]byte, error) {
				return formatter.Render(format, set.Label(), tracks)
			}
		}
		jobs = append(jobs, job)
	}

	return e.runExport(ctx, progress, result.RunID, jobs, opts)
}

// ExportMissing writes the best-effort missing report with match scores into opts.OutputDir.
func (e *ReconcileEngine) ExportMissing(ctx context.Context, progress chan<- ProgressUpdate, result *MissingResult, opts ExportOpts) (*ExportResult, error) {
	if result == nil {
		return nil, fmt.Errorf("%w: missing result", shared.ErrMissingArgument)
	}
	opts = opts.withDefaults()

	job := exportJob{
		set:    SetMissing,
		tracks: len(result.Missing),
		render: func(format string) ([]byte, error) {
			return formatter.RenderScored(format, result.Missing)
		},
	}
	return e.runExport(ctx, progress, result.RunID, []exportJob{job}, opts)
}

// runExport fans jobs out to a small worker pool and writes the optional manifest once all reports are done.
func (e *ReconcileEngine) runExport(ctx context.Context, progress chan<- ProgressUpdate, runID string, jobs []exportJob, opts ExportOpts) (*ExportResult, error) {
	if !slices.Contains(shared.ExportFormats, opts.Format) {
		return nil, fmt.Errorf("%w: report format %q (must be one of %v)", shared.ErrInvalidArgument, opts.Format, shared.ExportFormats)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	export := &ExportResult{
		RunID:           runID,
		Format:          opts.Format,
		OutputDirectory: opts.OutputDir,
		ExportedAt:      time.Now().UTC(),
		Results:         make([]SetExportResult, len(jobs)),
	}

	queue := make(chan exportJob, len(jobs))
	results := make(chan indexedResult, len(jobs))

	var wg sync.WaitGroup
	for range min(opts.NumWorkers, len(jobs)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				if ctx.Err() != nil {
					return
				}
				results <- indexedResult{index: job.index, res: e.exportSingle(runID, job, opts)}
			}
		}()
	}

	go func() {
		for i, job := range jobs {
			select {
			case <-ctx.Done():
				close(queue)
				return
			default:
			}
			job.index = i
			e.sendProgress(progress, exportingUpdate(i+1, len(jobs), job.set))
			queue <- job
		}
		close(queue)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for r := range results {
		completed++
		export.Results[r.index] = r.res

		if r.res.Success {
			export.SuccessfulExports++
			e.sendProgress(progress, exportCompletedUpdate(completed, len(jobs), r.res.Set, r.res.Path))
		} else {
			export.FailedExports++
			e.sendProgress(progress, exportFailedUpdate(completed, len(jobs), r.res.Set, r.res.Error))
			e.logger.Warn("report export failed", "set", r.res.Set, "error", r.res.Error)
		}
	}

	if err := ctx.Err(); err != nil {
		return export, err
	}

	if opts.Manifest {
		manifestPath := filepath.Join(opts.OutputDir, fmt.Sprintf("manifest_%s.json", shared.ShortID(runID)))
		data, err := shared.MarshalJSON(export, true)
		if err != nil {
			return export, fmt.Errorf("export completed but failed to encode manifest: %w", err)
		}
		if err := formatter.WriteExport(data, manifestPath); err != nil {
			return export, fmt.Errorf("export completed but failed to write manifest: %w", err)
		}
		export.ManifestPath = manifestPath
	}

	e.logger.Info("reports exported", "dir", opts.OutputDir, "format", opts.Format, "ok", export.SuccessfulExports, "failed", export.FailedExports)
	return export, nil
}

// exportSingle renders and writes a single report.
func (e *ReconcileEngine) exportSingle(runID string, job exportJob, opts ExportOpts) SetExportResult {
	res := SetExportResult{Set: job.set, Tracks: job.tracks}

	data, err := job.render(opts.Format)
	if err != nil {
		res.Error = fmt.Errorf("%s export failed: %w", job.set, err)
		res.ErrorMessage = res.Error.Error()
		return res
	}

	name := fmt.Sprintf("%s_%s%s", job.set, shared.ShortID(runID), formatter.Extension(opts.Format))
	path := filepath.Join(opts.OutputDir, name)
	if err := formatter.WriteExport(data, path); err != nil {
		res.Error = fmt.Errorf("%s export failed: %w", job.set, err)
		res.ErrorMessage = res.Error.Error()
		return res
	}

	res.Path = path
	res.Success = true
	return res
}
