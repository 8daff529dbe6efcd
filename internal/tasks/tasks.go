package tasks

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mlc/internal/matcher"
	"github.com/desertthunder/mlc/internal/models"
	"github.com/desertthunder/mlc/internal/shared"
)

// CatalogSource identifies a catalog to load: a CSV or XML export, or a music folder.
type CatalogSource struct {
	Label string // Display name, e.g. "Spotify"
	Path  string // File or directory path
}

// CatalogSummary describes a catalog after loading.
type CatalogSummary struct {
	Label  string `json:"label"`
	Path   string `json:"path"`
	Tracks int    `json:"tracks"`
}

// ResultSet names one of the reports a reconciliation can produce.
type ResultSet string

const (
	SetComparison    ResultSet = "comparison"     // Common and local-only songs in one document
	SetCommon        ResultSet = "common"         // Reference songs found locally
	SetReferenceOnly ResultSet = "reference-only" // Reference songs missing locally
	SetLocalOnly     ResultSet = "local-only"     // Local songs absent from the reference
)

// ResultSets lists every [ResultSet] in export order.
var ResultSets = []ResultSet{SetComparison, SetCommon, SetReferenceOnly, SetLocalOnly}

// ParseResultSet validates a result set name.
func ParseResultSet(s string) (ResultSet, error) {
	set := ResultSet(s)
	if !slices.Contains(ResultSets, set) {
		return "", fmt.Errorf("%w: result set %q (must be one of %v)", shared.ErrInvalidArgument, s, ResultSets)
	}
	return set, nil
}

// Label returns the human-readable title of the set.
func (s ResultSet) Label() string {
	switch s {
	case SetComparison:
		return "Comparison"
	case SetCommon:
		return "Common Songs"
	case SetReferenceOnly:
		return "Reference Only Songs"
	case SetLocalOnly:
		return "Local Only Songs"
	default:
		return string(s)
	}
}

// ReconcileResult contains the outcome of a single reconciliation run.
type ReconcileResult struct {
	RunID     string                  `json:"run_id"`
	Reference CatalogSummary          `json:"reference"`
	Local     CatalogSummary          `json:"local"`
	Bundle    models.ComparisonBundle `json:"bundle"`
	Duration  time.Duration           `json:"duration"`
}

// Tracks returns the tracks of a single result set. [SetComparison] has no single track list and yields nil.
func (r *ReconcileResult) Tracks(set ResultSet) []models.Track {
	switch set {
	case SetCommon:
		return r.Bundle.Common
	case SetReferenceOnly:
		return r.Bundle.ReferenceOnly
	case SetLocalOnly:
		return r.Bundle.LocalOnly
	default:
		return nil
	}
}

// MissingResult contains the best-effort missing report of a run.
type MissingResult struct {
	RunID     string               `json:"run_id"`
	Reference CatalogSummary       `json:"reference"`
	Local     CatalogSummary       `json:"local"`
	Missing   []models.ScoredTrack `json:"missing"`
	Duration  time.Duration        `json:"duration"`
}

// CatalogLoader loads the tracks of a catalog file or folder.
type CatalogLoader interface {
	LoadFile(path string) ([]models.Track, error)
}

// Reconciler defines the operations run against a pair of catalogs.
type Reconciler interface {
	// Reconcile loads both catalogs and classifies them into common, reference-only and local-only sets.
	Reconcile(ctx context.Context, progress chan<- ProgressUpdate, reference, local CatalogSource) (*ReconcileResult, error)

	// Missing loads both catalogs and scores every reference track that has no close local match.
	Missing(ctx context.Context, progress chan<- ProgressUpdate, reference, local CatalogSource) (*MissingResult, error)

	// Export renders the requested result sets of a reconciliation to files.
	Export(ctx context.Context, progress chan<- ProgressUpdate, result *ReconcileResult, opts ExportOpts) (*ExportResult, error)
}

// ReconcileEngine implements [Reconciler] on top of a [CatalogLoader].
type ReconcileEngine struct {
	loader CatalogLoader
	logger *log.Logger
}

// NewReconcileEngine creates a new ReconcileEngine. A nil logger discards all output.
func NewReconcileEngine(loader CatalogLoader, logger *log.Logger) *ReconcileEngine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &ReconcileEngine{loader: loader, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *ReconcileEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// load reads a single catalog, reporting progress under phase.
func (e *ReconcileEngine) load(ctx context.Context, progress chan<- ProgressUpdate, phase Phase, src CatalogSource) ([]models.Track, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if src.Path == "" {
		return nil, fmt.Errorf("%w: %s catalog path", shared.ErrMissingArgument, src.Label)
	}

	e.sendProgress(progress, loadingCatalogUpdate(phase, src))
	tracks, err := e.loader.LoadFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s catalog: %w", src.Label, err)
	}
	e.sendProgress(progress, loadedCatalogUpdate(phase, src, tracks))

	e.logger.Debug("catalog loaded", "label", src.Label, "path", src.Path, "tracks", len(tracks))
	return tracks, nil
}

func (e *ReconcileEngine) loadPair(ctx context.Context, progress chan<- ProgressUpdate, reference, local CatalogSource) ([]models.Track, []models.Track, error) {
	if e.loader == nil {
		return nil, nil, fmt.Errorf("%w: catalog loader not initialized", shared.ErrMissingConfig)
	}

	refTracks, err := e.load(ctx, progress, LoadReference, reference)
	if err != nil {
		return nil, nil, err
	}
	localTracks, err := e.load(ctx, progress, LoadLocal, local)
	if err != nil {
		return nil, nil, err
	}
	return refTracks, localTracks, nil
}

// Reconcile loads both catalogs and runs the three classifications.
//
// The context is checked between phases; classification itself is not interruptible.
func (e *ReconcileEngine) Reconcile(ctx context.Context, progress chan<- ProgressUpdate, reference, local CatalogSource) (*ReconcileResult, error) {
	start := time.Now()
	runID := shared.GenerateID()
	logger := shared.WithLogger(e.logger, "run", shared.ShortID(runID))

	refTracks, localTracks, err := e.loadPair(ctx, progress, reference, local)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var bundle models.ComparisonBundle
	e.sendProgress(progress, classifyUpdate(1, 3, SetCommon))
	bundle.Common = matcher.CommonSongs(refTracks, localTracks)
	e.sendProgress(progress, classifyUpdate(2, 3, SetReferenceOnly))
	bundle.ReferenceOnly = matcher.ReferenceOnlySongs(refTracks, localTracks)
	e.sendProgress(progress, classifyUpdate(3, 3, SetLocalOnly))
	bundle.LocalOnly = matcher.LocalOnlySongs(refTracks, localTracks)
	e.sendProgress(progress, classifiedUpdate(bundle))

	result := &ReconcileResult{
		RunID:     runID,
		Reference: CatalogSummary{Label: reference.Label, Path: reference.Path, Tracks: len(refTracks)},
		Local:     CatalogSummary{Label: local.Label, Path: local.Path, Tracks: len(localTracks)},
		Bundle:    bundle,
		Duration:  time.Since(start),
	}

	logger.Info("catalogs reconciled",
		"common", len(bundle.Common),
		"reference_only", len(bundle.ReferenceOnly),
		"local_only", len(bundle.LocalOnly),
		"duration", result.Duration,
	)
	return result, nil
}

// Missing loads both catalogs and builds the best-effort missing report.
func (e *ReconcileEngine) Missing(ctx context.Context, progress chan<- ProgressUpdate, reference, local CatalogSource) (*MissingResult, error) {
	start := time.Now()
	runID := shared.GenerateID()
	logger := shared.WithLogger(e.logger, "run", shared.ShortID(runID))

	refTracks, localTracks, err := e.loadPair(ctx, progress, reference, local)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.sendProgress(progress, scoringUpdate(len(refTracks)))
	missing := matcher.BestEffortMissing(refTracks, localTracks)
	e.sendProgress(progress, scoredUpdate(len(refTracks), missing))

	result := &MissingResult{
		RunID:     runID,
		Reference: CatalogSummary{Label: reference.Label, Path: reference.Path, Tracks: len(refTracks)},
		Local:     CatalogSummary{Label: local.Label, Path: local.Path, Tracks: len(localTracks)},
		Missing:   missing,
		Duration:  time.Since(start),
	}

	logger.Info("missing tracks scored", "missing", len(missing), "reference", len(refTracks), "duration", result.Duration)
	return result, nil
}
