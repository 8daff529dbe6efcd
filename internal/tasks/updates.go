package tasks

import (
	"fmt"

	"github.com/desertthunder/mlc/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	LoadReference Phase = iota
	LoadLocal
	Classify
	Score
	ExportReport
)

func (p Phase) String() string {
	switch p {
	case LoadReference:
		return "load_reference"
	case LoadLocal:
		return "load_local"
	case Classify:
		return "classify"
	case Score:
		return "score"
	case ExportReport:
		return "export_report"
	default:
		return ""
	}
}

func loadingCatalogUpdate(phase Phase, src CatalogSource) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    0,
		Total:   1,
		Message: fmt.Sprintf("Loading %s catalog (%s)...", src.Label, src.Path),
	}
}

func loadedCatalogUpdate(phase Phase, src CatalogSource, tracks []models.Track) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Loaded %d tracks from %s", len(tracks), src.Label),
		Data:    len(tracks),
	}
}

func classifyUpdate(step, total int, set ResultSet) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Classify,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Finding %s songs...", step, total, set.Label()),
	}
}

func classifiedUpdate(bundle models.ComparisonBundle) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Classify,
		Step:    3,
		Total:   3,
		Message: fmt.Sprintf("%d common, %d reference only, %d local only", len(bundle.Common), len(bundle.ReferenceOnly), len(bundle.LocalOnly)),
		Data:    bundle,
	}
}

func scoringUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Score,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Scoring %d reference tracks...", total),
	}
}

func scoredUpdate(total int, missing []models.ScoredTrack) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Score,
		Step:    total,
		Total:   total,
		Message: fmt.Sprintf("%d of %d reference tracks missing locally", len(missing), total),
		Data:    missing,
	}
}

func exportingUpdate(step, total int, set ResultSet) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportReport,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, set.Label()),
	}
}

func exportCompletedUpdate(step, total int, set ResultSet, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportReport,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%s)", step, total, set.Label(), path),
	}
}

func exportFailedUpdate(step, total int, set ResultSet, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportReport,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, set.Label(), err),
	}
}
