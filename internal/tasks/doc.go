// Package tasks orchestrates catalog reconciliation runs with real-time progress reporting.
//
// # Core Operations
//
// The [Reconciler] interface defines three operations:
//
//  1. [Reconciler.Reconcile] : Compare a reference catalog against a local one
//     - Loads both catalogs (CSV, XML or a scanned music folder)
//     - Finds common, reference-only and local-only songs
//     - Returns the three result sets with catalog sizes and a run id
//
//  2. [Reconciler.Missing] : Best-effort missing report
//     - Loads both catalogs
//     - Scores each reference track against its closest local candidate
//     - Returns the tracks that stay below the acceptance threshold, with scores
//
//  3. [Reconciler.Export] : Write reports
//     - Renders the requested result sets as CSV, XML, Markdown or text
//     - Writes them concurrently through a small worker pool
//     - Optionally writes a JSON manifest of the produced files
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking, so a nil or unread channel never stalls a run.
//
// # Implementation
//
// [ReconcileEngine] implements [Reconciler] with dependencies on:
//   - [CatalogLoader] : reads catalog files and folders (catalog.Loader)
//   - [log.Logger] : structured run logging, tagged with the short run id
package tasks
