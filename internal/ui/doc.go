// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a two-view workflow for catalog reconciliation:
//  1. [ReconcileView] : Monitor real-time progress while both catalogs load and classify
//  2. [ResultView] : Browse the common, reference-only and local-only sets as tabbed lists
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the [Msg] union type.
// Progress updates flow through a channel from the [tasks.Reconciler], providing non-blocking status reporting during a run.
//
// Each set is a filterable charmbracelet/bubbles/list. The active set can be exported with the configured report format.
// Keyboard navigation uses vim-style bindings (j/k, h/l, tab, /, e, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
