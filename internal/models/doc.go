// Package models defines the domain entities exchanged between the catalog loaders, the matcher, and the report formatters.
//
//   - [Track] : a single catalog record (title, artist, optional album)
//   - [ScoredTrack] : a [Track] paired with the best similarity found against the opposite catalog
//   - [ComparisonBundle] : the three result sets produced by one reconciliation run
//
// Every value is created fresh for a run and never mutated after the run completes.
// Normalized forms of title and artist never leak into these types; outputs always carry the original strings.
package models
