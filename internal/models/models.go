package models

import "fmt"

// Track represents a music track from either catalog.
//
// Title and Artist are never nil after ingestion; loaders substitute the empty string.
type Track struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album,omitempty"`
}

// Identity returns the literal "title - artist" key of the track, without any normalization.
func (t Track) Identity() string {
	return t.Title + " - " + t.Artist
}

// String renders the track as "Artist - Title" for display.
func (t Track) String() string {
	if t.Artist == "" {
		return t.Title
	}
	return fmt.Sprintf("%s - %s", t.Artist, t.Title)
}

// ScoredTrack wraps a [Track] with the best match score found against the opposite catalog.
//
// MatchScore is nil when the track was never scored.
type ScoredTrack struct {
	Track      Track    `json:"track"`
	MatchScore *float64 `json:"match_score,omitempty"`
}

// Score returns the match score, or 0 if the track was never scored.
func (s ScoredTrack) Score() float64 {
	if s.MatchScore == nil {
		return 0
	}
	return *s.MatchScore
}

// ComparisonBundle holds the three result sets of a single reconciliation run.
//
// The sets are computed independently and do not form a partition of either catalog.
type ComparisonBundle struct {
	Common        []Track `json:"common"`
	ReferenceOnly []Track `json:"reference_only"`
	LocalOnly     []Track `json:"local_only"`
}

// Tracks unwraps the records of a scored result set, preserving order.
func Tracks(scored []ScoredTrack) []Track {
	tracks := make([]Track, len(scored))
	for i, s := range scored {
		tracks[i] = s.Track
	}
	return tracks
}
