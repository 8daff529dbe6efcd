package matcher

import (
	"github.com/desertthunder/mlc/internal/models"
)

// normalized holds the comparable forms of a track's title and artist.
type normalized struct {
	title  string
	artist string
}

func normalizeTrack(t models.Track) normalized {
	return normalized{title: NormalizeTitle(t.Title), artist: NormalizeArtist(t.Artist)}
}

func normalizeAll(tracks []models.Track) []normalized {
	out := make([]normalized, len(tracks))
	for i, t := range tracks {
		out[i] = normalizeTrack(t)
	}
	return out
}

// similar is the conjunctive rule: title and artist must each match independently.
func (n normalized) similar(o normalized) bool {
	return fieldMatches(n.title, o.title) && fieldMatches(n.artist, o.artist)
}

// average returns the mean of the title and artist similarities.
func (n normalized) average(o normalized) float64 {
	return (Similarity(n.title, o.title) + Similarity(n.artist, o.artist)) / 2
}

// IsSimilar reports whether a and b refer to the same track.
func IsSimilar(a, b models.Track) bool {
	return normalizeTrack(a).similar(normalizeTrack(b))
}

// CommonSongs returns the reference records that have a similar, not yet consumed local record.
//
// Reference records are visited in order and each claims the first unconsumed similar local record.
// Consumption is keyed on the literal "title - artist" identity of the local record.
func CommonSongs(reference, local []models.Track) []models.Track {
	common := []models.Track{}
	refNorm, localNorm := normalizeAll(reference), normalizeAll(local)
	consumed := make(map[string]struct{}, len(local))

	for i, ref := range reference {
		for j, loc := range local {
			id := loc.Identity()
			if _, taken := consumed[id]; taken {
				continue
			}
			if refNorm[i].similar(localNorm[j]) {
				common = append(common, ref)
				consumed[id] = struct{}{}
				break
			}
		}
	}
	return common
}

// ReferenceOnlySongs returns the reference records with no similar local record.
func ReferenceOnlySongs(reference, local []models.Track) []models.Track {
	return unmatched(reference, local)
}

// LocalOnlySongs returns the local records with no similar reference record.
func LocalOnlySongs(reference, local []models.Track) []models.Track {
	return unmatched(local, reference)
}

// unmatched returns the records of subject that are not similar to any record of other.
func unmatched(subject, other []models.Track) []models.Track {
	out := []models.Track{}
	otherNorm := normalizeAll(other)

	for _, t := range subject {
		n := normalizeTrack(t)
		found := false
		for _, o := range otherNorm {
			if n.similar(o) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, t)
		}
	}
	return out
}

// Compare runs the three classifications over the same inputs.
func Compare(reference, local []models.Track) models.ComparisonBundle {
	return models.ComparisonBundle{
		Common:        CommonSongs(reference, local),
		ReferenceOnly: ReferenceOnlySongs(reference, local),
		LocalOnly:     LocalOnlySongs(reference, local),
	}
}

// BestEffortMissing scores each reference record by the best average of title and artist similarity against the local catalog.
//
// A candidate whose average reaches [AcceptanceThreshold] counts as a perfect match and ends the scan for that record.
// Records whose best average stays below the threshold are returned with MatchScore set; the inputs are not modified.
func BestEffortMissing(reference, local []models.Track) []models.ScoredTrack {
	missing := []models.ScoredTrack{}
	localNorm := normalizeAll(local)

	for _, ref := range reference {
		n := normalizeTrack(ref)
		best := 0.0
		for _, o := range localNorm {
			avg := n.average(o)
			if meetsThreshold(avg) {
				best = 1.0
				break
			}
			if avg > best {
				best = avg
			}
		}
		if !meetsThreshold(best) {
			score := best
			missing = append(missing, models.ScoredTrack{Track: ref, MatchScore: &score})
		}
	}
	return missing
}
