package matcher

import (
	"regexp"
	"slices"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// AcceptanceThreshold is the minimum similarity at which two normalized values are treated as the same.
//
// It is shared by every classification so their results stay consistent.
const AcceptanceThreshold = 0.90

var (
	jaroWinkler = metrics.NewJaroWinkler()
	numberRe    = regexp.MustCompile(`\d+`)
)

// Similarity returns the Jaro-Winkler similarity of a and b in [0, 1].
//
// Two empty strings score 1 and an empty string against a non-empty one scores 0.
func Similarity(a, b string) float64 {
	return strutil.Similarity(a, b, jaroWinkler)
}

// meetsThreshold reports whether score is at or above [AcceptanceThreshold].
func meetsThreshold(score float64) bool {
	return score >= AcceptanceThreshold
}

// numbersAgree reports whether a and b contain the same sequence of digit runs.
//
// Jaro-Winkler rewards the shared prefix of "song 1" and "song 3" enough to clear the threshold,
// so values that differ only by a number are rejected here instead.
func numbersAgree(a, b string) bool {
	return slices.Equal(numberRe.FindAllString(a, -1), numberRe.FindAllString(b, -1))
}

// fieldMatches applies the acceptance rule to one pair of normalized values.
func fieldMatches(a, b string) bool {
	return meetsThreshold(Similarity(a, b)) && numbersAgree(a, b)
}
