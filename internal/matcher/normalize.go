package matcher

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// featKeyword matches the credit keyword followed by a dot or whitespace, so words like "ftw" are left alone.
const featKeyword = `(?:featuring|feat|ft|f\.)(?:\.|\s)`

var (
	parenFeatRe   = regexp.MustCompile(`\(\s*` + featKeyword + `[^)]*\)`)
	bracketFeatRe = regexp.MustCompile(`\[\s*` + featKeyword + `[^\]]*\]`)
	dashFeatRe    = regexp.MustCompile(`\s-\s*` + featKeyword + `.*$`)
	bareFeatRe    = regexp.MustCompile(`\s[(\[]?(?:featuring|feat\.?|ft\.)\s.*$`)
	whitespaceRe  = regexp.MustCompile(`\s+`)

	artistPunct = strings.NewReplacer(".", "", "'", "", "(", "", ")", "")
)

// NormalizeTitle returns the comparable form of a track title.
//
// Featured-artist credits are replaced by a single space before whitespace is collapsed,
// so removing a credit never joins two words. Stripping repeats until nothing changes,
// since removing one credit can expose another.
func NormalizeTitle(raw string) string {
	s := fold(raw)
	s = strings.ReplaceAll(s, "&", " and ")
	return untilStable(s, stripCredits)
}

// NormalizeArtist returns the comparable form of an artist name.
func NormalizeArtist(raw string) string {
	return untilStable(fold(raw), func(s string) string {
		s = strings.TrimPrefix(strings.TrimSpace(s), "the ")
		return artistPunct.Replace(s)
	})
}

func stripCredits(s string) string {
	for _, re := range []*regexp.Regexp{parenFeatRe, bracketFeatRe, dashFeatRe, bareFeatRe} {
		s = re.ReplaceAllString(s, " ")
	}
	return s
}

// untilStable applies step and collapses whitespace until the result stops changing.
// Every step only removes text, so the loop ends.
func untilStable(s string, step func(string) string) string {
	s = collapse(s)
	for {
		next := collapse(step(s))
		if next == s {
			return s
		}
		s = next
	}
}

func fold(s string) string {
	return norm.NFC.String(strings.ToLower(s))
}

func collapse(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
