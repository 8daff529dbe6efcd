package matcher

import "testing"

func TestNormalizeTitle(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want string
	}{
		{name: "parenthesized feat", in: "Shape of You (feat. Ed Sheeran)", want: "shape of you"},
		{name: "parenthesized ft", in: "Shape of You (ft. Ed Sheeran)", want: "shape of you"},
		{name: "parenthesized featuring", in: "Shape of You (featuring Ed Sheeran)", want: "shape of you"},
		{name: "parenthesized f.", in: "Lean On (f. MØ)", want: "lean on"},
		{name: "bracketed feat", in: "Shape of You [feat. Ed Sheeran]", want: "shape of you"},
		{name: "dash suffix", in: "Shape of You - feat. Ed Sheeran", want: "shape of you"},
		{name: "bare suffix", in: "Shape of You feat. Ed Sheeran", want: "shape of you"},
		{name: "bare featuring suffix", in: "Shape of You featuring Ed Sheeran", want: "shape of you"},
		{name: "credit in the middle keeps words apart", in: "Hold On (feat. Someone)Remix", want: "hold on remix"},
		{name: "ampersand", in: "Rock & Roll", want: "rock and roll"},
		{name: "ampersand without spaces", in: "Rock&Roll", want: "rock and roll"},
		{name: "whitespace", in: "  Hello   World  ", want: "hello world"},
		{name: "digits preserved", in: "1999", want: "1999"},
		{name: "diacritics preserved", in: "Ça Plane Pour Moi", want: "ça plane pour moi"},
		{name: "decomposed diacritics composed", in: "Cafe\u0301 del Mar", want: "caf\u00e9 del mar"},
		{name: "words starting with ft untouched", in: "FTW", want: "ftw"},
		{name: "leading feat is not a suffix", in: "Feat. Intro", want: "feat. intro"},
		{name: "credit exposed by bracket removal", in: "Z([feat. Q]ft Y)", want: "z"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTitle(tt.in); got != tt.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeArtist(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want string
	}{
		{name: "definite article", in: "The Beatles", want: "beatles"},
		{name: "article with padding", in: "  The   Doors ", want: "doors"},
		{name: "article prefix only as a word", in: "Theatre of Tragedy", want: "theatre of tragedy"},
		{name: "diacritics preserved", in: "Sigur Rós", want: "sigur rós"},
		{name: "apostrophe", in: "Guns N' Roses", want: "guns n roses"},
		{name: "honorific", in: "Dr. Dre", want: "dr dre"},
		{name: "parentheses and dots", in: "(Hed) P.E.", want: "hed pe"},
		{name: "ampersand kept", in: "Earth, Wind & Fire", want: "earth, wind & fire"},
		{name: "digits preserved", in: "Blink-182", want: "blink-182"},
		{name: "repeated article", in: "The The Beatles", want: "beatles"},
		{name: "article followed by a dot", in: "The. Band", want: "band"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeArtist(tt.in); got != tt.want {
				t.Errorf("NormalizeArtist(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	titles := []string{
		"Shape of You (feat. Ed Sheeran)",
		"Song (feat. A (B)) Remix",
		"x(feat. y)feat. z",
		"Song - ft. Someone [feat. Other]",
		"Rock&Roll & Blues",
		"  MIXED   Case\tTabs\n",
		"Sigur Rós & Friends",
		"Title ) ( ]",
		"z([feat. q]ft y)",
		"z([feat. q]f. y)",
		"",
	}
	for _, in := range titles {
		once := NormalizeTitle(in)
		if twice := NormalizeTitle(once); twice != once {
			t.Errorf("NormalizeTitle not idempotent for %q: %q then %q", in, once, twice)
		}
	}

	artists := []string{"The Beatles", "Sigur Rós", "Dr. Dre", "(Hed) P.E.", "  The   Doors ", "AC/DC", "The The Beatles", "The. Band", ""}
	for _, in := range artists {
		once := NormalizeArtist(in)
		if twice := NormalizeArtist(once); twice != once {
			t.Errorf("NormalizeArtist not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
