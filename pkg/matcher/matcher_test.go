package matcher

import (
	"testing"

	"github.com/dtnitsch/lead-enricher/models"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "identical", a: "Jane Doe", b: "Jane Doe", want: 100},
		{name: "empty left", a: "", b: "Jane Doe", want: 0},
		{name: "both empty", a: "", b: "", want: 0},
		{name: "whitespace only", a: "   ", b: "Jane Doe", want: 0},
		{name: "token order ignored", a: "Doe Jane", b: "Jane Doe", want: 100},
		{name: "case ignored", a: "JANE DOE", b: "jane doe", want: 100},
		{name: "extra spaces ignored", a: "Jane   Doe ", b: "Jane Doe", want: 100},
		// "doe jane" vs "doe jane q.": 200*8/19
		{name: "middle initial", a: "Jane Doe", b: "Jane Q. Doe", want: 84},
		// "ann lee" vs "annabelle lee": 200*7/20
		{name: "long first name", a: "Ann Lee", b: "Annabelle Lee", want: 70},
		// "doe jane" vs "do jane": 200*7/15
		{name: "truncated surname", a: "Jane Doe", b: "Jane Do", want: 93},
		// only the space is shared: 200*1/13
		{name: "unrelated", a: "Jane Doe", b: "Xi Wu", want: 15},
		// accented letters are single runes that do not match their bare forms: 200*7/20
		{name: "unicode counted in runes", a: "José Núñez", b: "Jose Nunez", want: 70},
		{name: "compatibility forms folded", a: "Ｊａｎｅ Doe", b: "jane doe", want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similarity(tt.a, tt.b); got != tt.want {
				t.Errorf("Similarity(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestLCSLength(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "abc", 0},
		{"abc", "abc", 3},
		{"abcde", "ace", 3},
		{"abc", "xyz", 0},
		{"doe jane", "do jane", 7},
	}
	for _, tt := range tests {
		if got := lcsLength([]rune(tt.a), []rune(tt.b)); got != tt.want {
			t.Errorf("lcsLength(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{{"Jane Doe", "John Doe"}, {"Ana María", "Ana Maria"}, {"Li", "Lee"}}
	for _, p := range pairs {
		if Similarity(p[0], p[1]) != Similarity(p[1], p[0]) {
			t.Errorf("Similarity not symmetric for %q / %q", p[0], p[1])
		}
	}
}

func TestConfidenceLabel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, models.ConfidenceHigh},
		{90, models.ConfidenceHigh},
		{85, models.ConfidenceHigh},
		{84, models.ConfidenceMedium},
		{70, models.ConfidenceMedium},
		{65, models.ConfidenceMedium},
		{64, models.ConfidenceLow},
		{40, models.ConfidenceLow},
		{0, models.ConfidenceLow},
	}
	for _, tt := range tests {
		if got := ConfidenceLabel(tt.score); got != tt.want {
			t.Errorf("ConfidenceLabel(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestConfidenceLabelWith(t *testing.T) {
	if got := ConfidenceLabelWith(50, 60, 40); got != models.ConfidenceMedium {
		t.Errorf("ConfidenceLabelWith(50, 60, 40) = %q, want Medium", got)
	}
}
