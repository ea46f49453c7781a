// Package matcher scores how closely two person names match.
package matcher

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/dtnitsch/lead-enricher/models"
)

// Fixed confidence cut-offs. They label a match; the run's
// match_score_threshold decides whether it is used.
const (
	HighThreshold   = 85
	MediumThreshold = 65
)

var folder = cases.Fold()

// sortedTokens normalizes a name so word order, case and Unicode
// representation do not affect the score.
func sortedTokens(s string) string {
	s = folder.String(norm.NFKC.String(s))
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// Similarity returns a token-sort ratio between 0 and 100: the Indel
// similarity 2*LCS/(len(a)+len(b)) of the sorted-token forms, in runes,
// truncated. Blank input on either side scores 0.
func Similarity(a, b string) int {
	a, b = sortedTokens(a), sortedTokens(b)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}
	ra, rb := []rune(a), []rune(b)
	return 200 * lcsLength(ra, rb) / (len(ra) + len(rb))
}

// lcsLength is the length of the longest common subsequence of a and b.
func lcsLength(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// ConfidenceLabel buckets a score with the default thresholds.
func ConfidenceLabel(score int) string {
	return ConfidenceLabelWith(score, HighThreshold, MediumThreshold)
}

// ConfidenceLabelWith buckets a score: >= high is High, >= medium is Medium.
func ConfidenceLabelWith(score, high, medium int) string {
	switch {
	case score >= high:
		return models.ConfidenceHigh
	case score >= medium:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}
