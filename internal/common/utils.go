package common

import (
	"net/url"
	"regexp"
	"strings"
)

var markdownLinkPattern = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)

// SanitizeURL performs basic cleanup on URLs to handle common copy-paste issues.
// Removes whitespace, trailing punctuation and markdown link wrappers.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	// [click here](https://example.com) -> https://example.com
	if matches := markdownLinkPattern.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = matches[1]
	}

	trailingChars := []string{",", ".", ")", "}", "]", "\"", "'", ">", ";"}
	for _, char := range trailingChars {
		cleaned = strings.TrimSuffix(cleaned, char)
	}

	leadingChars := []string{"(", "[", "<", "\"", "'"}
	for _, char := range leadingChars {
		cleaned = strings.TrimPrefix(cleaned, char)
	}

	return strings.TrimSpace(cleaned)
}

// NormalizeWebsite turns a spreadsheet website cell into a fetchable URL.
// Bare domains get an https:// scheme. Anything that still fails to parse
// as an http(s) URL with a host yields "".
func NormalizeWebsite(raw string) string {
	cleaned := SanitizeURL(raw)
	if cleaned == "" || strings.Contains(cleaned, " ") {
		return ""
	}
	lower := strings.ToLower(cleaned)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		if strings.Contains(cleaned, "://") {
			return ""
		}
		cleaned = "https://" + cleaned
	}

	parsed, err := url.Parse(cleaned)
	if err != nil || parsed.Host == "" {
		return ""
	}
	if strings.ContainsAny(parsed.Host, "{}[]<>\"'") {
		return ""
	}
	return parsed.String()
}
