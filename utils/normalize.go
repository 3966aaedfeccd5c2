package utils

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	trailingJunkRe  = regexp.MustCompile(`(?:[\s()/-]+|\b[a-z0-9]\b)+$`)
	leadingNonAlnum = regexp.MustCompile(`^[^a-z0-9]+`)
	whitespaceRunRe = regexp.MustCompile(`\s+`)
	bracketSlashRe  = regexp.MustCompile(`[()/\\]`)
)

// Normalize canonicalizes free text for title and keyword comparison so that
// visual variants like "Werkstudent (m/w/d) –" and " WERKSTUDENT " compare
// equal. Trailing runs of whitespace, parentheses, hyphens, slashes and
// isolated single-character tokens (gender markers) are stripped, leading
// non-alphanumerics removed, internal whitespace collapsed.
// Idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = norm.NFC.String(text)
	text = strings.ToLower(text)
	text = strings.TrimSpace(trailingJunkRe.ReplaceAllString(text, ""))
	text = strings.TrimSpace(leadingNonAlnum.ReplaceAllString(text, ""))
	text = strings.TrimSpace(whitespaceRunRe.ReplaceAllString(text, " "))
	return text
}

// ExtractKeywords returns the matching keywords of a normalized title:
// bracket and slash characters become separators, words of length 1 are
// dropped.
func ExtractKeywords(normalizedTitle string) []string {
	cleaned := bracketSlashRe.ReplaceAllString(normalizedTitle, " ")
	cleaned = strings.TrimSpace(whitespaceRunRe.ReplaceAllString(cleaned, " "))

	var keywords []string
	for _, word := range strings.Fields(cleaned) {
		if len([]rune(word)) > 1 {
			keywords = append(keywords, word)
		}
	}
	return keywords
}

// ContainsAllKeywords reports whether every keyword occurs as a substring of
// the normalized candidate text.
func ContainsAllKeywords(normalizedText string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(normalizedText, kw) {
			return false
		}
	}
	return true
}
