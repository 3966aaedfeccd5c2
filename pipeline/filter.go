package pipeline

import (
	"regexp"
	"strings"
)

// exclusionKeywords disqualify a title outright: seniority levels,
// internships and apprenticeships are never Werkstudent roles.
var exclusionKeywords = []string{
	"senior", "lead", "principal", "sr.", "director",
	"intern", "internship", "praktikant", "praktikum",
	"ausbildung", "auszubildende",
}

// genericTitleTerms carry no signal when comparing a found title against a
// suggested role: the Werkstudent framing itself and German gender markers.
var genericTitleTerms = map[string]bool{
	"werkstudent": true,
	"working":     true,
	"student":     true,
	"m":           true,
	"w":           true,
	"d":           true,
	"gn":          true,
	"in":          true,
}

var wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// TitleMatchesSuggestion reports whether a scraped title plausibly matches a
// suggested Werkstudent role. The title must contain the Werkstudent framing
// literally, and every non-generic term of the suggestion must appear in it.
// A fully generic suggestion ("Werkstudent") matches any Werkstudent title.
func TitleMatchesSuggestion(foundTitle, suggestedTitle string) bool {
	if foundTitle == "" || suggestedTitle == "" {
		return false
	}

	foundLower := strings.ToLower(foundTitle)
	if !strings.Contains(foundLower, "werkstudent") && !strings.Contains(foundLower, "working student") {
		return false
	}

	suggestionTerms := significantTerms(suggestedTitle)
	if len(suggestionTerms) == 0 {
		return true
	}

	for _, term := range suggestionTerms {
		if !strings.Contains(foundLower, term) {
			return false
		}
	}
	return true
}

// significantTerms extracts the distinguishing words of a suggested title.
func significantTerms(title string) []string {
	var terms []string
	seen := make(map[string]bool)
	for _, word := range wordRe.FindAllString(strings.ToLower(title), -1) {
		if genericTitleTerms[word] || seen[word] {
			continue
		}
		terms = append(terms, word)
		seen[word] = true
	}
	return terms
}

// ContainsExclusionKeyword reports whether a title contains any disqualifying
// keyword, case-insensitive substring match.
func ContainsExclusionKeyword(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range exclusionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
