package pipeline

import (
	"log"
	"regexp"
	"strings"
)

var (
	markupTagRe     = regexp.MustCompile(`<[^>]+>`)
	whitespaceRunRe = regexp.MustCompile(`\s+`)

	companyName = `([A-Z][A-Za-z]+(?:\s+(?:GmbH|AG|Inc|Ltd|SE|KG))?(?:\s+[A-Z][A-Za-z]+)*)`

	hiringCompanyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:bei|für|at|von|for)\s+` + companyName),
		regexp.MustCompile(companyName + `\s+(?:sucht|is hiring|seeks|employs)\b`),
		regexp.MustCompile(`Welcome to\s+` + companyName),
		regexp.MustCompile(`working at\s+` + companyName),
	}

	legalFormReplacer = strings.NewReplacer(" GmbH", "", " AG", "", " Inc", "", " Ltd", "")
)

// ExtractHiringCompany looks for the real hiring company inside a job
// description. Postings from recruiters and agencies often name the actual
// employer in the text; when a plausible capitalized name differs from the
// posting company, it wins. Returns "" when nothing better is found.
func ExtractHiringCompany(description, originalCompany string) string {
	if description == "" {
		return ""
	}

	text := markupTagRe.ReplaceAllString(description, " ")
	text = strings.TrimSpace(whitespaceRunRe.ReplaceAllString(text, " "))

	for _, pattern := range hiringCompanyPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			name := strings.TrimSpace(match[1])
			if len(name) <= 2 {
				continue
			}
			normalized := strings.TrimSpace(legalFormReplacer.Replace(name))
			if sameCompany(normalized, originalCompany) {
				continue
			}
			log.Printf("Found hiring company %q in description, differs from posting company %q", name, originalCompany)
			return name
		}
	}
	return ""
}

// sameCompany treats names as identical when either contains the other,
// case-insensitive. Catches "Acme" vs "Acme GmbH" vs "ACME Recruiting".
func sameCompany(candidate, original string) bool {
	if original == "" {
		return false
	}
	c := strings.ToLower(candidate)
	o := strings.ToLower(original)
	return strings.Contains(o, c) || strings.Contains(c, o)
}
