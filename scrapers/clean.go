package scrapers

import (
	"log"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var blankLineRunRe = regexp.MustCompile(`\n{3,}`)

// CleanDescription converts scraped job description markup to readable
// plain text: scripts and styles stripped, block boundaries preserved as
// newlines, runs of blank lines collapsed.
func CleanDescription(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		log.Printf("Warning: could not parse description markup: %v", err)
		return strings.TrimSpace(html)
	}

	doc.Find("script, style, noscript").Remove()

	doc.Find("br").Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithHtml("\n")
	})
	doc.Find("p, div, li, h1, h2, h3, h4, ul, ol").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	text := doc.Text()

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		lines = append(lines, strings.TrimSpace(line))
	}
	text = strings.Join(lines, "\n")
	text = blankLineRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
