package utils

import (
	"strings"

	"baliance.com/gooxml/document"
)

// wrapWidth approximates the printable character width of an A4 page at the
// default font size.
const wrapWidth = 90

// RenderDocument writes text into a page-formatted .docx file, one paragraph
// per input line, long lines word-wrapped.
func RenderDocument(content string, filepath string) error {
	doc := document.New()
	for _, line := range strings.Split(content, "\n") {
		para := doc.AddParagraph()
		para.AddRun().AddText(wrapLine(strings.TrimRight(line, " \t")))
	}
	return doc.SaveToFile(filepath)
}

// wrapLine breaks a line into wrapWidth-sized chunks at word boundaries.
func wrapLine(line string) string {
	if len(line) <= wrapWidth {
		return line
	}
	var b strings.Builder
	lineLen := 0
	for _, word := range strings.Fields(line) {
		if lineLen > 0 && lineLen+1+len(word) > wrapWidth {
			b.WriteString("\n")
			lineLen = 0
		} else if lineLen > 0 {
			b.WriteString(" ")
			lineLen++
		}
		b.WriteString(word)
		lineLen += len(word)
	}
	return b.String()
}
