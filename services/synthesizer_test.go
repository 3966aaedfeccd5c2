package services

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"werkagent/models"
)

type stubGenerator struct {
	text string
	err  error
}

func (g *stubGenerator) PlaceholderDocText(docType, language string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

func TestSynthesize_WritesDocument(t *testing.T) {
	dir := t.TempDir()
	s := NewDocumentSynthesizer(&stubGenerator{text: "[Platzhalter Dokument]\nDas eigentliche Dokument wird nachgereicht."}, dir)

	doc, err := s.Synthesize(models.DocTypeOtherDocument, "German", "questions[cf_1]")
	assert.NoError(t, err)
	assert.Equal(t, models.DocTypeOtherDocument, doc.Type)
	assert.True(t, strings.HasSuffix(doc.Path, ".docx"))
	assert.NotContains(t, doc.Path, "[")

	_, statErr := os.Stat(doc.Path)
	assert.NoError(t, statErr)
}

func TestSynthesize_FreshPathsPerSlot(t *testing.T) {
	dir := t.TempDir()
	s := NewDocumentSynthesizer(&stubGenerator{text: "placeholder"}, dir)

	a, err := s.Synthesize(models.DocTypeOtherDocument, "German", "slot")
	assert.NoError(t, err)
	b, err := s.Synthesize(models.DocTypeOtherDocument, "German", "slot")
	assert.NoError(t, err)
	assert.NotEqual(t, a.Path, b.Path)
}

func TestSynthesize_GenerationFailure(t *testing.T) {
	s := NewDocumentSynthesizer(&stubGenerator{err: fmt.Errorf("no candidates returned")}, t.TempDir())

	_, err := s.Synthesize(models.DocTypeCoverLetter, "German", "cover")
	assert.Error(t, err)
}
