package services

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"werkagent/models"
	"werkagent/utils"
)

// TextGenerator is the slice of the language service the synthesizer needs.
type TextGenerator interface {
	PlaceholderDocText(docType, language string) (string, error)
}

// DocumentSynthesizer renders on-demand placeholder documents for upload
// slots. Each artifact gets a fresh randomized path so concurrent or
// repeated runs never collide.
type DocumentSynthesizer struct {
	generator TextGenerator
	outputDir string
}

func NewDocumentSynthesizer(generator TextGenerator, outputDir string) *DocumentSynthesizer {
	return &DocumentSynthesizer{generator: generator, outputDir: outputDir}
}

var unsafePathChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// Synthesize requests placeholder text and renders it into a page-formatted
// document. A missing or empty response from the language service is a
// failure, not retried.
func (s *DocumentSynthesizer) Synthesize(docType, language, slotHint string) (*models.GeneratedDocument, error) {
	text, err := s.generator.PlaceholderDocText(docType, language)
	if err != nil {
		return nil, fmt.Errorf("placeholder text generation failed: %w", err)
	}

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create documents directory: %w", err)
	}

	safeHint := unsafePathChars.ReplaceAllString(slotHint, "_")
	filename := fmt.Sprintf("placeholder_%s_%s_%d_%d.docx", docType, safeHint, time.Now().UnixNano(), rand.Intn(9000)+1000)
	path := filepath.Join(s.outputDir, filename)

	if err := utils.RenderDocument(text, path); err != nil {
		return nil, fmt.Errorf("failed to render placeholder document: %w", err)
	}

	log.Printf("Generated placeholder document: %s", path)
	return &models.GeneratedDocument{
		Type:     docType,
		Language: language,
		Path:     path,
	}, nil
}
