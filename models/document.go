package models

// Document types the synthesizer can produce.
const (
	DocTypeCoverLetter   = "cover_letter"
	DocTypeOtherDocument = "other_document"
)

// GeneratedDocument is an ephemeral placeholder artifact rendered for a
// single upload slot. Never reused across slots or runs.
type GeneratedDocument struct {
	Type     string `json:"type"`
	Language string `json:"language"`
	Path     string `json:"path"`
}
