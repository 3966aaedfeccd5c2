package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1/models"

type GeminiRequest struct {
	Contents []Content `json:"contents"`
}

type Content struct {
	Parts []Part `json:"parts"`
	Role  string `json:"role"`
}

type Part struct {
	Text string `json:"text"`
}

type GeminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

// GeminiService is the language suggestion service. It is constructed once
// and passed to every collaborator that needs generated text; configuration
// is lazy so callers may query it before explicit setup.
type GeminiService struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client

	configureOnce sync.Once
	configErr     error
}

func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultGeminiBaseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// ensureConfigured performs lazy configuration on first use.
func (s *GeminiService) ensureConfigured() error {
	s.configureOnce.Do(func() {
		if s.apiKey == "" {
			s.configErr = fmt.Errorf("GEMINI_API_KEY not configured")
			return
		}
		if s.model == "" {
			s.model = "gemini-1.5-pro"
		}
		log.Printf("Gemini service configured with model %s", s.model)
	})
	return s.configErr
}

// GenerateText sends a prompt to the configured model, or to an explicitly
// named one when modelOverride is non-empty. Returns an error on transport
// failure and on empty or safety-filtered responses.
func (s *GeminiService) GenerateText(prompt string, modelOverride ...string) (string, error) {
	if err := s.ensureConfigured(); err != nil {
		return "", err
	}

	model := s.model
	if len(modelOverride) > 0 && modelOverride[0] != "" {
		model = modelOverride[0]
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", s.baseURL, model, s.apiKey)

	requestBody := GeminiRequest{
		Contents: []Content{
			{
				Role:  "user",
				Parts: []Part{{Text: prompt}},
			},
		},
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Gemini API error: %s", b)
	}

	var gemResp GeminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gemResp); err != nil {
		return "", err
	}

	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates returned")
	}

	text := gemResp.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty candidate text (finish reason: %s)", gemResp.Candidates[0].FinishReason)
	}
	return text, nil
}

// SuggestRoleTitles analyzes resume text and returns up to n Werkstudent role
// types the candidate fits.
func (s *GeminiService) SuggestRoleTitles(resumeText string, n int) ([]string, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, fmt.Errorf("resume text is empty")
	}

	prompt := buildRoleSuggestionPrompt(resumeText, n)

	log.Printf("Asking Gemini to suggest %d Werkstudent role types based on resume...", n)
	responseText, err := s.GenerateText(prompt)
	if err != nil {
		return nil, fmt.Errorf("role suggestion failed: %w", err)
	}

	titles := parseRoleTitles(responseText)
	if len(titles) == 0 {
		return nil, fmt.Errorf("could not parse Werkstudent roles from response: %q", responseText)
	}
	if len(titles) > n {
		titles = titles[:n]
	}
	log.Printf("Gemini suggested Werkstudent role types: %v", titles)
	return titles, nil
}

// parseRoleTitles reads a comma-separated role list, falling back to
// newline-separated when the model ignored the format instruction. Only
// entries carrying a werkstudent/working-student token are kept.
func parseRoleTitles(responseText string) []string {
	titles := filterRoleTitles(strings.Split(responseText, ","))
	if len(titles) == 0 {
		titles = filterRoleTitles(strings.Split(responseText, "\n"))
	}
	return titles
}

func filterRoleTitles(raw []string) []string {
	var titles []string
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		lower := strings.ToLower(t)
		if strings.Contains(lower, "werkstudent") || strings.Contains(lower, "working student") {
			titles = append(titles, t)
		}
	}
	return titles
}

// PlaceholderDocText generates self-identifying placeholder text for a
// document type. The prompt requires the output to state its placeholder
// nature so human reviewers are not misled.
func (s *GeminiService) PlaceholderDocText(docType, language string) (string, error) {
	prompt := fmt.Sprintf(`Please generate concise placeholder text in %s for a document of type '%s'.
This text will be used to create a placeholder document for a job application form field that requires this type of document, but where the applicant doesn't have the specific document ready.

The text must clearly state its placeholder nature, for example:
'[Placeholder %s - Generated Content]' followed by 1-2 sentences indicating that the actual document will be submitted later if required.
Keep the text brief and professional.

Now generate the text for: %s`, language, docType, docType, docType)

	log.Printf("Generating placeholder text for document type %s in %s", docType, language)
	return s.GenerateText(prompt)
}

func buildRoleSuggestionPrompt(resumeText string, n int) string {
	return fmt.Sprintf(`Analyze the following resume text for a candidate seeking Werkstudent (Working Student) positions in Germany.

Based on the skills (especially technical skills like programming languages, frameworks, tools), projects, and any mentioned experience, suggest %d specific types of Werkstudent roles this candidate would be well-suited for.

Examples might include:
* Werkstudent Softwareentwicklung (Java/Python/etc.)
* Werkstudent Webentwicklung (Frontend/Backend/Fullstack)
* Werkstudent Data Science / Data Analysis
* Werkstudent IT-Support
* Werkstudent DevOps

Return ONLY a comma-separated list of the suggested Werkstudent role types. Do not include explanations, numbering, or any other text.
Example format: Werkstudent Softwareentwicklung Python, Werkstudent Data Analysis, Werkstudent Webentwicklung Frontend

Resume Text:
--- START RESUME ---
%s
--- END RESUME ---

Suggested Werkstudent Role Types (comma-separated):`, n, resumeText)
}
