package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGemini(t *testing.T, handler http.HandlerFunc) *GeminiService {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewGeminiService("test-key", "gemini-1.5-pro")
	svc.baseURL = server.URL
	return svc
}

func TestGenerateText(t *testing.T) {
	svc := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.String(), "generateContent")
		assert.Contains(t, r.URL.RawQuery, "key=test-key")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"hello"}]}}]}`))
	})

	text, err := svc.GenerateText("say hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestGenerateTextNoCandidates(t *testing.T) {
	svc := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := svc.GenerateText("blocked prompt")
	assert.Error(t, err)
}

func TestGenerateTextAPIError(t *testing.T) {
	svc := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusTooManyRequests)
	})

	_, err := svc.GenerateText("prompt")
	assert.ErrorContains(t, err, "Gemini API error")
}

func TestGenerateTextWithoutKey(t *testing.T) {
	svc := NewGeminiService("", "gemini-1.5-pro")
	_, err := svc.GenerateText("prompt")
	assert.ErrorContains(t, err, "GEMINI_API_KEY")
}

func TestSuggestRoleTitles(t *testing.T) {
	svc := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Werkstudent Data Analysis, Werkstudent Softwareentwicklung Python, Backend Engineer, Werkstudent DevOps"}]}}]}`))
	})

	titles, err := svc.SuggestRoleTitles("resume text", 3)
	require.NoError(t, err)
	// The non-Werkstudent entry is dropped, the rest capped at n.
	assert.Equal(t, []string{
		"Werkstudent Data Analysis",
		"Werkstudent Softwareentwicklung Python",
		"Werkstudent DevOps",
	}, titles)
}

func TestParseRoleTitlesNewlineFallback(t *testing.T) {
	titles := parseRoleTitles("Werkstudent IT-Support\nWerkstudent Webentwicklung Frontend")
	assert.Equal(t, []string{"Werkstudent IT-Support", "Werkstudent Webentwicklung Frontend"}, titles)
}

func TestSuggestRoleTitlesEmptyResume(t *testing.T) {
	svc := NewGeminiService("test-key", "")
	_, err := svc.SuggestRoleTitles("   ", 3)
	assert.Error(t, err)
}
