package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_CaseAndJunk(t *testing.T) {
	assert.Equal(t, Normalize("WERKSTUDENT"), Normalize("  Werkstudent (m/w/d) - "))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"  Werkstudent (m/w/d) - ",
		"– Werkstudent Data Analysis –",
		"WERKSTUDENT   Softwareentwicklung",
		"",
		"   ",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "not idempotent for %q", in)
	}
}

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "werkstudent data analysis", Normalize("Werkstudent \t Data\n Analysis"))
}

func TestNormalize_StripsLeadingNonAlphanumeric(t *testing.T) {
	assert.Equal(t, "werkstudent", Normalize("*** Werkstudent"))
}

func TestExtractKeywords(t *testing.T) {
	kws := ExtractKeywords(Normalize("Werkstudent Data Analyst (m/w/d)"))
	assert.Equal(t, []string{"werkstudent", "data", "analyst"}, kws)
}

func TestExtractKeywords_DropsSingleChars(t *testing.T) {
	kws := ExtractKeywords("werkstudent m w d backend")
	assert.Equal(t, []string{"werkstudent", "backend"}, kws)
}

func TestContainsAllKeywords(t *testing.T) {
	assert.True(t, ContainsAllKeywords("werkstudent data analyst berlin", []string{"werkstudent", "data"}))
	assert.False(t, ContainsAllKeywords("werkstudent backend", []string{"werkstudent", "data"}))
	assert.True(t, ContainsAllKeywords("anything", nil))
}
