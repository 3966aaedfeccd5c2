package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleMatchesSuggestion(t *testing.T) {
	cases := []struct {
		name      string
		found     string
		suggested string
		want      bool
	}{
		{"exact role match", "Werkstudent Data Analyst (m/w/d)", "Werkstudent Data Analyst", true},
		{"working student variant", "Working Student Data Analyst", "Werkstudent Data Analyst", true},
		{"missing werkstudent token", "Data Analyst (m/w/d)", "Werkstudent Data Analyst", false},
		{"missing suggestion term", "Werkstudent Marketing", "Werkstudent Data Analyst", false},
		{"generic suggestion matches any werkstudent title", "Werkstudent Logistik", "Werkstudent", true},
		{"gender markers ignored", "Werkstudent Software Engineering", "Werkstudent (m/w/d) Software Engineering", true},
		{"empty found title", "", "Werkstudent", false},
		{"empty suggestion", "Werkstudent", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TitleMatchesSuggestion(tc.found, tc.suggested))
		})
	}
}

func TestContainsExclusionKeyword(t *testing.T) {
	assert.True(t, ContainsExclusionKeyword("Senior Werkstudent Lead"))
	assert.True(t, ContainsExclusionKeyword("Praktikum im Marketing"))
	assert.True(t, ContainsExclusionKeyword("Ausbildung zum Fachinformatiker"))
	assert.True(t, ContainsExclusionKeyword("Sr. Developer"))
	assert.False(t, ContainsExclusionKeyword("Werkstudent Data Analyst (m/w/d)"))
}

func TestFilterEndToEnd(t *testing.T) {
	suggestion := "Werkstudent Data Analyst"

	survives := func(title string) bool {
		return TitleMatchesSuggestion(title, suggestion) && !ContainsExclusionKeyword(title)
	}

	assert.True(t, survives("Werkstudent Data Analyst (m/w/d)"))
	assert.False(t, survives("Senior Werkstudent Data Analyst Lead"))
	assert.False(t, survives("Praktikant Data Analyst"))
	assert.False(t, survives("Werkstudent Controlling"))
}

func TestExtractHiringCompany(t *testing.T) {
	desc := "Wir suchen Verstärkung bei Acme GmbH für unser Team in Köln."
	assert.Equal(t, "Acme GmbH", ExtractHiringCompany(desc, "Recruitify Personalservice"))

	// Same company in different legal form is not a different employer.
	assert.Equal(t, "", ExtractHiringCompany(desc, "Acme"))

	assert.Equal(t, "", ExtractHiringCompany("", "Acme"))
	assert.Equal(t, "", ExtractHiringCompany("no company names here", "Acme"))
}
