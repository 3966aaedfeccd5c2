package scrapers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepStoneBuildSearchURL(t *testing.T) {
	s := &StepStoneScraper{}

	assert.Equal(t,
		"https://www.stepstone.de/jobs/Werkstudent-Data-Analyst?location=K%C3%B6ln",
		s.buildSearchURL("Werkstudent Data Analyst", "Köln", 1))

	assert.Equal(t,
		"https://www.stepstone.de/jobs/Werkstudent?location=Bonn&page=3",
		s.buildSearchURL("Werkstudent", "Bonn", 3))

	assert.Equal(t,
		"https://www.stepstone.de/jobs/Werkstudent",
		s.buildSearchURL(" Werkstudent ", "", 1))
}

func TestLinkedInBuildSearchURL(t *testing.T) {
	s := &LinkedInScraper{}
	got := s.buildSearchURL("Werkstudent", "Köln")
	assert.Contains(t, got, "https://www.linkedin.com/jobs/search/?")
	assert.Contains(t, got, "keywords=Werkstudent")
	assert.Contains(t, got, "location=K%C3%B6ln")
}
