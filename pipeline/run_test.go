package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"werkagent/models"
	"werkagent/scrapers"
)

type fakeSource struct {
	name    string
	results []models.JobSummary
	details map[string]string
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) SearchJobs(keywords, location string, maxResults int) ([]models.JobSummary, error) {
	return f.results, nil
}

func (f *fakeSource) GetJobDetails(url string) (*models.JobDetail, error) {
	desc, ok := f.details[url]
	if !ok {
		return nil, fmt.Errorf("no detail for %s", url)
	}
	return &models.JobDetail{URL: url, Description: desc}, nil
}

func TestRunnerFiltersAndDeduplicates(t *testing.T) {
	shared := models.JobSummary{
		Title: "Werkstudent Data Analyst (m/w/d)", Company: "Acme",
		Location: "Köln", URL: "https://jobs.example/1", Source: "LinkedIn",
	}
	excluded := models.JobSummary{
		Title: "Senior Werkstudent Data Analyst Lead", Company: "Acme",
		Location: "Köln", URL: "https://jobs.example/2", Source: "LinkedIn",
	}
	noDetail := models.JobSummary{
		Title: "Werkstudent Data Analyst BI", Company: "Beta",
		Location: "Köln", URL: "https://jobs.example/3", Source: "StepStone",
	}

	linkedin := &fakeSource{
		name:    "LinkedIn",
		results: []models.JobSummary{shared, excluded},
		details: map[string]string{shared.URL: "Great Werkstudent role."},
	}
	stepstone := &fakeSource{
		name:    "StepStone",
		results: []models.JobSummary{shared, noDetail},
		details: map[string]string{shared.URL: "duplicate detail"},
	}

	r := &Runner{
		Sources:     []scrapers.JobSource{linkedin, stepstone},
		ResultsDir:  t.TempDir(),
		MaxPerCombo: 10,
	}

	jobs, path, err := r.Run([]string{"Köln"}, []string{"Werkstudent Data Analyst"})
	require.NoError(t, err)

	// The excluded title is dropped, the shared URL kept once, and the job
	// without a fetchable description carries the fallback text.
	require.Len(t, jobs, 2)
	assert.Equal(t, "https://jobs.example/1", jobs[0].URL)
	assert.Equal(t, "Great Werkstudent role.", jobs[0].Description)
	assert.Equal(t, "https://jobs.example/3", jobs[1].URL)
	assert.Equal(t, "Description not found or fetching failed.", jobs[1].Description)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var saved []models.EnrichedJob
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Len(t, saved, 2)
}

func TestRunnerPersistFailureDoesNotFailRun(t *testing.T) {
	src := &fakeSource{
		name: "LinkedIn",
		results: []models.JobSummary{{
			Title: "Werkstudent Marketing", Company: "Acme",
			Location: "Bonn", URL: "https://jobs.example/9", Source: "LinkedIn",
		}},
		details: map[string]string{"https://jobs.example/9": "desc"},
	}
	r := &Runner{
		Sources:     []scrapers.JobSource{src},
		ResultsDir:  t.TempDir(),
		MaxPerCombo: 10,
		Persist: func([]models.EnrichedJob) error {
			return fmt.Errorf("db down")
		},
	}
	jobs, _, err := r.Run([]string{"Bonn"}, []string{"Werkstudent Marketing"})
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}

func TestRunnerEmptyResultIsError(t *testing.T) {
	empty := &fakeSource{name: "LinkedIn"}
	r := &Runner{
		Sources:     []scrapers.JobSource{empty},
		ResultsDir:  t.TempDir(),
		MaxPerCombo: 10,
	}
	_, _, err := r.Run([]string{"Köln"}, []string{"Werkstudent"})
	assert.Error(t, err)
}
