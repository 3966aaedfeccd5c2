package pipeline

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"werkagent/models"
	"werkagent/scrapers"
)

// Runner drives the scraping phase: every location is combined with every
// suggested role, both boards searched per combination, survivors enriched
// with their descriptions and written out as one JSON file.
type Runner struct {
	Sources     []scrapers.JobSource
	ResultsDir  string
	MaxPerCombo int

	// Persist is called with the collected jobs when set; persistence
	// failures are logged and do not fail the run.
	Persist func([]models.EnrichedJob) error
}

// Run executes all combinations sequentially and returns the collected jobs
// with the path of the saved results file. An empty result is an error for
// the caller to turn into a failing exit.
func (r *Runner) Run(locations, roles []string) ([]models.EnrichedJob, string, error) {
	var collected []models.EnrichedJob

	// Process-lifetime dedupe: a posting found under several role searches
	// is handled once.
	seen := make(map[string]bool)

	for _, location := range locations {
		log.Printf("=== Processing location: %s ===", location)
		for i, role := range roles {
			log.Printf("Searching role (%d/%d): %q in %q", i+1, len(roles), role, location)
			for _, source := range r.Sources {
				collected = append(collected, r.searchCombo(source, role, location, seen)...)
			}
		}
	}

	if len(collected) == 0 {
		return nil, "", fmt.Errorf("no suitable jobs found for any role/location combination")
	}

	path, err := r.saveResults(collected)
	if err != nil {
		return nil, "", err
	}

	if r.Persist != nil {
		if err := r.Persist(collected); err != nil {
			log.Printf("Warning: could not persist jobs: %v", err)
		}
	}

	log.Printf("Collected %d jobs, saved to %s", len(collected), path)
	return collected, path, nil
}

// searchCombo runs one board for one role/location pair. Board errors are
// logged and yield an empty slice so the remaining combinations still run.
func (r *Runner) searchCombo(source scrapers.JobSource, role, location string, seen map[string]bool) []models.EnrichedJob {
	summaries, err := source.SearchJobs(role, location, r.MaxPerCombo)
	if err != nil {
		log.Printf("Warning: %s search failed for %q in %q: %v", source.Name(), role, location, err)
		return nil
	}
	log.Printf("Found %d %s cards for %q in %q", len(summaries), source.Name(), role, location)

	var kept []models.EnrichedJob
	for _, summary := range summaries {
		if summary.URL == "" || seen[summary.URL] {
			continue
		}
		if !TitleMatchesSuggestion(summary.Title, role) || ContainsExclusionKeyword(summary.Title) {
			log.Printf("Excluding job: %q", summary.Title)
			continue
		}

		detail, err := source.GetJobDetails(summary.URL)
		if err != nil || detail == nil || detail.Description == "" {
			log.Printf("Warning: no description for %q: %v", summary.Title, err)
			detail = &models.JobDetail{URL: summary.URL, Description: "Description not found or fetching failed."}
		}

		kept = append(kept, models.Enrich(summary, *detail))
		seen[summary.URL] = true
	}
	log.Printf("Kept %d jobs for combo %q in %q via %s", len(kept), role, location, source.Name())
	return kept
}

func (r *Runner) saveResults(jobs []models.EnrichedJob) (string, error) {
	if err := os.MkdirAll(r.ResultsDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create results directory: %w", err)
	}

	filename := fmt.Sprintf("combined_jobs_%s.json", time.Now().Format("20060102_150405"))
	path := filepath.Join(r.ResultsDir, filename)

	data, err := json.MarshalIndent(jobs, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize jobs: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write results file: %w", err)
	}
	return path, nil
}
