package models

// JobSummary is one scraped job card from a job board. URL is the identity
// key used for cross-source deduplication within a run.
type JobSummary struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	URL      string `json:"url"`
	Source   string `json:"source"`
}

// JobDetail carries the best-effort cleaned description for a posting.
type JobDetail struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// EnrichedJob is a JobSummary merged with its fetched detail.
type EnrichedJob struct {
	JobSummary
	Description string `json:"description,omitempty"`
}

// Enrich merges a detail record into a summary, keeping the source tag.
func Enrich(summary JobSummary, detail JobDetail) EnrichedJob {
	return EnrichedJob{
		JobSummary:  summary,
		Description: detail.Description,
	}
}
