package scrapers

import (
	"math/rand"
	"time"

	"werkagent/models"
)

// JobSource is one scrapeable job board. Implementations own their board's
// navigation quirks; callers only see summaries and details.
type JobSource interface {
	Name() string
	SearchJobs(keywords, location string, maxResults int) ([]models.JobSummary, error)
	GetJobDetails(url string) (*models.JobDetail, error)
}

// politeDelay sleeps a randomized interval between network-facing actions
// so request timing does not look mechanical.
func politeDelay(minMs, maxMs int) {
	time.Sleep(time.Duration(minMs+rand.Intn(maxMs-minMs+1)) * time.Millisecond)
}
