package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"werkagent/config"
	"werkagent/database"
	"werkagent/models"
	"werkagent/parsers"
	"werkagent/pipeline"
	"werkagent/scrapers"
	"werkagent/services"
)

var (
	runNumTitles   int
	runMaxPerCombo int
	runLocations   []string
	runHeadless    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Suggest roles from the resume, scrape both boards and collect matching jobs",
	RunE:  runCollect,
}

func init() {
	runCmd.Flags().IntVar(&runNumTitles, "num-titles", 3, "how many Werkstudent role types to ask for")
	runCmd.Flags().IntVar(&runMaxPerCombo, "max-per-combo", 10, "max results per role/location/board combination")
	runCmd.Flags().StringSliceVar(&runLocations, "locations", nil, "override configured search locations")
	runCmd.Flags().BoolVar(&runHeadless, "headless", true, "run the browser headless")
	rootCmd.AddCommand(runCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg := config.GetAppConfig()

	log.Printf("--- Phase 1: Resume analysis and role suggestion ---")
	extractor := parsers.NewPDFExtractor()
	resumeText, err := extractor.ExtractFromFile(cfg.Applicant.ResumePath)
	if err != nil {
		return fmt.Errorf("could not read resume text from %s: %w", cfg.Applicant.ResumePath, err)
	}

	gemini := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
	roles, err := gemini.SuggestRoleTitles(resumeText, runNumTitles)
	if err != nil {
		return fmt.Errorf("no suitable Werkstudent roles suggested: %w", err)
	}

	log.Printf("--- Phase 2: Scraping jobs for suggested roles ---")
	session, err := scrapers.NewBrowserSession(runHeadless)
	if err != nil {
		return err
	}
	defer session.Close()

	runner := &pipeline.Runner{
		Sources: []scrapers.JobSource{
			scrapers.NewLinkedInScraper(session.Ctx),
			scrapers.NewStepStoneScraper(session.Ctx),
		},
		ResultsDir:  cfg.ResultsDir,
		MaxPerCombo: runMaxPerCombo,
		Persist:     persistHook(cfg),
	}

	locations := runLocations
	if len(locations) == 0 {
		locations = cfg.SearchLocations
	}

	jobs, path, err := runner.Run(locations, roles)
	if err != nil {
		return err
	}

	log.Printf("--- Scraping and job collection complete ---")
	log.Printf("Combined job data saved to: %s", path)
	log.Printf("Total jobs collected: %d", len(jobs))
	return nil
}

// persistHook connects to Postgres when configured; without configuration or
// on connection failure the run proceeds file-only.
func persistHook(cfg config.AppConfig) func([]models.EnrichedJob) error {
	if !cfg.Database.Enabled() {
		return nil
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Printf("Warning: database configured but unreachable, skipping persistence: %v", err)
		return nil
	}
	if err := database.EnsureSchema(db); err != nil {
		log.Printf("Warning: could not ensure job table, skipping persistence: %v", err)
		db.Close()
		return nil
	}
	return func(jobs []models.EnrichedJob) error {
		defer db.Close()
		return database.SaveJobs(db, jobs)
	}
}
