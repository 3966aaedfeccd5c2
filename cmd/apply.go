package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"werkagent/config"
	"werkagent/models"
	"werkagent/pipeline"
	"werkagent/services"
)

var (
	applyURL       string
	applyTitle     string
	applyFile      string
	applyIndex     int
	applyWithLogin bool
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Open one job posting, resolve its application form and fill it for review",
	RunE:  runApply,
}

func init() {
	applyCmd.Flags().StringVar(&applyURL, "url", "", "job posting URL")
	applyCmd.Flags().StringVar(&applyTitle, "title", "", "job title to match on career pages")
	applyCmd.Flags().StringVar(&applyFile, "file", "", "collected jobs JSON file to pick from")
	applyCmd.Flags().IntVar(&applyIndex, "index", 0, "index into the jobs file")
	applyCmd.Flags().BoolVar(&applyWithLogin, "with-profile", false, "use a persistent browser profile")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg := config.GetAppConfig()

	jobURL, title := applyURL, applyTitle
	if jobURL == "" && applyFile != "" {
		job, err := loadJobFromFile(applyFile, applyIndex)
		if err != nil {
			return err
		}
		jobURL, title = job.URL, job.Title

		company := job.Company
		if hiring := pipeline.ExtractHiringCompany(job.Description, job.Company); hiring != "" {
			company = hiring
		}
		log.Printf("Applying to %q at %s (%s)", title, company, jobURL)
	}
	if jobURL == "" || title == "" {
		return fmt.Errorf("either --url and --title or --file must be given")
	}

	gemini := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
	synthesizer := services.NewDocumentSynthesizer(gemini, cfg.DocumentsDir)
	filler := services.NewFormFiller(synthesizer)

	s3, err := services.NewS3Service()
	if err != nil {
		log.Printf("S3 not configured, screenshots stay local: %v", err)
		s3 = nil
	}

	profileDir := ""
	if applyWithLogin {
		profileDir = filepath.Join(cfg.ProfileDirBase, "default")
	}

	svc := services.NewApplyService(filler, s3, profileDir, "output/screenshots")
	defer svc.Close()

	finalURL, err := svc.ApplyToJob(jobURL, title, cfg.Applicant)
	if err != nil {
		return fmt.Errorf("application attempt failed: %w", err)
	}

	log.Printf("Form filled and left unsubmitted at %s", finalURL)
	return nil
}

func loadJobFromFile(path string, index int) (*models.EnrichedJob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read jobs file: %w", err)
	}
	var jobs []models.EnrichedJob
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("could not parse jobs file: %w", err)
	}
	if index < 0 || index >= len(jobs) {
		return nil, fmt.Errorf("job index %d out of bounds, file contains %d jobs", index, len(jobs))
	}
	return &jobs[index], nil
}
