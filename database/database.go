package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"

	"werkagent/config"
	"werkagent/models"
)

// Connect opens and verifies a Postgres connection from the database config.
func Connect(cfg config.DatabaseConfig) (*sql.DB, error) {
	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to database: %v", err)
	}

	return db, nil
}

// EnsureSchema creates the jobs table when it does not exist yet.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS collected_jobs (
			id SERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			company TEXT,
			location TEXT,
			url TEXT NOT NULL UNIQUE,
			source TEXT,
			description TEXT,
			collected_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("error creating collected_jobs table: %v", err)
	}
	return nil
}

// SaveJobs upserts collected jobs keyed on URL. A rescraped posting updates
// its row instead of duplicating it.
func SaveJobs(db *sql.DB, jobs []models.EnrichedJob) error {
	stmt, err := db.Prepare(`
		INSERT INTO collected_jobs (title, company, location, url, source, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (url) DO UPDATE SET
			title = EXCLUDED.title,
			company = EXCLUDED.company,
			location = EXCLUDED.location,
			source = EXCLUDED.source,
			description = EXCLUDED.description,
			collected_at = NOW()`)
	if err != nil {
		return fmt.Errorf("error preparing job upsert: %v", err)
	}
	defer stmt.Close()

	saved := 0
	for _, job := range jobs {
		if _, err := stmt.Exec(job.Title, job.Company, job.Location, job.URL, job.Source, job.Description); err != nil {
			log.Printf("Warning: could not save job %q: %v", job.Title, err)
			continue
		}
		saved++
	}
	log.Printf("Saved %d/%d jobs to database", saved, len(jobs))
	return nil
}
