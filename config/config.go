package config

import (
	"os"
	"strconv"
	"strings"
)

// ApplicantProfile holds the fixed applicant record used to fill forms.
// It is read once from the environment and never mutated at runtime.
type ApplicantProfile struct {
	FirstName            string
	LastName             string
	Email                string
	Phone                string
	SalutationPreference string
	ResumePath           string
	CoverLetterPath      string
	SalaryExpectation    string
	Source               string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Enabled reports whether enough is configured to attempt a connection.
func (c DatabaseConfig) Enabled() bool {
	return c.DBName != ""
}

type AppConfig struct {
	Applicant    ApplicantProfile
	Database     DatabaseConfig
	GeminiAPIKey string
	GeminiModel  string

	SearchLocations []string
	ResultsDir      string
	DocumentsDir    string
	ProfileDirBase  string

	ServerPort string
}

const (
	defaultGeminiModel = "gemini-1.5-pro"
	defaultLocations   = "Köln,Düsseldorf,Bonn"
)

func GetAppConfig() AppConfig {
	return AppConfig{
		Applicant: ApplicantProfile{
			FirstName:            getEnv("APPLICANT_FIRST_NAME", ""),
			LastName:             getEnv("APPLICANT_LAST_NAME", ""),
			Email:                getEnv("APPLICANT_EMAIL", ""),
			Phone:                getEnv("APPLICANT_PHONE", ""),
			SalutationPreference: getEnv("APPLICANT_SALUTATION", "Herr"),
			ResumePath:           getEnv("APPLICANT_RESUME_PATH", "data/base_resume.pdf"),
			CoverLetterPath:      getEnv("APPLICANT_COVER_LETTER_PATH", ""),
			SalaryExpectation:    getEnv("APPLICANT_SALARY_EXPECTATION", ""),
			Source:               getEnv("APPLICANT_SOURCE", "LinkedIn"),
		},
		Database:     GetDatabaseConfig(),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", defaultGeminiModel),

		SearchLocations: splitList(getEnv("SEARCH_LOCATIONS", defaultLocations)),
		ResultsDir:      getEnv("RESULTS_DIR", "output/scrape_results"),
		DocumentsDir:    getEnv("DOCUMENTS_DIR", "output/generated_documents"),
		ProfileDirBase:  getEnv("PROFILE_DIR_BASE", "browser_profiles"),

		ServerPort: getEnv("PORT", "8081"),
	}
}

func GetDatabaseConfig() DatabaseConfig {
	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))

	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     port,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		DBName:   getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
