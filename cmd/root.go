package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "werkagent",
	Short: "Werkstudent job application agent",
	Long: `werkagent finds Werkstudent postings matching a resume and fills
company application forms for human review. Applications are never
submitted automatically.`,
	SilenceUsage: true,
}

// Execute runs the command tree. Any command error is a critical failure
// and exits with status 1; successful runs exit 0.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
