package cmd

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"werkagent/config"
	"werkagent/handlers"
	"werkagent/middleware"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the collected job results over HTTP",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.GetAppConfig()

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))
	router.Use(middleware.NewRateLimiter(60, time.Minute).Limit())

	results := handlers.NewResultsHandler(cfg.ResultsDir)
	api := router.Group("/api")
	{
		api.GET("/results", results.ListResults)
		api.GET("/results/:name", results.GetResult)
	}

	log.Printf("Serving results from %s on port %s", cfg.ResultsDir, cfg.ServerPort)
	return router.Run(":" + cfg.ServerPort)
}
