package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

// ResultsHandler serves the collected job result files for browsing.
type ResultsHandler struct {
	resultsDir string
}

func NewResultsHandler(resultsDir string) *ResultsHandler {
	return &ResultsHandler{resultsDir: resultsDir}
}

type ResultFileInfo struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Modified string `json:"modified"`
}

// validResultName keeps result lookups inside the results directory.
var validResultName = regexp.MustCompile(`^[A-Za-z0-9._-]+\.json$`)

// ListResults returns the available result files, newest name last.
func (h *ResultsHandler) ListResults(c *gin.Context) {
	entries, err := os.ReadDir(h.resultsDir)
	if err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusOK, gin.H{"results": []ResultFileInfo{}})
			return
		}
		log.Printf("Error reading results directory: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read results"})
		return
	}

	results := make([]ResultFileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		results = append(results, ResultFileInfo{
			Name:     entry.Name(),
			Size:     info.Size(),
			Modified: info.ModTime().Format("2006-01-02 15:04:05"),
		})
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// GetResult serves one result file by name.
func (h *ResultsHandler) GetResult(c *gin.Context) {
	name := c.Param("name")
	if !validResultName.MatchString(name) || strings.Contains(name, "..") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid result name"})
		return
	}

	path := filepath.Join(h.resultsDir, name)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "result not found"})
		return
	}

	c.File(path)
}
