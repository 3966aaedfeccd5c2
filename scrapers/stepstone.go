package scrapers

import (
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/playwright-community/playwright-go"

	"werkagent/models"
)

const stepStoneBase = "https://www.stepstone.de"

var stepStoneCookieSelectors = []string{
	`#ccmgt_explicit_accept`,
	`button[data-testid="uc-accept-all-button"]`,
	`button:has-text("Alle akzeptieren")`,
	`button:has-text("Accept all")`,
}

var stepStoneModalCloseSelectors = []string{
	`button[aria-label="schließen"]`,
	`button[aria-label="Close"]`,
	`[data-testid="modal-close-button"]`,
}

var stepStoneDescriptionSelectors = []string{
	`div[data-at="job-ad-content"]`,
	`div#job-ad-content`,
	`article[data-at="job-description"]`,
	`.job-description`,
	`main[data-genesis-element="BASE"]`,
	`div[data-at="content-container"]`,
}

// StepStoneScraper walks the numbered result pages of stepstone.de.
type StepStoneScraper struct {
	browserCtx playwright.BrowserContext
}

func NewStepStoneScraper(browserCtx playwright.BrowserContext) *StepStoneScraper {
	return &StepStoneScraper{browserCtx: browserCtx}
}

func (s *StepStoneScraper) Name() string { return "StepStone" }

// buildSearchURL puts the keywords in the path slug, location and page in the
// query string.
func (s *StepStoneScraper) buildSearchURL(keywords, location string, pageNum int) string {
	slug := strings.ReplaceAll(strings.TrimSpace(keywords), " ", "-")

	params := url.Values{}
	if location != "" {
		params.Set("location", location)
	}
	if pageNum > 1 {
		params.Set("page", strconv.Itoa(pageNum))
	}

	searchURL := stepStoneBase + "/jobs/" + url.PathEscape(slug)
	if encoded := params.Encode(); encoded != "" {
		searchURL += "?" + encoded
	}
	return searchURL
}

// SearchJobs pages through results until maxResults jobs are collected or a
// page yields nothing new.
func (s *StepStoneScraper) SearchJobs(keywords, location string, maxResults int) ([]models.JobSummary, error) {
	page, err := s.browserCtx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("could not open page: %w", err)
	}
	defer page.Close()

	var jobs []models.JobSummary
	seen := make(map[string]bool)

	for currentPage := 1; len(jobs) < maxResults; currentPage++ {
		searchURL := s.buildSearchURL(keywords, location, currentPage)
		log.Printf("StepStone search page %d: %s", currentPage, searchURL)

		if _, err := page.Goto(searchURL, playwright.PageGotoOptions{
			Timeout:   playwright.Float(60000),
			WaitUntil: playwright.WaitUntilStateLoad,
		}); err != nil {
			log.Printf("Warning: failed to load page %d: %v", currentPage, err)
			break
		}
		politeDelay(2000, 3500)

		if currentPage == 1 {
			s.dismissOverlays(page)
		}

		cards, err := page.Locator(`article[data-at="job-item"]`).All()
		if err != nil {
			log.Printf("Warning: could not enumerate job cards: %v", err)
			break
		}
		if len(cards) == 0 {
			log.Printf("No job cards on page %d, stopping pagination", currentPage)
			break
		}

		added := 0
		for _, card := range cards {
			if len(jobs) >= maxResults {
				break
			}
			titleLink := card.Locator(`a[data-testid="job-item-title"]`).First()
			jobURL, err := titleLink.GetAttribute("href")
			if err != nil || jobURL == "" {
				log.Printf("Warning: job card without URL skipped")
				continue
			}
			if strings.HasPrefix(jobURL, "/") {
				jobURL = stepStoneBase + jobURL
			}
			if seen[jobURL] {
				continue
			}

			title := safeInnerText(titleLink)
			company := safeInnerText(card.Locator(`span[data-at="job-item-company-name"]`).First())
			loc := safeInnerText(card.Locator(`span[data-at="job-item-location"]`).First())
			if title == "" {
				continue
			}

			jobs = append(jobs, models.JobSummary{
				Title:    title,
				Company:  company,
				Location: loc,
				URL:      jobURL,
				Source:   s.Name(),
			})
			seen[jobURL] = true
			added++
		}
		log.Printf("StepStone page %d added %d jobs, total %d/%d", currentPage, added, len(jobs), maxResults)

		if added == 0 {
			log.Printf("Page %d yielded no new jobs, stopping pagination", currentPage)
			break
		}
		politeDelay(2000, 5000)
	}

	log.Printf("StepStone search finished with %d jobs", len(jobs))
	return jobs, nil
}

// GetJobDetails extracts and cleans the posting description.
func (s *StepStoneScraper) GetJobDetails(jobURL string) (*models.JobDetail, error) {
	page, err := s.browserCtx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("could not open page: %w", err)
	}
	defer page.Close()

	if _, err := page.Goto(jobURL, playwright.PageGotoOptions{
		Timeout:   playwright.Float(90000),
		WaitUntil: playwright.WaitUntilStateLoad,
	}); err != nil {
		return nil, fmt.Errorf("failed to load job page: %w", err)
	}
	politeDelay(2000, 3500)

	s.dismissOverlays(page)

	for _, selector := range stepStoneDescriptionSelectors {
		element := page.Locator(selector).First()
		count, err := element.Count()
		if err != nil || count == 0 {
			continue
		}
		html, err := element.InnerHTML(playwright.LocatorInnerHTMLOptions{
			Timeout: playwright.Float(3000),
		})
		if err != nil || html == "" {
			continue
		}
		text := CleanDescription(html)
		if text == "" {
			continue
		}
		return &models.JobDetail{URL: jobURL, Description: text}, nil
	}

	return nil, fmt.Errorf("no description found at %s", jobURL)
}

// dismissOverlays accepts the cookie banner and closes promo modals when
// either shows up.
func (s *StepStoneScraper) dismissOverlays(page playwright.Page) {
	for _, selector := range stepStoneCookieSelectors {
		button := page.Locator(selector).First()
		if !locatorVisible(button, 2000) {
			continue
		}
		if err := button.Click(playwright.LocatorClickOptions{Timeout: playwright.Float(3000)}); err == nil {
			log.Printf("Accepted StepStone cookie banner via %s", selector)
			politeDelay(500, 1500)
			break
		}
	}
	for _, selector := range stepStoneModalCloseSelectors {
		button := page.Locator(selector).First()
		if !locatorVisible(button, 1000) {
			continue
		}
		if err := button.Click(playwright.LocatorClickOptions{Timeout: playwright.Float(3000)}); err == nil {
			log.Printf("Closed StepStone modal via %s", selector)
			break
		}
	}
}
