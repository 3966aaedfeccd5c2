package scrapers

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/playwright-community/playwright-go"

	"werkagent/models"
)

const linkedInSearchBase = "https://www.linkedin.com/jobs/search/"

// maxScrollAttempts bounds the scroll loop when the page keeps reporting the
// same height.
const maxScrollAttempts = 10

var linkedInShowMoreSelectors = []string{
	`button[aria-label="Show more, visually expands previously read content below"]`,
	`button.show-more-less-html__button--more`,
	`button[data-tracking-control-name="public_jobs_show-more-html-btn"]`,
}

var linkedInDescriptionSelectors = []string{
	`div.show-more-less-html__markup`,
	`div#job-details`,
	`section.core-section-container`,
	`div.description__text`,
}

// LinkedInScraper reads the public guest job search, loading results through
// infinite scroll.
type LinkedInScraper struct {
	browserCtx playwright.BrowserContext
}

func NewLinkedInScraper(browserCtx playwright.BrowserContext) *LinkedInScraper {
	return &LinkedInScraper{browserCtx: browserCtx}
}

func (s *LinkedInScraper) Name() string { return "LinkedIn" }

func (s *LinkedInScraper) buildSearchURL(keywords, location string) string {
	params := url.Values{}
	params.Set("keywords", keywords)
	params.Set("location", location)
	return linkedInSearchBase + "?" + params.Encode()
}

// SearchJobs scrolls the result list until maxResults jobs are collected or
// the scroll height stops changing twice in a row.
func (s *LinkedInScraper) SearchJobs(keywords, location string, maxResults int) ([]models.JobSummary, error) {
	page, err := s.browserCtx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("could not open page: %w", err)
	}
	defer page.Close()

	searchURL := s.buildSearchURL(keywords, location)
	log.Printf("LinkedIn search: %s", searchURL)
	if _, err := page.Goto(searchURL, playwright.PageGotoOptions{
		Timeout:   playwright.Float(60000),
		WaitUntil: playwright.WaitUntilStateLoad,
	}); err != nil {
		return nil, fmt.Errorf("failed to load search page: %w", err)
	}
	politeDelay(2500, 4000)

	var jobs []models.JobSummary
	seen := make(map[string]bool)

	lastHeight := scrollHeight(page)
	attempts := 0

	for len(jobs) < maxResults && attempts < maxScrollAttempts {
		cards, err := page.Locator(`ul.jobs-search__results-list > li div.base-card`).All()
		if err != nil {
			log.Printf("Warning: could not enumerate job cards: %v", err)
			break
		}

		added := 0
		for _, card := range cards {
			if len(jobs) >= maxResults {
				break
			}
			jobURL, err := card.Locator("a.base-card__full-link").First().GetAttribute("href")
			if err != nil || jobURL == "" || seen[jobURL] {
				continue
			}

			title := safeInnerText(card.Locator("h3.base-search-card__title").First())
			company := safeInnerText(card.Locator("h4.base-search-card__subtitle a").First())
			if company == "" {
				company = safeInnerText(card.Locator("h4.base-search-card__subtitle").First())
			}
			loc := safeInnerText(card.Locator("span.job-search-card__location").First())

			if title == "" || company == "" || loc == "" {
				log.Printf("Warning: incomplete job card skipped: %s", jobURL)
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
		log.Printf("LinkedIn pass added %d jobs, total %d/%d", added, len(jobs), maxResults)

		if len(jobs) >= maxResults {
			break
		}

		if _, err := page.Evaluate("window.scrollTo(0, document.body.scrollHeight)"); err != nil {
			log.Printf("Warning: scroll failed: %v", err)
			break
		}
		politeDelay(3500, 4500)

		newHeight := scrollHeight(page)
		if newHeight == lastHeight {
			attempts++
			log.Printf("Scroll height unchanged, attempt %d/%d", attempts, maxScrollAttempts)
			politeDelay(4500, 5500)
			newHeight = scrollHeight(page)
			if newHeight == lastHeight {
				log.Printf("Scroll height still unchanged, assuming end of results")
				break
			}
			attempts = 0
		} else {
			attempts = 0
		}
		lastHeight = newHeight
	}

	log.Printf("LinkedIn search finished with %d jobs", len(jobs))
	return jobs, nil
}

// GetJobDetails expands and extracts the posting description.
func (s *LinkedInScraper) GetJobDetails(jobURL string) (*models.JobDetail, error) {
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
	politeDelay(2500, 3500)

	for _, selector := range linkedInShowMoreSelectors {
		button := page.Locator(selector).First()
		if !locatorVisible(button, 1500) {
			continue
		}
		if err := button.Click(playwright.LocatorClickOptions{Timeout: playwright.Float(5000)}); err != nil {
			log.Printf("Warning: could not expand description via %s: %v", selector, err)
			continue
		}
		politeDelay(1500, 2500)
		break
	}

	for _, selector := range linkedInDescriptionSelectors {
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
		return &models.JobDetail{URL: jobURL, Description: CleanDescription(html)}, nil
	}

	return nil, fmt.Errorf("no description found at %s", jobURL)
}

func scrollHeight(page playwright.Page) float64 {
	result, err := page.Evaluate("document.body.scrollHeight")
	if err != nil {
		return 0
	}
	switch v := result.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func safeInnerText(locator playwright.Locator) string {
	text, err := locator.InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(2000),
	})
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

func locatorVisible(locator playwright.Locator, timeoutMs float64) bool {
	err := locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(timeoutMs),
	})
	return err == nil
}
