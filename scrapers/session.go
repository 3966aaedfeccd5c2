package scrapers

import (
	"fmt"
	"log"
	"sync"

	"github.com/playwright-community/playwright-go"
)

const sessionUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// BrowserSession owns one browser shared by all scrapers of a run.
type BrowserSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser

	Ctx playwright.BrowserContext

	closeOnce sync.Once
}

// NewBrowserSession installs the driver when needed, launches Chromium and
// opens one context with a realistic user agent.
func NewBrowserSession(headless bool) (*BrowserSession, error) {
	if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
		log.Printf("Warning: playwright install check failed: %v", err)
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--no-sandbox",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}

	ctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(sessionUserAgent),
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}

	return &BrowserSession{pw: pw, browser: browser, Ctx: ctx}, nil
}

// Close shuts the session down. Safe to call more than once.
func (s *BrowserSession) Close() {
	s.closeOnce.Do(func() {
		if s.Ctx != nil {
			if err := s.Ctx.Close(); err != nil {
				log.Printf("Warning: error closing browser context: %v", err)
			}
		}
		if s.browser != nil {
			if err := s.browser.Close(); err != nil {
				log.Printf("Warning: error closing browser: %v", err)
			}
		}
		if s.pw != nil {
			if err := s.pw.Stop(); err != nil {
				log.Printf("Warning: error stopping playwright: %v", err)
			}
		}
	})
}
