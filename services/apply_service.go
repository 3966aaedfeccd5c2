package services

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"werkagent/config"
)

// ApplyService drives a whole application attempt: open the posting, resolve
// the apply affordance, fill the form, capture a review screenshot. The form
// is never submitted.
type ApplyService struct {
	pw         playwrightRunner
	browser    playwright.Browser
	browserCtx playwright.BrowserContext

	filler        *FormFiller
	s3            *S3Service
	profileDir    string
	screenshotDir string

	startOnce sync.Once
	startErr  error
	closeOnce sync.Once
}

// playwrightRunner is the slice of *playwright.Playwright the service needs,
// split out so cleanup is testable without a running driver.
type playwrightRunner interface {
	Stop() error
}

// NewApplyService wires the orchestrator. s3 may be nil; screenshots then
// stay local. profileDir selects a persistent browser profile when set.
func NewApplyService(filler *FormFiller, s3 *S3Service, profileDir, screenshotDir string) *ApplyService {
	return &ApplyService{
		filler:        filler,
		s3:            s3,
		profileDir:    profileDir,
		screenshotDir: screenshotDir,
	}
}

func (a *ApplyService) start() error {
	a.startOnce.Do(func() {
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
			log.Printf("Warning: playwright install check failed: %v", err)
		}

		pw, err := playwright.Run()
		if err != nil {
			a.startErr = fmt.Errorf("could not start playwright: %w", err)
			return
		}
		a.pw = pw

		launchArgs := []string{
			"--disable-blink-features=AutomationControlled",
			"--no-sandbox",
		}

		if a.profileDir != "" {
			browserCtx, err := pw.Chromium.LaunchPersistentContext(a.profileDir, playwright.BrowserTypeLaunchPersistentContextOptions{
				Headless: playwright.Bool(true),
				Args:     launchArgs,
			})
			if err != nil {
				a.startErr = fmt.Errorf("could not launch persistent context: %w", err)
				return
			}
			a.browserCtx = browserCtx
			log.Printf("Launched browser with persistent profile at %s", a.profileDir)
			return
		}

		browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(true),
			Args:     launchArgs,
		})
		if err != nil {
			a.startErr = fmt.Errorf("could not launch browser: %w", err)
			return
		}
		a.browser = browser

		browserCtx, err := browser.NewContext()
		if err != nil {
			a.startErr = fmt.Errorf("could not create browser context: %w", err)
			return
		}
		a.browserCtx = browserCtx
	})
	return a.startErr
}

// ApplyToJob runs one application attempt and returns the final page URL,
// or "" with an error when the page never reached a fillable state.
func (a *ApplyService) ApplyToJob(jobURL, targetTitle string, profile config.ApplicantProfile) (string, error) {
	if err := a.start(); err != nil {
		return "", err
	}

	page, err := a.browserCtx.NewPage()
	if err != nil {
		return "", fmt.Errorf("could not open page: %w", err)
	}
	pageClosed := false
	defer func() {
		if !pageClosed {
			closePage(page)
		}
	}()

	log.Printf("Opening %s", jobURL)
	if _, err := page.Goto(jobURL, playwright.PageGotoOptions{
		Timeout:   playwright.Float(90000),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return "", fmt.Errorf("failed to open %s: %w", jobURL, err)
	}

	a.dismissCookieBanner(page)

	// A failed resolution is terminal for this attempt only: the live page
	// still gets closed by the deferred cleanup and the caller sees no URL.
	resolver := NewLinkResolver(a.browserCtx)
	resolved, err := resolver.Resolve(page, targetTitle)
	if err != nil {
		return "", err
	}
	page = resolved

	// The resolved page can carry its own banner.
	a.dismissCookieBanner(page)

	ctx := resolveSearchContext(page)
	filled := a.filler.Fill(ctx, profile)
	log.Printf("%s", FillSummary(page.URL(), filled))

	a.captureReviewScreenshot(page, targetTitle)

	finalURL := page.URL()
	closePage(page)
	pageClosed = true
	return finalURL, nil
}

// closePage tolerates a nil page so cleanup paths never depend on how far
// an attempt got.
func closePage(page playwright.Page) {
	if page == nil {
		return
	}
	if err := page.Close(); err != nil {
		log.Printf("Warning: error closing page: %v", err)
	}
}

func (a *ApplyService) dismissCookieBanner(page playwright.Page) {
	for _, selector := range cookieBannerSelectors {
		banner := page.Locator(selector).First()
		if !isVisible(banner, 1500) {
			continue
		}
		if err := banner.Click(playwright.LocatorClickOptions{
			Timeout: playwright.Float(3000),
		}); err != nil {
			log.Printf("Warning: cookie banner click failed: %v", err)
			continue
		}
		log.Printf("Dismissed cookie banner via %s", selector)
		return
	}
}

// captureReviewScreenshot saves a full-page screenshot of the filled form
// for human review, uploading to S3 when configured.
func (a *ApplyService) captureReviewScreenshot(page playwright.Page, targetTitle string) {
	if err := os.MkdirAll(a.screenshotDir, 0o755); err != nil {
		log.Printf("Warning: could not create screenshot directory: %v", err)
		return
	}

	safeTitle := unsafePathChars.ReplaceAllString(targetTitle, "_")
	filename := fmt.Sprintf("review_%s_%d.png", safeTitle, time.Now().Unix())
	path := filepath.Join(a.screenshotDir, filename)

	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		log.Printf("Warning: failed to capture review screenshot: %v", err)
		return
	}
	log.Printf("Saved review screenshot to %s", path)

	if a.s3 == nil {
		return
	}
	key := "review-screenshots/" + filename
	url, err := a.s3.UploadScreenshot(path, key)
	if err != nil {
		log.Printf("Warning: screenshot kept local, S3 upload failed: %v", err)
		return
	}
	log.Printf("Review screenshot available at %s", url)
	if presigned, err := a.s3.GeneratePresignedURL(key); err == nil {
		log.Printf("Presigned review link (expires in 1h): %s", presigned)
	}
}

// Close releases the browser, context and driver. Safe to call multiple
// times and on a service that never started.
func (a *ApplyService) Close() {
	a.closeOnce.Do(func() {
		if a.browserCtx != nil {
			if err := a.browserCtx.Close(); err != nil {
				log.Printf("Warning: error closing browser context: %v", err)
			}
		}
		if a.browser != nil {
			if err := a.browser.Close(); err != nil {
				log.Printf("Warning: error closing browser: %v", err)
			}
		}
		if a.pw != nil {
			if err := a.pw.Stop(); err != nil {
				log.Printf("Warning: error stopping playwright: %v", err)
			}
		}
	})
}
