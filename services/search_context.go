package services

import (
	"log"

	"github.com/playwright-community/playwright-go"
)

// SearchContext abstracts "whole page" vs "a specific embedded frame" so the
// same matching logic applies whether content is embedded or not.
type SearchContext interface {
	Locator(selector string) playwright.Locator
}

type pageContext struct {
	page playwright.Page
}

func (c pageContext) Locator(selector string) playwright.Locator {
	return c.page.Locator(selector)
}

type frameContext struct {
	frame playwright.FrameLocator
}

func (c frameContext) Locator(selector string) playwright.Locator {
	return c.frame.Locator(selector)
}

// resolveSearchContext redirects the search context into a known iframe when
// one is present and its body becomes visible within a short timeout.
// Otherwise the main page is the search context.
func resolveSearchContext(page playwright.Page) SearchContext {
	for _, selector := range knownIframeSelectors {
		iframe := page.Locator(selector).First()
		if !isVisible(iframe, 3000) {
			continue
		}
		frame := page.FrameLocator(selector)
		if err := frame.Locator("body").WaitFor(playwright.LocatorWaitForOptions{
			State:   playwright.WaitForSelectorStateVisible,
			Timeout: playwright.Float(5000),
		}); err != nil {
			log.Printf("Iframe %s present but body not visible, staying on page", selector)
			continue
		}
		log.Printf("Found job iframe %s, switching search context", selector)
		return frameContext{frame: frame}
	}
	return pageContext{page: page}
}

// isVisible probes a locator with a bounded timeout. A timeout or lookup
// error degrades to "not visible", never to a propagated failure.
func isVisible(locator playwright.Locator, timeoutMs float64) bool {
	err := locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(timeoutMs),
	})
	return err == nil
}

// firstVisible evaluates ordered candidate selectors and returns the first
// whose first match is visible within the per-candidate timeout.
func firstVisible(ctx SearchContext, selectors []string, timeoutMs float64) playwright.Locator {
	for _, selector := range selectors {
		locator := ctx.Locator(selector).First()
		if isVisible(locator, timeoutMs) {
			return locator
		}
	}
	return nil
}
