package services

import (
	"fmt"
	"log"

	"github.com/playwright-community/playwright-go"

	"werkagent/utils"
)

// resolveState is the explicit state machine over a loaded page. Entry is
// stateSearchingPrimaryApply; stateFilling and stateFailed are terminal for
// the resolver.
type resolveState int

const (
	stateSearchingPrimaryApply resolveState = iota
	stateSearchingJobLink
	stateFilling
	stateFailed
)

func (s resolveState) String() string {
	switch s {
	case stateSearchingPrimaryApply:
		return "searching_primary_apply"
	case stateSearchingJobLink:
		return "searching_job_link"
	case stateFilling:
		return "filling"
	case stateFailed:
		return "failed"
	}
	return "unknown"
}

// LinkResolver locates either the primary apply affordance or the specific
// job-posting link on an arbitrary third-party page, handling embedded
// frames and new-tab navigation.
type LinkResolver struct {
	browserCtx playwright.BrowserContext

	// Per-candidate visibility probe and new-tab race bounds. Short probes
	// keep scanning dozens of candidates bounded in total wall time.
	probeTimeoutMs  float64
	newTabTimeoutMs float64
}

func NewLinkResolver(browserCtx playwright.BrowserContext) *LinkResolver {
	return &LinkResolver{
		browserCtx:      browserCtx,
		probeTimeoutMs:  2000,
		newTabTimeoutMs: 15000,
	}
}

// Resolve drives the state machine until stateFilling or stateFailed and
// returns the page the form filler should act on. The returned page differs
// from the input page when the click opened a new tab.
func (r *LinkResolver) Resolve(page playwright.Page, targetTitle string) (playwright.Page, error) {
	ctx := resolveSearchContext(page)

	state := stateSearchingPrimaryApply
	for {
		switch state {
		case stateSearchingPrimaryApply:
			log.Printf("Resolver state %s: scanning apply candidates", state)
			candidate := r.findPrimaryApply(ctx)
			if candidate == nil {
				log.Printf("No primary apply button visible, falling back to job link search")
				state = stateSearchingJobLink
				continue
			}
			next, err := r.clickWithNewTabRace(page, candidate)
			if err != nil {
				log.Printf("Warning: failed to click primary apply candidate: %v", err)
				state = stateSearchingJobLink
				continue
			}
			page = next
			state = stateFilling

		case stateSearchingJobLink:
			log.Printf("Resolver state %s: searching for job link matching %q", state, targetTitle)
			link := r.findJobLink(ctx, targetTitle)
			if link == nil {
				state = stateFailed
				continue
			}
			next, err := r.clickWithNewTabRace(page, link)
			if err != nil {
				log.Printf("Warning: failed to click job link: %v", err)
				state = stateFailed
				continue
			}
			page = next
			state = stateFilling

		case stateFilling:
			return page, nil

		case stateFailed:
			return nil, fmt.Errorf("no apply button or job link found for %q", targetTitle)
		}
	}
}

// findPrimaryApply unions the three candidate strategies in fixed priority
// order and returns the first visible one: exact-text selectors, then
// case-insensitive regex text matches, then attribute-pattern selectors.
func (r *LinkResolver) findPrimaryApply(ctx SearchContext) playwright.Locator {
	var candidates []playwright.Locator

	for _, selector := range primaryApplyTextSelectors {
		candidates = append(candidates, ctx.Locator(selector).First())
	}
	for _, m := range primaryApplyRegexMatchers {
		candidates = append(candidates, ctx.Locator(m.Tag).Filter(playwright.LocatorFilterOptions{
			HasText: m.Pattern,
		}).First())
	}
	for _, selector := range primaryApplyAttrSelectors {
		candidates = append(candidates, ctx.Locator(selector).First())
	}

	for _, candidate := range candidates {
		if isVisible(candidate, r.probeTimeoutMs) {
			text, _ := candidate.TextContent(playwright.LocatorTextContentOptions{
				Timeout: playwright.Float(1000),
			})
			log.Printf("Found primary apply candidate: %q", text)
			return candidate
		}
	}
	return nil
}

// findJobLink locates the best matching posting link for the target title.
// A direct text match containing every target keyword short-circuits;
// otherwise structural selectors are scanned and scored.
func (r *LinkResolver) findJobLink(ctx SearchContext, targetTitle string) playwright.Locator {
	normalizedTarget := utils.Normalize(targetTitle)
	keywords := utils.ExtractKeywords(normalizedTarget)
	log.Printf("Target keywords for matching: %v", keywords)

	directSelector := fmt.Sprintf(`a:has-text(%q)`, normalizedTarget)
	if matches, err := ctx.Locator(directSelector).All(); err == nil {
		for _, link := range matches {
			if !isVisible(link, 1500) {
				continue
			}
			text, err := link.TextContent(playwright.LocatorTextContentOptions{
				Timeout: playwright.Float(1000),
			})
			if err != nil {
				continue
			}
			if utils.ContainsAllKeywords(utils.Normalize(text), keywords) {
				log.Printf("Found job link via direct text match: %q", text)
				return link
			}
		}
	}

	var best playwright.Locator
	var bestText string
	highestScore := 0.0

	for _, selector := range jobLinkSelectors {
		links, err := ctx.Locator(selector).All()
		if err != nil {
			log.Printf("Warning: error locating elements with selector %q: %v", selector, err)
			continue
		}
		for _, link := range links {
			if !isVisible(link, 1000) {
				continue
			}
			text, err := link.TextContent(playwright.LocatorTextContentOptions{
				Timeout: playwright.Float(1000),
			})
			if err != nil {
				continue
			}
			score := scoreJobLink(normalizedTarget, utils.Normalize(text), keywords)
			if score > highestScore {
				highestScore = score
				best = link
				bestText = text
			}
		}
	}

	if best != nil {
		log.Printf("Best matching job link via structural search: %q (score %.2f)", bestText, highestScore)
	}
	return best
}

// scoreJobLink rates a candidate whose normalized text contains every target
// keyword by len(target)/len(candidate): tighter, less noisy matches score
// higher. Candidates missing a keyword score zero.
func scoreJobLink(normalizedTarget, normalizedText string, keywords []string) float64 {
	if normalizedText == "" || !utils.ContainsAllKeywords(normalizedText, keywords) {
		return 0
	}
	return float64(len(normalizedTarget)) / float64(len(normalizedText))
}

// clickWithNewTabRace scrolls the candidate into view, clicks it, and races
// a new-tab event against a bounded timeout. On a new tab the old page is
// closed and the new one becomes active; otherwise navigation continues on
// the same page.
func (r *LinkResolver) clickWithNewTabRace(page playwright.Page, candidate playwright.Locator) (playwright.Page, error) {
	if err := candidate.ScrollIntoViewIfNeeded(playwright.LocatorScrollIntoViewIfNeededOptions{
		Timeout: playwright.Float(5000),
	}); err != nil {
		log.Printf("Could not scroll candidate into view: %v", err)
	}

	var clickErr error
	newPage, raceErr := r.browserCtx.ExpectPage(func() error {
		clickErr = candidate.Click(playwright.LocatorClickOptions{
			Timeout: playwright.Float(10000),
		})
		return clickErr
	}, playwright.BrowserContextExpectPageOptions{
		Timeout: playwright.Float(r.newTabTimeoutMs),
	})

	if clickErr != nil {
		return nil, fmt.Errorf("click failed: %w", clickErr)
	}

	if raceErr == nil && newPage != nil {
		log.Printf("New tab opened: %s", newPage.URL())
		if err := page.Close(); err != nil {
			log.Printf("Warning: error closing old page: %v", err)
		}
		_ = newPage.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
			State:   playwright.LoadStateDomcontentloaded,
			Timeout: playwright.Float(30000),
		})
		return newPage, nil
	}

	log.Printf("No new tab opened, continuing on current page")
	_ = page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateDomcontentloaded,
		Timeout: playwright.Float(15000),
	})
	return page, nil
}
