package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// IsFieldMandatory decides whether a discovered form control is required.
// Checks run in order and short-circuit on the first positive signal:
//
//  1. required attribute on the control
//  2. aria-required="true"
//  3. visible label[for=<id>] containing an asterisk
//  4. visible sibling element immediately after that label with an asterisk
//  5. checks 3-4 keyed by the control's name attribute instead of its id
//  6. visible ancestor <label> containing an asterisk
//
// Every lookup is bounded; a timeout or missing element means "no signal",
// never an error. Absence of evidence means not mandatory: a missed required
// field is preferred over needless document generation.
func IsFieldMandatory(ctx SearchContext, control playwright.Locator) bool {
	if attr, err := control.GetAttribute("required"); err == nil && attr != "" {
		return true
	}
	if attr, err := control.GetAttribute("aria-required"); err == nil && attr == "true" {
		return true
	}

	id, _ := control.GetAttribute("id")
	if id != "" && labelSignalsMandatory(ctx, id, 2000) {
		log.Printf("Detected mandatory field %q via label asterisk", id)
		return true
	}

	name, _ := control.GetAttribute("name")
	if name != "" && name != id && labelSignalsMandatory(ctx, name, 1000) {
		log.Printf("Detected mandatory field %q via label[for=name] asterisk", name)
		return true
	}

	ancestorLabel := control.Locator("xpath=./ancestor::label").First()
	if isVisible(ancestorLabel, 2000) && hasAsterisk(ancestorLabel, 2000) {
		log.Printf("Detected mandatory field %q via ancestor label asterisk", firstNonEmpty(id, name))
		return true
	}

	return false
}

// labelSignalsMandatory checks the label associated by for=<key> and the
// sibling element immediately following it.
func labelSignalsMandatory(ctx SearchContext, key string, timeoutMs float64) bool {
	labelSelector := fmt.Sprintf(`label[for="%s"]`, key)

	label := ctx.Locator(labelSelector).First()
	if isVisible(label, timeoutMs) && hasAsterisk(label, timeoutMs) {
		return true
	}

	sibling := ctx.Locator(labelSelector + " + *").First()
	if isVisible(sibling, timeoutMs) && hasAsterisk(sibling, timeoutMs) {
		return true
	}

	return false
}

func hasAsterisk(locator playwright.Locator, timeoutMs float64) bool {
	text, err := locator.TextContent(playwright.LocatorTextContentOptions{
		Timeout: playwright.Float(timeoutMs),
	})
	return err == nil && strings.Contains(text, "*")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
