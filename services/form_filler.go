package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"werkagent/config"
	"werkagent/models"
)

// maxPlaceholderUploads caps how many generic file slots get a synthesized
// placeholder document in a single fill pass.
const maxPlaceholderUploads = 2

// FormFiller populates application forms field by field. Each field failure
// is logged and skipped; the pass order is fixed so partial failures leave a
// predictable partial fill.
type FormFiller struct {
	synthesizer *DocumentSynthesizer

	probeTimeoutMs float64
}

func NewFormFiller(synthesizer *DocumentSynthesizer) *FormFiller {
	return &FormFiller{synthesizer: synthesizer, probeTimeoutMs: 2000}
}

// Fill runs the full pass over the form and returns how many fields were
// filled. Zero is a warning for the caller, not an error: some pages put the
// form behind one more click and the screenshot still has review value.
func (f *FormFiller) Fill(ctx SearchContext, profile config.ApplicantProfile) int {
	filled := 0

	if f.fillSalutation(ctx, profile.SalutationPreference) {
		filled++
	}

	textFields := []struct {
		intent FieldIntent
		value  string
	}{
		{IntentFirstName, profile.FirstName},
		{IntentLastName, profile.LastName},
		{IntentEmail, profile.Email},
		{IntentPhone, profile.Phone},
	}
	for _, field := range textFields {
		if f.fillText(ctx, field.intent, field.value) {
			filled++
		}
	}

	if f.uploadResume(ctx, profile.ResumePath) {
		filled++
	}
	if f.fillText(ctx, IntentStartDate, ComputeStartDate(time.Now())) {
		filled++
	}
	if f.fillText(ctx, IntentSalaryExpectation, profile.SalaryExpectation) {
		filled++
	}

	filled += f.fillOtherUploads(ctx)

	if f.fillSourceDropdown(ctx) {
		filled++
	}
	if f.checkConsent(ctx) {
		filled++
	}

	f.discoverSubmitButton(ctx)

	if filled == 0 {
		log.Printf("Warning: no form fields were filled on this page")
	} else {
		log.Printf("Filled %d form fields", filled)
	}
	return filled
}

// ComputeStartDate returns the earliest start date offered on forms: the
// first day of the third month after the current one, German date format.
// From March 15 that is June 1.
func ComputeStartDate(now time.Time) string {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return firstOfMonth.AddDate(0, 3, 0).Format("02.01.2006")
}

// salutationSynonyms expands a profile preference into the option labels
// forms actually use for it, in both languages.
func salutationSynonyms(preference string) []string {
	switch strings.ToLower(strings.TrimSpace(preference)) {
	case "herr", "mr", "mr.", "male":
		return []string{"Herr", "Mr.", "Mr", "Herrn"}
	case "frau", "ms", "ms.", "mrs", "mrs.", "female":
		return []string{"Frau", "Ms.", "Ms", "Mrs.", "Mrs"}
	}
	return nil
}

// fillSalutation enumerates the dropdown's options and matches each one's
// text against the preference synonyms, normalized. A matching option is
// selected by value when it has one, by visible label otherwise.
func (f *FormFiller) fillSalutation(ctx SearchContext, preference string) bool {
	dropdown := firstVisible(ctx, fieldSelectors[IntentSalutation], f.probeTimeoutMs)
	if dropdown == nil {
		return false
	}

	synonyms := salutationSynonyms(preference)
	options, err := dropdown.Locator("option").All()
	if err != nil {
		log.Printf("Warning: could not enumerate salutation options: %v", err)
		options = nil
	}

	for _, option := range options {
		text, err := option.TextContent(playwright.LocatorTextContentOptions{
			Timeout: playwright.Float(1000),
		})
		if err != nil || !matchesSalutationOption(text, synonyms) {
			continue
		}

		if value, err := option.GetAttribute("value"); err == nil && value != "" {
			values := []string{value}
			if selected, err := dropdown.SelectOption(playwright.SelectOptionValues{Values: &values}); err == nil && len(selected) > 0 {
				log.Printf("Selected salutation %q by value %q", strings.TrimSpace(text), value)
				return true
			}
		}

		labels := []string{strings.TrimSpace(text)}
		if selected, err := dropdown.SelectOption(playwright.SelectOptionValues{Labels: &labels}); err == nil && len(selected) > 0 {
			log.Printf("Selected salutation %q by label", strings.TrimSpace(text))
			return true
		}
	}

	// No option matched the synonyms. Index 1 skips the usual blank
	// "please select" entry at index 0.
	indexes := []int{1}
	if selected, err := dropdown.SelectOption(playwright.SelectOptionValues{Indexes: &indexes}); err == nil && len(selected) > 0 {
		log.Printf("Selected salutation by index fallback")
		return true
	}

	log.Printf("Warning: could not select any salutation option")
	return false
}

// matchesSalutationOption compares an option's visible text against the
// synonym set, ignoring case and surrounding whitespace.
func matchesSalutationOption(optionText string, synonyms []string) bool {
	text := strings.TrimSpace(optionText)
	for _, syn := range synonyms {
		if strings.EqualFold(text, syn) {
			return true
		}
	}
	return false
}

func (f *FormFiller) fillText(ctx SearchContext, intent FieldIntent, value string) bool {
	if value == "" {
		return false
	}
	control := firstVisible(ctx, fieldSelectors[intent], f.probeTimeoutMs)
	if control == nil {
		return false
	}
	if err := control.Fill(value); err != nil {
		log.Printf("Warning: failed to fill %s: %v", intent, err)
		return false
	}
	log.Printf("Filled %s", intent)
	return true
}

func (f *FormFiller) uploadResume(ctx SearchContext, resumePath string) bool {
	if resumePath == "" {
		log.Printf("No resume path configured, skipping resume upload")
		return false
	}
	if _, err := os.Stat(resumePath); err != nil {
		log.Printf("Warning: resume file not found at %s, skipping upload", resumePath)
		return false
	}

	for _, selector := range fieldSelectors[IntentResumeUpload] {
		control := ctx.Locator(selector).First()
		count, err := control.Count()
		if err != nil || count == 0 {
			continue
		}
		if !waitEnabled(control, 10000) {
			log.Printf("Resume input %s present but never became enabled, trying next selector", selector)
			continue
		}
		if err := control.SetInputFiles(resumePath); err != nil {
			log.Printf("Warning: failed to attach resume via %s: %v", selector, err)
			continue
		}
		log.Printf("Uploaded resume from %s", resumePath)
		return true
	}
	return false
}

// fillOtherUploads scans remaining file inputs and attaches a synthesized
// placeholder document to each visible and enabled one, up to the cap. The
// resume and cover letter slots are handled by their own passes and skipped
// here; hidden inputs are skipped too.
func (f *FormFiller) fillOtherUploads(ctx SearchContext) int {
	if f.synthesizer == nil {
		return 0
	}

	inputs, err := ctx.Locator(`input[type="file"]`).All()
	if err != nil {
		log.Printf("Warning: could not enumerate file inputs: %v", err)
		return 0
	}

	filled := 0
	for i, input := range inputs {
		name := uploadSlotName(input, i)
		if isDedicatedUploadSlot(name) {
			continue
		}
		if !isVisible(input, 1000) {
			log.Printf("Skipping non-visible file input %q", name)
			continue
		}
		if filled >= maxPlaceholderUploads {
			log.Printf("Skipping file input %q, %d placeholder documents already uploaded", name, maxPlaceholderUploads)
			continue
		}
		if enabled, err := input.IsEnabled(); err != nil || !enabled {
			log.Printf("File input %q visible but not enabled, skipping", name)
			continue
		}

		doc, err := f.synthesizer.Synthesize(models.DocTypeOtherDocument, "de", name)
		if err != nil {
			log.Printf("Warning: could not synthesize placeholder for %q: %v", name, err)
			continue
		}
		if err := input.SetInputFiles(doc.Path); err != nil {
			log.Printf("Warning: failed to attach placeholder to %q: %v", name, err)
			continue
		}
		log.Printf("Attached placeholder document to file input %q", name)
		filled++
	}
	return filled
}

// uploadSlotName identifies a file input for logging and slot matching:
// name attribute, then id, then its position.
func uploadSlotName(input playwright.Locator, index int) string {
	if name, err := input.GetAttribute("name"); err == nil && name != "" {
		return name
	}
	if id, err := input.GetAttribute("id"); err == nil && id != "" {
		return id
	}
	return fmt.Sprintf("input_%d", index)
}

// waitEnabled polls a control until it reports enabled or the timeout runs
// out.
func waitEnabled(locator playwright.Locator, timeoutMs float64) bool {
	deadline := time.Now().Add(time.Duration(timeoutMs) * time.Millisecond)
	for {
		if enabled, err := locator.IsEnabled(); err == nil && enabled {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(250 * time.Millisecond)
	}
}

// isDedicatedUploadSlot reports whether a file input belongs to the resume
// or cover letter pass rather than the generic placeholder pass.
func isDedicatedUploadSlot(name string) bool {
	if name == resumeFieldName {
		return true
	}
	lower := strings.ToLower(name)
	for _, marker := range []string{"resume", "lebenslauf", "cover", "anschreiben"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// fillSourceDropdown always picks index 1 of the "how did you hear about us"
// dropdown. Index 0 is the blank entry on every form seen so far.
func (f *FormFiller) fillSourceDropdown(ctx SearchContext) bool {
	dropdown := firstVisible(ctx, fieldSelectors[IntentSource], f.probeTimeoutMs)
	if dropdown == nil {
		return false
	}
	indexes := []int{1}
	selected, err := dropdown.SelectOption(playwright.SelectOptionValues{Indexes: &indexes})
	if err != nil || len(selected) == 0 {
		log.Printf("Warning: failed to select source option: %v", err)
		return false
	}
	log.Printf("Selected source dropdown option")
	return true
}

func (f *FormFiller) checkConsent(ctx SearchContext) bool {
	checkbox := firstVisible(ctx, fieldSelectors[IntentConsentCheckbox], f.probeTimeoutMs)
	if checkbox == nil {
		return false
	}

	if checked, err := checkbox.IsChecked(); err == nil {
		if checked {
			log.Printf("Consent checkbox already checked")
			return false
		}
		if err := checkbox.Check(); err != nil {
			log.Printf("Warning: failed to check consent checkbox: %v", err)
			return false
		}
		log.Printf("Checked consent checkbox")
		return true
	}

	// Non-input widgets (button[role=checkbox]) expose state via aria.
	if state, err := checkbox.GetAttribute("aria-checked"); err == nil && state == "false" {
		if err := checkbox.Click(); err != nil {
			log.Printf("Warning: failed to toggle consent widget: %v", err)
			return false
		}
		log.Printf("Toggled consent widget")
		return true
	}
	return false
}

// discoverSubmitButton locates the submit control for logging only. The
// application is never submitted; a human reviews the filled form.
func (f *FormFiller) discoverSubmitButton(ctx SearchContext) {
	button := firstVisible(ctx, fieldSelectors[IntentSubmitButton], f.probeTimeoutMs)
	if button == nil {
		log.Printf("No submit button found on the form")
		return
	}
	text, err := button.TextContent(playwright.LocatorTextContentOptions{
		Timeout: playwright.Float(1000),
	})
	if err != nil {
		text = "(unreadable)"
	}
	log.Printf("Found submit button %q, leaving form unsubmitted for review", strings.TrimSpace(text))
}

// FillSummary is a compact log line describing the result of a fill pass.
func FillSummary(url string, filled int) string {
	return fmt.Sprintf("form fill on %s: %d fields", url, filled)
}
