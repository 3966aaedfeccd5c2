package services

import "regexp"

// FieldIntent names a semantic form field the filler knows how to handle.
type FieldIntent string

const (
	IntentFirstName         FieldIntent = "first_name"
	IntentLastName          FieldIntent = "last_name"
	IntentEmail             FieldIntent = "email"
	IntentPhone             FieldIntent = "phone"
	IntentSalutation        FieldIntent = "salutation"
	IntentResumeUpload      FieldIntent = "resume_upload"
	IntentCoverLetterUpload FieldIntent = "cover_letter_upload"
	IntentCoverLetterText   FieldIntent = "cover_letter_text"
	IntentStartDate         FieldIntent = "start_date"
	IntentSalaryExpectation FieldIntent = "salary_expectation"
	IntentSource            FieldIntent = "source"
	IntentConsentCheckbox   FieldIntent = "consent_checkbox"
	IntentSubmitButton      FieldIntent = "submit_button"
)

// resumeFieldName is the known field name of the main CV input on supported
// application forms; the other-uploads pass skips it.
const resumeFieldName = "cv[cv]"

// fieldSelectors maps each field intent to an ordered list of candidate
// selectors tried in priority order; the first visible match wins. This is
// configuration, not derived data: new site patterns are added here without
// touching control flow.
var fieldSelectors = map[FieldIntent][]string{
	IntentFirstName: {
		`input[name*="first"][name*="name"]`,
		`input#firstname`,
		`input[data-testid*="first-name"]`,
		`input[name="firstName"]`,
		`input[name="vorname"]`,
	},
	IntentLastName: {
		`input[name*="last"][name*="name"]`,
		`input#lastname`,
		`input[data-testid*="last-name"]`,
		`input[name="lastName"]`,
		`input[name="nachname"]`,
	},
	IntentEmail: {
		`input[type="email"]`,
		`input[name*="email"]`,
		`input#email`,
	},
	IntentPhone: {
		`input[type="tel"]`,
		`input[name*="phone"]`,
		`input#phone`,
		`input[name="telefon"]`,
	},
	IntentSalutation: {
		`select[name*="salutation"]`,
		`select[name="title"]`,
		`select[id*="salutation"]`,
		`select[name="anrede"]`,
	},
	IntentResumeUpload: {
		`input[name="cv[cv]"]`,
		`input[type="file"][name*="resume"]`,
		`input[type="file"][aria-label*="resume"]`,
		`input[type="file"][data-testid*="resume"]`,
		`input#resume-upload-input`,
		`input[name="cv"]`,
		`input[name="lebenslauf"]`,
	},
	IntentCoverLetterUpload: {
		`input[type="file"][name*="cover"]`,
		`input[type="file"][aria-label*="cover"]`,
		`input[data-testid*="cover-letter"]`,
		`input[name="coverLetter"]`,
		`input[name="anschreiben"]`,
	},
	IntentCoverLetterText: {
		`textarea[name*="cover"]`,
		`textarea[aria-label*="cover"]`,
		`textarea[name="coverLetter"]`,
		`textarea[name="anschreiben"]`,
	},
	IntentStartDate: {
		`input[name="questions[cf_224307]"]`,
		`input[name*="start_date"]`,
		`input[name*="earliest"]`,
		`input[name*="available"]`,
		`input[id*="start_date"]`,
		`input[placeholder*="Start date"]`,
		`input[placeholder*="Verfügbar ab"]`,
	},
	IntentSalaryExpectation: {
		`input[name="questions[cf_224302]"]`,
		`input[name*="salary"]`,
		`input[name*="compensation"]`,
		`input[id*="salary"]`,
		`input[placeholder*="Salary"]`,
		`input[placeholder*="Gehaltsvorstellung"]`,
	},
	IntentSource: {
		`select[name*="source"]`,
		`select[name*="found"]`,
		`select[name*="referral"]`,
		`select[id*="source"]`,
	},
	IntentConsentCheckbox: {
		`button[role="checkbox"][id="finish[extended_data_retention]"]`,
		`input[type="checkbox"][name*="privacy"]`,
		`input[type="checkbox"][name*="datenschutz"]`,
		`input[type="checkbox"][id*="privacy"]`,
		`input[type="checkbox"][id*="consent"]`,
	},
	IntentSubmitButton: {
		`button[type="submit"]`,
		`button:has-text("Submit")`,
		`button:has-text("Bewerbung abschicken")`,
		`button:has-text("Jetzt bewerben")`,
		`button:has-text("Apply")`,
	},
}

// cookieBannerSelectors cover the common consent banner accept buttons,
// English and German, plus the OneTrust widget.
var cookieBannerSelectors = []string{
	`button:has-text("Alle akzeptieren")`,
	`button:has-text("Akzeptieren")`,
	`button:has-text("Accept all")`,
	`button:has-text("Accept")`,
	`#onetrust-accept-btn-handler`,
	`button[data-testid="uc-accept-all-button"]`,
}

// knownIframeSelectors list embedded ATS widgets whose frame becomes the
// search context when present.
var knownIframeSelectors = []string{
	`#psJobWidget iframe`,
	`iframe[id*="grnhse_iframe"]`,
}

// primaryApplyTextSelectors are exact-text matches for known apply phrases,
// highest priority first.
var primaryApplyTextSelectors = []string{
	`button:has-text("Ich will den Job")`,
	`a:has-text("Ich will den Job")`,
	`button:has-text("Apply Now")`,
	`a:has-text("Apply Now")`,
	`button:has-text("Jetzt bewerben")`,
	`a:has-text("Jetzt bewerben")`,
	`a[itemprop="applyUrl"]`,
	`button:has-text("Apply")`,
	`a:has-text("Apply")`,
	`button:has-text("Bewerben")`,
	`a:has-text("Bewerben")`,
}

// regexTextMatcher pairs an element tag with a case-insensitive whole-text
// pattern.
type regexTextMatcher struct {
	Tag     string
	Pattern *regexp.Regexp
}

var primaryApplyRegexMatchers = []regexTextMatcher{
	{"button", regexp.MustCompile(`(?i)^apply now$`)},
	{"a", regexp.MustCompile(`(?i)^apply now$`)},
	{"button", regexp.MustCompile(`(?i)^jetzt bewerben$`)},
	{"a", regexp.MustCompile(`(?i)^jetzt bewerben$`)},
	{"button", regexp.MustCompile(`(?i)^apply$`)},
	{"a", regexp.MustCompile(`(?i)^apply$`)},
	{"button", regexp.MustCompile(`(?i)^bewerben$`)},
	{"a", regexp.MustCompile(`(?i)^bewerben$`)},
}

// primaryApplyAttrSelectors match apply affordances by attribute patterns
// rather than visible text.
var primaryApplyAttrSelectors = []string{
	`input[type="submit"][value*="Apply"]`,
	`input[type="button"][value*="Apply"]`,
	`button[data-testid*="apply"]`,
	`a[data-testid*="apply"]`,
}

// jobLinkSelectors are the structural fallbacks scanned when no direct text
// match finds the posting link on a career-page index.
var jobLinkSelectors = []string{
	`a`,
	`li a`,
	`div[role="listitem"] a`,
	`h3 > a`,
	`div[class*="job"] a`,
}
