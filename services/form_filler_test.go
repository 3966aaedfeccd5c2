package services

import (
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
)

func TestComputeStartDate(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want string
	}{
		{"mid March to June 1", time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC), "01.06.2026"},
		{"first of month", time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), "01.04.2026"},
		{"year rollover", time.Date(2026, time.November, 20, 0, 0, 0, 0, time.UTC), "01.02.2027"},
		{"end of month", time.Date(2026, time.August, 31, 23, 59, 0, 0, time.UTC), "01.11.2026"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ComputeStartDate(tc.now))
		})
	}
}

func TestSalutationSynonyms(t *testing.T) {
	assert.Equal(t, []string{"Herr", "Mr.", "Mr", "Herrn"}, salutationSynonyms("Herr"))
	assert.Equal(t, []string{"Herr", "Mr.", "Mr", "Herrn"}, salutationSynonyms(" mr. "))
	assert.Equal(t, []string{"Frau", "Ms.", "Ms", "Mrs.", "Mrs"}, salutationSynonyms("Frau"))
	assert.Nil(t, salutationSynonyms("Dr."))
	assert.Nil(t, salutationSynonyms(""))
}

func TestIsDedicatedUploadSlot(t *testing.T) {
	assert.True(t, isDedicatedUploadSlot("cv[cv]"))
	assert.True(t, isDedicatedUploadSlot("resumeFile"))
	assert.True(t, isDedicatedUploadSlot("Anschreiben"))
	assert.True(t, isDedicatedUploadSlot("cover_letter"))
	assert.False(t, isDedicatedUploadSlot("questions[cf_224310]"))
	assert.False(t, isDedicatedUploadSlot(""))
}

func TestMatchesSalutationOption(t *testing.T) {
	herr := salutationSynonyms("Herr")

	assert.True(t, matchesSalutationOption("Herr", herr))
	assert.True(t, matchesSalutationOption("HERR", herr))
	assert.True(t, matchesSalutationOption("  Mr.  ", herr))
	assert.True(t, matchesSalutationOption(" Herrn ", herr))
	assert.False(t, matchesSalutationOption("Frau", herr))
	assert.False(t, matchesSalutationOption("Bitte wählen", herr))
	assert.False(t, matchesSalutationOption("Herr", nil))
}

func TestFillSalutation_SelectsByValue(t *testing.T) {
	blank := &fakeLocator{text: "Bitte wählen"}
	herr := &fakeLocator{text: "  HERR  ", attrs: map[string]string{"value": "sal_m"}}
	frau := &fakeLocator{text: "Frau", attrs: map[string]string{"value": "sal_f"}}
	dropdown := &fakeLocator{
		visible: true,
		children: map[string]*fakeLocator{
			"option": {elements: []playwright.Locator{blank, herr, frau}},
		},
	}
	ctx := fakeSearchContext{locators: map[string]playwright.Locator{
		`select[name*="salutation"]`: dropdown,
	}}

	filler := NewFormFiller(nil)
	assert.True(t, filler.fillSalutation(ctx, "Herr"))
	if assert.Len(t, dropdown.selections, 1) {
		assert.Equal(t, []string{"sal_m"}, *dropdown.selections[0].Values)
	}
}

func TestFillSalutation_FallsBackToLabelWithoutValue(t *testing.T) {
	dropdown := &fakeLocator{
		visible: true,
		children: map[string]*fakeLocator{
			"option": {elements: []playwright.Locator{
				&fakeLocator{text: " Frau "},
			}},
		},
	}
	ctx := fakeSearchContext{locators: map[string]playwright.Locator{
		`select[name*="salutation"]`: dropdown,
	}}

	filler := NewFormFiller(nil)
	assert.True(t, filler.fillSalutation(ctx, "Frau"))
	if assert.Len(t, dropdown.selections, 1) {
		assert.Equal(t, []string{"Frau"}, *dropdown.selections[0].Labels)
	}
}

func TestFillSalutation_IndexFallbackWhenNothingMatches(t *testing.T) {
	dropdown := &fakeLocator{
		visible: true,
		children: map[string]*fakeLocator{
			"option": {elements: []playwright.Locator{
				&fakeLocator{text: "Bitte wählen"},
				&fakeLocator{text: "Divers", attrs: map[string]string{"value": "sal_d"}},
			}},
		},
	}
	ctx := fakeSearchContext{locators: map[string]playwright.Locator{
		`select[name*="salutation"]`: dropdown,
	}}

	filler := NewFormFiller(nil)
	assert.True(t, filler.fillSalutation(ctx, "Herr"))
	if assert.Len(t, dropdown.selections, 1) {
		assert.Equal(t, []int{1}, *dropdown.selections[0].Indexes)
	}
}

func TestFillOtherUploads_VisibleEnabledGateAndCap(t *testing.T) {
	hidden := &fakeLocator{attrs: map[string]string{"name": "questions[cf_1]", "required": "required"}}
	cvSlot := &fakeLocator{attrs: map[string]string{"name": "cv[cv]"}, visible: true, enabled: true}
	disabled := &fakeLocator{attrs: map[string]string{"name": "questions[cf_2]"}, visible: true}
	first := &fakeLocator{attrs: map[string]string{"name": "questions[cf_3]"}, visible: true, enabled: true}
	second := &fakeLocator{attrs: map[string]string{"id": "attachment-4"}, visible: true, enabled: true}
	overCap := &fakeLocator{attrs: map[string]string{"name": "questions[cf_5]"}, visible: true, enabled: true}

	ctx := fakeSearchContext{locators: map[string]playwright.Locator{
		`input[type="file"]`: &fakeLocator{elements: []playwright.Locator{
			hidden, cvSlot, disabled, first, second, overCap,
		}},
	}}
	filler := NewFormFiller(NewDocumentSynthesizer(&stubGenerator{text: "placeholder"}, t.TempDir()))

	assert.Equal(t, 2, filler.fillOtherUploads(ctx))

	assert.Len(t, first.files, 1)
	assert.Len(t, second.files, 1)
	assert.Empty(t, hidden.files, "hidden input must not receive a placeholder even when marked required")
	assert.Empty(t, cvSlot.files, "resume slot is handled by its own pass")
	assert.Empty(t, disabled.files)
	assert.Empty(t, overCap.files)
}

func TestFillOtherUploads_NoSynthesizer(t *testing.T) {
	filler := NewFormFiller(nil)
	assert.Equal(t, 0, filler.fillOtherUploads(fakeSearchContext{}))
}

func TestUploadSlotName(t *testing.T) {
	assert.Equal(t, "questions[cf_1]", uploadSlotName(&fakeLocator{attrs: map[string]string{"name": "questions[cf_1]"}}, 0))
	assert.Equal(t, "attachment-2", uploadSlotName(&fakeLocator{attrs: map[string]string{"id": "attachment-2"}}, 0))
	assert.Equal(t, "input_3", uploadSlotName(&fakeLocator{}, 3))
}

func TestWaitEnabled(t *testing.T) {
	assert.True(t, waitEnabled(&fakeLocator{enabled: true}, 100))

	start := time.Now()
	assert.False(t, waitEnabled(&fakeLocator{}, 100))
	assert.Less(t, time.Since(start), 2*time.Second)
}
