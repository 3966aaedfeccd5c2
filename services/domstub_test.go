package services

import (
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// fakeLocator stands in for a DOM node in tests. Only the methods the
// matching logic touches are implemented; anything else panics via the
// embedded nil interface, which is the desired test failure mode.
type fakeLocator struct {
	playwright.Locator

	attrs    map[string]string
	visible  bool
	enabled  bool
	text     string
	children map[string]*fakeLocator
	elements []playwright.Locator

	files      []interface{}
	selections []playwright.SelectOptionValues
}

func (l *fakeLocator) GetAttribute(name string, _ ...playwright.LocatorGetAttributeOptions) (string, error) {
	return l.attrs[name], nil
}

func (l *fakeLocator) WaitFor(_ ...playwright.LocatorWaitForOptions) error {
	if l.visible {
		return nil
	}
	return errors.New("timeout waiting for visible state")
}

func (l *fakeLocator) TextContent(_ ...playwright.LocatorTextContentOptions) (string, error) {
	return l.text, nil
}

func (l *fakeLocator) IsEnabled(_ ...playwright.LocatorIsEnabledOptions) (bool, error) {
	return l.enabled, nil
}

func (l *fakeLocator) First() playwright.Locator { return l }

func (l *fakeLocator) All() ([]playwright.Locator, error) {
	return l.elements, nil
}

func (l *fakeLocator) Locator(selectorOrLocator interface{}, _ ...playwright.LocatorLocatorOptions) playwright.Locator {
	if selector, ok := selectorOrLocator.(string); ok {
		if child, ok := l.children[selector]; ok {
			return child
		}
	}
	return &fakeLocator{}
}

func (l *fakeLocator) SetInputFiles(files interface{}, _ ...playwright.LocatorSetInputFilesOptions) error {
	l.files = append(l.files, files)
	return nil
}

func (l *fakeLocator) SelectOption(values playwright.SelectOptionValues, _ ...playwright.LocatorSelectOptionOptions) ([]string, error) {
	l.selections = append(l.selections, values)
	switch {
	case values.Values != nil:
		return *values.Values, nil
	case values.Labels != nil:
		return *values.Labels, nil
	case values.Indexes != nil:
		out := make([]string, len(*values.Indexes))
		for i, idx := range *values.Indexes {
			out[i] = fmt.Sprintf("index-%d", idx)
		}
		return out, nil
	}
	return nil, nil
}

// fakeSearchContext maps selectors to prepared locators; unknown selectors
// resolve to an empty, never-visible node.
type fakeSearchContext struct {
	locators map[string]playwright.Locator
}

func (c fakeSearchContext) Locator(selector string) playwright.Locator {
	if l, ok := c.locators[selector]; ok {
		return l
	}
	return &fakeLocator{}
}
