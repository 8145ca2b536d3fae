package browser

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

// SetImplicitWait sets how long FindByClass waits for a first match.
// Zero disables waiting.
func (s *Session) SetImplicitWait(d time.Duration) {
	if d < 0 {
		d = 0
	}
	s.implicitWait = d
}

// ImplicitWait returns the current implicit wait.
func (s *Session) ImplicitWait() time.Duration {
	return s.implicitWait
}

// Navigate navigates the session's page to the specified URL.
func (s *Session) Navigate(url string) error {
	_, err := s.Page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}

	s.CurrentURL = s.Page.URL()
	return nil
}

// FindByClass returns every element carrying all classes of the given
// signature. A signature such as "a.b" is matched as the CSS selector ".a.b".
// No match yields an empty slice, not an error.
func (s *Session) FindByClass(class string) ([]Element, error) {
	selector := ClassSelector(class)
	if selector == "" {
		return nil, fmt.Errorf("empty class signature")
	}

	if s.implicitWait > 0 {
		timeout := float64(s.implicitWait.Milliseconds())
		// A timeout here only means nothing attached in time.
		_, _ = s.Page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
			State:   playwright.WaitForSelectorStateAttached,
			Timeout: &timeout,
		})
	}

	handles, err := s.Page.QuerySelectorAll(selector)
	if err != nil {
		return nil, fmt.Errorf("selector query failed: %w", err)
	}

	elements := make([]Element, 0, len(handles))
	for _, h := range handles {
		elements = append(elements, handleElement{h})
	}
	return elements, nil
}

// Close closes the browser context. Safe to call more than once.
func (s *Session) Close() error {
	if s.Context == nil {
		return nil
	}
	err := s.Context.Close()
	s.Context = nil
	if s.onClose != nil {
		s.onClose(s)
	}
	if err != nil {
		return fmt.Errorf("failed to close browser: %w", err)
	}
	return nil
}

// ClassSelector converts a dotted class signature into a compound CSS
// class selector.
func ClassSelector(class string) string {
	var b strings.Builder
	for _, part := range strings.Split(strings.TrimSpace(class), ".") {
		if part == "" {
			continue
		}
		b.WriteByte('.')
		b.WriteString(part)
	}
	return b.String()
}

type handleElement struct {
	h playwright.ElementHandle
}

func (e handleElement) Click() error {
	if err := e.h.Click(); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	return nil
}

func (e handleElement) Fill(text string) error {
	if err := e.h.Fill(text); err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}
	return nil
}
