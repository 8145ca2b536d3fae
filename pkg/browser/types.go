package browser

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

// ErrUnsupportedBrowser is returned for any browser name other than
// chrome, edge or firefox.
var ErrUnsupportedBrowser = errors.New("browser not supported")

// Kind identifies one of the supported browsers.
type Kind string

const (
	// KindChrome drives Google Chrome through the Chromium engine.
	KindChrome Kind = "chrome"

	// KindEdge drives Microsoft Edge through the Chromium engine.
	KindEdge Kind = "edge"

	// KindFirefox drives Firefox.
	KindFirefox Kind = "firefox"
)

// ParseKind maps a case-insensitive browser name to a Kind.
func ParseKind(name string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(name))); k {
	case KindChrome, KindEdge, KindFirefox:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedBrowser, name)
	}
}

// channel returns the Playwright release channel for Chromium based kinds.
func (k Kind) channel() string {
	switch k {
	case KindChrome:
		return "chrome"
	case KindEdge:
		return "msedge"
	default:
		return ""
	}
}

// Session represents a launched browser bound to one profile directory.
type Session struct {
	// Kind is the browser that was launched
	Kind Kind

	// ProfileDir is the user data directory, empty for an ephemeral profile
	ProfileDir string

	// Context is the persistent browser context
	Context playwright.BrowserContext

	// Page is the page every lookup and navigation runs against
	Page playwright.Page

	// CreatedAt is the timestamp when the session was launched
	CreatedAt time.Time

	// CurrentURL is the URL of the last navigation
	CurrentURL string

	implicitWait time.Duration
	onClose      func(*Session)
}

// Options configures how the Manager launches browsers.
type Options struct {
	// Headless controls whether the browser runs without a visible window.
	// WhatsApp Web needs a visible window for the QR code login.
	Headless bool

	// Timeout is the default timeout for page operations
	Timeout time.Duration

	// SkipInstall skips downloading the Playwright driver and browsers
	SkipInstall bool
}

// Element is a DOM element returned by a lookup.
type Element interface {
	Click() error
	Fill(text string) error
}

// Default values for launches
const (
	DefaultTimeout = 30 * time.Second
)
