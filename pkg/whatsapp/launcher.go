package whatsapp

import (
	"github.com/entrhq/wasend/pkg/browser"
)

// PlaywrightLauncher launches browsers through a browser.Manager.
type PlaywrightLauncher struct {
	manager *browser.Manager
}

// NewPlaywrightLauncher creates a launcher backed by a new browser.Manager.
func NewPlaywrightLauncher(opts browser.Options) *PlaywrightLauncher {
	return &PlaywrightLauncher{manager: browser.NewManager(opts)}
}

// Launch starts a browser session.
func (l *PlaywrightLauncher) Launch(kind browser.Kind, profileDir string) (Page, error) {
	session, err := l.manager.Launch(kind, profileDir)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Shutdown stops every browser and the Playwright driver.
func (l *PlaywrightLauncher) Shutdown() error {
	return l.manager.Shutdown()
}
