package browser

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Manager owns the Playwright driver and every browser it launched.
type Manager struct {
	mu          sync.Mutex
	sessions    map[*Session]struct{}
	playwright  *playwright.Playwright
	opts        Options
	initialized bool
}

// NewManager creates a new manager. The Playwright driver is started lazily
// on the first Launch.
func NewManager(opts Options) *Manager {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Manager{
		sessions: make(map[*Session]struct{}),
		opts:     opts,
	}
}

// Initialize installs and runs the Playwright driver.
// Calling it again after success is a no-op.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initializeLocked()
}

func (m *Manager) initializeLocked() error {
	if m.initialized {
		return nil
	}

	opts := &playwright.RunOptions{
		Browsers: []string{"chromium", "firefox"},
		Verbose:  false,
		Stdout:   io.Discard,
		Stderr:   io.Discard,
	}

	if !m.opts.SkipInstall {
		if err := playwright.Install(opts); err != nil {
			return fmt.Errorf("failed to install playwright: %w", err)
		}
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	m.playwright = pw
	m.initialized = true
	return nil
}

// Launch starts a browser of the given kind bound to profileDir. An empty
// profileDir gives the browser a temporary profile.
func (m *Manager) Launch(kind Kind, profileDir string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.initializeLocked(); err != nil {
		return nil, err
	}

	launchOpts := playwright.BrowserTypeLaunchPersistentContextOptions{
		Headless: playwright.Bool(m.opts.Headless),
	}

	var engine playwright.BrowserType
	switch kind {
	case KindChrome, KindEdge:
		engine = m.playwright.Chromium
		launchOpts.Channel = playwright.String(kind.channel())
	case KindFirefox:
		engine = m.playwright.Firefox
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBrowser, kind)
	}

	context, err := engine.LaunchPersistentContext(profileDir, launchOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to launch %s: %w", kind, err)
	}

	var page playwright.Page
	if pages := context.Pages(); len(pages) > 0 {
		page = pages[0]
	} else {
		page, err = context.NewPage()
		if err != nil {
			context.Close()
			return nil, fmt.Errorf("failed to create page: %w", err)
		}
	}

	page.SetDefaultTimeout(float64(m.opts.Timeout.Milliseconds()))

	session := &Session{
		Kind:       kind,
		ProfileDir: profileDir,
		Context:    context,
		Page:       page,
		CreatedAt:  time.Now(),
		CurrentURL: "about:blank",
		onClose:    m.forget,
	}

	m.sessions[session] = struct{}{}
	return session, nil
}

func (m *Manager) forget(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, s)
}

// Shutdown closes all sessions and stops Playwright.
func (m *Manager) Shutdown() error {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	var errs []error
	for _, s := range sessions {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized && m.playwright != nil {
		if err := m.playwright.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
		}
		m.initialized = false
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}
	return nil
}
