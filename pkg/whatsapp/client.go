package whatsapp

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/entrhq/wasend/pkg/browser"
	"github.com/entrhq/wasend/pkg/keyboard"
)

const (
	// DefaultLoginWait is how long a send waits for a QR code scan.
	DefaultLoginWait = 20 * time.Second

	// DefaultStepDelay separates the file dialog keystrokes and is the base
	// of the settle delay.
	DefaultStepDelay = time.Second
)

// Page is the browser capability the client drives.
type Page interface {
	Navigate(url string) error
	FindByClass(class string) ([]browser.Element, error)
	SetImplicitWait(d time.Duration)
	Close() error
}

// Launcher starts browsers for the client.
type Launcher interface {
	Launch(kind browser.Kind, profileDir string) (Page, error)
	Shutdown() error
}

// ProfileLocator finds the persistent profile directory for a browser.
type ProfileLocator interface {
	Discover(kind browser.Kind) string
}

// Logger is the subset of logging.Logger the client uses.
type Logger interface {
	Debugf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Warnf(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

// Client sends messages through WhatsApp Web. It owns at most one browser
// and is not safe for concurrent use.
type Client struct {
	launcher  Launcher
	locator   ProfileLocator
	keyboard  keyboard.Injector
	selectors Selectors
	logger    Logger
	loginWait time.Duration
	stepDelay time.Duration
	sleep     func(time.Duration)
	stat      func(string) (os.FileInfo, error)

	page Page
	kind browser.Kind
}

// Option configures a Client.
type Option func(*Client)

// WithLauncher replaces the default Playwright launcher.
func WithLauncher(l Launcher) Option {
	return func(c *Client) { c.launcher = l }
}

// WithBrowserOptions configures the default Playwright launcher.
func WithBrowserOptions(opts browser.Options) Option {
	return func(c *Client) { c.launcher = NewPlaywrightLauncher(opts) }
}

// WithProfileLocator replaces the OS profile directory lookup.
func WithProfileLocator(l ProfileLocator) Option {
	return func(c *Client) { c.locator = l }
}

// WithKeyboard replaces the OS keystroke injector.
func WithKeyboard(k keyboard.Injector) Option {
	return func(c *Client) { c.keyboard = k }
}

// WithSelectors overrides entries of the default selector map.
func WithSelectors(overrides SelectorOverrides) Option {
	return func(c *Client) { c.selectors = c.selectors.Merge(overrides) }
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithLoginWait sets how long a send waits for the QR code login.
func WithLoginWait(d time.Duration) Option {
	return func(c *Client) { c.loginWait = d }
}

// WithStepDelay sets the delay between file dialog keystrokes.
func WithStepDelay(d time.Duration) Option {
	return func(c *Client) { c.stepDelay = d }
}

// New creates a client. Nothing is launched until SetBrowser.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		locator:   browser.NewProfileLocator(),
		selectors: DefaultSelectors(),
		logger:    nopLogger{},
		loginWait: DefaultLoginWait,
		stepDelay: DefaultStepDelay,
		sleep:     time.Sleep,
		stat:      os.Stat,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.launcher == nil {
		c.launcher = NewPlaywrightLauncher(browser.Options{})
	}
	if c.keyboard == nil {
		c.keyboard = keyboard.NewOSInjector()
	}
	if c.loginWait < 0 || c.stepDelay < 0 {
		return nil, fmt.Errorf("%w: delays must not be negative", ErrInvalidArgument)
	}
	if err := c.selectors.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Browser returns the name of the selected browser, or "" before
// SetBrowser.
func (c *Client) Browser() string {
	return string(c.kind)
}

// SetBrowser launches the named browser (chrome, edge or firefox, any case)
// with its discovered profile directory. A previously selected browser is
// closed first.
func (c *Client) SetBrowser(name string) error {
	kind, err := browser.ParseKind(name)
	if err != nil {
		return err
	}

	if c.page != nil {
		c.closePage()
	}

	profileDir := c.locator.Discover(kind)
	if profileDir == "" {
		c.logger.Warnf("no %s profile directory found, using a temporary profile", kind)
	} else {
		c.logger.Infof("using %s profile %s", kind, profileDir)
	}

	page, err := c.launcher.Launch(kind, profileDir)
	if err != nil {
		return fmt.Errorf("failed to select %s: %w", kind, err)
	}

	c.page = page
	c.kind = kind
	return nil
}

// ParseWait parses a wait value in seconds.
func ParseWait(s string) (float64, error) {
	seconds, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: wait must be a number of seconds, got %q", ErrInvalidArgument, s)
	}
	if err := checkWait(seconds); err != nil {
		return 0, err
	}
	return seconds, nil
}

func checkWait(seconds float64) error {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return fmt.Errorf("%w: wait must be a non-negative number of seconds, got %v", ErrInvalidArgument, seconds)
	}
	return nil
}

// SetWait sets the implicit wait applied to every later element lookup.
func (c *Client) SetWait(seconds float64) error {
	if err := checkWait(seconds); err != nil {
		return err
	}
	if c.page == nil {
		return ErrBrowserNotSelected
	}
	c.page.SetImplicitWait(time.Duration(seconds * float64(time.Second)))
	return nil
}

// SendText sends a text message.
func (c *Client) SendText(receiver, message string) error {
	target, err := ResolveTarget(receiver)
	if err != nil {
		return err
	}
	if message == "" {
		return fmt.Errorf("%w: message must not be empty", ErrInvalidArgument)
	}
	seq, err := c.newSequencer()
	if err != nil {
		return err
	}

	c.logger.Infof("sending text to %s", receiver)
	return c.finish(seq.run(seq.textPlan(target, message)), "text", receiver)
}

// SendImage sends an image, with caption when it is not empty.
func (c *Client) SendImage(receiver, path, caption string) error {
	target, err := ResolveTarget(receiver)
	if err != nil {
		return err
	}
	if err := c.checkFile(path); err != nil {
		return err
	}
	seq, err := c.newSequencer()
	if err != nil {
		return err
	}

	c.logger.Infof("sending image %s to %s", path, receiver)
	return c.finish(seq.run(seq.imagePlan(target, path, caption)), "image", receiver)
}

// SendAudio sends an audio file as a document.
func (c *Client) SendAudio(receiver, path string) error {
	target, err := ResolveTarget(receiver)
	if err != nil {
		return err
	}
	if err := c.checkFile(path); err != nil {
		return err
	}
	seq, err := c.newSequencer()
	if err != nil {
		return err
	}

	c.logger.Infof("sending audio %s to %s", path, receiver)
	return c.finish(seq.run(seq.audioPlan(target, path)), "audio", receiver)
}

// Send dispatches msg by kind.
func (c *Client) Send(msg Message) error {
	switch msg.Kind {
	case KindText:
		return c.SendText(msg.Receiver, msg.Text)
	case KindImage:
		return c.SendImage(msg.Receiver, msg.Path, msg.Caption)
	case KindAudio:
		return c.SendAudio(msg.Receiver, msg.Path)
	default:
		return fmt.Errorf("%w: unknown message type %q", ErrInvalidArgument, msg.Kind)
	}
}

// Close closes the browser and shuts down the launcher.
func (c *Client) Close() error {
	if c.page != nil {
		c.closePage()
	}
	if err := c.launcher.Shutdown(); err != nil {
		return fmt.Errorf("failed to shut down browser: %w", err)
	}
	return nil
}

func (c *Client) closePage() {
	if err := c.page.Close(); err != nil {
		c.logger.Warnf("closing %s: %v", c.kind, err)
	}
	c.page = nil
	c.kind = ""
}

func (c *Client) checkFile(path string) error {
	info, err := c.stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrInvalidFile, path)
	}
	return nil
}

func (c *Client) newSequencer() (*sequencer, error) {
	if c.page == nil {
		return nil, ErrBrowserNotSelected
	}
	return &sequencer{
		page:      c.page,
		selectors: c.selectors,
		keyboard:  c.keyboard,
		logger:    c.logger,
		sleep:     c.sleep,
		stepDelay: c.stepDelay,
		loginWait: c.loginWait,
	}, nil
}

func (c *Client) finish(err error, kind, receiver string) error {
	if err != nil {
		return fmt.Errorf("send %s to %s: %w", kind, receiver, err)
	}
	c.logger.Infof("sent %s to %s", kind, receiver)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
