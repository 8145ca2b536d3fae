package whatsapp

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/entrhq/wasend/pkg/browser"
	"github.com/entrhq/wasend/pkg/keyboard"
	"github.com/stretchr/testify/require"
)

// recorder collects every UI action in order.
type recorder struct {
	events []string
	sleeps []time.Duration
}

func (r *recorder) add(format string, v ...interface{}) {
	r.events = append(r.events, fmt.Sprintf(format, v...))
}

func (r *recorder) sleep(d time.Duration) {
	r.sleeps = append(r.sleeps, d)
}

type fakeElement struct {
	rec *recorder
	id  string
	err error
}

func (e *fakeElement) Click() error {
	if e.err != nil {
		return e.err
	}
	e.rec.add("click %s", e.id)
	return nil
}

func (e *fakeElement) Fill(text string) error {
	if e.err != nil {
		return e.err
	}
	e.rec.add("fill %s %s", e.id, text)
	return nil
}

type fakePage struct {
	rec *recorder

	// counts maps a selector name to the number of matches it returns
	counts map[string]int

	// loginMarkers is consumed one entry per login marker lookup
	loginMarkers []int

	navigateErr error
	clickErr    error
	wait        time.Duration
	closed      int
	names       map[string]string
}

func newFakePage(rec *recorder) *fakePage {
	p := &fakePage{
		rec: rec,
		counts: map[string]int{
			SelectorAttachMenu:  1,
			SelectorAttachMedia: 2,
			SelectorTextBox:     2,
			SelectorCaptionBox:  1,
			SelectorSendText:    1,
			SelectorSendFile:    1,
		},
		names: map[string]string{},
	}
	for name, sel := range DefaultSelectors() {
		// attach_media and attach_document share a class
		if name == SelectorAttachDocument {
			continue
		}
		p.names[sel.Class] = name
	}
	return p
}

func (p *fakePage) Navigate(url string) error {
	if p.navigateErr != nil {
		return p.navigateErr
	}
	p.rec.add("navigate %s", url)
	return nil
}

func (p *fakePage) FindByClass(class string) ([]browser.Element, error) {
	name := p.names[class]
	if name == SelectorLoginMarker {
		n := 0
		if len(p.loginMarkers) > 0 {
			n, p.loginMarkers = p.loginMarkers[0], p.loginMarkers[1:]
		}
		p.rec.add("check login")
		return p.elements(name, n), nil
	}
	return p.elements(name, p.counts[name]), nil
}

func (p *fakePage) elements(name string, n int) []browser.Element {
	els := make([]browser.Element, n)
	for i := range els {
		els[i] = &fakeElement{rec: p.rec, id: fmt.Sprintf("%s#%d", name, i), err: p.clickErr}
	}
	return els
}

func (p *fakePage) SetImplicitWait(d time.Duration) {
	p.wait = d
}

func (p *fakePage) Close() error {
	p.closed++
	return nil
}

type fakeLauncher struct {
	pages    []*fakePage
	launched []string
	err      error
	shutdown int
	rec      *recorder
}

func (l *fakeLauncher) Launch(kind browser.Kind, profileDir string) (Page, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.launched = append(l.launched, fmt.Sprintf("%s|%s", kind, profileDir))
	p := newFakePage(l.rec)
	l.pages = append(l.pages, p)
	return p, nil
}

func (l *fakeLauncher) Shutdown() error {
	l.shutdown++
	return nil
}

func (l *fakeLauncher) last() *fakePage {
	return l.pages[len(l.pages)-1]
}

type fakeKeyboard struct {
	rec *recorder
	err error
}

func (k *fakeKeyboard) Type(text string) error {
	if k.err != nil {
		return k.err
	}
	k.rec.add("type %s", text)
	return nil
}

func (k *fakeKeyboard) Press(key keyboard.Key) error {
	k.rec.add("press %s", key)
	return nil
}

type staticLocator string

func (s staticLocator) Discover(browser.Kind) string { return string(s) }

// newTestClient returns a client with every external collaborator faked and
// chrome already selected.
func newTestClient(t *testing.T, opts ...Option) (*Client, *fakeLauncher, *recorder) {
	t.Helper()

	rec := &recorder{}
	launcher := &fakeLauncher{rec: rec}
	base := []Option{
		WithLauncher(launcher),
		WithKeyboard(&fakeKeyboard{rec: rec}),
		WithProfileLocator(staticLocator("/profiles/chrome")),
	}
	c, err := New(append(base, opts...)...)
	require.NoError(t, err)
	c.sleep = rec.sleep

	require.NoError(t, c.SetBrowser("chrome"))
	return c, launcher, rec
}

func writeTempFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("data"), 0600))
	return path
}
