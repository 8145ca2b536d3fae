// Package browser launches and drives the browser used to reach WhatsApp Web.
//
// A Manager owns the Playwright driver. Each Launch starts one browser bound
// to a persistent user data directory so the WhatsApp Web login survives
// between runs:
//
//   - chrome: Chromium engine, "chrome" channel
//   - edge: Chromium engine, "msedge" channel
//   - firefox: Firefox engine
//
// The profile directory is found by a ProfileLocator, which probes the
// ProfileCandidates table for the running OS and returns the first existing
// directory. An empty result launches with a temporary profile.
//
// Lookups go through Session.FindByClass, which mimics WebDriver's implicit
// wait: it waits up to the configured duration for a first match and returns
// whatever matched, possibly nothing.
//
// # Example Usage
//
//	manager := NewManager(Options{})
//	defer manager.Shutdown()
//
//	kind, err := ParseKind("Chrome")
//	session, err := manager.Launch(kind, NewProfileLocator().Discover(kind))
//	session.SetImplicitWait(5 * time.Second)
//	err = session.Navigate("https://web.whatsapp.com")
//	boxes, err := session.FindByClass("selectable-text.copyable-text")
package browser
