// Package keyboard synthesizes OS-level keyboard input.
//
// Native file-picker dialogs live outside the browser's DOM, so typing a
// path into one has to go through the operating system rather than the
// browser automation driver.
package keyboard

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/micmonay/keybd_event"
)

// Key names a key that can be pressed on its own.
type Key string

const (
	// KeyEnter confirms a dialog.
	KeyEnter Key = "enter"
)

// Injector types text and presses keys into whatever window has focus.
type Injector interface {
	Type(text string) error
	Press(key Key) error
}

// OSInjector injects keystrokes through the operating system.
// Text is placed on the clipboard and pasted, which keeps arbitrary paths
// independent of the active keyboard layout.
// The previous clipboard content is restored once the paste has landed.
type OSInjector struct {
	mu      sync.Mutex
	kb      *keybd_event.KeyBonding
	initErr error
	once    sync.Once

	paste func() error
	sleep func(time.Duration)
}

// restoreDelay gives the focused window time to read the clipboard before
// its previous content is put back.
const restoreDelay = 500 * time.Millisecond

// Clipboard access, replaced in tests.
var (
	clipboardReadAll  = clipboard.ReadAll
	clipboardWriteAll = clipboard.WriteAll
)

// NewOSInjector creates an injector. The virtual keyboard device is
// created on first use.
func NewOSInjector() *OSInjector {
	o := &OSInjector{sleep: time.Sleep}
	o.paste = o.sendPaste
	return o
}

func (o *OSInjector) bonding() (*keybd_event.KeyBonding, error) {
	o.once.Do(func() {
		kb, err := keybd_event.NewKeyBonding()
		if err != nil {
			o.initErr = fmt.Errorf("failed to create virtual keyboard: %w", err)
			return
		}
		// uinput needs time before the new device accepts events
		if runtime.GOOS == "linux" {
			time.Sleep(2 * time.Second)
		}
		o.kb = &kb
	})
	return o.kb, o.initErr
}

// Type pastes text into the focused window.
func (o *OSInjector) Type(text string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	// An unreadable clipboard is not restored
	previous, readErr := clipboardReadAll()

	if err := clipboardWriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}

	err := o.paste()
	if readErr == nil {
		o.sleep(restoreDelay)
		if werr := clipboardWriteAll(previous); werr != nil && err == nil {
			err = fmt.Errorf("failed to restore clipboard: %w", werr)
		}
	}
	return err
}

func (o *OSInjector) sendPaste() error {
	kb, err := o.bonding()
	if err != nil {
		return err
	}
	kb.Clear()
	kb.HasCTRL(true)
	kb.SetKeys(keybd_event.VK_V)
	defer kb.Clear()
	if err := kb.Launching(); err != nil {
		return fmt.Errorf("failed to paste: %w", err)
	}
	return nil
}

// Press presses and releases a single named key.
func (o *OSInjector) Press(key Key) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	code, ok := keyCodes[key]
	if !ok {
		return fmt.Errorf("unsupported key: %q", key)
	}

	kb, err := o.bonding()
	if err != nil {
		return err
	}
	kb.Clear()
	kb.SetKeys(code)
	defer kb.Clear()
	if err := kb.Launching(); err != nil {
		return fmt.Errorf("failed to press %s: %w", key, err)
	}
	return nil
}

var keyCodes = map[Key]int{
	KeyEnter: keybd_event.VK_ENTER,
}
