package whatsapp

import (
	"errors"
	"fmt"

	"github.com/entrhq/wasend/pkg/browser"
)

var (
	// ErrUnsupportedBrowser is returned by SetBrowser for unknown names.
	ErrUnsupportedBrowser = browser.ErrUnsupportedBrowser

	// ErrInvalidArgument covers malformed messages, wait values and
	// selector maps.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidReceiver is returned for a receiver that is neither a phone
	// number nor a group code.
	ErrInvalidReceiver = fmt.Errorf("%w: receiver must be a phone number or a group code", ErrInvalidArgument)

	// ErrBrowserNotSelected is returned when an operation needs a browser
	// before SetBrowser succeeded.
	ErrBrowserNotSelected = fmt.Errorf("%w: browser not selected", ErrInvalidArgument)

	// ErrInvalidFile is returned when a path does not reference a regular file.
	ErrInvalidFile = errors.New("path does not contain file")

	// ErrElementNotFound is returned when a required element is absent after
	// the implicit wait.
	ErrElementNotFound = errors.New("timed out and element was not found")

	// ErrFailedLogin is returned when the login screen is still shown after
	// the login window.
	ErrFailedLogin = errors.New("user not logged in")
)

// StepError reports the sequencer step that failed and the last state
// reached before it. Whatever the UI shows at that point is left as is.
type StepError struct {
	// State is the last state the sequence reached
	State State

	// Step names the step that failed
	Step string

	// Err is the underlying error
	Err error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s failed after %s: %v", e.Step, e.State, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
