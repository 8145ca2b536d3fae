// Package whatsapp sends text, image and audio messages through WhatsApp Web.
//
// A Client drives one browser. Every send resolves the receiver to a chat
// URL, navigates there, passes the login gate and then runs a fixed
// sequence of element lookups and UI actions:
//
//	text:  navigate → fill text box → click send → settle
//	image: navigate → open attach menu → pick media → paste path → [caption] → click send → settle
//	audio: navigate → open attach menu → pick document → paste path → click send → settle
//
// Elements are located by class signature through a Selectors map, and the
// defaults can be overridden without touching the flows. File paths are
// typed into the native file dialog with OS keystrokes because the dialog is
// not part of the page.
//
// # Login Gate
//
// When the login screen is shown after navigation, the send waits once for
// the login window (20 seconds by default) so the QR code can be scanned
// with the phone, then checks again. A screen that is still shown fails the
// send with ErrFailedLogin.
//
// # Errors
//
// Failures abort the send and are never retried. Use errors.Is with
// ErrInvalidArgument, ErrInvalidReceiver, ErrInvalidFile,
// ErrUnsupportedBrowser, ErrElementNotFound or ErrFailedLogin. Sequence
// failures are wrapped in a *StepError that records the last state reached.
//
// # Example Usage
//
//	client, err := whatsapp.New(whatsapp.WithLogger(logger))
//	defer client.Close()
//
//	err = client.SetBrowser("chrome")
//	err = client.SetWait(10)
//	err = client.SendText("15551234567", "hello")
//	err = client.SendImage("15551234567", "/tmp/cat.png", "look")
package whatsapp
