package whatsapp

import (
	"fmt"
	"net/url"
	"unicode"
)

const webURL = "https://web.whatsapp.com/"

// ReceiverKind classifies a receiver string.
type ReceiverKind int

const (
	// ReceiverInvalid is neither a phone number nor a group code.
	ReceiverInvalid ReceiverKind = iota

	// ReceiverPhone is a phone number made only of digits.
	ReceiverPhone

	// ReceiverGroup is a group invite code made of letters, optionally
	// mixed with digits.
	ReceiverGroup
)

func (k ReceiverKind) String() string {
	switch k {
	case ReceiverPhone:
		return "phone"
	case ReceiverGroup:
		return "group"
	default:
		return "invalid"
	}
}

// ClassifyReceiver reports whether receiver is a phone number, a group code
// or invalid.
func ClassifyReceiver(receiver string) ReceiverKind {
	if receiver == "" {
		return ReceiverInvalid
	}

	digitsOnly := true
	for _, r := range receiver {
		switch {
		case unicode.IsDigit(r):
		case unicode.IsLetter(r):
			digitsOnly = false
		default:
			return ReceiverInvalid
		}
	}

	if digitsOnly {
		return ReceiverPhone
	}
	return ReceiverGroup
}

// ResolveTarget builds the WhatsApp Web URL that opens a chat with receiver.
func ResolveTarget(receiver string) (string, error) {
	switch ClassifyReceiver(receiver) {
	case ReceiverPhone:
		return webURL + "send?phone=" + url.QueryEscape(receiver), nil
	case ReceiverGroup:
		return webURL + "accept?code=" + url.QueryEscape(receiver), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidReceiver, receiver)
	}
}
