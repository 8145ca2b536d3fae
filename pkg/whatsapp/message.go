package whatsapp

import (
	"fmt"
	"strings"
)

// MessageKind is the kind of content a Message carries.
type MessageKind string

const (
	KindText  MessageKind = "text"
	KindImage MessageKind = "image"
	KindAudio MessageKind = "audio"
)

// ParseMessageKind maps a case-insensitive name to a MessageKind.
func ParseMessageKind(name string) (MessageKind, error) {
	switch k := MessageKind(strings.ToLower(strings.TrimSpace(name))); k {
	case KindText, KindImage, KindAudio:
		return k, nil
	default:
		return "", fmt.Errorf("%w: unknown message type %q", ErrInvalidArgument, name)
	}
}

// Message is one outgoing message. Text is the body of a text message,
// Path the file of an image or audio message, and Caption the optional
// text sent with an image.
type Message struct {
	Kind     MessageKind `json:"type" yaml:"type"`
	Receiver string      `json:"receiver" yaml:"receiver"`
	Text     string      `json:"message,omitempty" yaml:"message,omitempty"`
	Path     string      `json:"path,omitempty" yaml:"path,omitempty"`
	Caption  string      `json:"caption,omitempty" yaml:"caption,omitempty"`
}
