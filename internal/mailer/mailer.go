// Package mailer delivers composed HTML emails through a pluggable transport.
package mailer

import (
	"context"
	"errors"
)

// ErrTransport marks a failure reported by the underlying mail transport.
var ErrTransport = errors.New("mail transport failed")

// Attachment is a file carried along with a message.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Message is a single outbound email. The sender identity is fixed per Sender.
type Message struct {
	To          string
	Subject     string
	HTML        string
	Text        string // optional plain text alternative
	Attachments []Attachment
}

// Sender is implemented by every transport.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
