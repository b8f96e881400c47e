package mailer

import (
	"context"

	"smart-email-sender/internal/shared/telemetry"
)

// LogSender logs emails instead of sending them. Used in dev.
type LogSender struct {
	from string
}

// NewLogSender creates a log-based sender.
func NewLogSender(from string) *LogSender {
	return &LogSender{from: from}
}

// Send writes the message envelope to the structured log.
func (s *LogSender) Send(ctx context.Context, msg Message) error {
	names := make([]string, 0, len(msg.Attachments))
	for _, a := range msg.Attachments {
		names = append(names, a.Name)
	}
	telemetry.Info("email.logged", map[string]any{
		"from":        s.from,
		"to":          msg.To,
		"subject":     msg.Subject,
		"html_bytes":  len(msg.HTML),
		"attachments": names,
	})
	return nil
}
