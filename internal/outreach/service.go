// Package outreach composes templated HTML emails and hands them to a mail transport.
package outreach

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"smart-email-sender/internal/compose"
	"smart-email-sender/internal/mailer"
	"smart-email-sender/internal/shared/metrics"
	"smart-email-sender/internal/shared/telemetry"
)

const (
	InquirySubject           = "Job Opening Inquiry"
	applicationSubjectPrefix = "Job Application for -- "
)

var ErrInvalidInput = errors.New("invalid input")

// Composer fills a named HTML template.
type Composer interface {
	Compose(name string, substitutions map[string]string) (string, error)
}

// InquiryRequest asks a company about openings.
type InquiryRequest struct {
	To                string
	CompanyName       string
	HiringManagerName string
	Body              string
	Text              string // optional plain text alternative
	Attachments       []mailer.Attachment
}

// ApplicationRequest applies for a named position.
type ApplicationRequest struct {
	To          string
	JobTitle    string
	Body        string
	Text        string
	Attachments []mailer.Attachment
}

// Service sends outreach emails.
type Service struct {
	Composer Composer
	Sender   mailer.Sender
}

// ApplicationSubject returns the subject line used for job applications.
func ApplicationSubject(jobTitle string) string {
	return applicationSubjectPrefix + jobTitle
}

// SendInquiry renders the inquiry template and sends it.
func (s *Service) SendInquiry(ctx context.Context, req InquiryRequest) error {
	if err := required(map[string]string{
		"to":                req.To,
		"companyName":       req.CompanyName,
		"hiringManagerName": req.HiringManagerName,
		"body":              req.Body,
	}); err != nil {
		return err
	}

	html, err := s.Composer.Compose(compose.TemplateInquiry, map[string]string{
		compose.CompanyName:       req.CompanyName,
		compose.HiringManagerName: req.HiringManagerName,
		compose.InquiryMessage:    req.Body,
	})
	if err != nil {
		return fmt.Errorf("compose inquiry: %w", err)
	}

	return s.send(ctx, compose.TemplateInquiry, mailer.Message{
		To:          req.To,
		Subject:     InquirySubject,
		HTML:        html,
		Text:        req.Text,
		Attachments: req.Attachments,
	})
}

// SendApplication renders the application template and sends it.
func (s *Service) SendApplication(ctx context.Context, req ApplicationRequest) error {
	if err := required(map[string]string{
		"to":       req.To,
		"jobTitle": req.JobTitle,
		"body":     req.Body,
	}); err != nil {
		return err
	}

	html, err := s.Composer.Compose(compose.TemplateApplication, map[string]string{
		compose.JobTitle:    req.JobTitle,
		compose.BodyContent: req.Body,
	})
	if err != nil {
		return fmt.Errorf("compose application: %w", err)
	}

	return s.send(ctx, compose.TemplateApplication, mailer.Message{
		To:          req.To,
		Subject:     ApplicationSubject(req.JobTitle),
		HTML:        html,
		Text:        req.Text,
		Attachments: req.Attachments,
	})
}

func (s *Service) send(ctx context.Context, template string, msg mailer.Message) error {
	if err := s.Sender.Send(ctx, msg); err != nil {
		metrics.IncEmailFailed()
		telemetry.Error("email.failed", map[string]any{
			"to":       msg.To,
			"subject":  msg.Subject,
			"template": template,
			"error":    err,
		})
		return err
	}
	metrics.IncEmailSent()
	telemetry.Info("email.sent", map[string]any{
		"to":          msg.To,
		"subject":     msg.Subject,
		"template":    template,
		"attachments": len(msg.Attachments),
	})
	return nil
}

func required(fields map[string]string) error {
	var missing []string
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("%w: %s required", ErrInvalidInput, strings.Join(missing, ", "))
}
