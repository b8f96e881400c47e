package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	"smart-email-sender/internal/compose"
	"smart-email-sender/internal/llm"
	"smart-email-sender/internal/mailer"
	"smart-email-sender/internal/outreach"
)

var (
	sendTo            string
	sendTemplate      string
	sendCompany       string
	sendJobTitle      string
	sendHiringManager string
	sendBody          string
	sendBodyFile      string
	sendText          string
	sendAttach        []string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Compose a templated email and send it",
	Long: `Fills the inquiry or application HTML template with the given body and sends it
through the configured mail transport (MAIL_TRANSPORT).`,
	Args: cobra.NoArgs,
	RunE: runSend,
}

func init() {
	sendCmd.Flags().StringVar(&sendTo, "to", "", "recipient address")
	sendCmd.Flags().StringVarP(&sendTemplate, "template", "t", "inquiry", "email template: application or inquiry")
	sendCmd.Flags().StringVarP(&sendCompany, "company", "c", "", "company name (inquiry)")
	sendCmd.Flags().StringVar(&sendJobTitle, "job-title", "", "job title (application)")
	sendCmd.Flags().StringVar(&sendHiringManager, "hiring-manager", "", "hiring manager name (inquiry)")
	sendCmd.Flags().StringVarP(&sendBody, "body", "b", "", "email body text")
	sendCmd.Flags().StringVar(&sendBodyFile, "body-file", "", "read the email body from a file")
	sendCmd.Flags().StringVar(&sendText, "text", "", "plain text alternative sent alongside the HTML")
	sendCmd.Flags().StringSliceVar(&sendAttach, "attach", nil, "file to attach (repeatable)")
	sendCmd.MarkFlagsMutuallyExclusive("body", "body-file")
	_ = sendCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, _ []string) error {
	kind, err := llm.ParseTemplateKind(sendTemplate)
	if err != nil {
		return err
	}

	body := sendBody
	if sendBodyFile != "" {
		raw, err := os.ReadFile(sendBodyFile)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		body = string(raw)
	}
	if body == "" {
		return errors.New("one of --body or --body-file is required")
	}

	attachments, err := readAttachments(sendAttach)
	if err != nil {
		return err
	}

	sender, err := newSender(loadConfig())
	if err != nil {
		return err
	}
	svc := &outreach.Service{Composer: compose.New(), Sender: sender}

	switch kind {
	case llm.ApplicationTemplate:
		err = svc.SendApplication(cmd.Context(), outreach.ApplicationRequest{
			To:          sendTo,
			JobTitle:    sendJobTitle,
			Body:        body,
			Text:        sendText,
			Attachments: attachments,
		})
	default:
		err = svc.SendInquiry(cmd.Context(), outreach.InquiryRequest{
			To:                sendTo,
			CompanyName:       sendCompany,
			HiringManagerName: sendHiringManager,
			Body:              body,
			Text:              sendText,
			Attachments:       attachments,
		})
	}
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}

	cmd.Printf("Email sent to %s\n", sendTo)
	return nil
}

func readAttachments(paths []string) ([]mailer.Attachment, error) {
	out := make([]mailer.Attachment, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read attachment: %w", err)
		}
		out = append(out, mailer.Attachment{
			Name:        filepath.Base(p),
			ContentType: mimetype.Detect(data).String(),
			Data:        data,
		})
	}
	return out, nil
}
