// Package cli implements the mailgen command line.
package cli

import (
	"github.com/spf13/cobra"

	"smart-email-sender/internal/bootstrap"
	"smart-email-sender/internal/llm"
	"smart-email-sender/internal/mailer"
	"smart-email-sender/internal/shared/config"
)

// Builders are package variables so tests can substitute the model and the transport.
var (
	loadConfig   = config.Load
	newGenerator = func(cfg config.Config) llm.Generator { return bootstrap.BuildModel(cfg) }
	newSender    = func(cfg config.Config) (mailer.Sender, error) { return bootstrap.BuildSender(cfg) }
)

var rootCmd = &cobra.Command{
	Use:   "mailgen",
	Short: "Generate and send cold outreach emails from a resume",
	Long: `mailgen extracts text from a PDF or DOCX resume, asks a local model for a short
email body, and sends it through one of the bundled HTML templates.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
