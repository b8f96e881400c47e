package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"smart-email-sender/internal/extract"
	"smart-email-sender/internal/generation"
	"smart-email-sender/internal/llm"
	"smart-email-sender/internal/shared/storage/object"
)

var (
	generateFile     string
	generateCompany  string
	generateJobTitle string
	generateTemplate string
	generateJSON     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an email body from a resume",
	Long: `Runs extraction, prompt building and the model call in-process and prints the
generated email body. The media type is taken from the file extension.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateFile, "file", "f", "", "resume file (.pdf or .docx)")
	generateCmd.Flags().StringVarP(&generateCompany, "company", "c", "", "target company name")
	generateCmd.Flags().StringVar(&generateJobTitle, "job-title", "", "job title (application template)")
	generateCmd.Flags().StringVarP(&generateTemplate, "template", "t", "inquiry", "prompt template: application or inquiry")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "print the full result as JSON")
	_ = generateCmd.MarkFlagRequired("file")
	_ = generateCmd.MarkFlagRequired("company")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	kind, err := llm.ParseTemplateKind(generateTemplate)
	if err != nil {
		return err
	}
	mediaType, err := mediaTypeFromExt(generateFile)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(generateFile)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}

	cfg := loadConfig()
	svc := &generation.Service{
		Extractor: extract.New(),
		Generator: newGenerator(cfg),
		Archive:   object.Nop{},
		Model:     cfg.ModelName,
		Timeout:   cfg.ModelTimeout,
	}

	res, err := svc.Generate(cmd.Context(), generation.Request{
		FileName:    filepath.Base(generateFile),
		MediaType:   mediaType,
		Data:        data,
		CompanyName: generateCompany,
		JobTitle:    generateJobTitle,
		Template:    kind,
	})
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	if generateJSON {
		out, err := json.MarshalIndent(generation.NewUploadResponse(res), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(out))
		return nil
	}
	cmd.Println(res.EmailBody)
	return nil
}

func mediaTypeFromExt(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extract.MimePDF, nil
	case ".docx":
		return extract.MimeDOCX, nil
	default:
		return "", fmt.Errorf("%w: %q", extract.ErrUnsupportedType, filepath.Ext(path))
	}
}
