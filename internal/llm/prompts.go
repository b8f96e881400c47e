package llm

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
)

var (
	//go:embed prompts/application.txt
	promptApplication string
	//go:embed prompts/inquiry.txt
	promptInquiry string
)

// TemplateKind selects one of the two fixed prompt shapes.
type TemplateKind int

const (
	// InquiryTemplate asks for a general inquiry about current or upcoming openings.
	InquiryTemplate TemplateKind = iota
	// ApplicationTemplate asks for a cold application to a named position.
	ApplicationTemplate
)

// ErrUnknownTemplate is returned by ParseTemplateKind for unrecognized selectors.
var ErrUnknownTemplate = errors.New("unknown template")

func (k TemplateKind) String() string {
	if k == ApplicationTemplate {
		return "application"
	}
	return "inquiry"
}

// TemplateKindFromString maps a selector onto a TemplateKind. Only the exact, case-sensitive
// string "application" selects ApplicationTemplate; every other value, including "" and
// "Application", falls back to InquiryTemplate.
func TemplateKindFromString(selector string) TemplateKind {
	if selector == "application" {
		return ApplicationTemplate
	}
	return InquiryTemplate
}

// ParseTemplateKind is the strict variant of TemplateKindFromString: it accepts only
// "application" and "inquiry".
func ParseTemplateKind(selector string) (TemplateKind, error) {
	switch selector {
	case "application":
		return ApplicationTemplate, nil
	case "inquiry":
		return InquiryTemplate, nil
	default:
		return InquiryTemplate, fmt.Errorf("%w: %q (want application or inquiry)", ErrUnknownTemplate, selector)
	}
}

// PromptTemplate returns the raw template text for kind.
func PromptTemplate(kind TemplateKind) string {
	if kind == ApplicationTemplate {
		return promptApplication
	}
	return promptInquiry
}

// BuildPrompt renders the prompt for kind. It is deterministic and never fails; an empty
// jobTitle is substituted as-is. Substituted values are not rescanned for tokens.
func BuildPrompt(resumeText, companyName, jobTitle string, kind TemplateKind) string {
	replacer := strings.NewReplacer(
		"{{RESUME_TEXT}}", resumeText,
		"{{COMPANY_NAME}}", companyName,
		"{{JOB_TITLE}}", jobTitle,
	)
	return replacer.Replace(PromptTemplate(kind))
}
