// Package compose fills the static HTML email templates by literal placeholder substitution.
package compose

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

const (
	// TemplateInquiry is the general inquiry email.
	TemplateInquiry = "asking_job_template.html"
	// TemplateApplication is the job application email.
	TemplateApplication = "job_application_template.html"
)

// Placeholder names declared by the bundled templates.
const (
	CompanyName       = "company_name"
	HiringManagerName = "hiring_manager_name"
	InquiryMessage    = "inquiry_message"
	JobTitle          = "job_title"
	BodyContent       = "body_content"
)

// ErrTemplateNotFound is returned when the named template does not exist.
var ErrTemplateNotFound = errors.New("email template not found")

//go:embed templates/*.html
var bundled embed.FS

// Composer loads templates from a file system.
type Composer struct {
	fsys fs.FS
}

// New returns a Composer over the bundled templates.
func New() *Composer {
	sub, err := fs.Sub(bundled, "templates")
	if err != nil {
		panic(err)
	}
	return &Composer{fsys: sub}
}

// NewFromFS returns a Composer reading templates from fsys.
func NewFromFS(fsys fs.FS) *Composer {
	return &Composer{fsys: fsys}
}

// Compose loads the named template and replaces every {{key}} token with its value.
// Values are inserted verbatim, in one pass, and are not rescanned. Tokens without an
// entry in substitutions are left in place.
func (c *Composer) Compose(name string, substitutions map[string]string) (string, error) {
	raw, err := fs.ReadFile(c.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		return "", fmt.Errorf("read template %s: %w", name, err)
	}

	keys := make([]string, 0, len(substitutions))
	for k := range substitutions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, "{{"+k+"}}", substitutions[k])
	}
	return strings.NewReplacer(pairs...).Replace(string(raw)), nil
}
