package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	// ErrUnsupportedType is returned for media types outside the PDF/DOCX allow-list.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrExtractionFailed wraps parser failures for corrupt or unreadable documents.
	ErrExtractionFailed = errors.New("text extraction failed")
)

// Result is the outcome of a successful extraction.
type Result struct {
	Text         string
	MediaType    string
	DetectedType string
	Pages        int
}

// Extractor turns document bytes into plain text.
type Extractor interface {
	Extract(ctx context.Context, data []byte, mediaType string) (Result, error)
}

// TextExtractor extracts PDF text with github.com/ledongthuc/pdf and DOCX text with
// github.com/nguyenthenguyen/docx.
type TextExtractor struct{}

// New returns a TextExtractor.
func New() TextExtractor {
	return TextExtractor{}
}

// Extract implements Extractor.
func (TextExtractor) Extract(ctx context.Context, data []byte, mediaType string) (Result, error) {
	return ExtractTextFromBytes(ctx, data, mediaType)
}

// IsSupported reports whether mediaType is PDF or DOCX. The comparison is exact apart from case
// and surrounding whitespace; parameters such as "; charset=" are not accepted.
func IsSupported(mediaType string) bool {
	_, ok := canonical(mediaType)
	return ok
}

// ExtractTextFromBytes extracts text from an in-memory payload.
func ExtractTextFromBytes(ctx context.Context, data []byte, mediaType string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	mt, ok := canonical(mediaType)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedType, strings.TrimSpace(mediaType))
	}

	res := Result{
		MediaType:    mt,
		DetectedType: mimetype.Detect(data).String(),
	}

	var err error
	switch mt {
	case MimePDF:
		res.Text, res.Pages, err = extractPDF(data)
	case MimeDOCX:
		res.Text, err = extractDOCX(data)
	}
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}
	return res, nil
}

func canonical(mediaType string) (string, bool) {
	clean := strings.TrimSpace(mediaType)
	switch {
	case strings.EqualFold(clean, MimePDF):
		return MimePDF, true
	case strings.EqualFold(clean, MimeDOCX):
		return MimeDOCX, true
	default:
		return "", false
	}
}

func extractPDF(data []byte) (text string, pages int, err error) {
	if len(data) == 0 {
		return "", 0, errors.New("empty pdf data")
	}
	// The pdf package panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			text, pages, err = "", 0, fmt.Errorf("malformed pdf: %v", rec)
		}
	}()

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", 0, err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", 0, err
	}
	return strings.TrimSpace(buf.String()), pdfReader.NumPage(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	return stripDocxXML(doc.Editable().GetContent())
}

func stripDocxXML(raw string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.StartElement:
			if t.Name.Local == "tab" {
				buf.WriteString("\t")
			}
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String()), nil
}
