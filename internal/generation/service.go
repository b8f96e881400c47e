package generation

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"smart-email-sender/internal/extract"
	"smart-email-sender/internal/llm"
	"smart-email-sender/internal/shared/metrics"
	"smart-email-sender/internal/shared/storage/object"
	"smart-email-sender/internal/shared/telemetry"
	"smart-email-sender/internal/shared/util"
)

// Request is one uploaded resume plus the targeting fields.
type Request struct {
	FileName    string
	MediaType   string
	Data        []byte
	CompanyName string
	JobTitle    string
	Template    llm.TemplateKind
}

// Result is what a completed generation hands back to the caller.
type Result struct {
	GenerationID  string
	FileName      string
	Template      llm.TemplateKind
	EmailBody     string
	ExtractedText string
	DetectedType  string
	Model         string
	Degraded      bool
}

// Service runs validate, extract, prompt, model call and parse for a single upload.
type Service struct {
	Extractor extract.Extractor
	Generator llm.Generator
	Archive   object.Archive
	Model     string
	Timeout   time.Duration
}

// Generate runs the pipeline. Errors are *PipelineError values wrapping ErrInvalidInput,
// extract.ErrUnsupportedType, extract.ErrExtractionFailed or llm.ErrModelUnavailable.
func (s *Service) Generate(ctx context.Context, req Request) (Result, error) {
	if err := validate(req); err != nil {
		metrics.IncGenerationFailed()
		return Result{}, fail(StateValidated, err)
	}
	metrics.IncGenerationStarted()

	res := Result{
		GenerationID: uuid.NewString(),
		FileName:     req.FileName,
		Template:     req.Template,
		Model:        s.Model,
	}

	s.archive(ctx, res.GenerationID, req)

	extracted, err := s.Extractor.Extract(ctx, req.Data, req.MediaType)
	if err != nil {
		metrics.IncGenerationFailed()
		return Result{}, fail(StateExtracted, err)
	}
	res.ExtractedText = extracted.Text
	res.DetectedType = extracted.DetectedType
	telemetry.Info("generation.extracted", map[string]any{
		"generation_id": res.GenerationID,
		"media_type":    extracted.MediaType,
		"detected_type": extracted.DetectedType,
		"pages":         extracted.Pages,
		"text_chars":    len(extracted.Text),
	})

	prompt := llm.BuildPrompt(extracted.Text, strings.TrimSpace(req.CompanyName), strings.TrimSpace(req.JobTitle), req.Template)

	callCtx := ctx
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	start := time.Now()
	raw, err := s.Generator.Generate(callCtx, prompt)
	elapsed := time.Since(start)
	metrics.ObserveModelDurationMs(float64(elapsed.Microseconds()) / 1000.0)
	if err != nil {
		metrics.IncGenerationFailed()
		return Result{}, fail(StateModelCalled, err)
	}
	telemetry.Info("generation.model_called", map[string]any{
		"generation_id": res.GenerationID,
		"model":         s.Model,
		"template":      req.Template.String(),
		"duration_ms":   float64(elapsed.Microseconds()) / 1000.0,
		"response_size": len(raw),
	})

	body, ok := llm.ParseResponse(raw)
	if !ok {
		res.Degraded = true
		metrics.IncGenerationDegraded()
		telemetry.Warn("generation.parse_degraded", map[string]any{
			"generation_id": res.GenerationID,
			"response_size": len(raw),
		})
	}
	res.EmailBody = body

	metrics.IncGenerationCompleted()
	return res, nil
}

func validate(req Request) error {
	if !extract.IsSupported(req.MediaType) {
		return fmt.Errorf("%w: %q", extract.ErrUnsupportedType, req.MediaType)
	}
	if strings.TrimSpace(req.CompanyName) == "" {
		return fmt.Errorf("%w: companyName is required", ErrInvalidInput)
	}
	if len(req.Data) == 0 {
		return fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}
	return nil
}

// archive keeps a copy of the upload. Failures are logged and never stop the pipeline.
func (s *Service) archive(ctx context.Context, generationID string, req Request) {
	if s.Archive == nil {
		return
	}
	key, err := util.SanitizeFileName(req.FileName)
	if err != nil {
		telemetry.Warn("generation.save_failed", map[string]any{
			"generation_id": generationID,
			"file_name":     req.FileName,
			"error":         err,
		})
		return
	}
	n, err := s.Archive.SaveWithKey(ctx, key, req.MediaType, bytes.NewReader(req.Data))
	if err != nil {
		telemetry.Warn("generation.save_failed", map[string]any{
			"generation_id": generationID,
			"storage_key":   key,
			"error":         err,
		})
		return
	}
	telemetry.Info("generation.saved", map[string]any{
		"generation_id": generationID,
		"storage_key":   key,
		"size_bytes":    n,
	})
}
