package generation

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"smart-email-sender/internal/extract"
	"smart-email-sender/internal/llm"
	"smart-email-sender/internal/shared/server/middleware"
	"smart-email-sender/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the upload route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	c.Set(middleware.PipelineStateKey, string(StateReceived))

	var form uploadForm
	if err := c.ShouldBind(&form); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "validation_error", "file is too large", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "file and companyName are required", respond.ValidationDetails(err))
		return
	}

	kind := llm.TemplateKindFromString(form.Template)
	c.Set(middleware.FileNameKey, form.File.Filename)
	c.Set(middleware.TemplateKey, kind.String())

	file, err := form.File.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	res, err := h.Svc.Generate(c.Request.Context(), Request{
		FileName:    form.File.Filename,
		MediaType:   form.File.Header.Get("Content-Type"),
		Data:        data,
		CompanyName: form.CompanyName,
		JobTitle:    form.JobTitle,
		Template:    kind,
	})
	if err != nil {
		var perr *PipelineError
		if errors.As(err, &perr) {
			c.Set(middleware.PipelineStateKey, string(perr.State))
		}
		switch {
		case errors.Is(err, extract.ErrUnsupportedType):
			respond.Error(c, http.StatusBadRequest, "unsupported_media_type", "Invalid or unsupported file type", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, extract.ErrExtractionFailed):
			respond.Error(c, http.StatusInternalServerError, "extraction_failed", "Error: "+err.Error(), nil)
		case errors.Is(err, llm.ErrModelUnavailable):
			respond.Error(c, http.StatusInternalServerError, "model_unavailable", "Error: "+err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "Error: "+err.Error(), nil)
		}
		return
	}

	c.Set(middleware.GenerationIDKey, res.GenerationID)
	c.Set(middleware.PipelineStateKey, string(StateReturned))
	respond.OK(c, NewUploadResponse(res))
}
