package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"smart-email-sender/internal/shared/telemetry"
)

// Context keys handlers may set to enrich the request log line.
const (
	GenerationIDKey  = "generationId"
	FileNameKey      = "fileName"
	TemplateKey      = "template"
	PipelineStateKey = "pipelineState"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		generationID, _ := c.Get(GenerationIDKey)
		fileName, _ := c.Get(FileNameKey)
		template, _ := c.Get(TemplateKey)
		state, _ := c.Get(PipelineStateKey)

		telemetry.Info("request.complete", map[string]any{
			"request_id":     RequestIDFromContext(c),
			"method":         c.Request.Method,
			"path":           c.Request.URL.Path,
			"status":         c.Writer.Status(),
			"duration_ms":    float64(latency.Microseconds()) / 1000.0,
			"generation_id":  generationID,
			"file_name":      fileName,
			"template":       template,
			"pipeline_state": state,
			"client_ip":      c.ClientIP(),
			"user_agent":     c.Request.UserAgent(),
		})
	}
}
