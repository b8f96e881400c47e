package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	generationStartedTotal   atomic.Uint64
	generationCompletedTotal atomic.Uint64
	generationFailedTotal    atomic.Uint64
	generationDegradedTotal  atomic.Uint64

	emailSentTotal   atomic.Uint64
	emailFailedTotal atomic.Uint64

	modelDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncGenerationStarted counts an accepted upload.
func IncGenerationStarted() {
	generationStartedTotal.Add(1)
}

// IncGenerationCompleted counts a generation that returned a body.
func IncGenerationCompleted() {
	generationCompletedTotal.Add(1)
}

// IncGenerationFailed counts a generation that ended in an error response.
func IncGenerationFailed() {
	generationFailedTotal.Add(1)
}

// IncGenerationDegraded counts a model reply that could not be parsed.
func IncGenerationDegraded() {
	generationDegradedTotal.Add(1)
}

// IncEmailSent counts a delivered email.
func IncEmailSent() {
	emailSentTotal.Add(1)
}

// IncEmailFailed counts a failed delivery.
func IncEmailFailed() {
	emailFailedTotal.Add(1)
}

// ObserveModelDurationMs records a model call duration in milliseconds.
func ObserveModelDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	modelDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "generation_started_total", "Total email generations started", generationStartedTotal.Load())
	writeCounter(&buf, "generation_completed_total", "Total email generations completed", generationCompletedTotal.Load())
	writeCounter(&buf, "generation_failed_total", "Total email generations failed", generationFailedTotal.Load())
	writeCounter(&buf, "generation_degraded_total", "Total model replies that could not be parsed", generationDegradedTotal.Load())
	writeCounter(&buf, "email_sent_total", "Total emails sent", emailSentTotal.Load())
	writeCounter(&buf, "email_failed_total", "Total emails that failed to send", emailFailedTotal.Load())
	writeHistogram(&buf, "model_duration_ms", "Model call duration in milliseconds", modelDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe records value in the first bucket that fits; cumulation happens at render time.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
