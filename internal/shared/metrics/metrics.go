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
	formStartedTotal      atomic.Uint64
	formSubmittedTotal    atomic.Uint64
	formSubmitFailedTotal atomic.Uint64
	draftsCleanedTotal    atomic.Uint64

	submitDuration = newHistogram([]float64{1, 5, 10, 25, 50, 100, 250, 500, 1000})
)

// IncFormStarted increments the drafts-started counter.
func IncFormStarted() {
	formStartedTotal.Add(1)
}

// IncFormSubmitted increments the submissions counter.
func IncFormSubmitted() {
	formSubmittedTotal.Add(1)
}

// IncFormSubmitFailed increments the failed-submission counter.
func IncFormSubmitFailed() {
	formSubmitFailedTotal.Add(1)
}

// AddDraftsCleaned records how many expired drafts a cleanup pass removed.
func AddDraftsCleaned(n int) {
	if n > 0 {
		draftsCleanedTotal.Add(uint64(n))
	}
}

// ObserveSubmitDurationMs records a submit duration in milliseconds.
func ObserveSubmitDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	submitDuration.Observe(value)
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
	writeCounter(&buf, "form_started_total", "Total form drafts started", formStartedTotal.Load())
	writeCounter(&buf, "form_submitted_total", "Total forms submitted", formSubmittedTotal.Load())
	writeCounter(&buf, "form_submit_failed_total", "Total form submissions rejected", formSubmitFailedTotal.Load())
	writeCounter(&buf, "form_drafts_cleaned_total", "Total expired drafts removed", draftsCleanedTotal.Load())
	writeHistogram(&buf, "form_submit_duration_ms", "Form submit duration in milliseconds", submitDuration.Snapshot())
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

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
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
