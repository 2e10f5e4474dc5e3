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

// counter is a monotonically increasing value rendered as a Prometheus counter.
type counter struct {
	name  string
	help  string
	value atomic.Uint64
}

func (c *counter) inc() { c.value.Add(1) }

var (
	uploadsPrimary     = &counter{name: "uploads_primary_total", help: "Uploads stored on the primary backend"}
	uploadsFallback    = &counter{name: "uploads_fallback_total", help: "Uploads stored on the fallback backend"}
	uploadsFailed      = &counter{name: "uploads_failed_total", help: "Uploads that returned an error"}
	primaryWriteFailed = &counter{name: "primary_write_failed_total", help: "Primary backend writes that failed over"}
	orphanObjects      = &counter{name: "orphan_objects_total", help: "Stored objects without a document row"}
	previewSignFailed  = &counter{name: "preview_sign_failed_total", help: "Preview URLs served unsigned after a signing failure"}

	// Render order.
	counters = []*counter{uploadsPrimary, uploadsFallback, uploadsFailed, primaryWriteFailed, orphanObjects, previewSignFailed}

	uploadDuration = newHistogram([]float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000})
)

// IncUploadStored counts an upload accepted by the named backend ("primary" or "fallback").
func IncUploadStored(backend string) {
	switch backend {
	case "primary":
		uploadsPrimary.inc()
	case "fallback":
		uploadsFallback.inc()
	}
}

func IncUploadFailed()       { uploadsFailed.inc() }
func IncPrimaryWriteFailed() { primaryWriteFailed.inc() }
func IncOrphanObject()       { orphanObjects.inc() }
func IncPreviewSignFailed()  { previewSignFailed.inc() }

// ObserveUploadDurationMs records an upload duration in milliseconds; negative values clamp to 0.
func ObserveUploadDurationMs(ms float64) {
	uploadDuration.Observe(max(ms, 0))
}

// Handler serves Render as text/plain for Prometheus scrapers.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/plain; version=0.0.4", []byte(Render()))
	}
}

// Render writes every counter followed by the upload duration histogram.
func Render() string {
	var buf bytes.Buffer
	for _, c := range counters {
		writeCounter(&buf, c.name, c.help, c.value.Load())
	}
	writeHistogram(&buf, "upload_duration_ms", "Upload duration in milliseconds", uploadDuration.Snapshot())
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

// Observe adds value to the first bucket whose bound holds it; buckets are
// accumulated when rendered.
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
