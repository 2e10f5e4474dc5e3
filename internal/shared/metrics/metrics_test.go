package metrics

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHistogramBucketsAreCumulativeOnce(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	snap := h.Snapshot()
	if snap.counts[0] != 1 || snap.counts[1] != 1 || snap.count != 3 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestWriteHistogramAccumulatesBuckets(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	for _, v := range []float64{5, 50, 60, 500} {
		h.Observe(v)
	}

	var buf bytes.Buffer
	writeHistogram(&buf, "x_ms", "x", h.Snapshot())
	out := buf.String()
	for _, line := range []string{
		`x_ms_bucket{le="10"} 1`,
		`x_ms_bucket{le="100"} 3`,
		`x_ms_bucket{le="+Inf"} 4`,
		"x_ms_sum 615",
		"x_ms_count 4",
	} {
		if !strings.Contains(out, line+"\n") {
			t.Fatalf("missing %q in:\n%s", line, out)
		}
	}
}

func TestRenderIncludesUploadCounters(t *testing.T) {
	before := uploadsFallback.value.Load()
	IncUploadStored("fallback")
	IncUploadStored("unknown")
	if uploadsFallback.value.Load() != before+1 {
		t.Fatalf("fallback counter not incremented")
	}

	out := Render()
	for _, name := range []string{
		"# TYPE uploads_primary_total counter",
		"# TYPE orphan_objects_total counter",
		`upload_duration_ms_bucket{le="+Inf"}`,
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("render missing %q", name)
		}
	}
}

func TestHandlerServesTextFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/metrics", Handler())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain") {
		t.Fatalf("content type = %q", rec.Header().Get("Content-Type"))
	}
}
