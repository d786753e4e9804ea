package metrics

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"testing"
)

func TestRenderExposesCountersAndHistogram(t *testing.T) {
	IncResumeGenerated()
	IncResumeDeleted()
	IncImport()
	ObserveRenderDurationMs(42)

	out := Render()
	for _, needle := range []string{
		"# TYPE resume_generated_total counter",
		"resume_generated_total",
		"resume_generation_failed_total",
		"resume_deleted_total",
		"resume_import_total",
		"# TYPE resume_render_duration_ms histogram",
		`resume_render_duration_ms_bucket{le="+Inf"}`,
		"resume_render_duration_ms_sum",
		"resume_render_duration_ms_count",
	} {
		if !strings.Contains(out, needle) {
			t.Fatalf("expected metrics output to contain %q, got:\n%s", needle, out)
		}
	}
}

func TestHistogramBucketsAreCumulativeAndBoundedByCount(t *testing.T) {
	h := newHistogram([]float64{10, 25, 50, 100, 250})
	for _, v := range []float64{42, 42, 7, 999} {
		h.Observe(v)
	}

	var buf bytes.Buffer
	writeHistogram(&buf, "test_duration_ms", "Test durations", h.Snapshot())
	out := buf.String()

	var prev uint64
	for _, le := range []string{"10", "25", "50", "100", "250", "+Inf"} {
		value := bucketValue(t, out, "test_duration_ms", le)
		if value < prev {
			t.Fatalf("bucket le=%q decreased: %d < %d\n%s", le, value, prev, out)
		}
		if value > h.count {
			t.Fatalf("bucket le=%q exceeds count %d: %d\n%s", le, h.count, value, out)
		}
		prev = value
	}
	if got := bucketValue(t, out, "test_duration_ms", "50"); got != 3 {
		t.Fatalf("expected le=50 bucket to count 3 observations, got %d\n%s", got, out)
	}
	if got := bucketValue(t, out, "test_duration_ms", "+Inf"); got != h.count {
		t.Fatalf("expected +Inf bucket to equal count %d, got %d\n%s", h.count, got, out)
	}
}

func bucketValue(t *testing.T, out, name, le string) uint64 {
	t.Helper()
	prefix := fmt.Sprintf("%s_bucket{le=%q} ", name, le)
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		value, err := strconv.ParseUint(strings.TrimPrefix(line, prefix), 10, 64)
		if err != nil {
			t.Fatalf("parse bucket line %q: %v", line, err)
		}
		return value
	}
	t.Fatalf("bucket le=%q not found in:\n%s", le, out)
	return 0
}

func TestObserveClampsNegativeDurations(t *testing.T) {
	before := renderDuration.Snapshot()
	ObserveRenderDurationMs(-5)
	after := renderDuration.Snapshot()

	if after.count != before.count+1 {
		t.Fatalf("expected observation to be recorded")
	}
	if after.sum < before.sum {
		t.Fatalf("expected negative value to be clamped to zero")
	}
}
