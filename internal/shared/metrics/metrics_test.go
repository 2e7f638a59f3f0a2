package metrics

import (
	"strings"
	"testing"
)

func TestRenderIncludesCounters(t *testing.T) {
	IncFormStarted()
	IncFormSubmitted()
	IncFormSubmitFailed()
	AddDraftsCleaned(3)
	ObserveSubmitDurationMs(12.5)

	out := Render()
	for _, name := range []string{
		"form_started_total",
		"form_submitted_total",
		"form_submit_failed_total",
		"form_drafts_cleaned_total",
		"form_submit_duration_ms_bucket",
		"form_submit_duration_ms_sum",
		"form_submit_duration_ms_count",
	} {
		if !strings.Contains(out, name) {
			t.Errorf("expected %s in output", name)
		}
	}
	if !strings.Contains(out, `le="+Inf"`) {
		t.Errorf("expected +Inf bucket in output")
	}
}

func TestHistogramBucketCounts(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	snap := h.Snapshot()
	if snap.count != 3 {
		t.Fatalf("count=%d", snap.count)
	}
	if snap.counts[0] != 1 || snap.counts[1] != 1 {
		t.Fatalf("bucket counts=%v", snap.counts)
	}
	if snap.sum != 555 {
		t.Fatalf("sum=%v", snap.sum)
	}
}
