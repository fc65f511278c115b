package observ

import (
	"errors"
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	timer := NewTimer()
	idx := timer.Begin("load")
	timer.End(idx, "schema.toml")
	err := timer.Measure("check", func() error { return errors.New("boom") })
	if err == nil || err.Error() != "boom" {
		t.Fatalf("Measure should return fn's error, got %v", err)
	}
	timer.End(42, "ignored")

	report := timer.Report()
	if len(report.Phases) != 2 || timer.Len() != 2 {
		t.Fatalf("phases = %+v", report.Phases)
	}
	if report.Phases[0].Note != "schema.toml" || report.Phases[1].Note != "failed" {
		t.Fatalf("notes = %+v", report.Phases)
	}
	summary := timer.Summary()
	for _, want := range []string{"timings:", "load", "// schema.toml", "total"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestEmptyTimer(t *testing.T) {
	report := NewTimer().Report()
	if report.TotalMS != 0 || len(report.Phases) != 0 {
		t.Fatalf("report = %+v", report)
	}
}
