package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"": LevelOff, "OFF": LevelOff, "error": LevelError, " phase ": LevelPhase, "detail": LevelDetail, "debug": LevelDebug}
	for input, want := range cases {
		got, err := ParseLevel(input)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", input, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestLevelScopes(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeCommand, false},
		{LevelError, ScopeCommand, false},
		{LevelPhase, ScopeLoad, true},
		{LevelPhase, ScopeDerive, true},
		{LevelPhase, ScopeCheck, false},
		{LevelDetail, ScopeCheck, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Fatalf("%v.ShouldEmit(%v) = %v, want %v", tc.level, tc.scope, got, tc.want)
		}
	}
	failed := &Event{Scope: ScopeNode, Failed: true}
	if !LevelError.ShouldEmitEvent(failed) || LevelOff.ShouldEmitEvent(failed) {
		t.Fatalf("failed events should pass LevelError but not LevelOff")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)
	span := Begin(tr, ScopeCommand, "check", 0)
	child := Begin(tr, ScopeCheck, "check:a.json", span.ID())
	child.WithExtra("size", "12").Fail().End("failure")
	Point(tr, ScopeNode, "User", "struct", span.ID()) // filtered at detail
	span.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "→ command:check") {
		t.Fatalf("begin line = %q", lines[0])
	}
	if !strings.Contains(lines[2], "← check:check:a.json FAILED (failure) {size=12}") {
		t.Fatalf("end line = %q", lines[2])
	}
}

func TestStreamTracerErrorLevelKeepsFailures(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelError, FormatNDJSON)
	Begin(tr, ScopeCheck, "ok.json", 0).End("success")
	Begin(tr, ScopeCheck, "bad.json", 0).Fail().End("failure")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("lines = %v", lines)
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &ev); err != nil {
		t.Fatalf("invalid ndjson: %v", err)
	}
	if ev["name"] != "bad.json" || ev["kind"] != "end" || ev["failed"] != true {
		t.Fatalf("event = %v", ev)
	}
}

func TestRingTracerWraps(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ring, ScopeNode, name, "", 0)
	}
	snap := ring.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot = %d events", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Fatalf("snapshot[%d] = %q, want %q", i, snap[i].Name, want)
		}
	}
	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatText); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("dump = %q", buf.String())
	}
}

func TestNewModes(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop {
		t.Fatalf("level off should give Nop, got %v, %v", tr, err)
	}
	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	multi, ok := tr.(*MultiTracer)
	if !ok {
		t.Fatalf("both mode should give a MultiTracer, got %T", tr)
	}
	Begin(tr, ScopeLoad, "schema.toml", 0).End("")
	ring, ok := multi.Ring()
	if !ok || len(ring.Snapshot()) != 2 {
		t.Fatalf("ring did not receive events")
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Fatalf("stream output = %q", buf.String())
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestContext(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context should yield Nop")
	}
	ring := NewRingTracer(4, LevelDebug)
	ctx := WithTracer(context.Background(), ring)
	if FromContext(ctx) != Tracer(ring) {
		t.Fatalf("tracer not stored")
	}
	span := Begin(ring, ScopeCommand, "cmd", 0)
	ctx = WithSpan(ctx, span)
	if ParentFromContext(ctx) != span.ID() || span.ID() == 0 {
		t.Fatalf("parent = %d, want %d", ParentFromContext(ctx), span.ID())
	}
}

func TestNopSpan(t *testing.T) {
	span := Begin(Nop, ScopeCommand, "x", 0)
	if span.ID() != 0 || span.End("") != 0 {
		t.Fatalf("nop span should be inert")
	}
	var nilSpan *Span
	if nilSpan.Fail().ID() != 0 {
		t.Fatalf("nil span should be inert")
	}
}
