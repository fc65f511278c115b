package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"shapekit/internal/ast"
	"shapekit/internal/capability"
	"shapekit/internal/checkrun"
	"shapekit/internal/interp"
	"shapekit/internal/result"
	"shapekit/internal/trace"
)

func TestParseKey(t *testing.T) {
	cases := []struct {
		input string
		want  ast.Key
	}{
		{"name", ast.StringKey("name")},
		{"[0]", ast.IndexKey(0)},
		{"[12]", ast.IndexKey(12)},
		{"[]", ast.StringKey("[]")},
		{"0", ast.StringKey("0")},
		{"cafe\u0301", ast.StringKey("caf\u00e9")},
	}
	for _, tc := range cases {
		got, err := parseKey(tc.input)
		if err != nil {
			t.Fatalf("parseKey(%q) error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("parseKey(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestParseKeyRejectsBadIndex(t *testing.T) {
	for _, input := range []string{"[x]", "[-1]"} {
		if _, err := parseKey(input); err == nil {
			t.Fatalf("parseKey(%q) expected error", input)
		}
	}
}

func TestCheckPositions(t *testing.T) {
	pair := ast.NewTuple([]ast.Component{
		ast.NewComponent(ast.StringKeyword, false),
		ast.NewComponent(ast.NumberKeyword, true),
	}, nil, false)
	record := ast.NewStruct([]ast.Field{ast.NewField(ast.StringKey("a"), ast.StringKeyword, false, false)}, nil)
	cases := []struct {
		target ast.AST
		keys   []ast.Key
		ok     bool
	}{
		{pair, []ast.Key{ast.IndexKey(0), ast.IndexKey(1)}, true},
		{pair, []ast.Key{ast.StringKey("length")}, true},
		{pair, []ast.Key{ast.IndexKey(2)}, false},
		{record, []ast.Key{ast.StringKey("a")}, true},
		{record, []ast.Key{ast.IndexKey(0)}, false},
	}
	for i, tc := range cases {
		err := checkPositions(tc.target, tc.keys)
		if (err == nil) != tc.ok {
			t.Fatalf("case %d: checkPositions error = %v, want ok=%v", i, err, tc.ok)
		}
	}
}

func TestReadUIMode(t *testing.T) {
	cases := map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, " on ": uiModeOn, "off": uiModeOff}
	for input, want := range cases {
		got, err := readUIMode(input)
		if err != nil || got != want {
			t.Fatalf("readUIMode(%q) = %v, %v; want %v", input, got, err, want)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatal("expected error for invalid mode")
	}
}

func TestProgressView(t *testing.T) {
	cases := []struct {
		mode   uiMode
		format string
		quiet  bool
		want   bool
	}{
		{uiModeOn, "pretty", false, true},
		{uiModeOn, "json", false, false},
		{uiModeOn, "pretty", true, false},
		{uiModeOff, "pretty", false, false},
	}
	for _, tc := range cases {
		if got := tc.mode.progressView(os.Stdout, tc.format, tc.quiet); got != tc.want {
			t.Fatalf("%v.progressView(%s, quiet=%v) = %v, want %v", tc.mode, tc.format, tc.quiet, got, tc.want)
		}
	}
}

func TestFieldTable(t *testing.T) {
	fields := []ast.Field{
		ast.NewField(ast.StringKey("id"), ast.NumberKeyword, false, true),
		ast.NewField(ast.StringKey("display name"), ast.StringKeyword, true, false),
	}
	table := fieldTable(fields, false)
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}
	if got := table.Rows[0]; got[0] != "id" || got[1] != "number" || got[2] != "readonly" {
		t.Fatalf("row 0 = %v", got)
	}
	if got := table.Rows[1]; got[0] != `"display name"` || got[2] != "optional" {
		t.Fatalf("row 1 = %v", got)
	}
}

func sampleResults() []checkrun.FileResult {
	return []checkrun.FileResult{
		{Path: "good.json", Result: result.Succeed[interp.Issue, any](map[string]any{})},
		{Path: "extra.json", Result: result.Warn[interp.Issue, any](map[string]any{}, interp.Issue{
			Path: []ast.Key{ast.StringKey("x")}, Code: interp.CodeUnexpectedKey, Message: "unexpected key",
		})},
		{Path: "bad.json", Result: result.Fail[interp.Issue, any](interp.Issue{
			Code: interp.CodeTypeMismatch, Message: "expected string, got number",
		})},
		{Path: "missing.json", Err: errors.New("no such file")},
	}
}

func TestRenderCheckPretty(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var buf bytes.Buffer
	renderCheckPretty(&buf, sampleResults(), false)
	out := buf.String()
	for _, want := range []string{
		"ok    good.json",
		"warn  extra.json",
		"/x unexpected key: unexpected key",
		"fail  bad.json",
		"/ type mismatch: expected string, got number",
		"error missing.json: no such file",
		"1 ok, 1 with warnings, 2 failed",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCheckPrettyQuiet(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var buf bytes.Buffer
	renderCheckPretty(&buf, sampleResults()[:1], true)
	if buf.Len() != 0 {
		t.Fatalf("quiet output for success should be empty, got %q", buf.String())
	}
}

func TestRenderCheckJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := renderCheckJSON(&buf, "User", sampleResults()); err != nil {
		t.Fatalf("renderCheckJSON: %v", err)
	}
	var payload checkPayload
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if payload.Type != "User" || len(payload.Files) != 4 {
		t.Fatalf("payload = %+v", payload)
	}
	want := []string{"success", "warning", "failure", "error"}
	for i, f := range payload.Files {
		if f.Outcome != want[i] {
			t.Fatalf("file %d outcome = %q, want %q", i, f.Outcome, want[i])
		}
	}
	if got := payload.Files[1].Issues; len(got) != 1 || got[0].Path != "/x" {
		t.Fatalf("warning issues = %+v", got)
	}
}

func TestRenderVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	info := versionInfo{Version: "1.2.3"}
	if err := renderVersionJSON(&buf, info, versionOptions{format: "json", showHash: true}); err != nil {
		t.Fatalf("renderVersionJSON: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if payload.Tool != "shapekit" || payload.Version != "1.2.3" || payload.GitCommit != "unknown" || payload.BuildDate != "" {
		t.Fatalf("payload = %+v", payload)
	}
	if payload.Capabilities != nil {
		t.Fatalf("capabilities should be omitted, got %v", payload.Capabilities)
	}
}

func TestReadVersionOptions(t *testing.T) {
	cmd := &cobra.Command{Use: "version"}
	addVersionFlags(cmd)
	if err := cmd.ParseFlags([]string{"--full", "--format", " JSON "}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	opts, err := readVersionOptions(cmd)
	if err != nil {
		t.Fatalf("readVersionOptions: %v", err)
	}
	if opts.format != "json" || !opts.showHash || !opts.showDate || !opts.capabilities {
		t.Fatalf("opts = %+v", opts)
	}

	bad := &cobra.Command{Use: "version"}
	addVersionFlags(bad)
	if err := bad.ParseFlags([]string{"--format", "yaml"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if _, err := readVersionOptions(bad); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestCollectVersionInfoListsCapabilities(t *testing.T) {
	info := collectVersionInfo()
	found := false
	for _, name := range info.Capabilities {
		if name == capability.Decoder.Name() {
			found = true
		}
	}
	if !found || info.GoVersion == "" {
		t.Fatalf("info = %+v", info)
	}
}

func TestDeriveSpan(t *testing.T) {
	ring := trace.NewRingTracer(16, trace.LevelPhase)
	parent := trace.Begin(ring, trace.ScopeCommand, "keyof", 0)
	cmd := &cobra.Command{Use: "keyof"}
	cmd.SetContext(trace.WithSpan(trace.WithTracer(context.Background(), ring), parent))

	deriveSpan(cmd, "keyof", ast.Declare(ast.NewSymbol("User"), capability.Empty)).End("")

	events := ring.Snapshot()
	if len(events) != 3 {
		t.Fatalf("events = %d", len(events))
	}
	for _, ev := range events[1:] {
		if ev.Scope != trace.ScopeDerive || ev.Name != "keyof:User" || ev.ParentID != parent.ID() {
			t.Fatalf("event = %+v", ev)
		}
	}
}
