package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"shapekit/internal/trace"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Path != "" || cfg.Output.Color != "auto" || cfg.Check.Jobs != 4 {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadFindsParentFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), `
[output]
color = "off"
format = "json"

[trace]
level = "detail"
mode = "ring"

[check]
jobs = 2
cache_size = 64
`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	cfg, err := Load("", nested)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Path != filepath.Join(root, FileName) {
		t.Fatalf("path = %q", cfg.Path)
	}
	if cfg.Output.Color != "off" || cfg.Output.Format != "json" || cfg.Check.Jobs != 2 || cfg.Check.CacheSize != 64 {
		t.Fatalf("cfg = %+v", cfg)
	}
	// unset keys keep their defaults
	if cfg.Trace.Path != "-" {
		t.Fatalf("trace.path = %q, want default", cfg.Trace.Path)
	}
	tc, err := cfg.TracerConfig()
	if err != nil {
		t.Fatalf("TracerConfig: %v", err)
	}
	if tc.Level != trace.LevelDetail || tc.Mode != trace.ModeRing {
		t.Fatalf("tracer config = %+v", tc)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"color":  "[output]\ncolor = \"sometimes\"\n",
		"format": "[output]\nformat = \"xml\"\n",
		"level":  "[trace]\nlevel = \"loud\"\n",
		"mode":   "[trace]\nmode = \"tape\"\n",
		"jobs":   "[check]\njobs = -1\n",
	}
	for name, data := range cases {
		path := filepath.Join(t.TempDir(), FileName)
		writeFile(t, path, data)
		_, err := Load(path, "")
		if !errors.Is(err, ErrInvalid) {
			t.Fatalf("%s: err = %v, want ErrInvalid", name, err)
		}
	}
}

func TestLoadReportsSyntaxErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "[output\n")
	if _, err := Load(path, ""); err == nil || errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want a parse error", err)
	}
}
