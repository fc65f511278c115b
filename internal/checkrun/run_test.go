package checkrun

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"shapekit/internal/ast"
	"shapekit/internal/interp"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
}

func userDecoder(t *testing.T) interp.Decoder {
	t.Helper()
	d, err := interp.NewDecoders(0, nil)
	if err != nil {
		t.Fatalf("NewDecoders: %v", err)
	}
	return d.Compile(ast.NewStruct([]ast.Field{
		ast.NewField(ast.StringKey("name"), ast.StringKeyword, false, false),
		ast.NewField(ast.StringKey("age"), ast.NumberKeyword, true, false),
	}, nil))
}

func writeValues(t *testing.T, files map[string]string) (string, func(string) string) {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir, func(name string) string { return filepath.Join(dir, name) }
}

func TestRunClassifiesFiles(t *testing.T) {
	_, path := writeValues(t, map[string]string{
		"ok.json":     `{"name": "ann", "age": 41}`,
		"extra.json":  `{"name": "bob", "nick": "b"}`,
		"bad.json":    `{"age": "old"}`,
		"broken.json": `{"name": `,
	})
	files := []string{path("ok.json"), path("extra.json"), path("bad.json"), path("broken.json"), path("absent.json")}
	sink := &recordingSink{}
	results, err := Run(context.Background(), &Request{Files: files, Decoder: userDecoder(t), Jobs: 2, Progress: sink})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != len(files) {
		t.Fatalf("results = %d", len(results))
	}
	for i, r := range results {
		if r.Path != files[i] {
			t.Fatalf("result %d path = %s, want %s", i, r.Path, files[i])
		}
	}
	if !results[0].Result.IsSuccess() || results[0].Failed() {
		t.Fatalf("ok.json = %v", results[0].Result)
	}
	if !results[1].Result.IsWarning() || results[1].Failed() {
		t.Fatalf("extra.json = %v", results[1].Result)
	}
	if !results[2].Failed() || results[2].Err != nil {
		t.Fatalf("bad.json = %+v", results[2])
	}
	if results[3].Err == nil || results[4].Err == nil {
		t.Fatalf("unreadable files should carry an error")
	}

	// ages decode from json.Number
	v, _ := results[0].Result.Value()
	if _, ok := v.(map[string]any)["age"]; !ok {
		t.Fatalf("value = %v", v)
	}

	final := make(map[string]Status)
	queued := 0
	for _, ev := range sink.events {
		if ev.Status == StatusQueued {
			queued++
		}
		final[ev.File] = ev.Status
	}
	if queued != len(files) {
		t.Fatalf("queued events = %d", queued)
	}
	want := map[string]Status{
		files[0]: StatusDone,
		files[1]: StatusWarning,
		files[2]: StatusError,
		files[3]: StatusError,
		files[4]: StatusError,
	}
	for file, status := range want {
		if final[file] != status {
			t.Fatalf("%s final status = %s, want %s", file, final[file], status)
		}
	}
}

func TestRunRequiresDecoder(t *testing.T) {
	if _, err := Run(context.Background(), &Request{Files: []string{"x"}}); !errors.Is(err, ErrNoDecoder) {
		t.Fatalf("err = %v", err)
	}
	if _, err := Run(context.Background(), nil); !errors.Is(err, ErrNoDecoder) {
		t.Fatalf("err = %v", err)
	}
}

func TestRunCancelled(t *testing.T) {
	_, path := writeValues(t, map[string]string{"a.json": `{"name": "a"}`})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, &Request{Files: []string{path("a.json")}, Decoder: userDecoder(t)})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestChannelSink(t *testing.T) {
	ch := make(chan Event, 1)
	ChannelSink{Ch: ch}.OnEvent(Event{File: "a"})
	if ev := <-ch; ev.File != "a" {
		t.Fatalf("event = %+v", ev)
	}
	ChannelSink{}.OnEvent(Event{File: "dropped"})
}
