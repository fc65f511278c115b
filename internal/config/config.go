package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"shapekit/internal/trace"
)

// FileName is the configuration file looked up from the working directory.
const FileName = "shapekit.toml"

// Config is the decoded shapekit.toml.
type Config struct {
	Output OutputConfig `toml:"output"`
	Trace  TraceConfig  `toml:"trace"`
	Check  CheckConfig  `toml:"check"`

	// Path is the file the config was read from ("" for defaults).
	Path string `toml:"-"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Color  string `toml:"color"`
	Format string `toml:"format"`
}

// TraceConfig mirrors the --trace flags.
type TraceConfig struct {
	Level    string `toml:"level"`
	Mode     string `toml:"mode"`
	Path     string `toml:"path"`
	RingSize int    `toml:"ring_size"`
}

// CheckConfig tunes the check command.
type CheckConfig struct {
	Jobs      int `toml:"jobs"`
	CacheSize int `toml:"cache_size"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Output: OutputConfig{Color: "auto", Format: "pretty"},
		Trace:  TraceConfig{Level: "off", Mode: "stream", Path: "-"},
		Check:  CheckConfig{Jobs: 4},
	}
}

// ErrInvalid wraps validation failures of a config file.
var ErrInvalid = errors.New("invalid config")

// Find walks from startDir up to the filesystem root looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads path, or discovers the file from startDir when path is empty.
// A missing file yields Default().
func Load(path, startDir string) (Config, error) {
	if path == "" {
		found, ok, err := Find(startDir)
		if err != nil {
			return Config{}, err
		}
		if !ok {
			return Default(), nil
		}
		path = found
	}
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Output.Color) {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("%w: output.color %q (expected auto|on|off)", ErrInvalid, c.Output.Color)
	}
	switch strings.ToLower(c.Output.Format) {
	case "pretty", "json":
	default:
		return fmt.Errorf("%w: output.format %q (expected pretty|json)", ErrInvalid, c.Output.Format)
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("%w: trace.level: %w", ErrInvalid, err)
	}
	if _, err := trace.ParseMode(c.Trace.Mode); err != nil {
		return fmt.Errorf("%w: trace.mode: %w", ErrInvalid, err)
	}
	if c.Check.Jobs < 0 {
		return fmt.Errorf("%w: check.jobs must not be negative", ErrInvalid)
	}
	return nil
}

// TracerConfig converts the [trace] table into a tracer configuration.
func (c *Config) TracerConfig() (trace.Config, error) {
	level, err := trace.ParseLevel(c.Trace.Level)
	if err != nil {
		return trace.Config{}, err
	}
	mode, err := trace.ParseMode(c.Trace.Mode)
	if err != nil {
		return trace.Config{}, err
	}
	return trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: c.Trace.Path,
		RingSize:   c.Trace.RingSize,
	}, nil
}
