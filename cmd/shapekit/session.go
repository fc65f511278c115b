package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"shapekit/internal/config"
	"shapekit/internal/observ"
	"shapekit/internal/prof"
	"shapekit/internal/trace"
)

// session holds state shared by one CLI invocation.
type session struct {
	cfg     config.Config
	tracer  trace.Tracer
	span    *trace.Span
	timer   *observ.Timer
	prof    *prof.Session
	colored bool
	quiet   bool
	timings bool
}

var current = &session{tracer: trace.Nop, timer: observ.NewTimer()}

// setupSession loads configuration, applies flag overrides, configures color
// and attaches a tracer to the command context.
func setupSession(cmd *cobra.Command, args []string) error {
	flags := cmd.Root().PersistentFlags()
	cfgPath, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}

	phase := current.timer.Begin("config")
	cfg, err := config.Load(cfgPath, ".")
	current.timer.End(phase, cfg.Path)
	if err != nil {
		return err
	}
	if err := applyFlagOverrides(cmd, &cfg); err != nil {
		return err
	}
	current.cfg = cfg

	if current.quiet, err = flags.GetBool("quiet"); err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if current.timings, err = flags.GetBool("timings"); err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	var popts prof.Options
	if popts.CPUPath, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if popts.MemPath, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if current.prof, err = prof.Start(popts); err != nil {
		return err
	}

	current.colored = resolveColor(cfg.Output.Color)
	color.NoColor = !current.colored

	tcfg, err := cfg.TracerConfig()
	if err != nil {
		return fmt.Errorf("invalid trace config: %w", err)
	}
	tracer, err := trace.New(tcfg)
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	current.tracer = tracer
	current.span = trace.Begin(tracer, trace.ScopeCommand, cmd.Name(), 0)

	ctx := trace.WithTracer(cmd.Context(), tracer)
	ctx = trace.WithSpan(ctx, current.span)
	cmd.SetContext(ctx)
	return nil
}

func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Root().PersistentFlags()
	overrides := []struct {
		flag   string
		target *string
	}{
		{"color", &cfg.Output.Color},
		{"trace", &cfg.Trace.Path},
		{"trace-level", &cfg.Trace.Level},
		{"trace-mode", &cfg.Trace.Mode},
	}
	for _, o := range overrides {
		v, err := flags.GetString(o.flag)
		if err != nil {
			return fmt.Errorf("failed to get %s flag: %w", o.flag, err)
		}
		if v != "" {
			*o.target = v
		}
	}
	// --trace without a level means "trace phases"
	if flags.Changed("trace") && !flags.Changed("trace-level") && cfg.Trace.Level == "off" {
		cfg.Trace.Level = "phase"
	}
	return cfg.Validate()
}

func resolveColor(mode string) bool {
	switch strings.ToLower(mode) {
	case "on":
		return true
	case "off":
		return false
	}
	return isTerminal(os.Stdout)
}

// closeSession stops profiling, ends the command span and flushes the tracer.
func closeSession(cmd *cobra.Command, cmdErr error) {
	if err := current.prof.Stop(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
	}
	if cmdErr != nil {
		current.span.Fail().End(cmdErr.Error())
	} else {
		current.span.End("")
	}
	if err := current.tracer.Flush(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
	}
	// ring-only mode keeps events in memory until the command is done
	if ring, ok := current.tracer.(*trace.RingTracer); ok {
		if err := ring.Dump(cmd.ErrOrStderr(), trace.FormatText); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", err)
		}
	}
	if err := current.tracer.Close(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
	}
	if current.timings && !current.quiet {
		fmt.Fprint(cmd.ErrOrStderr(), current.timer.Summary())
	}
}
