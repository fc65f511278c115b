package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"shapekit/internal/checkrun"
	"shapekit/internal/interp"
)

// errCheckFailed signals that at least one file failed without printing a
// second message; the report already lists the problems.
var errCheckFailed = errors.New("check failed")

var checkCmd = &cobra.Command{
	Use:   "check <schema.toml> <value.json>...",
	Short: "Decode JSON values against a type",
	Long: `check decodes every JSON file against the selected definition. Files run
concurrently; unknown keys are reported as warnings, type errors as failures.
The command exits with status 1 when any file fails`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCheck,
}

func init() {
	addTypeFlag(checkCmd)
	checkCmd.Flags().Int("jobs", 0, "max parallel files (0 = config or GOMAXPROCS)")
	checkCmd.Flags().String("format", "", "report format (pretty|json)")
	checkCmd.Flags().String("ui", "off", "progress UI (auto|on|off)")
	checkCmd.Flags().Bool("strict", false, "treat warnings as failures")
}

type checkOptions struct {
	jobs   int
	format string
	ui     uiMode
	strict bool
}

func readCheckOptions(cmd *cobra.Command) (checkOptions, error) {
	opts := checkOptions{jobs: current.cfg.Check.Jobs, format: current.cfg.Output.Format}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return opts, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs > 0 {
		opts.jobs = jobs
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "" {
		opts.format = format
	}
	opts.format = strings.ToLower(opts.format)
	switch opts.format {
	case "pretty", "json":
	default:
		return opts, fmt.Errorf("unsupported format %q (must be pretty or json)", opts.format)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return opts, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if opts.ui, err = readUIMode(uiValue); err != nil {
		return opts, err
	}
	if opts.strict, err = cmd.Flags().GetBool("strict"); err != nil {
		return opts, fmt.Errorf("failed to get strict flag: %w", err)
	}
	return opts, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts, err := readCheckOptions(cmd)
	if err != nil {
		return err
	}
	decl, err := loadTarget(cmd, args[0])
	if err != nil {
		return err
	}

	guards, err := interp.NewGuards(current.cfg.Check.CacheSize)
	if err != nil {
		return err
	}
	decoders, err := interp.NewDecoders(current.cfg.Check.CacheSize, guards)
	if err != nil {
		return err
	}
	req := &checkrun.Request{
		Files:   args[1:],
		Decoder: decoders.Compile(decl),
		Jobs:    opts.jobs,
	}

	var results []checkrun.FileResult
	phase := current.timer.Begin("check")
	if opts.ui.progressView(os.Stdout, opts.format, current.quiet) {
		results, err = runCheckWithUI(cmd.Context(), "checking "+decl.Name(), req)
	} else {
		results, err = checkrun.Run(cmd.Context(), req)
	}
	current.timer.End(phase, fmt.Sprintf("%d files", len(req.Files)))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.format == "json" {
		if err := renderCheckJSON(out, decl.Name(), results); err != nil {
			return err
		}
	} else {
		renderCheckPretty(out, results, current.quiet)
	}

	for _, r := range results {
		if r.Failed() || (opts.strict && r.Result.IsWarning()) {
			cmd.SilenceErrors = true
			return errCheckFailed
		}
	}
	return nil
}

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	pathColor = color.New(color.FgCyan)
)

func renderCheckPretty(out io.Writer, results []checkrun.FileResult, quiet bool) {
	var ok, warned, failed int
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			fmt.Fprintf(out, "%s %s: %v\n", failColor.Sprint("error"), r.Path, r.Err)
			continue
		case r.Result.IsFailure():
			failed++
			fmt.Fprintf(out, "%s %s\n", failColor.Sprint("fail "), r.Path)
		case r.Result.IsWarning():
			warned++
			fmt.Fprintf(out, "%s %s\n", warnColor.Sprint("warn "), r.Path)
		default:
			ok++
			if !quiet {
				fmt.Fprintf(out, "%s %s (%.1f ms)\n", okColor.Sprint("ok   "), r.Path, toMillis(r.Elapsed))
			}
			continue
		}
		for _, issue := range r.Result.Errors() {
			fmt.Fprintf(out, "      %s %s: %s\n", pathColor.Sprint(issue.PathString()), issue.Code, issue.Message)
		}
	}
	if !quiet {
		fmt.Fprintf(out, "%d ok, %d with warnings, %d failed\n", ok, warned, failed)
	}
}

type checkIssuePayload struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type checkFilePayload struct {
	File      string              `json:"file"`
	Outcome   string              `json:"outcome"`
	Error     string              `json:"error,omitempty"`
	Issues    []checkIssuePayload `json:"issues,omitempty"`
	ElapsedMS float64             `json:"elapsed_ms"`
}

type checkPayload struct {
	Type  string             `json:"type"`
	Files []checkFilePayload `json:"files"`
}

func renderCheckJSON(out io.Writer, typeName string, results []checkrun.FileResult) error {
	payload := checkPayload{Type: typeName, Files: make([]checkFilePayload, 0, len(results))}
	for _, r := range results {
		entry := checkFilePayload{File: r.Path, ElapsedMS: toMillis(r.Elapsed)}
		if r.Err != nil {
			entry.Outcome = "error"
			entry.Error = r.Err.Error()
		} else {
			entry.Outcome = r.Result.Outcome().String()
			for _, issue := range r.Result.Errors() {
				entry.Issues = append(entry.Issues, checkIssuePayload{
					Path:    issue.PathString(),
					Code:    issue.Code.String(),
					Message: issue.Message,
				})
			}
		}
		payload.Files = append(payload.Files, entry)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
