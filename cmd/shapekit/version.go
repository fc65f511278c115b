package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"shapekit/internal/capability"
	"shapekit/internal/version"
)

const versionTagline = "every shape has its keys"

type versionInfo struct {
	Version      string
	GitCommit    string
	BuildDate    string
	GoVersion    string
	Capabilities []string
}

type versionOptions struct {
	format       string
	showHash     bool
	showDate     bool
	capabilities bool
}

type versionPayload struct {
	Tool         string   `json:"tool"`
	Version      string   `json:"version"`
	Tagline      string   `json:"tagline"`
	Go           string   `json:"go,omitempty"`
	GitCommit    string   `json:"git_commit,omitempty"`
	BuildDate    string   `json:"build_date,omitempty"`
	Capabilities []string `json:"capabilities,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the shapekit release and the capabilities interpreters understand",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := readVersionOptions(cmd)
		if err != nil {
			return err
		}
		info := collectVersionInfo()
		if opts.format == "json" {
			return renderVersionJSON(cmd.OutOrStdout(), info, opts)
		}
		renderVersionPretty(cmd.OutOrStdout(), info, opts)
		return nil
	},
}

func init() {
	addVersionFlags(versionCmd)
}

func addVersionFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("format", "pretty", "output format (pretty|json)")
	flags.Bool("hash", false, "print the commit shapekit was built from")
	flags.Bool("date", false, "print when shapekit was built")
	flags.Bool("capabilities", false, "list registered capability ids")
	flags.Bool("full", false, "same as --hash --date --capabilities")
}

func readVersionOptions(cmd *cobra.Command) (versionOptions, error) {
	flags := cmd.Flags()
	format, err := flags.GetString("format")
	if err != nil {
		return versionOptions{}, fmt.Errorf("failed to get format flag: %w", err)
	}
	opts := versionOptions{format: strings.ToLower(strings.TrimSpace(format))}
	if opts.format != "pretty" && opts.format != "json" {
		return opts, fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
	full, err := flags.GetBool("full")
	if err != nil {
		return opts, fmt.Errorf("failed to get full flag: %w", err)
	}
	for name, dst := range map[string]*bool{"hash": &opts.showHash, "date": &opts.showDate, "capabilities": &opts.capabilities} {
		v, err := flags.GetBool(name)
		if err != nil {
			return opts, fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		*dst = v || full
	}
	return opts, nil
}

func collectVersionInfo() versionInfo {
	info := versionInfo{
		Version:   strings.TrimSpace(version.Version),
		GitCommit: strings.TrimSpace(version.GitCommit),
		BuildDate: strings.TrimSpace(version.BuildDate),
		GoVersion: runtime.Version(),
	}
	if info.Version == "" {
		info.Version = "dev"
	}
	for _, id := range capability.All() {
		info.Capabilities = append(info.Capabilities, id.Name())
	}
	return info
}

func renderVersionPretty(out io.Writer, info versionInfo, opts versionOptions) {
	fmt.Fprintf(out, "shapekit %s (%s): %s\n", version.Colored(info.Version), info.GoVersion, versionTagline)
	if opts.showHash {
		fmt.Fprintf(out, "  commit        %s\n", orUnknown(info.GitCommit))
	}
	if opts.showDate {
		fmt.Fprintf(out, "  built         %s\n", orUnknown(info.BuildDate))
	}
	if opts.capabilities {
		fmt.Fprintf(out, "  capabilities  %s\n", strings.Join(info.Capabilities, ", "))
	}
}

func renderVersionJSON(out io.Writer, info versionInfo, opts versionOptions) error {
	payload := versionPayload{
		Tool:    "shapekit",
		Version: info.Version,
		Tagline: versionTagline,
		Go:      info.GoVersion,
	}
	if opts.showHash {
		payload.GitCommit = orUnknown(info.GitCommit)
	}
	if opts.showDate {
		payload.BuildDate = orUnknown(info.BuildDate)
	}
	if opts.capabilities {
		payload.Capabilities = info.Capabilities
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
