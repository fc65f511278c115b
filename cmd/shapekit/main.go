package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"shapekit/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "shapekit",
	Short: "Inspect and check structural type descriptions",
	Long: `shapekit loads schema documents (TOML) into structural type trees, derives
key sets, field tables, pick/omit/partial shapes, and checks JSON values against them`,
	SilenceUsage:      true,
	PersistentPreRunE: setupSession,
}

// main registers subcommands and persistent flags, then runs the root command.
// Session resources are released even when the command fails; any error
// exits with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(keyofCmd)
	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(omitCmd)
	rootCmd.AddCommand(partialCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("config", "", "path to shapekit.toml (default: search upwards from cwd)")
	rootCmd.PersistentFlags().String("color", "", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")

	err := rootCmd.Execute()
	closeSession(rootCmd, err)
	if err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
