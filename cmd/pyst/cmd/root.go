package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jm-research/pyst/internal/pystconf"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Logger is the shared diagnostic-trace logger every subcommand logs
// through. PersistentPreRunE raises its level to debug when either the
// --verbose flag or PYST_LOG_LEVEL asks for it.
var Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

var rootCmd = &cobra.Command{
	Use:   "pyst",
	Short: "pyst interpreter",
	Long: `pyst is a small interpreter for a dynamically typed,
indentation-sensitive scripting language: a lexer, a recursive-descent
parser, a stack-machine code generator, and a virtual machine.`,
	Version:           Version,
	PersistentPreRunE: resolveLogLevel,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

// resolveLogLevel combines the --verbose flag with PYST_LOG_LEVEL (either
// one asking for debug output selects debug level; otherwise warn) and
// rebuilds Logger at the resolved level.
func resolveLogLevel(c *cobra.Command, _ []string) error {
	verbose, _ := c.Flags().GetBool("verbose")
	level := slog.LevelWarn
	if pystconf.Load().Verbose() {
		level = slog.LevelDebug
	}
	if verbose {
		level = slog.LevelDebug
	}
	Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
