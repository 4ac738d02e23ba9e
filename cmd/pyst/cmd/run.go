package cmd

import (
	"fmt"
	"os"

	"github.com/jm-research/pyst/internal/object"
	"github.com/jm-research/pyst/pkg/pyst"
	"github.com/spf13/cobra"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a pyst script file or inline expression",
	Long: `Execute a pyst program from a file or an inline expression: the
source is compiled in Exec mode and run with a fresh scope whose parent
is the builtins scope. An unhandled exception aborts with a non-zero
exit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "c", "", "run the given string as a program")
}

func runScript(_ *cobra.Command, args []string) error {
	var text string
	switch {
	case evalExpr != "":
		text = evalExpr
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		text = string(content) + "\n"
	default:
		return fmt.Errorf("either provide a file path or use -c for inline code")
	}

	Logger.Debug("running script", "source_bytes", len(text))

	in := pyst.New(os.Stdout)
	_, raised, err := in.Run(text)
	if err != nil {
		Logger.Debug("compile/runtime abort", "error", err)
		exitWithError("%s", err)
	}
	if raised != nil {
		Logger.Debug("unhandled exception", "exception", describeException(raised))
		fmt.Fprintln(os.Stderr, describeException(raised))
		os.Exit(1)
	}
	return nil
}

func describeException(v *object.Value) string {
	if v.Kind == object.KindNameError {
		return v.Str
	}
	return object.String(v)
}
