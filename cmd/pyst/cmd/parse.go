package cmd

import (
	"fmt"

	"github.com/jm-research/pyst/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a pyst file or expression and print the resulting syntax tree",
	Args:  cobra.MaximumNArgs(1),
	RunE:  parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&evalExpr, "eval", "c", "", "parse the given string instead of reading a file")
}

func parseScript(_ *cobra.Command, args []string) error {
	text, err := sourceFor(args)
	if err != nil {
		return err
	}
	prog, err := parser.ParseProgram(text)
	if err != nil {
		return err
	}
	for _, stmt := range prog.Statements {
		fmt.Printf("%#v\n", stmt)
	}
	return nil
}
