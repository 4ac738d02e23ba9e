package cmd

import (
	"fmt"

	"github.com/jm-research/pyst/internal/bytecode"
	"github.com/spf13/cobra"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm [file]",
	Short: "Compile a pyst file or expression and print its disassembled bytecode",
	Args:  cobra.MaximumNArgs(1),
	RunE:  disasmScript,
}

func init() {
	rootCmd.AddCommand(disasmCmd)
	disasmCmd.Flags().StringVarP(&evalExpr, "eval", "c", "", "compile the given string instead of reading a file")
}

func disasmScript(_ *cobra.Command, args []string) error {
	text, err := sourceFor(args)
	if err != nil {
		return err
	}
	code, err := bytecode.CompileProgram(text, bytecode.ModeExec)
	if err != nil {
		return err
	}
	fmt.Print(bytecode.Disassemble(code))
	return nil
}
