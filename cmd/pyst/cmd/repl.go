package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/jm-research/pyst/pkg/pyst"
	"github.com/spf13/cobra"
)

const (
	promptMain         = ">>>>> "
	promptContinuation = "..... "
	incompleteMessage  = "Unexpected end of input."
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive pyst session",
	Long: `Read-eval-print loop: each line is compiled in Single mode, so a
bare expression-statement's value is printed. When compilation reports
"Unexpected end of input." the prompt switches to the continuation form
and keeps reading until an empty line, then retries.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(_ *cobra.Command, _ []string) error {
	in := pyst.New(os.Stdout)
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(promptMain)
		if !scanner.Scan() {
			return nil
		}
		source := scanner.Text()

		for {
			Logger.Debug("evaluating line", "source", source)
			_, raised, err := in.RunMode(source, pyst.ModeSingle)
			if err != nil && err.Error() == incompleteMessage {
				for {
					fmt.Print(promptContinuation)
					if !scanner.Scan() {
						return nil
					}
					line := scanner.Text()
					if line == "" {
						break
					}
					source += "\n" + line
				}
				continue
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
			} else if raised != nil {
				fmt.Fprintln(os.Stderr, describeException(raised))
			}
			break
		}
	}
}
