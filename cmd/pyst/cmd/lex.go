package cmd

import (
	"fmt"
	"os"

	"github.com/jm-research/pyst/internal/lexer"
	"github.com/jm-research/pyst/pkg/token"
	"github.com/spf13/cobra"
)

var (
	lexShowPos bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a pyst file or expression and print the token stream",
	Args:  cobra.MaximumNArgs(1),
	RunE:  lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&evalExpr, "eval", "c", "", "tokenize the given string instead of reading a file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token start/end positions")
}

func lexScript(_ *cobra.Command, args []string) error {
	text, err := sourceFor(args)
	if err != nil {
		return err
	}

	l := lexer.New(text)
	for {
		tok, err := l.NextToken()
		if err != nil {
			return err
		}
		if lexShowPos {
			fmt.Printf("%-12s %-20q %s-%s\n", tok.Type, tok.Literal, tok.Start, tok.End)
		} else {
			fmt.Printf("%-12s %q\n", tok.Type, tok.Literal)
		}
		if tok.Type == token.EOF {
			break
		}
	}
	return nil
}

func sourceFor(args []string) (string, error) {
	switch {
	case evalExpr != "":
		return evalExpr, nil
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content) + "\n", nil
	default:
		return "", fmt.Errorf("either provide a file path or use -c for inline code")
	}
}
