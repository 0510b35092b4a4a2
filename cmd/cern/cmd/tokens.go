package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cern/pkg/compiler"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file.ce>",
	Short: "Print the token stream of a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, src, err := readSource(args[0])
		if err != nil {
			return err
		}
		tokens, err := compiler.Lex(src)
		if err != nil {
			return report(cmd.ErrOrStderr(), args[0], err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Tokens (%d)\n", len(tokens))
		for _, tok := range tokens {
			fmt.Fprintln(out, " ", tok)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}
