package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cern/pkg/compiler"
)

var parseFormat string

var parseCmd = &cobra.Command{
	Use:   "parse <file.ce>",
	Short: "Print the syntax tree of a source file",
	Long: `Parses a .ce file and prints its syntax tree.

Formats:
  tree  indented text, one node per line (default)
  expr  one line per statement with expressions fully parenthesized
  yaml  YAML document`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "tree", "output format: tree, expr or yaml")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	_, src, err := readSource(path)
	if err != nil {
		return err
	}

	tokens, err := compiler.Lex(src)
	if err != nil {
		return report(cmd.ErrOrStderr(), path, err)
	}
	prog, err := compiler.NewParser(tokens, src, compiler.NewArena(cfg.Parser.ArenaBytes)).ParseProgram()
	if err != nil {
		return report(cmd.ErrOrStderr(), path, err)
	}
	logger.Debug("parsed", "tokens", len(tokens), "arena_used", prog.Arena.Used())

	out := cmd.OutOrStdout()
	switch parseFormat {
	case "tree":
		fmt.Fprint(out, prog.Tree())
	case "expr":
		for _, id := range prog.Stmts {
			fmt.Fprintln(out, prog.Arena.FormatStmt(id))
		}
	case "yaml":
		data, err := compiler.DumpYAML(prog)
		if err != nil {
			return err
		}
		out.Write(data)
	default:
		return fmt.Errorf("unknown format %q", parseFormat)
	}
	return nil
}
