package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cern/pkg/config"
	"cern/pkg/diag"
)

var (
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *slog.Logger
)

// errReported marks an error that has already been printed.
var errReported = errors.New("reported")

var rootCmd = &cobra.Command{
	Use:   "cern",
	Short: "cern - compiler for the cern language",
	Long: `cern tokenizes and parses a .ce source file, generates C++ from the
syntax tree and builds it with an external C++ compiler.

Examples:
  cern build prog.ce
  cern build --emit-only prog.ce
  cern parse --format yaml prog.ce
  cern tokens prog.ce`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the command tree. Errors are printed to stderr once.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		diag.NewPrinter(os.Stderr).Print("", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./"+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Resolve(cfgFile)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	logger = cfg.NewLogger(cmd.ErrOrStderr())
	return nil
}

// readSource loads a source file and returns its absolute path and contents.
func readSource(path string) (string, string, error) {
	fullPath, err := filepath.Abs(path)
	if err != nil {
		return "", "", fmt.Errorf("resolve source path: %w", err)
	}
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return "", "", fmt.Errorf("read source: %w", err)
	}
	return fullPath, string(data), nil
}

// report prints err against the named source file and marks it as printed.
func report(w io.Writer, fileName string, err error) error {
	diag.NewPrinter(w).Print(fileName, err)
	return fmt.Errorf("%w: %w", errReported, err)
}
