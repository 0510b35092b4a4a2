package cmd

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"cern/pkg/compiler"
	"cern/pkg/utils"
)

var (
	buildOutDir   string
	buildBinary   string
	buildEmitOnly bool
)

var buildCmd = &cobra.Command{
	Use:   "build <file.ce>",
	Short: "Compile a source file to an executable",
	Long: `Compiles a .ce file to C++, writes it to the output directory and runs
the configured C++ compiler on it.

With --emit-only (or [compiler] skip = true) only the C++ file is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildOutDir, "out-dir", "d", "", "output directory (default from config)")
	buildCmd.Flags().StringVarP(&buildBinary, "output", "o", "", "executable name (default from config)")
	buildCmd.Flags().BoolVar(&buildEmitOnly, "emit-only", false, "write the C++ file without compiling it")
}

func runBuild(cmd *cobra.Command, args []string) error {
	path := args[0]
	fullPath, src, err := readSource(path)
	if err != nil {
		return err
	}

	buildID := uuid.NewString()
	log := logger.With("build_id", buildID, "program", utils.Stem(path))

	res, err := compiler.Compile(src, compiler.Options{
		ArenaCapacity: cfg.Parser.ArenaBytes,
		Generate: compiler.GenerateOptions{
			SourceName: filepath.Base(fullPath),
			BuildID:    buildID,
		},
	})
	if err != nil {
		return report(cmd.ErrOrStderr(), path, err)
	}

	stats := res.Program.Arena.Stats()
	log.Debug("parsed",
		"tokens", len(res.Tokens),
		"statements", len(res.Program.Stmts),
		"arena_used", stats.Used,
		"arena_cap", stats.Capacity)

	outDir := cfg.Output.Dir
	if buildOutDir != "" {
		outDir = buildOutDir
	}
	tc := cfg.Toolchain(cmd.OutOrStdout())
	if buildBinary != "" {
		tc.BinaryName = buildBinary
	}

	if buildEmitOnly || cfg.Compiler.Skip {
		srcPath, err := tc.WriteSource(outDir, res.Output)
		if err != nil {
			return err
		}
		log.Info("wrote source", "path", srcPath)
		return nil
	}

	built, err := tc.Build(context.Background(), outDir, res.Output)
	if err != nil {
		return err
	}
	log.Debug("compiler finished", "command", built.Command)
	log.Info("built", "binary", built.BinaryPath)
	return nil
}
